package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"
)

// TestFetcher_ZoneMapping verifies field-by-field mapping from the backend
// row shape into the internal entity shape.
func TestFetcher_ZoneMapping(t *testing.T) {
	updated := time.Date(2026, time.January, 10, 8, 0, 0, 0, time.UTC)
	fs := newFakeStore()
	fs.zones = []ZoneRow{{
		ID:   "triveni-sangam",
		Name: "Triveni Sangam",
		X:    375, Y: 200, Width: 50, Height: 50,
		CurrentCapacity: 42500,
		MaxCapacity:     50000,
		Status:          "critical",
		LastUpdated:     updated,
	}}

	zones, err := NewFetcher(fs).FetchZones(context.Background())
	if err != nil {
		t.Fatalf("FetchZones: %v", err)
	}
	if len(zones) != 1 {
		t.Fatalf("got %d zones, want 1", len(zones))
	}

	z := zones[0]
	if z.ID != "triveni-sangam" || z.Name != "Triveni Sangam" {
		t.Errorf("identity fields: %+v", z)
	}
	if z.Coordinates != (Rect{X: 375, Y: 200, Width: 50, Height: 50}) {
		t.Errorf("coordinates = %+v", z.Coordinates)
	}
	if z.CurrentCapacity != 42500 || z.MaxCapacity != 50000 {
		t.Errorf("capacities: %+v", z)
	}
	if z.Status != "critical" {
		t.Errorf("status = %q; stored value must be trusted as-is", z.Status)
	}
	if !z.LastUpdated.Equal(updated) {
		t.Errorf("lastUpdated = %v, want %v", z.LastUpdated, updated)
	}

	if got, want := fs.orderBy[CollectionZones], "created_at asc"; got != want {
		t.Errorf("zones orderBy = %q, want %q", got, want)
	}
}

// TestFetcher_DeviceOptionalFields verifies optional backend columns default
// cleanly instead of propagating nils.
func TestFetcher_DeviceOptionalFields(t *testing.T) {
	contact := "+91-9876543220"
	fs := newFakeStore()
	fs.devices = []DeviceRow{
		{ID: "rfid-001", WearerID: "KM2025001", GuardianContact: &contact, BatteryLevel: 85},
		{ID: "rfid-002", WearerID: "KM2025002", GuardianContact: nil, BatteryLevel: 18, IsDistressed: true},
	}

	devices, err := NewFetcher(fs).FetchDevices(context.Background())
	if err != nil {
		t.Fatalf("FetchDevices: %v", err)
	}

	if devices[0].GuardianContact != contact {
		t.Errorf("guardianContact = %q, want %q", devices[0].GuardianContact, contact)
	}
	if devices[1].GuardianContact != "" {
		t.Errorf("missing guardianContact should map to empty, got %q", devices[1].GuardianContact)
	}
	if !devices[1].IsDistressed {
		t.Error("isDistressed flag lost in mapping")
	}
	if got, want := fs.orderBy[CollectionDevices], "last_seen desc"; got != want {
		t.Errorf("devices orderBy = %q, want %q", got, want)
	}
}

// TestFetcher_AlertMapping verifies resolution fields and the created_at →
// timestamp rename.
func TestFetcher_AlertMapping(t *testing.T) {
	created := time.Date(2026, time.January, 10, 7, 0, 0, 0, time.UTC)
	resolved := created.Add(30 * time.Minute)
	eta := "30 minutes"
	by := "operator-1"
	fs := newFakeStore()
	fs.alerts = []AlertRow{
		{ID: "alert-001", Type: "stampede", Severity: "critical", CreatedAt: created, IsActive: true, EstimatedResolutionTime: &eta},
		{ID: "alert-002", Type: "fire", Severity: "low", CreatedAt: created, ResolvedBy: &by, ResolvedAt: &resolved},
	}

	alerts, err := NewFetcher(fs).FetchAlerts(context.Background())
	if err != nil {
		t.Fatalf("FetchAlerts: %v", err)
	}

	if !alerts[0].Timestamp.Equal(created) {
		t.Errorf("timestamp = %v, want created_at %v", alerts[0].Timestamp, created)
	}
	if alerts[0].EstimatedResolutionTime != eta {
		t.Errorf("estimatedResolutionTime = %q, want %q", alerts[0].EstimatedResolutionTime, eta)
	}
	if alerts[0].ResolvedAt != nil || alerts[0].ResolvedBy != "" {
		t.Errorf("active alert carries resolution fields: %+v", alerts[0])
	}
	if alerts[1].ResolvedBy != by || alerts[1].ResolvedAt == nil || !alerts[1].ResolvedAt.Equal(resolved) {
		t.Errorf("resolved alert mapping: %+v", alerts[1])
	}
	if got, want := fs.orderBy[CollectionAlerts], "created_at desc"; got != want {
		t.Errorf("alerts orderBy = %q, want %q", got, want)
	}
}

// TestFetcher_ErrorWrapsFetchFailed verifies transport errors surface as
// ErrFetchFailed so the loop can log and move on.
func TestFetcher_ErrorWrapsFetchFailed(t *testing.T) {
	fs := newFakeStore()
	fs.fetchErr[CollectionUnits] = errors.New("timeout")

	_, err := NewFetcher(fs).FetchUnits(context.Background())
	if !errors.Is(err, ErrFetchFailed) {
		t.Errorf("err = %v, want ErrFetchFailed", err)
	}
}
