package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sangamops/mela-backend/internal/utils"
)

func authedCtx(userID string) context.Context {
	return context.WithValue(context.Background(), utils.ContextUserIDKey, userID)
}

// TestCommands_UnauthenticatedMakesNoCalls verifies every command fails with
// ErrUnauthenticated before touching the store when no caller identity is
// present.
func TestCommands_UnauthenticatedMakesNoCalls(t *testing.T) {
	fs := newFakeStore()
	c := NewCommands(fs)
	ctx := context.Background()

	checks := []struct {
		name string
		call func() error
	}{
		{"CreateAlert", func() error { return c.CreateAlert(ctx, AlertInput{Title: "x"}) }},
		{"ResolveAlert", func() error { return c.ResolveAlert(ctx, "alert-001") }},
		{"UpdateZone", func() error { return c.UpdateZone(ctx, "z1", ZoneUpdate{}) }},
		{"UpdateDevice", func() error { return c.UpdateDevice(ctx, "d1", DeviceUpdate{}) }},
	}

	for _, check := range checks {
		if err := check.call(); !errors.Is(err, ErrUnauthenticated) {
			t.Errorf("%s: err = %v, want ErrUnauthenticated", check.name, err)
		}
	}
	if n := fs.writeCount(); n != 0 {
		t.Errorf("store saw %d writes from unauthenticated commands, want 0", n)
	}
}

// TestCommands_CreateAlert verifies the insert carries the caller identity
// and an active flag, and that nothing is applied locally.
func TestCommands_CreateAlert(t *testing.T) {
	fs := newFakeStore()
	c := NewCommands(fs)

	input := AlertInput{
		Type:        "lost_person",
		Severity:    "high",
		Title:       "Missing Child",
		Description: "Last seen near Sector 2",
		Location:    "Sector 2",
		Coordinates: Point{X: 420, Y: 240},
	}
	if err := c.CreateAlert(authedCtx("operator-7"), input); err != nil {
		t.Fatalf("CreateAlert: %v", err)
	}

	if len(fs.inserts) != 1 {
		t.Fatalf("got %d inserts, want 1", len(fs.inserts))
	}
	row, ok := fs.inserts[0].record.(*AlertRow)
	if !ok {
		t.Fatalf("inserted record has type %T", fs.inserts[0].record)
	}
	if row.ID == "" {
		t.Error("insert must carry a generated id")
	}
	if row.CreatedBy != "operator-7" {
		t.Errorf("createdBy = %q, want operator-7", row.CreatedBy)
	}
	if !row.IsActive {
		t.Error("new alert must be active")
	}
	if row.EstimatedResolutionTime != nil {
		t.Errorf("empty eta should stay null, got %q", *row.EstimatedResolutionTime)
	}
}

// TestCommands_ResolveAlert verifies the resolution update fields.
func TestCommands_ResolveAlert(t *testing.T) {
	fs := newFakeStore()
	c := NewCommands(fs)
	c.now = func() time.Time { return time.Date(2026, time.January, 15, 12, 0, 0, 0, time.UTC) }

	if err := c.ResolveAlert(authedCtx("operator-7"), "alert-001"); err != nil {
		t.Fatalf("ResolveAlert: %v", err)
	}

	if len(fs.updates) != 1 {
		t.Fatalf("got %d updates, want 1", len(fs.updates))
	}
	u := fs.updates[0]
	if u.collection != CollectionAlerts || u.id != "alert-001" {
		t.Errorf("update target = %s/%s", u.collection, u.id)
	}
	if active, ok := u.fields["is_active"].(bool); !ok || active {
		t.Errorf("is_active = %v, want false", u.fields["is_active"])
	}
	if u.fields["resolved_by"] != "operator-7" {
		t.Errorf("resolved_by = %v", u.fields["resolved_by"])
	}
	if _, ok := u.fields["resolved_at"].(time.Time); !ok {
		t.Errorf("resolved_at missing or wrong type: %v", u.fields["resolved_at"])
	}
}

// TestCommands_UpdateZonePartial verifies only provided fields are written,
// plus the freshness timestamp.
func TestCommands_UpdateZonePartial(t *testing.T) {
	fs := newFakeStore()
	c := NewCommands(fs)

	capacity := 9000
	if err := c.UpdateZone(authedCtx("operator-7"), "sector-2", ZoneUpdate{CurrentCapacity: &capacity}); err != nil {
		t.Fatalf("UpdateZone: %v", err)
	}

	u := fs.updates[0]
	if u.fields["current_capacity"] != 9000 {
		t.Errorf("current_capacity = %v", u.fields["current_capacity"])
	}
	if _, ok := u.fields["status"]; ok {
		t.Error("status was not provided and must not be written")
	}
	if _, ok := u.fields["last_updated"]; !ok {
		t.Error("last_updated must always be written")
	}
}

// TestCommands_WriteFailure verifies a rejected write surfaces ErrWriteFailed
// to the caller.
func TestCommands_WriteFailure(t *testing.T) {
	fs := newFakeStore()
	fs.updateErr = errors.New("permission denied")
	c := NewCommands(fs)

	err := c.ResolveAlert(authedCtx("operator-7"), "alert-001")
	if !errors.Is(err, ErrWriteFailed) {
		t.Errorf("err = %v, want ErrWriteFailed", err)
	}
}
