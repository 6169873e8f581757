package dashboard

import (
	"context"
	"fmt"

	"github.com/sangamops/mela-backend/internal/store"
)

// Fetcher pulls full collection snapshots from the remote store and maps
// backend rows into the internal entity shape. Callers must not assume any
// ordering beyond the one requested here.
type Fetcher struct {
	store store.Store
}

func NewFetcher(s store.Store) *Fetcher {
	return &Fetcher{store: s}
}

func (f *Fetcher) FetchZones(ctx context.Context) ([]CrowdZone, error) {
	var rows []ZoneRow
	if err := f.store.Fetch(ctx, CollectionZones, "created_at asc", &rows); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFetchFailed, CollectionZones, err)
	}

	zones := make([]CrowdZone, 0, len(rows))
	for _, row := range rows {
		zones = append(zones, rowToZone(row))
	}
	return zones, nil
}

func (f *Fetcher) FetchUnits(ctx context.Context) ([]EmergencyUnit, error) {
	var rows []UnitRow
	if err := f.store.Fetch(ctx, CollectionUnits, "created_at asc", &rows); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFetchFailed, CollectionUnits, err)
	}

	units := make([]EmergencyUnit, 0, len(rows))
	for _, row := range rows {
		units = append(units, rowToUnit(row))
	}
	return units, nil
}

func (f *Fetcher) FetchDevices(ctx context.Context) ([]RFIDDevice, error) {
	var rows []DeviceRow
	if err := f.store.Fetch(ctx, CollectionDevices, "last_seen desc", &rows); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFetchFailed, CollectionDevices, err)
	}

	devices := make([]RFIDDevice, 0, len(rows))
	for _, row := range rows {
		devices = append(devices, rowToDevice(row))
	}
	return devices, nil
}

func (f *Fetcher) FetchAlerts(ctx context.Context) ([]Alert, error) {
	var rows []AlertRow
	if err := f.store.Fetch(ctx, CollectionAlerts, "created_at desc", &rows); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFetchFailed, CollectionAlerts, err)
	}

	alerts := make([]Alert, 0, len(rows))
	for _, row := range rows {
		alerts = append(alerts, rowToAlert(row))
	}
	return alerts, nil
}
