package dashboard

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/sangamops/mela-backend/internal/metrics"
	"github.com/sangamops/mela-backend/internal/store"
	"github.com/sangamops/mela-backend/internal/utils"
)

// Commands forwards dashboard writes to the remote store. Nothing is applied
// optimistically: the store's own change notification drives the refetch, so
// a write becomes visible after one notification-plus-refetch round trip.
type Commands struct {
	store store.Store
	now   func() time.Time
}

func NewCommands(s store.Store) *Commands {
	return &Commands{store: s, now: time.Now}
}

type AlertInput struct {
	Type                    string `json:"type"`
	Severity                string `json:"severity"`
	Title                   string `json:"title"`
	Description             string `json:"description"`
	Location                string `json:"location"`
	Coordinates             Point  `json:"coordinates"`
	EstimatedResolutionTime string `json:"estimatedResolutionTime"`
}

type ZoneUpdate struct {
	CurrentCapacity *int    `json:"currentCapacity"`
	Status          *string `json:"status"`
}

type DeviceUpdate struct {
	Coordinates  *Point `json:"coordinates"`
	BatteryLevel *int   `json:"batteryLevel"`
	IsDistressed *bool  `json:"isDistressed"`
}

func callerID(ctx context.Context) (string, error) {
	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok || userID == "" {
		return "", ErrUnauthenticated
	}
	return userID, nil
}

func (c *Commands) CreateAlert(ctx context.Context, input AlertInput) error {
	userID, err := callerID(ctx)
	if err != nil {
		return err
	}

	row := AlertRow{
		ID:          uuid.NewString(),
		Type:        input.Type,
		Severity:    input.Severity,
		Title:       input.Title,
		Description: input.Description,
		Location:    input.Location,
		X:           input.Coordinates.X,
		Y:           input.Coordinates.Y,
		IsActive:    true,
		CreatedBy:   userID,
		CreatedAt:   c.now(),
	}
	if input.EstimatedResolutionTime != "" {
		row.EstimatedResolutionTime = &input.EstimatedResolutionTime
	}

	if err := c.store.Insert(ctx, CollectionAlerts, &row); err != nil {
		log.Printf("[commands] create alert: %v", err)
		metrics.WriteFailures.WithLabelValues("create_alert").Inc()
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	return nil
}

func (c *Commands) ResolveAlert(ctx context.Context, id string) error {
	userID, err := callerID(ctx)
	if err != nil {
		return err
	}

	fields := map[string]any{
		"is_active":   false,
		"resolved_by": userID,
		"resolved_at": c.now(),
	}
	if err := c.store.Update(ctx, CollectionAlerts, id, fields); err != nil {
		log.Printf("[commands] resolve alert %s: %v", id, err)
		metrics.WriteFailures.WithLabelValues("resolve_alert").Inc()
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	return nil
}

func (c *Commands) UpdateZone(ctx context.Context, id string, update ZoneUpdate) error {
	if _, err := callerID(ctx); err != nil {
		return err
	}

	fields := map[string]any{"last_updated": c.now()}
	if update.CurrentCapacity != nil {
		fields["current_capacity"] = *update.CurrentCapacity
	}
	if update.Status != nil {
		fields["status"] = *update.Status
	}

	if err := c.store.Update(ctx, CollectionZones, id, fields); err != nil {
		log.Printf("[commands] update zone %s: %v", id, err)
		metrics.WriteFailures.WithLabelValues("update_zone").Inc()
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	return nil
}

func (c *Commands) UpdateDevice(ctx context.Context, id string, update DeviceUpdate) error {
	if _, err := callerID(ctx); err != nil {
		return err
	}

	fields := map[string]any{"last_seen": c.now()}
	if update.Coordinates != nil {
		fields["x"] = update.Coordinates.X
		fields["y"] = update.Coordinates.Y
	}
	if update.BatteryLevel != nil {
		fields["battery_level"] = *update.BatteryLevel
	}
	if update.IsDistressed != nil {
		fields["is_distressed"] = *update.IsDistressed
	}

	if err := c.store.Update(ctx, CollectionDevices, id, fields); err != nil {
		log.Printf("[commands] update device %s: %v", id, err)
		metrics.WriteFailures.WithLabelValues("update_device").Inc()
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	return nil
}
