package dashboard

import "time"

// Collection names as they exist in the remote store.
const (
	CollectionZones   = "crowd_zones"
	CollectionUnits   = "emergency_units"
	CollectionDevices = "rfid_devices"
	CollectionAlerts  = "alerts"
)

type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// CrowdZone status is a stored classification, not recomputed here: the
// upstream writer owns the capacity-ratio thresholds.
type CrowdZone struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Coordinates     Rect      `json:"coordinates"`
	CurrentCapacity int       `json:"currentCapacity"`
	MaxCapacity     int       `json:"maxCapacity"`
	Status          string    `json:"status"` // safe | moderate | critical
	LastUpdated     time.Time `json:"lastUpdated"`
}

type EmergencyUnit struct {
	ID          string `json:"id"`
	Type        string `json:"type"` // medical | police | rescue | fire
	Name        string `json:"name"`
	Coordinates Point  `json:"coordinates"`
	Status      string `json:"status"` // available | busy | emergency
	Contact     string `json:"contact"`
}

type RFIDDevice struct {
	ID              string    `json:"id"`
	WearerID        string    `json:"wearerId"`
	WearerName      string    `json:"wearerName"`
	WearerAge       int       `json:"wearerAge"`
	GuardianContact string    `json:"guardianContact,omitempty"`
	Coordinates     Point     `json:"coordinates"`
	LastSeen        time.Time `json:"lastSeen"`
	BatteryLevel    int       `json:"batteryLevel"`
	IsDistressed    bool      `json:"isDistressed"`
}

type Alert struct {
	ID                      string     `json:"id"`
	Type                    string     `json:"type"`     // stampede | fire | flood | medical | lost_person | security
	Severity                string     `json:"severity"` // low | medium | high | critical
	Title                   string     `json:"title"`
	Description             string     `json:"description"`
	Location                string     `json:"location"`
	Coordinates             Point      `json:"coordinates"`
	Timestamp               time.Time  `json:"timestamp"`
	IsActive                bool       `json:"isActive"`
	EstimatedResolutionTime string     `json:"estimatedResolutionTime,omitempty"`
	ResolvedBy              string     `json:"resolvedBy,omitempty"`
	ResolvedAt              *time.Time `json:"resolvedAt,omitempty"`
}

// PilgrimStats are derived on every publish, never persisted. PeakToday is
// session-local: it resets when the backend restarts.
type PilgrimStats struct {
	TotalPilgrims     int     `json:"totalPilgrims"`
	CurrentInArea     int     `json:"currentInArea"`
	PeakToday         int     `json:"peakToday"`
	AvgResponseTime   float64 `json:"avgResponseTime"`
	ActiveIncidents   int     `json:"activeIncidents"`
	ResolvedIncidents int     `json:"resolvedIncidents"`
}

// View is the merged dashboard state. Each publish produces a fresh value;
// consumers holding an old pointer never observe a half-applied update.
// StaleSince is set while the realtime channel is down and the snapshots are
// last-known-good.
type View struct {
	Zones      []CrowdZone     `json:"zones"`
	Units      []EmergencyUnit `json:"units"`
	Devices    []RFIDDevice    `json:"devices"`
	Alerts     []Alert         `json:"alerts"`
	Stats      PilgrimStats    `json:"stats"`
	LastUpdate time.Time       `json:"lastUpdate"`
	StaleSince *time.Time      `json:"staleSince,omitempty"`
}

// Row types mirror the remote store's column layout exactly; each has one
// mapping function into the internal shape so a missing or renamed backend
// column fails at this boundary, not deep in aggregation.

type ZoneRow struct {
	ID              string `gorm:"primaryKey"`
	Name            string
	X               float64
	Y               float64
	Width           float64
	Height          float64
	CurrentCapacity int
	MaxCapacity     int
	Status          string `gorm:"default:'safe'"`
	LastUpdated     time.Time
	CreatedAt       time.Time
}

type UnitRow struct {
	ID        string `gorm:"primaryKey"`
	Type      string
	Name      string
	X         float64
	Y         float64
	Status    string `gorm:"default:'available'"`
	Contact   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type DeviceRow struct {
	ID              string `gorm:"primaryKey"`
	WearerID        string `gorm:"column:wearer_id"`
	WearerName      string
	WearerAge       int
	GuardianContact *string
	X               float64
	Y               float64
	LastSeen        time.Time
	BatteryLevel    int  `gorm:"default:100"`
	IsDistressed    bool `gorm:"default:false"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type AlertRow struct {
	ID                      string `gorm:"primaryKey"`
	Type                    string
	Severity                string
	Title                   string
	Description             string
	Location                string
	X                       float64
	Y                       float64
	IsActive                bool `gorm:"default:true"`
	EstimatedResolutionTime *string
	CreatedBy               string
	ResolvedBy              *string
	CreatedAt               time.Time
	ResolvedAt              *time.Time
}

func (ZoneRow) TableName() string   { return CollectionZones }
func (UnitRow) TableName() string   { return CollectionUnits }
func (DeviceRow) TableName() string { return CollectionDevices }
func (AlertRow) TableName() string  { return CollectionAlerts }

func rowToZone(r ZoneRow) CrowdZone {
	return CrowdZone{
		ID:              r.ID,
		Name:            r.Name,
		Coordinates:     Rect{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height},
		CurrentCapacity: r.CurrentCapacity,
		MaxCapacity:     r.MaxCapacity,
		Status:          r.Status,
		LastUpdated:     r.LastUpdated,
	}
}

func rowToUnit(r UnitRow) EmergencyUnit {
	return EmergencyUnit{
		ID:          r.ID,
		Type:        r.Type,
		Name:        r.Name,
		Coordinates: Point{X: r.X, Y: r.Y},
		Status:      r.Status,
		Contact:     r.Contact,
	}
}

func rowToDevice(r DeviceRow) RFIDDevice {
	device := RFIDDevice{
		ID:           r.ID,
		WearerID:     r.WearerID,
		WearerName:   r.WearerName,
		WearerAge:    r.WearerAge,
		Coordinates:  Point{X: r.X, Y: r.Y},
		LastSeen:     r.LastSeen,
		BatteryLevel: r.BatteryLevel,
		IsDistressed: r.IsDistressed,
	}
	if r.GuardianContact != nil {
		device.GuardianContact = *r.GuardianContact
	}
	return device
}

func rowToAlert(r AlertRow) Alert {
	alert := Alert{
		ID:          r.ID,
		Type:        r.Type,
		Severity:    r.Severity,
		Title:       r.Title,
		Description: r.Description,
		Location:    r.Location,
		Coordinates: Point{X: r.X, Y: r.Y},
		Timestamp:   r.CreatedAt,
		IsActive:    r.IsActive,
		ResolvedAt:  r.ResolvedAt,
	}
	if r.EstimatedResolutionTime != nil {
		alert.EstimatedResolutionTime = *r.EstimatedResolutionTime
	}
	if r.ResolvedBy != nil {
		alert.ResolvedBy = *r.ResolvedBy
	}
	return alert
}
