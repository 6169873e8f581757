// Package seeds loads a demo dataset for local development: the ghats and
// camping sectors, emergency units, tracked RFID wearers, a handful of
// alerts, and one admin account.
package seeds

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/sangamops/mela-backend/internal/auth"
	"github.com/sangamops/mela-backend/internal/dashboard"
	"github.com/sangamops/mela-backend/internal/db"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm/clause"
)

func strptr(s string) *string { return &s }

func SeedAll() error {
	if err := seedZones(); err != nil {
		return fmt.Errorf("zones: %w", err)
	}
	if err := seedUnits(); err != nil {
		return fmt.Errorf("units: %w", err)
	}
	if err := seedDevices(); err != nil {
		return fmt.Errorf("devices: %w", err)
	}
	if err := seedAlerts(); err != nil {
		return fmt.Errorf("alerts: %w", err)
	}
	if err := seedAdmin(); err != nil {
		return fmt.Errorf("admin: %w", err)
	}
	return nil
}

func seedZones() error {
	now := time.Now()
	zones := []dashboard.ZoneRow{
		{ID: "triveni-sangam", Name: "Triveni Sangam", X: 375, Y: 200, Width: 50, Height: 50, CurrentCapacity: 42500, MaxCapacity: 50000, Status: "critical", LastUpdated: now},
		{ID: "dashashwamedh-ghat", Name: "Dashashwamedh Ghat", X: 200, Y: 160, Width: 80, Height: 15, CurrentCapacity: 14400, MaxCapacity: 20000, Status: "moderate", LastUpdated: now},
		{ID: "manikarnika-ghat", Name: "Manikarnika Ghat", X: 320, Y: 165, Width: 70, Height: 15, CurrentCapacity: 6750, MaxCapacity: 15000, Status: "safe", LastUpdated: now},
		{ID: "assi-ghat", Name: "Assi Ghat", X: 450, Y: 160, Width: 70, Height: 15, CurrentCapacity: 8200, MaxCapacity: 18000, Status: "safe", LastUpdated: now},
		{ID: "saraswati-ghat", Name: "Saraswati Ghat", X: 200, Y: 310, Width: 80, Height: 15, CurrentCapacity: 5600, MaxCapacity: 12000, Status: "safe", LastUpdated: now},
		{ID: "sector-1", Name: "Sector 1 Camping", X: 150, Y: 250, Width: 120, Height: 80, CurrentCapacity: 18500, MaxCapacity: 25000, Status: "moderate", LastUpdated: now},
		{ID: "sector-2", Name: "Sector 2 Camping", X: 350, Y: 250, Width: 120, Height: 80, CurrentCapacity: 12300, MaxCapacity: 25000, Status: "safe", LastUpdated: now},
		{ID: "sector-3", Name: "Sector 3 Camping", X: 550, Y: 250, Width: 120, Height: 80, CurrentCapacity: 15800, MaxCapacity: 25000, Status: "safe", LastUpdated: now},
	}
	return db.DB.Clauses(clause.OnConflict{UpdateAll: true}).Create(&zones).Error
}

func seedUnits() error {
	units := []dashboard.UnitRow{
		{ID: "medical-camp-1", Type: "medical", Name: "Medical Camp 1", X: 550, Y: 180, Status: "available", Contact: "+91-9876543210"},
		{ID: "medical-camp-2", Type: "medical", Name: "Medical Camp 2", X: 250, Y: 350, Status: "available", Contact: "+91-9876543211"},
		{ID: "police-post-1", Type: "police", Name: "Police Post 1", X: 350, Y: 120, Status: "available", Contact: "+91-9876543212"},
		{ID: "police-post-2", Type: "police", Name: "Police Post 2", X: 500, Y: 380, Status: "busy", Contact: "+91-9876543213"},
		{ID: "fire-station", Type: "fire", Name: "Fire Station", X: 150, Y: 350, Status: "available", Contact: "+91-9876543214"},
		{ID: "rescue-team-1", Type: "rescue", Name: "Water Rescue Team 1", X: 380, Y: 180, Status: "available", Contact: "+91-9876543215"},
		{ID: "rescue-team-2", Type: "rescue", Name: "Water Rescue Team 2", X: 420, Y: 320, Status: "available", Contact: "+91-9876543216"},
	}
	return db.DB.Clauses(clause.OnConflict{UpdateAll: true}).Create(&units).Error
}

func seedDevices() error {
	now := time.Now()
	devices := []dashboard.DeviceRow{
		{ID: "rfid-001", WearerID: "KM2025001", WearerName: "Ravi Kumar Sharma", WearerAge: 8, GuardianContact: strptr("+91-9876543220"), X: 390, Y: 210, LastSeen: now, BatteryLevel: 85},
		{ID: "rfid-002", WearerID: "KM2025002", WearerName: "Kamala Devi Gupta", WearerAge: 72, GuardianContact: strptr("+91-9876543221"), X: 240, Y: 170, LastSeen: now.Add(-5 * time.Minute), BatteryLevel: 18, IsDistressed: true},
		{ID: "rfid-003", WearerID: "KM2025003", WearerName: "Suresh Patel", WearerAge: 45, GuardianContact: strptr("+91-9876543222"), X: 480, Y: 170, LastSeen: now.Add(-2 * time.Minute), BatteryLevel: 92},
		{ID: "rfid-004", WearerID: "KM2025004", WearerName: "Meera Singh", WearerAge: 35, GuardianContact: strptr("+91-9876543223"), X: 200, Y: 280, LastSeen: now.Add(-1 * time.Minute), BatteryLevel: 67},
		{ID: "rfid-005", WearerID: "KM2025005", WearerName: "Arjun Yadav", WearerAge: 12, GuardianContact: strptr("+91-9876543224"), X: 420, Y: 240, LastSeen: now.Add(-15 * time.Minute), BatteryLevel: 34, IsDistressed: true},
	}
	return db.DB.Clauses(clause.OnConflict{UpdateAll: true}).Create(&devices).Error
}

func seedAlerts() error {
	now := time.Now()
	alerts := []dashboard.AlertRow{
		{ID: "alert-001", Type: "stampede", Severity: "critical", Title: "Critical Crowd Surge at Triveni Sangam", Description: "Extremely high crowd density detected at Triveni Sangam. Immediate evacuation and crowd control required.", Location: "Triveni Sangam", X: 400, Y: 225, IsActive: true, EstimatedResolutionTime: strptr("30 minutes"), CreatedBy: "seed", CreatedAt: now},
		{ID: "alert-002", Type: "lost_person", Severity: "high", Title: "Missing Child - Arjun Yadav", Description: "RFID device shows child (12 years) missing for over 15 minutes. Last seen near Sector 2.", Location: "Sector 2 Camping Area", X: 420, Y: 240, IsActive: true, EstimatedResolutionTime: strptr("20 minutes"), CreatedBy: "seed", CreatedAt: now.Add(-3 * time.Minute)},
		{ID: "alert-003", Type: "medical", Severity: "high", Title: "Elderly Pilgrim in Distress", Description: "RFID alert: Elderly pilgrim (Kamala Devi, 72) showing distress signals. Low battery on device.", Location: "Dashashwamedh Ghat", X: 240, Y: 170, IsActive: true, EstimatedResolutionTime: strptr("10 minutes"), CreatedBy: "seed", CreatedAt: now.Add(-5 * time.Minute)},
		{ID: "alert-004", Type: "security", Severity: "medium", Title: "Suspicious Activity Report", Description: "Security personnel report suspicious behavior near Gate 3. Investigation in progress.", Location: "Gate 3 - Sector 2", X: 480, Y: 70, IsActive: true, EstimatedResolutionTime: strptr("25 minutes"), CreatedBy: "seed", CreatedAt: now.Add(-10 * time.Minute)},
		{ID: "alert-005", Type: "fire", Severity: "low", Title: "Small Fire Contained", Description: "Minor fire in food preparation area has been contained. No injuries reported.", Location: "Food Court - Sector 1", X: 215, Y: 250, EstimatedResolutionTime: strptr("Resolved"), CreatedBy: "seed", CreatedAt: now.Add(-20 * time.Minute), ResolvedBy: strptr("seed"), ResolvedAt: &now},
	}
	return db.DB.Clauses(clause.OnConflict{UpdateAll: true}).Create(&alerts).Error
}

func seedAdmin() error {
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if password == "" {
		password = "changeme"
		log.Println("SEED_ADMIN_PASSWORD not set, using default")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := auth.User{
		UserID:         uuid.NewString(),
		Email:          "ops@sangamops.in",
		HashedPassword: string(hashed),
		FullName:       "Operations Admin",
		Department:     "Control Room",
		Phone:          "+91-9876543200",
		Role:           "admin",
		IsActive:       true,
		Permissions:    pq.StringArray{"alerts:write", "zones:write", "devices:write"},
	}

	var existing auth.User
	if err := db.DB.First(&existing, "email = ?", admin.Email).Error; err == nil {
		return nil
	}
	return db.DB.Create(&admin).Error
}
