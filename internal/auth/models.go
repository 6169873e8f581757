package auth

import (
	"time"

	"github.com/lib/pq"
)

type Session struct {
	SessionID string    `gorm:"primaryKey" json:"-"`
	UserID    string    `gorm:"not null;unique" json:"-"`
	ExpiresAt time.Time `gorm:"not null"`
}

type User struct {
	UserID         string         `gorm:"primaryKey" json:"user_id"`
	Email          string         `gorm:"uniqueIndex" json:"email"`
	Password       string         `json:"password" gorm:"-"`
	HashedPassword string         `json:"-"`
	FullName       string         `json:"full_name"`
	Department     string         `json:"department"`
	Phone          string         `json:"phone"`
	Role           string         `gorm:"default:'user'" json:"role"`
	IsActive       bool           `gorm:"default:true" json:"is_active"`
	Permissions    pq.StringArray `gorm:"type:text[]" json:"permissions"`
	Session        Session        `gorm:"foreignKey:UserID" json:"session"`
}

func (Session) TableName() string { return "app_auth.sessions" }
func (User) TableName() string    { return "app_auth.users" }
