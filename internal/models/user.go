package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User roles within a society.
const (
	RoleResident  = "resident"
	RolePresident = "president"
)

// ValidRole reports whether role is one of the accepted role values.
func ValidRole(role string) bool {
	return role == RoleResident || role == RolePresident
}

// User represents a registered member of the society.
type User struct {
	ID         string    `json:"id" gorm:"primaryKey"`
	Name       string    `json:"name"`
	Phone      string    `json:"phone" gorm:"uniqueIndex"` // normalized digits only
	Flat       string    `json:"flat"`
	Floor      string    `json:"floor"`
	Block      string    `json:"block"`
	Role       string    `json:"role"` // "resident" or "president"
	IsVerified bool      `json:"is_verified" gorm:"default:false"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"-"`
}

// BeforeCreate hook assigns an ID when none is set.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// UserRegistration carries the profile fields required on first verification.
type UserRegistration struct {
	Name  string `json:"name"`
	Flat  string `json:"flat"`
	Floor string `json:"floor"`
	Block string `json:"block"`
	Role  string `json:"role"`
}

// Complete reports whether every registration field was supplied.
func (r *UserRegistration) Complete() bool {
	return r.Name != "" && r.Flat != "" && r.Floor != "" && r.Block != "" && r.Role != ""
}

// UserUpdate holds partial fields for update-by-ID. Nil means "leave as is".
type UserUpdate struct {
	Name       *string
	Flat       *string
	Floor      *string
	Block      *string
	Role       *string
	IsVerified *bool
}
