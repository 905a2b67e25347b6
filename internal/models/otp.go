package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OtpVerification is one issued OTP code bound to a phone number.
// Records accumulate over time; several unexpired codes may exist for the
// same phone and verification matches on the exact (phone, code) pair.
type OtpVerification struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	Phone     string    `json:"phone" gorm:"index"` // normalized digits only
	Code      string    `json:"-"`                  // 6-digit code, never serialized
	ExpiresAt time.Time `json:"expires_at"`
	IsUsed    bool      `json:"is_used" gorm:"default:false"`
	CreatedAt time.Time `json:"created_at"`
}

// BeforeCreate hook assigns an ID when none is set.
func (o *OtpVerification) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}

// Valid reports whether the record can still satisfy a verification at now.
func (o *OtpVerification) Valid(now time.Time) bool {
	return !o.IsUsed && o.ExpiresAt.After(now)
}
