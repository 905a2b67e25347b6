package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service is an offering listed by a society member, e.g. tuition or tiffin.
type Service struct {
	ID              string    `json:"id" gorm:"primaryKey"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Price           float64   `json:"price"`
	Category        string    `json:"category"`
	OfferedByUserID string    `json:"offered_by_user_id" gorm:"index"`
	CreatedAt       time.Time `json:"created_at"`
}

// BeforeCreate hook assigns an ID when none is set.
func (s *Service) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
