package storage

import (
	"github.com/nearhood/nearhood-backend/internal/models"
)

// Store defines the interface for storage operations. An instance is
// constructed in main and handed to services and handlers; there is no
// package-level singleton, so a persistent backend can be swapped in
// without touching the core logic.
type Store interface {
	// User operations
	GetUser(id string) (*models.User, error)
	GetUserByPhone(phone string) (*models.User, error)
	CreateUser(reg *models.UserRegistration, phone string) (*models.User, error)
	UpdateUser(id string, update *models.UserUpdate) (*models.User, error)

	// OTP operations
	CreateOTP(otp *models.OtpVerification) (*models.OtpVerification, error)
	GetValidOTP(phone, code string) (*models.OtpVerification, error)
	// MarkOTPUsed consumes the record. It fails when the record is absent
	// or already used, so two concurrent verifications of the same OTP
	// cannot both succeed.
	MarkOTPUsed(id string) error
	// DeleteExpiredOTPs purges records whose expiry has passed and
	// returns how many were removed.
	DeleteExpiredOTPs() (int64, error)

	// Service operations
	CreateService(svc *models.Service) (*models.Service, error)
	ListServices() ([]*models.Service, error)
	ListServicesByUser(userID string) ([]*models.Service, error)
}
