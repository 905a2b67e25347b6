package services

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/nearhood/nearhood-backend/internal/apperr"
	"github.com/nearhood/nearhood-backend/internal/models"
	"github.com/nearhood/nearhood-backend/internal/storage"
	"github.com/nearhood/nearhood-backend/internal/utils"
)

// AuthService verifies OTP codes and logs in or registers users.
type AuthService struct {
	store  storage.Store
	logger *zap.Logger
}

// NewAuthService creates a verification service.
func NewAuthService(store storage.Store, logger *zap.Logger) *AuthService {
	return &AuthService{store: store, logger: logger}
}

// VerifyOTP consumes a valid (phone, code) pair and resolves the user:
// an existing user is logged in (submitted profile fields are ignored), a
// new phone requires the full registration profile. Either way the
// resolved user ends up verified.
//
// The mark-used and create-or-update steps are separate storage calls. A
// crash in between leaves the code consumed with no user change; the
// resubmission then fails with ErrInvalidOrExpiredOtp rather than
// retrying cleanly. Known limitation, surfaced by the distinct error.
func (s *AuthService) VerifyOTP(phone, code string, reg *models.UserRegistration) (*models.User, error) {
	normalized := utils.NormalizePhone(phone)
	if len(normalized) < utils.MinPhoneDigits || code == "" {
		return nil, fmt.Errorf("phone and otp are required: %w", apperr.ErrInvalidInput)
	}

	otp, err := s.store.GetValidOTP(normalized, code)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, apperr.ErrInvalidOrExpiredOtp
		}
		return nil, err
	}

	if err := s.store.MarkOTPUsed(otp.ID); err != nil {
		// Lost the race against a concurrent verification.
		return nil, apperr.ErrInvalidOrExpiredOtp
	}

	user, err := s.store.GetUserByPhone(normalized)
	switch {
	case err == nil:
		// Existing user logs in; profile fields in the request are ignored.
	case errors.Is(err, apperr.ErrNotFound):
		user, err = s.register(normalized, reg)
		if err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	verified := true
	user, err = s.store.UpdateUser(user.ID, &models.UserUpdate{IsVerified: &verified})
	if err != nil {
		return nil, err
	}

	s.logger.Info("otp verified",
		zap.String("user_id", user.ID),
		zap.String("phone", normalized),
	)
	return user, nil
}

func (s *AuthService) register(phone string, reg *models.UserRegistration) (*models.User, error) {
	if reg == nil || !reg.Complete() {
		return nil, apperr.ErrMissingRegistrationFields
	}
	if !models.ValidRole(reg.Role) {
		return nil, fmt.Errorf("role must be %q or %q: %w",
			models.RoleResident, models.RolePresident, apperr.ErrValidationError)
	}

	user, err := s.store.CreateUser(reg, phone)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user registered",
		zap.String("user_id", user.ID),
		zap.String("role", user.Role),
	)
	return user, nil
}
