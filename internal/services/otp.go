package services

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/nearhood/nearhood-backend/internal/apperr"
	"github.com/nearhood/nearhood-backend/internal/models"
	"github.com/nearhood/nearhood-backend/internal/storage"
	"github.com/nearhood/nearhood-backend/internal/utils"
)

// OTPService issues verification codes.
type OTPService struct {
	store    storage.Store
	notifier Notifier
	ttl      time.Duration
	// echoCode controls whether the issued code is exposed to the caller.
	// Explicitly configured, never inferred from the environment.
	echoCode bool
	logger   *zap.Logger
}

// NewOTPService creates an issuance service.
func NewOTPService(store storage.Store, notifier Notifier, ttl time.Duration, echoCode bool, logger *zap.Logger) *OTPService {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &OTPService{
		store:    store,
		notifier: notifier,
		ttl:      ttl,
		echoCode: echoCode,
		logger:   logger,
	}
}

// OTPIssue is the caller-visible result of an issuance. Code is populated
// only when code echoing is enabled.
type OTPIssue struct {
	Code      string
	ExpiresAt time.Time
}

// RequestOTP normalizes the phone, generates a 6-digit code valid for the
// configured TTL, persists it and hands it to the notifier. Several valid
// codes may coexist for the same phone; issuing a new one does not
// invalidate older unexpired ones.
func (s *OTPService) RequestOTP(phone string) (*OTPIssue, error) {
	normalized := utils.NormalizePhone(phone)
	if len(normalized) < utils.MinPhoneDigits {
		return nil, fmt.Errorf("phone must contain at least %d digits: %w", utils.MinPhoneDigits, apperr.ErrInvalidInput)
	}

	code, err := utils.GenerateSecureOTP()
	if err != nil {
		return nil, fmt.Errorf("failed to generate OTP: %w", err)
	}

	otp, err := s.store.CreateOTP(&models.OtpVerification{
		Phone:     normalized,
		Code:      code,
		ExpiresAt: time.Now().Add(s.ttl),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to persist OTP: %w", err)
	}

	if err := s.notifier.SendOTP(normalized, code); err != nil {
		// The record stays valid; the caller may retry delivery by
		// requesting a fresh code.
		s.logger.Warn("otp delivery failed", zap.String("phone", normalized), zap.Error(err))
	}

	issue := &OTPIssue{ExpiresAt: otp.ExpiresAt}
	if s.echoCode {
		issue.Code = code
	}
	return issue, nil
}
