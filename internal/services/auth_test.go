package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nearhood/nearhood-backend/internal/apperr"
	"github.com/nearhood/nearhood-backend/internal/models"
	"github.com/nearhood/nearhood-backend/internal/storage"
)

func newAuthServiceForTest(t *testing.T) (*AuthService, *storage.MemoryStore) {
	t.Helper()

	store := storage.NewMemoryStore()
	return NewAuthService(store, zap.NewNop()), store
}

func issueOTP(t *testing.T, store *storage.MemoryStore, phone, code string) {
	t.Helper()

	_, err := store.CreateOTP(&models.OtpVerification{
		Phone:     phone,
		Code:      code,
		ExpiresAt: time.Now().Add(5 * time.Minute),
	})
	require.NoError(t, err)
}

func fullProfile() *models.UserRegistration {
	return &models.UserRegistration{
		Name:  "Asha Rao",
		Flat:  "402",
		Floor: "4",
		Block: "B",
		Role:  models.RoleResident,
	}
}

func TestVerifyOTPRegistersNewUser(t *testing.T) {
	svc, store := newAuthServiceForTest(t)
	issueOTP(t, store, "5551234567", "482913")

	// Unnormalized phone input matches the normalized record.
	user, err := svc.VerifyOTP("555-123-4567", "482913", fullProfile())
	require.NoError(t, err)

	assert.Equal(t, "5551234567", user.Phone)
	assert.Equal(t, "Asha Rao", user.Name)
	assert.Equal(t, models.RoleResident, user.Role)
	assert.True(t, user.IsVerified)
	assert.NotEmpty(t, user.ID)
}

func TestVerifyOTPSameCodeTwice(t *testing.T) {
	svc, store := newAuthServiceForTest(t)
	issueOTP(t, store, "5551234567", "482913")

	_, err := svc.VerifyOTP("5551234567", "482913", fullProfile())
	require.NoError(t, err)

	// The consumed record can never satisfy a second verification.
	_, err = svc.VerifyOTP("5551234567", "482913", fullProfile())
	assert.ErrorIs(t, err, apperr.ErrInvalidOrExpiredOtp)
}

func TestVerifyOTPWrongOrExpiredCode(t *testing.T) {
	svc, store := newAuthServiceForTest(t)
	issueOTP(t, store, "5551234567", "482913")

	_, err := svc.VerifyOTP("5551234567", "000000", fullProfile())
	assert.ErrorIs(t, err, apperr.ErrInvalidOrExpiredOtp)

	// Expired records are rejected even with the right code.
	_, err = store.CreateOTP(&models.OtpVerification{
		Phone:     "5559876543",
		Code:      "111111",
		ExpiresAt: time.Now().Add(-time.Second),
	})
	require.NoError(t, err)

	_, err = svc.VerifyOTP("5559876543", "111111", fullProfile())
	assert.ErrorIs(t, err, apperr.ErrInvalidOrExpiredOtp)
}

func TestVerifyOTPMissingInput(t *testing.T) {
	svc, _ := newAuthServiceForTest(t)

	_, err := svc.VerifyOTP("", "482913", fullProfile())
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)

	_, err = svc.VerifyOTP("5551234567", "", fullProfile())
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)

	_, err = svc.VerifyOTP("123", "482913", fullProfile())
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
}

func TestVerifyOTPNewUserRequiresFullProfile(t *testing.T) {
	svc, store := newAuthServiceForTest(t)
	issueOTP(t, store, "5551234567", "482913")

	partial := fullProfile()
	partial.Name = ""

	_, err := svc.VerifyOTP("5551234567", "482913", partial)
	assert.ErrorIs(t, err, apperr.ErrMissingRegistrationFields)

	issueOTP(t, store, "5551234567", "555555")
	_, err = svc.VerifyOTP("5551234567", "555555", nil)
	assert.ErrorIs(t, err, apperr.ErrMissingRegistrationFields)
}

func TestVerifyOTPRejectsUnknownRole(t *testing.T) {
	svc, store := newAuthServiceForTest(t)
	issueOTP(t, store, "5551234567", "482913")

	profile := fullProfile()
	profile.Role = "janitor"

	_, err := svc.VerifyOTP("5551234567", "482913", profile)
	assert.ErrorIs(t, err, apperr.ErrValidationError)
}

func TestVerifyOTPExistingUserIgnoresProfileFields(t *testing.T) {
	svc, store := newAuthServiceForTest(t)

	existing, err := store.CreateUser(fullProfile(), "5551234567")
	require.NoError(t, err)

	issueOTP(t, store, "5551234567", "482913")

	intruder := &models.UserRegistration{
		Name:  "Someone Else",
		Flat:  "101",
		Floor: "1",
		Block: "A",
		Role:  models.RolePresident,
	}

	user, err := svc.VerifyOTP("5551234567", "482913", intruder)
	require.NoError(t, err)

	assert.Equal(t, existing.ID, user.ID)
	assert.Equal(t, "Asha Rao", user.Name)
	assert.Equal(t, models.RoleResident, user.Role)
	assert.Equal(t, "402", user.Flat)
	assert.True(t, user.IsVerified)
}

func TestVerifyOTPIdempotentVerifiedFlag(t *testing.T) {
	svc, store := newAuthServiceForTest(t)

	issueOTP(t, store, "5551234567", "111111")
	first, err := svc.VerifyOTP("5551234567", "111111", fullProfile())
	require.NoError(t, err)
	require.True(t, first.IsVerified)

	// A later login re-applies the flag with no additional effect.
	issueOTP(t, store, "5551234567", "222222")
	second, err := svc.VerifyOTP("5551234567", "222222", nil)
	require.NoError(t, err)
	assert.True(t, second.IsVerified)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.CreatedAt, second.CreatedAt)
}
