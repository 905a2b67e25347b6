package services

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nearhood/nearhood-backend/internal/apperr"
	"github.com/nearhood/nearhood-backend/internal/storage"
)

// mockNotifier implements Notifier for testing.
type mockNotifier struct {
	SendOTPFunc func(phone, code string) error

	sentPhones []string
	sentCodes  []string
}

func (m *mockNotifier) SendOTP(phone, code string) error {
	m.sentPhones = append(m.sentPhones, phone)
	m.sentCodes = append(m.sentCodes, code)
	if m.SendOTPFunc != nil {
		return m.SendOTPFunc(phone, code)
	}
	return nil
}

func newOTPServiceForTest(t *testing.T, echo bool) (*OTPService, *storage.MemoryStore, *mockNotifier) {
	t.Helper()

	store := storage.NewMemoryStore()
	notifier := &mockNotifier{}
	svc := NewOTPService(store, notifier, 5*time.Minute, echo, zap.NewNop())
	return svc, store, notifier
}

func TestRequestOTPIssuesSixDigitCode(t *testing.T) {
	svc, store, notifier := newOTPServiceForTest(t, true)

	before := time.Now()
	issue, err := svc.RequestOTP("555-123-4567")
	require.NoError(t, err)

	require.Len(t, issue.Code, 6)
	assert.GreaterOrEqual(t, issue.Code, "100000")
	assert.LessOrEqual(t, issue.Code, "999999")

	// Expiry is five minutes from issuance.
	assert.WithinDuration(t, before.Add(5*time.Minute), issue.ExpiresAt, 2*time.Second)

	// Record persisted under the normalized phone.
	otp, err := store.GetValidOTP("5551234567", issue.Code)
	require.NoError(t, err)
	assert.Equal(t, "5551234567", otp.Phone)

	// Notifier got the normalized phone and the same code.
	require.Len(t, notifier.sentPhones, 1)
	assert.Equal(t, "5551234567", notifier.sentPhones[0])
	assert.Equal(t, issue.Code, notifier.sentCodes[0])
}

func TestRequestOTPRejectsShortPhone(t *testing.T) {
	svc, _, notifier := newOTPServiceForTest(t, true)

	_, err := svc.RequestOTP("12345")
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
	assert.Empty(t, notifier.sentPhones)

	_, err = svc.RequestOTP("")
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)

	// Non-digit noise does not help a short number.
	_, err = svc.RequestOTP("abc-12-345")
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
}

func TestRequestOTPEchoDisabledHidesCode(t *testing.T) {
	svc, _, notifier := newOTPServiceForTest(t, false)

	issue, err := svc.RequestOTP("5551234567")
	require.NoError(t, err)
	assert.Empty(t, issue.Code)
	assert.False(t, issue.ExpiresAt.IsZero())

	// The notifier still receives the real code.
	require.Len(t, notifier.sentCodes, 1)
	assert.Len(t, notifier.sentCodes[0], 6)
}

func TestRequestOTPSurvivesNotifierFailure(t *testing.T) {
	svc, store, notifier := newOTPServiceForTest(t, true)
	notifier.SendOTPFunc = func(phone, code string) error {
		return errors.New("sms gateway down")
	}

	issue, err := svc.RequestOTP("5551234567")
	require.NoError(t, err)

	// The record is persisted even though delivery failed.
	_, err = store.GetValidOTP("5551234567", issue.Code)
	require.NoError(t, err)
}

func TestRequestOTPAllowsMultipleOutstandingCodes(t *testing.T) {
	svc, store, _ := newOTPServiceForTest(t, true)

	first, err := svc.RequestOTP("5551234567")
	require.NoError(t, err)
	second, err := svc.RequestOTP("5551234567")
	require.NoError(t, err)

	// Both codes stay valid; neither is privileged.
	_, err = store.GetValidOTP("5551234567", first.Code)
	require.NoError(t, err)
	_, err = store.GetValidOTP("5551234567", second.Code)
	require.NoError(t, err)
}
