package apperr

import "errors"

// Authentication and registration errors.
var (
	// ErrInvalidInput covers malformed or missing request fields.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidOrExpiredOtp means no unused, unexpired OTP matched the
	// submitted (phone, code) pair.
	ErrInvalidOrExpiredOtp = errors.New("invalid or expired otp")

	// ErrMissingRegistrationFields signals a first-time registration that
	// needs a resubmission with the full profile. Distinct from
	// ErrInvalidInput: the OTP was consumed and the caller should prompt
	// for profile fields, not show a hard failure.
	ErrMissingRegistrationFields = errors.New("missing registration fields")
)

// Lookup and validation errors.
var (
	ErrNotFound        = errors.New("not found")
	ErrValidationError = errors.New("validation failed")
)

// Code returns the stable machine-readable code for err, or "internal_error"
// for anything unrecognized.
func Code(err error) string {
	switch {
	case errors.Is(err, ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, ErrInvalidOrExpiredOtp):
		return "invalid_or_expired_otp"
	case errors.Is(err, ErrMissingRegistrationFields):
		return "missing_registration_fields"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrValidationError):
		return "validation_error"
	default:
		return "internal_error"
	}
}
