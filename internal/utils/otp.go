package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

// MinPhoneDigits is the minimum digit count a phone number must normalize to.
const MinPhoneDigits = 10

// GenerateSecureOTP generates a cryptographically secure 6-digit OTP in the
// range 100000-999999, so the code never needs leading-zero padding.
func GenerateSecureOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("failed to generate random number: %w", err)
	}
	return fmt.Sprintf("%d", n.Int64()+100000), nil
}

// NormalizePhone strips every non-digit character from phone.
// "555-123-4567" and "(555) 123 4567" both normalize to "5551234567".
func NormalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ValidPhone reports whether phone normalizes to at least MinPhoneDigits digits.
func ValidPhone(phone string) bool {
	return len(NormalizePhone(phone)) >= MinPhoneDigits
}
