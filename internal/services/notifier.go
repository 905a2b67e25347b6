package services

import (
	"go.uber.org/zap"
)

// Notifier delivers an OTP code to a phone number.
type Notifier interface {
	SendOTP(phone, code string) error
}

// LogNotifier writes codes to the log instead of sending SMS. Used in
// development when Twilio credentials are absent.
type LogNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier creates a log-only notifier.
func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// SendOTP logs the code and pretends delivery succeeded.
func (n *LogNotifier) SendOTP(phone, code string) error {
	n.logger.Info("otp issued (sms delivery disabled)",
		zap.String("phone", phone),
		zap.String("code", code),
	)
	return nil
}
