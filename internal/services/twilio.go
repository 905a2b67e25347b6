package services

import (
	"fmt"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"go.uber.org/zap"

	"github.com/nearhood/nearhood-backend/internal/config"
)

// TwilioNotifier sends OTP codes over SMS via Twilio.
type TwilioNotifier struct {
	client *twilio.RestClient
	from   string
	logger *zap.Logger
}

// NewTwilioNotifier creates a Twilio-backed notifier.
func NewTwilioNotifier(cfg config.TwilioConfig, logger *zap.Logger) (*TwilioNotifier, error) {
	if !cfg.Configured() {
		return nil, fmt.Errorf("missing Twilio credentials")
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.AccountSID,
		Password: cfg.AuthToken,
	})

	return &TwilioNotifier{
		client: client,
		from:   cfg.From,
		logger: logger,
	}, nil
}

// SendOTP sends the verification code as an SMS message.
func (t *TwilioNotifier) SendOTP(phone, code string) error {
	params := &twilioApi.CreateMessageParams{}
	params.SetFrom(t.from)
	params.SetTo("+" + phone)
	params.SetBody(fmt.Sprintf("Your Nearhood verification code is %s. It expires in 5 minutes.", code))

	resp, err := t.client.Api.CreateMessage(params)
	if err != nil {
		t.logger.Error("failed to send otp sms", zap.String("phone", phone), zap.Error(err))
		return err
	}

	t.logger.Info("otp sms sent", zap.String("phone", phone), zap.Stringp("sid", resp.Sid))
	return nil
}
