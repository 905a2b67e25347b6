package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App    AppConfig
	DB     DBConfig
	OTP    OTPConfig
	Auth   AuthConfig
	Twilio TwilioConfig
	Logger LoggerConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name           string
	Env            string
	Port           string
	UseMemoryStore bool
}

// DBConfig holds PostgreSQL connection values.
type DBConfig struct {
	User     string
	Password string
	Name     string
	Host     string
	Port     string
	// InstanceConnectionName switches the DSN to a Cloud SQL unix socket.
	InstanceConnectionName string
}

// OTPConfig controls code issuance.
type OTPConfig struct {
	TTL time.Duration
	// EchoCode returns the generated code in the send-otp response. A
	// development convenience only; must never be enabled in production.
	EchoCode bool
	// SweepInterval is how often expired records are purged.
	SweepInterval time.Duration
}

// AuthConfig defines session token parameters.
type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

// TwilioConfig holds SMS delivery credentials.
type TwilioConfig struct {
	AccountSID string
	AuthToken  string
	From       string
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// Load reads configuration from environment variables, applying defaults
// where possible. A missing .env file is not an error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		App: AppConfig{
			Name:           getEnv("APP_NAME", "nearhood-backend"),
			Env:            getEnv("APP_ENV", "development"),
			Port:           getEnv("PORT", "8080"),
			UseMemoryStore: getEnvAsBool("USE_MEMORY_STORE", false),
		},
		DB: DBConfig{
			User:                   getEnv("DB_USER", "postgres"),
			Password:               os.Getenv("DB_PASS"),
			Name:                   getEnv("DB_NAME", "nearhood"),
			Host:                   getEnv("DB_HOST", "localhost"),
			Port:                   getEnv("DB_PORT", "5432"),
			InstanceConnectionName: os.Getenv("INSTANCE_CONNECTION_NAME"),
		},
		OTP: OTPConfig{
			TTL:           time.Duration(getEnvAsInt("OTP_TTL_MINUTES", 5)) * time.Minute,
			EchoCode:      getEnvAsBool("OTP_ECHO_CODE", false),
			SweepInterval: time.Duration(getEnvAsInt("OTP_SWEEP_INTERVAL_MINUTES", 10)) * time.Minute,
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET", "dev-secret"),
			TokenTTL:  time.Duration(getEnvAsInt("JWT_TTL_MINUTES", 60)) * time.Minute,
		},
		Twilio: TwilioConfig{
			AccountSID: os.Getenv("TWILIO_ACCOUNT_SID"),
			AuthToken:  os.Getenv("TWILIO_AUTH_TOKEN"),
			From:       os.Getenv("TWILIO_PHONE_NUMBER"),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	if cfg.App.Env == "production" && cfg.OTP.EchoCode {
		return nil, fmt.Errorf("OTP_ECHO_CODE must not be enabled in production")
	}

	return cfg, nil
}

// IsProduction reports whether the app runs with production settings.
func (a AppConfig) IsProduction() bool {
	return a.Env == "production"
}

// Configured reports whether all Twilio credentials are present.
func (t TwilioConfig) Configured() bool {
	return t.AccountSID != "" && t.AuthToken != "" && t.From != ""
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
