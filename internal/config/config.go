package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
// It is the single source of truth for runtime parameters.
type Config struct {
	Port      string
	Env       string
	JWTSecret string

	// TaxRateBps is the sales tax rate in basis points (825 = 8.25%).
	TaxRateBps int

	DB      DatabaseConfig
	Redis   RedisConfig
	Twilio  TwilioConfig
	Zoho    ZohoConfig
	Paygate PaygateConfig
	Worker  WorkerConfig
}

// DatabaseConfig contains PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// RedisConfig contains Redis connection parameters.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// TwilioConfig contains credentials for the Twilio Messages API.
type TwilioConfig struct {
	AccountSID string
	AuthToken  string
	FromNumber string
}

// ZohoConfig contains OAuth credentials for Zoho CRM and Books.
type ZohoConfig struct {
	ClientID       string
	ClientSecret   string
	RefreshToken   string
	OrganizationID string
	WebhookSecret  string
}

// PaygateConfig contains credentials for the payment gateway.
type PaygateConfig struct {
	BaseURL  string
	APIKey   string
	Currency string
}

// WorkerConfig contains interval configuration for background workers.
type WorkerConfig struct {
	SyncJobInterval     time.Duration
	CatalogSyncInterval time.Duration
	SyncJobMaxAttempts  int
}

// Load reads configuration from environment variables. If a .env file exists
// in the working directory, it will be loaded first. It returns a populated
// Config or an error with a human-friendly message.
func Load() (*Config, error) {
	// Load .env if present; ignore error if file is missing so that production
	// environments relying solely on real environment variables keep working.
	_ = godotenv.Load()

	cfg := &Config{}

	// Server
	cfg.Port = getEnv("PORT", "8080")
	cfg.Env = getEnv("ENV", "development")
	cfg.JWTSecret = getEnv("JWT_SECRET", "")
	cfg.TaxRateBps = getEnvInt("TAX_RATE_BPS", 825)

	// Database
	cfg.DB = DatabaseConfig{
		Host:     getEnv("DB_HOST", ""),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", ""),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", ""),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}

	// Redis
	cfg.Redis = RedisConfig{
		Host:     getEnv("REDIS_HOST", "redis"),
		Port:     getEnv("REDIS_PORT", "6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       getEnvInt("REDIS_DB", 0),
	}

	// Twilio
	cfg.Twilio = TwilioConfig{
		AccountSID: getEnv("TWILIO_ACCOUNT_SID", ""),
		AuthToken:  getEnv("TWILIO_AUTH_TOKEN", ""),
		FromNumber: getEnv("TWILIO_FROM_NUMBER", ""),
	}

	// Zoho
	cfg.Zoho = ZohoConfig{
		ClientID:       getEnv("ZOHO_CLIENT_ID", ""),
		ClientSecret:   getEnv("ZOHO_CLIENT_SECRET", ""),
		RefreshToken:   getEnv("ZOHO_REFRESH_TOKEN", ""),
		OrganizationID: getEnv("ZOHO_ORGANIZATION_ID", ""),
		WebhookSecret:  getEnv("ZOHO_WEBHOOK_SECRET", ""),
	}

	// Payment gateway
	cfg.Paygate = PaygateConfig{
		BaseURL:  getEnv("PAYGATE_BASE_URL", "https://api.paygate.example.com/v1"),
		APIKey:   getEnv("PAYGATE_API_KEY", ""),
		Currency: getEnv("PAYGATE_CURRENCY", "USD"),
	}

	// Workers (durations)
	var err error
	if cfg.Worker.SyncJobInterval, err = parseDurationEnv("SYNC_JOB_INTERVAL", "30s"); err != nil {
		return nil, fmt.Errorf("invalid SYNC_JOB_INTERVAL: %w", err)
	}
	if cfg.Worker.CatalogSyncInterval, err = parseDurationEnv("CATALOG_SYNC_INTERVAL", "1h"); err != nil {
		return nil, fmt.Errorf("invalid CATALOG_SYNC_INTERVAL: %w", err)
	}
	cfg.Worker.SyncJobMaxAttempts = getEnvInt("SYNC_JOB_MAX_ATTEMPTS", 5)

	// Basic validation for DB parameters — keeps messages concise and helpful.
	if cfg.DB.Host == "" || cfg.DB.User == "" || cfg.DB.Name == "" {
		return nil, errors.New("database configuration incomplete: ensure DB_HOST, DB_USER, and DB_NAME are set")
	}

	// Validate JWT_SECRET
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET must be set for authentication")
	}

	// An empty webhook secret would make every HMAC signature verify,
	// turning the webhook endpoint into an open write path.
	if cfg.Zoho.WebhookSecret == "" {
		return nil, errors.New("ZOHO_WEBHOOK_SECRET must be set for webhook verification")
	}

	if cfg.TaxRateBps < 0 {
		return nil, errors.New("TAX_RATE_BPS must be >= 0")
	}

	return cfg, nil
}

// getEnv returns the value of an environment variable or a default if empty.
func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// getEnvInt returns the value of an environment variable as an integer or a default if empty/invalid.
func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

// parseDurationEnv reads an environment variable and parses it as time.Duration.
// If the variable is empty, it falls back to the provided default value.
func parseDurationEnv(key, def string) (time.Duration, error) {
	raw := getEnv(key, def)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("duration must be >= 0")
	}
	return d, nil
}
