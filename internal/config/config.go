package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the ledger client
type Config struct {
	// Backend
	API APIConfig

	// Logging
	LogLevel string
	Env      string

	// Reference defaults used when a name cannot be resolved
	Defaults DefaultsConfig
}

// APIConfig holds the REST backend connection settings
type APIConfig struct {
	BaseURL   string
	Timeout   time.Duration // 0 = no client timeout
	RateLimit int           // requests per minute, 0 = unlimited
	RateBurst int
}

// DefaultsConfig holds fallback values for unresolved references
type DefaultsConfig struct {
	PaymentMethodID int
	DepositPath     string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		API: APIConfig{
			BaseURL: getEnv("API_BASE_URL", "http://localhost:8080"),
		},
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Env:      getEnv("ENV", "development"),
		Defaults: DefaultsConfig{
			DepositPath: getEnv("DEFAULT_DEPOSIT_PATH", "현금"),
		},
	}

	var err error
	if cfg.API.Timeout, err = getEnvDuration("API_TIMEOUT", 0); err != nil {
		return nil, err
	}
	if cfg.API.RateLimit, err = getEnvInt("API_RATE_LIMIT", 0); err != nil {
		return nil, err
	}
	if cfg.API.RateBurst, err = getEnvInt("API_RATE_BURST", 10); err != nil {
		return nil, err
	}
	if cfg.Defaults.PaymentMethodID, err = getEnvInt("DEFAULT_PAYMENT_METHOD_ID", 1); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// IsProduction reports whether ENV is production
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func (c *Config) validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("API_BASE_URL must be an absolute URL, got %q", c.API.BaseURL)
	}
	if c.API.Timeout < 0 {
		return fmt.Errorf("API_TIMEOUT must not be negative")
	}
	if c.API.RateLimit < 0 {
		return fmt.Errorf("API_RATE_LIMIT must not be negative")
	}
	if c.API.RateLimit > 0 && c.API.RateBurst < 1 {
		return fmt.Errorf("API_RATE_BURST must be at least 1 when API_RATE_LIMIT is set")
	}
	if c.Defaults.PaymentMethodID < 1 {
		return fmt.Errorf("DEFAULT_PAYMENT_METHOD_ID must be positive")
	}
	if c.Defaults.DepositPath == "" {
		return fmt.Errorf("DEFAULT_DEPOSIT_PATH is required")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration: %w", key, err)
	}
	return d, nil
}
