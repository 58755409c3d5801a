package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"API_BASE_URL", "API_TIMEOUT", "API_RATE_LIMIT", "API_RATE_BURST",
		"LOG_LEVEL", "ENV", "DEFAULT_PAYMENT_METHOD_ID", "DEFAULT_DEPOSIT_PATH",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080", cfg.API.BaseURL)
	assert.Equal(t, time.Duration(0), cfg.API.Timeout)
	assert.Equal(t, 0, cfg.API.RateLimit)
	assert.Equal(t, 1, cfg.Defaults.PaymentMethodID)
	assert.Equal(t, "현금", cfg.Defaults.DepositPath)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://ledger.example.com")
	t.Setenv("API_TIMEOUT", "5s")
	t.Setenv("API_RATE_LIMIT", "120")
	t.Setenv("API_RATE_BURST", "4")
	t.Setenv("ENV", "production")
	t.Setenv("DEFAULT_PAYMENT_METHOD_ID", "7")
	t.Setenv("DEFAULT_DEPOSIT_PATH", "Salary account")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://ledger.example.com", cfg.API.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.API.Timeout)
	assert.Equal(t, 120, cfg.API.RateLimit)
	assert.Equal(t, 4, cfg.API.RateBurst)
	assert.Equal(t, 7, cfg.Defaults.PaymentMethodID)
	assert.Equal(t, "Salary account", cfg.Defaults.DepositPath)
	assert.True(t, cfg.IsProduction())
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"relative base url", "API_BASE_URL", "localhost"},
		{"bad timeout", "API_TIMEOUT", "soon"},
		{"negative timeout", "API_TIMEOUT", "-1s"},
		{"bad rate limit", "API_RATE_LIMIT", "many"},
		{"negative rate limit", "API_RATE_LIMIT", "-5"},
		{"zero payment method", "DEFAULT_PAYMENT_METHOD_ID", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
