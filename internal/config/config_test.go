package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VerdeSupply/storefront_api/internal/config"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_USER", "storefront")
	t.Setenv("DB_NAME", "storefront")
	t.Setenv("JWT_SECRET", "test-jwt-secret")
	t.Setenv("ZOHO_WEBHOOK_SECRET", "test-webhook-secret")
}

func TestLoad(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 825, cfg.TaxRateBps)
	assert.Equal(t, "test-webhook-secret", cfg.Zoho.WebhookSecret)
}

func TestLoadMissingJWTSecret(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("JWT_SECRET", "")

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoadMissingWebhookSecret(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("ZOHO_WEBHOOK_SECRET", "")

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ZOHO_WEBHOOK_SECRET")
}

func TestLoadMissingDatabase(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("DB_HOST", "")

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_HOST")
}
