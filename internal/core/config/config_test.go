package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	os.Setenv("PRODUCT_SERVICE_URL", "https://products.test")
	os.Setenv("CUSTOMER_SERVICE_URL", "https://customers.test")
	os.Setenv("COUPON_SERVICE_URL", "https://coupons.test")
	t.Cleanup(func() {
		os.Unsetenv("PRODUCT_SERVICE_URL")
		os.Unsetenv("CUSTOMER_SERVICE_URL")
		os.Unsetenv("COUPON_SERVICE_URL")
	})
}

// TestLoad_Defaults verifies that default values are used when env vars are missing.
func TestLoad_Defaults(t *testing.T) {
	os.Unsetenv("APP_ENV")
	os.Unsetenv("LOG_LEVEL")
	os.Unsetenv("SERVER_PORT")
	setRequiredEnv(t)

	cfg, err := Load(".")
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, "redis://localhost:6379/0", cfg.Redis.URL)
	assert.Equal(t, 10, cfg.Services.TimeoutSeconds)
	assert.Equal(t, int64(100000), cfg.Discount.VIPThreshold)
	assert.Equal(t, int64(50000), cfg.Discount.PremiumThreshold)
}

// TestLoad_EnvVars verifies that environment variables override defaults.
func TestLoad_EnvVars(t *testing.T) {
	os.Setenv("APP_ENV", "production")
	os.Setenv("LOG_LEVEL", "debug")
	os.Setenv("SERVER_PORT", "9090")
	os.Setenv("REDIS_URL", "redis://cache.test:6380/1")
	os.Setenv("DISCOUNT_VIP_THRESHOLD", "200000")
	setRequiredEnv(t)
	defer func() {
		os.Unsetenv("APP_ENV")
		os.Unsetenv("LOG_LEVEL")
		os.Unsetenv("SERVER_PORT")
		os.Unsetenv("REDIS_URL")
		os.Unsetenv("DISCOUNT_VIP_THRESHOLD")
	}()

	cfg, err := Load(".")
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 9090, cfg.ServerPort)
	assert.Equal(t, "redis://cache.test:6380/1", cfg.Redis.URL)
	assert.Equal(t, "https://products.test", cfg.Services.ProductURL)
	assert.Equal(t, int64(200000), cfg.Discount.VIPThreshold)
}

// TestLoad_File verifies that values are loaded from a .env file.
func TestLoad_File(t *testing.T) {
	content := []byte(`
APP_ENV=staging
LOG_LEVEL=warn
SERVER_PORT=7070
PRODUCT_SERVICE_URL=https://products.staging.test
CUSTOMER_SERVICE_URL=https://customers.staging.test
COUPON_SERVICE_URL=https://coupons.staging.test
EXTERNAL_TIMEOUT_SECONDS=5
`)
	err := os.WriteFile(".env", content, 0644)
	require.NoError(t, err)
	defer os.Remove(".env")

	cfg, err := Load(".")
	require.NoError(t, err)

	assert.Equal(t, "staging", cfg.Environment)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, 7070, cfg.ServerPort)
	assert.Equal(t, 5, cfg.Services.TimeoutSeconds)
}

// TestLoad_ValidationFailure verifies that missing required fields return an error.
func TestLoad_ValidationFailure(t *testing.T) {
	os.Unsetenv("PRODUCT_SERVICE_URL")
	os.Unsetenv("CUSTOMER_SERVICE_URL")
	os.Unsetenv("COUPON_SERVICE_URL")

	cfg, err := Load(".")
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "missing required configuration")
}
