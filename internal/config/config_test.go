package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/nimblestore")
	for _, key := range []string{"PORT", "MIGRATIONS_DIR", "REDIS_URL", "PRODUCTS_CACHE_TTL", "RABBITMQ_URL",
		"OUTBOX_POLL_INTERVAL", "OUTBOX_BATCH_SIZE", "RATE_LIMIT_ENABLED", "ORDER_RATE_LIMIT_RPS", "ORDER_RATE_LIMIT_BURST"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "migrations", cfg.MigrationsDir)
	assert.Equal(t, 5*time.Minute, cfg.ProductsCacheTTL)
	assert.Equal(t, 5*time.Second, cfg.OutboxPollInterval)
	assert.Equal(t, int32(50), cfg.OutboxBatchSize)
	assert.False(t, cfg.RateLimitEnabled)
	assert.Equal(t, rate.Limit(10), cfg.OrderRateLimit)
	assert.Equal(t, 20, cfg.OrderRateBurst)
	assert.Empty(t, cfg.RedisURL)
	assert.Empty(t, cfg.RabbitMQURL)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://db/nimblestore")
	t.Setenv("PORT", "9090")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("PRODUCTS_CACHE_TTL", "30s")
	t.Setenv("OUTBOX_BATCH_SIZE", "0")
	t.Setenv("RATE_LIMIT_ENABLED", "true")
	t.Setenv("ORDER_RATE_LIMIT_RPS", "3")
	t.Setenv("ORDER_RATE_LIMIT_BURST", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "redis://localhost:6379/0", cfg.RedisURL)
	assert.Equal(t, 30*time.Second, cfg.ProductsCacheTTL)
	assert.Equal(t, int32(50), cfg.OutboxBatchSize)
	assert.True(t, cfg.RateLimitEnabled)
	assert.Equal(t, rate.Limit(3), cfg.OrderRateLimit)
	assert.Equal(t, 20, cfg.OrderRateBurst)
}

func TestLoadRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	_, err := Load()
	assert.EqualError(t, err, "DATABASE_URL is not set")
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("NIMBLESTORE_DOTENV_PROBE=loaded\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("NIMBLESTORE_DOTENV_PROBE") })

	assert.True(t, LoadDotEnv(path))
	assert.Equal(t, "loaded", os.Getenv("NIMBLESTORE_DOTENV_PROBE"))
	assert.False(t, LoadDotEnv(filepath.Join(dir, "missing.env")))
}
