package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/finbooks/finbooks/internal/infrastructure/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	cfg, err := config.Load()
	require.NoError(t, err)

	require.NotEmpty(t, cfg.DatabaseURL)
	require.Equal(t, "8080", cfg.HTTPPort)
	require.Equal(t, "migrations", cfg.MigrationsPath)
	require.True(t, cfg.BalanceCacheEnabled)
	require.Equal(t, 100, cfg.RateLimitPerSecond)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://example")
	t.Setenv("REDIS_URL", "redis://example")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("DATABASE_TIMEOUT", "45s")
	t.Setenv("BALANCE_CACHE_ENABLED", "false")
	t.Setenv("RATE_LIMIT_PER_SECOND", "10")

	cfg, err := config.Load()
	require.NoError(t, err)

	require.Equal(t, "postgres://example", cfg.DatabaseURL)
	require.Equal(t, "redis://example", cfg.RedisURL)
	require.Equal(t, "9090", cfg.HTTPPort)
	require.Equal(t, 45*time.Second, cfg.DatabaseTimeout)
	require.False(t, cfg.BalanceCacheEnabled)
	require.Equal(t, 10, cfg.RateLimitPerSecond)
}

func TestLoadInvalidDuration(t *testing.T) {
	t.Setenv("HTTP_READ_TIMEOUT", "not-a-duration")

	_, err := config.Load()
	require.Error(t, err)
}
