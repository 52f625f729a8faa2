package config_test

import (
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/emilythestrangee/reddit-lite/internal/config"
)

func clearEnv(t *testing.T) {
	for _, key := range []string{
		"PORT", "GIN_MODE", "LOG_LEVEL", "CORS_ORIGINS", "DB_DRIVER", "DB_HOST", "DB_PORT",
		"DB_USER", "DB_PASSWORD", "DB_NAME", "DB_SSLMODE", "DB_LOG", "JWT_SECRET",
		"SEED_COMMUNITIES", "TOKEN_TTL",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

// TestLoad_Defaults verifies the in-memory dev setup boots without any environment.
func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg := config.Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "INFO", cfg.LogLevel)
	assert.Equal(t, config.DriverSQLite, cfg.DB.Driver)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, []string{"Technology", "Gaming", "Movies"}, cfg.Seeds)
	assert.Equal(t, 72*time.Hour, cfg.TokenTTL)
	assert.NotEmpty(t, cfg.JWT.Secret)
	assert.False(t, cfg.DB.LogSQL)
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("DB_DRIVER", "Postgres")
	t.Setenv("DB_LOG", "true")
	t.Setenv("SEED_COMMUNITIES", " Go , ,Rust")
	t.Setenv("TOKEN_TTL", "15m")
	t.Setenv("CORS_ORIGINS", "http://localhost:3000,https://example.com")

	cfg := config.Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
	assert.Equal(t, config.DriverPostgres, cfg.DB.Driver)
	assert.True(t, cfg.DB.LogSQL)
	assert.Equal(t, []string{"Go", "Rust"}, cfg.Seeds)
	assert.Equal(t, 15*time.Minute, cfg.TokenTTL)
	assert.Equal(t, []string{"http://localhost:3000", "https://example.com"}, cfg.CORSOrigins)
}

func TestLoad_BadTTLFallsBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("TOKEN_TTL", "soon")

	assert.Equal(t, 72*time.Hour, config.Load().TokenTTL)
}

func TestLoad_EmptySeedListDisablesSeeding(t *testing.T) {
	clearEnv(t)
	t.Setenv("SEED_COMMUNITIES", "")

	assert.Empty(t, config.Load().Seeds)
}
