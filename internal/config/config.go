package config

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	Port        string
	GinMode     string
	LogLevel    string
	CORSOrigins []string

	DB       DBConfig
	JWT      JWTConfig
	Seeds    []string
	TokenTTL time.Duration
}

// DBConfig selects and addresses the backing database.
type DBConfig struct {
	Driver   string // "sqlite" (in-memory, default) or "postgres"
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
	LogSQL   bool
}

type JWTConfig struct {
	Secret []byte
}

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	defaultSecret = "reddit-lite-dev-secret"
)

// Load reads a .env file if present, then the process environment.
func Load() *Config {
	// Missing .env is normal outside local dev.
	_ = godotenv.Load()

	return &Config{
		Port:        getenv("PORT", "8080"),
		GinMode:     os.Getenv("GIN_MODE"),
		LogLevel:    strings.ToUpper(getenv("LOG_LEVEL", "INFO")),
		CORSOrigins: splitList(getenv("CORS_ORIGINS", "*")),
		DB: DBConfig{
			Driver:   strings.ToLower(getenv("DB_DRIVER", DriverSQLite)),
			Host:     getenv("DB_HOST", "localhost"),
			Port:     getenv("DB_PORT", "5432"),
			User:     os.Getenv("DB_USER"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     getenv("DB_NAME", "reddit_lite"),
			SSLMode:  getenv("DB_SSLMODE", "disable"),
			LogSQL:   os.Getenv("DB_LOG") == "true",
		},
		JWT: JWTConfig{
			Secret: []byte(getenv("JWT_SECRET", defaultSecret)),
		},
		// SEED_COMMUNITIES set to "" disables seeding.
		Seeds:    splitList(lookupEnv("SEED_COMMUNITIES", "Technology,Gaming,Movies")),
		TokenTTL: parseDuration(os.Getenv("TOKEN_TTL"), 72*time.Hour),
	}
}

// SlogLevel maps LogLevel onto a slog level, defaulting to Info.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// lookupEnv differs from getenv in keeping an explicitly empty value.
func lookupEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
