package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/msomdec/blogging/internal/blogging"
)

// Config holds application configuration
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Log       LogConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Port string
}

type DatabaseConfig struct {
	Provider string
	// ConnectionString is empty unless set; the blogging context then
	// falls back to its default.
	ConnectionString string
	MigrateOnStart   bool
}

type LogConfig struct {
	Level string
}

type RateLimitConfig struct {
	// WritesPerSecond refills each client's bucket of mutating API calls.
	WritesPerSecond float64
	Burst           float64
}

// Load reads configuration from environment variables and an optional .env file.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DATABASE_PROVIDER", string(blogging.ProviderSQLServer))
	v.SetDefault("DATABASE_CONNECTION_STRING", "")
	v.SetDefault("MIGRATE_ON_START", true)
	v.SetDefault("WRITE_RATE_LIMIT", 5)
	v.SetDefault("WRITE_RATE_BURST", 20)

	cfg := &Config{
		Server: ServerConfig{
			Port: v.GetString("PORT"),
		},
		Database: DatabaseConfig{
			Provider:         strings.ToLower(strings.TrimSpace(v.GetString("DATABASE_PROVIDER"))),
			ConnectionString: v.GetString("DATABASE_CONNECTION_STRING"),
			MigrateOnStart:   v.GetBool("MIGRATE_ON_START"),
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
		RateLimit: RateLimitConfig{
			WritesPerSecond: v.GetFloat64("WRITE_RATE_LIMIT"),
			Burst:           v.GetFloat64("WRITE_RATE_BURST"),
		},
	}

	switch blogging.Provider(cfg.Database.Provider) {
	case blogging.ProviderSQLServer, blogging.ProviderSQLite:
	default:
		return nil, fmt.Errorf("%w: %q", blogging.ErrUnknownProvider, cfg.Database.Provider)
	}
	if cfg.RateLimit.Burst < 1 {
		return nil, fmt.Errorf("WRITE_RATE_BURST must be at least 1, got %v", cfg.RateLimit.Burst)
	}

	return cfg, nil
}

// BloggingOptions converts the database settings into blogging context options.
func (c *Config) BloggingOptions() blogging.Options {
	return blogging.Options{
		Provider:         blogging.Provider(c.Database.Provider),
		ConnectionString: c.Database.ConnectionString,
	}
}

// SlogLevel maps Log.Level to a slog level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(strings.TrimSpace(c.Log.Level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
