package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage drivers.
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// Config holds application configuration.
type Config struct {
	Storage      string
	DatabaseURL  string
	Port         string
	IsProduction bool
	JWTSecret    string

	MigrationsPath      string
	ChartOfAccountsFile string
	RedisURL            string
	FxCacheTTL          time.Duration
	RateLimit           string
	CORSAllowedOrigins  []string
	ShutdownTimeout     time.Duration
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("STORAGE", StoragePostgres)
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.SetDefault("CHART_OF_ACCOUNTS_FILE", "config/chart_of_accounts.yaml")
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("FX_CACHE_TTL", "24h")
	v.SetDefault("RATE_LIMIT", "100-M")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")
	v.AutomaticEnv()

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Storage:             strings.ToLower(v.GetString("STORAGE")),
		DatabaseURL:         v.GetString("PGSQL_URL"),
		Port:                v.GetString("PORT"),
		IsProduction:        v.GetBool("IS_PRODUCTION"),
		JWTSecret:           v.GetString("JWT_SECRET"),
		MigrationsPath:      v.GetString("MIGRATIONS_PATH"),
		ChartOfAccountsFile: v.GetString("CHART_OF_ACCOUNTS_FILE"),
		RedisURL:            v.GetString("REDIS_URL"),
		RateLimit:           v.GetString("RATE_LIMIT"),
	}

	switch cfg.Storage {
	case StoragePostgres:
		if cfg.DatabaseURL == "" {
			slog.Warn("PGSQL_URL environment variable not set")
		}
	case StorageMemory:
	default:
		return nil, fmt.Errorf("unknown STORAGE %q, expected %q or %q", cfg.Storage, StoragePostgres, StorageMemory)
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
		slog.Warn("PORT environment variable not set, using default", slog.String("port", cfg.Port))
	}

	if cfg.IsProduction && cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		return nil, fmt.Errorf("JWT_SECRET must be set in production")
	}

	var err error
	if cfg.FxCacheTTL, err = time.ParseDuration(v.GetString("FX_CACHE_TTL")); err != nil {
		return nil, fmt.Errorf("invalid FX_CACHE_TTL: %w", err)
	}
	if cfg.ShutdownTimeout, err = time.ParseDuration(v.GetString("SHUTDOWN_TIMEOUT")); err != nil {
		return nil, fmt.Errorf("invalid SHUTDOWN_TIMEOUT: %w", err)
	}

	for _, origin := range strings.Split(v.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	return cfg, nil
}
