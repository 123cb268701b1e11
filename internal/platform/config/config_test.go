package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newViper(values map[string]any) *viper.Viper {
	v := viper.New()
	v.SetDefault("STORAGE", StoragePostgres)
	v.SetDefault("PORT", "8080")
	v.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	v.SetDefault("FX_CACHE_TTL", "24h")
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")
	for k, val := range values {
		v.Set(k, val)
	}
	return v
}

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := fromViper(newViper(map[string]any{
		"PGSQL_URL":            "postgres://localhost/ledger",
		"CORS_ALLOWED_ORIGINS": "https://a.example, https://b.example,,",
	}))
	require.NoError(t, err)

	assert.Equal(t, StoragePostgres, cfg.Storage)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 24*time.Hour, cfg.FxCacheTTL)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
}

func TestFromViper_Errors(t *testing.T) {
	tests := []struct {
		name   string
		values map[string]any
	}{
		{"unknown storage", map[string]any{"STORAGE": "sqlite"}},
		{"bad ttl", map[string]any{"FX_CACHE_TTL": "tomorrow"}},
		{"bad shutdown timeout", map[string]any{"SHUTDOWN_TIMEOUT": "-"}},
		{"default secret in production", map[string]any{"IS_PRODUCTION": true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := fromViper(newViper(tt.values))
			assert.Error(t, err)
		})
	}
}

func TestFromViper_MemoryStorage(t *testing.T) {
	cfg, err := fromViper(newViper(map[string]any{"STORAGE": "Memory"}))
	require.NoError(t, err)
	assert.Equal(t, StorageMemory, cfg.Storage)
}
