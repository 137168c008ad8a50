package config_test

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/logistica-api/pkg/config"
)

func newViper(kv map[string]any) *viper.Viper {
	v := viper.New()
	for k, val := range kv {
		v.Set(k, val)
	}
	return v
}

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := config.FromViper(newViper(map[string]any{"JWT_SECRET": "s3cr3t"}))
	require.NoError(t, err)

	assert.Equal(t, config.StoreDriverPostgres, cfg.App.StoreDriver)
	assert.Equal(t, "info", cfg.App.LogLevel)
	assert.Equal(t, 1440, cfg.JWT.Expiration)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, 5*time.Second, cfg.DB.LockTimeout())
	assert.Equal(t, "postgres://postgres:@localhost:5432/logistica?sslmode=disable", cfg.DB.ConnectionString())
}

func TestFromViper_Overrides(t *testing.T) {
	cfg, err := config.FromViper(newViper(map[string]any{
		"JWT_SECRET":         "s3cr3t",
		"STORE_DRIVER":       "MEMORY",
		"HTTP_PORT":          " 9090 ",
		"DB_LOCK_TIMEOUT_MS": 0,
		"METRICS_ENABLED":    false,
		"DATABASE_URL":       "postgres://u:p@db:5432/x",
	}))
	require.NoError(t, err)

	assert.Equal(t, config.StoreDriverMemory, cfg.App.StoreDriver)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Zero(t, cfg.DB.LockTimeout())
	assert.False(t, cfg.Metrics.Enabled)
	assert.Equal(t, "postgres://u:p@db:5432/x", cfg.DB.ConnectionString())
}

func TestDSN_EscapaPassword(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss/word", DBName: "logistica", SSLMode: "require"}
	assert.Equal(t, "postgres://app:p%40ss%2Fword@db:5432/logistica?sslmode=require", c.DSN())
}

func TestFromViper_Invalida(t *testing.T) {
	tests := []struct {
		name string
		kv   map[string]any
	}{
		{"sin secreto", map[string]any{}},
		{"driver desconocido", map[string]any{"JWT_SECRET": "x", "STORE_DRIVER": "sqlite"}},
		{"expiración cero", map[string]any{"JWT_SECRET": "x", "JWT_EXPIRATION_MINUTES": 0}},
		{"lock timeout negativo", map[string]any{"JWT_SECRET": "x", "DB_LOCK_TIMEOUT_MS": -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.FromViper(newViper(tt.kv))
			assert.Error(t, err)
		})
	}
}
