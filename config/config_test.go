package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv_Defaults(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "memory")

	cfg := FromEnv()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, StorageMemory, cfg.StorageDriver)
	assert.Equal(t, 30*time.Minute, cfg.SessionIdleTTL)
	assert.Equal(t, int64(5), cfg.MaxUploadSizeMB)
	assert.Equal(t, "order.placed", cfg.AMQPOrderQueue)
	require.NoError(t, cfg.Validate())
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("SESSION_IDLE_TTL", "5m")
	t.Setenv("DB_MAX_CONNS", "25")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8, 172.16.0.1")
	t.Setenv("MAX_CART_QUANTITY", "not-a-number")

	cfg := FromEnv()

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, 5*time.Minute, cfg.SessionIdleTTL)
	assert.Equal(t, int32(25), cfg.DBMaxConns)
	assert.Equal(t, 2.5, cfg.RateLimitRPS)
	assert.Equal(t, "10.0.0.0/8, 172.16.0.1", cfg.TrustedProxies)
	assert.Equal(t, 99, cfg.MaxCartQuantity, "invalid values fall back")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "unknown driver", mutate: func(c *Config) { c.StorageDriver = "etcd" }, wantErr: "unknown STORAGE_DRIVER"},
		{name: "postgres without dsn", mutate: func(c *Config) { c.StorageDriver = StoragePostgres; c.DBUrl = "" }, wantErr: "DB_DSN"},
		{name: "s3 without credentials", mutate: func(c *Config) { c.StorageDriver = StorageS3 }, wantErr: "R2 credentials"},
		{name: "zero cart quantity", mutate: func(c *Config) { c.MaxCartQuantity = 0 }, wantErr: "MAX_CART_QUANTITY"},
		{name: "postgres with dsn", mutate: func(c *Config) { c.StorageDriver = StoragePostgres; c.DBUrl = "postgres://localhost/futur" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := FromEnv()
			cfg.StorageDriver = StorageMemory
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
