package config

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_USER", "skillswap")
	t.Setenv("DB_NAME", "skillswap")
	t.Setenv("REDIS_HOST", "localhost")
	t.Setenv("JWT_ACCESS_SECRET", strings.Repeat("a", 32))
	t.Setenv("JWT_REFRESH_SECRET", strings.Repeat("r", 32))
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, 15*time.Minute, cfg.JWT.AccessTTL())
	assert.Equal(t, 7*24*time.Hour, cfg.JWT.RefreshTTL())
	assert.Equal(t, "localhost:6379", cfg.Redis.GetAddr())
	assert.False(t, cfg.Server.IsProduction())
	assert.Empty(t, cfg.GeminiAPIKey)
}

func TestLoad_Overrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("ENV", "production")
	t.Setenv("JWT_ACCESS_EXPIRY_MIN", "30")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.True(t, cfg.Server.IsProduction())
	assert.Equal(t, 30*time.Minute, cfg.JWT.AccessTTL())
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Database: DatabaseConfig{Host: "db", User: "u", DBName: "n"},
			Redis:    RedisConfig{Host: "redis"},
			JWT: JWTConfig{
				AccessSecret:     strings.Repeat("a", 32),
				RefreshSecret:    strings.Repeat("r", 32),
				AccessExpiryMin:  15,
				RefreshExpiryDay: 7,
			},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "missing db host", mutate: func(c *Config) { c.Database.Host = "" }, wantErr: "database host"},
		{name: "missing redis", mutate: func(c *Config) { c.Redis.Host = "" }, wantErr: "redis host"},
		{name: "short access secret", mutate: func(c *Config) { c.JWT.AccessSecret = "short" }, wantErr: "at least 32"},
		{name: "missing refresh secret", mutate: func(c *Config) { c.JWT.RefreshSecret = "" }, wantErr: "refresh secret is required"},
		{name: "zero expiry", mutate: func(c *Config) { c.JWT.AccessExpiryMin = 0 }, wantErr: "expiry"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
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

func TestGetDSN(t *testing.T) {
	c := DatabaseConfig{Host: "h", Port: 5432, User: "u", Password: "p", DBName: "d", SSLMode: "disable"}
	assert.Equal(t, "host=h port=5432 user=u password=p dbname=d sslmode=disable", c.GetDSN())
}
