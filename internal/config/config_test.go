package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Validate(t *testing.T) {
	strong := "secure-secret-at-least-32-chars-long"

	tests := []struct {
		name        string
		cfg         Config
		expectError bool
	}{
		{"Development defaults", Config{Env: "development", Port: "3000", JWTSecret: DefaultJWTSecret}, false},
		{"Missing port", Config{Env: "development", JWTSecret: strong}, true},
		{"Missing secret", Config{Env: "development", Port: "3000"}, true},
		{"Production with default secret", Config{Env: "production", Port: "3000", JWTSecret: DefaultJWTSecret, DatabaseURL: "postgres://db"}, true},
		{"Production with short secret", Config{Env: "production", Port: "3000", JWTSecret: "short", DatabaseURL: "postgres://db"}, true},
		{"Production without database", Config{Env: "prod", Port: "3000", JWTSecret: strong}, true},
		{"Production fully configured", Config{Env: "production", Port: "3000", JWTSecret: strong, DatabaseURL: "postgres://db"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadConfig_EnvironmentOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "  TEST ")
	t.Setenv("PORT", "8088")
	t.Setenv("JWT_SECRET", "env-secret-that-is-long-enough-for-tests")
	t.Setenv("DATABASE_URL", "sqlite://file::memory:")
	t.Setenv("RATE_LIMIT_MAX", "7")

	c, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "test", c.Env)
	assert.Equal(t, "8088", c.Port)
	assert.Equal(t, "env-secret-that-is-long-enough-for-tests", c.JWTSecret)
	assert.Equal(t, "sqlite://file::memory:", c.DatabaseURL)
	assert.Equal(t, 7, c.RateLimitMax)
	assert.False(t, c.IsProduction())
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("PORT", "")
	t.Setenv("JWT_SECRET", "")

	c, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "3000", c.Port)
	assert.Equal(t, DefaultJWTSecret, c.JWTSecret)
}
