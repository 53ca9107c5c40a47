package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 10*time.Minute, cfg.JWT.AccessTokenExpiry)
	assert.Equal(t, "admin", cfg.Auth.AdminLogin)
	assert.False(t, cfg.Auth.EnforceConfirmationExpiry)
	assert.False(t, cfg.Email.Enabled)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("JWT_REFRESH_EXPIRY", "1h")
	t.Setenv("AUTH_ENFORCE_CONFIRMATION_EXPIRY", "true")
	t.Setenv("AUTH_RATE_LIMIT_MAX", "not-a-number")
	t.Setenv("REDIS_HOST", "cache")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, time.Hour, cfg.JWT.RefreshTokenExpiry)
	assert.True(t, cfg.Auth.EnforceConfirmationExpiry)
	assert.Equal(t, 5, cfg.Auth.RateLimitMax)
	assert.Equal(t, "cache:6379", cfg.Redis.Addr())
}

func TestLoad_EmailRequiresKey(t *testing.T) {
	t.Setenv("EMAIL_ENABLED", "true")

	_, err := Load()
	assert.Error(t, err)

	t.Setenv("RESEND_API_KEY", "re_123")
	_, err = Load()
	assert.NoError(t, err)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	c := DatabaseConfig{Host: "db", Port: "5432", User: "u", Password: "p", DBName: "blog", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=blog sslmode=disable", c.DSN())
}

func TestLoad_RejectsWildcardCORS(t *testing.T) {
	t.Setenv("CORS_ALLOW_ORIGINS", "*")

	_, err := Load()
	assert.Error(t, err)
}
