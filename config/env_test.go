package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, key := range []string{"APP_ENV", "APP_PORT", "PORT", "DATABASE_URL", "JWT_EXPIRY", "CACHE_TTL", "SMTP_PORT"} {
		t.Setenv(key, "")
	}

	cfg := FromEnv()

	assert.Equal(t, "development", cfg.AppEnv)
	assert.Equal(t, "8082", cfg.Port)
	assert.Equal(t, 24*time.Hour, cfg.JWTExpiry)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
	assert.Equal(t, 587, cfg.SMTPPort)
	assert.False(t, cfg.IsProduction())
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("PORT", "9000")
	t.Setenv("APP_PORT", "")
	t.Setenv("JWT_EXPIRY", "2h")
	t.Setenv("CACHE_TTL", "not-a-duration")
	t.Setenv("SMTP_PORT", "2525")

	cfg := FromEnv()

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, 2*time.Hour, cfg.JWTExpiry)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL, "invalid duration keeps the default")
	assert.Equal(t, 2525, cfg.SMTPPort)
}

func TestDSN(t *testing.T) {
	cfg := &Config{DBUser: "u", DBPassword: "p", DBHost: "h", DBPort: "1", DBName: "n", DBSSLMode: "disable"}
	assert.Equal(t, "postgres://u:p@h:1/n?sslmode=disable", cfg.DSN())

	cfg.DatabaseURL = "postgres://elsewhere/db"
	assert.Equal(t, "postgres://elsewhere/db", cfg.DSN())
}
