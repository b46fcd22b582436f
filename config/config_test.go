package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "emart-login-service", cfg.AppName)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, time.Hour, cfg.TokenTTL)
	assert.Equal(t, "auth-audit", cfg.ESAuditIndex)
	assert.True(t, cfg.MailSendEnabled)
	assert.False(t, cfg.DebugMetricsEnabled)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("JWT_TOKEN_TTL", "30m")
	t.Setenv("MAIL_SEND_ENABLED", "false")
	t.Setenv("DB_MAX_CONNS", "25")

	cfg := Load()
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 30*time.Minute, cfg.TokenTTL)
	assert.False(t, cfg.MailSendEnabled)
	assert.Equal(t, int32(25), cfg.DBMaxConns)
}

func TestLoadBadValuesFallBack(t *testing.T) {
	t.Setenv("JWT_TOKEN_TTL", "soon")
	t.Setenv("MAIL_SEND_ENABLED", "yep")

	cfg := Load()
	assert.Equal(t, time.Hour, cfg.TokenTTL)
	assert.True(t, cfg.MailSendEnabled)
}

func TestPostgresDSN(t *testing.T) {
	t.Setenv("DB_USER", "u")
	t.Setenv("DB_PASSWORD", "p")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("DB_NAME", "auth")

	assert.Equal(t, "postgres://u:p@db:5433/auth?sslmode=disable", Load().PostgresDSN())
}

func TestSplitCSV(t *testing.T) {
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example , https://b.example,")
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, Load().CORSOrigins())

	t.Setenv("CORS_ALLOWED_ORIGINS", "")
	assert.Empty(t, Load().CORSOrigins())
}
