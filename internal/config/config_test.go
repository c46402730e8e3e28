package config

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", strings.Repeat("s", 32))

	cfg := Load()

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, "http://localhost:5173", cfg.CORSOrigins)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", strings.Repeat("s", 32))
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("JWT_TTL", "1h30m")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://example.com")
	t.Setenv("DATABASE_DSN", "host=db user=app dbname=app port=5432")

	cfg := Load()

	assert.Equal(t, "9090", cfg.HTTPPort)
	assert.Equal(t, 90*time.Minute, cfg.JWTTTL)
	assert.Equal(t, "https://example.com", cfg.CORSOrigins)
	assert.Equal(t, "host=db user=app dbname=app port=5432", cfg.DatabaseDSN)
}
