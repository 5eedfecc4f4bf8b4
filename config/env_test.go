package config

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("STOREFRONT_API_URL", "")
	t.Setenv("SESSION_BACKEND", "")
	t.Setenv("JWT_EXPIRY", "")

	cfg := LoadConfig()

	assert.Equal(t, "http://localhost:8080", cfg.APIBaseURL)
	assert.Equal(t, SessionBackendFile, cfg.SessionBackend)
	assert.Equal(t, 24*time.Hour, cfg.JWTExpiry)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_FromEnvironment(t *testing.T) {
	t.Setenv("STOREFRONT_API_URL", "https://gateway.example.com/")
	t.Setenv("SESSION_BACKEND", "redis")
	t.Setenv("SESSION_DIR", "/tmp/sf")
	t.Setenv("JWT_EXPIRY", "90m")
	t.Setenv("LOG_FORMAT", "json")

	cfg := LoadConfig()

	assert.Equal(t, "https://gateway.example.com", cfg.APIBaseURL)
	assert.Equal(t, SessionBackendRedis, cfg.SessionBackend)
	assert.Equal(t, "/tmp/sf/session.json", cfg.SessionFile())
	assert.Equal(t, 90*time.Minute, cfg.JWTExpiry)
	assert.Equal(t, FormatJSON, cfg.LogFormat)
}

func TestLoadConfig_BadExpiryFallsBack(t *testing.T) {
	t.Setenv("JWT_EXPIRY", "soon")

	assert.Equal(t, 24*time.Hour, LoadConfig().JWTExpiry)
}

func TestConfig_Validate(t *testing.T) {
	base := Config{SessionBackend: SessionBackendMemory, LogLevel: "info", LogFormat: FormatText, APIBaseURL: "http://x"}
	assert.NoError(t, base.Validate())

	bad := base
	bad.SessionBackend = "sqlite"
	assert.ErrorContains(t, bad.Validate(), "unknown session backend")

	bad = base
	bad.LogLevel = "loud"
	assert.ErrorContains(t, bad.Validate(), "unknown log level")

	bad = base
	bad.LogFormat = "xml"
	assert.Error(t, bad.Validate())
}

func TestNewLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&Config{LogLevel: "debug", LogFormat: FormatJSON, AppEnv: "test"}, &buf)

	logger.Debug("request sent", "path", "/cart")

	assert.Contains(t, buf.String(), `"msg":"request sent"`)
	assert.Contains(t, buf.String(), `"path":"/cart"`)
	assert.Contains(t, buf.String(), `"app_env":"test"`)
}

func TestNewLogger_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&Config{LogLevel: "warn", LogFormat: FormatText}, &buf)

	logger.Info("hidden")
	logger.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestConnectRedis(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := ConnectRedis(context.Background(), &Config{RedisAddr: mr.Addr()})
	require.NoError(t, err)
	defer client.Close()

	client2, err := ConnectRedis(context.Background(), &Config{RedisURL: "redis://" + mr.Addr() + "/0"})
	require.NoError(t, err)
	client2.Close()

	_, err = ConnectRedis(context.Background(), &Config{RedisURL: "not a url"})
	assert.Error(t, err)
}
