package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Config Loading Tests
// =============================================================================

func TestLoadConfig_DefaultValues(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 30*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, 30*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "./data/portfolio.db", cfg.Database.DSN)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 168*time.Hour, cfg.Auth.SessionTTL)
	assert.Equal(t, "portfolio_session", cfg.Auth.CookieName)
	assert.False(t, cfg.Auth.CookieSecure)
	assert.Equal(t, time.Hour, cfg.Auth.SweepInterval)
	assert.Equal(t, "auto", cfg.Spotlight.Policy)
	assert.Equal(t, "https://api.cloudinary.com", cfg.ImageHost.BaseURL)
	assert.Empty(t, cfg.ImageHost.CloudName)
	assert.Equal(t, "portfolio-preset", cfg.ImageHost.UploadPreset)
	assert.Equal(t, 60*time.Second, cfg.ImageHost.Timeout)
	assert.Equal(t, int64(10<<20), cfg.ImageHost.MaxUploadBytes)
	assert.True(t, cfg.Metrics.Enabled)
}

func TestLoadConfig_FromFile(t *testing.T) {
	clearEnv(t)

	configContent := `
server:
  host: "127.0.0.1"
  port: 9000
  read_timeout: 60s
  write_timeout: 60s
  shutdown_timeout: 15s

database:
  dsn: "/tmp/test.db"

log:
  level: "debug"
  format: "text"

auth:
  session_ttl: 24h
  cookie_secure: true

spotlight:
  policy: confirm

imagehost:
  cloud_name: "demo"

metrics:
  enabled: false
`
	tmpFile := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(tmpFile, []byte(configContent), 0644))

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, 60*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 60*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, 15*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "/tmp/test.db", cfg.Database.DSN)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, 24*time.Hour, cfg.Auth.SessionTTL)
	assert.True(t, cfg.Auth.CookieSecure)
	assert.Equal(t, "confirm", cfg.Spotlight.Policy)
	assert.Equal(t, "demo", cfg.ImageHost.CloudName)
	assert.False(t, cfg.Metrics.Enabled)
}

func TestLoadConfig_EnvironmentOverride(t *testing.T) {
	clearEnv(t)

	t.Setenv("PORTFOLIO_SERVER_HOST", "192.168.1.1")
	t.Setenv("PORTFOLIO_SERVER_PORT", "3000")
	t.Setenv("PORTFOLIO_DATABASE_DSN", "/custom/path.db")
	t.Setenv("PORTFOLIO_LOG_LEVEL", "warn")
	t.Setenv("PORTFOLIO_LOG_FORMAT", "text")
	t.Setenv("PORTFOLIO_IMAGEHOST_CLOUD_NAME", "env-cloud")
	t.Setenv("PORTFOLIO_SPOTLIGHT_POLICY", "confirm")

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "192.168.1.1", cfg.Server.Host)
	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, "/custom/path.db", cfg.Database.DSN)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "env-cloud", cfg.ImageHost.CloudName)
	assert.Equal(t, "confirm", cfg.Spotlight.Policy)
}

func TestLoadConfig_FileNotFound_UsesDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig("/nonexistent/path/config.yaml")
	require.NoError(t, err) // Should not error, just use defaults

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestLoadConfig_InvalidFile(t *testing.T) {
	clearEnv(t)

	tmpFile := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(tmpFile, []byte("invalid: yaml: content: [[["), 0644))

	_, err := LoadConfig(tmpFile)
	assert.Error(t, err)
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"unknown spotlight policy", "PORTFOLIO_SPOTLIGHT_POLICY", "random"},
		{"port out of range", "PORTFOLIO_SERVER_PORT", "70000"},
		{"zero session ttl", "PORTFOLIO_AUTH_SESSION_TTL", "0s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.val)

			_, err := LoadConfig("")
			assert.Error(t, err)
		})
	}
}

// =============================================================================
// Logger Setup Tests
// =============================================================================

func TestSetupLogger(t *testing.T) {
	tests := []struct {
		level  string
		format string
	}{
		{"info", "json"},
		{"info", "text"},
		{"debug", "json"},
		{"warn", "json"},
		{"error", "text"},
		{"invalid", "json"}, // falls back to info
	}

	for _, tt := range tests {
		t.Run(tt.level+"/"+tt.format, func(t *testing.T) {
			cfg := &Config{Log: LogConfig{Level: tt.level, Format: tt.format}}
			assert.NotNil(t, SetupLogger(cfg))
		})
	}
}

func TestServerConfig_Address(t *testing.T) {
	c := ServerConfig{Host: "localhost", Port: 8080}
	assert.Equal(t, "localhost:8080", c.Address())
}

func clearEnv(t *testing.T) {
	t.Helper()
	envVars := []string{
		"PORTFOLIO_SERVER_HOST",
		"PORTFOLIO_SERVER_PORT",
		"PORTFOLIO_DATABASE_DSN",
		"PORTFOLIO_LOG_LEVEL",
		"PORTFOLIO_LOG_FORMAT",
		"PORTFOLIO_AUTH_SESSION_TTL",
		"PORTFOLIO_SPOTLIGHT_POLICY",
		"PORTFOLIO_IMAGEHOST_CLOUD_NAME",
		"PORTFOLIO_METRICS_ENABLED",
	}
	for _, v := range envVars {
		os.Unsetenv(v)
	}
}
