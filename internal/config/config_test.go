package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/baseline-api/pkg/logger"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoadConfigDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, 5000, cfg.Server.Port)
	assert.Equal(t, ":5000", cfg.Addr())
	assert.Equal(t, 24*time.Hour, cfg.TokenExpiry())
	assert.True(t, cfg.Auth.IssueTokens)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, "records.events", cfg.Events.Channel)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Empty(t, cfg.Redis.URL)
	assert.True(t, cfg.Seed.Enabled)
}

func TestLoadConfigFile(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 8080
  request_timeout: 2s
auth:
  issue_tokens: false
  secret: ""
log:
  format: json
redis:
  url: redis://localhost:6379/0
seed:
  enabled: false
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 2*time.Second, cfg.Server.RequestTimeout)
	assert.False(t, cfg.Auth.IssueTokens)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "redis://localhost:6379/0", cfg.Redis.URL)
	assert.False(t, cfg.Seed.Enabled)
	// Unset keys keep their defaults.
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("REDIS_URL", "redis://cache:6379")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := LoadConfig(writeConfig(t, "server:\n  port: 7000\n"))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "from-env", cfg.Auth.Secret)
	assert.Equal(t, "redis://cache:6379", cfg.Redis.URL)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadConfigErrors(t *testing.T) {
	t.Run("missing explicit file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yml"))
		assert.Error(t, err)
	})

	t.Run("bad env value", func(t *testing.T) {
		t.Setenv("PORT", "not-a-number")
		_, err := LoadConfig(writeConfig(t, "server:\n  port: 7000\n"))
		assert.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:  ServerConfig{Port: 5000},
			Auth:    AuthConfig{Secret: "s", ExpiryHours: 24, IssueTokens: true},
			Log:     LogConfig{Format: "console"},
			Metrics: MetricsConfig{Enabled: true, Path: "/metrics"},
		}
	}

	require.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"port out of range", func(c *Config) { c.Server.Port = 70000 }},
		{"empty secret", func(c *Config) { c.Auth.Secret = "" }},
		{"zero expiry", func(c *Config) { c.Auth.ExpiryHours = 0 }},
		{"unknown log format", func(c *Config) { c.Log.Format = "xml" }},
		{"bad rate limit", func(c *Config) { c.RateLimit = RateLimitConfig{Enabled: true} }},
		{"relative metrics path", func(c *Config) { c.Metrics.Path = "metrics" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	t.Run("secret optional without tokens", func(t *testing.T) {
		cfg := valid()
		cfg.Auth.IssueTokens = false
		cfg.Auth.Secret = ""
		assert.NoError(t, cfg.Validate())
	})
}

func TestConversions(t *testing.T) {
	redisCfg := RedisConfig{URL: "redis://x:6379", MaxRetries: 2, PoolSize: 4, RetryBackoff: time.Millisecond}.ToBrokerConfig()
	assert.Equal(t, "redis://x:6379", redisCfg.URL)
	assert.Equal(t, 2, redisCfg.MaxRetries)
	assert.Equal(t, 4, redisCfg.PoolSize)
	assert.Equal(t, time.Millisecond, redisCfg.RetryBackoff)

	logCfg := LogConfig{Level: "WARN", Format: "JSON"}.ToLoggerConfig()
	assert.Equal(t, logger.WarnLevel, logCfg.Level)
	assert.Equal(t, logger.FormatJSON, logCfg.Format)
}
