package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "")
	t.Setenv("CONCIERGE_CONFIG_FILE", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "claude-sonnet-4-20250514", cfg.ClaudeModel)
	assert.Equal(t, 0.7, cfg.ClaudeTemperature)
	assert.Equal(t, 500, cfg.ClaudeMaxTokens)
	assert.Equal(t, 30*time.Second, cfg.CompletionTimeout)
	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, 4, cfg.WorkerCount)
	assert.True(t, cfg.AutoReply)
	assert.True(t, cfg.RequireVerifiedAccess)
	assert.Equal(t, 5*time.Minute, cfg.CatalogueTTL)
	assert.Empty(t, cfg.AnthropicAPIKey)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("CONCIERGE_CONFIG_FILE", "")
	t.Setenv("ANTHROPIC_API_KEY", "sk-test")
	t.Setenv("RESEND_API_KEY", "re_test")
	t.Setenv("CONCIERGE_HTTP_PORT", "9090")
	t.Setenv("CONCIERGE_COMPLETION_TIMEOUT", "5s")
	t.Setenv("CONCIERGE_REQUIRE_VERIFIED_ACCESS", "false")
	t.Setenv("CONCIERGE_REDIS_ADDR", "localhost:6379")
	t.Setenv("CONCIERGE_EMAIL_FROM", "bot@example.com")
	t.Setenv("CONCIERGE_ESCALATION_EMAIL", "host@example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sk-test", cfg.AnthropicAPIKey)
	assert.Equal(t, 9090, cfg.HTTPPort)
	assert.Equal(t, 5*time.Second, cfg.CompletionTimeout)
	assert.False(t, cfg.RequireVerifiedAccess)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.True(t, cfg.EmailConfigured())
}

func TestLoad_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "concierge.yaml")
	require.NoError(t, os.WriteFile(path, []byte("worker_count: 9\nlog_format: json\n"), 0o600))
	t.Setenv("CONCIERGE_CONFIG_FILE", path)
	t.Setenv("CONCIERGE_LOG_FORMAT", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9, cfg.WorkerCount)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("CONCIERGE_CONFIG_FILE", "")

	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"port", "CONCIERGE_HTTP_PORT", "0"},
		{"workers", "CONCIERGE_WORKER_COUNT", "-1"},
		{"timeout", "CONCIERGE_COMPLETION_TIMEOUT", "-1s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingConfigFile(t *testing.T) {
	t.Setenv("CONCIERGE_CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := Load()
	assert.Error(t, err)
}
