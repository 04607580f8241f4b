package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err, "Load() with defaults should succeed")

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Equal(t, "kioku.db", cfg.Database.Path)
	assert.Equal(t, 2, cfg.Task.WorkerCount)
	assert.Equal(t, 100, cfg.Task.QueueSize)
	assert.Equal(t, "gemini", cfg.Translation.Backend)
	assert.Equal(t, "gemini-2.0-flash", cfg.Translation.GeminiModel)
	assert.Empty(t, cfg.Translation.GeminiAPIKey)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Setenv("KIOKU_SERVER_PORT", "9090")
	t.Setenv("KIOKU_SERVER_LOG_LEVEL", "debug")
	t.Setenv("KIOKU_DATABASE_PATH", ":memory:")
	t.Setenv("KIOKU_TRANSLATION_BACKEND", "openai")
	t.Setenv("KIOKU_TRANSLATION_OPENAI_API_KEY", "sk-test-key")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, ":memory:", cfg.Database.Path)
	assert.Equal(t, "openai", cfg.Translation.Backend)
	assert.Equal(t, "sk-test-key", cfg.Translation.OpenAIAPIKey)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	testCases := []struct {
		name  string
		key   string
		value string
	}{
		{name: "port out of range", key: "KIOKU_SERVER_PORT", value: "99999"},
		{name: "unknown log level", key: "KIOKU_SERVER_LOG_LEVEL", value: "verbose"},
		{name: "unknown backend", key: "KIOKU_TRANSLATION_BACKEND", value: "deepl"},
		{name: "zero workers", key: "KIOKU_TASK_WORKER_COUNT", value: "0"},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.key, tc.value)

			_, err := Load()
			assert.Error(t, err, "Load() should reject %s=%s", tc.key, tc.value)
		})
	}
}
