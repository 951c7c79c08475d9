package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "memory", cfg.Storage.Backend)
	assert.Equal(t, "gemini-3-flash-preview", cfg.Insight.Model)
	assert.Equal(t, 10, cfg.Insight.TimeoutSeconds)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("HEALTHLINK_INSIGHT_API_KEY", "secret-key")
	t.Setenv("HEALTHLINK_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "secret-key", cfg.Insight.APIKey)
	assert.Equal(t, "debug", cfg.Logging.Level)
}
