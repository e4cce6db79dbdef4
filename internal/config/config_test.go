package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := load(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 0.5, cfg.ReversalProb)
	assert.Equal(t, 30*time.Second, cfg.InterpretTimeout)
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	data := `port = 9000
log_level = "debug"
save_path = "/tmp/readings"
reversal_prob = 0.25
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := load(path)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "/tmp/readings", cfg.SavePath)
	assert.Equal(t, 0.25, cfg.ReversalProb)
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("port = 9000\n"), 0644))

	t.Setenv("DIVINER_PORT", "3000")
	t.Setenv("DIVINER_LOG_LEVEL", "warn")
	t.Setenv("GEMINI_API_KEY", "test-key")

	cfg, err := load(path)
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "test-key", cfg.GeminiAPIKey)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string]map[string]string{
		"bad reversal prob": {"DIVINER_REVERSAL_PROB": "1.5"},
		"bad port":          {"DIVINER_PORT": "70000"},
		"bad log level":     {"DIVINER_LOG_LEVEL": "verbose"},
	}

	for name, envs := range cases {
		t.Run(name, func(t *testing.T) {
			for k, v := range envs {
				t.Setenv(k, v)
			}
			_, err := load(filepath.Join(t.TempDir(), "missing.toml"))
			assert.Error(t, err)
		})
	}
}
