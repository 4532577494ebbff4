package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"GEMINI_API_KEY",
		"GREENCONNECT_GEMINI_MODEL",
		"GREENCONNECT_ADVICE_TIMEOUT",
		"GREENCONNECT_SEED_MOCK_DATA",
		"GREENCONNECT_START_ROUTE",
		"GREENCONNECT_EXPORT_DIR",
		"GREENCONNECT_LOG_ENABLED",
		"GREENCONNECT_LOG_FILE",
		"GREENCONNECT_LOG_LEVEL",
	} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	def := Default()
	assert.Equal(t, def.Gemini.Model, cfg.Gemini.Model)
	assert.Equal(t, 30*time.Second, cfg.Gemini.Timeout)
	assert.True(t, cfg.SeedMockData)
	assert.Equal(t, "/", cfg.StartRoute)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.AdviceEnabled())
}

func TestLoadFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
gemini:
  api_key: file-key
  model: gemini-2.0-flash
  timeout: 5s
logging:
  level: debug
seed_mock_data: false
start_route: /community?topic=food
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "file-key", cfg.Gemini.APIKey)
	assert.Equal(t, "gemini-2.0-flash", cfg.Gemini.Model)
	assert.Equal(t, 5*time.Second, cfg.Gemini.Timeout)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.False(t, cfg.SeedMockData)
	assert.Equal(t, "/community?topic=food", cfg.StartRoute)
	assert.True(t, cfg.AdviceEnabled())
	// Untouched keys keep their defaults.
	assert.True(t, cfg.Logging.Enabled)
}

func TestEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "gemini:\n  api_key: file-key\n")
	t.Setenv("GEMINI_API_KEY", "env-key")
	t.Setenv("GREENCONNECT_ADVICE_TIMEOUT", "2m")
	t.Setenv("GREENCONNECT_SEED_MOCK_DATA", "false")
	t.Setenv("GREENCONNECT_START_ROUTE", "/log")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "env-key", cfg.Gemini.APIKey)
	assert.Equal(t, 2*time.Minute, cfg.Gemini.Timeout)
	assert.False(t, cfg.SeedMockData)
	assert.Equal(t, "/log", cfg.StartRoute)
}

func TestLoadInvalidYAML(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "gemini: [unclosed")
	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadBadEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("GREENCONNECT_ADVICE_TIMEOUT", "soon")
	_, err := Load(filepath.Join(t.TempDir(), "none.yaml"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	cfg.Logging.Level = "loud"
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Gemini.Timeout = 0
	assert.Error(t, cfg.Validate())
}

func TestDefaultPath(t *testing.T) {
	path, err := DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, "config.yaml", filepath.Base(path))
	assert.Equal(t, appDir, filepath.Base(filepath.Dir(path)))
}
