package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sadopc/greenconnect/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "app.log")
	logger, err := New(config.LoggingConfig{Enabled: true, File: path, Level: "info"}, false)
	require.NoError(t, err)

	logger.Info("entry added", zap.String("category", "food"))
	logger.Debug("hidden at info")
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"entry added"`)
	assert.Contains(t, string(data), `"category":"food"`)
	assert.NotContains(t, string(data), "hidden at info")
}

func TestNewVerboseEnablesDebug(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	logger, err := New(config.LoggingConfig{Enabled: true, File: path, Level: "warn"}, true)
	require.NoError(t, err)

	logger.Debug("debug line")
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "debug line")
}

func TestNewDisabled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	logger, err := New(config.LoggingConfig{Enabled: false, File: path, Level: "info"}, false)
	require.NoError(t, err)
	logger.Info("dropped")

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestNewBadLevel(t *testing.T) {
	_, err := New(config.LoggingConfig{Enabled: true, File: filepath.Join(t.TempDir(), "x.log"), Level: "loud"}, false)
	assert.Error(t, err)
}
