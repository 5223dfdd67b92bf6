package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskpad/internal/config"
	"taskpad/internal/query"
)

func writeConfig(t *testing.T, dir, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.ConfigFile), []byte(body), 0600))
}

func TestDefaultConfigDir_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	assert.Equal(t, filepath.Join("/tmp/xdg", "taskpad"), config.DefaultConfigDir())
}

func TestDefaultConfigDir_Home(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("HOME", "/home/someone")
	assert.Equal(t, filepath.Join("/home/someone", ".config", "taskpad"), config.DefaultConfigDir())
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv(config.EnvStorage, "")
	dir := t.TempDir()

	cfg, err := config.Load(dir)
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.Dir)
	assert.Equal(t, config.BackendFile, cfg.Storage.Backend)
	assert.Equal(t, filepath.Join(dir, "data"), cfg.DataPath())
	assert.Equal(t, 3*time.Second, cfg.UI.NotifyTimeout)
	assert.Equal(t, query.StatusAll, cfg.Status())
}

func TestLoad_ReadsFile(t *testing.T) {
	t.Setenv(config.EnvStorage, "")
	dir := t.TempDir()
	writeConfig(t, dir, `
storage:
  backend: sqlite
ui:
  notify_timeout: 5s
  default_status: pending
`)

	cfg, err := config.Load(dir)
	require.NoError(t, err)

	assert.Equal(t, config.BackendSQLite, cfg.Storage.Backend)
	assert.Equal(t, filepath.Join(dir, "taskpad.db"), cfg.DataPath())
	assert.Equal(t, 5*time.Second, cfg.UI.NotifyTimeout)
	assert.Equal(t, query.StatusPending, cfg.Status())
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	t.Setenv(config.EnvStorage, "")
	dir := t.TempDir()
	writeConfig(t, dir, "storage:\n  path: /srv/tasks\n")

	cfg, err := config.Load(dir)
	require.NoError(t, err)

	assert.Equal(t, config.BackendFile, cfg.Storage.Backend)
	assert.Equal(t, "/srv/tasks", cfg.DataPath())
	assert.Equal(t, config.DefaultNotifyTimeout, cfg.UI.NotifyTimeout)
}

func TestLoad_EnvOverridesBackend(t *testing.T) {
	t.Setenv(config.EnvStorage, "SQLite")
	dir := t.TempDir()
	writeConfig(t, dir, "storage:\n  backend: file\n")

	cfg, err := config.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, config.BackendSQLite, cfg.Storage.Backend)
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]string{
		"malformed yaml":  "storage: [unterminated\n",
		"unknown backend": "storage:\n  backend: redis\n",
		"bad status":      "ui:\n  default_status: archived\n",
		"bad timeout":     "ui:\n  notify_timeout: soon\n",
		"negative":        "ui:\n  notify_timeout: -1s\n",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			t.Setenv(config.EnvStorage, "")
			dir := t.TempDir()
			writeConfig(t, dir, body)

			_, err := config.Load(dir)
			require.Error(t, err)
			assert.True(t, errors.Is(err, config.ErrInvalid), "expected ErrInvalid, got %v", err)
		})
	}
}
