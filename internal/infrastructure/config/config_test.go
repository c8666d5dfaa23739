package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default("/base")

	assert.Equal(t, filepath.Join("/base", DefaultConfigDir, DefaultDatabaseFile), cfg.SQLite.Path)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, filepath.Join("/base", DefaultConfigDir, DefaultLogFile), cfg.Logging.File)
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()

	cfg := Default(dir)
	cfg.Logging.Level = "debug"
	require.NoError(t, cfg.Save(dir))

	assert.True(t, Exists(dir))

	loaded, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, cfg.SQLite.Path, loaded.SQLite.Path)
	assert.Equal(t, "debug", loaded.Logging.Level)
}

func TestLoad_MissingConfig(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "familytree init")
	assert.False(t, Exists(dir))
}

func TestLoad_EnvOverrides(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Default(dir).Save(dir))

	t.Setenv("FAMILYTREE_DB_PATH", "/custom/db.sqlite")
	t.Setenv("FAMILYTREE_LOG_LEVEL", "error")

	loaded, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "/custom/db.sqlite", loaded.SQLite.Path)
	assert.Equal(t, "error", loaded.Logging.Level)
}

func TestLoad_PartialFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(ConfigDir(dir), 0755))

	// Only the log level is set; everything else falls back to defaults.
	content := "logging:\n  level: warn\n"
	require.NoError(t, os.WriteFile(ConfigFilePath(dir), []byte(content), 0600))

	loaded, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "warn", loaded.Logging.Level)
	assert.Equal(t, filepath.Join(dir, DefaultConfigDir, DefaultDatabaseFile), loaded.SQLite.Path)
}
