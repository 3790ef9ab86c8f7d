package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"mcw/internal/storage/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := config.Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "modrinth", cfg.DefaultCatalog)
	assert.Empty(t, cfg.GameVersion)
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{
		InstanceDir:      "/home/player/.minecraft",
		GameVersion:      "1.20.1",
		Loader:           "fabric",
		DefaultCatalog:   "curseforge",
		CurseForgeAPIKey: "secret",
	}
	require.NoError(t, cfg.Save(dir))

	loaded, err := config.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestSave_KeyFilePermissions(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{CurseForgeAPIKey: "secret"}
	require.NoError(t, cfg.Save(dir))

	info, err := os.Stat(filepath.Join(dir, "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestLoad_EmptyDefaultCatalogFallsBack(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"),
		[]byte("game_version: \"1.20.1\"\n"), 0600))

	cfg, err := config.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "modrinth", cfg.DefaultCatalog)
	assert.Equal(t, "1.20.1", cfg.GameVersion)
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"),
		[]byte("loader: [unclosed"), 0600))

	_, err := config.Load(dir)
	assert.Error(t, err)
}

func TestModsDir(t *testing.T) {
	cfg := &config.Config{InstanceDir: "/mc"}
	assert.Equal(t, filepath.Join("/mc", "mods"), cfg.ModsDir())

	assert.Empty(t, (&config.Config{}).ModsDir())
}
