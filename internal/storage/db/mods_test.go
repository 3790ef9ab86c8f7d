package db_test

import (
	"os"
	"path/filepath"
	"testing"

	"mcw/internal/domain"
	"mcw/internal/storage/db"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *db.DB {
	t.Helper()
	database, err := db.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return database
}

func TestReopenExistingStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	first, err := db.New(path)
	require.NoError(t, err)
	require.NoError(t, first.SaveInstalledMod(&domain.InstalledRecord{
		Filename: "sodium-0.5.3.jar",
		Provider: domain.ProviderModrinth,
		Enabled:  true,
	}))
	require.NoError(t, first.Close())

	// Migrations are versioned; a second open must not re-run them or
	// lose data
	second, err := db.New(path)
	require.NoError(t, err)
	t.Cleanup(func() { second.Close() })

	records, err := second.GetInstalledMods()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "sodium-0.5.3.jar", records[0].Filename)
}

func TestSaveAndGetInstalledMods(t *testing.T) {
	d := newTestDB(t)

	rec := domain.InstalledRecord{
		Filename:   "sodium-0.5.3.jar",
		Provider:   domain.ProviderModrinth,
		ProjectID:  "AANobbMI",
		VersionID:  "v1",
		RawVersion: "0.5.3",
		Enabled:    true,
	}
	require.NoError(t, d.SaveInstalledMod(&rec))

	records, err := d.GetInstalledMods()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, rec, records[0])
}

func TestSaveInstalledMod_UpsertsByFilename(t *testing.T) {
	d := newTestDB(t)

	require.NoError(t, d.SaveInstalledMod(&domain.InstalledRecord{
		Filename: "sodium.jar", Provider: domain.ProviderModrinth,
		ProjectID: "AANobbMI", VersionID: "v1", RawVersion: "0.5.0", Enabled: true,
	}))
	require.NoError(t, d.SaveInstalledMod(&domain.InstalledRecord{
		Filename: "sodium.jar", Provider: domain.ProviderModrinth,
		ProjectID: "AANobbMI", VersionID: "v2", RawVersion: "0.5.3", Enabled: true,
	}))

	records, err := d.GetInstalledMods()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "v2", records[0].VersionID)
	assert.Equal(t, "0.5.3", records[0].RawVersion)
}

func TestGetInstalledByProject(t *testing.T) {
	d := newTestDB(t)
	require.NoError(t, d.SaveInstalledMod(&domain.InstalledRecord{
		Filename: "sodium.jar", Provider: domain.ProviderModrinth,
		ProjectID: "AANobbMI", VersionID: "v1", Enabled: true,
	}))

	rec, err := d.GetInstalledByProject(domain.ProviderModrinth, "AANobbMI")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "sodium.jar", rec.Filename)

	// Unknown project is nil, not an error
	rec, err = d.GetInstalledByProject(domain.ProviderModrinth, "nope")
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestDeleteInstalledMod(t *testing.T) {
	d := newTestDB(t)
	require.NoError(t, d.SaveInstalledMod(&domain.InstalledRecord{
		Filename: "sodium.jar", Provider: domain.ProviderModrinth, Enabled: true,
	}))

	require.NoError(t, d.DeleteInstalledMod("sodium.jar"))
	assert.ErrorIs(t, d.DeleteInstalledMod("sodium.jar"), domain.ErrProjectNotFound)
}

func TestSetEnabled(t *testing.T) {
	d := newTestDB(t)
	require.NoError(t, d.SaveInstalledMod(&domain.InstalledRecord{
		Filename: "sodium.jar", Provider: domain.ProviderModrinth, Enabled: true,
	}))

	require.NoError(t, d.SetEnabled("sodium.jar", false))

	records, err := d.GetInstalledMods()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.False(t, records[0].Enabled)
}

func TestScanModsDir(t *testing.T) {
	d := newTestDB(t)
	modsDir := t.TempDir()

	for _, name := range []string{"lithium-0.11.2.jar", "dropped-in.jar", "notes.txt", "old.jar.disabled"} {
		require.NoError(t, os.WriteFile(filepath.Join(modsDir, name), []byte("x"), 0644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(modsDir, "subdir.jar"), 0755))

	// A record that already covers one of the jars
	require.NoError(t, d.SaveInstalledMod(&domain.InstalledRecord{
		Filename: "dropped-in.jar", Provider: domain.ProviderModrinth,
		ProjectID: "x", VersionID: "v1", Enabled: true,
	}))

	added, err := d.ScanModsDir(modsDir)
	require.NoError(t, err)
	require.Len(t, added, 1)

	rec := added[0]
	assert.Equal(t, "lithium-0.11.2.jar", rec.Filename)
	assert.Equal(t, domain.ProviderLocal, rec.Provider)
	assert.Empty(t, rec.ProjectID)
	assert.NotEmpty(t, rec.VersionID)
	assert.Equal(t, "0.11.2", rec.RawVersion)
	assert.True(t, rec.Enabled)

	// Scanning again finds nothing new
	added, err = d.ScanModsDir(modsDir)
	require.NoError(t, err)
	assert.Empty(t, added)
}
