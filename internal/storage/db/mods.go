package db

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"mcw/internal/domain"
)

// SaveInstalledMod inserts or updates an installed mod record
func (d *DB) SaveInstalledMod(rec *domain.InstalledRecord) error {
	_, err := d.Exec(`
		INSERT INTO installed_mods (filename, provider, project_id, version_id, raw_version, enabled)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(filename) DO UPDATE SET
			provider = excluded.provider,
			project_id = excluded.project_id,
			version_id = excluded.version_id,
			raw_version = excluded.raw_version,
			enabled = excluded.enabled
	`, rec.Filename, rec.Provider, rec.ProjectID, rec.VersionID, rec.RawVersion, rec.Enabled)
	if err != nil {
		return fmt.Errorf("saving installed mod: %w", err)
	}
	return nil
}

// GetInstalledMods returns all installed mod records
func (d *DB) GetInstalledMods() ([]domain.InstalledRecord, error) {
	rows, err := d.Query(`
		SELECT filename, provider, project_id, version_id, raw_version, enabled
		FROM installed_mods
		ORDER BY installed_at ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("querying installed mods: %w", err)
	}
	defer rows.Close()

	var records []domain.InstalledRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// GetInstalledByProject returns the record for a provider/project pair, or
// nil when the project is not installed
func (d *DB) GetInstalledByProject(provider domain.Provider, projectID string) (*domain.InstalledRecord, error) {
	row := d.QueryRow(`
		SELECT filename, provider, project_id, version_id, raw_version, enabled
		FROM installed_mods
		WHERE provider = ? AND project_id = ?
	`, provider, projectID)

	var rec domain.InstalledRecord
	var projID, verID, rawVer sql.NullString
	err := row.Scan(&rec.Filename, &rec.Provider, &projID, &verID, &rawVer, &rec.Enabled)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying installed mod: %w", err)
	}
	rec.ProjectID, rec.VersionID, rec.RawVersion = projID.String, verID.String, rawVer.String
	return &rec, nil
}

// DeleteInstalledMod removes a record by filename
func (d *DB) DeleteInstalledMod(filename string) error {
	result, err := d.Exec(`DELETE FROM installed_mods WHERE filename = ?`, filename)
	if err != nil {
		return fmt.Errorf("deleting installed mod: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete result: %w", err)
	}
	if n == 0 {
		return domain.ErrProjectNotFound
	}
	return nil
}

// SetEnabled flips the enabled flag of a record
func (d *DB) SetEnabled(filename string, enabled bool) error {
	_, err := d.Exec(`UPDATE installed_mods SET enabled = ? WHERE filename = ?`, enabled, filename)
	if err != nil {
		return fmt.Errorf("updating enabled flag: %w", err)
	}
	return nil
}

// ScanModsDir registers jar files present in modsDir that no record covers,
// marking them as local installs so dependency resolution can see manually
// dropped-in mods. Returns the newly created records.
func (d *DB) ScanModsDir(modsDir string) ([]domain.InstalledRecord, error) {
	entries, err := os.ReadDir(modsDir)
	if err != nil {
		return nil, fmt.Errorf("reading mods dir: %w", err)
	}

	known, err := d.GetInstalledMods()
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(known))
	for _, rec := range known {
		seen[rec.Filename] = true
	}

	var added []domain.InstalledRecord
	for _, e := range entries {
		name := e.Name()
		// The suffix check also skips name.jar.disabled files
		if e.IsDir() || !strings.HasSuffix(strings.ToLower(name), ".jar") {
			continue
		}
		if seen[name] {
			continue
		}
		rec := domain.InstalledRecord{
			Filename: name,
			Provider: domain.ProviderLocal,
			// Local files have no catalog id; a uuid keeps them
			// addressable in the UI
			VersionID:  uuid.New().String(),
			RawVersion: versionFromFilename(name),
			Enabled:    true,
		}
		if err := d.SaveInstalledMod(&rec); err != nil {
			return nil, err
		}
		added = append(added, rec)
	}
	return added, nil
}

// versionFromFilename guesses a version string from a jar filename
func versionFromFilename(name string) string {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	if i := strings.LastIndexByte(base, '-'); i >= 0 {
		tail := base[i+1:]
		if domain.ParseParts(tail) != nil {
			return tail
		}
	}
	return ""
}

func scanRecord(rows *sql.Rows) (domain.InstalledRecord, error) {
	var rec domain.InstalledRecord
	var projID, verID, rawVer sql.NullString
	if err := rows.Scan(&rec.Filename, &rec.Provider, &projID, &verID, &rawVer, &rec.Enabled); err != nil {
		return rec, fmt.Errorf("scanning installed mod: %w", err)
	}
	rec.ProjectID, rec.VersionID, rec.RawVersion = projID.String, verID.String, rawVer.String
	return rec, nil
}
