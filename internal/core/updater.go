package core

import (
	"context"
	"errors"
	"fmt"

	"mcw/internal/domain"
	"mcw/internal/source"
	"mcw/internal/storage/db"
)

// Update represents an available update for an installed mod
type Update struct {
	Record     domain.InstalledRecord
	NewVersion domain.Version
}

// Updater checks installed records against their catalogs for newer
// compatible versions
type Updater struct {
	registry *source.Registry
	db       *db.DB
}

// NewUpdater creates a new updater
func NewUpdater(registry *source.Registry, database *db.DB) *Updater {
	return &Updater{
		registry: registry,
		db:       database,
	}
}

// CheckUpdates finds newer compatible versions for installed mods. Local
// records have no catalog to ask and are skipped. Per-catalog failures do
// not abort the check; partial results come back alongside a joined error.
func (u *Updater) CheckUpdates(ctx context.Context, gameVersion, loader string) ([]Update, error) {
	installed, err := u.db.GetInstalledMods()
	if err != nil {
		return nil, err
	}

	var updates []Update
	var checkErrs []error

	for _, rec := range installed {
		select {
		case <-ctx.Done():
			return updates, ctx.Err()
		default:
		}

		if rec.Provider == domain.ProviderLocal || rec.ProjectID == "" {
			continue
		}

		catalog, err := u.registry.Get(rec.Provider)
		if err != nil {
			checkErrs = append(checkErrs, err)
			continue
		}

		project, err := catalog.GetProject(ctx, rec.ProjectID)
		if err != nil {
			checkErrs = append(checkErrs, fmt.Errorf("checking %s: %w", rec.Filename, err))
			continue
		}

		versions, err := catalog.GetVersions(ctx, project.ID, gameVersion, loader)
		if err != nil {
			checkErrs = append(checkErrs, fmt.Errorf("checking %s: %w", rec.Filename, err))
			continue
		}

		best := PickVersion(versions, gameVersion, loader, project.Type)
		if best == nil || best.ID == rec.VersionID {
			continue
		}
		if rec.RawVersion != "" && !domain.IsNewerVersion(rec.RawVersion, best.VersionNumber) {
			continue
		}
		updates = append(updates, Update{Record: rec, NewVersion: *best})
	}

	if len(checkErrs) > 0 {
		return updates, fmt.Errorf("update check had %d error(s): %w", len(checkErrs), errors.Join(checkErrs...))
	}
	return updates, nil
}
