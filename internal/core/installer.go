package core

import (
	"context"
	"fmt"

	"mcw/internal/domain"
	"mcw/internal/source"
	"mcw/internal/storage/cache"
	"mcw/internal/storage/db"
)

// InstallRequest describes what the user asked to install
type InstallRequest struct {
	Provider    domain.Provider
	ProjectID   string // catalog id or slug
	GameVersion string
	Loader      string
}

// InstallPlan is everything decided before any bytes move: the chosen
// version, the ranking it won, and the expanded dependency plan. The caller
// shows it for confirmation, then hands it to Execute.
type InstallPlan struct {
	Project   *domain.Project
	Target    *domain.Version
	Selection Selection
	Deps      *Plan
}

// Installer selects versions, resolves dependencies and downloads files
type Installer struct {
	registry   *source.Registry
	db         *db.DB
	cache      *cache.Cache
	downloader *Downloader
}

// NewInstaller creates a new installer
func NewInstaller(registry *source.Registry, database *db.DB, fileCache *cache.Cache, downloader *Downloader) *Installer {
	return &Installer{
		registry:   registry,
		db:         database,
		cache:      fileCache,
		downloader: downloader,
	}
}

// Prepare picks the install target for the request and expands its
// dependency graph. Returns domain.ErrNoCompatibleVersion when nothing in
// the candidate list fits the requested game version and loader.
func (i *Installer) Prepare(ctx context.Context, req InstallRequest) (*InstallPlan, error) {
	catalog, err := i.registry.Get(req.Provider)
	if err != nil {
		return nil, err
	}

	project, err := catalog.GetProject(ctx, req.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("fetching project %s: %w", req.ProjectID, err)
	}

	candidates, err := catalog.GetVersions(ctx, project.ID, req.GameVersion, req.Loader)
	if err != nil {
		return nil, fmt.Errorf("fetching versions of %s: %w", project.Slug, err)
	}

	sel := SelectVersions(candidates, req.GameVersion, req.Loader, project.Type)
	if sel.Empty() {
		return nil, fmt.Errorf("%w: %s for %s/%s", domain.ErrNoCompatibleVersion, project.Slug, req.GameVersion, req.Loader)
	}
	target := sel.Best[0]

	installed, err := i.db.GetInstalledMods()
	if err != nil {
		return nil, err
	}
	index := NewInstalledIndex(installed)

	resolver := &Resolver{
		FetchProject: catalog.GetProject,
		FetchCompatibleVersion: func(ctx context.Context, p *domain.Project, gameVersion, loader string) (*domain.Version, error) {
			versions, err := catalog.GetVersions(ctx, p.ID, gameVersion, loader)
			if err != nil {
				return nil, err
			}
			v := PickVersion(versions, gameVersion, loader, p.Type)
			if v == nil {
				return nil, fmt.Errorf("%w: %s for %s/%s", domain.ErrNoCompatibleVersion, p.Slug, gameVersion, loader)
			}
			return v, nil
		},
		IsInstalled: index.Lookup,
	}

	deps, err := resolver.Resolve(ctx, project, &target, req.GameVersion, req.Loader)
	if err != nil {
		return nil, err
	}

	return &InstallPlan{
		Project:   project,
		Target:    &target,
		Selection: sel,
		Deps:      deps,
	}, nil
}

// Execute downloads the plan's target and dependency files into the cache
// and records them as installed. Optional dependencies are only included
// when includeOptional is set. progressFn may be nil.
func (i *Installer) Execute(ctx context.Context, plan *InstallPlan, includeOptional bool, progressFn ProgressFunc) error {
	if err := i.installVersion(ctx, plan.Project, plan.Target, progressFn); err != nil {
		return err
	}

	for _, node := range plan.Deps.Nodes {
		if node.AlreadyInstalled || node.Version == nil {
			continue
		}
		if node.Kind == domain.DependencyOptional && !includeOptional {
			continue
		}
		if err := i.installVersion(ctx, &node.Project, node.Version, progressFn); err != nil {
			return fmt.Errorf("installing dependency %s: %w", node.Project.Slug, err)
		}
	}
	return nil
}

// installVersion downloads a version's primary file and records it
func (i *Installer) installVersion(ctx context.Context, project *domain.Project, version *domain.Version, progressFn ProgressFunc) error {
	file := version.PrimaryFile()
	if file == nil {
		return fmt.Errorf("%w: version %s has no files", domain.ErrVersionNotFound, version.ID)
	}

	url := file.URL
	if url == "" {
		// CurseForge omits URLs when the author restricts distribution;
		// the download-url endpoint is the fallback
		catalog, err := i.registry.Get(project.Provider)
		if err != nil {
			return err
		}
		url, err = catalog.GetDownloadURL(ctx, project.ID, version.ID)
		if err != nil {
			return err
		}
	}

	if !i.cache.Has(project.Provider, project.ID, version.ID, file.Filename) {
		dest := i.cache.FilePath(project.Provider, project.ID, version.ID, file.Filename)
		if _, err := i.downloader.Download(ctx, url, dest, file.SHA1, progressFn); err != nil {
			return err
		}
	}

	return i.db.SaveInstalledMod(&domain.InstalledRecord{
		Filename:   file.Filename,
		ProjectID:  project.ID,
		VersionID:  version.ID,
		Provider:   project.Provider,
		RawVersion: version.VersionNumber,
		Enabled:    true,
	})
}

// Uninstall removes a record and its cached files
func (i *Installer) Uninstall(rec *domain.InstalledRecord) error {
	if rec.ProjectID != "" && rec.VersionID != "" {
		if err := i.cache.Delete(rec.Provider, rec.ProjectID, rec.VersionID); err != nil {
			return err
		}
	}
	return i.db.DeleteInstalledMod(rec.Filename)
}
