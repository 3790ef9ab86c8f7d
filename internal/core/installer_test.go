package core_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"mcw/internal/core"
	"mcw/internal/domain"
	"mcw/internal/source"
	"mcw/internal/storage/cache"
	"mcw/internal/storage/db"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCatalog is an in-memory source.Catalog for orchestration tests
type fakeCatalog struct {
	provider     domain.Provider
	projects     map[string]*domain.Project
	versions     map[string][]domain.Version
	downloadURLs map[string]string
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		provider:     domain.ProviderModrinth,
		projects:     make(map[string]*domain.Project),
		versions:     make(map[string][]domain.Version),
		downloadURLs: make(map[string]string),
	}
}

func (f *fakeCatalog) ID() domain.Provider { return f.provider }
func (f *fakeCatalog) Name() string        { return "fake" }

func (f *fakeCatalog) Search(ctx context.Context, query source.SearchQuery) ([]domain.Project, error) {
	var out []domain.Project
	for _, p := range f.projects {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakeCatalog) GetProject(ctx context.Context, projectID string) (*domain.Project, error) {
	if p, ok := f.projects[projectID]; ok {
		return p, nil
	}
	return nil, domain.ErrProjectNotFound
}

func (f *fakeCatalog) GetVersions(ctx context.Context, projectID, gameVersion, loader string) ([]domain.Version, error) {
	return f.versions[projectID], nil
}

func (f *fakeCatalog) GetDownloadURL(ctx context.Context, projectID, fileID string) (string, error) {
	if url, ok := f.downloadURLs[fileID]; ok {
		return url, nil
	}
	return "", domain.ErrDownloadFailed
}

// installerFixture bundles an Installer with its real storage backends,
// rooted in a temp dir, plus a file server and a fake catalog
type installerFixture struct {
	installer *core.Installer
	catalog   *fakeCatalog
	db        *db.DB
	cache     *cache.Cache
	server    *httptest.Server
}

func newInstallerFixture(t *testing.T) *installerFixture {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("jar bytes for " + r.URL.Path))
	}))
	t.Cleanup(server.Close)

	dir := t.TempDir()
	database, err := db.New(filepath.Join(dir, "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	fileCache := cache.New(filepath.Join(dir, "cache"))
	catalog := newFakeCatalog()
	registry := source.NewRegistry()
	registry.Register(catalog)

	return &installerFixture{
		installer: core.NewInstaller(registry, database, fileCache, core.NewDownloader(server.Client())),
		catalog:   catalog,
		db:        database,
		cache:     fileCache,
		server:    server,
	}
}

// addProject registers a project with a single release version carrying one
// downloadable file served by the fixture's file server
func (f *installerFixture) addProject(id, slug string, deps ...domain.Dependency) {
	f.catalog.projects[id] = &domain.Project{
		Provider: f.catalog.provider,
		ID:       id,
		Slug:     slug,
		Title:    slug,
		Type:     domain.ProjectMod,
	}
	f.catalog.versions[id] = []domain.Version{{
		ID:            id + "-v1",
		ProjectID:     id,
		VersionNumber: "1.0.0",
		Maturity:      domain.MaturityRelease,
		GameVersions:  []string{"1.20.1"},
		Loaders:       []string{"fabric"},
		Dependencies:  deps,
		Files: []domain.VersionFile{{
			URL:      f.server.URL + "/" + slug + ".jar",
			Filename: slug + ".jar",
			Primary:  true,
		}},
		PublishedAt: time.Now(),
	}}
}

func TestInstaller_PrepareSelectsTargetAndDeps(t *testing.T) {
	f := newInstallerFixture(t)
	f.addProject("sodium-id", "sodium")
	f.addProject("indium-id", "indium",
		domain.Dependency{ProjectID: "sodium-id", Kind: domain.DependencyRequired})

	plan, err := f.installer.Prepare(context.Background(), core.InstallRequest{
		Provider:    domain.ProviderModrinth,
		ProjectID:   "indium-id",
		GameVersion: "1.20.1",
		Loader:      "fabric",
	})
	require.NoError(t, err)

	assert.Equal(t, "indium", plan.Project.Slug)
	assert.Equal(t, "indium-id-v1", plan.Target.ID)
	assert.True(t, plan.Selection.Direct)
	require.Len(t, plan.Deps.Nodes, 1)
	assert.Equal(t, "sodium-id", plan.Deps.Nodes[0].Project.ID)
	assert.Equal(t, domain.DependencyRequired, plan.Deps.Nodes[0].Kind)
}

func TestInstaller_PrepareNoCompatibleVersion(t *testing.T) {
	f := newInstallerFixture(t)
	f.addProject("sodium-id", "sodium")

	_, err := f.installer.Prepare(context.Background(), core.InstallRequest{
		Provider:    domain.ProviderModrinth,
		ProjectID:   "sodium-id",
		GameVersion: "1.21",
		Loader:      "fabric",
	})
	assert.ErrorIs(t, err, domain.ErrNoCompatibleVersion)
}

func TestInstaller_PrepareUnknownProject(t *testing.T) {
	f := newInstallerFixture(t)

	_, err := f.installer.Prepare(context.Background(), core.InstallRequest{
		Provider:    domain.ProviderModrinth,
		ProjectID:   "nope",
		GameVersion: "1.20.1",
		Loader:      "fabric",
	})
	assert.ErrorIs(t, err, domain.ErrProjectNotFound)
}

func TestInstaller_ExecuteInstallsTargetAndRequiredDeps(t *testing.T) {
	f := newInstallerFixture(t)
	f.addProject("sodium-id", "sodium")
	f.addProject("indium-id", "indium",
		domain.Dependency{ProjectID: "sodium-id", Kind: domain.DependencyRequired})

	plan, err := f.installer.Prepare(context.Background(), core.InstallRequest{
		Provider:    domain.ProviderModrinth,
		ProjectID:   "indium-id",
		GameVersion: "1.20.1",
		Loader:      "fabric",
	})
	require.NoError(t, err)
	require.NoError(t, f.installer.Execute(context.Background(), plan, false, nil))

	installed, err := f.db.GetInstalledMods()
	require.NoError(t, err)
	names := make([]string, len(installed))
	for i, rec := range installed {
		names[i] = rec.Filename
	}
	assert.ElementsMatch(t, []string{"indium.jar", "sodium.jar"}, names)

	assert.True(t, f.cache.Has(domain.ProviderModrinth, "indium-id", "indium-id-v1", "indium.jar"))
	assert.True(t, f.cache.Has(domain.ProviderModrinth, "sodium-id", "sodium-id-v1", "sodium.jar"))
}

func TestInstaller_ExecuteSkipsOptionalByDefault(t *testing.T) {
	f := newInstallerFixture(t)
	f.addProject("sodium-extra-id", "sodium-extra")
	f.addProject("sodium-id", "sodium",
		domain.Dependency{ProjectID: "sodium-extra-id", Kind: domain.DependencyOptional})

	plan, err := f.installer.Prepare(context.Background(), core.InstallRequest{
		Provider:    domain.ProviderModrinth,
		ProjectID:   "sodium-id",
		GameVersion: "1.20.1",
		Loader:      "fabric",
	})
	require.NoError(t, err)

	require.NoError(t, f.installer.Execute(context.Background(), plan, false, nil))
	installed, err := f.db.GetInstalledMods()
	require.NoError(t, err)
	require.Len(t, installed, 1)
	assert.Equal(t, "sodium.jar", installed[0].Filename)

	// Same plan with optionals enabled picks the extra up
	require.NoError(t, f.installer.Execute(context.Background(), plan, true, nil))
	installed, err = f.db.GetInstalledMods()
	require.NoError(t, err)
	assert.Len(t, installed, 2)
}

func TestInstaller_ExecuteSkipsInstalledDeps(t *testing.T) {
	f := newInstallerFixture(t)
	f.addProject("sodium-id", "sodium")
	f.addProject("indium-id", "indium",
		domain.Dependency{ProjectID: "sodium-id", Kind: domain.DependencyRequired})

	require.NoError(t, f.db.SaveInstalledMod(&domain.InstalledRecord{
		Filename:  "sodium.jar",
		Provider:  domain.ProviderModrinth,
		ProjectID: "sodium-id",
		VersionID: "sodium-id-v1",
		Enabled:   true,
	}))

	plan, err := f.installer.Prepare(context.Background(), core.InstallRequest{
		Provider:    domain.ProviderModrinth,
		ProjectID:   "indium-id",
		GameVersion: "1.20.1",
		Loader:      "fabric",
	})
	require.NoError(t, err)
	require.Len(t, plan.Deps.Nodes, 1)
	assert.True(t, plan.Deps.Nodes[0].AlreadyInstalled)

	require.NoError(t, f.installer.Execute(context.Background(), plan, false, nil))
	// Sodium was never re-downloaded
	assert.False(t, f.cache.Has(domain.ProviderModrinth, "sodium-id", "sodium-id-v1", "sodium.jar"))
}

func TestInstaller_FallsBackToDownloadURLEndpoint(t *testing.T) {
	f := newInstallerFixture(t)
	f.addProject("sodium-id", "sodium")
	// Author-restricted file: no URL on the record, endpoint lookup instead
	f.catalog.versions["sodium-id"][0].Files[0].URL = ""
	f.catalog.downloadURLs["sodium-id-v1"] = f.server.URL + "/restricted/sodium.jar"

	plan, err := f.installer.Prepare(context.Background(), core.InstallRequest{
		Provider:    domain.ProviderModrinth,
		ProjectID:   "sodium-id",
		GameVersion: "1.20.1",
		Loader:      "fabric",
	})
	require.NoError(t, err)
	require.NoError(t, f.installer.Execute(context.Background(), plan, false, nil))

	path := f.cache.FilePath(domain.ProviderModrinth, "sodium-id", "sodium-id-v1", "sodium.jar")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "/restricted/sodium.jar")
}

func TestInstaller_Uninstall(t *testing.T) {
	f := newInstallerFixture(t)
	f.addProject("sodium-id", "sodium")

	plan, err := f.installer.Prepare(context.Background(), core.InstallRequest{
		Provider:    domain.ProviderModrinth,
		ProjectID:   "sodium-id",
		GameVersion: "1.20.1",
		Loader:      "fabric",
	})
	require.NoError(t, err)
	require.NoError(t, f.installer.Execute(context.Background(), plan, false, nil))

	installed, err := f.db.GetInstalledMods()
	require.NoError(t, err)
	require.Len(t, installed, 1)

	require.NoError(t, f.installer.Uninstall(&installed[0]))

	installed, err = f.db.GetInstalledMods()
	require.NoError(t, err)
	assert.Empty(t, installed)
	assert.False(t, f.cache.Has(domain.ProviderModrinth, "sodium-id", "sodium-id-v1", "sodium.jar"))
}
