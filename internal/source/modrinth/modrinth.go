package modrinth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"mcw/internal/domain"
	"mcw/internal/source"
)

// Modrinth implements the source.Catalog interface
type Modrinth struct {
	client *Client
}

// New creates a new Modrinth catalog
func New(httpClient *http.Client) *Modrinth {
	return &Modrinth{client: NewClient(httpClient)}
}

// Client exposes the underlying API client (tests)
func (m *Modrinth) Client() *Client {
	return m.client
}

// ID returns the catalog identifier
func (m *Modrinth) ID() domain.Provider {
	return domain.ProviderModrinth
}

// Name returns the display name
func (m *Modrinth) Name() string {
	return "Modrinth"
}

// Search finds projects matching the query
func (m *Modrinth) Search(ctx context.Context, query source.SearchQuery) ([]domain.Project, error) {
	pageSize := query.PageSize
	if pageSize == 0 {
		pageSize = 20
	}

	result, err := m.client.Search(ctx, query.Query, buildFacets(query), pageSize, query.Page*pageSize)
	if err != nil {
		return nil, err
	}

	projects := make([]domain.Project, len(result.Hits))
	for i, hit := range result.Hits {
		projects[i] = hitToDomain(hit)
	}
	return projects, nil
}

// GetProject fetches a project by id or slug
func (m *Modrinth) GetProject(ctx context.Context, projectID string) (*domain.Project, error) {
	p, err := m.client.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	project := projectToDomain(*p)
	return &project, nil
}

// GetVersions fetches a project's versions. The loader hint is only sent
// upstream for loader-sensitive project types; game-version tokens come back
// raw for client-side scoring.
func (m *Modrinth) GetVersions(ctx context.Context, projectID, gameVersion, loader string) ([]domain.Version, error) {
	var loaders []string
	if loader != "" {
		loaders = []string{string(domain.CanonicalLoader(loader))}
	}

	// No game_versions filter upstream: Modrinth filters by exact token
	// and would hide range-tagged and near-miss versions the scorer wants
	// to consider.
	versions, err := m.client.GetVersions(ctx, projectID, nil, loaders)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Version, len(versions))
	for i, v := range versions {
		out[i] = versionToDomain(v)
	}
	return out, nil
}

// GetDownloadURL resolves the primary file URL of a version. Modrinth file
// URLs are always present on version records; this exists for callers that
// only hold a version id.
func (m *Modrinth) GetDownloadURL(ctx context.Context, projectID, versionID string) (string, error) {
	v, err := m.client.GetVersion(ctx, versionID)
	if err != nil {
		return "", err
	}
	dv := versionToDomain(*v)
	f := dv.PrimaryFile()
	if f == nil {
		return "", fmt.Errorf("%w: version %s has no files", domain.ErrVersionNotFound, versionID)
	}
	return f.URL, nil
}

// buildFacets renders the search query's filters in Modrinth facet syntax
func buildFacets(query source.SearchQuery) string {
	var groups [][]string
	if query.Type != "" {
		groups = append(groups, []string{"project_type:" + string(query.Type)})
	}
	if query.GameVersion != "" {
		groups = append(groups, []string{"versions:" + query.GameVersion})
	}
	if query.Loader != "" {
		groups = append(groups, []string{"categories:" + string(domain.CanonicalLoader(query.Loader))})
	}
	if len(groups) == 0 {
		return ""
	}
	b, _ := json.Marshal(groups)
	return string(b)
}

func projectToDomain(p Project) domain.Project {
	return domain.Project{
		Provider:     domain.ProviderModrinth,
		ID:           p.ID,
		Slug:         p.Slug,
		Title:        p.Title,
		Description:  p.Description,
		IconURL:      p.IconURL,
		Type:         domain.ProjectType(p.ProjectType),
		Categories:   p.Categories,
		Loaders:      p.Loaders,
		GameVersions: p.GameVersions,
		Downloads:    p.Downloads,
		UpdatedAt:    p.Updated,
	}
}

func hitToDomain(h SearchHit) domain.Project {
	return domain.Project{
		Provider:     domain.ProviderModrinth,
		ID:           h.ProjectID,
		Slug:         h.Slug,
		Title:        h.Title,
		Author:       h.Author,
		Description:  h.Description,
		IconURL:      h.IconURL,
		Type:         domain.ProjectType(h.ProjectType),
		Categories:   h.Categories,
		GameVersions: h.Versions,
		Downloads:    h.Downloads,
		UpdatedAt:    h.DateModified,
	}
}

func versionToDomain(v Version) domain.Version {
	out := domain.Version{
		ID:            v.ID,
		ProjectID:     v.ProjectID,
		Name:          v.Name,
		VersionNumber: v.VersionNumber,
		Maturity:      domain.ParseMaturity(v.VersionType),
		GameVersions:  v.GameVersions,
		Loaders:       v.Loaders,
		PublishedAt:   v.DatePublished,
	}

	for _, d := range v.Dependencies {
		if d.ProjectID == "" {
			// Version-pinned declarations without a project id cannot be
			// resolved through the project graph
			continue
		}
		out.Dependencies = append(out.Dependencies, domain.Dependency{
			ProjectID: d.ProjectID,
			Kind:      dependencyKind(d.DependencyType),
		})
	}

	for _, f := range v.Files {
		out.Files = append(out.Files, domain.VersionFile{
			URL:      f.URL,
			Filename: f.Filename,
			SHA1:     f.Hashes.SHA1,
			Size:     f.Size,
			Primary:  f.Primary,
		})
	}
	return out
}

func dependencyKind(s string) domain.DependencyKind {
	switch s {
	case "optional":
		return domain.DependencyOptional
	case "incompatible":
		return domain.DependencyIncompatible
	case "embedded":
		return domain.DependencyEmbedded
	default:
		return domain.DependencyRequired
	}
}
