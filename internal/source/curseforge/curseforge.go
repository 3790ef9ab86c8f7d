package curseforge

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"mcw/internal/domain"
	"mcw/internal/source"
)

// minecraftGameID is the CurseForge game id for Minecraft
const minecraftGameID = 432

// classIDs maps project types to CurseForge class ids for Minecraft
var classIDs = map[domain.ProjectType]int{
	domain.ProjectMod:          6,
	domain.ProjectModpack:      4471,
	domain.ProjectResourcePack: 12,
	domain.ProjectShader:       6552,
	domain.ProjectDataPack:     6945,
}

// CurseForge implements the source.Catalog interface
type CurseForge struct {
	client *Client
}

// New creates a new CurseForge catalog
func New(httpClient *http.Client, apiKey string) *CurseForge {
	return &CurseForge{client: NewClient(httpClient, apiKey)}
}

// Client exposes the underlying API client (auth wiring, tests)
func (c *CurseForge) Client() *Client {
	return c.client
}

// ID returns the catalog identifier
func (c *CurseForge) ID() domain.Provider {
	return domain.ProviderCurseForge
}

// Name returns the display name
func (c *CurseForge) Name() string {
	return "CurseForge"
}

// Search finds mods matching the query
func (c *CurseForge) Search(ctx context.Context, query source.SearchQuery) ([]domain.Project, error) {
	pageSize := query.PageSize
	if pageSize == 0 {
		pageSize = 20
	}

	mods, err := c.client.SearchMods(ctx, minecraftGameID, query.Query, classIDs[query.Type], pageSize, query.Page*pageSize)
	if err != nil {
		return nil, err
	}

	projects := make([]domain.Project, len(mods))
	for i, m := range mods {
		projects[i] = modToDomain(m)
	}
	return projects, nil
}

// GetProject fetches a mod by its numeric id
func (c *CurseForge) GetProject(ctx context.Context, projectID string) (*domain.Project, error) {
	id, err := strconv.Atoi(projectID)
	if err != nil {
		return nil, fmt.Errorf("%w: CurseForge ids are numeric, got %q", domain.ErrProjectNotFound, projectID)
	}

	mod, err := c.client.GetMod(ctx, id)
	if err != nil {
		return nil, err
	}
	project := modToDomain(*mod)
	return &project, nil
}

// GetVersions fetches a mod's files as version records. CurseForge has no
// server-side loader filter worth trusting, so the full file list comes back
// and scoring happens client-side.
func (c *CurseForge) GetVersions(ctx context.Context, projectID, gameVersion, loader string) ([]domain.Version, error) {
	id, err := strconv.Atoi(projectID)
	if err != nil {
		return nil, fmt.Errorf("%w: CurseForge ids are numeric, got %q", domain.ErrProjectNotFound, projectID)
	}

	files, err := c.client.GetModFiles(ctx, id, 50)
	if err != nil {
		return nil, err
	}

	versions := make([]domain.Version, 0, len(files))
	for _, f := range files {
		if !f.IsAvailable {
			continue
		}
		versions = append(versions, fileToDomain(f))
	}
	return versions, nil
}

// GetDownloadURL resolves the download URL for a file id
func (c *CurseForge) GetDownloadURL(ctx context.Context, projectID, fileID string) (string, error) {
	mid, err := strconv.Atoi(projectID)
	if err != nil {
		return "", fmt.Errorf("%w: CurseForge ids are numeric, got %q", domain.ErrProjectNotFound, projectID)
	}
	fid, err := strconv.Atoi(fileID)
	if err != nil {
		return "", fmt.Errorf("%w: CurseForge file ids are numeric, got %q", domain.ErrVersionNotFound, fileID)
	}
	return c.client.GetDownloadURL(ctx, mid, fid)
}

func modToDomain(m Mod) domain.Project {
	p := domain.Project{
		Provider:    domain.ProviderCurseForge,
		ID:          strconv.Itoa(m.ID),
		Slug:        m.Slug,
		Title:       m.Name,
		Description: m.Summary,
		Type:        classToType(m.ClassID),
		Downloads:   m.DownloadCount,
		UpdatedAt:   m.DateModified,
	}
	if len(m.Authors) > 0 {
		p.Author = m.Authors[0].Name
	}
	if m.Logo != nil {
		p.IconURL = m.Logo.URL
	}
	for _, c := range m.Categories {
		p.Categories = append(p.Categories, c.Slug)
	}

	// Aggregate loader and game-version tags from the latest files
	seenLoaders := map[string]bool{}
	seenVersions := map[string]bool{}
	for _, f := range m.LatestFiles {
		loaders, gameVersions := splitFileTokens(f.GameVersions)
		for _, l := range loaders {
			if !seenLoaders[l] {
				seenLoaders[l] = true
				p.Loaders = append(p.Loaders, l)
			}
		}
		for _, v := range gameVersions {
			if !seenVersions[v] {
				seenVersions[v] = true
				p.GameVersions = append(p.GameVersions, v)
			}
		}
	}
	return p
}

func classToType(classID int) domain.ProjectType {
	for t, id := range classIDs {
		if id == classID {
			return t
		}
	}
	return domain.ProjectMod
}

func fileToDomain(f File) domain.Version {
	loaders, gameVersions := splitFileTokens(f.GameVersions)

	v := domain.Version{
		ID:            strconv.Itoa(f.ID),
		ProjectID:     strconv.Itoa(f.ModID),
		Name:          f.DisplayName,
		VersionNumber: f.DisplayName,
		Maturity:      releaseToMaturity(f.ReleaseType),
		GameVersions:  gameVersions,
		Loaders:       loaders,
		PublishedAt:   f.FileDate,
	}

	for _, d := range f.Dependencies {
		kind, ok := relationToKind(d.RelationType)
		if !ok {
			continue
		}
		v.Dependencies = append(v.Dependencies, domain.Dependency{
			ProjectID: strconv.Itoa(d.ModID),
			Kind:      kind,
		})
	}

	file := domain.VersionFile{
		URL:      f.DownloadURL,
		Filename: f.FileName,
		Size:     f.FileLength,
		Primary:  true,
	}
	for _, h := range f.Hashes {
		if h.Algo == hashAlgoSHA1 {
			file.SHA1 = h.Value
		}
	}
	v.Files = append(v.Files, file)
	return v
}

// splitFileTokens separates a CurseForge file's mixed gameVersions list
// ("1.20.1", "Fabric", "Client") into loader tags and game-version tokens.
// Tokens that are neither a known loader nor version-like are dropped.
func splitFileTokens(tokens []string) (loaders, gameVersions []string) {
	for _, t := range tokens {
		switch domain.CanonicalLoader(t) {
		case domain.LoaderFabric, domain.LoaderForge, domain.LoaderNeoForge, domain.LoaderQuilt:
			loaders = append(loaders, t)
			continue
		}
		if domain.ParseParts(t) != nil {
			gameVersions = append(gameVersions, t)
		}
	}
	return loaders, gameVersions
}

func releaseToMaturity(releaseType int) domain.Maturity {
	switch releaseType {
	case releaseTypeBeta:
		return domain.MaturityBeta
	case releaseTypeAlpha:
		return domain.MaturityAlpha
	default:
		return domain.MaturityRelease
	}
}

func relationToKind(relationType int) (domain.DependencyKind, bool) {
	switch relationType {
	case relationRequired:
		return domain.DependencyRequired, true
	case relationOptional, relationTool:
		return domain.DependencyOptional, true
	case relationIncompatible:
		return domain.DependencyIncompatible, true
	case relationEmbedded, relationInclude:
		return domain.DependencyEmbedded, true
	default:
		return 0, false
	}
}
