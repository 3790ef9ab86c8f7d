package source

import (
	"context"

	"mcw/internal/domain"
)

// SearchQuery contains parameters for searching a catalog.
type SearchQuery struct {
	Query       string
	GameVersion string             // optional facet
	Loader      string             // optional facet
	Type        domain.ProjectType // optional facet
	Page        int
	PageSize    int
}

// Catalog is the interface for remote mod catalogs. Implementations return
// already-shaped domain values; callers never see catalog wire types.
// Version lists come back in catalog order; callers sort.
type Catalog interface {
	// Identity
	ID() domain.Provider
	Name() string

	// Discovery
	Search(ctx context.Context, query SearchQuery) ([]domain.Project, error)
	GetProject(ctx context.Context, projectID string) (*domain.Project, error)

	// Versions. gameVersion and loader are hints for server-side
	// filtering where the catalog supports it; results still carry raw
	// token sets and must be scored client-side.
	GetVersions(ctx context.Context, projectID, gameVersion, loader string) ([]domain.Version, error)

	// GetDownloadURL resolves a download URL for a file whose version
	// record carried none (author-restricted distribution and similar).
	GetDownloadURL(ctx context.Context, projectID, fileID string) (string, error)
}
