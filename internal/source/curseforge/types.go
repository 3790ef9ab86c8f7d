package curseforge

import "time"

// CurseForge API v1 response types
// API docs: https://docs.curseforge.com/rest-api/

// APIResponse wraps all CurseForge API responses
type APIResponse[T any] struct {
	Data T `json:"data"`
}

// PaginatedResponse wraps paginated CurseForge API responses
type PaginatedResponse[T any] struct {
	Data       T          `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// Pagination contains pagination info from CurseForge API
type Pagination struct {
	Index       int `json:"index"`
	PageSize    int `json:"pageSize"`
	ResultCount int `json:"resultCount"`
	TotalCount  int `json:"totalCount"`
}

// Mod represents a mod from the CurseForge API
type Mod struct {
	ID            int        `json:"id"`
	GameID        int        `json:"gameId"`
	ClassID       int        `json:"classId"`
	Name          string     `json:"name"`
	Slug          string     `json:"slug"`
	Summary       string     `json:"summary"`
	DownloadCount int64      `json:"downloadCount"`
	Categories    []Category `json:"categories"`
	Authors       []Author   `json:"authors"`
	Logo          *ModAsset  `json:"logo"`
	LatestFiles   []File     `json:"latestFiles"`
	DateModified  time.Time  `json:"dateModified"`
}

// Category is a mod category
type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Author is a mod author
type Author struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// ModAsset is a logo or screenshot
type ModAsset struct {
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnailUrl"`
}

// File release types
const (
	releaseTypeRelease = 1
	releaseTypeBeta    = 2
	releaseTypeAlpha   = 3
)

// File dependency relation types
const (
	relationEmbedded     = 1
	relationOptional     = 2
	relationRequired     = 3
	relationTool         = 4
	relationIncompatible = 5
	relationInclude      = 6
)

// Hash algorithms on file hashes
const (
	hashAlgoSHA1 = 1
	hashAlgoMD5  = 2
)

// File represents a downloadable file from the CurseForge API.
// GameVersions mixes game-version tokens and loader names ("1.20.1",
// "Fabric"); adapters must split them.
type File struct {
	ID           int              `json:"id"`
	ModID        int              `json:"modId"`
	DisplayName  string           `json:"displayName"`
	FileName     string           `json:"fileName"`
	ReleaseType  int              `json:"releaseType"`
	FileDate     time.Time        `json:"fileDate"`
	FileLength   int64            `json:"fileLength"`
	DownloadURL  string           `json:"downloadUrl"`
	GameVersions []string         `json:"gameVersions"`
	Hashes       []FileHash       `json:"hashes"`
	Dependencies []FileDependency `json:"dependencies"`
	IsAvailable  bool             `json:"isAvailable"`
}

// FileHash is one checksum entry on a file
type FileHash struct {
	Value string `json:"value"`
	Algo  int    `json:"algo"`
}

// FileDependency is a dependency declaration on a file
type FileDependency struct {
	ModID        int `json:"modId"`
	RelationType int `json:"relationType"`
}
