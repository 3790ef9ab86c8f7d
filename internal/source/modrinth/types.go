package modrinth

import "time"

// Modrinth API v2 response types
// API docs: https://docs.modrinth.com/api/

// Project represents a project from the Modrinth API
type Project struct {
	ID           string    `json:"id"`
	Slug         string    `json:"slug"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	ProjectType  string    `json:"project_type"`
	Categories   []string  `json:"categories"`
	Loaders      []string  `json:"loaders"`
	GameVersions []string  `json:"game_versions"`
	IconURL      string    `json:"icon_url"`
	Downloads    int64     `json:"downloads"`
	Updated      time.Time `json:"updated"`
}

// Version represents a project version from the Modrinth API
type Version struct {
	ID            string       `json:"id"`
	ProjectID     string       `json:"project_id"`
	Name          string       `json:"name"`
	VersionNumber string       `json:"version_number"`
	VersionType   string       `json:"version_type"` // release, beta, alpha
	GameVersions  []string     `json:"game_versions"`
	Loaders       []string     `json:"loaders"`
	Dependencies  []Dependency `json:"dependencies"`
	Files         []File       `json:"files"`
	DatePublished time.Time    `json:"date_published"`
}

// Dependency is a version dependency declaration
type Dependency struct {
	ProjectID      string `json:"project_id"`
	VersionID      string `json:"version_id"`
	DependencyType string `json:"dependency_type"` // required, optional, incompatible, embedded
}

// File is one downloadable file on a version
type File struct {
	URL      string     `json:"url"`
	Filename string     `json:"filename"`
	Primary  bool       `json:"primary"`
	Size     int64      `json:"size"`
	Hashes   FileHashes `json:"hashes"`
}

// FileHashes holds the checksums Modrinth publishes per file
type FileHashes struct {
	SHA1   string `json:"sha1"`
	SHA512 string `json:"sha512"`
}

// SearchResult is the response of the search endpoint
type SearchResult struct {
	Hits      []SearchHit `json:"hits"`
	Offset    int         `json:"offset"`
	Limit     int         `json:"limit"`
	TotalHits int         `json:"total_hits"`
}

// SearchHit is one project in a search response. Search returns a flattened
// shape distinct from the project endpoint.
type SearchHit struct {
	ProjectID   string    `json:"project_id"`
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Author      string    `json:"author"`
	ProjectType string    `json:"project_type"`
	Categories  []string  `json:"categories"`
	Versions    []string  `json:"versions"`
	IconURL     string    `json:"icon_url"`
	Downloads   int64     `json:"downloads"`
	DateModified time.Time `json:"date_modified"`
}

// APIError is the error body Modrinth returns on failures
type APIError struct {
	Error       string `json:"error"`
	Description string `json:"description"`
}
