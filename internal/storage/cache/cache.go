package cache

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"mcw/internal/domain"
)

// Cache stores downloaded mod files outside the instance directory, keyed by
// provider, project and version, so re-installs and shared dependencies
// never re-download.
type Cache struct {
	basePath string
}

// New creates a new cache manager
func New(basePath string) *Cache {
	return &Cache{basePath: basePath}
}

// VersionPath returns the directory holding a version's downloaded files
func (c *Cache) VersionPath(provider domain.Provider, projectID, versionID string) string {
	return filepath.Join(c.basePath, string(provider), projectID, versionID)
}

// FilePath returns the full path of one cached file
func (c *Cache) FilePath(provider domain.Provider, projectID, versionID, filename string) string {
	return filepath.Join(c.VersionPath(provider, projectID, versionID), filename)
}

// Has checks whether a specific file of a version is cached
func (c *Cache) Has(provider domain.Provider, projectID, versionID, filename string) bool {
	info, err := os.Stat(c.FilePath(provider, projectID, versionID, filename))
	return err == nil && info.Mode().IsRegular()
}

// Ensure creates the version directory and returns its path
func (c *Cache) Ensure(provider domain.Provider, projectID, versionID string) (string, error) {
	dir := c.VersionPath(provider, projectID, versionID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating cache dir: %w", err)
	}
	return dir, nil
}

// ListFiles returns the filenames cached for a version
func (c *Cache) ListFiles(provider domain.Provider, projectID, versionID string) ([]string, error) {
	dir := c.VersionPath(provider, projectID, versionID)

	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing cached files: %w", err)
	}
	return files, nil
}

// Delete removes a cached version
func (c *Cache) Delete(provider domain.Provider, projectID, versionID string) error {
	if err := os.RemoveAll(c.VersionPath(provider, projectID, versionID)); err != nil {
		return fmt.Errorf("deleting cached version: %w", err)
	}
	return nil
}
