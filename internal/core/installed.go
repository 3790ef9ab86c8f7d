package core

import (
	"strings"

	"mcw/internal/domain"
)

// InstalledIndex answers "is this project already installed?" over a
// snapshot of installed records. Identifier matches are authoritative;
// records that predate the manager (dropped-in jars, imports without
// metadata) are matched fuzzily by filename.
type InstalledIndex struct {
	byProject map[string]*domain.InstalledRecord
	records   []domain.InstalledRecord
}

// NewInstalledIndex builds an index over records. The slice is copied; the
// index stays valid if the caller mutates the original.
func NewInstalledIndex(records []domain.InstalledRecord) *InstalledIndex {
	ix := &InstalledIndex{
		byProject: make(map[string]*domain.InstalledRecord, len(records)),
		records:   append([]domain.InstalledRecord(nil), records...),
	}
	for i := range ix.records {
		rec := &ix.records[i]
		if rec.ProjectID != "" {
			ix.byProject[string(rec.Provider)+":"+rec.ProjectID] = rec
		}
	}
	return ix
}

// Lookup returns the installed record for project, or nil. A stable
// identifier match wins; otherwise filenames are compared against the
// project slug and title after dropping case and all non-alphanumerics, so
// "sodium-fabric-0.5.jar" still matches a project with slug "sodium".
// Records carrying a project id never match fuzzily, which means a mod
// installed through one catalog is not recognized when the same mod is
// looked up through the other.
func (ix *InstalledIndex) Lookup(project *domain.Project) *domain.InstalledRecord {
	if project == nil {
		return nil
	}
	if rec, ok := ix.byProject[project.Key()]; ok {
		return rec
	}

	slug := fuzzyKey(project.Slug)
	title := fuzzyKey(project.Title)
	for i := range ix.records {
		rec := &ix.records[i]
		if rec.ProjectID != "" {
			// Identified records only match by identifier
			continue
		}
		name := fuzzyKey(rec.Filename)
		if name == "" {
			continue
		}
		if slug != "" && strings.Contains(name, slug) {
			return rec
		}
		if title != "" && strings.Contains(name, title) {
			return rec
		}
	}
	return nil
}

// fuzzyKey lowercases s and strips everything outside [a-z0-9]
func fuzzyKey(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
