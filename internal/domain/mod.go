package domain

import "time"

// Provider identifies a remote mod catalog
type Provider string

const (
	ProviderModrinth   Provider = "modrinth"
	ProviderCurseForge Provider = "curseforge"
	// ProviderLocal marks records created from files found on disk that no
	// catalog claims (manual downloads, dev builds)
	ProviderLocal Provider = "local"
)

// ProjectType classifies what a catalog project contains
type ProjectType string

const (
	ProjectMod          ProjectType = "mod"
	ProjectModpack      ProjectType = "modpack"
	ProjectResourcePack ProjectType = "resourcepack"
	ProjectShader       ProjectType = "shader"
	ProjectDataPack     ProjectType = "datapack"
)

// LoaderSensitive reports whether loader compatibility matters for this
// project type. Resource packs, shaders and data packs install the same way
// regardless of loader.
func (t ProjectType) LoaderSensitive() bool {
	return t == ProjectMod || t == ProjectModpack
}

// Maturity is the release channel of a version record
type Maturity int

const (
	MaturityRelease Maturity = iota
	MaturityBeta
	MaturityAlpha
)

func (m Maturity) String() string {
	switch m {
	case MaturityBeta:
		return "beta"
	case MaturityAlpha:
		return "alpha"
	default:
		return "release"
	}
}

// ParseMaturity converts a catalog channel string to a Maturity
func ParseMaturity(s string) Maturity {
	switch s {
	case "beta":
		return MaturityBeta
	case "alpha":
		return MaturityAlpha
	default:
		return MaturityRelease
	}
}

// DependencyKind classifies a dependency declaration. Only required and
// optional are actionable; incompatible and embedded are informational.
type DependencyKind int

const (
	DependencyRequired DependencyKind = iota
	DependencyOptional
	DependencyIncompatible
	DependencyEmbedded
)

func (k DependencyKind) String() string {
	switch k {
	case DependencyOptional:
		return "optional"
	case DependencyIncompatible:
		return "incompatible"
	case DependencyEmbedded:
		return "embedded"
	default:
		return "required"
	}
}

// Actionable reports whether a dependency of this kind should be installed
func (k DependencyKind) Actionable() bool {
	return k == DependencyRequired || k == DependencyOptional
}

// Project represents a mod project from any catalog. Immutable once fetched.
type Project struct {
	Provider     Provider
	ID           string
	Slug         string
	Title        string
	Author       string
	Description  string
	IconURL      string
	Type         ProjectType
	Categories   []string
	Loaders      []string
	GameVersions []string
	Downloads    int64
	UpdatedAt    time.Time
}

// Key returns the project's stable identity within a catalog
func (p *Project) Key() string {
	return string(p.Provider) + ":" + p.ID
}

// Dependency is a single dependency declaration on a version record
type Dependency struct {
	ProjectID string
	Kind      DependencyKind
}

// VersionFile is one downloadable file attached to a version
type VersionFile struct {
	URL      string
	Filename string
	SHA1     string
	Size     int64
	Primary  bool
}

// Version is a single installable version record of a project.
// GameVersions and Loaders are raw vendor tokens: game-version tokens may be
// bare numbers, ranges ("1.19-1.20.1") or prose, and are never assumed to be
// well-formed.
type Version struct {
	ID            string
	ProjectID     string
	Name          string
	VersionNumber string
	Maturity      Maturity
	GameVersions  []string
	Loaders       []string
	Dependencies  []Dependency
	Files         []VersionFile
	PublishedAt   time.Time
}

// PrimaryFile returns the file flagged primary, falling back to the first
// file. Returns nil when the version has no files.
func (v *Version) PrimaryFile() *VersionFile {
	for i := range v.Files {
		if v.Files[i].Primary {
			return &v.Files[i]
		}
	}
	if len(v.Files) > 0 {
		return &v.Files[0]
	}
	return nil
}

// InstalledRecord tracks a mod file present in the instance directory.
// ProjectID and VersionID are empty for files found on disk that were never
// installed through a catalog.
type InstalledRecord struct {
	Filename   string
	ProjectID  string
	VersionID  string
	Provider   Provider
	RawVersion string
	Enabled    bool
}

// ResolvedDependency is one entry of a dependency install plan. Version is
// nil when the dependency is already installed or its metadata could not be
// fetched.
type ResolvedDependency struct {
	Project          Project
	Version          *Version
	Kind             DependencyKind
	AlreadyInstalled bool
}
