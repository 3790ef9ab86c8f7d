package domain

import "strings"

// Loader is a canonical mod-loader name
type Loader string

const (
	LoaderNeoForge Loader = "neoforge"
	LoaderFabric   Loader = "fabric"
	LoaderQuilt    Loader = "quilt"
	LoaderForge    Loader = "forge"
	LoaderVanilla  Loader = "vanilla"
)

// loaderAliases is checked in order. NeoForge must come before Forge because
// "neoforge" contains the substring "forge".
var loaderAliases = []struct {
	substr string
	loader Loader
}{
	{"neoforge", LoaderNeoForge},
	{"fabric", LoaderFabric},
	{"quilt", LoaderQuilt},
	{"forge", LoaderForge},
	{"vanilla", LoaderVanilla},
}

// CanonicalLoader normalizes a vendor loader tag ("Fabric", "NeoForge-20.4",
// "forge_latest") to its canonical name. Unknown tags come back lowercased
// and trimmed.
func CanonicalLoader(tag string) Loader {
	s := strings.ToLower(strings.TrimSpace(tag))
	for _, a := range loaderAliases {
		if strings.Contains(s, a.substr) {
			return a.loader
		}
	}
	return Loader(s)
}

// LoaderMatches reports whether a version's loader tags satisfy the requested
// loader for the given project type. The check is open by default: it passes
// for loader-insensitive project types, an empty or vanilla request, and for
// versions carrying no loader tags at all.
func LoaderMatches(versionLoaders []string, requested string, projectType ProjectType) bool {
	if !projectType.LoaderSensitive() {
		return true
	}
	if strings.TrimSpace(requested) == "" {
		return true
	}
	want := CanonicalLoader(requested)
	if want == LoaderVanilla {
		return true
	}
	if len(versionLoaders) == 0 {
		return true
	}
	for _, tag := range versionLoaders {
		if CanonicalLoader(tag) == want {
			return true
		}
	}
	return false
}
