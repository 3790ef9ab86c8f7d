package domain

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/mod/semver"
)

// partsPattern matches the first dotted numeric run in a token: two to four
// components ("1.20", "1.20.1", "1.20.1.3"). A bare single number is not
// treated as a version.
var partsPattern = regexp.MustCompile(`(\d+)\.(\d+)(?:\.(\d+))?(?:\.(\d+))?`)

// ParseParts extracts the first dotted numeric run from a version token.
// Returns nil when the token contains none ("snapshot", "latest", prose).
func ParseParts(token string) []int {
	m := partsPattern.FindStringSubmatch(token)
	if m == nil {
		return nil
	}

	var parts []int
	for _, g := range m[1:] {
		if g == "" {
			break
		}
		n, err := strconv.Atoi(g)
		if err != nil {
			// Component overflows int; treat the token as unparseable
			return nil
		}
		parts = append(parts, n)
	}
	return parts
}

// partAt returns the component at index i, treating missing trailing
// components as 0 (so 1.20 compares equal to 1.20.0).
func partAt(parts []int, i int) int {
	if i < len(parts) {
		return parts[i]
	}
	return 0
}

// CompareParts compares two part lists positionally, returning -1, 0 or 1.
// Missing trailing components count as zero.
func CompareParts(a, b []int) int {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		av, bv := partAt(a, i), partAt(b, i)
		if av < bv {
			return -1
		}
		if av > bv {
			return 1
		}
	}
	return 0
}

// prefixSentinel stands in for a missing component in prefix comparison. It
// is distinct from every real component, so 1.20 does not share a
// three-component prefix with 1.20.1 but does share a two-component one.
const prefixSentinel = -1

func prefixAt(parts []int, i int) int {
	if i < len(parts) {
		return parts[i]
	}
	return prefixSentinel
}

// SamePrefix reports whether the first depth components of a and b are equal
func SamePrefix(a, b []int, depth int) bool {
	for i := 0; i < depth; i++ {
		if prefixAt(a, i) != prefixAt(b, i) {
			return false
		}
	}
	return true
}

// Patch returns the third component of a part list, or 0 when absent
func Patch(parts []int) int {
	return partAt(parts, 2)
}

// CompareVersions compares two raw version strings, numerically when both
// contain a dotted run, lexically otherwise.
func CompareVersions(v1, v2 string) int {
	p1, p2 := ParseParts(v1), ParseParts(v2)
	if p1 != nil && p2 != nil {
		return CompareParts(p1, p2)
	}
	return strings.Compare(strings.TrimSpace(strings.ToLower(v1)), strings.TrimSpace(strings.ToLower(v2)))
}

// IsNewerVersion reports whether newVersion is strictly newer than
// currentVersion. Canonical semver strings take the semver path; messy
// vendor strings ("5-2SE", "3.2.0+1.20.1") fall back to part comparison.
func IsNewerVersion(currentVersion, newVersion string) bool {
	cur, next := canonicalSemver(currentVersion), canonicalSemver(newVersion)
	if cur != "" && next != "" {
		return semver.Compare(next, cur) > 0
	}
	return CompareVersions(newVersion, currentVersion) > 0
}

// canonicalSemver returns the "v"-prefixed form of s when s is valid semver
// (with or without the prefix), or "" when it is not.
func canonicalSemver(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if !strings.HasPrefix(s, "v") {
		s = "v" + s
	}
	if !semver.IsValid(s) {
		return ""
	}
	return s
}
