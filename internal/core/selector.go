package core

import (
	"sort"

	"mcw/internal/domain"
)

// Selection is the outcome of ranking a candidate version list against a
// requested game version and loader.
type Selection struct {
	// Best holds every version achieving MaxScore. Ties are kept on
	// purpose: a mod split across a base jar and an API jar can both score
	// as exact matches.
	Best []domain.Version
	// MaxScore is the highest compatibility score found, 0 when nothing
	// survived.
	MaxScore int
	// Direct is true when at least one surviving version has an exact
	// numeric hit for the requested game version.
	Direct bool
}

// Empty reports whether no compatible version was found
func (s Selection) Empty() bool {
	return len(s.Best) == 0
}

// FallbackNotice reports whether the UI should warn that only an
// approximate (older/newer/range) match exists.
func (s Selection) FallbackNotice() bool {
	return s.MaxScore > 0 && s.MaxScore < scoreExact && !s.Direct
}

// SelectVersions filters and ranks candidates for a request. Versions
// failing loader compatibility or scoring zero are discarded; the rest
// compete on score and the max-score subset is returned sorted by maturity
// (release first) then publish time (newest first).
func SelectVersions(candidates []domain.Version, gameVersion, loader string, projectType domain.ProjectType) Selection {
	var sel Selection
	for _, v := range candidates {
		if !domain.LoaderMatches(v.Loaders, loader, projectType) {
			continue
		}
		score := ScoreGameVersions(v.GameVersions, gameVersion)
		if score == 0 {
			continue
		}
		switch {
		case score > sel.MaxScore:
			sel.MaxScore = score
			sel.Best = sel.Best[:0]
			sel.Best = append(sel.Best, v)
		case score == sel.MaxScore:
			sel.Best = append(sel.Best, v)
		}
		if HasDirectMatch(v.GameVersions, gameVersion) {
			sel.Direct = true
		}
	}

	SortVersions(sel.Best)
	return sel
}

// PickVersion returns the single best install target from a candidate list,
// or nil when nothing is compatible. Among tied versions the stable release
// with the newest publish time wins.
func PickVersion(candidates []domain.Version, gameVersion, loader string, projectType domain.ProjectType) *domain.Version {
	sel := SelectVersions(candidates, gameVersion, loader, projectType)
	if sel.Empty() {
		return nil
	}
	v := sel.Best[0]
	return &v
}

// SortVersions orders versions for display: release before beta before
// alpha, newest publish time first within a channel.
func SortVersions(versions []domain.Version) {
	sort.SliceStable(versions, func(i, j int) bool {
		if versions[i].Maturity != versions[j].Maturity {
			return versions[i].Maturity < versions[j].Maturity
		}
		return versions[i].PublishedAt.After(versions[j].PublishedAt)
	})
}
