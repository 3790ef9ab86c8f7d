package core

import (
	"math"
	"strings"

	"mcw/internal/domain"
)

// matchKind identifies which compatibility rule produced a token's score.
// Only matchExact counts as a direct match; range and prefix rules are
// heuristics and should trigger the caller's fallback notice.
type matchKind int

const (
	matchNone matchKind = iota
	matchLiteral
	matchFirstComponent
	matchSamePrefixOlder
	matchBareMinor
	matchSamePrefixNewer
	matchExact
	matchRangeNewer
	matchRangeInside
)

// Score ladder bases. These are tie-break tiers, not independently
// meaningful values; keep the rule table ordered instead of comparing
// against them directly.
const (
	scoreRangeInside     = 5000
	scoreExact           = 4900
	scoreSamePrefixNewer = 4000
	scoreBareMinor       = 3500
	scoreSamePrefixOlder = 3000
	scoreFirstComponent  = 1000
	scoreLiteral         = 1000
	scoreUniversal       = 1 // empty token set against a concrete request
)

// versionDashes are the separators accepted in range tokens like
// "1.19-1.20.1" (hyphen, en dash, em dash).
const versionDashes = "-–—"

// numericRule is one entry of the ordered scoring ladder applied to a token
// that itself parses as a version.
type numericRule struct {
	kind  matchKind
	score func(tok, req []int) (int, bool)
}

// numericRules is evaluated top to bottom; the first hit wins. New
// compatibility rules slot in here without renumbering the ladder.
var numericRules = []numericRule{
	{matchExact, func(tok, req []int) (int, bool) {
		if domain.CompareParts(tok, req) == 0 {
			return scoreExact + domain.Patch(tok), true
		}
		return 0, false
	}},
	// A bare minor tag ("1.20") published against a patch request reads as
	// "all 1.20.x".
	{matchBareMinor, func(tok, req []int) (int, bool) {
		if len(tok) > 2 {
			return 0, false
		}
		for i := range tok {
			if i >= len(req) || tok[i] != req[i] {
				return 0, false
			}
		}
		return scoreBareMinor, true
	}},
	{matchSamePrefixNewer, func(tok, req []int) (int, bool) {
		if domain.SamePrefix(tok, req, 2) && domain.CompareParts(req, tok) > 0 {
			return scoreSamePrefixNewer + domain.Patch(tok), true
		}
		return 0, false
	}},
	{matchSamePrefixOlder, func(tok, req []int) (int, bool) {
		if domain.SamePrefix(tok, req, 2) {
			return scoreSamePrefixOlder + domain.Patch(tok), true
		}
		return 0, false
	}},
	// An older token in the same major series might still work; a token
	// newer than the request never does.
	{matchFirstComponent, func(tok, req []int) (int, bool) {
		if len(tok) > 0 && len(req) > 0 && tok[0] == req[0] && domain.CompareParts(req, tok) > 0 {
			return scoreFirstComponent, true
		}
		return 0, false
	}},
}

// normalizeVersionToken lowercases, trims and strips a leading "v" from a
// version token ("V1.20.1" -> "1.20.1"). The "v" is only stripped ahead of a
// digit so prose tokens survive intact.
func normalizeVersionToken(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) >= 2 && s[0] == 'v' && s[1] >= '0' && s[1] <= '9' {
		s = s[1:]
	}
	return s
}

// splitRange interprets token as a dash range "A-B" where both endpoints
// parse. Returns nil part lists when the token is not a range.
func splitRange(token string) (lo, hi []int) {
	for i, r := range token {
		if !strings.ContainsRune(versionDashes, r) {
			continue
		}
		a := domain.ParseParts(token[:i])
		b := domain.ParseParts(token[i+len(string(r)):])
		if a != nil && b != nil {
			return a, b
		}
	}
	return nil, nil
}

// tokenScore rates a single game-version token against the normalized
// request, returning the score and the rule that produced it.
func tokenScore(token, requested string) (int, matchKind) {
	token = normalizeVersionToken(token)
	req := domain.ParseParts(requested)

	// Non-numeric request ("snapshot"): literal equality only
	if req == nil {
		if token == requested {
			return scoreLiteral, matchLiteral
		}
		return 0, matchNone
	}

	// Range tokens before plain parse: "1.19-1.20.1" would otherwise read
	// as its lower bound.
	if lo, hi := splitRange(token); lo != nil {
		if domain.CompareParts(req, lo) >= 0 && domain.CompareParts(req, hi) <= 0 {
			return scoreRangeInside + domain.Patch(hi), matchRangeInside
		}
		if domain.SamePrefix(req, hi, 2) && domain.CompareParts(req, hi) > 0 {
			// Newer point release just past the range's upper bound
			return scoreSamePrefixNewer + domain.Patch(hi), matchRangeNewer
		}
		return 0, matchNone
	}

	tok := domain.ParseParts(token)
	if tok == nil {
		return 0, matchNone
	}

	for _, rule := range numericRules {
		if s, ok := rule.score(tok, req); ok {
			return s, rule.kind
		}
	}
	return 0, matchNone
}

// ScoreGameVersions rates a version's game-version token set against the
// requested game version. Higher is better; 0 means incompatible. An unset
// request matches anything; an empty token set against a concrete request is
// a weak universal match that ranks below any explicit hit.
func ScoreGameVersions(tokens []string, requested string) int {
	requested = normalizeVersionToken(requested)
	if requested == "" {
		return math.MaxInt
	}
	if len(tokens) == 0 {
		return scoreUniversal
	}

	best := 0
	for _, t := range tokens {
		if s, _ := tokenScore(t, requested); s > best {
			best = s
		}
	}
	return best
}

// HasDirectMatch reports whether any token is an exact numeric hit for the
// requested version. Range and prefix heuristics do not count, so callers
// can distinguish "found the real thing" from "found something close".
func HasDirectMatch(tokens []string, requested string) bool {
	requested = normalizeVersionToken(requested)
	if requested == "" {
		return false
	}
	for _, t := range tokens {
		if _, kind := tokenScore(t, requested); kind == matchExact {
			return true
		}
	}
	return false
}
