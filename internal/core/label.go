package core

import (
	"regexp"
	"strings"

	"mcw/internal/domain"
)

// Vendor version titles and numbers routinely embed the target game version
// ("Fabric 1.20.1-3.2.0", "[1.20] Release", "3.2.0+1.20.1"). These helpers
// strip that redundancy so the UI can show a clean label next to a
// separately rendered game-version chip. Both are pure, idempotent, and
// degrade to returning their input rather than destroying information.

var (
	// [1.20.1] / (1.20) style leading tags containing a version-like number
	leadingBracketTag = regexp.MustCompile(`^\s*[\[(][^\])]*\d+(?:\.\d+)+[^\])]*[\])][\s:-]*`)

	// "minecraft version" / "mc version" filler
	versionPhrase = regexp.MustCompile(`(?i)\b(?:minecraft|mc)[ _-]?version\b`)

	// bracket/pipe/dash/underscore punctuation collapsed to spaces
	titlePunct = regexp.MustCompile("[][(){}|_–—-]+")

	whitespaceRun = regexp.MustCompile(`\s+`)

	// repeated separators ("--", "-+", "._") collapse to their first char
	separatorRun = regexp.MustCompile(`([-+._])[-+._]+`)

	trailingSeparators = regexp.MustCompile(`[-+._\s]+$`)

	// one trailing bare version suffix; dot excluded from the separator so
	// four-component versions are never split
	trailingBareVersion = regexp.MustCompile(`^(.*)([-+_])(\d+\.\d+(?:\.\d+)?)$`)

	// best-effort extraction for degenerate fallbacks
	anyVersionRun = regexp.MustCompile(`\d+(?:\.\d+)+`)
)

// replaceToFixpoint applies re.ReplaceAllString until the string stops
// changing. Replacement patterns that keep their boundary characters can
// miss back-to-back occurrences in a single pass.
func replaceToFixpoint(re *regexp.Regexp, s, repl string) string {
	for {
		next := re.ReplaceAllString(s, repl)
		if next == s {
			return s
		}
		s = next
	}
}

// StripVersionFromTitle removes embedded game-version noise from a version
// title. When gameVersion is empty only the generic cleanup applies. If
// stripping would leave nothing meaningful the original title is returned.
func StripVersionFromTitle(title, gameVersion string) string {
	out := leadingBracketTag.ReplaceAllString(title, "")

	if gv := normalizeVersionToken(gameVersion); gv != "" {
		// Underscore is a boundary here even though \w would keep it:
		// titlePunct turns it into a space later, and an occurrence that
		// only becomes visible after that rewrite would break idempotence.
		re := regexp.MustCompile(`(?i)(^|[^0-9a-zA-Z.])(?:mc[ _-]?)?` + regexp.QuoteMeta(gv) + `($|[^0-9a-zA-Z.])`)
		out = replaceToFixpoint(re, out, "$1$2")
	}

	out = versionPhrase.ReplaceAllString(out, " ")
	out = titlePunct.ReplaceAllString(out, " ")
	out = strings.TrimSpace(whitespaceRun.ReplaceAllString(out, " "))

	if out == "" || allZeroDigits(out) {
		return title
	}
	return out
}

// StripVersionFromNumber removes game-version decorations from a raw version
// number string ("3.2.0+1.20.1" -> "3.2.0"). When gameVersion is empty only
// separator cleanup applies. Degenerate results fall back to a best-effort
// numeric substring of the original, then to the original itself.
func StripVersionFromNumber(number, gameVersion string) string {
	out := strings.TrimSpace(number)

	if gv := normalizeVersionToken(gameVersion); gv != "" {
		q := regexp.QuoteMeta(gv)

		trailingGV := regexp.MustCompile(`(?i)(?:[-+._ ](?:mc)?` + q + `)+$`)
		leadingGV := regexp.MustCompile(`(?i)^(?:mc)?` + q + `[-+._]`)
		// internal occurrence collapses to a single separator; the
		// non-dot trailing separator keeps "1.20" from eating into
		// "1.20.1"
		internalGV := regexp.MustCompile(`(?i)([-+._])(?:mc)?` + q + `[-+_]`)

		// Rules can cascade (a stripped suffix can expose a trailing
		// game-version run), so iterate the block until stable.
		for {
			prev := out
			out = trailingGV.ReplaceAllString(out, "")
			out = leadingGV.ReplaceAllString(out, "")
			out = replaceToFixpoint(internalGV, out, "$1")
			out = stripBareVersionSuffix(out, gv)
			if out == prev {
				break
			}
		}
	}

	out = separatorRun.ReplaceAllString(out, "$1")
	out = trailingSeparators.ReplaceAllString(out, "")
	out = strings.TrimSpace(out)

	if out == "" || allZeroDigits(out) || (!containsDigit(out) && containsDigit(number)) {
		if extracted := anyVersionRun.FindString(number); extracted != "" {
			return extracted
		}
		return number
	}
	return out
}

// stripBareVersionSuffix removes one trailing "-N.N[.N]" run that looks like
// game-version noise: the remainder must still carry a parseable version and
// the suffix must share its leading component with the requested game
// version. Anything else is assumed to be part of the real version number.
func stripBareVersionSuffix(s, gv string) string {
	m := trailingBareVersion.FindStringSubmatch(s)
	if m == nil {
		return s
	}
	remainder, suffix := m[1], m[3]
	gvParts := domain.ParseParts(gv)
	suffixParts := domain.ParseParts(suffix)
	if domain.ParseParts(remainder) == nil || gvParts == nil || suffixParts == nil {
		return s
	}
	if suffixParts[0] != gvParts[0] {
		return s
	}
	return remainder
}

func allZeroDigits(s string) bool {
	return strings.IndexFunc(s, func(r rune) bool {
		return r != '0' && r != '.' && r != ' '
	}) == -1
}

func containsDigit(s string) bool {
	return strings.IndexAny(s, "0123456789") != -1
}
