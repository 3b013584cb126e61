package sanitize

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// FallbackName is returned when sanitization leaves nothing usable.
const FallbackName = "transcript"

var (
	whitespaceRuns = regexp.MustCompile(`\s+`)
	invalidChars   = regexp.MustCompile(`[^A-Za-z0-9_.-]`)
	underscoreRuns = regexp.MustCompile(`_+`)

	// NFKD decomposition followed by dropping everything outside ASCII.
	// Accented letters degrade to their base form; non-Latin scripts
	// are dropped entirely.
	asciiFold = transform.Chain(
		norm.NFKD,
		runes.Remove(runes.Predicate(func(r rune) bool { return r > unicode.MaxASCII })),
	)
)

var htmlEntities = strings.NewReplacer(
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&#39;", "'",
)

// Filename converts a video title into a filesystem-safe ASCII token.
// It is total: any input, including the empty string, yields a non-empty
// result, and identical input always yields an identical result.
func Filename(title string) string {
	name := htmlEntities.Replace(title)
	if folded, _, err := transform.String(asciiFold, name); err == nil {
		name = folded
	}
	name = whitespaceRuns.ReplaceAllString(name, "_")
	// Disallowed characters become underscores so that word boundaries
	// survive ("Francois's" -> "Francois_s"); runs collapse below.
	name = invalidChars.ReplaceAllString(name, "_")
	name = underscoreRuns.ReplaceAllString(name, "_")
	name = strings.Trim(name, "_")
	if name == "" {
		return FallbackName
	}
	return name
}
