// Package slug derives URL-safe identifiers from free-text display names.
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// disallowed matches anything that is not a lowercase letter, digit,
	// ASCII whitespace or hyphen. Matches are dropped, not replaced.
	disallowed = regexp.MustCompile(`[^a-z0-9\s-]`)
	whitespace = regexp.MustCompile(`\s+`)
	hyphens    = regexp.MustCompile(`-{2,}`)
	canonical  = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
)

// Generate maps a display name to its canonical slug.
// Example: "Señor  Cautivo (Mirador)" -> "senor-cautivo-mirador"
//
// Accents are removed by canonical decomposition followed by dropping
// combining marks; every character outside [a-z0-9] that is not whitespace or
// a hyphen is dropped. The result never starts or ends with a hyphen and never
// contains two in a row. Empty input yields "". Generate is idempotent.
func Generate(input string) string {
	s := stripMarks(input)
	s = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return ' '
		}
		return r
	}, s)
	s = strings.ToLower(s)
	s = disallowed.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)
	s = whitespace.ReplaceAllString(s, "-")
	s = hyphens.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// Valid reports whether s is already in canonical form: lowercase ASCII
// letters and digits separated by single hyphens.
func Valid(s string) bool {
	return canonical.MatchString(s)
}

// stripMarks decomposes s (NFD) and removes nonspacing marks, so "í" becomes "i".
// A transformer chain keeps state, so one is built per call.
func stripMarks(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
