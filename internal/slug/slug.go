// Package slug derives URL identifiers for posts from their titles.
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
	disallowed = regexp.MustCompile(`[^a-z0-9\s-]`)
	whitespace = regexp.MustCompile(`\s+`)
	dashes     = regexp.MustCompile(`-+`)
	wellFormed = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
)

// Make lower-cases s, folds accents (é to e), drops anything that is not a
// letter, digit, space or dash, then joins words with single dashes.
// Leading and trailing dashes are trimmed.
func Make(s string) string {
	s = strings.TrimSpace(strings.ToLower(fold(s)))
	s = disallowed.ReplaceAllString(s, "")
	s = whitespace.ReplaceAllString(s, "-")
	s = dashes.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// Valid reports whether s is already in the form Make produces.
func Valid(s string) bool {
	return wellFormed.MatchString(s)
}

// fold strips combining marks after canonical decomposition.
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
