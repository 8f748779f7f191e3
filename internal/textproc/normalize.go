// Package textproc provides pure text transforms: normalization for keyword and
// classification matching, display-safe cleaning, and keyword extraction.
package textproc

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldMarks decomposes to NFD and drops combining marks, so "café" matches "cafe".
var foldMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))

// Normalize returns a matching-safe view of text: diacritics stripped, lowercased,
// whitespace runs collapsed to single spaces, trimmed. Idempotent. The result is
// meant for substring matching and tokenization, never for display.
func Normalize(text string) string {
	folded, _, err := transform.String(foldMarks, text)
	if err != nil {
		folded = text
	}
	return collapseWhitespace(strings.ToLower(folded))
}

var (
	// disallowed matches characters outside word chars, whitespace, and basic punctuation.
	disallowed  = regexp.MustCompile(`[^\p{L}\p{N}_\s.,;:!?()-]`)
	manyPeriods = regexp.MustCompile(`\.{3,}`)
	manyHyphens = regexp.MustCompile(`-{2,}`)
)

// Clean returns a display-safe view of text with case preserved: characters
// outside word chars, whitespace, and basic punctuation are dropped, runs of
// 3+ periods collapse to "..." and 2+ hyphens to "--". Idempotent.
func Clean(text string) string {
	text = disallowed.ReplaceAllString(text, " ")
	text = collapseWhitespace(text)
	text = manyPeriods.ReplaceAllString(text, "...")
	text = manyHyphens.ReplaceAllString(text, "--")
	return text
}

// collapseWhitespace replaces whitespace runs with single spaces and trims ends.
func collapseWhitespace(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	wasSpace := false
	for _, r := range text {
		if unicode.IsSpace(r) {
			if !wasSpace {
				b.WriteRune(' ')
				wasSpace = true
			}
		} else {
			b.WriteRune(r)
			wasSpace = false
		}
	}
	return strings.TrimSpace(b.String())
}
