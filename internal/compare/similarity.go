// Package compare computes metadata discrepancies between a provided
// citation and a retrieved work, and reduces them to a confidence score.
package compare

import (
	"strings"
	"unicode"
)

// minTokenLen is the shortest token that participates in similarity.
// Shorter tokens (articles, initials, "of") carry no signal.
const minTokenLen = 3

// Similarity computes a normalized, case-insensitive token-overlap ratio
// between two strings: |intersection| / |union| over their word sets,
// ignoring tokens shorter than three characters. Returns a value in [0,1].
func Similarity(a, b string) float64 {
	setA := tokenSet(a)
	setB := tokenSet(b)

	if len(setA) == 0 && len(setB) == 0 {
		// Nothing survived tokenization (short or empty strings);
		// fall back to direct comparison.
		if normalize(a) == normalize(b) {
			return 1
		}
		return 0
	}

	intersection := 0
	for tok := range setA {
		if setB[tok] {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

// tokenSet splits a string into its set of significant lowercase tokens.
func tokenSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, tok := range strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		if len(tok) >= minTokenLen {
			set[tok] = true
		}
	}
	return set
}

// normalize lowercases and trims for direct string comparison.
func normalize(s string) string {
	return strings.TrimSpace(strings.ToLower(s))
}
