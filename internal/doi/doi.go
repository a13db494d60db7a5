// Package doi canonicalizes DOIs and PMIDs for lookups and comparison keys.
package doi

import (
	"regexp"
	"strings"
)

// doiPattern matches a DOI embedded in free text: 10.XXXX/... with a 4-9
// digit registrant prefix.
var doiPattern = regexp.MustCompile(`10\.\d{4,9}/[^\s<>"{}|\\^~\[\]` + "`" + `]+`)

// trailingPunct are the characters stripped from the end of identifiers
// extracted from free text (sentence punctuation and close brackets).
const trailingPunct = ".,;:)]}>"

// placeholders are DOI values that mean "no DOI" in upstream metadata.
var placeholders = map[string]bool{
	"":            true,
	"0":           true,
	"unavailable": true,
}

// Normalize canonicalizes an API-supplied DOI: lowercases, trims whitespace,
// and strips a leading http(s)://doi.org/ or doi: prefix. Placeholder values
// ("", "0", "unavailable") normalize to the empty string, meaning no DOI was
// provided. Idempotent.
func Normalize(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	for _, prefix := range []string{"https://doi.org/", "http://doi.org/", "https://dx.doi.org/", "http://dx.doi.org/", "doi:"} {
		if strings.HasPrefix(s, prefix) {
			s = s[len(prefix):]
			break
		}
	}
	s = strings.TrimSpace(s)
	if placeholders[s] {
		return ""
	}
	return s
}

// NormalizeFromText canonicalizes a DOI extracted from free text. Same as
// Normalize, plus trailing sentence punctuation is stripped (a DOI at the end
// of a sentence picks up the period). Idempotent.
func NormalizeFromText(raw string) string {
	s := Normalize(raw)
	s = strings.TrimRight(s, trailingPunct)
	if placeholders[s] {
		return ""
	}
	return s
}

// NormalizePMID canonicalizes a PubMed identifier: trims, strips a pmid:
// prefix, and rejects anything that is not all digits.
func NormalizePMID(raw string) string {
	s := strings.TrimSpace(strings.ToLower(raw))
	s = strings.TrimPrefix(s, "pmid:")
	s = strings.TrimSpace(s)
	if s == "" || s == "0" {
		return ""
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return ""
		}
	}
	return s
}

// IsValid performs basic shape validation on a normalized DOI.
func IsValid(d string) bool {
	if len(d) < 7 {
		return false
	}
	if !strings.HasPrefix(d, "10.") {
		return false
	}
	slashIdx := strings.Index(d, "/")
	return slashIdx > 0 && slashIdx < len(d)-1
}

// FromURL extracts and normalizes a DOI embedded in a URL, if any.
// Returns the empty string when the URL carries no recognizable DOI.
func FromURL(url string) string {
	match := doiPattern.FindString(url)
	if match == "" {
		return ""
	}
	return NormalizeFromText(match)
}
