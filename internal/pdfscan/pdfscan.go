// Package pdfscan pulls citation identifiers out of PDF documents so a
// manuscript's reference list can be fed straight into batch verification.
package pdfscan

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/matsen/citevet/internal/doi"
)

var doiPattern = regexp.MustCompile(`(?i)10\.\d{4,9}/[^\s<>"{}|\\^~\[\]` + "`" + `]+`)

// ScanFile extracts every distinct DOI from a PDF, in order of first
// appearance. maxPages <= 0 scans the whole document.
func ScanFile(path string, maxPages int) ([]string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening pdf: %w", err)
	}
	defer f.Close()

	if maxPages <= 0 || maxPages > r.NumPage() {
		maxPages = r.NumPage()
	}

	var builder strings.Builder
	for i := 1; i <= maxPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			// Pages with broken font tables are common in scanned PDFs;
			// skip them and keep what the rest of the document yields.
			continue
		}
		builder.WriteString(text)
		builder.WriteString("\n")
	}

	return ScanText(builder.String()), nil
}

// ScanText extracts every distinct normalized DOI from free text, in
// order of first appearance.
func ScanText(text string) []string {
	matches := doiPattern.FindAllString(text, -1)

	seen := make(map[string]bool)
	var dois []string
	for _, m := range matches {
		d := doi.NormalizeFromText(m)
		if d == "" || !doi.IsValid(d) || seen[d] {
			continue
		}
		seen[d] = true
		dois = append(dois, d)
	}
	return dois
}

// FirstDOI returns the first DOI found in the opening pages of a PDF,
// where a paper's own DOI usually appears. Empty when none is found;
// absence is not an error.
func FirstDOI(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening pdf: %w", err)
	}
	defer f.Close()

	maxPages := 3
	if r.NumPage() < maxPages {
		maxPages = r.NumPage()
	}

	for i := 1; i <= maxPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		if dois := ScanText(text); len(dois) > 0 {
			return dois[0], nil
		}
	}
	return "", nil
}
