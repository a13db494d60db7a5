package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/matsen/citevet/internal/citation"
)

// outputJSON writes a value as formatted JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputJSONCompact writes a value as compact JSON to stdout.
func outputJSONCompact(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	return enc.Encode(v)
}

// exitWithError outputs an error in the appropriate format (human or JSON) and exits.
func exitWithError(code int, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if humanOutput {
		fmt.Fprintf(os.Stderr, "error: %s\n", msg)
	} else {
		outputJSON(ErrorResponse{Error: msg})
	}
	os.Exit(code)
}

// ErrorResponse is a JSON error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// printResultHuman prints a verification result in human-readable format.
func printResultHuman(r citation.Result) {
	fmt.Printf("status: %s (confidence %.2f, source %s)\n", r.Status, r.Confidence, r.Source)
	if r.Work != nil {
		fmt.Printf("  %s\n", r.Work.Title)
		if len(r.Work.Authors) > 0 {
			fmt.Printf("  %s (%d) %s\n", formatAuthorsShort(r.Work.Authors, 3), r.Work.Year, r.Work.Journal)
		}
		if r.Work.DOI != "" {
			fmt.Printf("  doi:%s\n", r.Work.DOI)
		}
	}
	for _, d := range r.Discrepancies {
		fmt.Printf("  %s mismatch (%s): cited %q, registry has %q\n", d.Field, d.Severity, d.Provided, d.Actual)
	}
	if r.Retraction != nil {
		fmt.Printf("  %s notice", r.Retraction.Nature)
		if r.Retraction.Date != "" {
			fmt.Printf(" (%s)", r.Retraction.Date)
		}
		fmt.Println()
	}
}

// formatAuthorsShort renders up to max author names, appending "et al."
// when the list is longer.
func formatAuthorsShort(authors []citation.Author, max int) string {
	names := make([]string, 0, max)
	for i, a := range authors {
		if i >= max {
			return strings.Join(names, ", ") + " et al."
		}
		names = append(names, a.DisplayName())
	}
	return strings.Join(names, ", ")
}
