package compare

import (
	"strconv"

	"github.com/matsen/citevet/internal/citation"
)

// Per-field similarity thresholds. A comparison below the threshold records
// a discrepancy at the listed severity.
const (
	titleThreshold    = 0.9 // below -> major; below titleCritical -> critical
	titleCritical     = 0.5
	authorThreshold   = 0.7 // below -> major
	journalThreshold  = 0.7 // below -> minor
	yearMajorDistance = 2   // |provided - actual| beyond this -> major, else minor
)

// Fields compares provided citation metadata against a retrieved work and
// returns the discrepancies, one per mismatched field. A field absent on
// either side is not compared: absence is not evidence of fabrication.
func Fields(provided citation.Input, actual *citation.Work) []citation.Discrepancy {
	var discrepancies []citation.Discrepancy

	if provided.Title != "" && actual.Title != "" {
		if sim := Similarity(provided.Title, actual.Title); sim < titleThreshold {
			severity := citation.SeverityMajor
			if sim < titleCritical {
				severity = citation.SeverityCritical
			}
			discrepancies = append(discrepancies, citation.Discrepancy{
				Field:    "title",
				Provided: provided.Title,
				Actual:   actual.Title,
				Severity: severity,
			})
		}
	}

	if provided.Year != 0 && actual.Year != 0 && provided.Year != actual.Year {
		severity := citation.SeverityMinor
		if abs(provided.Year-actual.Year) > yearMajorDistance {
			severity = citation.SeverityMajor
		}
		discrepancies = append(discrepancies, citation.Discrepancy{
			Field:    "year",
			Provided: strconv.Itoa(provided.Year),
			Actual:   strconv.Itoa(actual.Year),
			Severity: severity,
		})
	}

	if len(provided.Authors) > 0 && len(actual.Authors) > 0 {
		providedFirst := provided.Authors[0]
		actualFirst := actual.Authors[0].DisplayName()
		if providedFirst != "" && actualFirst != "" {
			if sim := Similarity(providedFirst, actualFirst); sim < authorThreshold {
				discrepancies = append(discrepancies, citation.Discrepancy{
					Field:    "authors",
					Provided: providedFirst,
					Actual:   actualFirst,
					Severity: citation.SeverityMajor,
				})
			}
		}
	}

	if provided.Journal != "" && actual.Journal != "" {
		if sim := Similarity(provided.Journal, actual.Journal); sim < journalThreshold {
			discrepancies = append(discrepancies, citation.Discrepancy{
				Field:    "journal",
				Provided: provided.Journal,
				Actual:   actual.Journal,
				Severity: citation.SeverityMinor,
			})
		}
	}

	return discrepancies
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
