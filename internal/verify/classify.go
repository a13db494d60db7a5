package verify

import "github.com/matsen/citevet/internal/citation"

// Classifier thresholds for the fuzzy-match path.
const (
	strongConfidence = 0.8
	weakConfidence   = 0.7
)

// classifyFuzzy derives the status for a citation resolved by fuzzy search.
// "Found by fuzzy search" is weaker evidence than "found by exact DOI", so
// unlike the identifier path, discrepancies here can downgrade the status:
//   - a clean, high-confidence match on an accepted candidate is verified;
//   - a critical title mismatch means the cited title does not exist in the
//     literature the search reached: fake-likely;
//   - a major mismatch on year or author suggests a garbled or invented
//     citation: fake-probably;
//   - an accepted candidate with moderate confidence is still verified;
//   - anything weaker carries no verdict: skip.
//
// The fake branches apply regardless of the match-score gate: a best
// candidate whose title barely resembles the citation is itself the
// evidence of fabrication. The verified branches require an accepted match
// (score above the gate).
func classifyFuzzy(score, confidence float64, discrepancies []citation.Discrepancy) citation.Status {
	accepted := score > matchThreshold

	if accepted && confidence >= strongConfidence && !hasSevere(discrepancies) {
		return citation.StatusVerified
	}

	for _, d := range discrepancies {
		if d.Field == "title" && d.Severity == citation.SeverityCritical {
			return citation.StatusFakeLikely
		}
	}

	for _, d := range discrepancies {
		if (d.Field == "year" || d.Field == "authors") && d.Severity == citation.SeverityMajor {
			return citation.StatusFakeProbably
		}
	}

	if accepted && confidence >= weakConfidence {
		return citation.StatusVerified
	}

	return citation.StatusSkip
}

// hasSevere reports whether any discrepancy is major or critical.
func hasSevere(discrepancies []citation.Discrepancy) bool {
	for _, d := range discrepancies {
		if d.Severity == citation.SeverityMajor || d.Severity == citation.SeverityCritical {
			return true
		}
	}
	return false
}
