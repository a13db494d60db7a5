package compare

import "github.com/matsen/citevet/internal/citation"

// Penalty per discrepancy severity. Additive model: this is a heuristic, not
// a calibrated probability.
const (
	criticalPenalty = 0.5
	majorPenalty    = 0.2
	minorPenalty    = 0.05
)

// Confidence reduces a discrepancy set to a scalar in [0,1]. Starts at 1.0
// and subtracts a fixed penalty per discrepancy, clamped at zero.
func Confidence(discrepancies []citation.Discrepancy) float64 {
	score := 1.0
	for _, d := range discrepancies {
		switch d.Severity {
		case citation.SeverityCritical:
			score -= criticalPenalty
		case citation.SeverityMajor:
			score -= majorPenalty
		case citation.SeverityMinor:
			score -= minorPenalty
		}
	}
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
