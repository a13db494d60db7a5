package verify

import (
	"github.com/matsen/citevet/internal/citation"
	"github.com/matsen/citevet/internal/compare"
)

// matchThreshold is the minimum best-match score for a search candidate to
// be accepted as the citation's referent. A match at or below it is weaker
// evidence than an exact identifier lookup and never yields "verified".
const matchThreshold = 0.7

// Component weights for candidate scoring.
const (
	titleWeight  = 0.5
	authorWeight = 0.3
	yearWeight   = 0.2
)

// BestMatch scores each candidate against the input and returns the highest
// scorer with its score. Ties keep the first-seen candidate, so the result
// is deterministic for a given candidate ordering. Returns (nil, 0) for an
// empty candidate list.
//
// Score is a weighted sum of title similarity, first-author similarity, and
// exact year match. Components the input cannot supply (no author, no year)
// are left out and the remaining weights renormalized, so a title-only
// citation is scored on title alone rather than capped below the accept
// threshold.
func BestMatch(in citation.Input, candidates []citation.Work) (*citation.Work, float64) {
	if len(candidates) == 0 {
		return nil, 0
	}

	var best *citation.Work
	bestScore := -1.0

	for i := range candidates {
		score := matchScore(in, &candidates[i])
		if score > bestScore {
			best = &candidates[i]
			bestScore = score
		}
	}

	return best, bestScore
}

// matchScore computes the weighted match score for one candidate.
func matchScore(in citation.Input, candidate *citation.Work) float64 {
	score := titleWeight * compare.Similarity(in.Title, candidate.Title)
	totalWeight := titleWeight

	if len(in.Authors) > 0 && len(candidate.Authors) > 0 {
		score += authorWeight * compare.Similarity(in.Authors[0], candidate.Authors[0].DisplayName())
		totalWeight += authorWeight
	}

	if in.Year != 0 && candidate.Year != 0 {
		if in.Year == candidate.Year {
			score += yearWeight
		}
		totalWeight += yearWeight
	}

	return score / totalWeight
}
