// Package verify orchestrates multi-source citation lookups and classifies
// the outcome into a final citation status.
package verify

import (
	"context"

	"github.com/matsen/citevet/internal/citation"
	"github.com/matsen/citevet/internal/compare"
	"github.com/matsen/citevet/internal/doi"
	"github.com/matsen/citevet/internal/retraction"
	"github.com/matsen/citevet/internal/source"
)

// Engine verifies citations against a primary and a secondary bibliographic
// source. The secondary is consulted only when the primary cannot confirm
// existence; within one verification the two are strictly sequenced.
type Engine struct {
	primary   source.Lookup
	secondary source.Lookup
}

// New creates an engine over the given source clients.
func New(primary, secondary source.Lookup) *Engine {
	return &Engine{primary: primary, secondary: secondary}
}

// Verify resolves one citation to a verification result. It never returns an
// error: every failure mode degrades to a result, with "skip" as the floor
// (no usable evidence, no accusation).
func (e *Engine) Verify(ctx context.Context, in citation.Input) citation.Result {
	d := doi.Normalize(in.DOI)
	if d == "" && in.URL != "" {
		d = doi.FromURL(in.URL)
	}
	if d != "" {
		return e.verifyDOI(ctx, in, d)
	}

	if pmid := doi.NormalizePMID(in.PMID); pmid != "" {
		if result, ok := e.verifyPMID(ctx, in, pmid); ok {
			return result
		}
		// PMID unresolvable; fall through to fuzzy search.
	}

	if in.Title != "" {
		return e.verifyBySearch(ctx, in)
	}

	// No usable identifying field.
	return skipResult()
}

// verifyDOI runs the two-source fallback protocol. Existence in either
// source is conclusive; absence requires a positive not-found from at least
// one source after the chain is exhausted, and two indeterminate failures
// degrade to skip, never to an accusation.
func (e *Engine) verifyDOI(ctx context.Context, in citation.Input, d string) citation.Result {
	primaryOut := e.primary.GetWork(ctx, d)
	if primaryOut.IsFound() {
		return e.foundResult(in, primaryOut.Work(), citation.SourcePrimary)
	}

	secondaryOut := e.secondary.GetWork(ctx, d)
	if secondaryOut.IsFound() {
		return e.foundResult(in, secondaryOut.Work(), citation.SourceSecondary)
	}

	if primaryOut.IsFailed() && secondaryOut.IsFailed() {
		// Neither source could establish existence either way.
		return skipResult()
	}

	// At least one source positively confirmed absence.
	return citation.Result{
		Exists:     false,
		Confidence: 0,
		Source:     citation.SourceNone,
		Discrepancies: []citation.Discrepancy{{
			Field:    "doi",
			Provided: d,
			Severity: citation.SeverityCritical,
		}},
		Status: citation.StatusFakeLikely,
	}
}

// verifyPMID resolves a PubMed identifier through whichever source carries
// the capability. Only a found outcome is treated as evidence; a not-found
// or failed PMID lookup reports ok=false so the caller can fall back to
// fuzzy search (PMID coverage is too sparse for an absence verdict).
func (e *Engine) verifyPMID(ctx context.Context, in citation.Input, pmid string) (citation.Result, bool) {
	lookups := []struct {
		client source.Lookup
		tag    citation.SourceTag
	}{
		{e.primary, citation.SourcePrimary},
		{e.secondary, citation.SourceSecondary},
	}

	for _, l := range lookups {
		pl, ok := l.client.(source.PMIDLookup)
		if !ok {
			continue
		}
		if outcome := pl.GetWorkByPMID(ctx, pmid); outcome.IsFound() {
			return e.foundResult(in, outcome.Work(), l.tag), true
		}
	}
	return citation.Result{}, false
}

// foundResult builds the result for a work confirmed by identifier lookup.
// Identifier existence is conclusive: metadata discrepancies are attached
// for display but never downgrade the status below verified. Only a
// retraction signal overrides verified.
func (e *Engine) foundResult(in citation.Input, work *citation.Work, tag citation.SourceTag) citation.Result {
	result := citation.Result{
		Exists:        true,
		Confidence:    1.0,
		Source:        tag,
		Work:          work,
		Discrepancies: compare.Fields(in, work),
		Status:        citation.StatusVerified,
	}

	if signal := retraction.Detect(work); signal != nil {
		result.Retraction = signal
		result.Status = statusForSignal(signal)
	}

	return result
}

// statusForSignal maps a retraction signal's nature to the status it forces.
func statusForSignal(s *citation.RetractionSignal) citation.Status {
	switch s.Nature {
	case citation.NatureConcern:
		return citation.StatusConcern
	case citation.NatureCorrection:
		return citation.StatusCorrection
	default:
		return citation.StatusRetracted
	}
}

// verifyBySearch resolves a DOI-less citation through fuzzy search: primary
// source first, secondary only when the primary returns no candidates.
func (e *Engine) verifyBySearch(ctx context.Context, in citation.Input) citation.Result {
	author := ""
	if len(in.Authors) > 0 {
		author = in.Authors[0]
	}

	tag := citation.SourcePrimary
	candidates := e.primary.SearchByTitleAuthorYear(ctx, in.Title, author, in.Year)
	if len(candidates) == 0 {
		tag = citation.SourceSecondary
		candidates = e.secondary.SearchByTitleAuthorYear(ctx, in.Title, author, in.Year)
	}
	if len(candidates) == 0 {
		// No candidates anywhere: no evidence either way.
		return skipResult()
	}

	best, score := BestMatch(in, candidates)
	discrepancies := compare.Fields(in, best)
	confidence := compare.Confidence(discrepancies)
	status := classifyFuzzy(score, confidence, discrepancies)

	result := citation.Result{
		Exists:        score > matchThreshold,
		Confidence:    confidence,
		Source:        tag,
		Discrepancies: discrepancies,
		Status:        status,
	}
	if result.Exists {
		result.Work = best
		if signal := retraction.Detect(best); signal != nil {
			result.Retraction = signal
			if status == citation.StatusVerified {
				result.Status = statusForSignal(signal)
			}
		}
	}
	if status == citation.StatusSkip {
		// A skipped fuzzy match carries no accusation and no evidence.
		return skipResult()
	}
	return result
}

// skipResult is the floor outcome: no usable evidence either way.
func skipResult() citation.Result {
	return citation.Result{
		Exists:        false,
		Confidence:    0,
		Source:        citation.SourceNone,
		Discrepancies: []citation.Discrepancy{},
		Status:        citation.StatusSkip,
	}
}
