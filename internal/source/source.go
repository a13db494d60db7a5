// Package source defines the capability contracts implemented by external
// bibliographic sources and the three-way outcome of a lookup.
package source

import (
	"context"

	"github.com/matsen/citevet/internal/citation"
)

// Lookup is implemented once per external bibliographic source.
type Lookup interface {
	// GetWork resolves a normalized DOI to a work. The source's "resource
	// absent" signal maps to a not-found outcome; every other failure
	// (timeout, non-404 HTTP status, malformed body) maps to a failed
	// outcome. The two must never be conflated: only a positive not-found
	// may contribute evidence toward a fabrication verdict.
	GetWork(ctx context.Context, doi string) Outcome

	// SearchByTitleAuthorYear is a best-effort fuzzy search. It returns an
	// empty slice on any failure; search is already a fallback path, so
	// its errors never propagate.
	SearchByTitleAuthorYear(ctx context.Context, title, author string, year int) []citation.Work
}

// PMIDLookup is an optional capability for sources that can resolve PubMed
// identifiers directly. Detected by interface assertion.
type PMIDLookup interface {
	GetWorkByPMID(ctx context.Context, pmid string) Outcome
}

type outcomeKind int

const (
	kindFound outcomeKind = iota
	kindNotFound
	kindFailed
)

// Outcome is the tagged result of a single-identifier lookup: exactly one of
// found(work), not-found, or failed(err). Failures are values here, not
// returned errors, so the orchestrator can fall back without unwrapping.
type Outcome struct {
	kind outcomeKind
	work *citation.Work
	err  error
}

// Found wraps a successfully retrieved work.
func Found(w *citation.Work) Outcome {
	return Outcome{kind: kindFound, work: w}
}

// NotFound records that the source positively confirmed the identifier does
// not exist.
func NotFound() Outcome {
	return Outcome{kind: kindNotFound}
}

// Failed records that the source could not determine existence.
func Failed(err error) Outcome {
	return Outcome{kind: kindFailed, err: err}
}

// IsFound reports whether the lookup retrieved a work.
func (o Outcome) IsFound() bool { return o.kind == kindFound }

// IsNotFound reports whether the source positively confirmed absence.
func (o Outcome) IsNotFound() bool { return o.kind == kindNotFound }

// IsFailed reports whether the source could not determine existence.
func (o Outcome) IsFailed() bool { return o.kind == kindFailed }

// Work returns the retrieved work, or nil unless IsFound.
func (o Outcome) Work() *citation.Work { return o.work }

// Err returns the lookup failure, or nil unless IsFailed.
func (o Outcome) Err() error { return o.err }
