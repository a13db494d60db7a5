// Package batch fans verification requests out over a bounded concurrency
// window, with result caching keyed by normalized identifier.
package batch

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/matsen/citevet/internal/cache"
	"github.com/matsen/citevet/internal/citation"
	"github.com/matsen/citevet/internal/doi"
)

// Window bounds. Windows keep the number of simultaneous outstanding
// lookups small enough to stay inside third-party rate limits.
const (
	DefaultWindowSize = 5
	MaxWindowSize     = 10
)

// Verifier verifies a single citation. Implemented by verify.Engine.
type Verifier interface {
	Verify(ctx context.Context, in citation.Input) citation.Result
}

// ResultStore is an optional persistence layer consulted behind the
// in-memory cache (see internal/storage). Store failures are tolerated:
// persistence is an optimization, never a correctness dependency.
type ResultStore interface {
	Get(key string) (citation.Result, bool, error)
	Put(key string, result citation.Result) error
}

// Item is one batch entry as supplied by the scanning collaborator: an
// opaque caller-assigned id, a context tag, and the citation fields inline.
type Item struct {
	ID      string `json:"id"`
	Context string `json:"context,omitempty"` // current-article | reference
	citation.Input
}

// ItemResult pairs a verification result with the item id it answers.
type ItemResult struct {
	ID      string `json:"id"`
	Context string `json:"context,omitempty"`
	citation.Result
}

// Coordinator runs batches of verifications with windowed concurrency.
type Coordinator struct {
	verifier Verifier
	cache    *cache.Cache
	store    ResultStore
	window   int
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithWindowSize sets the number of concurrent in-flight lookups per
// window, clamped to [1, MaxWindowSize].
func WithWindowSize(n int) Option {
	return func(c *Coordinator) {
		if n < 1 {
			n = 1
		}
		if n > MaxWindowSize {
			n = MaxWindowSize
		}
		c.window = n
	}
}

// WithCache substitutes the in-memory result cache.
func WithCache(cc *cache.Cache) Option {
	return func(c *Coordinator) {
		c.cache = cc
	}
}

// WithStore attaches a persistent result store behind the cache.
func WithStore(s ResultStore) Option {
	return func(c *Coordinator) {
		c.store = s
	}
}

// New creates a coordinator over the given verifier.
func New(v Verifier, opts ...Option) *Coordinator {
	c := &Coordinator{
		verifier: v,
		cache:    cache.New(),
		window:   DefaultWindowSize,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CheckBatch verifies inputs and returns results index-aligned with them:
// result[i] answers inputs[i] regardless of completion order. A single
// input's unexpected failure yields a skip result at its index only.
func (c *Coordinator) CheckBatch(ctx context.Context, inputs []citation.Input) []citation.Result {
	results := make([]citation.Result, len(inputs))

	for start := 0; start < len(inputs); start += c.window {
		end := start + c.window
		if end > len(inputs) {
			end = len(inputs)
		}

		g, gctx := errgroup.WithContext(ctx)
		for i := start; i < end; i++ {
			g.Go(func() error {
				results[i] = c.checkOne(gctx, inputs[i])
				return nil
			})
		}
		// Workers never return errors; Wait only synchronizes the window.
		_ = g.Wait()
	}

	return results
}

// CheckItems verifies tagged items, echoing each item's id and context tag
// alongside its result. Results are index-aligned with items.
func (c *Coordinator) CheckItems(ctx context.Context, items []Item) []ItemResult {
	inputs := make([]citation.Input, len(items))
	for i, item := range items {
		inputs[i] = item.Input
	}

	results := c.CheckBatch(ctx, inputs)

	out := make([]ItemResult, len(items))
	for i, item := range items {
		out[i] = ItemResult{ID: item.ID, Context: item.Context, Result: results[i]}
	}
	return out
}

// checkOne verifies a single input through the cache and store layers,
// converting any panic from the pipeline into a skip result so one bad
// input cannot corrupt its siblings.
func (c *Coordinator) checkOne(ctx context.Context, in citation.Input) (result citation.Result) {
	defer func() {
		if r := recover(); r != nil {
			result = citation.Result{
				Exists:        false,
				Confidence:    0,
				Source:        citation.SourceNone,
				Discrepancies: []citation.Discrepancy{},
				Status:        citation.StatusSkip,
			}
		}
	}()

	key := CacheKey(in)
	if key != "" {
		if cached, ok := c.cache.Get(key); ok {
			return cached
		}
		if c.store != nil {
			if stored, ok, err := c.store.Get(key); err == nil && ok {
				c.cache.Put(key, stored)
				return stored
			}
		}
	}

	result = c.verifier.Verify(ctx, in)

	if key != "" {
		c.cache.Put(key, result)
		if c.store != nil {
			_ = c.store.Put(key, result)
		}
	}
	return result
}

// CacheKey derives the cache key for an input from the first non-empty
// identifier, in DOI, PMID, title priority order. Returns "" when the input
// has no usable key (such inputs are verified but never cached).
func CacheKey(in citation.Input) string {
	if d := doi.Normalize(in.DOI); d != "" {
		return "doi:" + d
	}
	if p := doi.NormalizePMID(in.PMID); p != "" {
		return "pmid:" + p
	}
	if t := strings.TrimSpace(strings.ToLower(in.Title)); t != "" {
		return fmt.Sprintf("title:%s", t)
	}
	return ""
}
