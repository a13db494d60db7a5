package batch

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/matsen/citevet/internal/citation"
)

// fakeVerifier returns a scripted result per DOI and counts calls.
type fakeVerifier struct {
	mu      sync.Mutex
	results map[string]citation.Result
	calls   int
	inFlight    atomic.Int32
	maxInFlight atomic.Int32
	panicOn     string
}

func (f *fakeVerifier) Verify(ctx context.Context, in citation.Input) citation.Result {
	cur := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		observed := f.maxInFlight.Load()
		if cur <= observed || f.maxInFlight.CompareAndSwap(observed, cur) {
			break
		}
	}

	f.mu.Lock()
	f.calls++
	f.mu.Unlock()

	if f.panicOn != "" && in.DOI == f.panicOn {
		panic("pipeline blew up")
	}

	if r, ok := f.results[in.DOI]; ok {
		return r
	}
	return citation.Result{
		Exists:     true,
		Confidence: 1.0,
		Source:     citation.SourcePrimary,
		Status:     citation.StatusVerified,
		Work:       &citation.Work{DOI: in.DOI},
	}
}

func (f *fakeVerifier) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func inputs(n int) []citation.Input {
	ins := make([]citation.Input, n)
	for i := range ins {
		ins[i] = citation.Input{DOI: fmt.Sprintf("10.1/paper-%d", i)}
	}
	return ins
}

func TestCheckBatch_IndexAligned(t *testing.T) {
	v := &fakeVerifier{}
	c := New(v, WithWindowSize(3))

	ins := inputs(10)
	results := c.CheckBatch(context.Background(), ins)

	if len(results) != len(ins) {
		t.Fatalf("len(results) = %d, want %d", len(results), len(ins))
	}
	for i, r := range results {
		if r.Work == nil || r.Work.DOI != ins[i].DOI {
			t.Errorf("result[%d] answers %v, want %s", i, r.Work, ins[i].DOI)
		}
	}
}

func TestCheckBatch_WindowBoundsConcurrency(t *testing.T) {
	v := &fakeVerifier{}
	c := New(v, WithWindowSize(4))

	c.CheckBatch(context.Background(), inputs(20))

	if got := v.maxInFlight.Load(); got > 4 {
		t.Errorf("max in-flight = %d, want <= 4", got)
	}
}

func TestCheckBatch_PanicYieldsSkipForThatInputOnly(t *testing.T) {
	v := &fakeVerifier{panicOn: "10.1/paper-3"}
	c := New(v, WithWindowSize(2))

	ins := inputs(6)
	results := c.CheckBatch(context.Background(), ins)

	if len(results) != 6 {
		t.Fatalf("len(results) = %d, want 6", len(results))
	}
	for i, r := range results {
		if i == 3 {
			if r.Status != citation.StatusSkip {
				t.Errorf("result[3].status = %s, want skip", r.Status)
			}
			continue
		}
		if r.Status != citation.StatusVerified {
			t.Errorf("result[%d].status = %s, want sibling unaffected", i, r.Status)
		}
	}
}

func TestCheckBatch_CacheShortCircuits(t *testing.T) {
	v := &fakeVerifier{}
	c := New(v, WithWindowSize(1))

	in := citation.Input{DOI: "10.1/repeat"}
	c.CheckBatch(context.Background(), []citation.Input{in, in, in})

	if got := v.callCount(); got != 1 {
		t.Errorf("verifier called %d times, want 1 (cache hit on repeats)", got)
	}

	// And across calls, for the cache's lifetime.
	c.CheckBatch(context.Background(), []citation.Input{in})
	if got := v.callCount(); got != 1 {
		t.Errorf("verifier called %d times across batches, want 1", got)
	}
}

func TestCheckBatch_UncacheableInputsAlwaysVerified(t *testing.T) {
	v := &fakeVerifier{}
	c := New(v, WithWindowSize(1))

	in := citation.Input{Year: 2020} // No DOI, PMID, or title
	c.CheckBatch(context.Background(), []citation.Input{in, in})

	if got := v.callCount(); got != 2 {
		t.Errorf("verifier called %d times, want 2 (no cache key)", got)
	}
}

// memStore is an in-memory ResultStore for wiring tests.
type memStore struct {
	mu   sync.Mutex
	data map[string]citation.Result
	gets int
	puts int
}

func newMemStore() *memStore {
	return &memStore{data: make(map[string]citation.Result)}
}

func (s *memStore) Get(key string) (citation.Result, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gets++
	r, ok := s.data[key]
	return r, ok, nil
}

func (s *memStore) Put(key string, result citation.Result) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.puts++
	s.data[key] = result
	return nil
}

func TestCheckBatch_StoreBehindCache(t *testing.T) {
	store := newMemStore()
	store.data["doi:10.1/stored"] = citation.Result{Status: citation.StatusRetracted, Exists: true}

	v := &fakeVerifier{}
	c := New(v, WithStore(store))

	results := c.CheckBatch(context.Background(), []citation.Input{{DOI: "10.1/stored"}})

	if results[0].Status != citation.StatusRetracted {
		t.Errorf("status = %s, want stored result", results[0].Status)
	}
	if v.callCount() != 0 {
		t.Errorf("verifier called %d times, want 0 (store hit)", v.callCount())
	}

	// Fresh verifications are persisted.
	c.CheckBatch(context.Background(), []citation.Input{{DOI: "10.1/fresh"}})
	if store.puts != 1 {
		t.Errorf("store puts = %d, want 1", store.puts)
	}
}

func TestCheckItems_EchoesIDAndContext(t *testing.T) {
	v := &fakeVerifier{}
	c := New(v)

	items := []Item{
		{ID: "c1", Context: "reference", Input: citation.Input{DOI: "10.1/a"}},
		{ID: "c2", Context: "current-article", Input: citation.Input{DOI: "10.1/b"}},
	}
	results := c.CheckItems(context.Background(), items)

	if len(results) != 2 {
		t.Fatalf("len = %d, want 2", len(results))
	}
	if results[0].ID != "c1" || results[0].Context != "reference" {
		t.Errorf("results[0] = %+v, want id/context echoed", results[0])
	}
	if results[1].ID != "c2" || results[1].Work.DOI != "10.1/b" {
		t.Errorf("results[1] = %+v, want aligned with items[1]", results[1])
	}
}

func TestCacheKey_Priority(t *testing.T) {
	tests := []struct {
		name string
		in   citation.Input
		want string
	}{
		{
			name: "doi wins",
			in:   citation.Input{DOI: "HTTPS://DOI.ORG/10.1/X", PMID: "123", Title: "T"},
			want: "doi:10.1/x",
		},
		{
			name: "pmid when no doi",
			in:   citation.Input{PMID: "123", Title: "Some Title"},
			want: "pmid:123",
		},
		{
			name: "title last",
			in:   citation.Input{Title: "  Some Title "},
			want: "title:some title",
		},
		{
			name: "placeholder doi ignored",
			in:   citation.Input{DOI: "unavailable", Title: "Some Title"},
			want: "title:some title",
		},
		{
			name: "nothing usable",
			in:   citation.Input{Year: 2020},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CacheKey(tt.in); got != tt.want {
				t.Errorf("CacheKey(%+v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
