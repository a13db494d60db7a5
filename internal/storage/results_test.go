package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/matsen/citevet/internal/citation"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := OpenDB(filepath.Join(t.TempDir(), "results.db"))
	if err != nil {
		t.Fatalf("OpenDB: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestPutGet(t *testing.T) {
	db := openTestDB(t)

	if _, ok, err := db.Get("doi:10.1/x"); err != nil || ok {
		t.Fatalf("Get on empty store = ok=%v err=%v, want miss", ok, err)
	}

	want := citation.Result{
		Exists:     true,
		Confidence: 0.95,
		Source:     citation.SourcePrimary,
		Status:     citation.StatusVerified,
		Work:       &citation.Work{DOI: "10.1/x", Title: "Stored Paper"},
		Discrepancies: []citation.Discrepancy{
			{Field: "year", Provided: "2020", Actual: "2021", Severity: citation.SeverityMinor},
		},
	}
	if err := db.Put("doi:10.1/x", want); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, ok, err := db.Get("doi:10.1/x")
	if err != nil || !ok {
		t.Fatalf("Get = ok=%v err=%v, want hit", ok, err)
	}
	if got.Status != want.Status || got.Confidence != want.Confidence {
		t.Errorf("got %+v, want %+v", got, want)
	}
	if got.Work == nil || got.Work.Title != "Stored Paper" {
		t.Errorf("work = %+v, want round-tripped", got.Work)
	}
	if len(got.Discrepancies) != 1 || got.Discrepancies[0].Severity != citation.SeverityMinor {
		t.Errorf("discrepancies = %+v, want round-tripped", got.Discrepancies)
	}
}

func TestPutReplaces(t *testing.T) {
	db := openTestDB(t)

	if err := db.Put("doi:10.1/x", citation.Result{Status: citation.StatusSkip}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := db.Put("doi:10.1/x", citation.Result{Status: citation.StatusVerified}); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, ok, err := db.Get("doi:10.1/x")
	if err != nil || !ok {
		t.Fatalf("Get = ok=%v err=%v, want hit", ok, err)
	}
	if got.Status != citation.StatusVerified {
		t.Errorf("status = %s, want latest write to win", got.Status)
	}

	n, err := db.Count()
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 1 {
		t.Errorf("count = %d, want 1", n)
	}
}

func TestPrune(t *testing.T) {
	db := openTestDB(t)

	now := time.Now()
	db.now = func() time.Time { return now.Add(-48 * time.Hour) }
	if err := db.Put("doi:10.1/old", citation.Result{}); err != nil {
		t.Fatalf("Put: %v", err)
	}

	db.now = func() time.Time { return now }
	if err := db.Put("doi:10.1/fresh", citation.Result{}); err != nil {
		t.Fatalf("Put: %v", err)
	}

	removed, err := db.Prune(24 * time.Hour)
	if err != nil {
		t.Fatalf("Prune: %v", err)
	}
	if removed != 1 {
		t.Errorf("pruned %d entries, want 1", removed)
	}

	if _, ok, _ := db.Get("doi:10.1/old"); ok {
		t.Error("old entry survived prune")
	}
	if _, ok, _ := db.Get("doi:10.1/fresh"); !ok {
		t.Error("fresh entry pruned")
	}
}

func TestReopenPersists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "results.db")

	db, err := OpenDB(path)
	if err != nil {
		t.Fatalf("OpenDB: %v", err)
	}
	if err := db.Put("doi:10.1/x", citation.Result{Status: citation.StatusRetracted}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	db.Close()

	db2, err := OpenDB(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer db2.Close()

	got, ok, err := db2.Get("doi:10.1/x")
	if err != nil || !ok {
		t.Fatalf("Get after reopen = ok=%v err=%v, want hit", ok, err)
	}
	if got.Status != citation.StatusRetracted {
		t.Errorf("status = %s, want persisted value", got.Status)
	}
}
