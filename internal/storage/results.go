// Package storage persists verification results in SQLite so repeated
// batch runs can skip lookups across process lifetimes. The store is a
// cache, not a durable format: it can be deleted and recreated at any time.
package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/matsen/citevet/internal/citation"
)

// DB wraps a SQLite database connection.
type DB struct {
	db  *sql.DB
	now func() time.Time
}

// OpenDB opens or creates a SQLite result store at the given path.
func OpenDB(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// SQLite doesn't support concurrent writes
	db.SetMaxOpenConns(1)

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &DB{db: db, now: time.Now}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

// createSchema creates the result table if it doesn't exist.
func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS results (
			key TEXT PRIMARY KEY,
			checked_at INTEGER NOT NULL,
			result_json TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_results_checked_at ON results(checked_at);
	`
	_, err := db.Exec(schema)
	return err
}

// Get returns the stored result for key, if present.
func (d *DB) Get(key string) (citation.Result, bool, error) {
	var resultJSON string
	err := d.db.QueryRow(`SELECT result_json FROM results WHERE key = ?`, key).Scan(&resultJSON)
	if err == sql.ErrNoRows {
		return citation.Result{}, false, nil
	}
	if err != nil {
		return citation.Result{}, false, fmt.Errorf("querying result: %w", err)
	}

	var result citation.Result
	if err := json.Unmarshal([]byte(resultJSON), &result); err != nil {
		return citation.Result{}, false, fmt.Errorf("parsing stored result: %w", err)
	}
	return result, true, nil
}

// Put stores a result under key, replacing any previous entry.
func (d *DB) Put(key string, result citation.Result) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}

	_, err = d.db.Exec(
		`INSERT OR REPLACE INTO results (key, checked_at, result_json) VALUES (?, ?, ?)`,
		key, d.now().Unix(), string(data),
	)
	if err != nil {
		return fmt.Errorf("storing result: %w", err)
	}
	return nil
}

// Prune deletes entries checked longer ago than maxAge and returns the
// number removed.
func (d *DB) Prune(maxAge time.Duration) (int64, error) {
	cutoff := d.now().Add(-maxAge).Unix()
	res, err := d.db.Exec(`DELETE FROM results WHERE checked_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("pruning results: %w", err)
	}
	return res.RowsAffected()
}

// Count returns the number of stored results.
func (d *DB) Count() (int, error) {
	var n int
	if err := d.db.QueryRow(`SELECT COUNT(*) FROM results`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting results: %w", err)
	}
	return n, nil
}
