// Package audit persists suite runs to SQLite so fidelity regressions can be
// tracked across projector releases.
package audit

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"roundtrip-verifier/internal/suite"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	manifest TEXT NOT NULL,
	recorded_at INTEGER NOT NULL,
	total INTEGER NOT NULL,
	passed INTEGER NOT NULL,
	failed INTEGER NOT NULL,
	skipped INTEGER NOT NULL,
	errors INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_runs_recorded_at ON runs(recorded_at);

CREATE TABLE IF NOT EXISTS cases (
	run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
	name TEXT NOT NULL,
	status TEXT NOT NULL,
	expected_failures INTEGER NOT NULL,
	matched INTEGER NOT NULL DEFAULT 0,
	excluded INTEGER NOT NULL DEFAULT 0,
	expected_gap INTEGER NOT NULL DEFAULT 0,
	failed INTEGER NOT NULL DEFAULT 0,
	error TEXT,
	PRIMARY KEY (run_id, name)
);

CREATE TABLE IF NOT EXISTS failures (
	run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
	case_name TEXT NOT NULL,
	seq INTEGER NOT NULL,
	path TEXT NOT NULL,
	value TEXT NOT NULL,
	PRIMARY KEY (run_id, case_name, seq)
);
CREATE INDEX IF NOT EXISTS idx_failures_path ON failures(path);
`

// ErrRunNotFound is returned when a run id is not in the store.
var ErrRunNotFound = errors.New("run not found")

// Store is a SQLite-backed audit log of suite runs.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// Run is one recorded suite run.
type Run struct {
	ID         uuid.UUID
	Manifest   string
	RecordedAt time.Time
	Total      int
	Passed     int
	Failed     int
	Skipped    int
	Errors     int
}

// Failure is one recorded mapping failure.
type Failure struct {
	Case  string
	Path  string
	Value string
}

// Open opens the database at dsn, creating the parent directory of a file
// path when needed. Call Migrate before recording.
func Open(dsn string) (*Store, error) {
	if dsn != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dsn), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open audit database: %w", err)
	}

	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()

		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Migrate creates the schema if it does not exist.
func (s *Store) Migrate(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to migrate audit schema: %w", err)
	}

	return nil
}

// RecordRun stores a summary with its cases and mapping failures in one
// transaction and returns the new run id.
func (s *Store) RecordRun(ctx context.Context, summary *suite.Summary) (uuid.UUID, error) {
	if summary == nil {
		return uuid.Nil, errors.New("record run: nil summary")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() { _ = tx.Rollback() }()

	id := uuid.New()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, manifest, recorded_at, total, passed, failed, skipped, errors)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id.String(), summary.Manifest, time.Now().UnixNano(), len(summary.Cases),
		summary.Count(suite.StatusPassed), summary.Count(suite.StatusFailed),
		summary.Count(suite.StatusSkipped), summary.Count(suite.StatusError))
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to insert run: %w", err)
	}

	for _, c := range summary.Cases {
		if err := insertCase(ctx, tx, id, c); err != nil {
			return uuid.Nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return uuid.Nil, fmt.Errorf("failed to commit run: %w", err)
	}

	return id, nil
}

func insertCase(ctx context.Context, tx *sql.Tx, id uuid.UUID, c suite.CaseResult) error {
	var errText sql.NullString
	if c.Err != nil {
		errText = sql.NullString{String: c.Err.Error(), Valid: true}
	}

	var matched, excluded, gap, failed int

	if c.Report != nil {
		counts := c.Report.Counts()
		matched, excluded, gap, failed = counts.Matched, counts.Excluded, counts.ExpectedGap, counts.Failed
	}

	_, err := tx.ExecContext(ctx,
		`INSERT INTO cases (run_id, name, status, expected_failures, matched, excluded, expected_gap, failed, error)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id.String(), c.Name, c.Status.String(), c.ExpectedFailures, matched, excluded, gap, failed, errText)
	if err != nil {
		return fmt.Errorf("failed to insert case %s: %w", c.Name, err)
	}

	if c.Report == nil {
		return nil
	}

	for i, f := range c.Report.Failures() {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO failures (run_id, case_name, seq, path, value) VALUES (?, ?, ?, ?, ?)`,
			id.String(), c.Name, i, f.Path.String(), f.Value)
		if err != nil {
			return fmt.Errorf("failed to insert failure %s of case %s: %w", f.Path, c.Name, err)
		}
	}

	return nil
}

// Runs returns every recorded run, newest first.
func (s *Store) Runs(ctx context.Context) ([]Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, manifest, recorded_at, total, passed, failed, skipped, errors
		 FROM runs ORDER BY recorded_at DESC, rowid DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run

	for rows.Next() {
		var (
			r     Run
			id    string
			nanos int64
		)

		if err := rows.Scan(&id, &r.Manifest, &nanos, &r.Total, &r.Passed, &r.Failed, &r.Skipped, &r.Errors); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}

		r.ID, err = uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("invalid run id %q: %w", id, err)
		}

		r.RecordedAt = time.Unix(0, nanos)
		runs = append(runs, r)
	}

	return runs, rows.Err()
}

// Failures returns the mapping failures of a run in case and document order.
func (s *Store) Failures(ctx context.Context, runID uuid.UUID) ([]Failure, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM runs WHERE id = ?`, runID.String()).Scan(&n); err != nil {
		return nil, fmt.Errorf("failed to look up run: %w", err)
	}

	if n == 0 {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT case_name, path, value FROM failures WHERE run_id = ? ORDER BY case_name, seq`,
		runID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to query failures: %w", err)
	}
	defer rows.Close()

	var out []Failure

	for rows.Next() {
		var f Failure
		if err := rows.Scan(&f.Case, &f.Path, &f.Value); err != nil {
			return nil, fmt.Errorf("failed to scan failure: %w", err)
		}

		out = append(out, f)
	}

	return out, rows.Err()
}
