// Package history records executed queries in a local SQLite store so
// learners can revisit and reload earlier attempts.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // sqlite driver
)

// Execution is one recorded query run.
type Execution struct {
	ID         string
	SQLText    string
	RowCount   int
	DurationMS int64
	Error      string
	ExecutedAt time.Time
}

// RowCountCaption returns the recorded row count as a caption,
// singular exactly at one row.
func (e *Execution) RowCountCaption() string {
	if e.RowCount == 1 {
		return "1 row"
	}
	return fmt.Sprintf("%d rows", e.RowCount)
}

// Store persists executions in SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates an unopened store.
func NewStore() *Store {
	return &Store{}
}

// Open opens the SQLite database at path and brings its schema up to
// date. Use ":memory:" for tests.
func (s *Store) Open(path string) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("failed to open history database: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping history database: %w", err)
	}
	// Single writer; avoids lock contention from concurrent SSE handlers.
	db.SetMaxOpenConns(1)

	s.db = db
	s.path = path

	if err := s.Migrate(); err != nil {
		_ = db.Close()
		s.db = nil
		return err
	}
	return nil
}

// Close closes the store.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Record inserts one execution and returns it with ID and timestamp set.
func (s *Store) Record(ctx context.Context, sqlText string, rowCount int, duration time.Duration, execErr error) (*Execution, error) {
	if s.db == nil {
		return nil, fmt.Errorf("history database not opened")
	}

	e := &Execution{
		ID:         uuid.New().String(),
		SQLText:    sqlText,
		RowCount:   rowCount,
		DurationMS: duration.Milliseconds(),
		ExecutedAt: time.Now().UTC(),
	}
	if execErr != nil {
		e.Error = execErr.Error()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO executions (id, sql_text, row_count, duration_ms, error, executed_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, e.SQLText, e.RowCount, e.DurationMS, e.Error, e.ExecutedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to record execution: %w", err)
	}
	return e, nil
}

// Recent returns the most recent executions, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]*Execution, error) {
	if s.db == nil {
		return nil, fmt.Errorf("history database not opened")
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, sql_text, row_count, duration_ms, error, executed_at
		 FROM executions ORDER BY executed_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list executions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []*Execution
	for rows.Next() {
		e := &Execution{}
		if err := rows.Scan(&e.ID, &e.SQLText, &e.RowCount, &e.DurationMS, &e.Error, &e.ExecutedAt); err != nil {
			return nil, fmt.Errorf("failed to scan execution: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Get returns one execution by ID.
func (s *Store) Get(ctx context.Context, id string) (*Execution, error) {
	if s.db == nil {
		return nil, fmt.Errorf("history database not opened")
	}

	e := &Execution{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, sql_text, row_count, duration_ms, error, executed_at
		 FROM executions WHERE id = ?`, id).
		Scan(&e.ID, &e.SQLText, &e.RowCount, &e.DurationMS, &e.Error, &e.ExecutedAt)
	if err != nil {
		return nil, fmt.Errorf("execution %s not found: %w", id, err)
	}
	return e, nil
}
