// Package gateway owns the connection to the embedded DuckDB sample
// database and executes arbitrary SQL against it.
package gateway

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sync"

	"github.com/marcboeker/go-duckdb"
)

// Gateway is the single owner of the database handle. The DuckDB file is
// exclusively locked while open, so at most one live handle may exist; the
// handle is opened lazily and reused until Invalidate or Close discards it.
type Gateway struct {
	mu     sync.Mutex
	db     *sql.DB
	path   string
	logger *slog.Logger
}

// New creates a Gateway for the database file at path. Use ":memory:" for
// an in-memory database. No connection is opened until first use.
func New(path string, logger *slog.Logger) *Gateway {
	if logger == nil {
		logger = slog.Default()
	}
	return &Gateway{path: path, logger: logger}
}

// NewWithDB wraps an already-open handle. Intended for tests.
func NewWithDB(db *sql.DB, logger *slog.Logger) *Gateway {
	g := New("", logger)
	g.db = db
	return g
}

// Path returns the database file path the gateway was created with.
func (g *Gateway) Path() string {
	return g.path
}

// DB returns the live database handle, opening it on first use.
func (g *Gateway) DB(ctx context.Context) (*sql.DB, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.dbLocked(ctx)
}

func (g *Gateway) dbLocked(ctx context.Context) (*sql.DB, error) {
	if g.db != nil {
		return g.db, nil
	}

	g.logger.Debug("opening database", "path", g.path)

	db, err := sql.Open("duckdb", g.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open duckdb connection: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping duckdb: %w", err)
	}

	g.db = db
	return g.db, nil
}

// Invalidate closes and discards the current handle, suppressing any close
// error. The next access reopens a fresh handle.
func (g *Gateway) Invalidate() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.db == nil {
		return
	}
	if err := g.db.Close(); err != nil {
		g.logger.Debug("suppressed close error during invalidate", "error", err)
	}
	g.db = nil
}

// Close closes the database handle.
func (g *Gateway) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.db == nil {
		return nil
	}
	err := g.db.Close()
	g.db = nil
	return err
}

// Execute runs arbitrary SQL text and collects the full result set.
// The text is submitted unvalidated; statements that produce no rows
// (INSERT, DELETE, DDL) yield an empty result. On engine failure the
// returned result is non-nil and empty so rendering can proceed
// uniformly, and the error carries the engine's message for display.
func (g *Gateway) Execute(ctx context.Context, sqlText string) (*QueryResult, error) {
	g.mu.Lock()
	db, err := g.dbLocked(ctx)
	g.mu.Unlock()
	if err != nil {
		return Empty(), err
	}

	rows, err := db.QueryContext(ctx, sqlText)
	if err != nil {
		return Empty(), fmt.Errorf("query failed: %w", err)
	}
	defer func() { _ = rows.Close() }()

	cols, err := rows.Columns()
	if err != nil {
		return Empty(), fmt.Errorf("failed to read result columns: %w", err)
	}

	result := &QueryResult{Columns: cols}
	for rows.Next() {
		values := make([]any, len(cols))
		valuePtrs := make([]any, len(cols))
		for i := range values {
			valuePtrs[i] = &values[i]
		}
		if err := rows.Scan(valuePtrs...); err != nil {
			return Empty(), fmt.Errorf("failed to scan row: %w", err)
		}
		// Normalize driver types so downstream code sees plain Go values:
		// DECIMAL cells arrive as duckdb.Decimal structs.
		for i, v := range values {
			switch c := v.(type) {
			case []byte:
				values[i] = string(c)
			case duckdb.Decimal:
				values[i] = c.Float64()
			}
		}
		result.Rows = append(result.Rows, values)
	}
	if err := rows.Err(); err != nil {
		return Empty(), fmt.Errorf("error iterating rows: %w", err)
	}

	return result, nil
}

// Exec runs a statement discarding any result, e.g. IMPORT DATABASE.
func (g *Gateway) Exec(ctx context.Context, sqlText string) error {
	g.mu.Lock()
	db, err := g.dbLocked(ctx)
	g.mu.Unlock()
	if err != nil {
		return err
	}
	if _, err := db.ExecContext(ctx, sqlText); err != nil {
		return fmt.Errorf("failed to execute SQL: %w", err)
	}
	return nil
}
