// Package restore rebuilds the sample database from its canonical backup
// export, and produces that export in the first place.
package restore

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/sqldojo-labs/sqldojo/internal/gateway"
)

// Controller destroys and recreates the database file from the canonical
// backup directory. Only this component may delete or recreate the file.
type Controller struct {
	gw        *gateway.Gateway
	dbPath    string
	backupDir string
	logger    *slog.Logger
}

// NewController creates a reset controller for the given gateway.
// dbPath is the database file the gateway points at; backupDir is the
// canonical EXPORT DATABASE directory to import from.
func NewController(gw *gateway.Gateway, dbPath, backupDir string, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{gw: gw, dbPath: dbPath, backupDir: backupDir, logger: logger}
}

// Reset restores the database to its canonical state. Each step tolerates
// failure of the previous one: the close is suppressed, a missing file is
// fine, and only a failed reopen or import is reported. Repeated calls
// converge to the same state.
func (c *Controller) Reset(ctx context.Context) error {
	c.logger.Info("resetting database", "path", c.dbPath, "backup", c.backupDir)

	// Close errors are suppressed; the handle may already be gone.
	c.gw.Invalidate()

	if c.dbPath != "" && c.dbPath != ":memory:" {
		if err := os.Remove(c.dbPath); err != nil && !os.IsNotExist(err) {
			c.logger.Warn("could not remove database file, continuing", "error", err)
		}
	}

	if _, err := c.gw.DB(ctx); err != nil {
		return fmt.Errorf("failed to reopen database after reset: %w", err)
	}

	if err := c.gw.Exec(ctx, fmt.Sprintf("IMPORT DATABASE '%s'", escapeLiteral(c.backupDir))); err != nil {
		return fmt.Errorf("failed to import canonical backup: %w", err)
	}

	c.logger.Info("database restored to canonical state")
	return nil
}

// Export writes the current schema and data to dir using the engine's
// bulk export. The result is a valid canonical backup for Reset.
func (c *Controller) Export(ctx context.Context, dir string) error {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}
	if err := c.gw.Exec(ctx, fmt.Sprintf("EXPORT DATABASE '%s'", escapeLiteral(dir))); err != nil {
		return fmt.Errorf("failed to export database: %w", err)
	}
	return nil
}

func escapeLiteral(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
