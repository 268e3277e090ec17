package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sqldojo-labs/sqldojo/internal/gateway"
)

// seedResult reports one loaded CSV file.
type seedResult struct {
	Table string
	File  string
	Rows  int64
}

// NewSeedCommand creates the seed command.
func NewSeedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load the sample dataset from CSV files",
		Long: `Load CSV files from the seeds directory into the database, one table
per file. Each table is replaced wholesale, so seeding is idempotent.

Run 'sqldojo export' afterwards to capture the seeded state as the
canonical backup used by reset.`,
		Example: `  # Load all seeds into the configured database
  sqldojo seed

  # Seed then capture the canonical backup
  sqldojo seed && sqldojo export`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			gw, cfg := openGateway(cmd)
			defer func() { _ = gw.Close() }()

			results, err := loadSeeds(cmd.Context(), gw, cfg.SeedsDir)
			if err != nil {
				return err
			}
			if len(results) == 0 {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "No seed files found in %s\n", cfg.SeedsDir)
				return nil
			}

			out := &gateway.QueryResult{Columns: []string{"table_name", "file", "rows"}}
			for _, r := range results {
				out.Rows = append(out.Rows, []any{r.Table, r.File, r.Rows})
			}
			return renderResults(cmd.OutOrStdout(), out, "table")
		},
	}
}

// loadSeeds loads every CSV in dir into a table named after the file.
func loadSeeds(ctx context.Context, gw *gateway.Gateway, dir string) ([]seedResult, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read seeds directory: %w", err)
	}

	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.EqualFold(filepath.Ext(e.Name()), ".csv") {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)

	var results []seedResult
	for _, name := range files {
		table := strings.TrimSuffix(name, filepath.Ext(name))
		path := filepath.Join(dir, name)

		stmt := fmt.Sprintf(`CREATE OR REPLACE TABLE %s AS SELECT * FROM read_csv_auto(%s)`,
			quoteIdent(table), quoteLiteral(path))
		if err := gw.Exec(ctx, stmt); err != nil {
			return nil, fmt.Errorf("failed to load seed %s: %w", name, err)
		}

		res, err := gw.Execute(ctx, fmt.Sprintf(`SELECT COUNT(*) FROM %s`, quoteIdent(table)))
		if err != nil {
			return nil, err
		}
		var rows int64
		if !res.IsEmpty() {
			if n, ok := res.Rows[0][0].(int64); ok {
				rows = n
			}
		}
		results = append(results, seedResult{Table: table, File: name, Rows: rows})
	}
	return results, nil
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func quoteLiteral(s string) string {
	return `'` + strings.ReplaceAll(s, `'`, `''`) + `'`
}
