// Package schema inspects the sample database: table names, per-table
// row counts, and column listings. Snapshots are recomputed on every
// call and never cached.
package schema

import (
	"context"
	"fmt"
	"strings"

	"github.com/sqldojo-labs/sqldojo/internal/gateway"
)

// TableCount pairs a table name with its row count.
type TableCount struct {
	Name  string
	Count int64
}

// Column describes one column of a table.
type Column struct {
	Position int
	Name     string
	DataType string
}

// Inspector issues fixed introspection queries through the gateway.
type Inspector struct {
	gw *gateway.Gateway
}

// NewInspector creates an Inspector backed by the given gateway.
func NewInspector(gw *gateway.Gateway) *Inspector {
	return &Inspector{gw: gw}
}

// ListTables returns all table names, alphabetically ordered. An empty
// list is the caller's signal that the database needs restoring.
func (i *Inspector) ListTables(ctx context.Context) ([]string, error) {
	result, err := i.gw.Execute(ctx,
		"SELECT table_name FROM information_schema.tables ORDER BY table_name")
	if err != nil {
		return nil, err
	}

	tables := make([]string, 0, result.RowCount())
	for _, row := range result.Rows {
		name := gateway.FormatValue(row[0])
		if strings.TrimSpace(name) == "" {
			continue
		}
		tables = append(tables, name)
	}
	return tables, nil
}

// RowCounts returns one count per table, computed in a single batched
// query built as a UNION ALL of per-table counts. Table names come from
// ListTables, i.e. trusted introspection output, and are still quoted as
// identifiers when interpolated.
func (i *Inspector) RowCounts(ctx context.Context, tables []string) ([]TableCount, error) {
	if len(tables) == 0 {
		return nil, nil
	}

	var b strings.Builder
	for n, table := range tables {
		if n > 0 {
			b.WriteString("\nUNION ALL\n")
		}
		fmt.Fprintf(&b, "SELECT '%s' AS table_name, COUNT(*) AS row_count FROM %s",
			escapeLiteral(table), quoteIdent(table))
	}
	b.WriteString("\nORDER BY table_name")

	result, err := i.gw.Execute(ctx, b.String())
	if err != nil {
		return nil, err
	}

	counts := make([]TableCount, 0, result.RowCount())
	for _, row := range result.Rows {
		counts = append(counts, TableCount{
			Name:  gateway.FormatValue(row[0]),
			Count: toInt64(row[1]),
		})
	}
	return counts, nil
}

// Columns returns the column listing for one table, ordered by ordinal
// position. Called lazily, only when a table's detail panel is opened.
func (i *Inspector) Columns(ctx context.Context, table string) ([]Column, error) {
	query := fmt.Sprintf(`SELECT ordinal_position, column_name, data_type
FROM information_schema.columns
WHERE table_name = '%s'
ORDER BY ordinal_position`, escapeLiteral(table))

	result, err := i.gw.Execute(ctx, query)
	if err != nil {
		return nil, err
	}

	cols := make([]Column, 0, result.RowCount())
	for _, row := range result.Rows {
		cols = append(cols, Column{
			Position: int(toInt64(row[0])),
			Name:     gateway.FormatValue(row[1]),
			DataType: gateway.FormatValue(row[2]),
		})
	}
	return cols, nil
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func escapeLiteral(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func toInt64(v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int32:
		return int64(n)
	case int:
		return int64(n)
	case uint64:
		return int64(n)
	case float64:
		return int64(n)
	default:
		return 0
	}
}
