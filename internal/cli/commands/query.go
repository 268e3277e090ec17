package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sqldojo-labs/sqldojo/internal/gateway"
	"github.com/sqldojo-labs/sqldojo/internal/schema"
)

// QueryOptions holds options for the query command.
type QueryOptions struct {
	Format string
	Input  string
}

// NewQueryCommand creates the query command.
func NewQueryCommand() *cobra.Command {
	opts := &QueryOptions{}

	cmd := &cobra.Command{
		Use:   "query [SQL]",
		Short: "Run SQL against the sample database",
		Long: `Run SQL directly against the sample database from the command line.

Useful for preparing workshop data or scripting checks against the current
database state. Supports multiple output formats for piping into other tools.

When invoked without arguments on a terminal, enters interactive REPL mode.`,
		Example: `  # Execute SQL directly
  sqldojo query "SELECT * FROM customers"

  # Output as JSON
  sqldojo query "SELECT * FROM orders" --format json

  # Read SQL from a file
  sqldojo query --input report.sql

  # Interactive mode
  sqldojo query`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "table", "Output format: table, json, csv, md")
	cmd.Flags().StringVarP(&opts.Input, "input", "i", "", "Read SQL from file")

	cmd.AddCommand(newQueryTablesCommand(opts))
	cmd.AddCommand(newQuerySchemaCommand(opts))

	return cmd
}

func runQuery(cmd *cobra.Command, args []string, opts *QueryOptions) error {
	gw, _ := openGateway(cmd)
	defer func() { _ = gw.Close() }()

	var sqlQuery string
	switch {
	case len(args) > 0:
		sqlQuery = strings.Join(args, " ")
	case opts.Input != "":
		content, err := os.ReadFile(opts.Input)
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}
		sqlQuery = string(content)
	case !isTerminal(os.Stdin):
		content, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		sqlQuery = string(content)
	default:
		return runREPL(cmd, gw, opts)
	}

	return executeAndRender(cmd, gw, sqlQuery, opts.Format)
}

func executeAndRender(cmd *cobra.Command, gw *gateway.Gateway, sqlQuery, format string) error {
	result, err := gw.Execute(cmd.Context(), sqlQuery)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}
	return renderResults(cmd.OutOrStdout(), result, format)
}

// newQueryTablesCommand creates the tables subcommand.
func newQueryTablesCommand(opts *QueryOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tables",
		Short: "List tables with their row counts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			gw, _ := openGateway(cmd)
			defer func() { _ = gw.Close() }()
			return listTables(cmd, schema.NewInspector(gw), opts.Format)
		},
	}
}

// newQuerySchemaCommand creates the schema subcommand.
func newQuerySchemaCommand(opts *QueryOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "schema <table>",
		Short: "Show columns for a table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gw, _ := openGateway(cmd)
			defer func() { _ = gw.Close() }()
			return showSchema(cmd, schema.NewInspector(gw), args[0], opts.Format)
		},
	}
}

func listTables(cmd *cobra.Command, inspector *schema.Inspector, format string) error {
	ctx := cmd.Context()

	tables, err := inspector.ListTables(ctx)
	if err != nil {
		return err
	}
	counts, err := inspector.RowCounts(ctx, tables)
	if err != nil {
		return err
	}

	result := &gateway.QueryResult{Columns: []string{"table_name", "rows"}}
	for _, c := range counts {
		result.Rows = append(result.Rows, []any{c.Name, c.Count})
	}
	return renderResults(cmd.OutOrStdout(), result, format)
}

func showSchema(cmd *cobra.Command, inspector *schema.Inspector, table, format string) error {
	cols, err := inspector.Columns(cmd.Context(), table)
	if err != nil {
		return err
	}
	if len(cols) == 0 {
		return fmt.Errorf("table not found: %s", table)
	}

	result := &gateway.QueryResult{Columns: []string{"position", "column_name", "data_type"}}
	for _, c := range cols {
		result.Rows = append(result.Rows, []any{c.Position, c.Name, c.DataType})
	}
	return renderResults(cmd.OutOrStdout(), result, format)
}
