package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/sqldojo-labs/sqldojo/internal/gateway"
	"github.com/sqldojo-labs/sqldojo/internal/restore"
	"github.com/sqldojo-labs/sqldojo/internal/schema"
)

// NewReplCommand creates the repl command.
func NewReplCommand() *cobra.Command {
	opts := &QueryOptions{}

	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Interactive SQL shell on the sample database",
		Long: `Start an interactive SQL shell against the sample database.

Statements end with a semicolon and may span multiple lines. Dot-commands
inspect and manage the database without leaving the shell.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			gw, _ := openGateway(cmd)
			defer func() { _ = gw.Close() }()
			return runREPL(cmd, gw, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "table", "Output format: table, json, csv, md")

	return cmd
}

func runREPL(cmd *cobra.Command, gw *gateway.Gateway, opts *QueryOptions) error {
	ctx := cmd.Context()
	cfg := GetConfig(cmd)
	inspector := schema.NewInspector(gw)
	restorer := restore.NewController(gw, cfg.Database, cfg.BackupDir, GetLogger(cmd))

	historyFile := filepath.Join(os.TempDir(), "sqldojo_repl_history")

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "sqldojo> ",
		HistoryFile:     historyFile,
		AutoComplete:    newTableCompleter(cmd, inspector),
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = rl.Close() }()

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "SQL Dojo shell (database: %s)\n", cfg.Database)
	_, _ = fmt.Fprintln(out, "Type .help for commands, .quit to exit")
	_, _ = fmt.Fprintln(out)

	var buffer strings.Builder
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			buffer.Reset()
			rl.SetPrompt("sqldojo> ")
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, ".") {
			if quit := handleDotCommand(cmd, gw, inspector, restorer, line, opts.Format); quit {
				break
			}
			continue
		}

		// Accumulate multi-line SQL until semicolon.
		buffer.WriteString(line)
		if !strings.HasSuffix(line, ";") {
			buffer.WriteString(" ")
			rl.SetPrompt("    ...> ")
			continue
		}
		rl.SetPrompt("sqldojo> ")

		query := strings.TrimSuffix(buffer.String(), ";")
		buffer.Reset()

		result, err := gw.Execute(ctx, query)
		if err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
			continue
		}
		if err := renderResults(out, result, opts.Format); err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		}
		_, _ = fmt.Fprintln(out)
	}

	return nil
}

// handleDotCommand runs a REPL dot-command and reports whether the
// shell should exit.
func handleDotCommand(cmd *cobra.Command, gw *gateway.Gateway, inspector *schema.Inspector, restorer *restore.Controller, line, format string) bool {
	out := cmd.OutOrStdout()
	parts := strings.Fields(line)

	switch strings.ToLower(parts[0]) {
	case ".quit", ".exit":
		return true

	case ".help":
		printREPLHelp(out)

	case ".tables":
		if err := listTables(cmd, inspector, format); err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		}

	case ".schema":
		if len(parts) < 2 {
			_, _ = fmt.Fprintln(out, "Usage: .schema <table>")
			return false
		}
		if err := showSchema(cmd, inspector, parts[1], format); err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		}

	case ".reset":
		if err := restorer.Reset(cmd.Context()); err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
			return false
		}
		_, _ = fmt.Fprintln(out, "Database restored from canonical backup.")

	default:
		_, _ = fmt.Fprintf(out, "Unknown command: %s (try .help)\n", parts[0])
	}
	return false
}

func printREPLHelp(w io.Writer) {
	_, _ = fmt.Fprintln(w, "Commands:")
	_, _ = fmt.Fprintln(w, "  .tables          List tables with row counts")
	_, _ = fmt.Fprintln(w, "  .schema <table>  Show columns for a table")
	_, _ = fmt.Fprintln(w, "  .reset           Restore the database from the canonical backup")
	_, _ = fmt.Fprintln(w, "  .help            Show this help")
	_, _ = fmt.Fprintln(w, "  .quit            Exit the shell")
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, "End SQL statements with a semicolon; statements may span lines.")
}

// newTableCompleter completes table names and common keywords.
func newTableCompleter(cmd *cobra.Command, inspector *schema.Inspector) readline.AutoCompleter {
	items := []readline.PrefixCompleterInterface{
		readline.PcItem(".tables"),
		readline.PcItem(".schema"),
		readline.PcItem(".reset"),
		readline.PcItem(".help"),
		readline.PcItem(".quit"),
		readline.PcItem("SELECT"),
		readline.PcItem("INSERT"),
		readline.PcItem("DELETE"),
		readline.PcItem("FROM"),
	}

	if tables, err := inspector.ListTables(cmd.Context()); err == nil {
		for _, t := range tables {
			items = append(items, readline.PcItem(t))
		}
	}
	return readline.NewPrefixCompleter(items...)
}
