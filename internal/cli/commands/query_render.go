package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/sqldojo-labs/sqldojo/internal/gateway"
)

func renderResults(w io.Writer, result *gateway.QueryResult, format string) error {
	switch format {
	case "json":
		return renderJSON(w, result)
	case "csv":
		return renderCSV(w, result)
	case "md", "markdown":
		return renderMarkdown(w, result)
	default:
		return renderTable(w, result)
	}
}

func renderTable(w io.Writer, result *gateway.QueryResult) error {
	if result.IsEmpty() {
		_, _ = fmt.Fprintln(w, "(0 rows)")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	headerRow := make(table.Row, len(result.Columns))
	for i, col := range result.Columns {
		headerRow[i] = col
	}
	t.AppendHeader(headerRow)

	for _, r := range result.Rows {
		row := make(table.Row, len(r))
		for i, v := range r {
			row[i] = gateway.FormatValue(v)
		}
		t.AppendRow(row)
	}

	t.Render()
	_, _ = fmt.Fprintf(w, "(%s)\n", result.Caption())
	return nil
}

func renderJSON(w io.Writer, result *gateway.QueryResult) error {
	records := make([]map[string]any, 0, len(result.Rows))
	for _, r := range result.Rows {
		record := make(map[string]any, len(result.Columns))
		for i, col := range result.Columns {
			record[col] = r[i]
		}
		records = append(records, record)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

func renderCSV(w io.Writer, result *gateway.QueryResult) error {
	_, _ = fmt.Fprintln(w, strings.Join(result.Columns, ","))

	for _, r := range result.Rows {
		values := make([]string, len(r))
		for i, v := range r {
			values[i] = escapeCSV(gateway.FormatValue(v))
		}
		_, _ = fmt.Fprintln(w, strings.Join(values, ","))
	}
	return nil
}

func renderMarkdown(w io.Writer, result *gateway.QueryResult) error {
	if result.IsEmpty() {
		_, _ = fmt.Fprintln(w, "(0 rows)")
		return nil
	}

	_, _ = fmt.Fprintf(w, "| %s |\n", strings.Join(result.Columns, " | "))
	seps := make([]string, len(result.Columns))
	for i := range seps {
		seps[i] = "---"
	}
	_, _ = fmt.Fprintf(w, "| %s |\n", strings.Join(seps, " | "))

	for _, r := range result.Rows {
		values := make([]string, len(r))
		for i, v := range r {
			values[i] = gateway.FormatValue(v)
		}
		_, _ = fmt.Fprintf(w, "| %s |\n", strings.Join(values, " | "))
	}
	return nil
}

func escapeCSV(s string) string {
	if strings.ContainsAny(s, ",\"\n") {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	return s
}
