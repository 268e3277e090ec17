package workbench

import (
	"fmt"
	"strings"

	"github.com/a-h/templ"

	"github.com/sqldojo-labs/sqldojo/internal/catalog"
	"github.com/sqldojo-labs/sqldojo/internal/chart"
	"github.com/sqldojo-labs/sqldojo/internal/gateway"
	"github.com/sqldojo-labs/sqldojo/internal/ui/components"
)

// maxDisplayRows caps the rendered results table; the caption still
// reports the full count.
const maxDisplayRows = 500

// EditorPanel renders the catalog selector, SQL editor and run button.
// The textarea is bound to the sql signal; selecting a catalog entry
// patches that signal server-side.
func EditorPanel(initialSQL string) templ.Component {
	return components.HTML(func(b *strings.Builder) {
		fmt.Fprintf(b, `<section id="editor-panel" class="panel" data-signals="{chartkind: 'line', chartx: '', charty: ''}">`)
		b.WriteString(`<h2>SQL Editor</h2>`)

		b.WriteString(`<label>Example Queries `)
		b.WriteString(`<select data-bind-catalog data-on-change="@post('/api/workbench/catalog')">`)
		for _, name := range catalog.Names() {
			fmt.Fprintf(b, `<option value="%s">%s</option>`, components.Esc(name), components.Esc(name))
		}
		b.WriteString(`</select></label>`)

		fmt.Fprintf(b, `<textarea class="sql-editor" data-bind-sql placeholder="Write your SQL query here...">%s</textarea>`,
			components.Esc(initialSQL))
		b.WriteString(`<button data-on-click="@post('/api/workbench/execute')">Run Query</button>`)
		b.WriteString(`</section>`)
	})
}

// Results renders the results fragment: caption, error (if any) and the
// result table.
func Results(view ResultView) templ.Component {
	return components.HTML(func(b *strings.Builder) {
		b.WriteString(`<section id="query-results" class="panel"><h2>Query Results</h2>`)

		if view.Err != "" {
			fmt.Fprintf(b, `<p class="error">Error: %s</p>`, components.Esc(view.Err))
		}

		res := view.Result
		if res == nil {
			res = gateway.Empty()
		}
		fmt.Fprintf(b, `<p class="caption"><strong>%s</strong> returned.</p>`, components.Esc(res.Caption()))

		if !res.IsEmpty() {
			b.WriteString(`<table class="result-table"><thead><tr>`)
			for _, col := range res.Columns {
				fmt.Fprintf(b, `<th>%s</th>`, components.Esc(col))
			}
			b.WriteString(`</tr></thead><tbody>`)
			for i, row := range res.Rows {
				if i == maxDisplayRows {
					break
				}
				b.WriteString(`<tr>`)
				for _, cell := range row {
					fmt.Fprintf(b, `<td>%s</td>`, components.Esc(gateway.FormatValue(cell)))
				}
				b.WriteString(`</tr>`)
			}
			b.WriteString(`</tbody></table>`)
			if res.RowCount() > maxDisplayRows {
				fmt.Fprintf(b, `<p class="caption">Showing the first %d rows.</p>`, maxDisplayRows)
			}
		}
		b.WriteString(`</section>`)
	})
}

// ChartPanel renders the opt-in visualization controls and output.
func ChartPanel(view ChartView) templ.Component {
	return components.HTML(func(b *strings.Builder) {
		b.WriteString(`<section id="chart-panel" class="panel"><details><summary>Visualize</summary>`)

		b.WriteString(`<label>Chart <select data-bind-chartkind>`)
		for _, k := range chart.Kinds() {
			selected := ""
			if string(k) == view.Kind {
				selected = ` selected`
			}
			fmt.Fprintf(b, `<option value="%s"%s>%s</option>`, k, selected, k.Label())
		}
		b.WriteString(`</select></label> `)

		writeColumnSelect(b, "chartx", "X column", view.Columns, view.X)
		writeColumnSelect(b, "charty", "Y column", view.Columns, view.Y)

		b.WriteString(`<button data-on-click="@post('/api/workbench/chart')">Draw</button>`)

		b.WriteString(`<div id="chart-output" class="chart-output">`)
		writeChartOutput(b, view)
		b.WriteString(`</div></details></section>`)
	})
}

// ChartOutput renders only the chart output area, patched after Draw.
func ChartOutput(view ChartView) templ.Component {
	return components.HTML(func(b *strings.Builder) {
		b.WriteString(`<div id="chart-output" class="chart-output">`)
		writeChartOutput(b, view)
		b.WriteString(`</div>`)
	})
}

func writeChartOutput(b *strings.Builder, view ChartView) {
	switch {
	case view.SVG != "":
		b.WriteString(view.SVG)
	case view.Message != "" && view.IsError:
		fmt.Fprintf(b, `<p class="error">%s</p>`, components.Esc(view.Message))
	case view.Message != "":
		fmt.Fprintf(b, `<p class="caption">%s</p>`, components.Esc(view.Message))
	}
}

func writeColumnSelect(b *strings.Builder, signal, label string, columns []string, selected string) {
	fmt.Fprintf(b, `<label>%s <select data-bind-%s>`, components.Esc(label), signal)
	b.WriteString(`<option value=""></option>`)
	for _, col := range columns {
		sel := ""
		if col == selected {
			sel = ` selected`
		}
		fmt.Fprintf(b, `<option value="%s"%s>%s</option>`, components.Esc(col), sel, components.Esc(col))
	}
	b.WriteString(`</select></label> `)
}

// History renders the recent executions list. Clicking an entry reloads
// its SQL into the editor.
func History(view HistoryView) templ.Component {
	return components.HTML(func(b *strings.Builder) {
		b.WriteString(`<section id="history-panel" class="panel"><details><summary>Recent Queries</summary>`)
		if len(view.Entries) == 0 {
			b.WriteString(`<p class="caption">Nothing executed yet.</p>`)
		}
		for _, e := range view.Entries {
			status := e.RowCountCaption()
			if e.Error != "" {
				status = "failed"
			}
			fmt.Fprintf(b, `<button class="history-entry" data-on-click="@get('/api/workbench/history/%s')">%s <span class="caption">(%s, %dms)</span></button>`,
				e.ID, components.Esc(truncateSQL(e.SQLText)), components.Esc(status), e.DurationMS)
		}
		b.WriteString(`</details></section>`)
	})
}

func truncateSQL(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	const maxLen = 80
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-1] + "…"
}
