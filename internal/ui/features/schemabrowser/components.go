package schemabrowser

import (
	"fmt"
	"strings"

	"github.com/a-h/templ"

	"github.com/sqldojo-labs/sqldojo/internal/schema"
	"github.com/sqldojo-labs/sqldojo/internal/ui/components"
)

// PanelData carries the schema snapshot rendered by Panel.
type PanelData struct {
	Tables   []string
	Counts   []schema.TableCount
	Restored bool
}

// Panel renders the schema browser: table row counts plus an expandable
// column listing per table. Column details load lazily on first expand.
func Panel(data PanelData) templ.Component {
	return components.HTML(func(b *strings.Builder) {
		b.WriteString(`<section id="schema-panel" class="panel">`)
		b.WriteString(`<h2>Current Database</h2>`)
		if data.Restored {
			b.WriteString(`<p class="notice">The database was empty and has been restored from the canonical backup.</p>`)
		}
		b.WriteString(`<p class="caption">Row counts refresh after every query, so you can watch inserts and deletes take effect.</p>`)

		writeCounts(b, data.Counts)

		b.WriteString(`<h3>Tables</h3>`)
		for _, name := range data.Tables {
			esc := components.Esc(name)
			fmt.Fprintf(b, `<details class="schema-table" data-on-toggle="evt.target.open &amp;&amp; @get('/api/schema/tables/%s')">`, esc)
			fmt.Fprintf(b, `<summary>%s</summary>`, esc)
			fmt.Fprintf(b, `<div id="schema-cols-%s"><p class="caption">Loading columns…</p></div>`, esc)
			b.WriteString(`</details>`)
		}
		b.WriteString(`</section>`)
	})
}

func writeCounts(b *strings.Builder, counts []schema.TableCount) {
	b.WriteString(`<table id="schema-counts" class="result-table schema-grid">`)
	b.WriteString(`<thead><tr><th>Table</th><th>Rows</th></tr></thead><tbody>`)
	for _, c := range counts {
		fmt.Fprintf(b, `<tr><td>%s</td><td>%d</td></tr>`, components.Esc(c.Name), c.Count)
	}
	b.WriteString(`</tbody></table>`)
}

// ColumnsTable renders the column listing for one table, targeting the
// placeholder div inside its details element.
func ColumnsTable(table string, cols []schema.Column) templ.Component {
	return components.HTML(func(b *strings.Builder) {
		fmt.Fprintf(b, `<div id="schema-cols-%s">`, components.Esc(table))
		b.WriteString(`<table class="result-table"><thead><tr><th>#</th><th>Column</th><th>Type</th></tr></thead><tbody>`)
		for _, c := range cols {
			fmt.Fprintf(b, `<tr><td>%d</td><td>%s</td><td>%s</td></tr>`,
				c.Position, components.Esc(c.Name), components.Esc(c.DataType))
		}
		b.WriteString(`</tbody></table></div>`)
	})
}
