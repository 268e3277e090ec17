package docs

import (
	"fmt"
	"strings"

	"github.com/a-h/templ"

	"github.com/sqldojo-labs/sqldojo/internal/ui/components"
)

// erTable describes one box in the entity relationship diagram.
type erTable struct {
	name    string
	x, y    int
	width   int
	columns []string
}

const (
	erRowHeight   = 22
	erTitleHeight = 28
)

var erTables = []erTable{
	{"customers", 40, 40, 200, []string{"customerid (PK)", "customername", "company", "address"}},
	{"orders", 320, 40, 230, []string{"orderid (PK)", "customerid (FK)", "customername", "address", "dateplaced", "datefilled", "invoicenumber"}},
	{"lineitems", 320, 280, 230, []string{"lineitemid (PK)", "orderid (FK)", "productid (FK)", "quantity"}},
	{"products", 40, 280, 200, []string{"productid (PK)", "productname", "colour", "standardcost", "listprice"}},
}

// ERDiagram renders a static entity relationship diagram of the sample
// database as inline SVG inside a collapsible panel.
func ERDiagram() templ.Component {
	return components.HTML(func(b *strings.Builder) {
		b.WriteString(`<section id="er-panel" class="panel">`)
		b.WriteString(`<details class="er-diagram"><summary>Entity Relationship Diagram</summary>`)
		b.WriteString(`<svg viewBox="0 0 600 480" width="600" height="480" xmlns="http://www.w3.org/2000/svg" role="img" aria-label="Entity relationship diagram">`)

		// Relationship edges go under the boxes.
		writeEdge(b, 240, 96, 320, 96)   // customers.customerid -> orders.customerid
		writeEdge(b, 435, 232, 435, 280) // orders.orderid -> lineitems.orderid
		writeEdge(b, 240, 318, 320, 340) // products.productid -> lineitems.productid

		for _, t := range erTables {
			writeERTable(b, t)
		}
		b.WriteString(`</svg>`)
		b.WriteString(`</details></section>`)
	})
}

func writeERTable(b *strings.Builder, t erTable) {
	height := erTitleHeight + len(t.columns)*erRowHeight + 8
	fmt.Fprintf(b, `<rect x="%d" y="%d" width="%d" height="%d" rx="6" fill="#ffffff" stroke="#4a5568"/>`,
		t.x, t.y, t.width, height)
	fmt.Fprintf(b, `<rect x="%d" y="%d" width="%d" height="%d" rx="6" fill="#e2e8f0" stroke="#4a5568"/>`,
		t.x, t.y, t.width, erTitleHeight)
	fmt.Fprintf(b, `<text x="%d" y="%d" text-anchor="middle" font-size="14" font-weight="bold" fill="#1a202c">%s</text>`,
		t.x+t.width/2, t.y+19, components.Esc(t.name))
	for i, col := range t.columns {
		fmt.Fprintf(b, `<text x="%d" y="%d" font-size="12" fill="#2d3748">%s</text>`,
			t.x+12, t.y+erTitleHeight+(i+1)*erRowHeight-6, components.Esc(col))
	}
}

func writeEdge(b *strings.Builder, x1, y1, x2, y2 int) {
	fmt.Fprintf(b, `<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="#718096" stroke-width="2"/>`, x1, y1, x2, y2)
	fmt.Fprintf(b, `<circle cx="%d" cy="%d" r="4" fill="#718096"/>`, x2, y2)
}

// sheetSection is one topic of the SQL cheatsheet.
type sheetSection struct {
	title string
	blurb string
	code  string
}

var sheetSections = []sheetSection{
	{
		title: "Selecting rows",
		blurb: "SELECT names the columns you want; * means all of them. LIMIT caps how many rows come back.",
		code: `SELECT customername, company FROM customers;
SELECT * FROM products LIMIT 5;`,
	},
	{
		title: "Filtering",
		blurb: "WHERE keeps rows matching a condition. LIKE matches patterns, where % stands for any text.",
		code: `SELECT * FROM customers WHERE company = 'AdventureWorks';
SELECT * FROM products WHERE productname LIKE 'Mountain%';`,
	},
	{
		title: "Joining tables",
		blurb: "JOIN combines rows from two tables on a shared key. Chain joins to walk across the schema.",
		code: `SELECT o.orderid, c.customername
FROM orders o
JOIN customers c ON c.customerid = o.customerid;`,
	},
	{
		title: "Aggregating",
		blurb: "COUNT, SUM and friends collapse groups of rows. GROUP BY picks the groups; HAVING filters them.",
		code: `SELECT customerid, COUNT(1) AS ordercount
FROM orders
GROUP BY customerid
HAVING COUNT(1) > 2;`,
	},
	{
		title: "Sorting",
		blurb: "ORDER BY sorts the result. DESC reverses the order; combine with LIMIT for a top-N list.",
		code: `SELECT productname, listprice
FROM products
ORDER BY listprice DESC
LIMIT 10;`,
	},
	{
		title: "Changing data",
		blurb: "INSERT adds rows and DELETE removes them. Changes persist until someone resets the database.",
		code: `INSERT INTO customers VALUES (999, 'Ada Lovelace', 'Analytical Engines', '1 Byron Row');
DELETE FROM customers WHERE customerid = 999;`,
	},
}

// Cheatsheet renders a collapsible SQL reference for learners.
func Cheatsheet() templ.Component {
	return components.HTML(func(b *strings.Builder) {
		b.WriteString(`<section id="cheatsheet-panel" class="panel">`)
		b.WriteString(`<details class="cheatsheet"><summary>SQL Cheatsheet</summary>`)
		for _, s := range sheetSections {
			fmt.Fprintf(b, `<h3>%s</h3>`, components.Esc(s.title))
			fmt.Fprintf(b, `<p>%s</p>`, components.Esc(s.blurb))
			fmt.Fprintf(b, `<pre><code>%s</code></pre>`, components.Esc(s.code))
		}
		b.WriteString(`</details></section>`)
	})
}
