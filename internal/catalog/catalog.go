// Package catalog holds the fixed set of named example queries offered
// as starting points in the editor. Entries are data, defined at startup,
// never validated ahead of execution.
package catalog

// Entry maps a display name to literal SQL text.
type Entry struct {
	Name string
	SQL  string
}

// entries are ordered by increasing complexity, from a single-table
// select up to a HAVING aggregation across four joined tables.
var entries = []Entry{
	{
		Name: "Select Customers",
		SQL:  "SELECT * FROM customers;",
	},
	{
		Name: "Select Orders",
		SQL:  "SELECT * FROM orders;",
	},
	{
		Name: "Select Products",
		SQL:  "SELECT * FROM products;",
	},
	{
		Name: "Count Orders",
		SQL:  "SELECT COUNT(1) FROM orders;",
	},
	{
		Name: "Filter Customers",
		SQL:  "SELECT * FROM customers WHERE company = 'AdventureWorks';",
	},
	{
		Name: "Search Products",
		SQL:  "SELECT * FROM products WHERE productname LIKE 'Mountain%';",
	},
	{
		Name: "Insert Customer",
		SQL: `INSERT INTO customers (customerid, customername, company, address)
VALUES (999, 'Ada Lovelace', 'Analytical Engines Ltd', '12 Byron Terrace');`,
	},
	{
		Name: "Delete Customer",
		SQL:  "DELETE FROM customers WHERE customerid = 501;",
	},
	{
		Name: "Select Order Details",
		SQL: `SELECT customername, address, dateplaced, datefilled,
       invoicenumber, colour, standardcost, listprice,
       listprice - standardcost AS profit
FROM lineitems
LEFT JOIN orders ON (lineitems.orderid = orders.orderid)
LEFT JOIN products ON (lineitems.productid = products.productid)
WHERE lineitems.orderid = 9;`,
	},
	{
		Name: "Select Order Counts",
		SQL: `SELECT orders.customername, orders.address,
       COUNT(lineitems.lineitemid) AS total_line_items,
       SUM(lineitems.quantity) AS total_item_count
FROM orders
LEFT JOIN lineitems ON orders.orderid = lineitems.orderid
GROUP BY orders.orderid, orders.customername, orders.address;`,
	},
	{
		Name: "List Profitable Customers",
		SQL: `SELECT customername, SUM(profit) AS profit FROM (
    SELECT customername, listprice - standardcost AS profit
    FROM lineitems
    LEFT JOIN orders ON (lineitems.orderid = orders.orderid)
    LEFT JOIN products ON (lineitems.productid = products.productid)
) x
GROUP BY customername
ORDER BY SUM(profit) DESC
LIMIT 10;`,
	},
	{
		Name: "Big Spenders",
		SQL: `SELECT customers.company, SUM(lineitems.quantity * products.listprice) AS total_spend
FROM customers
JOIN orders ON orders.customerid = customers.customerid
JOIN lineitems ON lineitems.orderid = orders.orderid
JOIN products ON products.productid = lineitems.productid
GROUP BY customers.company
HAVING SUM(lineitems.quantity * products.listprice) > 1000
ORDER BY total_spend DESC;`,
	},
}

// Entries returns the catalog in display order.
func Entries() []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out
}

// Names returns the display names in catalog order.
func Names() []string {
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	return names
}

// Lookup finds an entry by display name.
func Lookup(name string) (Entry, bool) {
	for _, e := range entries {
		if e.Name == name {
			return e, true
		}
	}
	return Entry{}, false
}

// Default returns the entry loaded into the editor on first render.
func Default() Entry {
	return entries[0]
}
