package gateway

import "fmt"

// QueryResult is the tabular output of one SQL execution: ordered column
// names and ordered rows of raw values. It has no identity beyond the
// request that produced it.
type QueryResult struct {
	Columns []string
	Rows    [][]any
}

// Empty returns a result with no columns and no rows.
func Empty() *QueryResult {
	return &QueryResult{}
}

// RowCount returns the number of rows in the result.
func (r *QueryResult) RowCount() int {
	return len(r.Rows)
}

// IsEmpty reports whether the result holds no rows.
func (r *QueryResult) IsEmpty() bool {
	return len(r.Rows) == 0
}

// Caption returns the row-count caption, singular exactly at one row:
// "0 rows", "1 row", "42 rows".
func (r *QueryResult) Caption() string {
	n := len(r.Rows)
	if n == 1 {
		return "1 row"
	}
	return fmt.Sprintf("%d rows", n)
}

// ColumnIndex returns the position of the named column, or -1.
func (r *QueryResult) ColumnIndex(name string) int {
	for i, c := range r.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// FormatValue renders a cell value for display. NULL is spelled out;
// everything else uses its default formatting.
func FormatValue(v any) string {
	if v == nil {
		return "NULL"
	}
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return fmt.Sprintf("%v", v)
}
