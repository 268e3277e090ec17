// Package chart renders a query result as an SVG chart. Chart type and
// axis columns are chosen by the user; incompatible choices surface as a
// MismatchError asking for different columns instead of failing the page.
package chart

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/sqldojo-labs/sqldojo/internal/gateway"
)

// Kind identifies a chart type.
type Kind string

// Supported chart kinds.
const (
	Line    Kind = "line"
	Bar     Kind = "bar"
	Scatter Kind = "scatter"
	Area    Kind = "area"
)

// Kinds returns all chart kinds in display order.
func Kinds() []Kind {
	return []Kind{Line, Bar, Scatter, Area}
}

// Label returns the user-facing name of the kind.
func (k Kind) Label() string {
	switch k {
	case Line:
		return "Line"
	case Bar:
		return "Bar"
	case Scatter:
		return "Scatter"
	case Area:
		return "Area"
	default:
		return string(k)
	}
}

// ParseKind converts a form value to a Kind.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case Line, Bar, Scatter, Area:
		return Kind(s), nil
	default:
		return "", fmt.Errorf("unknown chart type %q", s)
	}
}

// ErrNoRows signals that the result was empty and visualization was
// skipped. Callers show a neutral message rather than an error.
var ErrNoRows = errors.New("no rows to visualize")

// MismatchError reports that the chosen columns cannot drive the chosen
// chart. It is always user-facing.
type MismatchError struct {
	Reason string
}

func (e *MismatchError) Error() string {
	return e.Reason + "; please choose different columns"
}

// Request captures the user's chart selections.
type Request struct {
	Kind    Kind
	XColumn string
	YColumn string
}

// Render builds an SVG chart from the result. Line, Bar and Area index
// the result by the X column (duplicate X values resolve last-write-wins)
// and plot the Y column; Scatter plots X/Y pairs and requires both axes
// to be numeric.
func Render(res *gateway.QueryResult, req Request) (string, error) {
	if res == nil || res.IsEmpty() {
		return "", ErrNoRows
	}

	xi := res.ColumnIndex(req.XColumn)
	yi := res.ColumnIndex(req.YColumn)
	if xi < 0 || yi < 0 {
		return "", &MismatchError{Reason: "select both an X and a Y column from the result"}
	}

	if req.Kind == Scatter {
		xs, ys, err := numericPairs(res, xi, yi)
		if err != nil {
			return "", err
		}
		return renderScatter(xs, ys, req.XColumn, req.YColumn), nil
	}

	labels, ys, err := indexedSeries(res, xi, yi)
	if err != nil {
		return "", err
	}

	switch req.Kind {
	case Bar:
		return renderBar(labels, ys, req.XColumn, req.YColumn), nil
	case Area:
		return renderArea(labels, ys, req.XColumn, req.YColumn), nil
	default:
		return renderLine(labels, ys, req.XColumn, req.YColumn), nil
	}
}

// indexedSeries extracts an X-indexed series: X values become ordered
// labels (last occurrence wins for duplicates, first-seen order kept)
// and Y values must be numeric.
func indexedSeries(res *gateway.QueryResult, xi, yi int) ([]string, []float64, error) {
	order := make([]string, 0, res.RowCount())
	values := make(map[string]float64, res.RowCount())

	for _, row := range res.Rows {
		label := gateway.FormatValue(row[xi])
		y, ok := toFloat(row[yi])
		if !ok {
			return nil, nil, &MismatchError{
				Reason: fmt.Sprintf("column %q is not numeric", res.Columns[yi]),
			}
		}
		if _, seen := values[label]; !seen {
			order = append(order, label)
		}
		values[label] = y
	}

	ys := make([]float64, len(order))
	for i, label := range order {
		ys[i] = values[label]
	}
	return order, ys, nil
}

// numericPairs extracts X/Y pairs for a scatter plot.
func numericPairs(res *gateway.QueryResult, xi, yi int) ([]float64, []float64, error) {
	xs := make([]float64, 0, res.RowCount())
	ys := make([]float64, 0, res.RowCount())

	for _, row := range res.Rows {
		x, ok := toFloat(row[xi])
		if !ok {
			return nil, nil, &MismatchError{
				Reason: fmt.Sprintf("column %q is not numeric", res.Columns[xi]),
			}
		}
		y, ok := toFloat(row[yi])
		if !ok {
			return nil, nil, &MismatchError{
				Reason: fmt.Sprintf("column %q is not numeric", res.Columns[yi]),
			}
		}
		xs = append(xs, x)
		ys = append(ys, y)
	}
	return xs, ys, nil
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	case []byte:
		f, err := strconv.ParseFloat(string(n), 64)
		return f, err == nil
	default:
		return 0, false
	}
}
