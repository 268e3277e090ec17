// Package workbench provides the query editor page: catalog selector,
// SQL editor, results table, chart panel, and recent-query history.
package workbench

import (
	"github.com/sqldojo-labs/sqldojo/internal/gateway"
	"github.com/sqldojo-labs/sqldojo/internal/history"
)

// Signals are the frontend signals sent with workbench requests.
type Signals struct {
	SQL       string `json:"sql"`
	Catalog   string `json:"catalog"`
	ChartKind string `json:"chartkind"`
	ChartX    string `json:"chartx"`
	ChartY    string `json:"charty"`
}

// ResultView holds everything needed to render the results fragment.
type ResultView struct {
	Result *gateway.QueryResult
	// Err is the user-facing execution error, empty on success.
	Err string
}

// ChartView holds the chart panel state: selectors over the current
// result's columns plus the rendered output.
type ChartView struct {
	Columns []string
	Kind    string
	X       string
	Y       string
	SVG     string
	Message string
	IsError bool
}

// HistoryView holds the recent executions list.
type HistoryView struct {
	Entries []*history.Execution
}
