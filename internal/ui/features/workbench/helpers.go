package workbench

import (
	"fmt"

	"github.com/sqldojo-labs/sqldojo/internal/chart"
)

func kindOrDefault(kind string) string {
	if kind == "" {
		return string(chart.Line)
	}
	return kind
}

func errUnknownEntry(name string) error {
	return fmt.Errorf("unknown catalog entry %q", name)
}
