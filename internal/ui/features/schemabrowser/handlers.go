package schemabrowser

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/starfederation/datastar-go/datastar"

	"github.com/sqldojo-labs/sqldojo/internal/schema"
)

// Handlers provides HTTP handlers for the schema browser feature.
type Handlers struct {
	inspector *schema.Inspector
	logger    *slog.Logger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(inspector *schema.Inspector, logger *slog.Logger) *Handlers {
	return &Handlers{inspector: inspector, logger: logger}
}

// TableColumnsSSE loads the column listing for one table into its
// details element.
func (h *Handlers) TableColumnsSSE(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)
	name := chi.URLParam(r, "name")

	cols, err := h.inspector.Columns(r.Context(), name)
	if err != nil {
		h.logger.Error("column introspection failed", "table", name, "error", err)
		_ = sse.ConsoleError(err)
		return
	}
	if err := sse.PatchElementTempl(ColumnsTable(name, cols)); err != nil {
		_ = sse.ConsoleError(err)
	}
}
