package schemabrowser

import (
	"github.com/go-chi/chi/v5"
)

// SetupRoutes registers the schema browser routes on the given router.
func SetupRoutes(r chi.Router, h *Handlers) {
	r.Get("/api/schema/tables/{name}", h.TableColumnsSSE)
}
