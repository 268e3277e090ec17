package workbench

import (
	"github.com/go-chi/chi/v5"
)

// SetupRoutes registers the workbench routes on the given router.
func SetupRoutes(r chi.Router, h *Handlers) {
	r.Get("/", h.QueryPage)
	r.Route("/api/workbench", func(r chi.Router) {
		r.Post("/execute", h.ExecuteSSE)
		r.Post("/chart", h.ChartSSE)
		r.Post("/catalog", h.CatalogSSE)
		r.Get("/history/{id}", h.HistoryLoadSSE)
	})
}
