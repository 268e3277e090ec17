package admin

import (
	"github.com/go-chi/chi/v5"
)

// SetupRoutes registers the admin routes on the given router.
func SetupRoutes(r chi.Router, h *Handlers) {
	r.Post("/api/admin/session", h.LoginSSE)
	r.Post("/api/admin/reset", h.ResetSSE)
}
