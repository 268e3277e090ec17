// Package router sets up HTTP routes for the UI server.
package router

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"github.com/starfederation/datastar-go/datastar"

	"github.com/sqldojo-labs/sqldojo/internal/gateway"
	"github.com/sqldojo-labs/sqldojo/internal/history"
	"github.com/sqldojo-labs/sqldojo/internal/restore"
	"github.com/sqldojo-labs/sqldojo/internal/schema"
	adminFeature "github.com/sqldojo-labs/sqldojo/internal/ui/features/admin"
	schemabrowserFeature "github.com/sqldojo-labs/sqldojo/internal/ui/features/schemabrowser"
	workbenchFeature "github.com/sqldojo-labs/sqldojo/internal/ui/features/workbench"
	"github.com/sqldojo-labs/sqldojo/internal/ui/notifier"
	"github.com/sqldojo-labs/sqldojo/internal/ui/resources"
)

// Deps carries everything the feature handlers need.
type Deps struct {
	Gateway       *gateway.Gateway
	Inspector     *schema.Inspector
	Restorer      *restore.Controller
	History       *history.Store
	SessionStore  sessions.Store
	AdminPasscode string
	Notifier      *notifier.Notifier
	Logger        *slog.Logger
}

// SetupRoutes configures all routes for the UI server.
func SetupRoutes(router chi.Router, deps Deps) {
	setupUpdates(router, deps.Notifier, deps.Logger)

	// Static assets
	router.Handle("/static/*", resources.Handler())

	// Feature routes
	adminHandlers := adminFeature.NewHandlers(deps.SessionStore, deps.AdminPasscode, deps.Restorer, deps.Notifier, deps.Logger)
	adminFeature.SetupRoutes(router, adminHandlers)

	workbenchHandlers := workbenchFeature.NewHandlers(
		deps.Gateway, deps.Inspector, deps.Restorer, deps.History,
		deps.Notifier, deps.Logger, adminHandlers.PanelFor,
	)
	workbenchFeature.SetupRoutes(router, workbenchHandlers)

	schemabrowserHandlers := schemabrowserFeature.NewHandlers(deps.Inspector, deps.Logger)
	schemabrowserFeature.SetupRoutes(router, schemabrowserHandlers)
}

// setupUpdates streams a reload instruction to every open browser when
// the database is restored or the backup changes on disk.
func setupUpdates(router chi.Router, notify *notifier.Notifier, logger *slog.Logger) {
	router.Get("/updates", func(w http.ResponseWriter, r *http.Request) {
		sse := datastar.NewSSE(w, r)
		updates := notify.Subscribe()
		defer notify.Unsubscribe(updates)

		for {
			select {
			case ev := <-updates:
				logger.Debug("pushing browser reload", "reason", ev.Reason)
				_ = sse.ExecuteScript("window.location.reload()")
			case <-r.Context().Done():
				return
			}
		}
	})
}
