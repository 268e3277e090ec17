package admin

import (
	"log/slog"
	"net/http"

	"github.com/a-h/templ"
	"github.com/gorilla/sessions"
	"github.com/starfederation/datastar-go/datastar"

	"github.com/sqldojo-labs/sqldojo/internal/restore"
	"github.com/sqldojo-labs/sqldojo/internal/ui/notifier"
)

const (
	sessionName = "sqldojo-admin"
	unlockedKey = "unlocked"
)

// Signals are the admin fragment's client-side signals.
type Signals struct {
	Passcode string `json:"passcode"`
}

// Handlers provides HTTP handlers for the admin feature.
type Handlers struct {
	store    sessions.Store
	passcode string
	restorer *restore.Controller
	notifier *notifier.Notifier
	logger   *slog.Logger
}

// NewHandlers creates a new Handlers instance. An empty passcode
// disables the gate entirely.
func NewHandlers(store sessions.Store, passcode string, restorer *restore.Controller, notify *notifier.Notifier, logger *slog.Logger) *Handlers {
	return &Handlers{
		store:    store,
		passcode: passcode,
		restorer: restorer,
		notifier: notify,
		logger:   logger,
	}
}

// Gated reports whether a passcode is configured.
func (h *Handlers) Gated() bool {
	return h.passcode != ""
}

// Unlocked reports whether the request's session has passed the gate.
func (h *Handlers) Unlocked(r *http.Request) bool {
	session, err := h.store.Get(r, sessionName)
	if err != nil {
		return false
	}
	unlocked, ok := session.Values[unlockedKey].(bool)
	return ok && unlocked
}

// PanelFor renders the admin fragment for the current request.
func (h *Handlers) PanelFor(r *http.Request) templ.Component {
	return Panel(PanelView{Gated: h.Gated(), Unlocked: h.Unlocked(r)})
}

// LoginSSE checks the submitted passcode and unlocks the session. The
// cookie must be written before the SSE stream opens.
func (h *Handlers) LoginSSE(w http.ResponseWriter, r *http.Request) {
	var signals Signals
	if err := datastar.ReadSignals(r, &signals); err != nil {
		sse := datastar.NewSSE(w, r)
		_ = sse.ConsoleError(err)
		return
	}

	if !h.Gated() || signals.Passcode != h.passcode {
		sse := datastar.NewSSE(w, r)
		h.logger.Warn("rejected admin unlock attempt")
		_ = sse.PatchElementTempl(Panel(PanelView{
			Gated:   h.Gated(),
			Message: "Incorrect passcode.",
			IsError: true,
		}))
		return
	}

	session, _ := h.store.Get(r, sessionName)
	session.Values[unlockedKey] = true
	if err := session.Save(r, w); err != nil {
		sse := datastar.NewSSE(w, r)
		_ = sse.ConsoleError(err)
		return
	}

	sse := datastar.NewSSE(w, r)
	_ = sse.PatchElementTempl(Panel(PanelView{
		Gated:    true,
		Unlocked: true,
		Message:  "Unlocked.",
	}))
}

// ResetSSE restores the database from the canonical backup and reloads
// every connected browser.
func (h *Handlers) ResetSSE(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)

	if h.Gated() && !h.Unlocked(r) {
		_ = sse.PatchElementTempl(Panel(PanelView{
			Gated:   true,
			Message: "Unlock with the passcode first.",
			IsError: true,
		}))
		return
	}

	if err := h.restorer.Reset(r.Context()); err != nil {
		h.logger.Error("database reset failed", "error", err)
		_ = sse.PatchElementTempl(Panel(PanelView{
			Gated:    h.Gated(),
			Unlocked: h.Unlocked(r),
			Message:  "Reset failed: " + err.Error(),
			IsError:  true,
		}))
		return
	}

	h.logger.Info("database reset from canonical backup")
	h.notifier.Broadcast(notifier.DatabaseRestored)
	_ = sse.ExecuteScript("window.location.reload()")
}
