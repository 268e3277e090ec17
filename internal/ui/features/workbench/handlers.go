package workbench

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
	"github.com/starfederation/datastar-go/datastar"

	"github.com/sqldojo-labs/sqldojo/internal/catalog"
	"github.com/sqldojo-labs/sqldojo/internal/chart"
	"github.com/sqldojo-labs/sqldojo/internal/gateway"
	"github.com/sqldojo-labs/sqldojo/internal/history"
	"github.com/sqldojo-labs/sqldojo/internal/restore"
	"github.com/sqldojo-labs/sqldojo/internal/schema"
	"github.com/sqldojo-labs/sqldojo/internal/ui/components"
	"github.com/sqldojo-labs/sqldojo/internal/ui/features/docs"
	"github.com/sqldojo-labs/sqldojo/internal/ui/features/schemabrowser"
	"github.com/sqldojo-labs/sqldojo/internal/ui/notifier"
)

const historyLimit = 10

// Handlers provides HTTP handlers for the workbench feature.
type Handlers struct {
	gw        *gateway.Gateway
	inspector *schema.Inspector
	restorer  *restore.Controller
	store     *history.Store
	notifier  *notifier.Notifier
	logger    *slog.Logger

	// adminPanel renders the admin fragment for the current request;
	// injected by the router so the workbench stays session-agnostic.
	adminPanel func(*http.Request) templ.Component
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(
	gw *gateway.Gateway,
	inspector *schema.Inspector,
	restorer *restore.Controller,
	store *history.Store,
	notify *notifier.Notifier,
	logger *slog.Logger,
	adminPanel func(*http.Request) templ.Component,
) *Handlers {
	return &Handlers{
		gw:         gw,
		inspector:  inspector,
		restorer:   restorer,
		store:      store,
		notifier:   notify,
		logger:     logger,
		adminPanel: adminPanel,
	}
}

// QueryPage renders the full workbench page. The schema snapshot is
// queried fresh; an empty schema triggers an automatic restore before
// the page is built, so the learner always lands on a working database.
func (h *Handlers) QueryPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	tables, restored := h.freshTables(r)

	counts, err := h.inspector.RowCounts(ctx, tables)
	if err != nil {
		h.logger.Error("row count introspection failed", "error", err)
	}

	entry := catalog.Default()
	result, execErr := h.gw.Execute(ctx, entry.SQL)
	view := ResultView{Result: result}
	if execErr != nil {
		view.Err = execErr.Error()
	}

	recent, err := h.store.Recent(ctx, historyLimit)
	if err != nil {
		h.logger.Error("failed to load query history", "error", err)
	}

	page := components.Layout("SQL Dojo: SQL Querying Workshop",
		header(),
		EditorPanel(entry.SQL),
		Results(view),
		ChartPanel(ChartView{Columns: result.Columns, Kind: string(chart.Line)}),
		schemabrowser.Panel(schemabrowser.PanelData{Tables: tables, Counts: counts, Restored: restored}),
		docs.ERDiagram(),
		docs.Cheatsheet(),
		History(HistoryView{Entries: recent}),
		h.adminPanel(r),
	)

	if err := page.Render(ctx, w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func header() templ.Component {
	return components.HTML(func(b *strings.Builder) {
		b.WriteString(`<h1>SQL Querying Workshop</h1>`)
		b.WriteString(`<p class="caption">Pick an example query or write your own, run it against the sample database, and explore the results.</p>`)
	})
}

// freshTables lists tables, restoring the database first when the
// schema comes back empty. Returns the table list and whether a
// restore happened.
func (h *Handlers) freshTables(r *http.Request) ([]string, bool) {
	ctx := r.Context()

	tables, err := h.inspector.ListTables(ctx)
	if err != nil {
		h.logger.Error("table introspection failed", "error", err)
		return nil, false
	}
	if len(tables) > 0 {
		return tables, false
	}

	h.logger.Warn("no tables found, restoring database")
	if err := h.restorer.Reset(ctx); err != nil {
		h.logger.Error("automatic restore failed", "error", err)
		return nil, false
	}
	h.notifier.Broadcast(notifier.DatabaseRestored)

	tables, err = h.inspector.ListTables(ctx)
	if err != nil {
		h.logger.Error("table introspection failed after restore", "error", err)
		return nil, true
	}
	return tables, true
}

// ExecuteSSE runs the editor's SQL and patches results, chart selectors,
// schema browser and history. Execution errors surface inline; the
// result stays empty so every fragment renders uniformly.
func (h *Handlers) ExecuteSSE(w http.ResponseWriter, r *http.Request) {
	// Read signals before creating the SSE stream (it consumes the body).
	var signals Signals
	if err := datastar.ReadSignals(r, &signals); err != nil {
		sse := datastar.NewSSE(w, r)
		_ = sse.ConsoleError(err)
		return
	}
	sse := datastar.NewSSE(w, r)
	ctx := r.Context()

	sqlText := strings.TrimSpace(signals.SQL)

	start := time.Now()
	result, execErr := h.gw.Execute(ctx, sqlText)
	elapsed := time.Since(start)

	if _, err := h.store.Record(ctx, sqlText, result.RowCount(), elapsed, execErr); err != nil {
		h.logger.Error("failed to record execution", "error", err)
	}

	view := ResultView{Result: result}
	if execErr != nil {
		view.Err = execErr.Error()
	}
	if err := sse.PatchElementTempl(Results(view)); err != nil {
		_ = sse.ConsoleError(err)
		return
	}

	_ = sse.PatchElementTempl(ChartPanel(ChartView{
		Columns: result.Columns,
		Kind:    kindOrDefault(signals.ChartKind),
		X:       signals.ChartX,
		Y:       signals.ChartY,
	}))

	// Schema data is freshly queried on every interaction; an empty
	// schema self-heals and forces a full re-render.
	tables, err := h.inspector.ListTables(ctx)
	if err == nil && len(tables) == 0 {
		if rerr := h.restorer.Reset(ctx); rerr != nil {
			h.logger.Error("automatic restore failed", "error", rerr)
		} else {
			h.notifier.Broadcast(notifier.DatabaseRestored)
			_ = sse.ExecuteScript("window.location.reload()")
			return
		}
	}
	if err == nil {
		counts, cerr := h.inspector.RowCounts(ctx, tables)
		if cerr != nil {
			h.logger.Error("row count introspection failed", "error", cerr)
		}
		_ = sse.PatchElementTempl(schemabrowser.Panel(schemabrowser.PanelData{Tables: tables, Counts: counts}))
	}

	if recent, herr := h.store.Recent(ctx, historyLimit); herr == nil {
		_ = sse.PatchElementTempl(History(HistoryView{Entries: recent}))
	}
}

// ChartSSE re-runs the editor's SQL and renders the requested chart.
// Column mismatches surface as an inline message; an empty result shows
// a neutral note instead of a chart.
func (h *Handlers) ChartSSE(w http.ResponseWriter, r *http.Request) {
	var signals Signals
	if err := datastar.ReadSignals(r, &signals); err != nil {
		sse := datastar.NewSSE(w, r)
		_ = sse.ConsoleError(err)
		return
	}
	sse := datastar.NewSSE(w, r)

	view := h.buildChart(r, signals)
	if err := sse.PatchElementTempl(ChartOutput(view)); err != nil {
		_ = sse.ConsoleError(err)
	}
}

func (h *Handlers) buildChart(r *http.Request, signals Signals) ChartView {
	view := ChartView{
		Kind: kindOrDefault(signals.ChartKind),
		X:    signals.ChartX,
		Y:    signals.ChartY,
	}

	kind, err := chart.ParseKind(view.Kind)
	if err != nil {
		view.Message = err.Error()
		view.IsError = true
		return view
	}

	result, execErr := h.gw.Execute(r.Context(), strings.TrimSpace(signals.SQL))
	if execErr != nil {
		view.Message = execErr.Error()
		view.IsError = true
		return view
	}
	view.Columns = result.Columns

	svg, err := chart.Render(result, chart.Request{Kind: kind, XColumn: signals.ChartX, YColumn: signals.ChartY})
	switch {
	case err == nil:
		view.SVG = svg
	case err == chart.ErrNoRows:
		view.Message = "The result has no rows, so there is nothing to visualize."
	default:
		view.Message = err.Error()
		view.IsError = true
	}
	return view
}

// CatalogSSE loads the selected catalog entry into the editor by
// patching the sql signal.
func (h *Handlers) CatalogSSE(w http.ResponseWriter, r *http.Request) {
	var signals Signals
	if err := datastar.ReadSignals(r, &signals); err != nil {
		sse := datastar.NewSSE(w, r)
		_ = sse.ConsoleError(err)
		return
	}
	sse := datastar.NewSSE(w, r)

	entry, ok := catalog.Lookup(signals.Catalog)
	if !ok {
		_ = sse.ConsoleError(errUnknownEntry(signals.Catalog))
		return
	}
	if err := sse.MarshalAndPatchSignals(map[string]any{"sql": entry.SQL}); err != nil {
		_ = sse.ConsoleError(err)
	}
}

// HistoryLoadSSE loads a recorded execution's SQL back into the editor.
func (h *Handlers) HistoryLoadSSE(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)
	id := chi.URLParam(r, "id")

	e, err := h.store.Get(r.Context(), id)
	if err != nil {
		_ = sse.ConsoleError(err)
		return
	}
	if err := sse.MarshalAndPatchSignals(map[string]any{"sql": e.SQLText}); err != nil {
		_ = sse.ConsoleError(err)
	}
}
