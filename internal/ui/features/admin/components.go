package admin

import (
	"fmt"
	"strings"

	"github.com/a-h/templ"

	"github.com/sqldojo-labs/sqldojo/internal/ui/components"
)

// PanelView carries the admin fragment state.
type PanelView struct {
	Gated    bool
	Unlocked bool
	Message  string
	IsError  bool
}

// Panel renders the admin controls. Without a configured passcode the
// reset button is open to everyone; with one, it sits behind an unlock
// form backed by a session cookie.
func Panel(view PanelView) templ.Component {
	return components.HTML(func(b *strings.Builder) {
		b.WriteString(`<section id="admin-panel" class="panel admin-panel">`)
		b.WriteString(`<h2>Workshop Controls</h2>`)

		if view.Message != "" {
			class := "notice"
			if view.IsError {
				class = "error"
			}
			fmt.Fprintf(b, `<p class="%s">%s</p>`, class, components.Esc(view.Message))
		}

		switch {
		case view.Gated && !view.Unlocked:
			b.WriteString(`<p class="caption">Enter the workshop passcode to unlock the reset control.</p>`)
			b.WriteString(`<input type="password" data-bind-passcode placeholder="Passcode"/>`)
			b.WriteString(`<button data-on-click="@post('/api/admin/session')">Unlock</button>`)
		default:
			b.WriteString(`<p class="caption">Reset discards everyone&#39;s changes and restores the database from the canonical backup.</p>`)
			b.WriteString(`<button class="danger" data-on-click="@post('/api/admin/reset')">Reset Database</button>`)
		}
		b.WriteString(`</section>`)
	})
}
