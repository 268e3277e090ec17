// Package components provides the page layout and small shared helpers
// for building templ components in plain Go.
package components

import (
	"context"
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/sqldojo-labs/sqldojo/internal/ui/resources"
)

// datastarSrc is the hypermedia runtime loaded in the page head.
const datastarSrc = "https://cdn.jsdelivr.net/gh/starfederation/datastar@v1.0.0/bundles/datastar.js"

// HTML builds a templ component from a function that writes markup.
func HTML(write func(b *strings.Builder)) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var b strings.Builder
		write(&b)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

// Esc escapes text for safe inclusion in markup.
func Esc(s string) string {
	return html.EscapeString(s)
}

// Layout wraps body components in the full page shell.
func Layout(title string, body ...templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var head strings.Builder
		head.WriteString("<!DOCTYPE html><html lang=\"en\"><head><meta charset=\"utf-8\"/>")
		head.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1"/>`)
		fmt.Fprintf(&head, "<title>%s</title>", Esc(title))
		fmt.Fprintf(&head, `<link rel="stylesheet" href="%s"/>`, resources.StaticPath("app.css"))
		fmt.Fprintf(&head, `<script type="module" src="%s"></script>`, datastarSrc)
		head.WriteString(`</head><body data-on-load="@get('/updates')"><main>`)
		if _, err := io.WriteString(w, head.String()); err != nil {
			return err
		}

		for _, c := range body {
			if err := c.Render(ctx, w); err != nil {
				return err
			}
		}

		_, err := io.WriteString(w, "</main></body></html>")
		return err
	})
}

// Notice renders an inline informational message.
func Notice(id, text string) templ.Component {
	return HTML(func(b *strings.Builder) {
		fmt.Fprintf(b, `<p id="%s" class="notice">%s</p>`, Esc(id), Esc(text))
	})
}

// ErrorMessage renders an inline error message.
func ErrorMessage(id, text string) templ.Component {
	return HTML(func(b *strings.Builder) {
		fmt.Fprintf(b, `<p id="%s" class="error">%s</p>`, Esc(id), Esc(text))
	})
}
