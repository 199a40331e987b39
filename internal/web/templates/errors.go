package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// ErrorAlert renders an inline error box with the suggested action and code.
func ErrorAlert(message, action, code string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &html{w: w}
		h.raw(`<div class="alert" role="alert"><strong>`)
		h.text(message)
		h.raw(`</strong>`)
		if action != "" {
			h.raw(`<p>`)
			h.text(action)
			h.raw(`</p>`)
		}
		if code != "" {
			h.raw(`<p class="small">קוד שגיאה: `)
			h.text(code)
			h.raw(`</p>`)
		}
		h.raw(`</div>`)
		return h.err
	})
}

// ErrorPage wraps ErrorAlert in a minimal page with a link back home.
func ErrorPage(message, action, code string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &html{w: w}
		h.raw(`<!DOCTYPE html><html lang="he" dir="rtl"><head><meta charset="utf-8"><title>שגיאה</title><style>`)
		h.raw(stylesheet())
		h.raw(`</style></head><body><div class="container"><div class="panel">`)
		if h.err != nil {
			return h.err
		}
		if err := ErrorAlert(message, action, code).Render(ctx, w); err != nil {
			return err
		}
		h.raw(`<p><a class="button" href="/">חזרה לרשימה</a></p></div></div></body></html>`)
		return h.err
	})
}
