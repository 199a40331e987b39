// Package templates holds the HTML components of the directory page.
//
// Components are templ.Components built with templ.ComponentFunc, so they
// render through the same Render(ctx, w) contract as generated templates and
// can be served with templ.Handler.
package templates

import (
	"io"

	"github.com/a-h/templ"
)

// html is a small sticky-error writer. After the first failed write every
// call is a no-op and err holds the failure.
type html struct {
	w   io.Writer
	err error
}

func (h *html) raw(s string) {
	if h.err != nil {
		return
	}
	_, h.err = io.WriteString(h.w, s)
}

// text writes s escaped for element content or a quoted attribute value.
func (h *html) text(s string) {
	h.raw(templ.EscapeString(s))
}

// attr writes ` name="value"` with value escaped.
func (h *html) attr(name, value string) {
	h.raw(" " + name + `="`)
	h.text(value)
	h.raw(`"`)
}

// hidden writes a hidden form input.
func (h *html) hidden(name, value string) {
	h.raw(`<input type="hidden"`)
	h.attr("name", name)
	h.attr("value", value)
	h.raw(">")
}
