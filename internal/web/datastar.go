package web

import (
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/starfederation/datastar-go/datastar"
)

// IsDataStar reports whether r was issued by a DataStar action and expects
// an event stream.
func IsDataStar(r *http.Request) bool {
	return r.Header.Get("Datastar-Request") != "" ||
		strings.Contains(r.Header.Get("Accept"), "text/event-stream") ||
		r.URL.Query().Has("datastar")
}

// wantsJSON reports whether a non-DataStar client asked for JSON.
func wantsJSON(r *http.Request) bool {
	return !IsDataStar(r) && strings.Contains(r.Header.Get("Accept"), "application/json")
}

type templResponse struct {
	partial templ.Component
	full    templ.Component
	status  int
	options []datastar.PatchElementOption
}

// Render patches the partial for DataStar requests and writes the full page
// otherwise.
func (t templResponse) Render(w http.ResponseWriter, r *http.Request) error {
	if IsDataStar(r) {
		return datastar.NewSSE(w, r).PatchElementTempl(t.partial, t.options...)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if t.status != 0 {
		w.WriteHeader(t.status)
	}
	return t.full.Render(r.Context(), w)
}

// Templ renders c as is for both request kinds.
func Templ(c templ.Component, opts ...datastar.PatchElementOption) Response {
	return templResponse{partial: c, full: c, options: opts}
}

// TemplPartial patches partial into the page for DataStar requests and
// renders full for regular ones.
func TemplPartial(partial, full templ.Component, opts ...datastar.PatchElementOption) Response {
	return templResponse{partial: partial, full: full, options: opts}
}

// WithTarget sets the CSS selector the patch applies to.
func WithTarget(selector string) datastar.PatchElementOption {
	return datastar.WithSelector(selector)
}

func WithPatchMode(mode datastar.ElementPatchMode) datastar.PatchElementOption {
	return datastar.WithMode(mode)
}
