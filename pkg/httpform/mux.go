package httpform

import (
	"fmt"
	"html"
	"net/http"
	"strings"

	"github.com/goliatone/go-dynform/pkg/loader"
	"github.com/goliatone/go-dynform/pkg/orchestrator"
	"github.com/goliatone/go-dynform/pkg/validation"
)

// NewMux serves every definition at <prefix>/{name} plus an index at prefix
// and a /healthz probe. Props are built once per definition; each request gets
// its own Form sharing that definition's FieldList and schema cache.
func NewMux(prefix string, defs map[string]*loader.Definition, submit orchestrator.SubmitFunc, fns ...OptionFn) (*http.ServeMux, error) {
	prefix = "/" + strings.Trim(prefix, "/")
	if prefix == "/" {
		prefix = "/forms"
	}
	opts := NewOptions(fns...)

	handlers := make(map[string]http.Handler, len(defs))
	for name, def := range defs {
		props, err := def.Props(submit)
		if err != nil {
			return nil, fmt.Errorf("httpform: form %q: %w", name, err)
		}
		perForm := opts
		perForm.SchemaCache = new(validation.Memo)
		handlers[name] = HandlerWithOptions(StaticProps(props), perForm)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("GET "+prefix, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		var b strings.Builder
		b.WriteString("<ul>")
		for _, name := range loader.Names(defs) {
			title := defs[name].Title
			if title == "" {
				title = name
			}
			fmt.Fprintf(&b, `<li><a href="%s/%s">%s</a></li>`, prefix, html.EscapeString(name), html.EscapeString(title))
		}
		b.WriteString("</ul>")
		_, _ = w.Write([]byte(b.String()))
	})
	mux.HandleFunc(prefix+"/{name}", func(w http.ResponseWriter, r *http.Request) {
		h, ok := handlers[r.PathValue("name")]
		if !ok {
			http.NotFound(w, r)
			return
		}
		h.ServeHTTP(w, r)
	})
	return mux, nil
}
