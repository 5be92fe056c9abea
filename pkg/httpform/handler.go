package httpform

import (
	"errors"
	"net/http"
	"strings"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/goliatone/go-dynform/pkg/model"
	"github.com/goliatone/go-dynform/pkg/orchestrator"
	"github.com/goliatone/go-dynform/pkg/render"
	"github.com/goliatone/go-dynform/pkg/validation"
)

// PropsFunc returns the props for the form served at r.
type PropsFunc func(r *http.Request) (orchestrator.Props, error)

// StaticProps serves the same props on every request.
func StaticProps(props orchestrator.Props) PropsFunc {
	return func(*http.Request) (orchestrator.Props, error) { return props, nil }
}

type submitResponse struct {
	Outcome orchestrator.Outcome `json:"outcome"`
	Values  model.Values         `json:"values,omitempty"`
	Errors  map[string]string    `json:"errors,omitempty"`
}

type handler struct {
	props PropsFunc
	opts  Options
}

// NewHandler builds a handler for the form described by props.
func NewHandler(props PropsFunc, fns ...OptionFn) http.Handler {
	return HandlerWithOptions(props, NewOptions(fns...))
}

// HandlerWithOptions is NewHandler with a prepared Options value.
func HandlerWithOptions(props PropsFunc, opts Options) http.Handler {
	opts = NewOptions(func(o *Options) { *o = opts })
	if opts.SchemaCache == nil {
		opts.SchemaCache = new(validation.Memo)
	}
	return &handler{props: props, opts: opts}
}

func (h *handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet, http.MethodHead, http.MethodPost:
	default:
		w.Header().Set("Allow", "GET, HEAD, POST")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	if h.opts.Guard != nil {
		if err := h.opts.Guard(r); err != nil {
			writeError(w, err, http.StatusForbidden)
			return
		}
	}

	if h.props == nil {
		writeError(w, errors.New("httpform: props function is nil"), http.StatusInternalServerError)
		return
	}
	props, err := h.props(r)
	if err != nil {
		h.opts.Logger.Warn("form props unavailable", zap.String("path", r.URL.Path), zap.Error(err))
		writeError(w, err, http.StatusInternalServerError)
		return
	}

	formOpts := append([]orchestrator.Option{
		orchestrator.WithLogger(h.opts.Logger),
		orchestrator.WithSchemaCache(h.opts.SchemaCache),
	}, h.opts.FormOptions...)
	form, err := orchestrator.New(props, formOpts...)
	if err != nil {
		h.opts.Logger.Error("form construction failed", zap.Error(err))
		writeError(w, err, http.StatusInternalServerError)
		return
	}
	defer form.Close()

	if r.Method != http.MethodPost {
		h.renderHTML(w, r, form, http.StatusOK)
		return
	}
	h.submit(w, r, form)
}

func (h *handler) submit(w http.ResponseWriter, r *http.Request, form *orchestrator.Form) {
	if err := r.ParseForm(); err != nil {
		writeError(w, StatusError{Code: http.StatusBadRequest, Err: err}, http.StatusBadRequest)
		return
	}
	if h.opts.CSRFToken != nil {
		expected := h.opts.CSRFToken(r)
		if expected == "" || r.PostForm.Get(h.opts.CSRFField) != expected {
			h.opts.Logger.Warn("csrf token rejected", zap.String("path", r.URL.Path))
			writeError(w, ErrCSRFMismatch, http.StatusForbidden)
			return
		}
	}

	form.SetValues(postedValues(r, form.Props().Fields))
	result := form.Submit(r.Context())

	status := http.StatusOK
	if result.Outcome == orchestrator.OutcomeInvalid {
		status = http.StatusUnprocessableEntity
	}

	if wantsJSON(r) {
		h.writeJSON(w, status, result)
		return
	}
	if result.OK() && h.opts.SuccessRedirect != "" {
		http.Redirect(w, r, h.opts.SuccessRedirect, http.StatusSeeOther)
		return
	}
	h.renderHTML(w, r, form, status)
}

func (h *handler) renderHTML(w http.ResponseWriter, r *http.Request, form *orchestrator.Form, status int) {
	options := render.RenderOptions{
		Action:     r.URL.Path,
		Method:     http.MethodPost,
		Translator: h.opts.Translator,
	}
	if h.opts.Translator != nil && h.opts.LocaleParam != "" {
		options.Locale = r.URL.Query().Get(h.opts.LocaleParam)
	}
	if h.opts.CSRFToken != nil {
		options.Hidden = append(options.Hidden, render.CSRFToken(h.opts.CSRFField, h.opts.CSRFToken(r)))
	}

	output, err := form.RenderWith(r.Context(), h.opts.Renderer, options)
	if err != nil {
		h.opts.Logger.Error("form render failed", zap.String("renderer", h.opts.Renderer), zap.Error(err))
		writeError(w, err, http.StatusInternalServerError)
		return
	}
	contentType, err := form.ContentType(h.opts.Renderer)
	if err != nil || contentType == "" {
		contentType = "text/html; charset=utf-8"
	}

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	if r.Method == http.MethodHead {
		return
	}
	_, _ = w.Write(output)
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, result orchestrator.SubmitResult) {
	payload := submitResponse{Outcome: result.Outcome, Errors: result.Errors}
	if result.OK() {
		payload.Values = result.Values
	}
	body, err := json.Marshal(payload)
	if err != nil {
		writeError(w, err, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// postedValues keeps only names declared by the field list so stray inputs
// (CSRF tokens, buttons) never reach the callback.
func postedValues(r *http.Request, fields *model.FieldList) model.Values {
	values := make(model.Values)
	if fields == nil {
		return values
	}
	for _, name := range fields.Names() {
		if raw, ok := r.PostForm[name]; ok && len(raw) > 0 {
			values[name] = raw[len(raw)-1]
		}
	}
	return values
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}
