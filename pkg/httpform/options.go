package httpform

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/goliatone/go-dynform/pkg/orchestrator"
	"github.com/goliatone/go-dynform/pkg/render"
	"github.com/goliatone/go-dynform/pkg/renderers/vanilla"
	"github.com/goliatone/go-dynform/pkg/validation"
)

// GuardFunc rejects a request before the form is built. Return an HTTPError to
// choose the status; anything else maps to 403.
type GuardFunc func(r *http.Request) error

// TokenFunc returns the CSRF token expected for r.
type TokenFunc func(r *http.Request) string

// Options configure a Handler.
type Options struct {
	Renderer string
	Logger   *zap.Logger
	Guard    GuardFunc

	CSRFField string
	CSRFToken TokenFunc

	// SuccessRedirect answers a successful HTML submission with 303 See Other.
	SuccessRedirect string

	LocaleParam string
	Translator  render.Translator

	// SchemaCache is shared by every Form the handler builds. NewHandler
	// allocates one per handler when it is nil.
	SchemaCache *validation.Memo

	FormOptions []orchestrator.Option
}

// OptionFn mutates Options.
type OptionFn func(*Options)

// DefaultOptions returns the stock handler configuration.
func DefaultOptions() Options {
	return Options{
		Renderer:    vanilla.Name,
		CSRFField:   "_csrf",
		LocaleParam: "lang",
	}
}

// NewOptions applies fns over DefaultOptions and fills missing values.
func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.Renderer == "" {
		opts.Renderer = vanilla.Name
	}
	if opts.CSRFField == "" {
		opts.CSRFField = "_csrf"
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return opts
}

// WithRenderer selects the renderer used for HTML responses.
func WithRenderer(name string) OptionFn {
	return func(o *Options) { o.Renderer = name }
}

// WithLogger sets the request logger. It is also handed to every Form.
func WithLogger(logger *zap.Logger) OptionFn {
	return func(o *Options) { o.Logger = logger }
}

// WithGuard installs a request guard.
func WithGuard(guard GuardFunc) OptionFn {
	return func(o *Options) { o.Guard = guard }
}

// WithCSRF emits token(r) as a hidden field and rejects POSTs that do not echo
// it back.
func WithCSRF(field string, token TokenFunc) OptionFn {
	return func(o *Options) {
		o.CSRFField = field
		o.CSRFToken = token
	}
}

// WithSuccessRedirect redirects browsers after a successful submission.
func WithSuccessRedirect(location string) OptionFn {
	return func(o *Options) { o.SuccessRedirect = location }
}

// WithTranslator localizes output using the locale in the query parameter
// `param` (default "lang").
func WithTranslator(translator render.Translator, param string) OptionFn {
	return func(o *Options) {
		o.Translator = translator
		if param != "" {
			o.LocaleParam = param
		}
	}
}

// WithSchemaCache shares memo with every Form the handler builds.
func WithSchemaCache(memo *validation.Memo) OptionFn {
	return func(o *Options) { o.SchemaCache = memo }
}

// WithFormOptions forwards options to every orchestrator.Form the handler
// builds.
func WithFormOptions(options ...orchestrator.Option) OptionFn {
	return func(o *Options) { o.FormOptions = append(o.FormOptions, options...) }
}
