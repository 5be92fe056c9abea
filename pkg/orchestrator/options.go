package orchestrator

import (
	"go.uber.org/zap"

	"github.com/goliatone/go-dynform/pkg/formstate"
	"github.com/goliatone/go-dynform/pkg/render"
	"github.com/goliatone/go-dynform/pkg/validation"
	"github.com/goliatone/go-dynform/pkg/visibility"
)

// Option customises a Form.
type Option func(*Form)

// WithLogger sets the logger used for submit failures and diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(f *Form) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(f *Form) {
		f.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when Render is called
// without a name.
func WithDefaultRenderer(name string) Option {
	return func(f *Form) {
		f.defaultRenderer = name
	}
}

// WithVisibilityEvaluator replaces the evaluator used for VisibleWhen rules.
func WithVisibilityEvaluator(evaluator visibility.Evaluator) Option {
	return func(f *Form) {
		if evaluator != nil {
			f.evaluator = evaluator
		}
	}
}

// WithVisibilityExtras exposes extra data to VisibleWhen rules under the
// `extras.` prefix.
func WithVisibilityExtras(extras map[string]any) Option {
	return func(f *Form) {
		f.extras = extras
	}
}

// WithController shares an existing form-state controller. Default values in
// Props are merged into it.
func WithController(controller *formstate.Controller) Option {
	return func(f *Form) {
		f.controller = controller
	}
}

// WithSchemaCache shares a schema cache between forms built from the same
// field list, so the schema is compiled once rather than once per Form. The
// cache holds a single entry: forms with different lists should not share one.
func WithSchemaCache(memo *validation.Memo) Option {
	return func(f *Form) {
		if memo != nil {
			f.memo = memo
		}
	}
}

// WithViewListener registers fn to receive the recomputed view after every
// value or state change.
func WithViewListener(fn func(render.View)) Option {
	return func(f *Form) {
		if fn != nil {
			f.listeners = append(f.listeners, fn)
		}
	}
}
