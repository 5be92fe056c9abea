package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/goliatone/go-dynform/pkg/formstate"
	"github.com/goliatone/go-dynform/pkg/model"
	"github.com/goliatone/go-dynform/pkg/render"
	"github.com/goliatone/go-dynform/pkg/renderers/vanilla"
	"github.com/goliatone/go-dynform/pkg/validation"
	"github.com/goliatone/go-dynform/pkg/visibility"
	"github.com/goliatone/go-dynform/pkg/visibility/expr"
)

const defaultRendererName = vanilla.Name

// ErrMissingSubmit is returned by New and SetProps when Props.OnSubmit is nil.
var ErrMissingSubmit = errors.New("orchestrator: onSubmit is required")

// Form is a live dynamic form. It is safe for concurrent use.
type Form struct {
	mu    sync.RWMutex
	props Props

	memo       *validation.Memo
	controller *formstate.Controller
	evaluator  visibility.Evaluator
	extras     map[string]any

	registry        *render.Registry
	defaultRenderer string
	logger          *zap.Logger
	listeners       []func(render.View)
	unsubscribe     func()

	state    atomic.Int32
	inFlight atomic.Bool

	warnMu sync.Mutex
	warned map[string]struct{}
}

// New builds a Form, compiling the schema for props.Fields up front.
func New(props Props, options ...Option) (*Form, error) {
	if props.OnSubmit == nil {
		return nil, ErrMissingSubmit
	}

	f := &Form{
		props:           props.withDefaults(),
		defaultRenderer: defaultRendererName,
		warned:          make(map[string]struct{}),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(f)
	}
	if err := f.applyDefaults(); err != nil {
		return nil, err
	}

	if _, err := f.memo.Schema(f.props.Fields); err != nil {
		return nil, fmt.Errorf("orchestrator: build schema: %w", err)
	}

	if f.controller == nil {
		f.controller = formstate.New(f.props.Fields, f.props.DefaultValues)
	} else {
		f.controller.Register(f.props.Fields)
		f.controller.SetValues(f.props.DefaultValues)
	}
	f.unsubscribe = f.controller.Subscribe(func(model.Values) { f.emit() })

	return f, nil
}

func (f *Form) applyDefaults() error {
	if f.logger == nil {
		f.logger = zap.NewNop()
	}
	if f.memo == nil {
		f.memo = new(validation.Memo)
	}
	if f.evaluator == nil {
		f.evaluator = expr.New()
	}
	if f.registry == nil {
		f.registry = render.NewRegistry()
		renderer, err := vanilla.New()
		if err != nil {
			return fmt.Errorf("orchestrator: default renderer: %w", err)
		}
		f.registry.MustRegister(renderer)
	}
	if f.defaultRenderer == "" {
		f.defaultRenderer = defaultRendererName
	}
	return nil
}

// SetProps replaces the configuration. The schema is rebuilt only when the
// field list identity changes; DefaultValues are applied on construction only.
func (f *Form) SetProps(props Props) error {
	if props.OnSubmit == nil {
		return ErrMissingSubmit
	}
	props = props.withDefaults()

	if _, err := f.memo.Schema(props.Fields); err != nil {
		return fmt.Errorf("orchestrator: build schema: %w", err)
	}

	f.mu.Lock()
	changed := f.props.Fields.ID() != props.Fields.ID()
	f.props = props
	f.mu.Unlock()

	if changed {
		f.controller.Register(props.Fields)
		f.logger.Debug("field list changed", zap.String("list_id", props.Fields.ID()), zap.Int("fields", props.Fields.Len()))
	}
	f.emit()
	return nil
}

// Props returns the active configuration with defaults applied.
func (f *Form) Props() Props {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.props
}

// Schema returns the cached schema for the current field list.
func (f *Form) Schema() (*validation.Schema, error) {
	return f.memo.Schema(f.Props().Fields)
}

// SchemaBuilds reports how many times the form's schema cache compiled a
// schema. Forms sharing a cache through WithSchemaCache share the count.
func (f *Form) SchemaBuilds() int {
	return f.memo.Builds()
}

// Controller exposes the form-state controller.
func (f *Form) Controller() *formstate.Controller {
	return f.controller
}

// State reports the submission state.
func (f *Form) State() State {
	return State(f.state.Load())
}

// Values returns a snapshot of every tracked value, hidden fields included.
func (f *Form) Values() model.Values {
	return f.controller.Values()
}

// Errors returns the per-field validation messages from the last submit.
func (f *Form) Errors() map[string]string {
	return f.controller.Errors()
}

// SetValue updates a single value and recomputes the view.
func (f *Form) SetValue(name string, value any) {
	f.controller.SetValue(name, value)
}

// SetValues updates several values with a single recomputation.
func (f *Form) SetValues(values model.Values) {
	f.controller.SetValues(values)
}

// Close detaches the Form from its controller. It is only needed when the
// controller outlives the Form.
func (f *Form) Close() {
	if f.unsubscribe != nil {
		f.unsubscribe()
	}
}

// Submit validates the current values and, when they pass, invokes OnSubmit.
// Overlapping calls return OutcomeBusy without invoking the callback.
func (f *Form) Submit(ctx context.Context) SubmitResult {
	if ctx == nil {
		ctx = context.Background()
	}
	if !f.inFlight.CompareAndSwap(false, true) {
		f.logger.Debug("submit ignored while another submission is in flight")
		return SubmitResult{Outcome: OutcomeBusy}
	}
	defer f.inFlight.Store(false)

	props := f.Props()
	values := f.controller.Values()

	schema, err := f.memo.Schema(props.Fields)
	if err != nil {
		f.logger.Error("form submission error", zap.Error(err))
		return SubmitResult{Outcome: OutcomeFailed, Values: values, Err: err}
	}
	fieldErrs, err := schema.Validate(values)
	if err != nil {
		f.logger.Error("form submission error", zap.Error(err))
		return SubmitResult{Outcome: OutcomeFailed, Values: values, Err: err}
	}
	if !fieldErrs.Empty() {
		f.controller.SetErrors(fieldErrs)
		f.logger.Debug("form validation failed", zap.Strings("fields", fieldErrs.Fields()))
		f.emit()
		return SubmitResult{Outcome: OutcomeInvalid, Values: values, Errors: fieldErrs}
	}
	f.controller.ClearErrors()

	f.state.Store(int32(StateSubmitting))
	f.emit()
	err = f.invoke(ctx, props.OnSubmit, values.Clone())
	f.state.Store(int32(StateIdle))
	f.emit()

	if err != nil {
		f.logger.Error("form submission error", zap.Error(err))
		return SubmitResult{Outcome: OutcomeFailed, Values: values, Err: err}
	}
	return SubmitResult{Outcome: OutcomeSubmitted, Values: values}
}

func (f *Form) invoke(ctx context.Context, fn SubmitFunc, values model.Values) (err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			err = fmt.Errorf("orchestrator: submit callback panicked: %v", recovered)
		}
	}()
	return fn(ctx, values)
}

// Render draws the current view with the named renderer, or the default one
// when name is empty.
func (f *Form) Render(ctx context.Context, name string) ([]byte, error) {
	return f.RenderWith(ctx, name, render.RenderOptions{})
}

// RenderWith is Render with per-request options such as hidden fields or a
// locale.
func (f *Form) RenderWith(ctx context.Context, name string, options render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	renderer, err := f.rendererFor(name)
	if err != nil {
		return nil, err
	}
	output, err := renderer.Render(ctx, f.View(), options)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}
	return output, nil
}

// ContentType reports the content type of the named renderer.
func (f *Form) ContentType(name string) (string, error) {
	renderer, err := f.rendererFor(name)
	if err != nil {
		return "", err
	}
	return renderer.ContentType(), nil
}

func (f *Form) rendererFor(name string) (render.Renderer, error) {
	if f.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}
	target := name
	if target == "" {
		target = f.defaultRenderer
	}
	renderer, err := f.registry.Get(target)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: renderer %q: %w", target, err)
	}
	return renderer, nil
}

func (f *Form) emit() {
	if len(f.listeners) == 0 {
		return
	}
	view := f.View()
	for _, fn := range f.listeners {
		fn(view)
	}
}
