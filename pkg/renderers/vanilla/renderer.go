package vanilla

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"strings"

	"github.com/goliatone/go-dynform/pkg/render"
	rendertemplate "github.com/goliatone/go-dynform/pkg/render/template"
	"github.com/goliatone/go-dynform/pkg/render/template/gotemplate"
	"github.com/goliatone/go-dynform/pkg/renderers/vanilla/components"
)

// Name is the registry name of the HTML renderer.
const Name = "vanilla"

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateDir      string
	templateRenderer rendertemplate.TemplateRenderer
	components       *components.Registry
	classes          Classes
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir overlays templates from a directory on disk. Files are
// looked up by the same relative names (templates/form.tmpl, ...) and fall
// back to the bundle when missing.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		cfg.templateDir = strings.TrimSpace(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithComponents replaces the control registry.
func WithComponents(registry *components.Registry) Option {
	return func(cfg *config) {
		if registry != nil {
			cfg.components = registry
		}
	}
}

// WithClasses overrides the chrome classes.
func WithClasses(classes Classes) Option {
	return func(cfg *config) {
		cfg.classes = classes
	}
}

// Renderer emits an HTML form for a render.View.
type Renderer struct {
	templates  rendertemplate.TemplateRenderer
	components *components.Registry
	classes    Classes
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS(), classes: DefaultClasses()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}
	if cfg.components == nil {
		cfg.components = components.NewDefaultRegistry()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithBaseDir(cfg.templateDir),
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{
		templates:  renderer,
		components: cfg.components,
		classes:    cfg.classes,
	}, nil
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render draws the visible fields in order followed by the submit button.
func (r *Renderer) Render(ctx context.Context, view render.View, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}
	if ctx != nil {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}

	view = render.Localize(view, options.Locale, options.Translator)

	fields := make([]string, 0, len(view.Fields))
	for _, field := range view.Fields {
		markup, err := r.renderField(field)
		if err != nil {
			return nil, err
		}
		fields = append(fields, markup)
	}

	hidden := make([]map[string]any, 0, len(options.Hidden))
	for _, field := range render.NormalizeHidden(options.Hidden...) {
		hidden = append(hidden, map[string]any{"name": field.Name, "value": field.Value})
	}

	result, err := r.templates.RenderTemplate("templates/form.tmpl", map[string]any{
		"method":      normalizeMethod(options.Method),
		"action":      options.Action,
		"class_name":  view.ClassName,
		"hidden":      hidden,
		"form_errors": view.FormErrors,
		"fields":      fields,
		"classes":     r.classes.payload(),
		"submit": map[string]any{
			"label":      view.Submit.Label,
			"disabled":   view.Submit.Disabled,
			"class_name": view.Submit.ClassName,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return []byte(result), nil
}

func (r *Renderer) renderField(field render.FieldView) (string, error) {
	descriptor, ok := r.components.Descriptor(field.Control)
	if !ok {
		return "", fmt.Errorf("vanilla renderer: no component for control %q (field %q)", field.Control, field.Name)
	}

	data := components.ComponentData{
		Template:   r.templates,
		ControlID:  controlID(field.Name),
		ErrorClass: r.classes.ErrorInput,
	}

	var control bytes.Buffer
	if err := descriptor.Renderer(&control, field, data); err != nil {
		return "", fmt.Errorf("vanilla renderer: render field %q: %w", field.Name, err)
	}

	markup, err := r.templates.RenderTemplate("templates/field.tmpl", map[string]any{
		"id":      data.ControlID,
		"name":    field.Name,
		"label":   sanitizeLabel(field.Label),
		"control": control.String(),
		"error":   field.Error,
		"classes": r.classes.payload(),
	})
	if err != nil {
		return "", fmt.Errorf("vanilla renderer: render field %q: %w", field.Name, err)
	}
	return markup, nil
}
