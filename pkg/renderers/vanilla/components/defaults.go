package components

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/goliatone/go-dynform/pkg/model"
	"github.com/goliatone/go-dynform/pkg/render"
)

const templatePrefix = "templates/components/"

// NewDefaultRegistry returns a registry with the input, select and unsupported
// controls.
func NewDefaultRegistry() *Registry {
	registry := New()
	registry.MustRegister(render.ControlInput, Descriptor{
		Renderer: templateComponentRenderer(templatePrefix + "input.tmpl"),
	})
	registry.MustRegister(render.ControlSelect, Descriptor{
		Renderer: templateComponentRenderer(templatePrefix + "select.tmpl"),
	})
	registry.MustRegister(render.ControlUnsupported, Descriptor{
		Renderer: templateComponentRenderer(templatePrefix + "unsupported.tmpl"),
	})
	return registry
}

func templateComponentRenderer(templateName string) Renderer {
	return func(buf *bytes.Buffer, field render.FieldView, data ComponentData) error {
		if data.Template == nil {
			return fmt.Errorf("components: template renderer not configured for %q", templateName)
		}

		rendered, err := data.Template.RenderTemplate(templateName, Payload(field, data))
		if err != nil {
			return fmt.Errorf("components: render template %q: %w", templateName, err)
		}
		buf.WriteString(rendered)
		return nil
	}
}

// Payload flattens a field into the template context the built-in templates
// read. Custom components can reuse it.
func Payload(field render.FieldView, data ComponentData) map[string]any {
	className := field.ClassName
	if field.HasError() && data.ErrorClass != "" {
		className = strings.TrimSpace(className + " " + data.ErrorClass)
	}
	return map[string]any{
		"id":          data.ControlID,
		"name":        field.Name,
		"kind":        string(field.Kind),
		"input_type":  field.InputType,
		"value":       field.Value,
		"error":       field.Error,
		"class_name":  className,
		"placeholder": field.Placeholder,
		"options":     optionPayload(field.Options, field.Value),
		"reason":      field.Reason,
	}
}

func optionPayload(options []model.Option, selected string) []map[string]any {
	out := make([]map[string]any, 0, len(options))
	for _, option := range options {
		out = append(out, map[string]any{
			"value":    option.Value,
			"label":    option.Label,
			"selected": option.Value == selected,
		})
	}
	return out
}
