package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-dynform/pkg/render"
)

// Name is the registry name of the terminal renderer.
const Name = "tui"

// Renderer prints a plain-text outline of a view: one line per visible field,
// validation messages underneath and the submit control last. Interactive
// prompting lives in Session.
type Renderer struct{}

var _ render.Renderer = Renderer{}

// NewRenderer returns the plain-text renderer.
func NewRenderer() Renderer { return Renderer{} }

// Name reports the renderer identifier.
func (Renderer) Name() string { return Name }

// ContentType reports the output MIME type.
func (Renderer) ContentType() string { return "text/plain; charset=utf-8" }

// Render writes the outline for view.
func (Renderer) Render(ctx context.Context, view render.View, options render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	view = render.Localize(view, options.Locale, options.Translator)

	var b strings.Builder
	for _, msg := range view.FormErrors {
		fmt.Fprintf(&b, "! %s\n", msg)
	}
	for _, field := range view.Fields {
		writeField(&b, field)
	}
	label := view.Submit.Label
	if view.Submit.Disabled {
		label += " (disabled)"
	}
	fmt.Fprintf(&b, "[ %s ]\n", label)
	return []byte(b.String()), nil
}

func writeField(b *strings.Builder, field render.FieldView) {
	label := displayLabel(field)
	switch field.Control {
	case render.ControlInput:
		value := field.Value
		if field.InputType == "password" && value != "" {
			value = "********"
		}
		fmt.Fprintf(b, "%s (%s): %s\n", label, field.InputType, value)
	case render.ControlSelect:
		choices := make([]string, 0, len(field.Options))
		for _, option := range field.Options {
			marker := " "
			if option.Value == field.Value {
				marker = "*"
			}
			choices = append(choices, marker+option.Label)
		}
		fmt.Fprintf(b, "%s [%s]: %s\n", label, strings.Join(choices, " |"), field.Value)
	default:
		fmt.Fprintf(b, "%s: unsupported (%s)\n", label, field.Reason)
	}
	if field.Error != "" {
		fmt.Fprintf(b, "  ! %s\n", field.Error)
	}
}

func displayLabel(field render.FieldView) string {
	if label := strings.TrimSpace(field.Label); label != "" {
		return label
	}
	return field.Name
}
