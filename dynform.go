// Package dynform builds validated, conditionally visible forms from field
// descriptor lists and renders them as HTML or terminal prompts.
//
// The root package re-exports the common entry points; the pieces live under
// pkg/.
package dynform

import (
	"context"

	"github.com/goliatone/go-dynform/pkg/loader"
	"github.com/goliatone/go-dynform/pkg/model"
	"github.com/goliatone/go-dynform/pkg/orchestrator"
	"github.com/goliatone/go-dynform/pkg/render"
)

type (
	Field         = model.Field
	FieldList     = model.FieldList
	Values        = model.Values
	Props         = orchestrator.Props
	SubmitFunc    = orchestrator.SubmitFunc
	SubmitResult  = orchestrator.SubmitResult
	Form          = orchestrator.Form
	RenderOptions = render.RenderOptions
)

// NewForm exposes the orchestrator constructor from the top-level module.
func NewForm(props Props, options ...orchestrator.Option) (*Form, error) {
	return orchestrator.New(props, options...)
}

// LoadForm reads a JSON or YAML definition and returns a Form wired to submit.
func LoadForm(path string, submit SubmitFunc, options ...orchestrator.Option) (*Form, error) {
	def, err := loader.LoadFile(path)
	if err != nil {
		return nil, err
	}
	props, err := def.Props(submit)
	if err != nil {
		return nil, err
	}
	return orchestrator.New(props, options...)
}

// RenderHTML builds a throwaway Form and renders it with the vanilla renderer.
func RenderHTML(ctx context.Context, props Props, options RenderOptions) ([]byte, error) {
	if props.OnSubmit == nil {
		props.OnSubmit = func(context.Context, Values) error { return nil }
	}
	form, err := orchestrator.New(props)
	if err != nil {
		return nil, err
	}
	defer form.Close()
	return form.RenderWith(ctx, "", options)
}
