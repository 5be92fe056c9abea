package render

import (
	"github.com/goliatone/go-dynform/pkg/model"
)

// Control selects how a renderer draws a field.
type Control string

const (
	ControlInput       Control = "input"
	ControlSelect      Control = "select"
	ControlUnsupported Control = "unsupported"
)

// View is the render tree the orchestrator produces for the visible subset of
// a form. Renderers treat it as read-only.
type View struct {
	ClassName  string
	Fields     []FieldView
	Submit     SubmitView
	FormErrors []string
}

// FieldView describes a single visible field.
type FieldView struct {
	Name        string
	Label       string
	Kind        model.Kind
	Control     Control
	InputType   string
	Value       string
	Error       string
	ClassName   string
	Placeholder string
	Options     []model.Option
	// Reason explains why the field has no control when Control is
	// ControlUnsupported.
	Reason string
}

// HasError reports whether a validation message is attached.
func (f FieldView) HasError() bool { return f.Error != "" }

// SubmitView describes the submit button.
type SubmitView struct {
	Label     string
	Disabled  bool
	ClassName string
}

// Field returns the view for name, if visible.
func (v View) Field(name string) (FieldView, bool) {
	for _, field := range v.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return FieldView{}, false
}

// Names lists visible field names in render order.
func (v View) Names() []string {
	names := make([]string, 0, len(v.Fields))
	for _, field := range v.Fields {
		names = append(names, field.Name)
	}
	return names
}
