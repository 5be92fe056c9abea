package orchestrator

import (
	"context"

	"github.com/goliatone/go-dynform/pkg/model"
)

// Default styling, applied when the matching Props field is empty.
const (
	DefaultInputStyle  = "w-full px-3 py-2 border rounded-lg shadow-sm focus:outline-none focus:ring-2"
	DefaultButtonStyle = "w-full px-3 py-2 bg-blue-600 text-white font-medium rounded-lg hover:bg-blue-700 focus:outline-none focus:ring-2 focus:ring-blue-500"
	DefaultClassName   = "max-w-2xl mx-auto border p-5 grid grid-cols-2 gap-5 border-gray-300 focus:ring-blue-500"
)

// Submit button labels.
const (
	SubmitLabel     = "Submit"
	SubmittingLabel = "Submitting..."
)

// SubmitFunc receives the full value map after a successful validation pass.
// Errors are logged and swallowed by the Form.
type SubmitFunc func(ctx context.Context, values model.Values) error

// Props configure a Form.
type Props struct {
	Fields        *model.FieldList
	DefaultValues model.Values
	OnSubmit      SubmitFunc
	ClassName     string
	InputStyle    string
	ButtonStyle   string
}

func (p Props) withDefaults() Props {
	if p.ClassName == "" {
		p.ClassName = DefaultClassName
	}
	if p.InputStyle == "" {
		p.InputStyle = DefaultInputStyle
	}
	if p.ButtonStyle == "" {
		p.ButtonStyle = DefaultButtonStyle
	}
	return p
}
