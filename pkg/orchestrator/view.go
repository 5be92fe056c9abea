package orchestrator

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/goliatone/go-dynform/pkg/model"
	"github.com/goliatone/go-dynform/pkg/render"
	"github.com/goliatone/go-dynform/pkg/validation"
	"github.com/goliatone/go-dynform/pkg/visibility"
)

// View evaluates visibility for every descriptor in list order against the
// current values and returns the visible subset plus the submit control.
// Hidden fields keep their values in the controller.
func (f *Form) View() render.View {
	props := f.Props()
	values := f.controller.Values()
	errs := f.controller.Errors()
	ctx := visibility.Context{Values: values, Extras: f.extras}

	view := render.View{
		ClassName: props.ClassName,
		Fields:    make([]render.FieldView, 0, props.Fields.Len()),
		Submit: render.SubmitView{
			Label:     SubmitLabel,
			ClassName: props.ButtonStyle,
		},
	}
	if f.State() == StateSubmitting {
		view.Submit.Label = SubmittingLabel
		view.Submit.Disabled = true
	}
	if msg := errs[validation.FormLevel]; msg != "" {
		view.FormErrors = []string{msg}
	}

	props.Fields.Each(func(field model.Field) {
		visible, err := visibility.Visible(field, ctx, f.evaluator)
		if err != nil {
			f.logger.Warn("visibility rule failed, hiding field", zap.String("field", field.Name), zap.Error(err))
		}
		if !visible {
			return
		}
		view.Fields = append(view.Fields, f.fieldView(props, field, values, errs))
	})
	return view
}

func (f *Form) fieldView(props Props, field model.Field, values model.Values, errs map[string]string) render.FieldView {
	fv := render.FieldView{
		Name:        field.Name,
		Label:       field.Label,
		Kind:        field.Kind,
		Value:       values.String(field.Name),
		Error:       errs[field.Name],
		Placeholder: field.Placeholder,
	}

	switch field.Kind {
	case model.KindText, model.KindEmail, model.KindPassword:
		fv.Control = render.ControlInput
		fv.InputType = string(field.Kind)
		fv.ClassName = props.InputStyle
	case model.KindSelect:
		if len(field.Options) == 0 {
			return f.unsupported(props, fv, "select field has no options")
		}
		fv.Control = render.ControlSelect
		fv.Options = field.Options
		fv.ClassName = field.ClassName
		if fv.ClassName == "" {
			fv.ClassName = props.InputStyle
		}
	case model.KindRadio, model.KindCheckbox:
		return f.unsupported(props, fv, fmt.Sprintf("kind %q has no control", field.Kind))
	default:
		return f.unsupported(props, fv, fmt.Sprintf("unknown kind %q", field.Kind))
	}
	return fv
}

func (f *Form) unsupported(props Props, fv render.FieldView, reason string) render.FieldView {
	fv.Control = render.ControlUnsupported
	fv.Reason = reason

	key := props.Fields.ID() + "\x00" + fv.Name
	f.warnMu.Lock()
	_, seen := f.warned[key]
	if !seen {
		f.warned[key] = struct{}{}
	}
	f.warnMu.Unlock()
	if !seen {
		f.logger.Warn("field kind is not rendered", zap.String("field", fv.Name), zap.String("kind", string(fv.Kind)), zap.String("reason", reason))
	}
	return fv
}
