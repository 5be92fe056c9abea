package loader

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-dynform/pkg/model"
	"github.com/goliatone/go-dynform/pkg/orchestrator"
	"github.com/goliatone/go-dynform/pkg/validation"
	"github.com/goliatone/go-dynform/pkg/visibility/expr"
)

// RuleChecker validates VisibleWhen expressions ahead of time.
type RuleChecker interface {
	Check(rule string) error
}

// FieldList converts the definition into a FieldList. Unknown kinds, bad rule
// specs and unparsable VisibleWhen rules are reported with the field name.
// A nil checker uses the expr evaluator.
func (d *Definition) FieldList(checker RuleChecker) (*model.FieldList, error) {
	if checker == nil {
		checker = expr.New()
	}

	fields := make([]model.Field, 0, len(d.Fields))
	for idx, def := range d.Fields {
		name := strings.TrimSpace(def.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: field #%d has no name", ErrInvalidDefinition, idx+1)
		}

		kind, err := model.ParseKind(def.Type)
		if err != nil {
			return nil, fmt.Errorf("%w: field %q: %v", ErrInvalidDefinition, name, err)
		}

		field := model.Field{
			Name:        name,
			Label:       def.Label,
			Kind:        kind,
			VisibleWhen: strings.TrimSpace(def.VisibleWhen),
			ClassName:   def.ClassName,
			Placeholder: def.Placeholder,
		}
		if field.Label == "" {
			field.Label = name
		}

		if len(def.Rules) > 0 {
			rule, err := validation.FromSpec(def.Rules...)
			if err != nil {
				return nil, fmt.Errorf("%w: field %q: %v", ErrInvalidDefinition, name, err)
			}
			field.Rule = rule
		}

		for _, opt := range def.Options {
			label := opt.Label
			if label == "" {
				label = opt.Value
			}
			field.Options = append(field.Options, model.Option{Value: opt.Value, Label: label})
		}

		if field.VisibleWhen != "" {
			if err := checker.Check(field.VisibleWhen); err != nil {
				return nil, fmt.Errorf("%w: field %q visibleWhen: %v", ErrInvalidDefinition, name, err)
			}
		}

		fields = append(fields, field)
	}

	list, err := model.NewFieldList(fields...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDefinition, err)
	}
	return list, nil
}

// Props builds orchestrator props with a fresh FieldList.
func (d *Definition) Props(submit orchestrator.SubmitFunc) (orchestrator.Props, error) {
	fields, err := d.FieldList(nil)
	if err != nil {
		return orchestrator.Props{}, err
	}
	return orchestrator.Props{
		Fields:        fields,
		DefaultValues: model.Values(d.Defaults).Clone(),
		OnSubmit:      submit,
		ClassName:     d.ClassName,
		InputStyle:    d.InputStyle,
		ButtonStyle:   d.ButtonStyle,
	}, nil
}
