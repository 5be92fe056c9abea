package tui

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/goliatone/go-dynform/pkg/model"
	"github.com/goliatone/go-dynform/pkg/orchestrator"
	"github.com/goliatone/go-dynform/pkg/render"
	"github.com/goliatone/go-dynform/pkg/validation"
)

const defaultMaxAttempts = 3

// Form is the part of orchestrator.Form a Session drives.
type Form interface {
	View() render.View
	Values() model.Values
	SetValue(name string, value any)
	Schema() (*validation.Schema, error)
	Submit(ctx context.Context) orchestrator.SubmitResult
}

var _ Form = (*orchestrator.Form)(nil)

// Session prompts for every visible field, re-evaluating visibility after each
// answer so conditional fields appear as soon as they apply, then submits.
type Session struct {
	driver      PromptDriver
	format      OutputFormat
	out         io.Writer
	maxAttempts int
	confirm     bool
	theme       Theme
}

// NewSession returns a Session using the survey driver unless overridden.
func NewSession(options ...Option) *Session {
	s := &Session{
		format:      OutputFormatJSON,
		maxAttempts: defaultMaxAttempts,
		theme:       Theme{ErrorPrefix: "✗ "},
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	if s.driver == nil {
		s.driver = NewSurveyDriver(nil)
	}
	return s
}

// Run collects answers and submits. Fields that fail validation are asked
// again, up to the configured number of attempts. Submit failures are
// reported through the result, not the error.
func (s *Session) Run(ctx context.Context, form Form) (orchestrator.SubmitResult, error) {
	if ctx == nil {
		return orchestrator.SubmitResult{}, errors.New("tui: context is required")
	}
	asked := make(map[string]bool)

	for attempt := 1; ; attempt++ {
		for {
			if err := ctx.Err(); err != nil {
				return orchestrator.SubmitResult{}, err
			}
			field, ok := nextField(form.View(), asked)
			if !ok {
				break
			}
			asked[field.Name] = true
			if err := s.prompt(ctx, form, field); err != nil {
				return orchestrator.SubmitResult{}, err
			}
		}

		if s.confirm {
			ok, err := s.driver.Confirm(ctx, ConfirmConfig{Message: "Submit?", Default: true})
			if err != nil {
				return orchestrator.SubmitResult{}, err
			}
			if !ok {
				return orchestrator.SubmitResult{}, ErrAborted
			}
		}

		result := form.Submit(ctx)
		switch result.Outcome {
		case orchestrator.OutcomeInvalid:
			if err := s.reportErrors(ctx, form.View(), result.Errors); err != nil {
				return result, err
			}
			if attempt >= s.maxAttempts {
				return result, ErrTooManyAttempts
			}
			for name := range result.Errors {
				delete(asked, name)
			}
			continue
		case orchestrator.OutcomeSubmitted:
			if err := s.writeOutput(result.Values); err != nil {
				return result, err
			}
		case orchestrator.OutcomeFailed:
			if err := s.driver.Info(ctx, s.theme.ErrorPrefix+"Submission failed"); err != nil {
				return result, err
			}
		}
		return result, nil
	}
}

func nextField(view render.View, asked map[string]bool) (render.FieldView, bool) {
	for _, field := range view.Fields {
		if !asked[field.Name] {
			return field, true
		}
	}
	return render.FieldView{}, false
}

func (s *Session) prompt(ctx context.Context, form Form, field render.FieldView) error {
	label := displayLabel(field)

	switch field.Control {
	case render.ControlInput:
		cfg := InputConfig{
			Message:   label,
			Help:      field.Placeholder,
			Validator: fieldValidator(form, field.Name),
		}
		var (
			answer string
			err    error
		)
		if field.InputType == "password" {
			answer, err = s.driver.Password(ctx, cfg)
		} else {
			cfg.Default = field.Value
			answer, err = s.driver.Input(ctx, cfg)
		}
		if err != nil {
			return err
		}
		form.SetValue(field.Name, answer)
	case render.ControlSelect:
		labels := make([]string, len(field.Options))
		selected := 0
		for i, option := range field.Options {
			labels[i] = option.Label
			if option.Value == field.Value {
				selected = i
			}
		}
		idx, err := s.driver.Select(ctx, SelectConfig{Message: label, Options: labels, DefaultIndex: selected})
		if err != nil {
			return err
		}
		if idx < 0 || idx >= len(field.Options) {
			return fmt.Errorf("tui: invalid selection %d for %q", idx, field.Name)
		}
		form.SetValue(field.Name, field.Options[idx].Value)
	default:
		return s.driver.Info(ctx, fmt.Sprintf("%sSkipping %s: %s", s.theme.InfoPrefix, label, field.Reason))
	}
	return nil
}

// fieldValidator checks a candidate answer against the form schema so the
// prompt can reject it before moving on. A schema that cannot be built or run
// rejects the answer too, so the prompt never accepts input it did not check.
func fieldValidator(form Form, name string) func(string) error {
	return func(answer string) error {
		schema, err := form.Schema()
		if err != nil {
			return fmt.Errorf("tui: validate %s: %w", name, err)
		}
		values := form.Values()
		values[name] = answer
		errs, err := schema.Validate(values)
		if err != nil {
			return fmt.Errorf("tui: validate %s: %w", name, err)
		}
		if msg, ok := errs[name]; ok {
			return errors.New(msg)
		}
		return nil
	}
}

func (s *Session) reportErrors(ctx context.Context, view render.View, errs validation.FieldErrors) error {
	labels := make(map[string]string, len(view.Fields))
	for _, field := range view.Fields {
		labels[field.Name] = displayLabel(field)
	}
	for _, name := range errs.Fields() {
		label := labels[name]
		if label == "" {
			label = name
		}
		if name == validation.FormLevel {
			label = "Form"
		}
		if err := s.driver.Info(ctx, fmt.Sprintf("%s%s: %s", s.theme.ErrorPrefix, label, errs[name])); err != nil {
			return err
		}
	}
	return nil
}

func (s *Session) writeOutput(values model.Values) error {
	if s.out == nil {
		return nil
	}
	payload, err := Encode(values, s.format)
	if err != nil {
		return err
	}
	if _, err := s.out.Write(payload); err != nil {
		return fmt.Errorf("tui: write output: %w", err)
	}
	if s.format == OutputFormatJSON || s.format == OutputFormatFormURLEncoded {
		_, err = io.WriteString(s.out, "\n")
	}
	return err
}
