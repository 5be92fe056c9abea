package tui

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-dynform/pkg/model"
	"github.com/goliatone/go-dynform/pkg/orchestrator"
	"github.com/goliatone/go-dynform/pkg/testsupport"
	"github.com/goliatone/go-dynform/pkg/validation"
)

type stubDriver struct {
	inputs    []string
	passwords []string
	selectIdx []int
	confirm   []bool

	asked []string
	info  []string
}

func (s *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	s.asked = append(s.asked, cfg.Message)
	if len(s.inputs) == 0 {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[0]
	s.inputs = s.inputs[1:]
	return val, nil
}

func (s *stubDriver) Password(_ context.Context, cfg InputConfig) (string, error) {
	s.asked = append(s.asked, cfg.Message)
	if len(s.passwords) == 0 {
		return "", errors.New("no password scripted")
	}
	val := s.passwords[0]
	s.passwords = s.passwords[1:]
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, cfg ConfirmConfig) (bool, error) {
	s.asked = append(s.asked, cfg.Message)
	if len(s.confirm) == 0 {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirm[0]
	s.confirm = s.confirm[1:]
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	s.asked = append(s.asked, cfg.Message)
	if len(s.selectIdx) == 0 {
		return -1, errors.New("no select scripted")
	}
	val := s.selectIdx[0]
	s.selectIdx = s.selectIdx[1:]
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.info = append(s.info, msg)
	return nil
}

func newSignupForm(t *testing.T, submit orchestrator.SubmitFunc) *orchestrator.Form {
	t.Helper()
	if submit == nil {
		submit = func(context.Context, model.Values) error { return nil }
	}
	form, err := orchestrator.New(orchestrator.Props{Fields: testsupport.SignupFields(t), OnSubmit: submit})
	if err != nil {
		t.Fatalf("new form: %v", err)
	}
	return form
}

func TestSession_AsksConditionalFieldOnceVisible(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"user@example.com", "NY"},
		passwords: []string{"s3cret-pass"},
		selectIdx: []int{0},
	}
	var out bytes.Buffer
	session := NewSession(WithPromptDriver(driver), WithOutput(&out))

	result, err := session.Run(context.Background(), newSignupForm(t, nil))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !result.OK() {
		t.Fatalf("expected submitted outcome, got %s", result.Outcome)
	}

	if diff := cmp.Diff([]string{"Email", "Password", "Country", "State"}, driver.asked); diff != "" {
		t.Fatalf("prompt order mismatch (-want +got):\n%s", diff)
	}
	want := `{"country":"US","email":"user@example.com","password":"s3cret-pass","state":"NY"}` + "\n"
	if out.String() != want {
		t.Fatalf("output mismatch\nwant: %q\n got: %q", want, out.String())
	}
}

func TestSession_SkipsHiddenField(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"user@example.com"},
		passwords: []string{"s3cret-pass"},
		selectIdx: []int{1},
	}
	var out bytes.Buffer
	session := NewSession(WithPromptDriver(driver), WithOutput(&out), WithOutputFormat(OutputFormatPrettyText))

	if _, err := session.Run(context.Background(), newSignupForm(t, nil)); err != nil {
		t.Fatalf("run: %v", err)
	}
	if diff := cmp.Diff([]string{"Email", "Password", "Country"}, driver.asked); diff != "" {
		t.Fatalf("prompt order mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(out.String(), "country=CA\n") {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestSession_ReasksInvalidFields(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"not-an-email", "user@example.com"},
		passwords: []string{"s3cret-pass"},
		selectIdx: []int{1},
	}
	session := NewSession(WithPromptDriver(driver))

	result, err := session.Run(context.Background(), newSignupForm(t, nil))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !result.OK() {
		t.Fatalf("expected submitted outcome, got %s", result.Outcome)
	}
	if diff := cmp.Diff([]string{"Email", "Password", "Country", "Email"}, driver.asked); diff != "" {
		t.Fatalf("prompt order mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"✗ Email: Invalid email"}, driver.info); diff != "" {
		t.Fatalf("info mismatch (-want +got):\n%s", diff)
	}
}

func TestSession_GivesUpAfterMaxAttempts(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"nope"},
		passwords: []string{"s3cret-pass"},
		selectIdx: []int{1},
	}
	session := NewSession(WithPromptDriver(driver), WithMaxAttempts(1))

	result, err := session.Run(context.Background(), newSignupForm(t, nil))
	if !errors.Is(err, ErrTooManyAttempts) {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}
	if result.Outcome != orchestrator.OutcomeInvalid {
		t.Fatalf("expected invalid outcome, got %s", result.Outcome)
	}
}

func TestSession_SubmitFailureIsReportedNotReturned(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"user@example.com"},
		passwords: []string{"s3cret-pass"},
		selectIdx: []int{1},
	}
	var out bytes.Buffer
	session := NewSession(WithPromptDriver(driver), WithOutput(&out))

	result, err := session.Run(context.Background(), newSignupForm(t, func(context.Context, model.Values) error {
		return errors.New("backend down")
	}))
	if err != nil {
		t.Fatalf("submit failures must not surface as errors: %v", err)
	}
	if result.Outcome != orchestrator.OutcomeFailed {
		t.Fatalf("expected failed outcome, got %s", result.Outcome)
	}
	if out.Len() != 0 {
		t.Fatalf("nothing should be written on failure, got %q", out.String())
	}
	if len(driver.info) != 1 || !strings.Contains(driver.info[0], "Submission failed") {
		t.Fatalf("unexpected info %v", driver.info)
	}
}

func TestSession_DeclinedConfirmAborts(t *testing.T) {
	calls := 0
	driver := &stubDriver{
		inputs:    []string{"user@example.com"},
		passwords: []string{"s3cret-pass"},
		selectIdx: []int{1},
		confirm:   []bool{false},
	}
	session := NewSession(WithPromptDriver(driver), WithConfirm(true))

	_, err := session.Run(context.Background(), newSignupForm(t, func(context.Context, model.Values) error {
		calls++
		return nil
	}))
	if !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
	if calls != 0 {
		t.Fatalf("callback must not run after declining")
	}
}

func TestSession_UnsupportedFieldsAreSkipped(t *testing.T) {
	fields := model.MustFieldList(
		model.Field{Name: "name", Label: "Name"},
		model.Field{Name: "terms", Label: "Terms", Kind: model.KindCheckbox},
	)
	form, err := orchestrator.New(orchestrator.Props{Fields: fields, OnSubmit: func(context.Context, model.Values) error { return nil }})
	if err != nil {
		t.Fatalf("new form: %v", err)
	}
	driver := &stubDriver{inputs: []string{"Ada"}}

	if _, err := NewSession(WithPromptDriver(driver)).Run(context.Background(), form); err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(driver.info) != 1 || !strings.Contains(driver.info[0], "Skipping Terms") {
		t.Fatalf("expected skip notice, got %v", driver.info)
	}
}

func TestFieldValidator(t *testing.T) {
	form := newSignupForm(t, nil)
	validate := fieldValidator(form, "email")

	if err := validate("bad"); err == nil || err.Error() != "Invalid email" {
		t.Fatalf("expected Invalid email, got %v", err)
	}
	if err := validate("user@example.com"); err != nil {
		t.Fatalf("expected valid email, got %v", err)
	}
}

type brokenSchemaForm struct {
	Form
	schema *validation.Schema
	err    error
}

func (b brokenSchemaForm) Schema() (*validation.Schema, error) { return b.schema, b.err }

func TestFieldValidator_RejectsWhenSchemaUnavailable(t *testing.T) {
	form := newSignupForm(t, nil)
	buildErr := errors.New("schema compile failed")

	cases := map[string]struct {
		form Form
		want error
	}{
		"schema build error": {form: brokenSchemaForm{Form: form, err: buildErr}, want: buildErr},
		"schema not built":   {form: brokenSchemaForm{Form: form}, want: validation.ErrSchemaNotBuilt},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			err := fieldValidator(tc.form, "email")("user@example.com")
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			if !strings.Contains(err.Error(), "email") {
				t.Fatalf("expected field name in error, got %v", err)
			}
		})
	}
}
