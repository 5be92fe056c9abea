// Package testsupport holds fixtures and helpers shared by package tests.
package testsupport

import (
	"bytes"
	"context"
	"io"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/goliatone/go-dynform/pkg/model"
	"github.com/goliatone/go-dynform/pkg/validation"
)

// CountryOptions are the select options used by SignupFields.
var CountryOptions = []model.Option{
	{Value: "US", Label: "United States"},
	{Value: "CA", Label: "Canada"},
	{Value: "MX", Label: "Mexico"},
}

// SignupFields returns the reference form: email, password, country and a
// state field that only shows for US addresses. Each call yields a new
// identity.
func SignupFields(t testing.TB) *model.FieldList {
	t.Helper()

	list, err := model.NewFieldList(
		model.Field{
			Name:        "email",
			Label:       "Email",
			Kind:        model.KindEmail,
			Rule:        validation.Email().Required().Message("Invalid email"),
			Placeholder: "you@example.com",
		},
		model.Field{
			Name:  "password",
			Label: "Password",
			Kind:  model.KindPassword,
			Rule:  validation.String().MinLength(8),
		},
		model.Field{
			Name:    "country",
			Label:   "Country",
			Kind:    model.KindSelect,
			Options: CountryOptions,
		},
		model.Field{
			Name:        "state",
			Label:       "State",
			Kind:        model.KindText,
			Conditional: func(v model.Values) bool { return v["country"] == "US" },
		},
	)
	if err != nil {
		t.Fatalf("signup fields: %v", err)
	}
	return list
}

// ObservedLogger returns a logger that records every entry at debug level and
// above, plus the observer used to assert on them.
func ObservedLogger() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return zap.New(core), logs
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CaptureTemplateOutput executes a render function that writes to an io.Writer,
// returning both the string result and the writer contents.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}

	return out, buf.String()
}
