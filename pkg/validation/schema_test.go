package validation_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-dynform/pkg/model"
	"github.com/goliatone/go-dynform/pkg/validation"
)

func TestBuildSchema_KeySetMatchesFieldNames(t *testing.T) {
	t.Parallel()

	list := model.MustFieldList(
		model.Field{Name: "email", Kind: model.KindEmail, Rule: validation.Email()},
		model.Field{Name: "password", Kind: model.KindPassword, Rule: validation.String().MinLength(8)},
		model.Field{Name: "country", Kind: model.KindSelect},
	)

	schema, err := validation.BuildSchema(list)
	if err != nil {
		t.Fatalf("build schema: %v", err)
	}

	if diff := cmp.Diff([]string{"country", "email", "password"}, schema.Keys()); diff != "" {
		t.Fatalf("schema keys mismatch (-want +got):\n%s", diff)
	}
	if schema.ListID() != list.ID() {
		t.Fatalf("expected schema to remember list identity")
	}
}

func TestBuildSchema_MissingRuleAcceptsAnything(t *testing.T) {
	t.Parallel()

	schema, err := validation.BuildSchema(model.MustFieldList(model.Field{Name: "notes"}))
	if err != nil {
		t.Fatalf("build schema: %v", err)
	}

	rule, ok := schema.Rule("notes")
	if !ok {
		t.Fatalf("expected default rule for notes")
	}
	if diff := cmp.Diff(map[string]any{}, rule.JSONSchema()); diff != "" {
		t.Fatalf("default rule mismatch (-want +got):\n%s", diff)
	}

	for _, value := range []any{"", "text", 42, true, nil, []any{"a"}} {
		errs, err := schema.Validate(model.Values{"notes": value})
		if err != nil {
			t.Fatalf("validate %v: %v", value, err)
		}
		if !errs.Empty() {
			t.Fatalf("expected %v to be accepted, got %v", value, errs)
		}
	}
}

func TestBuildSchema_DuplicateNamesLastRuleWins(t *testing.T) {
	t.Parallel()

	list := model.MustFieldList(
		model.Field{Name: "code", Rule: validation.String().MinLength(10)},
		model.Field{Name: "code", Rule: validation.String().MaxLength(2)},
	)
	schema, err := validation.BuildSchema(list)
	if err != nil {
		t.Fatalf("build schema: %v", err)
	}

	if diff := cmp.Diff([]string{"code"}, schema.Keys()); diff != "" {
		t.Fatalf("schema keys mismatch (-want +got):\n%s", diff)
	}
	rule, _ := schema.Rule("code")
	if diff := cmp.Diff(validation.String().MaxLength(2).JSONSchema(), rule.JSONSchema()); diff != "" {
		t.Fatalf("expected last rule (-want +got):\n%s", diff)
	}

	errs, err := schema.Validate(model.Values{"code": "ab"})
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !errs.Empty() {
		t.Fatalf("expected first rule to be overwritten, got %v", errs)
	}
}

func TestBuildSchema_EmptyListValidatesEmptyValues(t *testing.T) {
	t.Parallel()

	for _, list := range []*model.FieldList{nil, model.MustFieldList()} {
		schema, err := validation.BuildSchema(list)
		if err != nil {
			t.Fatalf("build schema: %v", err)
		}
		if len(schema.Keys()) != 0 {
			t.Fatalf("expected empty schema, got %v", schema.Keys())
		}
		errs, err := schema.Validate(model.Values{})
		if err != nil || !errs.Empty() {
			t.Fatalf("expected empty values to pass, errs=%v err=%v", errs, err)
		}
	}
}

func TestSchemaValidate_EmailScenarios(t *testing.T) {
	t.Parallel()

	schema, err := validation.BuildSchema(model.MustFieldList(
		model.Field{Name: "email", Kind: model.KindEmail, Rule: validation.Email()},
	))
	if err != nil {
		t.Fatalf("build schema: %v", err)
	}

	errs, err := schema.Validate(model.Values{"email": "not-an-email"})
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if diff := cmp.Diff([]string{"email"}, errs.Fields()); diff != "" {
		t.Fatalf("error fields mismatch (-want +got):\n%s", diff)
	}
	if errs["email"] == "" {
		t.Fatalf("expected a message for email")
	}

	errs, err = schema.Validate(model.Values{"email": "a@b.com"})
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !errs.Empty() {
		t.Fatalf("expected valid email, got %v", errs)
	}
}

func TestSchemaValidate_CustomMessageAndRequired(t *testing.T) {
	t.Parallel()

	schema, err := validation.BuildSchema(model.MustFieldList(
		model.Field{Name: "username", Rule: validation.String().MinLength(3).Message("Username is too short")},
		model.Field{Name: "terms", Rule: validation.Any().Required().Message("Accept the terms")},
		model.Field{Name: "name", Rule: validation.String().Required()},
	))
	if err != nil {
		t.Fatalf("build schema: %v", err)
	}

	errs, err := schema.Validate(model.Values{"username": "ab", "name": ""})
	if err != nil {
		t.Fatalf("validate: %v", err)
	}

	if diff := cmp.Diff([]string{"name", "terms", "username"}, errs.Fields()); diff != "" {
		t.Fatalf("error fields mismatch (-want +got):\n%s", diff)
	}
	if errs["username"] != "Username is too short" {
		t.Fatalf("unexpected username message %q", errs["username"])
	}
	if errs["terms"] != "Accept the terms" {
		t.Fatalf("unexpected terms message %q", errs["terms"])
	}
}

func TestSchemaValidate_UntypedRequiredRejectsEmpty(t *testing.T) {
	t.Parallel()

	for _, rule := range []validation.Rule{validation.Any().Required(), mustSpec(t, "required")} {
		schema, err := validation.BuildSchema(model.MustFieldList(model.Field{Name: "nickname", Rule: rule}))
		if err != nil {
			t.Fatalf("build schema: %v", err)
		}

		errs, err := schema.Validate(model.Values{"nickname": ""})
		if err != nil {
			t.Fatalf("validate: %v", err)
		}
		if errs["nickname"] != "nickname is required" {
			t.Fatalf("expected required message for empty nickname, got %v", errs)
		}

		errs, err = schema.Validate(model.Values{"nickname": "ada"})
		if err != nil {
			t.Fatalf("validate: %v", err)
		}
		if !errs.Empty() {
			t.Fatalf("expected non-empty value to pass, got %v", errs)
		}
	}
}

func mustSpec(t *testing.T, specs ...string) validation.Rule {
	t.Helper()
	rule, err := validation.FromSpec(specs...)
	if err != nil {
		t.Fatalf("from spec %v: %v", specs, err)
	}
	return rule
}

func TestSchemaDocument(t *testing.T) {
	t.Parallel()

	schema, err := validation.BuildSchema(model.MustFieldList(
		model.Field{Name: "email", Rule: validation.Email().Required()},
		model.Field{Name: "role", Rule: validation.String().OneOf("admin", "user")},
	))
	if err != nil {
		t.Fatalf("build schema: %v", err)
	}

	want := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"email": map[string]any{"type": "string", "format": "email", "minLength": 1},
			"role":  map[string]any{"type": "string", "enum": []any{"admin", "user"}},
		},
		"required": []any{"email"},
	}
	if diff := cmp.Diff(want, schema.Document()); diff != "" {
		t.Fatalf("document mismatch (-want +got):\n%s", diff)
	}
}

func TestRuleChainingDoesNotMutateReceiver(t *testing.T) {
	t.Parallel()

	base := validation.String()
	_ = base.MinLength(4).Required().Message("x")

	if diff := cmp.Diff(map[string]any{"type": "string"}, base.JSONSchema()); diff != "" {
		t.Fatalf("base rule mutated (-want +got):\n%s", diff)
	}
	if base.IsRequired() || base.ErrorMessage() != "" {
		t.Fatalf("base rule flags mutated")
	}
}
