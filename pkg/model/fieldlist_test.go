package model_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-dynform/pkg/model"
)

func TestNewFieldList_AssignsDistinctIdentity(t *testing.T) {
	t.Parallel()

	fields := []model.Field{{Name: "email", Kind: model.KindEmail}}
	first := model.MustFieldList(fields...)
	second := model.MustFieldList(fields...)

	if first.ID() == "" {
		t.Fatalf("expected identity token")
	}
	if first.ID() == second.ID() {
		t.Fatalf("expected distinct identity tokens for distinct lists, got %q twice", first.ID())
	}
}

func TestNewFieldList_DefaultsAndValidation(t *testing.T) {
	t.Parallel()

	list, err := model.NewFieldList(model.Field{Name: "  nickname  "})
	if err != nil {
		t.Fatalf("new field list: %v", err)
	}
	field, ok := list.Lookup("nickname")
	if !ok {
		t.Fatalf("expected trimmed name to be indexed")
	}
	if field.Kind != model.KindText {
		t.Fatalf("expected default kind text, got %q", field.Kind)
	}

	if _, err := model.NewFieldList(model.Field{Name: " "}); !errors.Is(err, model.ErrEmptyName) {
		t.Fatalf("expected ErrEmptyName, got %v", err)
	}
	if _, err := model.NewFieldList(model.Field{Name: "x", Kind: "slider"}); !errors.Is(err, model.ErrUnknownKind) {
		t.Fatalf("expected ErrUnknownKind, got %v", err)
	}
}

func TestFieldList_DuplicatesKeepOrderAndLastWins(t *testing.T) {
	t.Parallel()

	list := model.MustFieldList(
		model.Field{Name: "a", Label: "first"},
		model.Field{Name: "b"},
		model.Field{Name: "a", Label: "second"},
	)

	if diff := cmp.Diff([]string{"a", "b"}, list.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	if list.Len() != 3 {
		t.Fatalf("expected duplicates to be retained, got %d", list.Len())
	}
	field, _ := list.Lookup("a")
	if field.Label != "second" {
		t.Fatalf("expected last descriptor to win, got %q", field.Label)
	}
}

func TestParseKind(t *testing.T) {
	t.Parallel()

	cases := map[string]model.Kind{
		"":          model.KindText,
		" Email ":   model.KindEmail,
		"SELECT":    model.KindSelect,
		"checkbox":  model.KindCheckbox,
		"password ": model.KindPassword,
	}
	for raw, want := range cases {
		got, err := model.ParseKind(raw)
		if err != nil {
			t.Fatalf("parse %q: %v", raw, err)
		}
		if got != want {
			t.Fatalf("parse %q: want %q got %q", raw, want, got)
		}
	}
	if _, err := model.ParseKind("date"); !errors.Is(err, model.ErrUnknownKind) {
		t.Fatalf("expected ErrUnknownKind, got %v", err)
	}
}

func TestValues_CloneIsolatesWrites(t *testing.T) {
	t.Parallel()

	original := model.Values{"country": "US", "age": 3}
	clone := original.Clone()
	clone["country"] = "CA"

	if original.String("country") != "US" {
		t.Fatalf("clone mutated original")
	}
	if original.String("age") != "3" {
		t.Fatalf("expected formatted value, got %q", original.String("age"))
	}
	if original.String("missing") != "" {
		t.Fatalf("expected empty string for missing value")
	}
}
