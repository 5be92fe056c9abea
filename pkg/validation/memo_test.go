package validation_test

import (
	"testing"

	"github.com/goliatone/go-dynform/pkg/model"
	"github.com/goliatone/go-dynform/pkg/validation"
)

func TestMemo_RebuildsOnlyWhenIdentityChanges(t *testing.T) {
	t.Parallel()

	fields := []model.Field{{Name: "email", Rule: validation.Email()}}
	first := model.MustFieldList(fields...)

	var memo validation.Memo
	a, err := memo.Schema(first)
	if err != nil {
		t.Fatalf("schema: %v", err)
	}
	b, err := memo.Schema(first)
	if err != nil {
		t.Fatalf("schema: %v", err)
	}
	if a != b {
		t.Fatalf("expected cached schema for the same list")
	}
	if memo.Builds() != 1 {
		t.Fatalf("expected one build, got %d", memo.Builds())
	}

	// Same contents, new identity.
	second := model.MustFieldList(fields...)
	c, err := memo.Schema(second)
	if err != nil {
		t.Fatalf("schema: %v", err)
	}
	if c == a {
		t.Fatalf("expected a new schema for a new list identity")
	}
	if memo.Builds() != 2 {
		t.Fatalf("expected two builds, got %d", memo.Builds())
	}
}
