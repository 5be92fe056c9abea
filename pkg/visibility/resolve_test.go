package visibility_test

import (
	"errors"
	"testing"

	"github.com/goliatone/go-dynform/pkg/model"
	"github.com/goliatone/go-dynform/pkg/visibility"
	"github.com/goliatone/go-dynform/pkg/visibility/expr"
)

func TestVisible_NoRuleAlwaysVisible(t *testing.T) {
	t.Parallel()

	field := model.Field{Name: "email"}
	for _, values := range []model.Values{nil, {}, {"country": "US"}, {"email": ""}} {
		ok, err := visibility.Visible(field, visibility.Context{Values: values}, nil)
		if err != nil || !ok {
			t.Fatalf("expected unconditional field to be visible for %v, got %v %v", values, ok, err)
		}
	}
}

func TestVisible_PredicateTracksValues(t *testing.T) {
	t.Parallel()

	field := model.Field{
		Name:        "state",
		Conditional: func(v model.Values) bool { return v["country"] == "US" },
	}

	for country, want := range map[string]bool{"US": true, "CA": false, "": false} {
		got, err := visibility.Visible(field, visibility.Context{Values: model.Values{"country": country}}, nil)
		if err != nil {
			t.Fatalf("visible: %v", err)
		}
		if got != want {
			t.Fatalf("country %q: want %v got %v", country, want, got)
		}
	}
}

func TestVisible_PredicateCannotMutateValues(t *testing.T) {
	t.Parallel()

	values := model.Values{"country": "US"}
	field := model.Field{
		Name: "state",
		Conditional: func(v model.Values) bool {
			v["country"] = "hijacked"
			return true
		},
	}
	if _, err := visibility.Visible(field, visibility.Context{Values: values}, nil); err != nil {
		t.Fatalf("visible: %v", err)
	}
	if values["country"] != "US" {
		t.Fatalf("predicate mutated the caller's values")
	}
}

func TestVisible_PanickingPredicateHidesField(t *testing.T) {
	t.Parallel()

	field := model.Field{
		Name: "state",
		Conditional: func(v model.Values) bool {
			return v["country"].(string) == "US"
		},
	}

	ok, err := visibility.Visible(field, visibility.Context{Values: model.Values{}}, nil)
	if ok {
		t.Fatalf("expected panicking predicate to hide the field")
	}
	if err == nil {
		t.Fatalf("expected panic to be reported")
	}
}

func TestVisible_ExpressionRules(t *testing.T) {
	t.Parallel()

	field := model.Field{Name: "state", VisibleWhen: `country == "US"`}
	eval := expr.New()

	ok, err := visibility.Visible(field, visibility.Context{Values: model.Values{"country": "US"}}, eval)
	if err != nil || !ok {
		t.Fatalf("expected visible, got %v %v", ok, err)
	}

	if _, err := visibility.Visible(field, visibility.Context{}, nil); !errors.Is(err, visibility.ErrNoEvaluator) {
		t.Fatalf("expected ErrNoEvaluator, got %v", err)
	}

	broken := model.Field{Name: "state", VisibleWhen: `country = "US"`}
	ok, err = visibility.Visible(broken, visibility.Context{}, eval)
	if ok || err == nil {
		t.Fatalf("expected broken rule to hide the field with an error, got %v %v", ok, err)
	}
}

func TestVisible_ConditionalWinsOverExpression(t *testing.T) {
	t.Parallel()

	field := model.Field{
		Name:        "state",
		Conditional: func(model.Values) bool { return true },
		VisibleWhen: "false_flag",
	}
	ok, err := visibility.Visible(field, visibility.Context{}, visibility.EvaluatorFunc(func(string, string, visibility.Context) (bool, error) {
		t.Fatalf("evaluator must not run when a predicate is set")
		return false, nil
	}))
	if err != nil || !ok {
		t.Fatalf("expected predicate result, got %v %v", ok, err)
	}
}
