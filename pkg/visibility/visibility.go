// Package visibility decides which descriptors are shown for the current form
// values. Predicates attached to descriptors win; expression rules are handed
// to an Evaluator.
package visibility

import "github.com/goliatone/go-dynform/pkg/model"

// Evaluator determines whether a field should be visible based on a rule
// string and the current values.
type Evaluator interface {
	Eval(fieldName, rule string, ctx Context) (bool, error)
}

// Context provides inputs to an Evaluator. Values is a read-only snapshot of
// the form values; Extras lets callers inject data such as feature flags.
type Context struct {
	Values model.Values
	Extras map[string]any
}

// EvaluatorFunc adapts a function into an Evaluator.
type EvaluatorFunc func(fieldName, rule string, ctx Context) (bool, error)

// Eval delegates to the underlying function.
func (fn EvaluatorFunc) Eval(fieldName, rule string, ctx Context) (bool, error) {
	return fn(fieldName, rule, ctx)
}
