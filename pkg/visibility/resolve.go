package visibility

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-dynform/pkg/model"
)

// ErrNoEvaluator is reported when a descriptor carries an expression rule but
// no Evaluator was supplied.
var ErrNoEvaluator = errors.New("visibility: expression rule without evaluator")

// Visible reports whether field should be rendered for ctx. Descriptors
// without a rule are always visible. A rule that panics or fails hides the
// field; the cause is returned for diagnostics and must not abort rendering.
func Visible(field model.Field, ctx Context, evaluator Evaluator) (visible bool, err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			visible = false
			err = fmt.Errorf("visibility: field %q: rule panicked: %v", field.Name, recovered)
		}
	}()

	if field.Conditional != nil {
		return field.Conditional(ctx.Values.Clone()), nil
	}

	rule := strings.TrimSpace(field.VisibleWhen)
	if rule == "" {
		return true, nil
	}
	if evaluator == nil {
		return false, fmt.Errorf("visibility: field %q: %w", field.Name, ErrNoEvaluator)
	}

	snapshot := Context{Values: ctx.Values.Clone(), Extras: ctx.Extras}
	ok, evalErr := evaluator.Eval(field.Name, rule, snapshot)
	if evalErr != nil {
		return false, fmt.Errorf("visibility: field %q: %w", field.Name, evalErr)
	}
	return ok, nil
}
