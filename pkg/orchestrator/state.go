package orchestrator

import (
	"github.com/goliatone/go-dynform/pkg/model"
	"github.com/goliatone/go-dynform/pkg/validation"
)

// State is the submission state of a Form.
type State int32

const (
	StateIdle State = iota
	StateSubmitting
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSubmitting:
		return "submitting"
	default:
		return "unknown"
	}
}

// Outcome classifies a Submit call.
type Outcome string

const (
	// OutcomeSubmitted means the callback ran and returned nil.
	OutcomeSubmitted Outcome = "submitted"
	// OutcomeInvalid means validation failed; the callback did not run.
	OutcomeInvalid Outcome = "invalid"
	// OutcomeFailed means the callback returned an error or panicked. The
	// failure is logged and never shown in the view.
	OutcomeFailed Outcome = "failed"
	// OutcomeBusy means another submission was still in flight.
	OutcomeBusy Outcome = "busy"
)

// SubmitResult reports what a Submit call did.
type SubmitResult struct {
	Outcome Outcome
	// Values is the map handed to the callback, or the values that failed
	// validation.
	Values model.Values
	Errors validation.FieldErrors
	// Err holds the swallowed callback failure for OutcomeFailed.
	Err error
}

// OK reports whether the callback ran successfully.
func (r SubmitResult) OK() bool { return r.Outcome == OutcomeSubmitted }
