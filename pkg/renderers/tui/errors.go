package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C) or declined to
	// submit.
	ErrAborted = errors.New("tui: aborted")
	// ErrTooManyAttempts is returned when the values still fail validation
	// after the configured number of rounds.
	ErrTooManyAttempts = errors.New("tui: too many invalid attempts")
)
