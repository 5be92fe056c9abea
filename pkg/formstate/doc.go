// Package formstate holds the live values and per-field errors of a form.
//
// The Controller is headless: renderers read snapshots from it and the
// orchestrator writes validation results back into it. Subscribers are
// notified after every change with a copy of the current values.
package formstate
