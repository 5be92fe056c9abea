// Package orchestrator drives a single dynamic form: it derives the validation
// schema from the field list, tracks submission state, evaluates conditional
// visibility against the live values and hands a render.View to renderers.
package orchestrator
