package model

import (
	"fmt"
	"strings"
)

// Kind enumerates the control kinds a descriptor can declare.
type Kind string

const (
	KindText     Kind = "text"
	KindEmail    Kind = "email"
	KindPassword Kind = "password"
	KindSelect   Kind = "select"
	KindRadio    Kind = "radio"
	KindCheckbox Kind = "checkbox"
)

var knownKinds = map[Kind]struct{}{
	KindText:     {},
	KindEmail:    {},
	KindPassword: {},
	KindSelect:   {},
	KindRadio:    {},
	KindCheckbox: {},
}

// ParseKind normalises raw into a Kind, returning ErrUnknownKind for values
// outside the enumeration.
func ParseKind(raw string) (Kind, error) {
	kind := Kind(strings.ToLower(strings.TrimSpace(raw)))
	if kind == "" {
		return KindText, nil
	}
	if _, ok := knownKinds[kind]; !ok {
		return "", fmt.Errorf("model: %w %q", ErrUnknownKind, raw)
	}
	return kind, nil
}

// TextLike reports whether the kind renders as a single-line input.
func (k Kind) TextLike() bool {
	switch k {
	case KindText, KindEmail, KindPassword:
		return true
	default:
		return false
	}
}

// NeedsOptions reports whether the kind requires an options list.
func (k Kind) NeedsOptions() bool {
	return k == KindSelect || k == KindRadio
}

// Option is a single value/label pair offered by select and radio controls.
type Option struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label" yaml:"label"`
}

// Rule is an opaque validation node attached to a field. Implementations live
// in the validation package; the model only needs to carry them around.
type Rule interface {
	JSONSchema() map[string]any
}

// Predicate decides whether a field is visible for the current values.
type Predicate func(Values) bool

// Field describes a single form control.
type Field struct {
	Name  string
	Label string
	Kind  Kind
	// Rule validates the field value. Nil accepts anything.
	Rule    Rule
	Options []Option
	// Conditional hides the field when it returns false.
	Conditional Predicate
	// VisibleWhen is the expression form of Conditional used by file based
	// definitions. Conditional wins when both are set.
	VisibleWhen string
	// ClassName overrides the input style for option based controls.
	ClassName   string
	Placeholder string
}

// Conditioned reports whether the field carries any visibility rule.
func (f Field) Conditioned() bool {
	return f.Conditional != nil || strings.TrimSpace(f.VisibleWhen) != ""
}
