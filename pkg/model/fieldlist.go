package model

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// FieldList is an ordered, immutable set of descriptors. Its ID changes only
// when a new list is constructed, which makes it a cheap cache key.
type FieldList struct {
	id     string
	fields []Field
}

// NewFieldList copies fields into a new list with a fresh identity token.
// Names are trimmed and must be non-empty; duplicates are kept, later entries
// win wherever descriptors are indexed by name.
func NewFieldList(fields ...Field) (*FieldList, error) {
	out := make([]Field, 0, len(fields))
	for idx, field := range fields {
		field.Name = strings.TrimSpace(field.Name)
		if field.Name == "" {
			return nil, fmt.Errorf("model: field %d: %w", idx, ErrEmptyName)
		}
		if field.Kind == "" {
			field.Kind = KindText
		}
		if _, ok := knownKinds[field.Kind]; !ok {
			return nil, fmt.Errorf("model: field %q: %w %q", field.Name, ErrUnknownKind, field.Kind)
		}
		if len(field.Options) > 0 {
			field.Options = append([]Option(nil), field.Options...)
		}
		out = append(out, field)
	}
	return &FieldList{id: uuid.NewString(), fields: out}, nil
}

// MustFieldList panics when NewFieldList fails. Useful for static fixtures.
func MustFieldList(fields ...Field) *FieldList {
	list, err := NewFieldList(fields...)
	if err != nil {
		panic(err)
	}
	return list
}

// ID returns the identity token of the list.
func (l *FieldList) ID() string {
	if l == nil {
		return ""
	}
	return l.id
}

// Len returns the number of descriptors, duplicates included.
func (l *FieldList) Len() int {
	if l == nil {
		return 0
	}
	return len(l.fields)
}

// Fields returns a copy of the descriptors in render order.
func (l *FieldList) Fields() []Field {
	if l == nil {
		return nil
	}
	return append([]Field(nil), l.fields...)
}

// Each calls fn for every descriptor in order.
func (l *FieldList) Each(fn func(Field)) {
	if l == nil || fn == nil {
		return
	}
	for _, field := range l.fields {
		fn(field)
	}
}

// Names returns the distinct field names in first-seen order.
func (l *FieldList) Names() []string {
	if l == nil {
		return nil
	}
	seen := make(map[string]struct{}, len(l.fields))
	names := make([]string, 0, len(l.fields))
	for _, field := range l.fields {
		if _, ok := seen[field.Name]; ok {
			continue
		}
		seen[field.Name] = struct{}{}
		names = append(names, field.Name)
	}
	return names
}

// Lookup returns the last descriptor registered under name.
func (l *FieldList) Lookup(name string) (Field, bool) {
	if l == nil {
		return Field{}, false
	}
	for idx := len(l.fields) - 1; idx >= 0; idx-- {
		if l.fields[idx].Name == name {
			return l.fields[idx], true
		}
	}
	return Field{}, false
}
