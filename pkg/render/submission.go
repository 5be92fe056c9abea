package render

import (
	"fmt"
	"sort"
	"strings"
)

// HiddenField is an extra input emitted next to the visible fields.
type HiddenField struct {
	Name  string
	Value string
}

// Hidden returns a HiddenField for an arbitrary name/value pair.
func Hidden(name string, value any) HiddenField {
	return HiddenField{
		Name:  strings.TrimSpace(name),
		Value: fmt.Sprint(value),
	}
}

// CSRFToken is a Hidden field carrying token under name ("_csrf",
// "csrf_token", ...).
func CSRFToken(name, token string) HiddenField {
	return Hidden(name, token)
}

// NormalizeHidden drops unnamed entries, keeps the last value per name and
// sorts by name so output is deterministic.
func NormalizeHidden(fields ...HiddenField) []HiddenField {
	if len(fields) == 0 {
		return nil
	}
	byName := make(map[string]string, len(fields))
	for _, field := range fields {
		name := strings.TrimSpace(field.Name)
		if name == "" {
			continue
		}
		byName[name] = field.Value
	}
	if len(byName) == 0 {
		return nil
	}

	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]HiddenField, 0, len(names))
	for _, name := range names {
		out = append(out, HiddenField{Name: name, Value: byName[name]})
	}
	return out
}
