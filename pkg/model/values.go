package model

import (
	"fmt"
	"sort"
)

// Values maps field names to their current input values.
type Values map[string]any

// Clone returns a shallow copy so predicates cannot mutate controller state.
func (v Values) Clone() Values {
	out := make(Values, len(v))
	for key, value := range v {
		out[key] = value
	}
	return out
}

// String returns the value under name formatted as a string. Missing and nil
// values yield "".
func (v Values) String(name string) string {
	raw, ok := v[name]
	if !ok || raw == nil {
		return ""
	}
	if s, ok := raw.(string); ok {
		return s
	}
	return fmt.Sprint(raw)
}

// Keys returns the sorted value names.
func (v Values) Keys() []string {
	keys := make([]string, 0, len(v))
	for key := range v {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
