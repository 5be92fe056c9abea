package validation

import (
	"errors"
	"sort"
)

// FormLevel keys errors that do not belong to a single field.
const FormLevel = ""

// ErrSchemaNotBuilt is returned when validating through a nil schema.
var ErrSchemaNotBuilt = errors.New("validation: schema is not built")

// FieldErrors maps field names to the first failure message reported for
// them.
type FieldErrors map[string]string

// Empty reports whether no failures were recorded.
func (e FieldErrors) Empty() bool {
	return len(e) == 0
}

// Fields returns the failing field names in sorted order.
func (e FieldErrors) Fields() []string {
	names := make([]string, 0, len(e))
	for name := range e {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
