package validation

import (
	"sync"

	"github.com/goliatone/go-dynform/pkg/model"
)

// Memo caches the schema of the most recent field list. The cache is keyed by
// the list identity token, never by descriptor contents, so value changes and
// unrelated re-renders reuse the compiled schema.
type Memo struct {
	mu     sync.Mutex
	schema *Schema
	builds int
}

// Schema returns the cached schema for fields, building it when the list
// identity differs from the cached one.
func (m *Memo) Schema(fields *model.FieldList) (*Schema, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.schema != nil && m.schema.ListID() == fields.ID() {
		return m.schema, nil
	}

	schema, err := BuildSchema(fields)
	if err != nil {
		return nil, err
	}
	m.schema = schema
	m.builds++
	return schema, nil
}

// Builds reports how many times the memo compiled a schema.
func (m *Memo) Builds() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.builds
}
