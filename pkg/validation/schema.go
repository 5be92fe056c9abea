package validation

import (
	"fmt"
	"sort"

	"github.com/xeipuuv/gojsonschema"

	"github.com/goliatone/go-dynform/pkg/model"
)

const rootProperty = "(root)"

type requiredRule interface {
	IsRequired() bool
}

type messageRule interface {
	ErrorMessage() string
}

// Schema is the validation schema derived from a field list: one rule per
// field name, compiled once into a gojsonschema document.
type Schema struct {
	listID   string
	rules    map[string]model.Rule
	document map[string]any
	compiled *gojsonschema.Schema
}

// BuildSchema folds the descriptors left to right into a schema keyed by
// field name. Descriptors without a rule accept anything; duplicate names
// keep the last rule. An empty or nil list yields a schema that accepts an
// empty value set.
func BuildSchema(fields *model.FieldList) (*Schema, error) {
	rules := make(map[string]model.Rule, fields.Len())
	fields.Each(func(field model.Field) {
		if field.Rule == nil {
			rules[field.Name] = Any()
			return
		}
		rules[field.Name] = field.Rule
	})

	names := make([]string, 0, len(rules))
	for name := range rules {
		names = append(names, name)
	}
	sort.Strings(names)

	properties := make(map[string]any, len(rules))
	required := make([]any, 0)
	for _, name := range names {
		rule := rules[name]
		node := rule.JSONSchema()
		if node == nil {
			node = map[string]any{}
		}
		properties[name] = node
		if rr, ok := rule.(requiredRule); ok && rr.IsRequired() {
			required = append(required, name)
		}
	}

	document := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		document["required"] = required
	}

	compiled, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(document))
	if err != nil {
		return nil, fmt.Errorf("validation: compile schema: %w", err)
	}

	return &Schema{
		listID:   fields.ID(),
		rules:    rules,
		document: document,
		compiled: compiled,
	}, nil
}

// ListID returns the identity token of the field list the schema was built
// from.
func (s *Schema) ListID() string {
	if s == nil {
		return ""
	}
	return s.listID
}

// Keys returns the sorted field names covered by the schema.
func (s *Schema) Keys() []string {
	if s == nil {
		return nil
	}
	keys := make([]string, 0, len(s.rules))
	for key := range s.rules {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Rule returns the rule registered for name.
func (s *Schema) Rule(name string) (model.Rule, bool) {
	if s == nil {
		return nil, false
	}
	rule, ok := s.rules[name]
	return rule, ok
}

// Document returns the JSON Schema the validator was compiled from.
func (s *Schema) Document() map[string]any {
	if s == nil {
		return nil
	}
	return cloneNode(s.document)
}

// Validate checks values against the schema. Rule failures are reported as
// FieldErrors; the error return is reserved for values the validator cannot
// process at all.
func (s *Schema) Validate(values model.Values) (FieldErrors, error) {
	if s == nil || s.compiled == nil {
		return nil, ErrSchemaNotBuilt
	}
	if values == nil {
		values = model.Values{}
	}

	result, err := s.compiled.Validate(gojsonschema.NewGoLoader(map[string]any(values)))
	if err != nil {
		return nil, fmt.Errorf("validation: validate values: %w", err)
	}
	if result.Valid() {
		return nil, nil
	}

	errs := make(FieldErrors)
	for _, issue := range result.Errors() {
		field := fieldFromResult(issue)
		if _, exists := errs[field]; exists {
			continue
		}
		errs[field] = s.messageFor(field, issue)
	}
	return errs, nil
}

func (s *Schema) messageFor(field string, issue gojsonschema.ResultError) string {
	if rule, ok := s.rules[field]; ok {
		if mr, ok := rule.(messageRule); ok && mr.ErrorMessage() != "" {
			return mr.ErrorMessage()
		}
	}
	if issue.Type() == "number_not" && s.required(field) {
		return fmt.Sprintf("%s is required", field)
	}
	return issue.Description()
}

func (s *Schema) required(field string) bool {
	rule, ok := s.rules[field]
	if !ok {
		return false
	}
	rr, ok := rule.(requiredRule)
	return ok && rr.IsRequired()
}

func fieldFromResult(issue gojsonschema.ResultError) string {
	if issue.Type() == "required" {
		if property, ok := issue.Details()["property"].(string); ok && property != "" {
			return property
		}
	}
	field := issue.Field()
	if field == rootProperty || field == "" {
		return FormLevel
	}
	return field
}
