// Package validation derives a validation schema from a field list and checks
// form values against it. Rules are JSON Schema fragments; the compiled schema
// is evaluated with gojsonschema so the same document can be shipped to
// clients for browser-side checks.
package validation
