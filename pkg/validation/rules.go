package validation

import (
	"github.com/goliatone/go-dynform/pkg/model"
)

// Rule is an immutable JSON Schema fragment with form specific extras. Every
// chaining method returns a modified copy.
type Rule struct {
	node     map[string]any
	required bool
	message  string
}

var _ model.Rule = Rule{}

// Any accepts every value. It is the default for descriptors without a rule.
func Any() Rule {
	return Rule{node: map[string]any{}}
}

// String accepts string values.
func String() Rule {
	return Rule{node: map[string]any{"type": "string"}}
}

// Email accepts strings that parse as an RFC 5322 address.
func Email() Rule {
	return Rule{node: map[string]any{"type": "string", "format": "email"}}
}

// Bool accepts boolean values. Browser form posts carry strings, so it is
// meant for headless callers that set typed values.
func Bool() Rule {
	return Rule{node: map[string]any{"type": "boolean"}}
}

// Number accepts numeric values.
func Number() Rule {
	return Rule{node: map[string]any{"type": "number"}}
}

// Raw wraps an arbitrary JSON Schema node. The map is copied.
func Raw(node map[string]any) Rule {
	return Rule{node: cloneNode(node)}
}

// MinLength requires at least n characters.
func (r Rule) MinLength(n int) Rule {
	return r.with("minLength", n)
}

// MaxLength allows at most n characters.
func (r Rule) MaxLength(n int) Rule {
	return r.with("maxLength", n)
}

// Pattern requires the value to match the ECMA 262 regular expression.
func (r Rule) Pattern(expr string) Rule {
	return r.with("pattern", expr)
}

// OneOf restricts the value to the provided set.
func (r Rule) OneOf(values ...string) Rule {
	enum := make([]any, 0, len(values))
	for _, value := range values {
		enum = append(enum, value)
	}
	return r.with("enum", enum)
}

// Required marks the field as mandatory. Form controllers track every field
// with an empty string, so presence alone proves nothing: string rules get
// minLength 1 and untyped rules reject "" explicitly.
func (r Rule) Required() Rule {
	out := r.clone()
	out.required = true
	if out.node["type"] == "string" {
		if _, ok := out.node["minLength"]; !ok {
			out.node["minLength"] = 1
		}
		return out
	}
	if _, ok := out.node["not"]; !ok {
		out.node["not"] = map[string]any{"enum": []any{""}}
	}
	return out
}

// Message replaces the library description for every failure of this rule.
func (r Rule) Message(msg string) Rule {
	out := r.clone()
	out.message = msg
	return out
}

// IsRequired reports whether the rule was marked as required.
func (r Rule) IsRequired() bool { return r.required }

// ErrorMessage returns the custom failure message, if any.
func (r Rule) ErrorMessage() string { return r.message }

// JSONSchema returns a copy of the rule's JSON Schema node.
func (r Rule) JSONSchema() map[string]any {
	return cloneNode(r.node)
}

func (r Rule) with(key string, value any) Rule {
	out := r.clone()
	out.node[key] = value
	return out
}

func (r Rule) clone() Rule {
	return Rule{node: cloneNode(r.node), required: r.required, message: r.message}
}

func cloneNode(node map[string]any) map[string]any {
	out := make(map[string]any, len(node))
	for key, value := range node {
		switch v := value.(type) {
		case map[string]any:
			out[key] = cloneNode(v)
		case []any:
			out[key] = append([]any(nil), v...)
		default:
			out[key] = v
		}
	}
	return out
}
