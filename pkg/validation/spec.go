package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrInvalidSpec is returned when a declarative rule spec cannot be parsed.
var ErrInvalidSpec = errors.New("validation: invalid rule spec")

// FromSpec builds a Rule from declarative tokens as used by form definition
// files, for example ["email", "required"] or ["min:3", "max:20"].
//
// Supported tokens: any, string, email, required, min:N (minLength), max:N
// (maxLength), pattern:RE, oneOf:a|b|c, message:TEXT. Length and pattern
// constraints imply a string rule.
func FromSpec(specs ...string) (Rule, error) {
	base := ""
	var (
		steps    []func(Rule) Rule
		required bool
		message  string
	)

	for _, raw := range specs {
		token := strings.TrimSpace(raw)
		if token == "" {
			continue
		}
		key, arg, hasArg := strings.Cut(token, ":")
		key = strings.ToLower(strings.TrimSpace(key))

		switch key {
		case "any", "string", "email":
			if hasArg {
				return Rule{}, fmt.Errorf("%w: %q takes no argument", ErrInvalidSpec, token)
			}
			if base != "" && base != key {
				return Rule{}, fmt.Errorf("%w: conflicting types %q and %q", ErrInvalidSpec, base, key)
			}
			base = key
		case "required":
			required = true
		case "min", "minlength", "max", "maxlength":
			n, err := strconv.Atoi(strings.TrimSpace(arg))
			if !hasArg || err != nil || n < 0 {
				return Rule{}, fmt.Errorf("%w: %q expects a non-negative integer", ErrInvalidSpec, token)
			}
			if strings.HasPrefix(key, "min") {
				steps = append(steps, func(r Rule) Rule { return r.MinLength(n) })
			} else {
				steps = append(steps, func(r Rule) Rule { return r.MaxLength(n) })
			}
		case "pattern":
			if !hasArg || arg == "" {
				return Rule{}, fmt.Errorf("%w: %q expects an expression", ErrInvalidSpec, token)
			}
			if _, err := regexp.Compile(arg); err != nil {
				return Rule{}, fmt.Errorf("%w: %q: %v", ErrInvalidSpec, token, err)
			}
			steps = append(steps, func(r Rule) Rule { return r.Pattern(arg) })
		case "oneof", "enum":
			values := strings.Split(arg, "|")
			for idx := range values {
				values[idx] = strings.TrimSpace(values[idx])
			}
			if !hasArg || len(values) == 0 {
				return Rule{}, fmt.Errorf("%w: %q expects values", ErrInvalidSpec, token)
			}
			steps = append(steps, func(r Rule) Rule { return r.OneOf(values...) })
		case "message":
			message = strings.TrimSpace(arg)
		default:
			return Rule{}, fmt.Errorf("%w: unknown token %q", ErrInvalidSpec, token)
		}
	}

	if base == "" && len(steps) > 0 {
		base = "string"
	}

	var rule Rule
	switch base {
	case "email":
		rule = Email()
	case "string":
		rule = String()
	default:
		rule = Any()
	}
	for _, step := range steps {
		rule = step(rule)
	}
	if required {
		rule = rule.Required()
	}
	if message != "" {
		rule = rule.Message(message)
	}
	return rule, nil
}
