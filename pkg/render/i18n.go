package render

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingTranslation is returned by translators that have no entry for a
// key.
var ErrMissingTranslation = errors.New("render: missing translation")

// Translator resolves a message key for a locale. Keys are the source text
// shown in the default view ("Email", "Submit").
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

// Catalog is an in-memory Translator keyed by locale then source text.
type Catalog map[string]map[string]string

// Translate implements Translator. Locales fall back from "es-MX" to "es".
func (c Catalog) Translate(locale, key string, args ...any) (string, error) {
	for _, candidate := range localeChain(locale) {
		if msg, ok := c[candidate][key]; ok && strings.TrimSpace(msg) != "" {
			if len(args) > 0 {
				return fmt.Sprintf(msg, args...), nil
			}
			return msg, nil
		}
	}
	return "", fmt.Errorf("%w: %s/%s", ErrMissingTranslation, locale, key)
}

func localeChain(locale string) []string {
	locale = strings.TrimSpace(locale)
	if locale == "" {
		return nil
	}
	chain := []string{locale}
	if base, _, ok := strings.Cut(locale, "-"); ok && base != "" {
		chain = append(chain, base)
	}
	return chain
}

// Localize returns a copy of view with labels, placeholders, option labels,
// validation messages and the submit label translated. Text without a
// translation is kept as is.
func Localize(view View, locale string, t Translator) View {
	if t == nil {
		return view
	}

	out := view
	out.Fields = make([]FieldView, len(view.Fields))
	for i, field := range view.Fields {
		field.Label = translate(locale, field.Label, t)
		field.Placeholder = translate(locale, field.Placeholder, t)
		field.Error = translate(locale, field.Error, t)
		if len(field.Options) > 0 {
			options := append(field.Options[:0:0], field.Options...)
			for j := range options {
				options[j].Label = translate(locale, options[j].Label, t)
			}
			field.Options = options
		}
		out.Fields[i] = field
	}
	if len(view.FormErrors) > 0 {
		out.FormErrors = make([]string, len(view.FormErrors))
		for i, msg := range view.FormErrors {
			out.FormErrors[i] = translate(locale, msg, t)
		}
	}
	out.Submit.Label = translate(locale, view.Submit.Label, t)
	return out
}

func translate(locale, key string, t Translator) string {
	if strings.TrimSpace(key) == "" {
		return key
	}
	result, err := t.Translate(locale, key)
	if err != nil || strings.TrimSpace(result) == "" {
		return key
	}
	return result
}
