package tui

import "io"

// OutputFormat controls how submitted values are serialized.
type OutputFormat string

const (
	// OutputFormatJSON emits application/json payloads.
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatFormURLEncoded emits application/x-www-form-urlencoded payloads.
	OutputFormatFormURLEncoded OutputFormat = "form"
	// OutputFormatPrettyText emits one name=value line per field.
	OutputFormatPrettyText OutputFormat = "pretty"
)

// ParseOutputFormat maps a config string to an OutputFormat. Empty selects
// JSON.
func ParseOutputFormat(raw string) (OutputFormat, bool) {
	switch OutputFormat(raw) {
	case "", OutputFormatJSON:
		return OutputFormatJSON, true
	case OutputFormatFormURLEncoded, OutputFormatPrettyText:
		return OutputFormat(raw), true
	default:
		return "", false
	}
}

// Theme captures message prefixes the session prints through the driver.
type Theme struct {
	InfoPrefix  string
	ErrorPrefix string
}

// Option configures a Session.
type Option func(*Session)

// WithPromptDriver overrides the prompt driver.
func WithPromptDriver(driver PromptDriver) Option {
	return func(s *Session) {
		if driver != nil {
			s.driver = driver
		}
	}
}

// WithOutputFormat selects the output serialization format.
func WithOutputFormat(format OutputFormat) Option {
	return func(s *Session) {
		if format != "" {
			s.format = format
		}
	}
}

// WithOutput writes the submitted values to w after a successful submit.
func WithOutput(w io.Writer) Option {
	return func(s *Session) {
		s.out = w
	}
}

// WithMaxAttempts bounds how many validation rounds run before giving up.
func WithMaxAttempts(n int) Option {
	return func(s *Session) {
		if n > 0 {
			s.maxAttempts = n
		}
	}
}

// WithConfirm asks for confirmation before submitting.
func WithConfirm(enabled bool) Option {
	return func(s *Session) {
		s.confirm = enabled
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(s *Session) {
		s.theme = theme
	}
}
