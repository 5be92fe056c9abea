package tui

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/goccy/go-json"

	"github.com/goliatone/go-dynform/pkg/model"
)

// Encode serializes values in the requested format. Keys are emitted in
// sorted order for every format.
func Encode(values model.Values, format OutputFormat) ([]byte, error) {
	switch format {
	case OutputFormatFormURLEncoded:
		form := url.Values{}
		for _, key := range values.Keys() {
			form.Set(key, values.String(key))
		}
		return []byte(form.Encode()), nil
	case OutputFormatPrettyText:
		var b strings.Builder
		for _, key := range values.Keys() {
			fmt.Fprintf(&b, "%s=%s\n", key, values.String(key))
		}
		return []byte(b.String()), nil
	case OutputFormatJSON, "":
		out, err := json.Marshal(map[string]any(values))
		if err != nil {
			return nil, fmt.Errorf("tui: encode json: %w", err)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("tui: unknown output format %q", format)
	}
}

// ContentType reports the MIME type Encode produces for format.
func ContentType(format OutputFormat) string {
	switch format {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain; charset=utf-8"
	default:
		return "application/json"
	}
}
