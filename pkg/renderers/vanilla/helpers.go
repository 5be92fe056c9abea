package vanilla

import "strings"

func controlID(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ""
	}
	return "df-" + strings.Join(strings.Fields(trimmed), "-")
}

func normalizeMethod(method string) string {
	method = strings.ToUpper(strings.TrimSpace(method))
	switch method {
	case "GET", "POST":
		return method
	default:
		return "POST"
	}
}
