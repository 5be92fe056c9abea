package vanilla

// Classes holds the CSS classes for the chrome around each control. The form,
// input and button classes come from the view itself.
type Classes struct {
	Field      string
	Label      string
	Error      string
	ErrorInput string
	FormErrors string
	Actions    string
}

// DefaultClasses mirror the Tailwind utility classes the view defaults use.
func DefaultClasses() Classes {
	return Classes{
		Label:      "block text-sm font-medium text-gray-700 mb-1",
		Error:      "text-sm mt-1 text-red-500 animate-pulse",
		ErrorInput: "border-red-500 focus:ring-red-500",
		FormErrors: "col-span-2 text-sm text-red-500",
		Actions:    "pt-2",
	}
}

func (c Classes) payload() map[string]any {
	return map[string]any{
		"field":       c.Field,
		"label":       c.Label,
		"error":       c.Error,
		"form_errors": c.FormErrors,
		"actions":     c.Actions,
	}
}
