package render

// RenderOptions describe per-request data that renderers can use to customise
// their output without changing the view.
type RenderOptions struct {
	// Action and Method populate the form element. Method defaults to POST.
	Action string
	Method string
	// Hidden carries extra inputs such as CSRF tokens.
	Hidden []HiddenField
	// Locale and Translator localize labels, placeholders and the submit
	// button. A nil Translator leaves text untouched.
	Locale     string
	Translator Translator
}
