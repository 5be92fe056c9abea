// Package httpform serves orchestrated forms over net/http.
//
// GET renders the form, POST copies the submitted fields into a fresh Form,
// submits it and re-renders with validation errors. Clients that send
// `Accept: application/json` receive the SubmitResult as JSON instead.
package httpform
