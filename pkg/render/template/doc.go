// Package template defines the template engine contract renderers depend on.
package template
