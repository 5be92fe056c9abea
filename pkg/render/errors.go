package render

import "errors"

var (
	// ErrRendererNotFound is returned when a registry lookup misses.
	ErrRendererNotFound = errors.New("render: renderer not found")
	// ErrDuplicateRenderer is returned when a name is registered twice.
	ErrDuplicateRenderer = errors.New("render: renderer already registered")
	// ErrInvalidRenderer is returned for nil or unnamed renderers.
	ErrInvalidRenderer = errors.New("render: invalid renderer")
)
