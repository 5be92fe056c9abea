package model

import "errors"

var (
	// ErrUnknownKind is returned when a descriptor declares a kind outside the
	// supported enumeration.
	ErrUnknownKind = errors.New("unknown field kind")
	// ErrEmptyName is returned when a descriptor has no name.
	ErrEmptyName = errors.New("field name is required")
)
