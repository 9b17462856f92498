package wizard

import "errors"

var (
	// ErrUnknownField is returned when a form write targets a field name
	// outside the closed set of known fields
	ErrUnknownField = errors.New("unknown form field")
)
