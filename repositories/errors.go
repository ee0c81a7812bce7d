package repositories

import "errors"

var (
	// ErrNotFound is returned when an id does not resolve to a stored record.
	ErrNotFound = errors.New("not found")
	// ErrValidation is returned when a required field is missing or malformed.
	ErrValidation = errors.New("validation failed")
)
