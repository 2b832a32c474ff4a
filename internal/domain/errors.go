package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists indicates a uniqueness constraint was violated.
	ErrAlreadyExists = errors.New("already exists")
	// ErrInvalidInput marks validation failures at the input layer.
	ErrInvalidInput = errors.New("invalid input")
	// ErrConflict indicates the entity is in a state that forbids the operation.
	ErrConflict = errors.New("conflict")
	// ErrMissingRelation is returned when a derived value needs a related record that is not loaded.
	ErrMissingRelation = errors.New("missing related record")
)

// Invalid builds an ErrInvalidInput error with a message for the caller.
func Invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrInvalidInput}, args...)...)
}
