package booking

import (
	"errors"
	"fmt"
)

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("booking not found")
)

// FieldErrors carries the per-field failures of a rejected submission
// so handlers can echo them back to the client.
type FieldErrors struct {
	Fields map[string]string
}

func (e *FieldErrors) Error() string {
	return fmt.Sprintf("%v: %v", ErrValidation, e.Fields)
}

func (e *FieldErrors) Unwrap() error { return ErrValidation }
