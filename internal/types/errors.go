package types

import (
	"errors"
	"fmt"
)

// ErrDuplicate reports that a row with the same unique key already exists.
// Batch operations skip the row and continue.
var ErrDuplicate = errors.New("row already exists")

type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
