package errors

import (
	"errors"
	"fmt"
)

// UnknownColumnError indicates a projection request for a column name
// that is not part of the relation schema.
type UnknownColumnError struct {
	Column string
}

func (e *UnknownColumnError) Error() string {
	return fmt.Sprintf("unknown column %q", e.Column)
}

// NewUnknownColumnError creates an UnknownColumnError for the given column name.
func NewUnknownColumnError(column string) *UnknownColumnError {
	return &UnknownColumnError{Column: column}
}

// IsUnknownColumnError reports whether err is an UnknownColumnError (even when wrapped).
func IsUnknownColumnError(err error) bool {
	var colErr *UnknownColumnError
	return errors.As(err, &colErr)
}
