package errors

import (
	"errors"
	"fmt"
)

// DuplicateColumnError indicates that two header fields resolved to the
// same column name, which the relation schema cannot represent.
type DuplicateColumnError struct {
	Column string
}

func (e *DuplicateColumnError) Error() string {
	return fmt.Sprintf("duplicate column name %q in header", e.Column)
}

// NewDuplicateColumnError creates a DuplicateColumnError for the given column name.
func NewDuplicateColumnError(column string) *DuplicateColumnError {
	return &DuplicateColumnError{Column: column}
}

// IsDuplicateColumnError reports whether err is a DuplicateColumnError (even when wrapped).
func IsDuplicateColumnError(err error) bool {
	var dupErr *DuplicateColumnError
	return errors.As(err, &dupErr)
}
