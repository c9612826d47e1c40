package errors

import (
	"errors"
	"fmt"
)

// ClosedStoreError indicates an operation attempted against a store whose
// scratch storage has already been torn down.
type ClosedStoreError struct {
	Op string
}

func (e *ClosedStoreError) Error() string {
	return fmt.Sprintf("%s: staging store is closed", e.Op)
}

// NewClosedStoreError creates a ClosedStoreError for the given operation.
func NewClosedStoreError(op string) *ClosedStoreError {
	return &ClosedStoreError{Op: op}
}

// IsClosedStoreError reports whether err is a ClosedStoreError (even when wrapped).
func IsClosedStoreError(err error) bool {
	var closedErr *ClosedStoreError
	return errors.As(err, &closedErr)
}
