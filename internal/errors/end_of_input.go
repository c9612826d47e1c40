package errors

import (
	"errors"
	"fmt"
	"io"
)

// EndOfInputError indicates that the input stream had no header line,
// so no relation could be created.
type EndOfInputError struct {
	Err error
}

func (e *EndOfInputError) Error() string {
	return fmt.Sprintf("no header line in input: %v", e.Err)
}

func (e *EndOfInputError) Unwrap() error {
	return e.Err
}

// NewEndOfInputError creates an EndOfInputError wrapping the underlying
// read error. If err is nil, io.EOF is assumed.
func NewEndOfInputError(err error) *EndOfInputError {
	if err == nil {
		err = io.EOF
	}
	return &EndOfInputError{Err: err}
}

// IsEndOfInputError reports whether err is an EndOfInputError (even when wrapped).
func IsEndOfInputError(err error) bool {
	var eoiErr *EndOfInputError
	return errors.As(err, &eoiErr)
}
