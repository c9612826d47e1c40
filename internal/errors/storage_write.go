package errors

import (
	"errors"
	"fmt"
)

// StorageWriteError indicates that the backing store rejected the bulk
// insert, typically because a row's field count did not match the header
// or an ingestion limit was exceeded.
type StorageWriteError struct {
	Table string
	Err   error
}

func (e *StorageWriteError) Error() string {
	return fmt.Sprintf("bulk insert into %q failed: %v", e.Table, e.Err)
}

func (e *StorageWriteError) Unwrap() error {
	return e.Err
}

// NewStorageWriteError creates a StorageWriteError for the given table.
func NewStorageWriteError(table string, err error) *StorageWriteError {
	return &StorageWriteError{Table: table, Err: err}
}

// IsStorageWriteError reports whether err is a StorageWriteError (even when wrapped).
func IsStorageWriteError(err error) bool {
	var writeErr *StorageWriteError
	return errors.As(err, &writeErr)
}
