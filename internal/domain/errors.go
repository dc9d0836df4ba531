// internal/domain/errors.go
package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound marks read-only lookups that matched nothing. Wrapped
// errors carry which record was missing; test with errors.Is.
var ErrNotFound = errors.New("not found")

// InvalidParameterError is a client-input rejection from validation.
// Message names the offending field and is safe to show to the caller.
type InvalidParameterError struct {
	Message string
}

func (e *InvalidParameterError) Error() string {
	return e.Message
}

// StorageError wraps a failure from the backing store. Op names the
// operation that failed (insert customer, commit, rollback, ...).
type StorageError struct {
	Op    string
	Cause error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error during %s: %v", e.Op, e.Cause)
}

func (e *StorageError) Unwrap() error {
	return e.Cause
}
