package store

import (
	"errors"
	"fmt"
)

// errTxDone is returned when a finished transaction is committed again.
var errTxDone = errors.New("transaction already finished")

// StorageError represents an error from a record store backend.
type StorageError struct {
	Backend   string // Store backend type ("sqlite", "memory")
	Operation string // Operation that failed ("open", "migrate", "query", ...)
	Cause     error  // Underlying error
}

// Error implements the error interface.
func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error [backend=%s, operation=%s]: %v", e.Backend, e.Operation, e.Cause)
}

// Unwrap returns the underlying cause error.
func (e *StorageError) Unwrap() error {
	return e.Cause
}

// NewStorageError creates a new StorageError.
func NewStorageError(backend, operation string, cause error) *StorageError {
	return &StorageError{
		Backend:   backend,
		Operation: operation,
		Cause:     cause,
	}
}
