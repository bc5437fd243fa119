package storage

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when an order ID does not exist.
	ErrNotFound = errors.New("not found")

	// ErrStorage matches every *StorageError via errors.Is.
	ErrStorage = errors.New("storage failure")
)

// StorageError wraps a failure of the underlying database engine.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// Is lets callers test with errors.Is(err, ErrStorage).
func (e *StorageError) Is(target error) bool {
	return target == ErrStorage
}

// Wrap returns a *StorageError for op, or nil if err is nil.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Err: err}
}

// NotFound returns an error for a missing order that wraps ErrNotFound.
func NotFound(id int64) error {
	return fmt.Errorf("order %d: %w", id, ErrNotFound)
}
