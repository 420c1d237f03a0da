package journal

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by the store and service layers. Callers match
// them with errors.Is.
var (
	// ErrNotFound reports an unknown entry id.
	ErrNotFound = errors.New("entry not found")

	// ErrDuplicateID reports an append with an id already in the store.
	ErrDuplicateID = errors.New("duplicate entry id")

	// ErrEmptyContent reports entry content that trims to nothing.
	ErrEmptyContent = errors.New("content must not be empty")
)

// StorageError reports a failed persistence write. It is always surfaced
// to the caller; the request that hit it fails outright, no retries.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
