package complaints

import (
	"errors"
	"fmt"
)

// Error kinds crossing the lifecycle boundary. No raw backend fault leaves
// this package uncategorized.
var (
	// ErrForbidden is a generic denial. It deliberately reveals nothing
	// about whether the target record exists.
	ErrForbidden = errors.New("not allowed")
	// ErrNotFound: the record does not exist. Distinct from ErrForbidden.
	ErrNotFound = errors.New("complaint not found")
)

// StoreError wraps a record-store failure. Surfaced to users as a generic
// message; the cause stays available for logs.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }
