package roster

import (
	"errors"
	"fmt"
)

// Sentinel errors for the recoverable failure kinds. Callers match
// them with errors.Is; operations wrap them with context such as the
// roll number that was looked up.
var (
	// ErrNotFound means the referenced roll number is not in the roster.
	ErrNotFound = errors.New("student not found")

	// ErrEmptyRoster means a report or aggregate was requested on an
	// empty roster.
	ErrEmptyRoster = errors.New("the student roster is empty")
)

// ValidationError reports bad, duplicate, or out-of-range input.
// The operation that returned it made no change to the roster.
type ValidationError struct {
	Field  string // json-style field name: "roll_no", "name", "marks"
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// PersistenceError reports a failed save after a successful in-memory
// mutation. The mutation is NOT rolled back: the in-memory roster stays
// the source of truth for the rest of the run, and callers surface this
// error as a warning rather than treating the operation as failed.
type PersistenceError struct {
	Op  string // the mutating operation: "add", "update", "delete"
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: roster not saved: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
