// Package storage defines the Storage interface — the contract any
// persistence backend must satisfy to work with the roster store.
//
// The roster store depends only on this interface, so switching the
// persisted format (spreadsheet, SQLite, anything else) is a one-line
// change in main.go and zero changes to the business rules. Tests pass
// an in-memory fake that satisfies the same interface.
//
// The contract is deliberately whole-roster: a single process owns the
// file, every mutation rewrites it completely, and the in-memory roster
// stays the source of truth for the rest of the run whatever the save
// outcome.
package storage

import "github.com/rosterkit/rosterkit/internal/types"

// Storage is the persistence contract.
type Storage interface {
	// Load reads every persisted record. A missing file is not an
	// error — it returns (nil, nil) so a fresh install starts with an
	// empty roster. A malformed or unreadable file returns a non-nil
	// error; callers degrade to an empty roster and log a warning
	// rather than failing.
	Load() ([]types.StudentRecord, error)

	// Save writes the full roster, overwriting any prior content.
	// Errors are non-fatal to the caller: the in-memory roster is
	// retained and the failure is surfaced as a warning.
	Save(records []types.StudentRecord) error
}
