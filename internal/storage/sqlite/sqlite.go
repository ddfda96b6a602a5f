// Package sqlite provides a SQLite-backed implementation of the
// storage.Storage interface using Go's standard database/sql package.
//
// It exists for rosters that outgrow a spreadsheet that gets rewritten
// on every edit; select it with storage.driver: sqlite. The contract is
// the same as the xlsx backend: Load reads the whole table, Save
// replaces it. The full-overwrite Save runs in one transaction so a
// crash mid-save never leaves a half-written roster on disk.
//
// The blank import below registers the sqlite3 driver with database/sql.
// The driver's init() function does this when the package is loaded —
// nothing from it is called directly.
package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/rosterkit/rosterkit/internal/config"
	"github.com/rosterkit/rosterkit/internal/types"

	_ "github.com/mattn/go-sqlite3"
)

// SQLite is the database-backed implementation of storage.Storage.
type SQLite struct {
	Db *sql.DB
}

// New opens the database at cfg.Storage.Path and creates the roster
// table if it does not already exist.
func New(cfg *config.Config) (*SQLite, error) {
	db, err := sql.Open("sqlite3", cfg.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: open db: %w", err)
	}

	// Idempotent — safe to run on every startup. roll_no is the
	// primary key, so uniqueness holds at the storage layer too.
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS roster (
			roll_no INTEGER PRIMARY KEY,
			name    TEXT    NOT NULL,
			marks   INTEGER NOT NULL
		)
	`)
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: create table: %w", err)
	}

	return &SQLite{Db: db}, nil
}

// Load reads every persisted record. An empty table yields an empty
// (non-nil) slice.
func (s *SQLite) Load() ([]types.StudentRecord, error) {
	rows, err := s.Db.Query("SELECT roll_no, name, marks FROM roster")
	if err != nil {
		return nil, fmt.Errorf("sqlite.Load: query: %w", err)
	}
	defer rows.Close()

	records := make([]types.StudentRecord, 0)

	for rows.Next() {
		var rec types.StudentRecord
		if err := rows.Scan(&rec.RollNo, &rec.Name, &rec.Marks); err != nil {
			return nil, fmt.Errorf("sqlite.Load: scan row: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite.Load: rows iteration: %w", err)
	}

	return records, nil
}

// Save replaces the table contents with the given records, all inside
// one transaction.
func (s *SQLite) Save(records []types.StudentRecord) error {
	tx, err := s.Db.Begin()
	if err != nil {
		return fmt.Errorf("sqlite.Save: begin tx: %w", err)
	}
	// Rollback after a successful Commit is a no-op, so deferring it
	// unconditionally covers every early return below.
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM roster"); err != nil {
		return fmt.Errorf("sqlite.Save: clear table: %w", err)
	}

	stmt, err := tx.Prepare("INSERT INTO roster (roll_no, name, marks) VALUES (?, ?, ?)")
	if err != nil {
		return fmt.Errorf("sqlite.Save: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, rec := range records {
		if _, err := stmt.Exec(rec.RollNo, rec.Name, rec.Marks); err != nil {
			return fmt.Errorf("sqlite.Save: insert roll %d: %w", rec.RollNo, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite.Save: commit: %w", err)
	}

	return nil
}

// Close releases the underlying database handle.
func (s *SQLite) Close() error {
	return s.Db.Close()
}
