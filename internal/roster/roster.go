// Package roster holds the business rules of the roster manager: the
// in-memory store, the validated CRUD operations, and the statistics
// report. It is the only package that mutates student records.
//
// Every mutating operation follows the same shape:
//
//	validate → mutate in memory → save the full roster
//
// Mutation and save happen inside one call, but a failed save never
// rolls the mutation back — the in-memory roster is the durable source
// of truth for the rest of the run, and the failure is returned as a
// *PersistenceError for the caller to surface as a warning.
package roster

import (
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/rosterkit/rosterkit/internal/grade"
	"github.com/rosterkit/rosterkit/internal/storage"
	"github.com/rosterkit/rosterkit/internal/types"
)

// Store owns the ordered collection of student records, unique by roll
// number. It is single-threaded by contract: one interactive operation
// runs to completion before the next begins, so there is no locking.
type Store struct {
	records []types.StudentRecord
	st      storage.Storage
	log     *slog.Logger
}

// New builds a Store populated from the storage backend. A load failure
// degrades to an empty roster with a warning — a missing or corrupt
// roster file must never prevent the tool from starting.
func New(st storage.Storage, log *slog.Logger) *Store {
	records, err := st.Load()
	if err != nil {
		log.Warn("could not load roster, starting empty",
			slog.String("error", err.Error()))
		records = nil
	}

	return &Store{
		records: records,
		st:      st,
		log:     log,
	}
}

// Len returns the number of records in the roster.
func (s *Store) Len() int { return len(s.records) }

// Add validates and appends a new record, then persists the roster.
//
// It returns a *ValidationError — and leaves the roster unchanged — if
// the name is empty, the roll number is negative or already present, or
// the marks fall outside [0,100]. On a save failure the record is still
// added and the returned error is a *PersistenceError.
func (s *Store) Add(name string, rollNo, marks int) (types.StudentRecord, error) {
	rec := types.StudentRecord{
		RollNo: rollNo,
		Name:   strings.TrimSpace(name),
		Marks:  marks,
	}

	if verr := checkRecord(rec); verr != nil {
		return types.StudentRecord{}, verr
	}

	if s.indexOf(rollNo) >= 0 {
		return types.StudentRecord{}, &ValidationError{
			Field:  "roll_no",
			Reason: fmt.Sprintf("roll number %d already exists", rollNo),
		}
	}

	s.records = append(s.records, rec)

	s.log.Info("student added",
		slog.Int("roll_no", rec.RollNo),
		slog.Int("marks", rec.Marks))

	return rec, s.persist("add")
}

// Search returns the record with the given roll number, if present.
// Linear scan, no side effects.
func (s *Store) Search(rollNo int) (types.StudentRecord, bool) {
	if i := s.indexOf(rollNo); i >= 0 {
		return s.records[i], true
	}
	return types.StudentRecord{}, false
}

// List returns a copy of the roster sorted by roll number. The store's
// own order stays insertion order; sorting is a view concern.
func (s *Store) List() []types.StudentRecord {
	out := append([]types.StudentRecord(nil), s.records...)
	sort.Slice(out, func(i, j int) bool { return out[i].RollNo < out[j].RollNo })
	return out
}

// Update changes one field of an existing record and persists.
//
// The new value arrives as the raw string collected from the operator;
// parsing and range checking happen here so the rules live in one place
// regardless of how the value was gathered. Returns ErrNotFound
// (wrapped with the roll number) if absent, a *ValidationError for an
// empty name, a non-numeric or out-of-range marks value, or an unknown
// field, and a *PersistenceError if the save fails after the mutation.
func (s *Store) Update(rollNo int, field types.Field, value string) (types.StudentRecord, error) {
	i := s.indexOf(rollNo)
	if i < 0 {
		return types.StudentRecord{}, fmt.Errorf("%w: roll number %d", ErrNotFound, rollNo)
	}

	rec := s.records[i]

	switch field {
	case types.FieldName:
		rec.Name = strings.TrimSpace(value)
	case types.FieldMarks:
		marks, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return types.StudentRecord{}, &ValidationError{
				Field:  "marks",
				Reason: "must be a whole number",
			}
		}
		rec.Marks = marks
	default:
		return types.StudentRecord{}, &ValidationError{
			Field:  string(field),
			Reason: "is not an updatable field",
		}
	}

	if verr := checkRecord(rec); verr != nil {
		return types.StudentRecord{}, verr
	}

	s.records[i] = rec

	s.log.Info("student updated",
		slog.Int("roll_no", rollNo),
		slog.String("field", string(field)))

	return rec, s.persist("update")
}

// Delete removes the record with the given roll number and persists.
// Returns ErrNotFound (wrapped) if absent.
func (s *Store) Delete(rollNo int) error {
	i := s.indexOf(rollNo)
	if i < 0 {
		return fmt.Errorf("%w: roll number %d", ErrNotFound, rollNo)
	}

	s.records = append(s.records[:i], s.records[i+1:]...)

	s.log.Info("student deleted", slog.Int("roll_no", rollNo))

	return s.persist("delete")
}

// Report aggregates the whole roster: total count, mean/max/min marks,
// per-band counts, and every record tying the maximum marks value.
//
// Bands with zero students are omitted from GradeCounts; renderers walk
// types.Bands() and skip absent keys. Returns ErrEmptyRoster when there
// is nothing to aggregate.
func (s *Store) Report() (types.ReportSummary, error) {
	if len(s.records) == 0 {
		return types.ReportSummary{}, ErrEmptyRoster
	}

	summary := types.ReportSummary{
		Total:       len(s.records),
		Max:         s.records[0].Marks,
		Min:         s.records[0].Marks,
		GradeCounts: make(map[types.GradeBand]int),
	}

	sum := 0
	for _, rec := range s.records {
		sum += rec.Marks
		if rec.Marks > summary.Max {
			summary.Max = rec.Marks
		}
		if rec.Marks < summary.Min {
			summary.Min = rec.Marks
		}
		summary.GradeCounts[grade.Classify(rec.Marks)]++
	}
	summary.Mean = float64(sum) / float64(len(s.records))

	for _, rec := range s.records {
		if rec.Marks == summary.Max {
			summary.TopPerformers = append(summary.TopPerformers, rec)
		}
	}

	return summary, nil
}

// indexOf returns the position of the record with the given roll
// number, or -1.
func (s *Store) indexOf(rollNo int) int {
	for i, rec := range s.records {
		if rec.RollNo == rollNo {
			return i
		}
	}
	return -1
}

// persist writes the full roster through the storage backend. A failure
// is logged and wrapped as a *PersistenceError; the in-memory state is
// deliberately left as-is.
func (s *Store) persist(op string) error {
	if err := s.st.Save(append([]types.StudentRecord(nil), s.records...)); err != nil {
		s.log.Warn("failed to save roster",
			slog.String("op", op),
			slog.String("error", err.Error()))
		return &PersistenceError{Op: op, Err: err}
	}
	return nil
}
