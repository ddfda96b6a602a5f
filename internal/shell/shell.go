// Package shell is the interactive surface of the roster manager: a
// numbered menu on stdin/stdout that dispatches to the roster store.
//
// It holds no business rules. Input collection is split from
// validation — ParseIntInRange is a pure function, and the prompt
// loops around it simply re-ask until it succeeds — so the rules are
// testable without a terminal. Run reads from an io.Reader and writes
// to an io.Writer for the same reason.
package shell

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/rosterkit/rosterkit/internal/roster"
	"github.com/rosterkit/rosterkit/internal/types"
)

const menu = `
--- Menu ---
1. Add Student
2. View All
3. Search
4. Update Student
5. Delete Student
6. Generate Report
7. Exit`

// Shell drives one interactive session. One operation runs to
// completion before the next menu prompt appears.
type Shell struct {
	store *roster.Store
	log   *slog.Logger
	in    *bufio.Scanner
	out   io.Writer
}

// New returns a shell reading from in and writing to out.
func New(in io.Reader, out io.Writer, store *roster.Store, log *slog.Logger) *Shell {
	return &Shell{
		store: store,
		log:   log,
		in:    bufio.NewScanner(in),
		out:   out,
	}
}

// Run loops over the menu until the operator exits or input ends.
// Every error an operation produces is reported and the menu shown
// again; nothing here is fatal.
func (s *Shell) Run() error {
	fmt.Fprintln(s.out, "Welcome to the student roster manager.")

	for {
		fmt.Fprintln(s.out, menu)

		choice, ok := s.readLine("Enter your choice: ")
		if !ok {
			return s.in.Err()
		}

		switch strings.TrimSpace(choice) {
		case "1":
			s.addStudent()
		case "2":
			s.viewAll()
		case "3":
			s.searchStudent()
		case "4":
			s.updateStudent()
		case "5":
			s.deleteStudent()
		case "6":
			s.showReport()
		case "7":
			fmt.Fprintln(s.out, "Goodbye.")
			return nil
		default:
			fmt.Fprintln(s.out, "Invalid choice. Please select a number from the menu.")
		}
	}
}

func (s *Shell) addStudent() {
	fmt.Fprintln(s.out, "\n--- Add New Student ---")

	name, ok := s.readLine("Enter student name: ")
	if !ok {
		return
	}
	if strings.TrimSpace(name) == "" {
		fmt.Fprintln(s.out, "Student name cannot be empty.")
		return
	}

	// An already-used roll number re-prompts rather than abandoning
	// the whole add.
	var rollNo int
	for {
		rollNo, ok = s.promptInt("Enter roll number: ", 0, math.MaxInt)
		if !ok {
			return
		}
		if _, exists := s.store.Search(rollNo); exists {
			fmt.Fprintf(s.out, "Roll number %d already exists.\n", rollNo)
			continue
		}
		break
	}

	marks, ok := s.promptInt("Enter marks (0-100): ", 0, 100)
	if !ok {
		return
	}

	if _, err := s.store.Add(name, rollNo, marks); err != nil {
		s.reportError(err)
		return
	}
	fmt.Fprintln(s.out, "Student added successfully.")
}

func (s *Shell) viewAll() {
	if s.store.Len() == 0 {
		fmt.Fprintln(s.out, "The student roster is currently empty.")
		return
	}

	fmt.Fprintln(s.out, "\n--- Student Roster ---")
	fmt.Fprintln(s.out, renderRoster(s.store.List()))
}

func (s *Shell) searchStudent() {
	rollNo, ok := s.promptInt("Enter roll number to search: ", 0, math.MaxInt)
	if !ok {
		return
	}

	rec, found := s.store.Search(rollNo)
	if !found {
		fmt.Fprintf(s.out, "Student with roll number %d not found.\n", rollNo)
		return
	}

	fmt.Fprintf(s.out, "\nStudent found (roll no %d):\n", rollNo)
	fmt.Fprintln(s.out, renderRoster([]types.StudentRecord{rec}))
}

func (s *Shell) updateStudent() {
	rollNo, ok := s.promptInt("Enter roll number of student to update: ", 0, math.MaxInt)
	if !ok {
		return
	}

	rec, found := s.store.Search(rollNo)
	if !found {
		fmt.Fprintf(s.out, "Student with roll number %d not found.\n", rollNo)
		return
	}

	fmt.Fprintln(s.out, "\nCurrent record:")
	fmt.Fprintln(s.out, renderRoster([]types.StudentRecord{rec}))

	fmt.Fprintln(s.out, "What do you want to update?")
	fmt.Fprintln(s.out, "1. Name")
	fmt.Fprintln(s.out, "2. Marks")

	choice, ok := s.readLine("Enter your choice (1 or 2): ")
	if !ok {
		return
	}

	switch strings.TrimSpace(choice) {
	case "1":
		name, ok := s.readLine("Enter new name: ")
		if !ok {
			return
		}
		if _, err := s.store.Update(rollNo, types.FieldName, name); err != nil {
			s.reportError(err)
			return
		}
		fmt.Fprintln(s.out, "Name updated.")
	case "2":
		marks, ok := s.promptInt("Enter new marks (0-100): ", 0, 100)
		if !ok {
			return
		}
		if _, err := s.store.Update(rollNo, types.FieldMarks, strconv.Itoa(marks)); err != nil {
			s.reportError(err)
			return
		}
		fmt.Fprintln(s.out, "Marks updated.")
	default:
		fmt.Fprintln(s.out, "Invalid choice. Update cancelled.")
	}
}

func (s *Shell) deleteStudent() {
	rollNo, ok := s.promptInt("Enter roll number to delete: ", 0, math.MaxInt)
	if !ok {
		return
	}

	if err := s.store.Delete(rollNo); err != nil {
		if errors.Is(err, roster.ErrNotFound) {
			fmt.Fprintf(s.out, "Student with roll number %d not found.\n", rollNo)
			return
		}
		s.reportError(err)
		return
	}
	fmt.Fprintf(s.out, "Student with roll number %d deleted.\n", rollNo)
}

func (s *Shell) showReport() {
	summary, err := s.store.Report()
	if err != nil {
		if errors.Is(err, roster.ErrEmptyRoster) {
			fmt.Fprintln(s.out, "Cannot generate report: the student roster is empty.")
			return
		}
		s.reportError(err)
		return
	}

	fmt.Fprintln(s.out, renderReport(summary))
}

// reportError prints an operation error for the operator. A
// *PersistenceError means the change DID happen in memory and only the
// save failed, so it is worded as a warning rather than a failure.
func (s *Shell) reportError(err error) {
	var perr *roster.PersistenceError
	if errors.As(err, &perr) {
		fmt.Fprintf(s.out,
			"Warning: change applied, but the roster could not be saved: %v\n", perr.Err)
		return
	}
	fmt.Fprintf(s.out, "Error: %v\n", err)
}

// readLine prints a prompt and returns the next input line. ok is false
// when input is exhausted.
func (s *Shell) readLine(prompt string) (string, bool) {
	fmt.Fprint(s.out, prompt)
	if !s.in.Scan() {
		return "", false
	}
	return s.in.Text(), true
}

// promptInt re-prompts until the operator enters an integer within
// [min, max], or input ends.
func (s *Shell) promptInt(prompt string, min, max int) (int, bool) {
	for {
		raw, ok := s.readLine(prompt)
		if !ok {
			return 0, false
		}

		value, err := ParseIntInRange(raw, min, max)
		if err != nil {
			fmt.Fprintln(s.out, err.Error())
			continue
		}
		return value, true
	}
}

// ParseIntInRange parses raw as an integer within [min, max]. It is the
// pure half of the prompt loop: the retry behaviour lives in promptInt,
// the rule lives here.
func ParseIntInRange(raw string, min, max int) (int, error) {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, errors.New("Invalid input. Please enter a whole number.")
	}
	if value < min {
		return 0, fmt.Errorf("Value must be at least %d.", min)
	}
	if value > max {
		return 0, fmt.Errorf("Value cannot exceed %d.", max)
	}
	return value, nil
}
