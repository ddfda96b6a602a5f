// Package xlsx persists the roster as a spreadsheet workbook using
// the excelize library.
//
// The on-disk layout is one worksheet (name taken from config, default
// "Roster") with a header row and one row per record:
//
//	roll_no | name | marks
//
// Row order carries no meaning on load; the round-trip guarantee is
// about the set of records and their field values, not their order.
// Grade bands are derived data and are never written to the file.
package xlsx

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/rosterkit/rosterkit/internal/config"
	"github.com/rosterkit/rosterkit/internal/types"
)

// header is the first row of the sheet. The names match the json tags
// on types.StudentRecord.
var header = []any{"roll_no", "name", "marks"}

// XLSX is the spreadsheet-backed implementation of storage.Storage.
type XLSX struct {
	path  string
	sheet string
}

// New returns a backend writing to cfg.Storage.Path. Nothing is opened
// here: the file is fully read on each Load and fully rewritten on each
// Save, so there is no handle to hold between operations.
func New(cfg *config.Config) *XLSX {
	return &XLSX{
		path:  cfg.Storage.Path,
		sheet: cfg.Storage.Sheet,
	}
}

// Load reads every record from the workbook. A missing file yields
// (nil, nil) — a fresh roster. Any other failure (unreadable workbook,
// missing sheet) is returned for the caller to log; rows whose numeric
// cells do not parse are skipped rather than poisoning the rest.
func (x *XLSX) Load() ([]types.StudentRecord, error) {
	if _, err := os.Stat(x.path); errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}

	f, err := excelize.OpenFile(x.path)
	if err != nil {
		return nil, fmt.Errorf("xlsx.Load: open workbook %s: %w", x.path, err)
	}
	defer f.Close()

	rows, err := f.GetRows(x.sheet)
	if err != nil {
		return nil, fmt.Errorf("xlsx.Load: read sheet %q: %w", x.sheet, err)
	}

	records := make([]types.StudentRecord, 0, len(rows))

	for i, row := range rows {
		if i == 0 && isHeader(row) {
			continue
		}
		if len(row) < 3 {
			continue
		}

		rollNo, err := strconv.Atoi(strings.TrimSpace(row[0]))
		if err != nil {
			continue
		}
		marks, err := strconv.Atoi(strings.TrimSpace(row[2]))
		if err != nil {
			continue
		}

		records = append(records, types.StudentRecord{
			RollNo: rollNo,
			Name:   row[1],
			Marks:  marks,
		})
	}

	return records, nil
}

// Save writes the full roster to a fresh workbook, replacing whatever
// was on disk before.
func (x *XLSX) Save(records []types.StudentRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	// A new workbook starts with a default sheet; rename it rather
	// than creating a second one.
	if err := f.SetSheetName("Sheet1", x.sheet); err != nil {
		return fmt.Errorf("xlsx.Save: name sheet: %w", err)
	}

	if err := f.SetSheetRow(x.sheet, "A1", &header); err != nil {
		return fmt.Errorf("xlsx.Save: write header: %w", err)
	}

	for i, rec := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("xlsx.Save: row %d: %w", i+2, err)
		}
		row := []any{rec.RollNo, rec.Name, rec.Marks}
		if err := f.SetSheetRow(x.sheet, cell, &row); err != nil {
			return fmt.Errorf("xlsx.Save: write row %d: %w", i+2, err)
		}
	}

	if err := f.SaveAs(x.path); err != nil {
		return fmt.Errorf("xlsx.Save: write workbook %s: %w", x.path, err)
	}

	return nil
}

// isHeader reports whether a row is the column-name row rather than
// data. Files written by Save always carry one, but a hand-made sheet
// without it still loads.
func isHeader(row []string) bool {
	return len(row) > 0 && strings.EqualFold(strings.TrimSpace(row[0]), "roll_no")
}
