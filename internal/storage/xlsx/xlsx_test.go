package xlsx

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/rosterkit/rosterkit/internal/config"
	"github.com/rosterkit/rosterkit/internal/types"
)

func setupBackend(t *testing.T) *XLSX {
	t.Helper()
	cfg := &config.Config{
		Storage: config.Storage{
			Path:  filepath.Join(t.TempDir(), "students.xlsx"),
			Sheet: "Roster",
		},
	}
	return New(cfg)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	backend := setupBackend(t)

	want := []types.StudentRecord{
		{RollNo: 1, Name: "Alice", Marks: 90},
		{RollNo: 2, Name: "Bob", Marks: 40},
		{RollNo: 7, Name: "Charu", Marks: 0},
		{RollNo: 3, Name: "Dev", Marks: 100},
	}
	require.NoError(t, backend.Save(want))

	got, err := backend.Load()
	require.NoError(t, err)
	assert.ElementsMatch(t, want, got)
}

func TestSaveOverwritesPriorContent(t *testing.T) {
	backend := setupBackend(t)

	require.NoError(t, backend.Save([]types.StudentRecord{
		{RollNo: 1, Name: "Alice", Marks: 90},
		{RollNo: 2, Name: "Bob", Marks: 40},
	}))
	require.NoError(t, backend.Save([]types.StudentRecord{
		{RollNo: 2, Name: "Bob", Marks: 55},
	}))

	got, err := backend.Load()
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, types.StudentRecord{RollNo: 2, Name: "Bob", Marks: 55}, got[0])
}

func TestSaveEmptyRoster(t *testing.T) {
	backend := setupBackend(t)

	require.NoError(t, backend.Save(nil))

	got, err := backend.Load()
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestLoadMissingFileYieldsEmpty(t *testing.T) {
	backend := setupBackend(t)

	got, err := backend.Load()
	assert.NoError(t, err, "a missing file is a fresh roster, not a failure")
	assert.Empty(t, got)
}

// A hand-made sheet may lack the header row and can carry rows whose
// numeric cells do not parse; Load keeps the good rows and skips the
// rest without failing.
func TestLoadSkipsUnparsableRows(t *testing.T) {
	backend := setupBackend(t)

	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetName("Sheet1", backend.sheet))

	rows := [][]any{
		{1, "Alice", 90},          // valid: no header row above it
		{"x", "Bob", 40},          // roll is not a number
		{3, "Charu", "ninety"},    // marks is not a number
		{4, "Dev"},                // too short
		{5, "Esha", 55},           // valid
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(backend.sheet, cell, &row))
	}
	require.NoError(t, f.SaveAs(backend.path))

	got, err := backend.Load()
	require.NoError(t, err)
	assert.ElementsMatch(t, []types.StudentRecord{
		{RollNo: 1, Name: "Alice", Marks: 90},
		{RollNo: 5, Name: "Esha", Marks: 55},
	}, got)
}

func TestLoadMalformedFileReturnsError(t *testing.T) {
	backend := setupBackend(t)
	require.NoError(t, os.WriteFile(backend.path, []byte("this is not a workbook"), 0o644))

	_, err := backend.Load()
	assert.Error(t, err)
}

func TestLoadWrongSheetReturnsError(t *testing.T) {
	backend := setupBackend(t)
	require.NoError(t, backend.Save([]types.StudentRecord{{RollNo: 1, Name: "Alice", Marks: 90}}))

	other := &XLSX{path: backend.path, sheet: "Grades"}
	_, err := other.Load()
	assert.Error(t, err)
}
