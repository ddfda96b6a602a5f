package roster

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rosterkit/rosterkit/internal/types"
)

// memStorage is an in-memory storage.Storage used to test the store
// without touching the filesystem.
type memStorage struct {
	records []types.StudentRecord
	saves   int
	loadErr error
	saveErr error
}

func (m *memStorage) Load() ([]types.StudentRecord, error) {
	return m.records, m.loadErr
}

func (m *memStorage) Save(records []types.StudentRecord) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.records = records
	m.saves++
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func setupStore(t *testing.T) (*Store, *memStorage) {
	t.Helper()
	mem := &memStorage{}
	return New(mem, testLogger()), mem
}

func TestAddAndSearch(t *testing.T) {
	store, mem := setupStore(t)

	rec, err := store.Add("Alice", 1, 90)
	require.NoError(t, err)
	assert.Equal(t, types.StudentRecord{RollNo: 1, Name: "Alice", Marks: 90}, rec)
	assert.Equal(t, 1, mem.saves)

	got, ok := store.Search(1)
	require.True(t, ok)
	assert.Equal(t, rec, got)

	_, ok = store.Search(2)
	assert.False(t, ok)
}

func TestAddValidation(t *testing.T) {
	tests := []struct {
		name   string
		stName string
		rollNo int
		marks  int
		field  string
	}{
		{"empty name", "", 3, 50, "name"},
		{"whitespace name", "   ", 3, 50, "name"},
		{"negative roll", "Alice", -1, 50, "roll_no"},
		{"marks too high", "Alice", 3, 101, "marks"},
		{"marks negative", "Alice", 3, -5, "marks"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, mem := setupStore(t)

			_, err := store.Add(tt.stName, tt.rollNo, tt.marks)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
			assert.Equal(t, 0, store.Len(), "roster must be unchanged")
			assert.Equal(t, 0, mem.saves, "nothing must be persisted")
		})
	}
}

func TestAddDuplicateRoll(t *testing.T) {
	store, mem := setupStore(t)

	_, err := store.Add("Alice", 1, 90)
	require.NoError(t, err)

	_, err = store.Add("Bob", 1, 40)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "roll_no", verr.Field)

	// The first record must be untouched.
	got, ok := store.Search(1)
	require.True(t, ok)
	assert.Equal(t, "Alice", got.Name)
	assert.Equal(t, 1, store.Len())
	assert.Equal(t, 1, mem.saves)
}

func TestUpdateName(t *testing.T) {
	store, _ := setupStore(t)
	_, err := store.Add("Alice", 1, 90)
	require.NoError(t, err)

	rec, err := store.Update(1, types.FieldName, "Alicia")
	require.NoError(t, err)
	assert.Equal(t, "Alicia", rec.Name)

	got, ok := store.Search(1)
	require.True(t, ok)
	assert.Equal(t, "Alicia", got.Name)
	assert.Equal(t, 90, got.Marks, "other fields must be unchanged")
}

func TestUpdateMarks(t *testing.T) {
	store, _ := setupStore(t)
	_, err := store.Add("Alice", 1, 90)
	require.NoError(t, err)

	rec, err := store.Update(1, types.FieldMarks, "72")
	require.NoError(t, err)
	assert.Equal(t, 72, rec.Marks)

	got, _ := store.Search(1)
	assert.Equal(t, 72, got.Marks)
	assert.Equal(t, "Alice", got.Name)
}

func TestUpdateErrors(t *testing.T) {
	store, _ := setupStore(t)
	_, err := store.Add("Alice", 1, 90)
	require.NoError(t, err)

	_, err = store.Update(99, types.FieldMarks, "70")
	assert.ErrorIs(t, err, ErrNotFound)

	var verr *ValidationError

	_, err = store.Update(1, types.FieldName, "  ")
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "name", verr.Field)

	_, err = store.Update(1, types.FieldMarks, "abc")
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "marks", verr.Field)

	_, err = store.Update(1, types.FieldMarks, "105")
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "marks", verr.Field)

	_, err = store.Update(1, types.Field("email"), "x@y.z")
	require.ErrorAs(t, err, &verr)

	// Failed updates must leave the record alone.
	got, _ := store.Search(1)
	assert.Equal(t, types.StudentRecord{RollNo: 1, Name: "Alice", Marks: 90}, got)
}

func TestDeleteThenSearchAbsent(t *testing.T) {
	store, mem := setupStore(t)
	_, err := store.Add("Alice", 1, 90)
	require.NoError(t, err)
	_, err = store.Add("Bob", 2, 40)
	require.NoError(t, err)

	require.NoError(t, store.Delete(1))

	_, ok := store.Search(1)
	assert.False(t, ok)
	assert.Equal(t, 1, store.Len())
	assert.Len(t, mem.records, 1)

	assert.ErrorIs(t, store.Delete(1), ErrNotFound)
}

func TestListSortedByRoll(t *testing.T) {
	store, _ := setupStore(t)
	_, _ = store.Add("Charu", 3, 55)
	_, _ = store.Add("Alice", 1, 90)
	_, _ = store.Add("Bob", 2, 40)

	list := store.List()
	require.Len(t, list, 3)
	assert.Equal(t, 1, list[0].RollNo)
	assert.Equal(t, 2, list[1].RollNo)
	assert.Equal(t, 3, list[2].RollNo)
}

func TestReport(t *testing.T) {
	store, _ := setupStore(t)
	_, err := store.Add("Alice", 1, 90)
	require.NoError(t, err)
	_, err = store.Add("Bob", 2, 40)
	require.NoError(t, err)

	summary, err := store.Report()
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Total)
	assert.InDelta(t, 65.0, summary.Mean, 0.001)
	assert.Equal(t, 90, summary.Max)
	assert.Equal(t, 40, summary.Min)
	assert.Equal(t, map[types.GradeBand]int{
		types.BandDistinction: 1,
		types.BandThirdClass:  1,
	}, summary.GradeCounts, "zero-count bands are omitted")
	require.Len(t, summary.TopPerformers, 1)
	assert.Equal(t, "Alice", summary.TopPerformers[0].Name)
}

func TestReportTiedTopPerformers(t *testing.T) {
	store, _ := setupStore(t)
	_, _ = store.Add("Alice", 1, 90)
	_, _ = store.Add("Bob", 2, 90)
	_, _ = store.Add("Charu", 3, 40)

	summary, err := store.Report()
	require.NoError(t, err)
	require.Len(t, summary.TopPerformers, 2)
	assert.Equal(t, "Alice", summary.TopPerformers[0].Name)
	assert.Equal(t, "Bob", summary.TopPerformers[1].Name)
}

func TestReportEmptyRoster(t *testing.T) {
	store, _ := setupStore(t)

	_, err := store.Report()
	assert.ErrorIs(t, err, ErrEmptyRoster)
}

func TestSaveFailureRetainsMutation(t *testing.T) {
	mem := &memStorage{saveErr: errors.New("disk full")}
	store := New(mem, testLogger())

	rec, err := store.Add("Alice", 1, 90)

	var perr *PersistenceError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "add", perr.Op)

	// The record was still added: memory is the source of truth.
	assert.Equal(t, types.StudentRecord{RollNo: 1, Name: "Alice", Marks: 90}, rec)
	got, ok := store.Search(1)
	require.True(t, ok)
	assert.Equal(t, rec, got)
}

func TestLoadFailureStartsEmpty(t *testing.T) {
	mem := &memStorage{loadErr: errors.New("corrupt file")}
	store := New(mem, testLogger())

	assert.Equal(t, 0, store.Len())

	// The store must still be fully usable.
	_, err := store.Add("Alice", 1, 90)
	require.NoError(t, err)
	assert.Equal(t, 1, store.Len())
}

func TestLoadPopulatesStore(t *testing.T) {
	mem := &memStorage{records: []types.StudentRecord{
		{RollNo: 1, Name: "Alice", Marks: 90},
		{RollNo: 2, Name: "Bob", Marks: 40},
	}}
	store := New(mem, testLogger())

	assert.Equal(t, 2, store.Len())
	got, ok := store.Search(2)
	require.True(t, ok)
	assert.Equal(t, "Bob", got.Name)
}
