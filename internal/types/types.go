// Package types holds the shared data structures used across the
// application. Keeping them in one place prevents import cycles —
// the roster store, storage backends, and shell can all import types
// without depending on each other.
package types

// StudentRecord is one row of the roster.
//
// Struct tags serve two purposes:
//
//  1. json:"..." — the field names used when a record is encoded,
//     and they double as the column headers of the persisted sheet.
//
//  2. validate:"..." — rules checked by the go-playground/validator
//     package before any record enters the roster.
type StudentRecord struct {
	RollNo int    `json:"roll_no" validate:"gte=0"`
	Name   string `json:"name"    validate:"required"`
	Marks  int    `json:"marks"   validate:"gte=0,lte=100"`
}

// GradeBand is the qualitative category derived from a marks value.
// It is computed on demand and never persisted.
type GradeBand string

const (
	BandFail        GradeBand = "Fail"
	BandThirdClass  GradeBand = "Third Class"
	BandSecondClass GradeBand = "Second Class"
	BandFirstClass  GradeBand = "First Class"
	BandDistinction GradeBand = "Distinction"
)

// Bands returns every grade band in ascending order of marks.
// Renderers iterate this instead of ranging over a map so band
// ordering in output is stable.
func Bands() []GradeBand {
	return []GradeBand{
		BandFail,
		BandThirdClass,
		BandSecondClass,
		BandFirstClass,
		BandDistinction,
	}
}

// Field names an updatable column of a StudentRecord.
type Field string

const (
	FieldName  Field = "name"
	FieldMarks Field = "marks"
)

// ReportSummary is the result of aggregating the whole roster.
//
// GradeCounts only carries bands with at least one student; a band
// absent from the map has a count of zero. TopPerformers holds every
// record tying the maximum marks value, in roster order.
type ReportSummary struct {
	Total         int
	Mean          float64
	Max           int
	Min           int
	GradeCounts   map[GradeBand]int
	TopPerformers []StudentRecord
}
