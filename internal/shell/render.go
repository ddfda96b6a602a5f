package shell

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/rosterkit/rosterkit/internal/grade"
	"github.com/rosterkit/rosterkit/internal/types"
)

var cellStyle = lipgloss.NewStyle().Padding(0, 1)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(_, _ int) lipgloss.Style { return cellStyle }).
		Headers(headers...)
}

// renderRoster formats records as a table with the derived class
// column. The class is computed per row and never stored.
func renderRoster(records []types.StudentRecord) string {
	t := newTable("ROLL NO", "NAME", "MARKS", "CLASS")
	for _, rec := range records {
		t.Row(
			strconv.Itoa(rec.RollNo),
			rec.Name,
			strconv.Itoa(rec.Marks),
			string(grade.Classify(rec.Marks)),
		)
	}
	return t.Render()
}

// renderReport formats the aggregate report: overall statistics, the
// per-band summary, and the top performers with their class.
func renderReport(summary types.ReportSummary) string {
	var b strings.Builder

	b.WriteString("\n--- Student Performance Report ---\n")
	fmt.Fprintf(&b, "Total Students: %d\n", summary.Total)
	fmt.Fprintf(&b, "Average Marks:  %.2f\n", summary.Mean)
	fmt.Fprintf(&b, "Highest Marks:  %d\n", summary.Max)
	fmt.Fprintf(&b, "Lowest Marks:   %d\n", summary.Min)

	b.WriteString("\n--- Class Summary ---\n")
	bands := newTable("CLASS", "STUDENTS")
	// Walk bands in ascending order; zero-count bands are absent from
	// the map and are not shown.
	for _, band := range types.Bands() {
		if count, present := summary.GradeCounts[band]; present {
			bands.Row(string(band), strconv.Itoa(count))
		}
	}
	b.WriteString(bands.Render())
	b.WriteString("\n")

	b.WriteString("\nTop Performer(s):\n")
	b.WriteString(renderRoster(summary.TopPerformers))

	return b.String()
}
