// internal/report/table.go
// Package: report
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/mwiater/perfreport/internal/perf"
)

// Column headers of the statistics table, in order.
const (
	ColumnTest       = "Test Name"
	ColumnMetric     = "Metric"
	ColumnIterations = "Iterations"
	ColumnMean       = "AVG"
	ColumnStdDev     = "SD"
	ColumnMin        = "MIN"
	ColumnMax        = "MAX"
)

// Headers is the fixed column order of the statistics table.
var Headers = []string{ColumnTest, ColumnMetric, ColumnIterations, ColumnMean, ColumnStdDev, ColumnMin, ColumnMax}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	numberStyle = cellStyle.Align(lipgloss.Right)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// StatsTable is the flat statistics projection of a collection.
type StatsTable struct {
	rows []perf.StatRow
	opts options
}

// NewStatsTable computes the statistics of c.
func NewStatsTable(c *perf.Collection, opts ...Option) *StatsTable {
	return &StatsTable{rows: c.Stats(), opts: newOptions(opts)}
}

// StatRows returns the underlying statistics.
func (t *StatsTable) StatRows() []perf.StatRow {
	return t.rows
}

// NumberFormat returns the format used for the numeric cells.
func (t *StatsTable) NumberFormat() NumberFormat {
	return t.opts.format
}

// Rows returns the formatted cells, one slice per row, in Headers order.
func (t *StatsTable) Rows() [][]string {
	out := make([][]string, 0, len(t.rows))
	for _, r := range t.rows {
		out = append(out, t.cells(r))
	}
	return out
}

func (t *StatsTable) cells(r perf.StatRow) []string {
	f := t.opts.format
	return []string{
		r.Test,
		r.Metric,
		strconv.Itoa(r.Count),
		f.Format(r.Mean),
		f.Format(r.StdDev),
		f.Format(r.Min),
		f.Format(r.Max),
	}
}

// WriteCSV writes the header line and every row as CSV.
func (t *StatsTable) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Headers); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, row := range t.Rows() {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("CSV writer error: %w", err)
	}
	return nil
}

// Render returns the table drawn for a terminal.
func (t *StatsTable) Render() string {
	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers(Headers...).
		Rows(t.Rows()...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col >= 2:
				return numberStyle
			default:
				return cellStyle
			}
		})
	return tbl.String()
}
