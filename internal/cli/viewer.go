// internal/cli/viewer.go
// Package: cli

// Package cli holds the interactive terminal views of perfreport.
package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mwiater/perfreport/internal/perf"
	"github.com/mwiater/perfreport/internal/report"
)

// viewState represents the current state of the viewer.
type viewState int

const (
	// viewTable lists every statistics row.
	viewTable viewState = iota
	// viewDetail shows the selected row in full, including the median.
	viewDetail
)

var (
	baseStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240"))
	titleStyle  = lipgloss.NewStyle().Background(lipgloss.Color("62")).Foreground(lipgloss.Color("230")).Padding(0, 1)
	helpStyle   = lipgloss.NewStyle().Faint(true)
	labelStyle  = lipgloss.NewStyle().Bold(true).Width(12)
	detailStyle = lipgloss.NewStyle().Padding(1, 2)
)

// model is the Bubble Tea model of the statistics viewer.
type model struct {
	title  string
	state  viewState
	table  table.Model
	rows   []perf.StatRow
	format report.NumberFormat

	width, height int
}

// newModel builds the viewer over the rows of stats.
func newModel(title string, stats *report.StatsTable) *model {
	columns := []table.Column{
		{Title: report.ColumnTest, Width: 28},
		{Title: report.ColumnMetric, Width: 16},
		{Title: report.ColumnIterations, Width: 10},
		{Title: report.ColumnMean, Width: 12},
		{Title: report.ColumnStdDev, Width: 12},
		{Title: report.ColumnMin, Width: 12},
		{Title: report.ColumnMax, Width: 12},
	}

	rows := make([]table.Row, 0, len(stats.Rows()))
	for _, r := range stats.Rows() {
		rows = append(rows, table.Row(r))
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return &model{
		title:  title,
		table:  t,
		rows:   stats.StatRows(),
		format: stats.NumberFormat(),
	}
}

func (m *model) Init() tea.Cmd {
	return nil
}

// Update handles key presses and window resizes.
func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "enter":
			if m.state == viewTable && len(m.rows) > 0 {
				m.state = viewDetail
			} else {
				m.state = viewTable
			}
			return m, nil
		case "esc":
			m.state = viewTable
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		if h := msg.Height - 6; h > 3 {
			m.table.SetHeight(h)
		}
		return m, nil
	}

	if m.state != viewTable {
		return m, nil
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the table or the detail of the selected row.
func (m *model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	header := titleStyle.Render(m.title)
	if len(m.rows) == 0 {
		return header + "\n\n  No statistics to show.\n" + helpStyle.Render("  q: quit")
	}

	switch m.state {
	case viewDetail:
		return header + "\n" + m.detailView() + "\n" + helpStyle.Render("  enter/esc: back • q: quit")
	default:
		return header + "\n" + baseStyle.Render(m.table.View()) + "\n" + helpStyle.Render("  ↑/↓: navigate • enter: details • q: quit")
	}
}

func (m *model) selected() perf.StatRow {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.rows) {
		i = 0
	}
	return m.rows[i]
}

func (m *model) detailView() string {
	r := m.selected()
	lines := [][2]string{
		{report.ColumnTest, r.Test},
		{report.ColumnMetric, r.Metric},
		{report.ColumnIterations, strconv.Itoa(r.Count)},
		{report.ColumnMean, m.format.Format(r.Mean)},
		{"Median", m.format.Format(r.Median)},
		{report.ColumnStdDev, m.format.Format(r.StdDev)},
		{report.ColumnMin, m.format.Format(r.Min)},
		{report.ColumnMax, m.format.Format(r.Max)},
	}
	var b strings.Builder
	for _, l := range lines {
		b.WriteString(labelStyle.Render(l[0]) + " " + l[1] + "\n")
	}
	return detailStyle.Render(b.String())
}

// StartViewer runs the statistics viewer and blocks until the user quits.
func StartViewer(title string, stats *report.StatsTable) error {
	p := tea.NewProgram(newModel(title, stats), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running viewer: %w", err)
	}
	return nil
}
