package display

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Table renders an aligned text table with optional color support.
// Column widths are measured in terminal cells, so Bengali and Arabic
// names line up with ASCII ones.
type Table struct {
	headers []string
	rows    [][]string
	// highlightRow is the 0-based row index to highlight (typically "today"). -1 = none.
	highlightRow int
	// marked rows get a trailing fallback marker, keyed by row then column.
	marked map[int]map[int]bool
}

// NewTable creates a new table with the given column headers.
func NewTable(headers []string) *Table {
	return &Table{
		headers:      headers,
		highlightRow: -1,
	}
}

// AddRow appends a row of values. The number of values should match the number of headers.
func (t *Table) AddRow(values []string) {
	t.rows = append(t.rows, values)
}

// SetHighlightRow sets which row index (0-based) should be highlighted.
func (t *Table) SetHighlightRow(idx int) {
	t.highlightRow = idx
}

// Mark flags a cell whose value came from a high-latitude fallback.
func (t *Table) Mark(row, col int) {
	if t.marked == nil {
		t.marked = make(map[int]map[int]bool)
	}
	if t.marked[row] == nil {
		t.marked[row] = make(map[int]bool)
	}
	t.marked[row][col] = true
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.rows)
}

func (t *Table) cell(row, col int) string {
	if col >= len(t.rows[row]) {
		return ""
	}
	if t.marked[row][col] {
		return t.rows[row][col] + "*"
	}
	return t.rows[row][col]
}

// Render produces the formatted table string with leading indent.
func (t *Table) Render() string {
	if len(t.headers) == 0 {
		return ""
	}

	// Calculate column widths.
	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = runewidth.StringWidth(h)
	}
	cells := make([][]string, len(t.rows))
	for r := range t.rows {
		cells[r] = make([]string, len(widths))
		for i := range widths {
			c := t.cell(r, i)
			cells[r][i] = c
			if w := runewidth.StringWidth(c); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var sb strings.Builder

	// Header row.
	headerLine := formatRow(t.headers, widths)
	sb.WriteString("  " + Bold(headerLine) + "\n")

	// Separator row using Unicode box-drawing dashes.
	sepParts := make([]string, len(widths))
	for i, w := range widths {
		sepParts[i] = strings.Repeat("─", w)
	}
	sepLine := "  " + strings.Join(sepParts, "  ")
	sb.WriteString(Dim(sepLine) + "\n")

	// Data rows.
	for i, row := range cells {
		line := formatRow(row, widths)
		if i == t.highlightRow {
			sb.WriteString("  " + Accent(line) + "\n")
		} else {
			sb.WriteString("  " + line + "\n")
		}
	}

	return sb.String()
}

// formatRow pads each cell to its column width in terminal cells.
func formatRow(cells []string, widths []int) string {
	parts := make([]string, len(widths))
	for i, w := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		parts[i] = runewidth.FillRight(cell, w)
	}
	return strings.Join(parts, "  ")
}
