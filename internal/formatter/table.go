// Package formatter renders aligned text tables for command-line summaries.
package formatter

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Table is a pipe table whose columns are padded to their display width, so
// that CJK and other wide characters line up in a terminal.
type Table struct {
	header []string
	rows   [][]string
}

// NewTable creates a table with the given column headers.
func NewTable(header ...string) *Table {
	return &Table{header: header}
}

// AddRow appends a row. Missing cells render empty and extra cells are dropped.
func (t *Table) AddRow(cells ...string) {
	t.rows = append(t.rows, cells)
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// String renders the table with a header separator row.
func (t *Table) String() string {
	colCount := len(t.header)

	// Calculate max widths (using display width), at least 3 for the separator.
	colWidths := make([]int, colCount)
	for i := range colWidths {
		colWidths[i] = 3
	}

	for _, row := range append([][]string{t.header}, t.rows...) {
		for i := 0; i < len(row) && i < colCount; i++ {
			if w := runewidth.StringWidth(strings.TrimSpace(row[i])); w > colWidths[i] {
				colWidths[i] = w
			}
		}
	}

	lines := make([]string, 0, len(t.rows)+2)
	lines = append(lines, formatRow(t.header, colWidths, false))
	lines = append(lines, formatRow(nil, colWidths, true))

	for _, row := range t.rows {
		lines = append(lines, formatRow(row, colWidths, false))
	}

	return strings.Join(lines, "\n")
}

func formatRow(row []string, colWidths []int, separator bool) string {
	var sb strings.Builder

	sb.WriteString("|")

	for j, width := range colWidths {
		sb.WriteString(" ")

		if separator {
			sb.WriteString(strings.Repeat("-", width))
		} else {
			content := ""
			if j < len(row) {
				content = strings.TrimSpace(row[j])
			}

			sb.WriteString(content)

			if padding := width - runewidth.StringWidth(content); padding > 0 {
				sb.WriteString(strings.Repeat(" ", padding))
			}
		}

		sb.WriteString(" |")
	}

	return sb.String()
}
