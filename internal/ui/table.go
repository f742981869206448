package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Column defines a table column.
type Column struct {
	Title string
	Width int
}

// Row is a slice of cell values.
type Row []string

// Table renders a lipgloss-styled table.
type Table struct {
	Columns []Column
	Rows    []Row
	SelIdx  int // selected row index (-1 = none)
}

// NewTable creates a new table.
func NewTable(cols []Column) *Table {
	return &Table{Columns: cols, SelIdx: -1}
}

// AddRow appends a row.
func (t *Table) AddRow(r Row) {
	t.Rows = append(t.Rows, r)
}

// Render returns the full table as a string. Cells are padded by visible
// width so that pre-styled cells line up.
func (t *Table) Render() string {
	var sb strings.Builder

	headerStyle := lipgloss.NewStyle().Foreground(ColorHighlight).Bold(true)
	cellStyle := lipgloss.NewStyle().Foreground(ColorValue)

	cells := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		cells[i] = headerStyle.Render(padCell(col.Title, col.Width))
	}
	sb.WriteString(strings.Join(cells, " ") + "\n")

	for i, col := range t.Columns {
		cells[i] = StyleMeta.Render(strings.Repeat("─", col.Width))
	}
	sb.WriteString(strings.Join(cells, " ") + "\n")

	for r, row := range t.Rows {
		style := cellStyle
		if r == t.SelIdx {
			style = StyleSelected
		}
		for i, col := range t.Columns {
			val := ""
			if i < len(row) {
				val = row[i]
			}
			cells[i] = style.Render(padCell(val, col.Width))
		}
		sb.WriteString(strings.Join(cells, " ") + "\n")
	}

	return sb.String()
}

// KeyValueBlock renders a set of key-value pairs in a bordered box.
func KeyValueBlock(title string, pairs [][2]string) string {
	var sb strings.Builder
	if title != "" {
		sb.WriteString(StyleTitle.Render(title) + "\n")
	}
	for _, p := range pairs {
		key := StyleMeta.Render(fmt.Sprintf("%-18s", p[0]+":"))
		sb.WriteString("  " + key + " " + StyleValue.Render(p[1]) + "\n")
	}
	return StyleBorder.Render(strings.TrimRight(sb.String(), "\n"))
}

// padCell fits s into exactly width visible columns, cutting with an
// ellipsis when too long.
func padCell(s string, width int) string {
	w := lipgloss.Width(s)
	if w == width {
		return s
	}
	if w < width {
		return s + strings.Repeat(" ", width-w)
	}
	r := []rune(s)
	if width <= 1 || len(r) != w {
		// Styled or multi-width content: leave as is rather than cut escapes.
		return s
	}
	return string(r[:width-1]) + "…"
}

// padR pads s to visible width n; longer strings are returned unchanged.
func padR(s string, n int) string {
	w := lipgloss.Width(s)
	if w >= n {
		return s
	}
	return s + strings.Repeat(" ", n-w)
}

// trimErr shortens an RPC error for a table cell.
func trimErr(s string) string {
	for _, marker := range []string{"dial tcp", "connection refused", "context deadline", "SUI RPC"} {
		if idx := strings.Index(s, marker); idx >= 0 {
			s = s[idx:]
			break
		}
	}
	if len(s) > 30 {
		return s[:30] + "…"
	}
	return s
}
