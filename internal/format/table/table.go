package table

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
)

// Column configures one column. A zero MaxWidth leaves cells untouched.
type Column struct {
	Align    Alignment
	MaxWidth int
	// Style is applied after padding, so styled cells still line up.
	Style *lipgloss.Style
}

const ellipsis = "…"

// Format returns the rows padded according to the widest entry in each
// column. Rows may be ragged; missing cells are treated as empty.
func Format(rows [][]string, columns []Column) []string {
	if len(rows) == 0 {
		return nil
	}
	colCount := 0
	for _, row := range rows {
		if len(row) > colCount {
			colCount = len(row)
		}
	}

	cells := make([][]string, len(rows))
	widths := make([]int, colCount)
	for r, row := range rows {
		cells[r] = make([]string, colCount)
		for c := 0; c < colCount; c++ {
			var cell string
			if c < len(row) {
				cell = clip(row[c], column(columns, c).MaxWidth)
			}
			cells[r][c] = cell
			if w := cellWidth(cell); w > widths[c] {
				widths[c] = w
			}
		}
	}

	out := make([]string, len(rows))
	for r, row := range cells {
		var b strings.Builder
		for c, cell := range row {
			if c > 0 {
				b.WriteString("  ")
			}
			col := column(columns, c)
			pad := strings.Repeat(" ", widths[c]-cellWidth(cell))
			if col.Align == AlignRight {
				cell = pad + cell
			} else if c < colCount-1 {
				cell += pad
			}
			if col.Style != nil {
				cell = col.Style.Render(cell)
			}
			b.WriteString(cell)
		}
		out[r] = strings.TrimRight(b.String(), " ")
	}
	return out
}

func column(columns []Column, c int) Column {
	if c < len(columns) {
		return columns[c]
	}
	return Column{}
}

func clip(text string, max int) string {
	if max <= 0 || cellWidth(text) <= max {
		return text
	}
	return truncate.StringWithTail(text, uint(max), ellipsis)
}

func cellWidth(text string) int {
	return lipgloss.Width(text)
}
