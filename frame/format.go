package frame

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// DefaultMaxDisplayRows bounds the rows String renders.
const DefaultMaxDisplayRows = 25

// String renders the table in the boxed layout used for golden tests:
// a shape line, then the column names and types above the rows.
func (t *Table) String() string {
	return t.Format(DefaultMaxDisplayRows)
}

// Format renders at most maxRows rows. Longer tables show their head and
// tail around an ellipsis row.
func (t *Table) Format(maxRows int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "shape: (%d, %d)", t.RowCount(), t.ColumnCount())
	if len(t.columns) == 0 {
		return b.String()
	}

	rows := seq(0, t.RowCount())
	elided := maxRows >= 0 && len(rows) > maxRows
	if elided {
		head := (maxRows + 1) / 2
		rows = append(rows[:head:head], rows[len(rows)-(maxRows-head):]...)
	}

	widths := make([]int, len(t.columns))
	header := [3][]string{}
	body := make([][]string, len(rows))
	for j, c := range t.columns {
		header[0] = append(header[0], c.Name())
		header[1] = append(header[1], "---")
		header[2] = append(header[2], c.Type().String())
		for _, h := range header {
			widths[j] = max(widths[j], lipgloss.Width(h[j]))
		}
		for i, r := range rows {
			cell := cellText(c, r)
			body[i] = append(body[i], cell)
			widths[j] = max(widths[j], lipgloss.Width(cell))
		}
	}
	if elided {
		ellipsis := make([]string, len(t.columns))
		for j := range ellipsis {
			ellipsis[j] = "…"
		}
		head := (maxRows + 1) / 2
		body = append(body[:head:head], append([][]string{ellipsis}, body[head:]...)...)
	}

	rule := func(left, fill, mid, right string) {
		b.WriteString("\n" + left)
		for j, w := range widths {
			if j > 0 {
				b.WriteString(mid)
			}
			b.WriteString(strings.Repeat(fill, w+2))
		}
		b.WriteString(right)
	}
	line := func(cells []string) {
		b.WriteString("\n│ ")
		for j, cell := range cells {
			if j > 0 {
				b.WriteString(" ┆ ")
			}
			b.WriteString(lipgloss.PlaceHorizontal(widths[j], lipgloss.Left, cell))
		}
		b.WriteString(" │")
	}

	rule("┌", "─", "┬", "┐")
	for _, h := range header {
		line(h)
	}
	rule("╞", "═", "╪", "╡")
	for _, cells := range body {
		line(cells)
	}
	rule("└", "─", "┴", "┘")
	return b.String()
}

func cellText(c Column, row int) string {
	v := c.Get(row)
	if r, ok := v.(rune); ok && c.Type() == Char {
		return string(r)
	}
	return formatValue(v)
}
