package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// maxCellWidth caps a column so wide values do not break the layout.
const maxCellWidth = 48

// Table is a box-drawn table. The first column is highlighted as the row key.
type Table struct {
	Headers []string
	Rows    [][]string
}

// widths returns the display width of each column.
func (t *Table) widths() []int {
	widths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range t.Rows {
		for i := range widths {
			if i < len(row) {
				widths[i] = max(widths[i], runewidth.StringWidth(row[i]))
			}
		}
	}
	for i := range widths {
		widths[i] = min(widths[i], maxCellWidth)
	}
	return widths
}

// Render writes the table to w.
func (t *Table) Render(w io.Writer) error {
	if len(t.Headers) == 0 {
		return nil
	}
	widths := t.widths()

	var sb strings.Builder
	border := func(left, mid, right string) {
		sb.WriteString(BorderStyle.Render(left))
		for i, cw := range widths {
			sb.WriteString(BorderStyle.Render(strings.Repeat(Horizontal, cw+2)))
			if i < len(widths)-1 {
				sb.WriteString(BorderStyle.Render(mid))
			}
		}
		sb.WriteString(BorderStyle.Render(right))
		sb.WriteString("\n")
	}

	// Top border
	border(TopLeft, TopT, TopRight)

	// Header row
	sb.WriteString(BorderStyle.Render(Vertical))
	for i, h := range t.Headers {
		sb.WriteString(HeaderStyle.Render(" " + padRight(h, widths[i]) + " "))
		sb.WriteString(BorderStyle.Render(Vertical))
	}
	sb.WriteString("\n")

	// Header separator
	border(LeftT, Cross, RightT)

	// Data rows
	for _, row := range t.Rows {
		sb.WriteString(BorderStyle.Render(Vertical))
		for i := range widths {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			text := " " + padRight(cell, widths[i]) + " "
			if i == 0 {
				sb.WriteString(IDStyle.Render(text))
			} else {
				sb.WriteString(ValueStyle.Render(text))
			}
			sb.WriteString(BorderStyle.Render(Vertical))
		}
		sb.WriteString("\n")
	}

	// Bottom border
	border(BottomLeft, BottomT, BottomRight)

	_, err := io.WriteString(w, sb.String())
	return err
}

// PrintCount prints a muted item count under a table.
func PrintCount(w io.Writer, n int, noun string) {
	if n != 1 {
		noun += "s"
	}
	fmt.Fprintln(w, MutedStyle.Render(fmt.Sprintf("  %d %s", n, noun)))
}
