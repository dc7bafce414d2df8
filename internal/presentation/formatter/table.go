package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/penwyp/go-life-tracker/internal/util"
)

const minColumnWidth = 6

type TableFormatter struct {
	w io.Writer
}

func NewTableFormatter(w io.Writer) *TableFormatter {
	return &TableFormatter{w: w}
}

func (f *TableFormatter) Format(t Table) error {
	widths := f.calculateColumnWidths(t)

	f.printBorder(widths, "top")
	f.printRow(t, t.Headers, widths)
	f.printBorder(widths, "middle")
	for _, row := range t.Rows {
		f.printRow(t, row, widths)
	}
	if len(t.Footer) > 0 {
		f.printBorder(widths, "middle")
		f.printRow(t, t.Footer, widths)
	}
	f.printBorder(widths, "bottom")
	return nil
}

// calculateColumnWidths sizes columns by display width so emoji names line up
func (f *TableFormatter) calculateColumnWidths(t Table) []int {
	widths := make([]int, len(t.Headers))
	measure := func(cells []string) {
		for i, cell := range cells {
			if i < len(widths) {
				widths[i] = max(widths[i], util.GetDisplayWidth(cell))
			}
		}
	}
	measure(t.Headers)
	for _, row := range t.Rows {
		measure(row)
	}
	measure(t.Footer)

	for i := range widths {
		widths[i] = max(widths[i], minColumnWidth)
	}
	return widths
}

// printBorder prints table borders (top, middle, bottom)
func (f *TableFormatter) printBorder(widths []int, borderType string) {
	var left, middle, right string
	switch borderType {
	case "top":
		left, middle, right = "┌", "┬", "┐"
	case "middle":
		left, middle, right = "├", "┼", "┤"
	case "bottom":
		left, middle, right = "└", "┴", "┘"
	}

	var b strings.Builder
	b.WriteString(left)
	for i, width := range widths {
		b.WriteString(strings.Repeat("─", width+2)) // +2 for padding spaces
		if i < len(widths)-1 {
			b.WriteString(middle)
		}
	}
	b.WriteString(right)
	fmt.Fprintln(f.w, b.String())
}

func (f *TableFormatter) printRow(t Table, values []string, widths []int) {
	var b strings.Builder
	b.WriteString("│")
	for i, width := range widths {
		value := ""
		if i < len(values) {
			value = values[i]
		}
		if t.align(i) == AlignRight {
			value = util.PadLeft(value, width)
		} else {
			value = util.PadRight(value, width)
		}
		b.WriteString(" " + value + " │")
	}
	fmt.Fprintln(f.w, b.String())
}
