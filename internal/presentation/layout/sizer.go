package layout

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/penwyp/go-life-tracker/internal/util"
)

// Package-level singleton Sizer instance
var sharedSizer = &Sizer{}

const (
	framePadding = 4 // horizontal padding of the dashboard frame
	minWidth     = 40
	maxWidth     = 120
)

type Sizer struct {
}

// displayWidth calculates the actual display width of a string containing emojis and Unicode characters
func (i Sizer) displayWidth(s string) int {
	return runewidth.StringWidth(s)
}

// PadString pads a string to a specific display width, handling emojis correctly
func (i Sizer) PadString(s string, width int, leftAlign bool) string {
	actualWidth := i.displayWidth(s)
	if actualWidth >= width {
		return s
	}

	padding := strings.Repeat(" ", width-actualWidth)
	if leftAlign {
		return s + padding
	}
	return padding + s
}

// ContentWidth is the usable width inside the frame for a terminal of termWidth
// columns; 0 asks the terminal.
func (i Sizer) ContentWidth(termWidth int) int {
	if termWidth <= 0 {
		termWidth = util.TerminalWidth()
	}
	w := termWidth - framePadding
	if w < minWidth {
		return minWidth
	}
	if w > maxWidth {
		return maxWidth
	}
	return w
}

// NameWidth is the widest category name, for aligning compact rows.
func (i Sizer) NameWidth(categories []string) int {
	w := 0
	for _, c := range categories {
		if d := i.displayWidth(c); d > w {
			w = d
		}
	}
	return w
}
