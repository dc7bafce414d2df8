package layout

import (
	"strings"
)

// BaseStrategy provides common functionality for all layout strategies
type BaseStrategy struct {
}

// GetSizer returns the shared sizer instance
func (b *BaseStrategy) GetSizer() *Sizer {
	return sharedSizer
}

// section writes a titled block followed by a blank line.
func (b *BaseStrategy) section(sb *strings.Builder, title, body string) {
	sb.WriteString(title)
	sb.WriteString("\n")
	sb.WriteString(strings.TrimRight(body, "\n"))
	sb.WriteString("\n\n")
}

func (b *BaseStrategy) categoryNames(d Dashboard) []string {
	names := make([]string, 0, len(d.State.Categories))
	for _, c := range d.State.Categories {
		names = append(names, c.Name)
	}
	return names
}

// Separator is a horizontal rule sized to the frame of a termWidth-wide terminal.
func Separator(termWidth int) string {
	return strings.Repeat("─", sharedSizer.ContentWidth(termWidth))
}
