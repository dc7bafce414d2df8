package layout

import (
	"strings"

	"github.com/penwyp/go-life-tracker/internal/presentation/formatter"
)

// FullLayoutStrategy implements the full dashboard layout
type FullLayoutStrategy struct {
	BaseStrategy
}

func (s *FullLayoutStrategy) GetName() string {
	return "Full Dashboard"
}

// Render shows the today table, the weekly summary with its chart, and streaks.
func (s *FullLayoutStrategy) Render(d Dashboard, width int) string {
	var sb strings.Builder

	var today strings.Builder
	_ = formatter.NewTableFormatter(&today).Format(formatter.TodayTable(d.Lines))
	s.section(&sb, "Today", today.String())

	var week strings.Builder
	summary := formatter.NewSummaryFormatter(&week, false)
	if d.Week != nil {
		_ = summary.Weekly(d.Week, d.State.Categories, d.Summary)
		sb.WriteString(strings.TrimRight(week.String(), "\n"))
		sb.WriteString("\n\n")
		week.Reset()
	}

	_ = summary.Streaks(d.State.Categories, d.Streaks)
	sb.WriteString(strings.TrimRight(week.String(), "\n"))
	return sb.String()
}
