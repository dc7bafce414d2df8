package layout

import (
	"fmt"
	"strings"

	"github.com/penwyp/go-life-tracker/internal/presentation/formatter"
	"github.com/penwyp/go-life-tracker/internal/util"
)

const minimalBarWidth = 12

// MinimalLayoutStrategy implements the minimal dashboard layout: one line per
// category, a weekly headline, and streaks only where a goal is set.
type MinimalLayoutStrategy struct {
	BaseStrategy
}

func (s *MinimalLayoutStrategy) GetName() string {
	return "Minimal Dashboard"
}

func (s *MinimalLayoutStrategy) Render(d Dashboard, width int) string {
	sizer := s.GetSizer()
	nameWidth := sizer.NameWidth(s.categoryNames(d))

	var today strings.Builder
	for _, l := range d.Lines {
		marker := " "
		if l.Running {
			marker = "▶"
		}
		line := fmt.Sprintf("%s %s  %s", marker, sizer.PadString(l.Name, nameWidth, true), util.FormatHMS(l.TodayMs))
		if l.GoalMinutes > 0 {
			pct := l.GoalPercent()
			line += fmt.Sprintf("  %s %s", util.CreateProgressBar(pct, minimalBarWidth), util.FormatPercent(int(pct)))
		}
		today.WriteString(util.Truncate(line, sizer.ContentWidth(width)))
		today.WriteString("\n")
	}

	var sb strings.Builder
	s.section(&sb, "Today", today.String())

	week := "This week: " + util.FormatMinutes(d.Summary.TotalMinutes)
	if d.Summary.GoalMinutes > 0 {
		week += fmt.Sprintf(" (%s of weekly goal)", util.FormatPercent(d.Summary.Percent))
	}
	sb.WriteString(week)

	var streaks []string
	for _, c := range d.State.Categories {
		if r := d.Streaks[c.ID]; r.Configured {
			streaks = append(streaks, formatter.StreakLine(c, r))
		}
	}
	if len(streaks) > 0 {
		sb.WriteString("\n\n")
		sb.WriteString(strings.Join(streaks, "\n"))
	}
	return sb.String()
}
