package formatter

import (
	"fmt"
	"strconv"

	"github.com/penwyp/go-life-tracker/internal/core/model"
	"github.com/penwyp/go-life-tracker/internal/data/aggregator"
	"github.com/penwyp/go-life-tracker/internal/data/report"
	"github.com/penwyp/go-life-tracker/internal/util"
)

const runningMarker = "▶"

// HistoryTable lists history rows with a total footer.
func HistoryTable(rows []report.Row) Table {
	t := Table{
		Headers: []string{"Day", "Category", "Project", "Time", "Notes"},
		Align:   []Align{AlignLeft, AlignLeft, AlignLeft, AlignRight, AlignLeft},
	}
	var total int64
	for _, r := range rows {
		t.Rows = append(t.Rows, []string{r.Day, r.Category, r.Project, util.FormatHMS(r.Millis), util.Truncate(r.Notes, 40)})
		total += r.Millis
	}
	t.Footer = []string{"Total", "", "", util.FormatHMS(total), ""}
	return t
}

// CategoryLine is one category's figures for the today view.
type CategoryLine struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	TodayMs     int64  `json:"todayMs"`
	AllTimeMs   int64  `json:"allTimeMs"`
	GoalMinutes int    `json:"goalMinutes"`
	Running     bool   `json:"running"`
}

// GoalPercent is today's progress towards the goal, 0 without a goal.
func (l CategoryLine) GoalPercent() float64 {
	if l.GoalMinutes <= 0 {
		return 0
	}
	return float64(l.TodayMs) / float64(int64(l.GoalMinutes)*60*1000) * 100
}

// CategoryLines combines finished totals with live figures. All-time includes
// the running interval so far.
func CategoryLines(state model.State, totals aggregator.Totals, live map[string]int64, nowMs int64) []CategoryLine {
	lines := make([]CategoryLine, 0, len(state.Categories))
	for _, c := range state.Categories {
		line := CategoryLine{
			ID:          c.ID,
			Name:        c.Name,
			TodayMs:     live[c.ID],
			AllTimeMs:   totals.CategoryAllTime[c.ID],
			GoalMinutes: c.GoalMinutes,
		}
		if r := state.Running; r != nil && r.CategoryID == c.ID {
			line.Running = true
			line.AllTimeMs += r.Elapsed(nowMs)
		}
		lines = append(lines, line)
	}
	return lines
}

// TodayTable renders category lines with goal progress bars.
func TodayTable(lines []CategoryLine) Table {
	t := Table{
		Headers: []string{"", "Category", "Today", "All-time", "Goal", "Progress"},
		Align:   []Align{AlignLeft, AlignLeft, AlignRight, AlignRight, AlignRight, AlignLeft},
	}
	var today int64
	for _, l := range lines {
		marker, goal, progress := "", "-", ""
		if l.Running {
			marker = runningMarker
		}
		if l.GoalMinutes > 0 {
			pct := l.GoalPercent()
			goal = util.FormatMinutes(int64(l.GoalMinutes))
			progress = util.CreateProgressBar(pct, 22) + " " + util.FormatPercent(int(pct))
		}
		t.Rows = append(t.Rows, []string{marker, l.Name, util.FormatHMS(l.TodayMs), util.FormatHMS(l.AllTimeMs), goal, progress})
		today += l.TodayMs
	}
	t.Footer = []string{"", "Total", util.FormatHMS(today), "", "", ""}
	return t
}

// ProjectsTable lists projects, optionally limited to one category. The
// category's default project is starred.
func ProjectsTable(state model.State, categoryID string, totals aggregator.Totals) Table {
	t := Table{
		Headers: []string{"", "Category", "Project", "ID", "Today", "All-time"},
		Align:   []Align{AlignLeft, AlignLeft, AlignLeft, AlignLeft, AlignRight, AlignRight},
	}
	for _, c := range state.Categories {
		if categoryID != "" && c.ID != categoryID {
			continue
		}
		def, _ := state.DefaultProject(c.ID)
		for _, p := range state.ProjectsIn(c.ID) {
			marker := ""
			if p.ID == def.ID {
				marker = "*"
			}
			t.Rows = append(t.Rows, []string{
				marker, c.Name, p.Name, p.ID,
				util.FormatHMS(totals.ProjectToday[p.ID]),
				util.FormatHMS(totals.ProjectAllTime[p.ID]),
			})
		}
	}
	return t
}

// GoalsTable lists daily goals per category.
func GoalsTable(categories []model.Category) Table {
	t := Table{
		Headers: []string{"Category", "ID", "Daily goal (min)"},
		Align:   []Align{AlignLeft, AlignLeft, AlignRight},
	}
	for _, c := range categories {
		goal := "-"
		if c.HasGoal() {
			goal = strconv.Itoa(c.GoalMinutes)
		}
		t.Rows = append(t.Rows, []string{c.Name, c.ID, goal})
	}
	return t
}

// CalendarTable lists a day's segments in order.
func CalendarTable(segs []report.DaySegment) Table {
	t := Table{
		Headers: []string{"", "Start", "End", "Time", "Activity", "Note"},
		Align:   []Align{AlignLeft, AlignLeft, AlignLeft, AlignRight, AlignLeft, AlignLeft},
	}
	for _, s := range segs {
		marker := ""
		if s.Running {
			marker = runningMarker
		}
		t.Rows = append(t.Rows, []string{
			marker,
			s.Start.Format("15:04"),
			s.End.Format("15:04"),
			util.FormatHMS(s.Duration().Milliseconds()),
			s.Label,
			util.Truncate(s.Note, 30),
		})
	}
	return t
}

// RunningLine describes the running interval, or that nothing is tracked.
func RunningLine(state model.State, nowMs int64) string {
	r := state.Running
	if r == nil {
		return "Nothing is being tracked"
	}
	return fmt.Sprintf("%s %s  Elapsed: %s", runningMarker,
		report.Label(state, r.CategoryID, r.ProjectID), util.FormatHMS(r.Elapsed(nowMs)))
}
