package formatter

import (
	"fmt"
	"io"

	"github.com/penwyp/go-life-tracker/internal/core/model"
	"github.com/penwyp/go-life-tracker/internal/core/streak"
	"github.com/penwyp/go-life-tracker/internal/data/aggregator"
	"github.com/penwyp/go-life-tracker/internal/util"
)

// SummaryFormatter prints the weekly goal summary, chart and streaks.
type SummaryFormatter struct {
	w     io.Writer
	color bool
}

func NewSummaryFormatter(w io.Writer, color bool) *SummaryFormatter {
	return &SummaryFormatter{w: w, color: color}
}

func (f *SummaryFormatter) title(s string) string {
	if f.color {
		return util.FormatDataTitle(s)
	}
	return s
}

// Weekly prints the headline and a per-day chart of the grid.
func (f *SummaryFormatter) Weekly(g *aggregator.Grid, categories []model.Category, s aggregator.Summary) error {
	fmt.Fprintln(f.w, f.title(fmt.Sprintf("Last %d days", len(g.Days()))))
	fmt.Fprintf(f.w, "This week: %s\n", util.FormatMinutes(s.TotalMinutes))
	if s.GoalMinutes > 0 {
		fmt.Fprintf(f.w, "Goal: %s  %s %s of weekly goal\n",
			util.FormatMinutes(s.GoalMinutes), util.CreateProgressBar(float64(s.Percent), 22), util.FormatPercent(s.Percent))
	} else {
		fmt.Fprintln(f.w, "Goal: none set")
	}
	fmt.Fprintln(f.w)
	return NewTableFormatter(f.w).Format(WeeklyChart(g, categories))
}

// WeeklyChart is the minutes-per-day grid with a total column.
func WeeklyChart(g *aggregator.Grid, categories []model.Category) Table {
	days := g.Days()
	t := Table{Headers: []string{"Category"}, Align: []Align{AlignLeft}}
	for _, day := range days {
		t.Headers = append(t.Headers, shortDay(day))
		t.Align = append(t.Align, AlignRight)
	}
	t.Headers = append(t.Headers, "Total")
	t.Align = append(t.Align, AlignRight)

	weekly := aggregator.WeeklyTotals(g)
	dayTotals := make([]int64, len(days))
	var all int64
	for _, c := range categories {
		row := []string{c.Name}
		for i, m := range g.Column(c.ID) {
			row = append(row, minutesCell(m))
			dayTotals[i] += m
		}
		row = append(row, util.FormatMinutes(weekly[c.ID]))
		all += weekly[c.ID]
		t.Rows = append(t.Rows, row)
	}

	t.Footer = []string{"Total"}
	for _, m := range dayTotals {
		t.Footer = append(t.Footer, minutesCell(m))
	}
	t.Footer = append(t.Footer, util.FormatMinutes(all))
	return t
}

func shortDay(key string) string {
	if len(key) == len("2006-01-02") {
		return key[5:]
	}
	return key
}

func minutesCell(m int64) string {
	if m == 0 {
		return "·"
	}
	return fmt.Sprintf("%d", m)
}

// Streaks prints one line per category.
func (f *SummaryFormatter) Streaks(categories []model.Category, results map[string]streak.Result) error {
	fmt.Fprintln(f.w, f.title("Streaks (goal-based)"))
	for _, c := range categories {
		if _, err := fmt.Fprintln(f.w, StreakLine(c, results[c.ID])); err != nil {
			return err
		}
	}
	return nil
}

// StreakLine is "Name: N day streak (best M)", or a prompt to set a goal.
func StreakLine(c model.Category, r streak.Result) string {
	if !c.HasGoal() || !r.Configured {
		return fmt.Sprintf("%s: set a daily goal to track streaks", c.Name)
	}
	return fmt.Sprintf("%s: %d day streak (best %d)", c.Name, r.Current, r.Best)
}
