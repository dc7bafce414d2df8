package formatter

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/penwyp/go-life-tracker/internal/core/model"
	"github.com/penwyp/go-life-tracker/internal/core/streak"
	"github.com/penwyp/go-life-tracker/internal/data/aggregator"
	"github.com/penwyp/go-life-tracker/internal/data/report"
	"github.com/penwyp/go-life-tracker/internal/testing/fixtures"
	"github.com/penwyp/go-life-tracker/internal/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func utc(day, hour, m int) time.Time {
	return time.Date(2024, 1, day, hour, m, 0, 0, time.UTC)
}

func TestRenderExport(t *testing.T) {
	rows := []report.ExportRow{
		{
			IntervalID: "iv-1",
			Category:   "🧑‍💻 Work & Productivity",
			Project:    `The "Big" One`,
			Start:      time.Date(2024, 1, 1, 23, 30, 0, 0, time.UTC),
			End:        time.Date(2024, 1, 2, 1, 0, 0, 5e6, time.UTC),
			DurationMs: 5400005,
			Note:       "a, b",
		},
	}

	got := RenderExport(rows)

	lines := strings.Split(got, "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "interval_id,category,project,start_iso,end_iso,duration_ms,note", lines[0])
	assert.Equal(t,
		`"iv-1","🧑‍💻 Work & Productivity","The ""Big"" One","2024-01-01T23:30:00.000Z","2024-01-02T01:00:00.005Z","5400005","a, b"`,
		lines[1])
	assert.False(t, strings.HasSuffix(got, "\n"))
}

func TestRenderExportConvertsToUTC(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)
	rows := []report.ExportRow{{
		IntervalID: "x",
		Start:      time.Date(2024, 1, 1, 9, 0, 0, 0, tokyo),
		End:        time.Date(2024, 1, 1, 10, 0, 0, 0, tokyo),
		DurationMs: 3600000,
	}}

	got := RenderExport(rows)
	assert.Contains(t, got, `"2024-01-01T00:00:00.000Z","2024-01-01T01:00:00.000Z"`)
	assert.Contains(t, got, `,""`, "missing note is an empty quoted field")
}

func TestCSVFormatterWrites(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewCSVFormatter(&buf).FormatExport(nil))
	assert.Equal(t, strings.Join(ExportHeader, ","), buf.String())
}

func TestCSVFormatterHistory(t *testing.T) {
	var buf bytes.Buffer
	rows := []report.Row{{Day: "2024-01-02", Category: "Health", Project: "Gym", Millis: 1800000, Notes: "legs • cardio"}}

	require.NoError(t, NewCSVFormatter(&buf).FormatHistory(rows))

	assert.Equal(t, "day,category,project,duration_ms,notes\n"+
		`"2024-01-02","Health","Gym","1800000","legs • cardio"`+"\n", buf.String())
}

func TestQuoteField(t *testing.T) {
	assert.Equal(t, `""`, QuoteField(""))
	assert.Equal(t, `"say ""hi"""`, QuoteField(`say "hi"`))
	assert.Equal(t, "\"line\nbreak\"", QuoteField("line\nbreak"))
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	rows := []report.Row{{Day: "2024-01-02", Category: "Work & Play", Project: "P", Millis: 60000, Notes: "n"}}

	require.NoError(t, NewJSONFormatter(&buf).Format(rows))

	out := buf.String()
	assert.Contains(t, out, `"category": "Work & Play"`)
	assert.Contains(t, out, `"durationMs": 60000`)
	assert.True(t, strings.HasSuffix(out, "]\n"))
}

func TestTableFormatterAlignsWideRunes(t *testing.T) {
	var buf bytes.Buffer
	table := Table{
		Headers: []string{"Name", "Time"},
		Align:   []Align{AlignLeft, AlignRight},
		Rows: [][]string{
			{"🏃 Health", "00:30:00"},
			{"Plain", "01:00:00"},
		},
		Footer: []string{"Total", "01:30:00"},
	}

	require.NoError(t, NewTableFormatter(&buf).Format(table))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 8)
	assert.True(t, strings.HasPrefix(lines[0], "┌"))
	assert.True(t, strings.HasPrefix(lines[7], "└"))
	width := util.GetDisplayWidth(lines[0])
	for _, line := range lines {
		assert.Equal(t, width, util.GetDisplayWidth(line), "line %q", line)
	}
	assert.Contains(t, lines[3], "🏃 Health")
	assert.Contains(t, lines[6], "Total")
}

func TestHistoryTable(t *testing.T) {
	table := HistoryTable([]report.Row{
		{Day: "2024-01-02", Category: "Work", Project: "CRM", Millis: 3600000, Notes: "a • b"},
		{Day: "2024-01-03", Category: "Work", Project: "CRM", Millis: 1800000},
	})

	require.Len(t, table.Rows, 2)
	assert.Equal(t, "01:00:00", table.Rows[0][3])
	assert.Equal(t, "a • b", table.Rows[0][4])
	assert.Equal(t, "01:30:00", table.Footer[3])
}

func TestCategoryLinesAndTodayTable(t *testing.T) {
	now := utc(2, 10, 0)
	state := fixtures.NewStateBuilder().
		Goal(model.CategoryHealth, 60).
		Finished(model.CategoryHealth, utc(1, 7, 0), utc(1, 8, 0), "").
		Finished(model.CategoryHealth, utc(2, 7, 0), utc(2, 7, 30), "").
		Running(model.CategoryWork, utc(2, 9, 0)).
		Build()
	totals := aggregator.ComputeTotals(state, now)
	live := aggregator.LiveToday(state, totals, now)

	lines := CategoryLines(state, totals, live, now.UnixMilli())
	require.Len(t, lines, 8)

	work, health := lines[0], lines[1]
	assert.True(t, work.Running)
	assert.Equal(t, int64(3600000), work.TodayMs)
	assert.Equal(t, int64(3600000), work.AllTimeMs)
	assert.Equal(t, int64(1800000), health.TodayMs)
	assert.Equal(t, int64(5400000), health.AllTimeMs)
	assert.InDelta(t, 50.0, health.GoalPercent(), 1e-9)
	assert.Zero(t, work.GoalPercent())

	table := TodayTable(lines)
	assert.Equal(t, runningMarker, table.Rows[0][0])
	assert.Equal(t, "-", table.Rows[0][4])
	assert.Equal(t, "1h 0m", table.Rows[1][4])
	assert.Contains(t, table.Rows[1][5], "50%")
	assert.Equal(t, "01:30:00", table.Footer[2])
}

func TestProjectsTable(t *testing.T) {
	b := fixtures.NewStateBuilder()
	crm := b.Project(model.CategoryWork, "CRM")
	state := b.Build()
	state.LastProjectByCategory[model.CategoryWork] = crm

	table := ProjectsTable(state, model.CategoryWork, aggregator.Totals{})
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "", table.Rows[0][0])
	assert.Equal(t, "*", table.Rows[1][0])
	assert.Equal(t, "CRM", table.Rows[1][2])

	all := ProjectsTable(state, "", aggregator.Totals{})
	assert.Len(t, all.Rows, 9)
}

func TestGoalsTable(t *testing.T) {
	state := fixtures.NewStateBuilder().Goal(model.CategoryMind, 15).Build()
	table := GoalsTable(state.Categories)
	assert.Equal(t, "-", table.Rows[0][2])
	assert.Equal(t, "15", table.Rows[2][2])
}

func TestCalendarTable(t *testing.T) {
	segs := []report.DaySegment{
		{Label: "Work — CRM", Start: utc(1, 9, 0), End: utc(1, 10, 30), Running: true, Note: "n"},
	}
	table := CalendarTable(segs)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, []string{runningMarker, "09:00", "10:30", "01:30:00", "Work — CRM", "n"}, table.Rows[0])
}

func TestRunningLine(t *testing.T) {
	state := fixtures.NewStateBuilder().Build()
	assert.Equal(t, "Nothing is being tracked", RunningLine(state, 0))

	state = fixtures.NewStateBuilder().Running(model.CategoryMind, utc(1, 9, 0)).Build()
	line := RunningLine(state, utc(1, 10, 2).Add(3*time.Second).UnixMilli())
	assert.Equal(t, "▶ 🧠 Mental Wellbeing — General Wellbeing  Elapsed: 01:02:03", line)
}

func TestStreakLine(t *testing.T) {
	c := model.Category{Name: "Health", GoalMinutes: 30}
	assert.Equal(t, "Health: 3 day streak (best 5)", StreakLine(c, streak.Result{Configured: true, Current: 3, Best: 5}))

	c.GoalMinutes = 0
	assert.Equal(t, "Health: set a daily goal to track streaks", StreakLine(c, streak.Result{}))
}

func TestSummaryFormatterWeekly(t *testing.T) {
	now := utc(7, 20, 0)
	state := fixtures.NewStateBuilder().
		Goal(model.CategoryHealth, 30).
		Finished(model.CategoryHealth, utc(6, 7, 0), utc(6, 8, 0), "").
		Build()
	g := aggregator.DailyGrid(state, now, 7)
	s := aggregator.WeeklySummary(g, state.Categories)

	var buf bytes.Buffer
	require.NoError(t, NewSummaryFormatter(&buf, false).Weekly(g, state.Categories, s))

	out := buf.String()
	assert.Contains(t, out, "Last 7 days")
	assert.Contains(t, out, "This week: 1h 0m")
	assert.Contains(t, out, "Goal: 3h 30m")
	assert.Contains(t, out, "29% of weekly goal")
	assert.Contains(t, out, "01-06")
	assert.NotContains(t, out, util.ColorReset)
}

func TestWeeklyChart(t *testing.T) {
	now := utc(3, 20, 0)
	state := fixtures.NewStateBuilder().
		Finished(model.CategoryWork, utc(2, 9, 0), utc(2, 10, 0), "").
		Finished(model.CategoryWork, utc(3, 9, 0), utc(3, 9, 20), "").
		Build()
	g := aggregator.DailyGrid(state, now, 3)

	table := WeeklyChart(g, state.Categories)
	assert.Equal(t, []string{"Category", "01-01", "01-02", "01-03", "Total"}, table.Headers)
	assert.Equal(t, []string{state.Categories[0].Name, "·", "60", "20", "1h 20m"}, table.Rows[0])
	assert.Equal(t, []string{"Total", "·", "60", "20", "1h 20m"}, table.Footer)
}

func TestSummaryFormatterStreaks(t *testing.T) {
	categories := []model.Category{
		{ID: "a", Name: "A", GoalMinutes: 10},
		{ID: "b", Name: "B"},
	}
	results := map[string]streak.Result{"a": {Configured: true, Current: 2, Best: 4}}

	var buf bytes.Buffer
	require.NoError(t, NewSummaryFormatter(&buf, false).Streaks(categories, results))

	assert.Equal(t, "Streaks (goal-based)\nA: 2 day streak (best 4)\nB: set a daily goal to track streaks\n", buf.String())
}
