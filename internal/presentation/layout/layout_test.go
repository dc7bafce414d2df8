package layout

import (
	"strings"
	"testing"
	"time"

	"github.com/penwyp/go-life-tracker/internal/core/model"
	"github.com/penwyp/go-life-tracker/internal/core/streak"
	"github.com/penwyp/go-life-tracker/internal/data/aggregator"
	"github.com/penwyp/go-life-tracker/internal/presentation/formatter"
	"github.com/penwyp/go-life-tracker/internal/testing/fixtures"
	"github.com/stretchr/testify/assert"
)

var now = time.Date(2024, 5, 20, 18, 0, 0, 0, time.UTC)

func testDashboard() Dashboard {
	state := fixtures.NewStateBuilder().
		Goal(model.CategoryHealth, 30).
		Finished(model.CategoryHealth, now.Add(-3*time.Hour), now.Add(-150*time.Minute), "").
		Running(model.CategoryWork, now.Add(-20*time.Minute)).
		Build()
	totals := aggregator.ComputeTotals(state, now)
	week := aggregator.DailyGrid(state, now, 7)
	return Dashboard{
		Now:     now,
		State:   state,
		Lines:   formatter.CategoryLines(state, totals, aggregator.LiveToday(state, totals, now), now.UnixMilli()),
		Week:    week,
		Summary: aggregator.WeeklySummary(week, state.Categories),
		Streaks: streak.Compute(week, state.Categories),
	}
}

func TestGetLayoutStrategy(t *testing.T) {
	tests := []struct {
		style int
		name  string
	}{
		{LayoutFull, "Full Dashboard"},
		{LayoutMinimal, "Minimal Dashboard"},
		{42, "Full Dashboard"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.name, GetLayoutStrategy(tt.style).GetName())
		})
	}
}

func TestAutoLayout(t *testing.T) {
	assert.Equal(t, LayoutFull, AutoLayout(0))
	assert.Equal(t, LayoutMinimal, AutoLayout(80))
	assert.Equal(t, LayoutFull, AutoLayout(minFullWidth))
}

func TestFullLayoutRender(t *testing.T) {
	out := GetLayoutStrategy(LayoutFull).Render(testDashboard(), 140)

	assert.True(t, strings.HasPrefix(out, "Today\n"))
	assert.Contains(t, out, "Last 7 days")
	assert.Contains(t, out, "This week: 0h 50m")
	assert.Contains(t, out, "Streaks (goal-based)")
	assert.Contains(t, out, "🏃 Health & Fitness: 1 day streak (best 1)")
	assert.Less(t, strings.Index(out, "Today"), strings.Index(out, "Last 7 days"))
	assert.Less(t, strings.Index(out, "Last 7 days"), strings.Index(out, "Streaks"))
}

func TestMinimalLayoutRender(t *testing.T) {
	out := GetLayoutStrategy(LayoutMinimal).Render(testDashboard(), 80)

	lines := strings.Split(out, "\n")
	assert.Equal(t, "Today", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "▶ 🧑‍💻 Work & Productivity"))
	assert.Contains(t, lines[1], "00:20:00")
	assert.Contains(t, lines[2], "00:30:00")
	assert.Contains(t, lines[2], "100%")
	assert.Contains(t, out, "This week: 0h 50m (")
	assert.Contains(t, out, "🏃 Health & Fitness: 1 day streak (best 1)")
	assert.NotContains(t, out, "set a daily goal", "streaks without a goal are left out")
	for _, l := range lines {
		assert.LessOrEqual(t, sharedSizer.displayWidth(l), sharedSizer.ContentWidth(80))
	}
}

func TestSizer(t *testing.T) {
	s := Sizer{}

	assert.Equal(t, "ab  ", s.PadString("ab", 4, true))
	assert.Equal(t, "  ab", s.PadString("ab", 4, false))
	assert.Equal(t, "abcdef", s.PadString("abcdef", 4, true))
	assert.Equal(t, "🏃  ", s.PadString("🏃", 4, true))

	assert.Equal(t, 76, s.ContentWidth(80))
	assert.Equal(t, minWidth, s.ContentWidth(20))
	assert.Equal(t, maxWidth, s.ContentWidth(400))

	assert.Equal(t, 4, s.NameWidth([]string{"ab", "🏃🏃", "c"}))
}

func TestSeparator(t *testing.T) {
	assert.Equal(t, strings.Repeat("─", 76), Separator(80))
}
