package aggregator

import (
	"math"
	"time"

	"github.com/penwyp/go-life-tracker/internal/core/cache"
	"github.com/penwyp/go-life-tracker/internal/core/model"
	"github.com/penwyp/go-life-tracker/internal/core/timeline"
)

// Aggregator derives totals and grids from a state. It keeps day buckets for
// finished intervals between calls, so repeated grids over a growing history only
// split the new intervals. All day keys are taken in now's location.
type Aggregator struct {
	buckets *cache.DayBuckets
}

func New() *Aggregator {
	return &Aggregator{buckets: cache.NewDayBuckets()}
}

// Buckets exposes the underlying cache, mainly for stats.
func (a *Aggregator) Buckets() *cache.DayBuckets {
	return a.buckets
}

// ComputeTotals is Totals without a long-lived aggregator.
func ComputeTotals(state model.State, now time.Time) Totals {
	return New().Totals(state, now)
}

// Totals sums finished intervals per category and project, all time and today.
// The running interval is excluded; see LiveToday.
func (a *Aggregator) Totals(state model.State, now time.Time) Totals {
	loc := now.Location()
	today := timeline.DayKey(now)
	t := newTotals()
	for _, f := range state.Intervals {
		for seg := range timeline.SplitMillis(f.Start, f.End, loc) {
			ms := seg.Millis()
			t.CategoryAllTime[f.CategoryID] += ms
			t.ProjectAllTime[f.ProjectID] += ms
			if seg.DayKey() == today {
				t.CategoryToday[f.CategoryID] += ms
				t.ProjectToday[f.ProjectID] += ms
			}
		}
	}
	return t
}

// LiveToday returns today's milliseconds for every category, finished totals plus
// the part of the running interval that falls today.
func LiveToday(state model.State, totals Totals, now time.Time) map[string]int64 {
	out := make(map[string]int64, len(state.Categories))
	for _, c := range state.Categories {
		out[c.ID] = totals.CategoryToday[c.ID]
	}
	if r := state.Running; r != nil {
		out[r.CategoryID] += runningToday(*r, now)
	}
	return out
}

// LiveProjectToday is LiveToday keyed by project.
func LiveProjectToday(state model.State, totals Totals, now time.Time) map[string]int64 {
	out := make(map[string]int64, len(totals.ProjectToday)+1)
	for id, ms := range totals.ProjectToday {
		out[id] = ms
	}
	if r := state.Running; r != nil {
		out[r.ProjectID] += runningToday(*r, now)
	}
	return out
}

func runningToday(r model.Running, now time.Time) int64 {
	today := timeline.DayKey(now)
	var ms int64
	for seg := range timeline.SplitMillis(r.Start, now.UnixMilli(), now.Location()) {
		if seg.DayKey() == today {
			ms += seg.Millis()
		}
	}
	return ms
}

// DailyGrid builds the trailing window of days local days ending today.
func DailyGrid(state model.State, now time.Time, days int) *Grid {
	return New().DailyGrid(state, now, days)
}

// DailyGrid builds the trailing window of days local days ending today: finished
// intervals from the day buckets plus the running interval counted once.
func (a *Aggregator) DailyGrid(state model.State, now time.Time, days int) *Grid {
	loc := now.Location()
	keys, _, _ := timeline.TrailingDays(now, days)

	g := &Grid{
		days:       keys,
		categories: make([]string, 0, len(state.Categories)),
		ms:         make(map[string]map[string]int64, len(keys)),
	}
	for _, c := range state.Categories {
		g.categories = append(g.categories, c.ID)
	}

	a.buckets.Sync(state.Intervals, loc)
	for _, day := range keys {
		g.ms[day] = a.buckets.Day(day)
	}

	if r := state.Running; r != nil {
		for seg := range timeline.SplitMillis(r.Start, now.UnixMilli(), loc) {
			if cells, ok := g.ms[seg.DayKey()]; ok {
				cells[r.CategoryID] += seg.Millis()
			}
		}
	}
	return g
}

// WeeklyTotals sums each category's rounded daily minutes across the grid.
func WeeklyTotals(g *Grid) map[string]int64 {
	out := make(map[string]int64, len(g.categories))
	for _, cat := range g.categories {
		var sum int64
		for _, m := range g.Column(cat) {
			sum += m
		}
		out[cat] = sum
	}
	return out
}

// WeeklySummary compares the grid's total minutes with the daily goals summed over
// the window. Percent is capped at 100 and is 0 when no goal is set.
func WeeklySummary(g *Grid, categories []model.Category) Summary {
	var s Summary
	for _, m := range WeeklyTotals(g) {
		s.TotalMinutes += m
	}
	days := int64(len(g.days))
	for _, c := range categories {
		if c.HasGoal() {
			s.GoalMinutes += int64(c.GoalMinutes) * days
		}
	}
	if s.GoalMinutes > 0 {
		pct := math.Round(float64(s.TotalMinutes) / float64(s.GoalMinutes) * 100)
		s.Percent = int(math.Min(100, pct))
	}
	return s
}
