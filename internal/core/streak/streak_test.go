package streak

import (
	"testing"
	"time"

	"github.com/penwyp/go-life-tracker/internal/core/model"
	"github.com/penwyp/go-life-tracker/internal/data/aggregator"
	"github.com/penwyp/go-life-tracker/internal/testing/fixtures"
	"github.com/stretchr/testify/assert"
)

func TestForColumn(t *testing.T) {
	tests := []struct {
		name    string
		minutes []int64
		goal    int
		want    Result
	}{
		{name: "hit miss hit miss", minutes: []int64{45, 0, 31, 29}, goal: 30, want: Result{Configured: true, Current: 0, Best: 1}},
		{name: "ends on a run", minutes: []int64{30, 0, 30, 40, 50}, goal: 30, want: Result{Configured: true, Current: 3, Best: 3}},
		{name: "best before current", minutes: []int64{30, 30, 30, 0, 30}, goal: 30, want: Result{Configured: true, Current: 1, Best: 3}},
		{name: "nothing logged", minutes: []int64{0, 0, 0}, goal: 10, want: Result{Configured: true}},
		{name: "empty window", minutes: nil, goal: 10, want: Result{Configured: true}},
		{name: "no goal", minutes: []int64{100, 100}, goal: 0, want: Result{}},
		{name: "exactly the goal is a hit", minutes: []int64{15}, goal: 15, want: Result{Configured: true, Current: 1, Best: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ForColumn(tt.minutes, tt.goal))
		})
	}
}

func TestForColumnFullWindow(t *testing.T) {
	minutes := make([]int64, 120)
	for i := range minutes {
		minutes[i] = 60
	}
	assert.Equal(t, Result{Configured: true, Current: 120, Best: 120}, ForColumn(minutes, 30))
	assert.Equal(t, Result{}, ForColumn(minutes, 0))
}

func TestForColumnBestNeverBelowCurrent(t *testing.T) {
	patterns := [][]int64{
		{1, 1, 0, 1},
		{0, 1, 1, 1},
		{1, 0, 1, 0, 1, 1},
		{1, 1, 1, 1},
	}
	for _, p := range patterns {
		r := ForColumn(p, 1)
		assert.GreaterOrEqual(t, r.Best, r.Current)
	}
}

func TestComputeFromGrid(t *testing.T) {
	day := func(d, h int) time.Time { return time.Date(2024, 1, d, h, 0, 0, 0, time.UTC) }
	now := time.Date(2024, 1, 4, 18, 0, 0, 0, time.UTC)

	state := fixtures.NewStateBuilder().
		Goal(model.CategoryHealth, 30).
		Finished(model.CategoryHealth, day(1, 7), day(1, 7).Add(45*time.Minute), "").
		Finished(model.CategoryHealth, day(3, 7), day(3, 7).Add(31*time.Minute), "").
		Finished(model.CategoryHealth, day(4, 7), day(4, 7).Add(29*time.Minute), "").
		Finished(model.CategoryWork, day(4, 9), day(4, 17), "").
		Build()

	grid := aggregator.DailyGrid(state, now, 4)
	results := Compute(grid, state.Categories)

	assert.Len(t, results, len(state.Categories))
	assert.Equal(t, Result{Configured: true, Current: 0, Best: 1}, results[model.CategoryHealth])
	assert.Equal(t, Result{}, results[model.CategoryWork])
}

func TestComputeTodayPartialProgress(t *testing.T) {
	start := time.Date(2024, 1, 4, 7, 0, 0, 0, time.UTC)
	state := fixtures.NewStateBuilder().
		Goal(model.CategoryMind, 20).
		Finished(model.CategoryMind, start.AddDate(0, 0, -1), start.AddDate(0, 0, -1).Add(20*time.Minute), "").
		Running(model.CategoryMind, start).
		Build()

	before := Compute(aggregator.DailyGrid(state, start.Add(10*time.Minute), 7), state.Categories)
	assert.Equal(t, 0, before[model.CategoryMind].Current, "today is a miss until the goal is reached")
	assert.Equal(t, 1, before[model.CategoryMind].Best)

	after := Compute(aggregator.DailyGrid(state, start.Add(20*time.Minute), 7), state.Categories)
	assert.Equal(t, 2, after[model.CategoryMind].Current)
}
