package top

import (
	"sync"
	"time"

	"github.com/penwyp/go-life-tracker/internal/core/model"
	"github.com/penwyp/go-life-tracker/internal/core/streak"
	"github.com/penwyp/go-life-tracker/internal/data/aggregator"
	"github.com/penwyp/go-life-tracker/internal/presentation/formatter"
	"github.com/penwyp/go-life-tracker/internal/presentation/layout"
)

// RefreshController derives dashboards from the ledger state. Grids reuse the
// aggregator's day buckets between ticks.
type RefreshController struct {
	mu         sync.Mutex
	agg        *aggregator.Aggregator
	weekDays   int
	streakDays int
}

// NewRefreshController creates a new RefreshController instance
func NewRefreshController(weekDays, streakDays int) *RefreshController {
	return &RefreshController{
		agg:        aggregator.New(),
		weekDays:   weekDays,
		streakDays: streakDays,
	}
}

// Refresh computes the dashboard of state at now.
func (rc *RefreshController) Refresh(state model.State, now time.Time) layout.Dashboard {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	totals := rc.agg.Totals(state, now)
	live := aggregator.LiveToday(state, totals, now)
	week := rc.agg.DailyGrid(state, now, rc.weekDays)
	history := rc.agg.DailyGrid(state, now, rc.streakDays)

	return layout.Dashboard{
		Now:     now,
		State:   state,
		Lines:   formatter.CategoryLines(state, totals, live, now.UnixMilli()),
		Week:    week,
		Summary: aggregator.WeeklySummary(week, state.Categories),
		Streaks: streak.Compute(history, state.Categories),
	}
}
