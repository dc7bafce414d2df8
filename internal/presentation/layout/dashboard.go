package layout

import (
	"time"

	"github.com/penwyp/go-life-tracker/internal/core/model"
	"github.com/penwyp/go-life-tracker/internal/core/streak"
	"github.com/penwyp/go-life-tracker/internal/data/aggregator"
	"github.com/penwyp/go-life-tracker/internal/presentation/formatter"
)

// Dashboard is everything the live view renders for one instant.
type Dashboard struct {
	Now     time.Time
	State   model.State
	Lines   []formatter.CategoryLine
	Week    *aggregator.Grid
	Summary aggregator.Summary
	Streaks map[string]streak.Result
}
