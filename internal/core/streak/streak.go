// Package streak computes goal streaks over a daily grid.
//
// A day is a hit when its logged minutes reach the category's daily goal. Today is
// the last day of the grid and is judged on partial progress: it counts as soon as
// the goal is reached, and as a miss until then.
package streak

import "github.com/penwyp/go-life-tracker/internal/core/model"

// Grid is the per-day minutes view streaks are computed from.
type Grid interface {
	Column(categoryID string) []int64
}

// Result for one category. Configured is false when no goal is set.
type Result struct {
	Configured bool
	Current    int
	Best       int
}

// Compute returns a result for every category.
func Compute(grid Grid, categories []model.Category) map[string]Result {
	out := make(map[string]Result, len(categories))
	for _, c := range categories {
		out[c.ID] = ForColumn(grid.Column(c.ID), c.GoalMinutes)
	}
	return out
}

// ForColumn computes the streaks of one chronological column of daily minutes.
func ForColumn(minutes []int64, goal int) Result {
	if goal <= 0 {
		return Result{}
	}
	r := Result{Configured: true}
	run := 0
	for _, m := range minutes {
		if m >= int64(goal) {
			run++
			if run > r.Best {
				r.Best = run
			}
		} else {
			run = 0
		}
	}
	r.Current = run
	return r
}
