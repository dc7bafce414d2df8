package aggregator

import "github.com/penwyp/go-life-tracker/internal/core/constants"

// Totals holds finished-interval milliseconds keyed by category or project id.
// Today is decided per day segment, so an interval crossing midnight into today
// contributes only its post-midnight part.
type Totals struct {
	CategoryToday   map[string]int64
	CategoryAllTime map[string]int64
	ProjectToday    map[string]int64
	ProjectAllTime  map[string]int64
}

func newTotals() Totals {
	return Totals{
		CategoryToday:   make(map[string]int64),
		CategoryAllTime: make(map[string]int64),
		ProjectToday:    make(map[string]int64),
		ProjectAllTime:  make(map[string]int64),
	}
}

// Grid is the trailing per-day, per-category view used by the weekly chart and streaks.
type Grid struct {
	days       []string
	categories []string
	ms         map[string]map[string]int64
}

// Days returns the day keys oldest first; the last one is today.
func (g *Grid) Days() []string {
	return append([]string(nil), g.days...)
}

// Categories returns the category ids in display order.
func (g *Grid) Categories() []string {
	return append([]string(nil), g.categories...)
}

// Today is the last day key of the window, "" for an empty grid.
func (g *Grid) Today() string {
	if len(g.days) == 0 {
		return ""
	}
	return g.days[len(g.days)-1]
}

// Millis is the raw total for one cell.
func (g *Grid) Millis(day, categoryID string) int64 {
	return g.ms[day][categoryID]
}

// Minutes is the cell total rounded half up to whole minutes.
func (g *Grid) Minutes(day, categoryID string) int64 {
	return RoundMinutes(g.Millis(day, categoryID))
}

// Column returns one category's minutes for each day of the window.
func (g *Grid) Column(categoryID string) []int64 {
	out := make([]int64, len(g.days))
	for i, day := range g.days {
		out[i] = g.Minutes(day, categoryID)
	}
	return out
}

// RoundMinutes converts milliseconds to minutes, rounding half up.
func RoundMinutes(ms int64) int64 {
	if ms <= 0 {
		return 0
	}
	return (ms + constants.MillisPerMinute/2) / constants.MillisPerMinute
}

// Summary is the weekly headline: minutes logged against the summed daily goals.
type Summary struct {
	TotalMinutes int64 `json:"totalMinutes"`
	GoalMinutes  int64 `json:"goalMinutes"`
	Percent      int   `json:"percent"`
}
