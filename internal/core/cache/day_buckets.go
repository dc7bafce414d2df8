package cache

import (
	"sort"
	"sync"
	"time"

	"github.com/penwyp/go-life-tracker/internal/core/model"
	"github.com/penwyp/go-life-tracker/internal/core/timeline"
)

// DayBuckets caches milliseconds per (local day, category) for finished intervals.
// Finished intervals are immutable apart from notes, so appending new ones only needs
// the new tail split; anything else forces a rebuild.
type DayBuckets struct {
	mu      sync.RWMutex
	loc     *time.Location
	buckets map[string]map[string]int64 // day key -> category id -> ms

	// fingerprint of the folded prefix
	folded   int
	firstID  string
	lastID   string
	lastEnd  int64
	rebuilds int
	appended int
}

// Stats describes cache activity.
type Stats struct {
	Intervals int
	Days      int
	Rebuilds  int
	Appended  int
}

func NewDayBuckets() *DayBuckets {
	return &DayBuckets{
		buckets: make(map[string]map[string]int64),
	}
}

// Sync brings the buckets up to date with intervals (sorted by start) in loc.
func (c *DayBuckets) Sync(intervals []model.Finished, loc *time.Location) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.isPrefixOf(intervals, loc) {
		c.reset(loc)
		c.rebuilds++
	} else {
		c.appended += len(intervals) - c.folded
	}
	for _, f := range intervals[c.folded:] {
		c.fold(f)
	}
	c.folded = len(intervals)
	if c.folded > 0 {
		c.firstID = intervals[0].ID
		last := intervals[c.folded-1]
		c.lastID = last.ID
		c.lastEnd = last.End
	}
}

func (c *DayBuckets) isPrefixOf(intervals []model.Finished, loc *time.Location) bool {
	if c.loc == nil || c.loc.String() != loc.String() {
		return false
	}
	if len(intervals) < c.folded {
		return false
	}
	if c.folded == 0 {
		return true
	}
	last := intervals[c.folded-1]
	return intervals[0].ID == c.firstID && last.ID == c.lastID && last.End == c.lastEnd
}

func (c *DayBuckets) reset(loc *time.Location) {
	c.loc = loc
	c.buckets = make(map[string]map[string]int64)
	c.folded = 0
	c.firstID, c.lastID, c.lastEnd = "", "", 0
}

func (c *DayBuckets) fold(f model.Finished) {
	for seg := range timeline.SplitMillis(f.Start, f.End, c.loc) {
		day := seg.DayKey()
		cats, ok := c.buckets[day]
		if !ok {
			cats = make(map[string]int64)
			c.buckets[day] = cats
		}
		cats[f.CategoryID] += seg.Millis()
	}
}

// Millis returns the cached total for one day and category.
func (c *DayBuckets) Millis(day, categoryID string) int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.buckets[day][categoryID]
}

// Day returns a copy of one day's per-category totals.
func (c *DayBuckets) Day(day string) map[string]int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[string]int64, len(c.buckets[day]))
	for cat, ms := range c.buckets[day] {
		out[cat] = ms
	}
	return out
}

// Days lists the cached day keys in order.
func (c *DayBuckets) Days() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	days := make([]string, 0, len(c.buckets))
	for day := range c.buckets {
		days = append(days, day)
	}
	sort.Strings(days)
	return days
}

// Invalidate drops everything; the next Sync rebuilds.
func (c *DayBuckets) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reset(nil)
}

func (c *DayBuckets) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Stats{
		Intervals: c.folded,
		Days:      len(c.buckets),
		Rebuilds:  c.rebuilds,
		Appended:  c.appended,
	}
}
