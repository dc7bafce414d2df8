package timeline

import (
	"iter"
	"time"

	"github.com/penwyp/go-life-tracker/internal/core/constants"
)

// Split partitions [start, end) into contiguous segments that each stay within one
// local calendar day of start's location. It yields nothing when start >= end.
func Split(start, end time.Time) iter.Seq[Segment] {
	return func(yield func(Segment) bool) {
		loc := start.Location()
		end = end.In(loc)
		cur := start
		for cur.Before(end) {
			next := NextMidnight(cur)
			segEnd := end
			if next.Before(end) {
				segEnd = next
			}
			if !yield(Segment{Start: cur, End: segEnd}) {
				return
			}
			cur = next
		}
	}
}

// SplitMillis splits an epoch-millisecond span in loc.
func SplitMillis(startMs, endMs int64, loc *time.Location) iter.Seq[Segment] {
	return Split(time.UnixMilli(startMs).In(loc), time.UnixMilli(endMs).In(loc))
}

// Segments collects Split into a slice.
func Segments(start, end time.Time) []Segment {
	var out []Segment
	for seg := range Split(start, end) {
		out = append(out, seg)
	}
	return out
}

// StartOfDay is local midnight of t's day in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// NextMidnight is the first instant of the day after t. Calendar arithmetic keeps
// DST days at 23 or 25 hours.
func NextMidnight(t time.Time) time.Time {
	y, m, d := t.Date()
	next := time.Date(y, m, d+1, 0, 0, 0, 0, t.Location())
	// midnight can fall inside a DST gap and normalise backwards
	for !next.After(t) {
		next = next.Add(time.Hour)
	}
	return next
}

// DayKey formats t's local day as YYYY-MM-DD.
func DayKey(t time.Time) string {
	return t.Format(constants.DayKeyLayout)
}

// ParseDayKey parses YYYY-MM-DD as local midnight in loc.
func ParseDayKey(key string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(constants.DayKeyLayout, key, loc)
}

// AddDays moves a local midnight by n calendar days.
func AddDays(day time.Time, n int) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d+n, 0, 0, 0, 0, day.Location())
}

// TrailingDays returns the keys of the n local days ending with now's day, oldest first,
// together with the window bounds [from, to).
func TrailingDays(now time.Time, n int) (keys []string, from, to time.Time) {
	if n <= 0 {
		today := StartOfDay(now)
		return nil, today, today
	}
	today := StartOfDay(now)
	from = AddDays(today, -(n - 1))
	to = NextMidnight(now)
	keys = make([]string, 0, n)
	for i := 0; i < n; i++ {
		keys = append(keys, DayKey(AddDays(from, i)))
	}
	return keys, from, to
}
