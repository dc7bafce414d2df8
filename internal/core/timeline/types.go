package timeline

import (
	"time"

	"github.com/penwyp/go-life-tracker/internal/core/constants"
)

// Segment is a half-open span [Start, End) lying inside a single local day.
type Segment struct {
	Start time.Time
	End   time.Time
}

// Duration of the segment.
func (s Segment) Duration() time.Duration {
	return s.End.Sub(s.Start)
}

// Millis is the segment length in milliseconds.
func (s Segment) Millis() int64 {
	return s.End.UnixMilli() - s.Start.UnixMilli()
}

// DayKey is the local calendar day the segment belongs to.
func (s Segment) DayKey() string {
	return s.Start.Format(constants.DayKeyLayout)
}
