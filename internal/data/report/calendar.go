package report

import (
	"sort"
	"time"

	"github.com/penwyp/go-life-tracker/internal/core/model"
	"github.com/penwyp/go-life-tracker/internal/core/timeline"
)

// LabelSeparator sits between category and project in calendar labels.
const LabelSeparator = " — "

// DaySegment is one interval clipped to a calendar day. Offset and Span are
// fractions of the day's length.
type DaySegment struct {
	IntervalID string    `json:"intervalId"`
	CategoryID string    `json:"categoryId"`
	Label      string    `json:"label"`
	Note       string    `json:"note,omitempty"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	Running    bool      `json:"running"`
	Offset     float64   `json:"offset"`
	Span       float64   `json:"span"`
}

// Duration of the clipped segment.
func (s DaySegment) Duration() time.Duration {
	return s.End.Sub(s.Start)
}

// CalendarDay lays out every interval touching day's local date, the running one
// clipped at now, sorted by start.
func CalendarDay(state model.State, day, now time.Time) []DaySegment {
	loc := day.Location()
	dayStart := timeline.StartOfDay(day)
	dayEnd := timeline.NextMidnight(day)
	dayMs := float64(dayEnd.Sub(dayStart))
	nowMs := now.UnixMilli()

	var out []DaySegment
	for _, iv := range state.All() {
		meta := iv.Meta()
		start, end := iv.SpanUntil(nowMs)
		s := max(start, dayStart.UnixMilli())
		e := min(end, dayEnd.UnixMilli())
		if e <= s {
			continue
		}
		_, running := iv.(model.Running)
		seg := DaySegment{
			IntervalID: meta.ID,
			CategoryID: meta.CategoryID,
			Label:      Label(state, meta.CategoryID, meta.ProjectID),
			Note:       iv.NoteText(),
			Start:      time.UnixMilli(s).In(loc),
			End:        time.UnixMilli(e).In(loc),
			Running:    running,
		}
		seg.Offset = float64(seg.Start.Sub(dayStart)) / dayMs
		seg.Span = float64(seg.End.Sub(seg.Start)) / dayMs
		out = append(out, seg)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Start.Before(out[j].Start)
	})
	return out
}

// Label is "Category — Project", or just the category name when the project is unknown.
func Label(state model.State, categoryID, projectID string) string {
	cat := state.CategoryName(categoryID)
	proj := state.ProjectName(projectID)
	if proj == "" {
		return cat
	}
	return cat + LabelSeparator + proj
}
