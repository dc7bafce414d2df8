package report

import (
	"fmt"
	"time"

	"github.com/penwyp/go-life-tracker/internal/core/model"
	"github.com/penwyp/go-life-tracker/internal/core/timeline"
)

// ExportRow is one interval as written to the CSV export.
type ExportRow struct {
	IntervalID string
	Category   string
	Project    string
	Start      time.Time
	End        time.Time
	DurationMs int64
	Note       string
}

// ExportRows lists every interval in chronological order. The running interval ends at now.
func ExportRows(state model.State, now time.Time) []ExportRow {
	nowMs := now.UnixMilli()
	all := state.All()
	rows := make([]ExportRow, 0, len(all))
	for _, iv := range all {
		meta := iv.Meta()
		start, end := iv.SpanUntil(nowMs)
		rows = append(rows, ExportRow{
			IntervalID: meta.ID,
			Category:   state.CategoryName(meta.CategoryID),
			Project:    state.ProjectName(meta.ProjectID),
			Start:      time.UnixMilli(start).UTC(),
			End:        time.UnixMilli(end).UTC(),
			DurationMs: end - start,
			Note:       iv.NoteText(),
		})
	}
	return rows
}

// ExportFileName is time-tracker-YYYY-MM-DD.csv for now's local date.
func ExportFileName(now time.Time) string {
	return fmt.Sprintf("time-tracker-%s.csv", timeline.DayKey(now))
}
