package report

import (
	"sort"
	"strings"
	"time"

	"github.com/penwyp/go-life-tracker/internal/core/model"
	"github.com/penwyp/go-life-tracker/internal/core/timeline"
)

// NoteSeparator joins the distinct notes of a history row.
const NoteSeparator = " • "

// Row is one (day, category, project) group of the history view.
type Row struct {
	Day      string `json:"day"`
	Category string `json:"category"`
	Project  string `json:"project"`
	Millis   int64  `json:"durationMs"`
	Notes    string `json:"notes"`
}

type rowKey struct {
	day, category, project string
}

// History groups finished time between the local days of from and to, both inclusive,
// in from's location. Rows are sorted by day, category name, then project name.
func History(state model.State, from, to time.Time) []Row {
	loc := from.Location()
	lo := timeline.StartOfDay(from)
	hi := timeline.NextMidnight(to.In(loc))
	if !lo.Before(hi) {
		return nil
	}
	loMs, hiMs := lo.UnixMilli(), hi.UnixMilli()

	sums := make(map[rowKey]int64)
	notes := make(map[rowKey]map[string]struct{})
	for _, f := range state.Intervals {
		if f.End <= loMs || f.Start >= hiMs {
			continue
		}
		catName := state.CategoryName(f.CategoryID)
		projName := state.ProjectName(f.ProjectID)
		for seg := range timeline.SplitMillis(max(f.Start, loMs), min(f.End, hiMs), loc) {
			k := rowKey{day: seg.DayKey(), category: catName, project: projName}
			sums[k] += seg.Millis()
			if f.Note == "" {
				continue
			}
			if notes[k] == nil {
				notes[k] = make(map[string]struct{})
			}
			notes[k][f.Note] = struct{}{}
		}
	}

	rows := make([]Row, 0, len(sums))
	for k, ms := range sums {
		rows = append(rows, Row{
			Day:      k.day,
			Category: k.category,
			Project:  k.project,
			Millis:   ms,
			Notes:    joinNotes(notes[k]),
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Day != b.Day {
			return a.Day < b.Day
		}
		if a.Category != b.Category {
			return a.Category < b.Category
		}
		return a.Project < b.Project
	})
	return rows
}

func joinNotes(set map[string]struct{}) string {
	if len(set) == 0 {
		return ""
	}
	out := make([]string, 0, len(set))
	for n := range set {
		out = append(out, n)
	}
	sort.Strings(out)
	return strings.Join(out, NoteSeparator)
}
