package model

import (
	"sort"
	"strings"
)

// Category is one of the fixed life areas. GoalMinutes is the daily goal; 0 means none.
type Category struct {
	ID          string
	Name        string
	Examples    string
	GoalMinutes int
}

// HasGoal reports whether a daily goal is configured.
func (c Category) HasGoal() bool {
	return c.GoalMinutes > 0
}

// Project belongs to exactly one category and is never deleted.
type Project struct {
	ID         string
	CategoryID string
	Name       string
}

// IntervalMeta is shared by running and finished intervals. Times are epoch milliseconds.
type IntervalMeta struct {
	ID         string
	CategoryID string
	ProjectID  string
	Start      int64
}

// Interval is either Running or Finished.
type Interval interface {
	Meta() IntervalMeta
	// SpanUntil returns [start, end); a running interval ends at now.
	SpanUntil(now int64) (start, end int64)
	// NoteText is the attached note, "" when absent.
	NoteText() string
	isInterval()
}

// Running is the single open interval.
type Running struct {
	IntervalMeta
}

func (r Running) Meta() IntervalMeta { return r.IntervalMeta }

func (r Running) SpanUntil(now int64) (int64, int64) { return r.Start, now }

func (r Running) NoteText() string { return "" }

// Elapsed is the running time in milliseconds at now, never negative.
func (r Running) Elapsed(now int64) int64 {
	if now < r.Start {
		return 0
	}
	return now - r.Start
}

// Close turns the running interval into a finished one ending at end.
func (r Running) Close(end int64, note string) Finished {
	return Finished{IntervalMeta: r.IntervalMeta, End: end, Note: note}
}

func (Running) isInterval() {}

// Finished is a closed interval with Start < End. Only Note may change after closing.
type Finished struct {
	IntervalMeta
	End  int64
	Note string
}

func (f Finished) Meta() IntervalMeta { return f.IntervalMeta }

func (f Finished) SpanUntil(int64) (int64, int64) { return f.Start, f.End }

func (f Finished) NoteText() string { return f.Note }

// Duration in milliseconds.
func (f Finished) Duration() int64 { return f.End - f.Start }

func (Finished) isInterval() {}

// State is the whole application document. At most one interval is running by construction.
type State struct {
	Categories            []Category
	Projects              []Project
	Intervals             []Finished
	Running               *Running
	LastProjectByCategory map[string]string
}

// Clone returns a deep copy so reducers never mutate their input.
func (s State) Clone() State {
	out := State{
		Categories:            append([]Category(nil), s.Categories...),
		Projects:              append([]Project(nil), s.Projects...),
		Intervals:             append([]Finished(nil), s.Intervals...),
		LastProjectByCategory: make(map[string]string, len(s.LastProjectByCategory)),
	}
	if s.Running != nil {
		r := *s.Running
		out.Running = &r
	}
	for k, v := range s.LastProjectByCategory {
		out.LastProjectByCategory[k] = v
	}
	return out
}

// All returns every interval in chronological order; the running one, if any, is last.
func (s State) All() []Interval {
	out := make([]Interval, 0, len(s.Intervals)+1)
	for _, f := range s.Intervals {
		out = append(out, f)
	}
	if s.Running != nil {
		out = append(out, *s.Running)
	}
	return out
}

// Category looks up a category by id.
func (s State) Category(id string) (Category, bool) {
	for _, c := range s.Categories {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}

// Project looks up a project by id.
func (s State) Project(id string) (Project, bool) {
	for _, p := range s.Projects {
		if p.ID == id {
			return p, true
		}
	}
	return Project{}, false
}

// CategoryName is the display name, or "" when the id dangles.
func (s State) CategoryName(id string) string {
	c, _ := s.Category(id)
	return c.Name
}

// ProjectName is the display name, or "" when the id dangles.
func (s State) ProjectName(id string) string {
	p, _ := s.Project(id)
	return p.Name
}

// ProjectsIn lists a category's projects in creation order.
func (s State) ProjectsIn(categoryID string) []Project {
	var out []Project
	for _, p := range s.Projects {
		if p.CategoryID == categoryID {
			out = append(out, p)
		}
	}
	return out
}

// DefaultProject is the last-used project for the category, else its first project.
func (s State) DefaultProject(categoryID string) (Project, bool) {
	if id, ok := s.LastProjectByCategory[categoryID]; ok && id != "" {
		if p, ok := s.Project(id); ok && p.CategoryID == categoryID {
			return p, true
		}
	}
	projects := s.ProjectsIn(categoryID)
	if len(projects) == 0 {
		return Project{}, false
	}
	return projects[0], true
}

// ResolveCategory matches an id, an id without the "p-" prefix, or a name substring
// (case-insensitive). Ambiguous name matches resolve to nothing.
func (s State) ResolveCategory(ref string) (Category, bool) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return Category{}, false
	}
	if c, ok := s.Category(ref); ok {
		return c, true
	}
	if c, ok := s.Category(CategoryIDPrefix + strings.ToLower(ref)); ok {
		return c, true
	}
	return uniqueMatch(s.Categories, ref, func(c Category) string { return c.Name })
}

// ResolveProject matches a project of the category by id or by name (case-insensitive,
// exact match preferred over substring).
func (s State) ResolveProject(categoryID, ref string) (Project, bool) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return Project{}, false
	}
	if p, ok := s.Project(ref); ok && p.CategoryID == categoryID {
		return p, true
	}
	projects := s.ProjectsIn(categoryID)
	for _, p := range projects {
		if strings.EqualFold(p.Name, ref) {
			return p, true
		}
	}
	return uniqueMatch(projects, ref, func(p Project) string { return p.Name })
}

func uniqueMatch[T any](items []T, ref string, name func(T) string) (T, bool) {
	var zero T
	needle := strings.ToLower(ref)
	var found []T
	for _, it := range items {
		if strings.Contains(strings.ToLower(name(it)), needle) {
			found = append(found, it)
		}
	}
	if len(found) != 1 {
		return zero, false
	}
	return found[0], true
}

// GoalMinutes maps category id to configured goal (including zero goals).
func (s State) GoalMinutes() map[string]int {
	out := make(map[string]int, len(s.Categories))
	for _, c := range s.Categories {
		out[c.ID] = c.GoalMinutes
	}
	return out
}

// SortIntervals orders finished intervals by start, keeping insertion order on ties.
func SortIntervals(intervals []Finished) {
	sort.SliceStable(intervals, func(i, j int) bool {
		return intervals[i].Start < intervals[j].Start
	})
}
