package ledger

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/penwyp/go-life-tracker/internal/core/model"
)

// IDFunc generates identifiers for new intervals and projects.
type IDFunc func() string

// NewID returns a random UUID string.
func NewID() string {
	return uuid.NewString()
}

// Apply runs cmd against state at now (epoch ms) and returns the next state.
// The input state is never modified. On error the input state is returned unchanged.
func Apply(state model.State, cmd Command, now int64, newID IDFunc) (model.State, Result, error) {
	if newID == nil {
		newID = NewID
	}
	next := state.Clone()
	var (
		res Result
		err error
	)
	switch c := cmd.(type) {
	case Start:
		res, err = applyStart(&next, c, now, newID)
	case Stop:
		res = applyStop(&next, c, now)
	case AddProject:
		res, err = applyAddProject(&next, c, newID)
	case SetGoal:
		res, err = applySetGoal(&next, c)
	default:
		err = fmt.Errorf("unsupported command %T", cmd)
	}
	if err != nil {
		return state, Result{}, err
	}
	return next, res, nil
}

func applyStart(s *model.State, c Start, now int64, newID IDFunc) (Result, error) {
	if _, ok := s.Category(c.CategoryID); !ok {
		return Result{}, model.ErrInvalidProjectCategory.New("category %q does not exist", c.CategoryID)
	}
	p, ok := s.Project(c.ProjectID)
	if !ok {
		return Result{}, model.ErrInvalidProjectCategory.New("project %q does not exist", c.ProjectID)
	}
	if p.CategoryID != c.CategoryID {
		return Result{}, model.ErrInvalidProjectCategory.New("project %q belongs to %q, not %q", p.Name, p.CategoryID, c.CategoryID)
	}

	at := switchTime(s, now)
	var res Result
	res.Closed, res.Discarded = closeRunning(s, at, "")

	opened := &model.Running{IntervalMeta: model.IntervalMeta{
		ID:         newID(),
		CategoryID: c.CategoryID,
		ProjectID:  c.ProjectID,
		Start:      at,
	}}
	s.Running = opened
	s.LastProjectByCategory[c.CategoryID] = c.ProjectID

	r := *opened
	res.Opened = &r
	return res, nil
}

func applyStop(s *model.State, c Stop, now int64) Result {
	if s.Running == nil {
		return Result{}
	}
	if c.IntervalID != "" && s.Running.ID != c.IntervalID {
		return Result{}
	}
	var res Result
	res.Closed, res.Discarded = closeRunning(s, now, strings.TrimSpace(c.Note))
	return res
}

// switchTime is when a start takes effect: now, but never before the running
// interval's start or the end of the last finished interval, so a clock that
// stepped backwards cannot open an overlapping interval.
func switchTime(s *model.State, now int64) int64 {
	at := now
	if s.Running != nil {
		at = max(at, s.Running.Start)
	}
	if n := len(s.Intervals); n > 0 {
		at = max(at, s.Intervals[n-1].End)
	}
	return at
}

// closeRunning finishes the running interval at now and returns the appended
// interval. A close that is not strictly after the start drops the interval,
// which is returned as discarded instead.
func closeRunning(s *model.State, now int64, note string) (*model.Finished, *model.Running) {
	if s.Running == nil {
		return nil, nil
	}
	running := *s.Running
	s.Running = nil
	if now <= running.Start {
		return nil, &running
	}
	f := running.Close(now, note)
	s.Intervals = append(s.Intervals, f)
	if n := len(s.Intervals); n > 1 && s.Intervals[n-2].Start > f.Start {
		model.SortIntervals(s.Intervals)
	}
	return &f, nil
}

func applyAddProject(s *model.State, c AddProject, newID IDFunc) (Result, error) {
	name := strings.TrimSpace(c.Name)
	if name == "" {
		return Result{}, model.ErrEmptyName.New("project name is blank")
	}
	if _, ok := s.Category(c.CategoryID); !ok {
		return Result{}, model.ErrUnknownCategory.New("%q", c.CategoryID)
	}
	p := model.Project{ID: newID(), CategoryID: c.CategoryID, Name: name}
	s.Projects = append(s.Projects, p)
	if c.Select {
		s.LastProjectByCategory[c.CategoryID] = p.ID
	}
	return Result{Project: &p}, nil
}

func applySetGoal(s *model.State, c SetGoal) (Result, error) {
	idx := -1
	for i, cat := range s.Categories {
		if cat.ID == c.CategoryID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return Result{}, model.ErrUnknownCategory.New("%q", c.CategoryID)
	}
	if c.Minutes < 0 {
		return Result{}, model.ErrInvalidGoal.New("goal must not be negative, got %d", c.Minutes)
	}
	s.Categories[idx].GoalMinutes = c.Minutes
	cat := s.Categories[idx]
	return Result{Goal: &cat}, nil
}
