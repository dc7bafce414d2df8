package fixtures

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/penwyp/go-life-tracker/internal/core/model"
)

// SeqIDs returns a deterministic id generator: prefix-1, prefix-2, ...
func SeqIDs(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

// StateBuilder assembles states for tests. Projects are seeded as proj-1..proj-8 in
// category order and intervals are numbered iv-1, iv-2, ...
type StateBuilder struct {
	state       model.State
	projectIDs  func() string
	intervalIDs func() string
}

// NewStateBuilder starts from the default first-run state.
func NewStateBuilder() *StateBuilder {
	projectIDs := SeqIDs("proj")
	return &StateBuilder{
		state:       model.NewDefaultState(projectIDs),
		projectIDs:  projectIDs,
		intervalIDs: SeqIDs("iv"),
	}
}

// Goal sets a category's daily goal.
func (b *StateBuilder) Goal(categoryID string, minutes int) *StateBuilder {
	for i := range b.state.Categories {
		if b.state.Categories[i].ID == categoryID {
			b.state.Categories[i].GoalMinutes = minutes
		}
	}
	return b
}

// Project appends a project and returns its id.
func (b *StateBuilder) Project(categoryID, name string) string {
	p := model.Project{ID: b.projectIDs(), CategoryID: categoryID, Name: name}
	b.state.Projects = append(b.state.Projects, p)
	return p.ID
}

// Finished adds a closed interval on the category's seeded project.
func (b *StateBuilder) Finished(categoryID string, start, end time.Time, note string) *StateBuilder {
	return b.FinishedOn(categoryID, DefaultProjectID(b.state, categoryID), start, end, note)
}

// FinishedOn adds a closed interval on a specific project.
func (b *StateBuilder) FinishedOn(categoryID, projectID string, start, end time.Time, note string) *StateBuilder {
	b.state.Intervals = append(b.state.Intervals, model.Finished{
		IntervalMeta: model.IntervalMeta{
			ID:         b.intervalIDs(),
			CategoryID: categoryID,
			ProjectID:  projectID,
			Start:      start.UnixMilli(),
		},
		End:  end.UnixMilli(),
		Note: note,
	})
	model.SortIntervals(b.state.Intervals)
	return b
}

// Running opens the single running interval on the category's seeded project.
func (b *StateBuilder) Running(categoryID string, start time.Time) *StateBuilder {
	b.state.Running = &model.Running{IntervalMeta: model.IntervalMeta{
		ID:         b.intervalIDs(),
		CategoryID: categoryID,
		ProjectID:  DefaultProjectID(b.state, categoryID),
		Start:      start.UnixMilli(),
	}}
	return b
}

// Build returns a copy of the assembled state.
func (b *StateBuilder) Build() model.State {
	return b.state.Clone()
}

// DefaultProjectID is the id of the first project in the category, "" if none.
func DefaultProjectID(state model.State, categoryID string) string {
	projects := state.ProjectsIn(categoryID)
	if len(projects) == 0 {
		return ""
	}
	return projects[0].ID
}

// WriteFile writes content to path, creating parent directories.
func WriteFile(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	return os.WriteFile(path, []byte(content), 0644)
}
