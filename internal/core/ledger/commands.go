package ledger

import "github.com/penwyp/go-life-tracker/internal/core/model"

// Command is one state transition. The set is closed.
type Command interface {
	isCommand()
}

// Start switches tracking to a project, closing whatever is running.
type Start struct {
	CategoryID string
	ProjectID  string
}

// Stop closes the running interval. With IntervalID set, it only applies while that
// interval is still the running one.
type Stop struct {
	IntervalID string
	Note       string
}

// AddProject appends a project to a category. Select remembers it as the category default.
type AddProject struct {
	CategoryID string
	Name       string
	Select     bool
}

// SetGoal sets a category's daily goal in minutes; 0 clears it.
type SetGoal struct {
	CategoryID string
	Minutes    int
}

func (Start) isCommand()      {}
func (Stop) isCommand()       {}
func (AddProject) isCommand() {}
func (SetGoal) isCommand()    {}

// Result describes what a command changed. Nil fields mean nothing of that kind happened.
type Result struct {
	Closed *model.Finished
	// Discarded is a running interval dropped because its close was not after its start.
	Discarded *model.Running
	Opened    *model.Running
	Project   *model.Project
	Goal      *model.Category
}

// Changed reports whether the command had any effect.
func (r Result) Changed() bool {
	return r.Closed != nil || r.Discarded != nil || r.Opened != nil || r.Project != nil || r.Goal != nil
}
