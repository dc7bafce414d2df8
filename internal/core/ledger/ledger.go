package ledger

import (
	"sync"

	"github.com/penwyp/go-life-tracker/internal/core/model"
	"github.com/penwyp/go-life-tracker/internal/util"
)

// Backend persists transitions. Update must run fn under the backend's exclusion
// and return the state it stored.
type Backend interface {
	Update(fn func(model.State) (model.State, error)) (model.State, error)
}

// Ledger serialises commands against one state. With a Backend, every command is a
// read-modify-write of the persisted document; without one it stays in memory.
type Ledger struct {
	mu      sync.Mutex
	state   model.State
	backend Backend
	clock   util.Clock
	newID   IDFunc

	pendingStop string
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithBackend persists every command through b.
func WithBackend(b Backend) Option {
	return func(l *Ledger) { l.backend = b }
}

// WithIDs overrides id generation.
func WithIDs(newID IDFunc) Option {
	return func(l *Ledger) { l.newID = newID }
}

// New creates a ledger over state. A nil clock uses the global time provider.
func New(state model.State, clock util.Clock, opts ...Option) *Ledger {
	if clock == nil {
		clock = util.GetTimeProvider()
	}
	l := &Ledger{
		state: state.Clone(),
		clock: clock,
		newID: NewID,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// State returns a copy of the current state.
func (l *Ledger) State() model.State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state.Clone()
}

// Replace swaps in a state loaded elsewhere, e.g. after another process wrote the file.
// A pending stop survives; committing it is a no-op if its interval is gone.
func (l *Ledger) Replace(state model.State) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.state = state.Clone()
}

// Do applies one command at the clock's current time.
func (l *Ledger) Do(cmd Command) (Result, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.do(cmd)
}

func (l *Ledger) do(cmd Command) (Result, error) {
	now := l.clock.Now().UnixMilli()
	if l.backend == nil {
		next, res, err := Apply(l.state, cmd, now, l.newID)
		if err != nil {
			return Result{}, err
		}
		l.state = next
		return res, nil
	}

	var res Result
	stored, err := l.backend.Update(func(current model.State) (model.State, error) {
		next, r, err := Apply(current, cmd, now, l.newID)
		res = r
		return next, err
	})
	if err != nil {
		return Result{}, err
	}
	l.state = stored
	return res, nil
}

// RequestStop marks the running interval for stopping and returns its id.
// Nothing changes until CommitStop or SkipStop.
func (l *Ledger) RequestStop() (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.state.Running == nil {
		return "", model.ErrNoRunningInterval.New("nothing to stop")
	}
	l.pendingStop = l.state.Running.ID
	return l.pendingStop, nil
}

// PendingStop returns the interval awaiting a note, if any.
func (l *Ledger) PendingStop() (string, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.pendingStop, l.pendingStop != ""
}

// CommitStop stops the pending interval with note.
func (l *Ledger) CommitStop(note string) (Result, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.pendingStop == "" {
		return Result{}, model.ErrNoRunningInterval.New("no stop requested")
	}
	id := l.pendingStop
	res, err := l.do(Stop{IntervalID: id, Note: note})
	if err != nil {
		return Result{}, err
	}
	l.pendingStop = ""
	return res, nil
}

// SkipStop stops the pending interval without a note.
func (l *Ledger) SkipStop() (Result, error) {
	return l.CommitStop("")
}

// CancelStop abandons the pending stop; the interval keeps running.
func (l *Ledger) CancelStop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.pendingStop = ""
}
