package top

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/penwyp/go-life-tracker/internal/core/ledger"
	"github.com/penwyp/go-life-tracker/internal/core/model"
	"github.com/penwyp/go-life-tracker/internal/presentation/layout"
	"github.com/penwyp/go-life-tracker/internal/testing/fixtures"
	"github.com/penwyp/go-life-tracker/internal/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2024, 3, 12, 9, 0, 0, 0, time.UTC)

func newTestModel(t *testing.T, state model.State) (Model, *ledger.Ledger, *util.FixedClock) {
	t.Helper()
	clock := util.NewFixedClock(t0)
	l := ledger.New(state, clock, ledger.WithIDs(fixtures.SeqIDs("run")))
	return NewModel(l, NewRefreshController(7, 120), clock, time.Second), l, clock
}

func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out, cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestModel_StartCategoryKey(t *testing.T) {
	m, l, _ := newTestModel(t, fixtures.NewStateBuilder().Build())

	m, _ = send(t, m, runes("2"))

	running := l.State().Running
	require.NotNil(t, running)
	assert.Equal(t, model.CategoryHealth, running.CategoryID)
	assert.Equal(t, "proj-2", running.ProjectID)
	assert.Contains(t, m.statusMsg, "Tracking")
	assert.Contains(t, m.View(), "Elapsed: 00:00:00")
}

func TestModel_StartUsesLastProject(t *testing.T) {
	b := fixtures.NewStateBuilder()
	side := b.Project(model.CategoryWork, "Side project")
	state := b.Build()
	state.LastProjectByCategory[model.CategoryWork] = side
	m, l, _ := newTestModel(t, state)

	_, _ = send(t, m, runes("1"))

	require.NotNil(t, l.State().Running)
	assert.Equal(t, side, l.State().Running.ProjectID)
}

func TestModel_SwitchClosesRunning(t *testing.T) {
	m, l, clock := newTestModel(t, fixtures.NewStateBuilder().Build())

	m, _ = send(t, m, runes("1"))
	clock.Advance(20 * time.Minute)
	_, _ = send(t, m, runes("3"))

	state := l.State()
	require.Len(t, state.Intervals, 1)
	assert.Equal(t, model.CategoryWork, state.Intervals[0].CategoryID)
	assert.Equal(t, int64(20*60*1000), state.Intervals[0].Duration())
	require.NotNil(t, state.Running)
	assert.Equal(t, model.CategoryMind, state.Running.CategoryID)
}

func TestModel_IgnoresOutOfRangeDigit(t *testing.T) {
	m, l, _ := newTestModel(t, fixtures.NewStateBuilder().Build())

	_, _ = send(t, m, runes("9"))

	assert.Nil(t, l.State().Running)
}

func TestModel_StopWithNote(t *testing.T) {
	m, l, clock := newTestModel(t, fixtures.NewStateBuilder().Build())

	m, _ = send(t, m, runes("1"))
	clock.Advance(30 * time.Minute)

	m, cmd := send(t, m, runes("s"))
	assert.Equal(t, viewNote, m.state)
	assert.NotNil(t, cmd)
	require.NotNil(t, l.State().Running, "nothing changes until the prompt is answered")
	assert.Contains(t, m.View(), "Stop 🧑‍💻 Work & Productivity — General Work")

	m, _ = send(t, m, runes("wrote the report"))
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	state := l.State()
	assert.Nil(t, state.Running)
	require.Len(t, state.Intervals, 1)
	assert.Equal(t, "wrote the report", state.Intervals[0].Note)
	assert.Equal(t, viewDashboard, m.state)
	assert.Contains(t, m.statusMsg, "after 00:30:00")
	_, pending := l.PendingStop()
	assert.False(t, pending)
}

func TestModel_StopSkipNote(t *testing.T) {
	m, l, clock := newTestModel(t, fixtures.NewStateBuilder().Build())

	m, _ = send(t, m, runes("1"))
	clock.Advance(time.Minute)
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	require.Equal(t, viewNote, m.state)
	m, _ = send(t, m, runes("draft"))
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyTab})

	state := l.State()
	require.Len(t, state.Intervals, 1)
	assert.Empty(t, state.Intervals[0].Note)
	assert.Equal(t, viewDashboard, m.state)
}

func TestModel_StopCancelKeepsRunning(t *testing.T) {
	m, l, clock := newTestModel(t, fixtures.NewStateBuilder().Build())

	m, _ = send(t, m, runes("1"))
	clock.Advance(time.Minute)
	m, _ = send(t, m, runes("s"))
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	assert.Equal(t, viewDashboard, m.state)
	assert.Equal(t, "Still tracking", m.statusMsg)
	assert.NotNil(t, l.State().Running)
	assert.Empty(t, l.State().Intervals)
	_, pending := l.PendingStop()
	assert.False(t, pending)
}

// flakyBackend stores state in memory and fails every update while fail is set.
type flakyBackend struct {
	state model.State
	fail  bool
}

func (b *flakyBackend) Update(fn func(model.State) (model.State, error)) (model.State, error) {
	if b.fail {
		return model.State{}, errors.New("disk full")
	}
	next, err := fn(b.state)
	if err != nil {
		return model.State{}, err
	}
	b.state = next
	return next, nil
}

func TestModel_StopFailureKeepsPromptForRetry(t *testing.T) {
	state := fixtures.NewStateBuilder().Build()
	backend := &flakyBackend{state: state}
	clock := util.NewFixedClock(t0)
	l := ledger.New(state, clock, ledger.WithBackend(backend), ledger.WithIDs(fixtures.SeqIDs("run")))
	m := NewModel(l, NewRefreshController(7, 120), clock, time.Second)

	m, _ = send(t, m, runes("1"))
	clock.Advance(20 * time.Minute)
	m, _ = send(t, m, runes("s"))
	m, _ = send(t, m, runes("retro"))

	backend.fail = true
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, viewNote, m.state)
	assert.Equal(t, "disk full", m.err)
	assert.Equal(t, "retro", m.note.Value())
	_, pending := l.PendingStop()
	assert.True(t, pending)
	assert.NotNil(t, l.State().Running)

	backend.fail = false
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, viewDashboard, m.state)
	assert.Empty(t, m.err)
	require.Len(t, backend.state.Intervals, 1)
	assert.Equal(t, "retro", backend.state.Intervals[0].Note)
	_, pending = l.PendingStop()
	assert.False(t, pending)
}

func TestModel_StopWhenIdle(t *testing.T) {
	m, _, _ := newTestModel(t, fixtures.NewStateBuilder().Build())

	m, cmd := send(t, m, runes("s"))

	assert.Nil(t, cmd)
	assert.Equal(t, viewDashboard, m.state)
	assert.Equal(t, "Nothing is being tracked", m.statusMsg)
}

func TestModel_QuitKeys(t *testing.T) {
	m, _, _ := newTestModel(t, fixtures.NewStateBuilder().Build())

	_, cmd := send(t, m, runes("q"))
	assert.True(t, isQuit(cmd))

	_, cmd = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.True(t, isQuit(cmd))
}

func TestModel_PromptCapturesLetters(t *testing.T) {
	m, l, clock := newTestModel(t, fixtures.NewStateBuilder().Build())

	m, _ = send(t, m, runes("1"))
	clock.Advance(time.Minute)
	m, _ = send(t, m, runes("s"))
	m, cmd := send(t, m, runes("q"))

	assert.False(t, isQuit(cmd))
	assert.Equal(t, viewNote, m.state)
	assert.Equal(t, "q", m.note.Value())

	_, cmd = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.True(t, isQuit(cmd))
	assert.NotNil(t, l.State().Running, "quitting from the prompt keeps the interval running")
}

func TestModel_TickRereadsClock(t *testing.T) {
	state := fixtures.NewStateBuilder().Running(model.CategoryWork, t0).Build()
	m, _, clock := newTestModel(t, state)
	assert.Equal(t, t0, m.snap.Now)

	clock.Advance(90 * time.Second)
	m, cmd := send(t, m, tickMsg(clock.Now()))

	assert.NotNil(t, cmd)
	assert.Equal(t, t0.Add(90*time.Second), m.snap.Now)
	assert.Contains(t, m.View(), "Elapsed: 00:01:30")
}

func TestModel_ReloadReplacesState(t *testing.T) {
	m, l, _ := newTestModel(t, fixtures.NewStateBuilder().Build())

	external := fixtures.NewStateBuilder().Running(model.CategorySocial, t0.Add(-time.Hour)).Build()
	m, _ = send(t, m, stateReloadedMsg{state: external})

	require.NotNil(t, l.State().Running)
	assert.Equal(t, model.CategorySocial, m.snap.State.Running.CategoryID)
}

func TestModel_ReloadClosesStalePrompt(t *testing.T) {
	m, l, clock := newTestModel(t, fixtures.NewStateBuilder().Build())

	m, _ = send(t, m, runes("1"))
	clock.Advance(time.Minute)
	m, _ = send(t, m, runes("s"))
	require.Equal(t, viewNote, m.state)

	stopped := l.State()
	stopped.Running = nil
	m, _ = send(t, m, stateReloadedMsg{state: stopped})

	assert.Equal(t, viewDashboard, m.state)
	assert.Equal(t, "Stopped elsewhere", m.statusMsg)
	_, pending := l.PendingStop()
	assert.False(t, pending)
}

func TestModel_ReloadError(t *testing.T) {
	m, l, _ := newTestModel(t, fixtures.NewStateBuilder().Running(model.CategoryWork, t0).Build())

	m, _ = send(t, m, stateReloadedMsg{err: errors.New("disk gone")})

	assert.Equal(t, "disk gone", m.err)
	assert.NotNil(t, l.State().Running)
}

func TestModel_ViewSections(t *testing.T) {
	state := fixtures.NewStateBuilder().
		Goal(model.CategoryWork, 60).
		Finished(model.CategoryWork, t0.Add(-2*time.Hour), t0.Add(-time.Hour), "").
		Build()
	m, _, _ := newTestModel(t, state)
	m, _ = send(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})

	view := m.View()
	assert.Contains(t, view, "Life Tracker")
	assert.Contains(t, view, "Nothing is being tracked")
	assert.Contains(t, view, "Today")
	assert.Contains(t, view, "Last 7 days")
	assert.Contains(t, view, "Streaks (goal-based)")
	assert.Contains(t, view, "1 day streak (best 1)")
	assert.Contains(t, view, "1 🧑‍💻 Work & Productivity")
	assert.Contains(t, view, "start category")
}

func TestModel_LayoutFollowsWidthUntilToggled(t *testing.T) {
	state := fixtures.NewStateBuilder().Goal(model.CategoryWork, 60).Build()
	m, _, _ := newTestModel(t, state)

	m, _ = send(t, m, tea.WindowSizeMsg{Width: 80, Height: 30})
	assert.Equal(t, layout.LayoutMinimal, m.layoutStyle)
	view := m.View()
	assert.Contains(t, view, "This week: 0h 0m (0% of weekly goal)")
	assert.NotContains(t, view, "Last 7 days")

	m, _ = send(t, m, runes("l"))
	assert.Equal(t, layout.LayoutFull, m.layoutStyle)
	assert.Contains(t, m.View(), "Last 7 days")

	m, _ = send(t, m, tea.WindowSizeMsg{Width: 60, Height: 30})
	assert.Equal(t, layout.LayoutFull, m.layoutStyle, "a chosen layout survives resizes")
}
