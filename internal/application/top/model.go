package top

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/penwyp/go-life-tracker/internal/core/ledger"
	"github.com/penwyp/go-life-tracker/internal/core/model"
	"github.com/penwyp/go-life-tracker/internal/data/report"
	"github.com/penwyp/go-life-tracker/internal/presentation/formatter"
	"github.com/penwyp/go-life-tracker/internal/presentation/layout"
	"github.com/penwyp/go-life-tracker/internal/util"
)

type viewState int

const (
	viewDashboard viewState = iota
	viewNote                // note prompt for a pending stop
)

// tickMsg re-reads the clock; state only changes through commands or reloads.
type tickMsg time.Time

// stateReloadedMsg is sent after another process wrote the state file.
type stateReloadedMsg struct {
	state model.State
	err   error
}

func tick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Model is the dashboard TUI model.
type Model struct {
	ledger   *ledger.Ledger
	refresh  *RefreshController
	clock    util.Clock
	interval time.Duration

	state viewState
	help  help.Model
	note  textinput.Model

	snap        layout.Dashboard
	width       int
	layoutStyle int
	pinned      bool // layout chosen by the user, not the window width
	err         string
	statusMsg   string
}

// NewModel creates the dashboard over a ledger.
func NewModel(l *ledger.Ledger, rc *RefreshController, clock util.Clock, interval time.Duration) Model {
	ni := textinput.New()
	ni.Placeholder = "What did you get done? (optional)"
	ni.CharLimit = 280
	ni.Width = 50

	m := Model{
		ledger:   l,
		refresh:  rc,
		clock:    clock,
		interval: interval,
		help:     help.New(),
		note:     ni,
	}
	m.refreshSnapshot()
	return m
}

func (m Model) Init() tea.Cmd {
	return tick(m.interval)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width - 4
		if !m.pinned {
			m.layoutStyle = layout.AutoLayout(msg.Width)
		}
		return m, nil

	case tickMsg:
		m.refreshSnapshot()
		return m, tick(m.interval)

	case stateReloadedMsg:
		if msg.err != nil {
			m.setError(msg.err)
			return m, nil
		}
		m.ledger.Replace(msg.state)
		if m.state == viewNote && !m.pendingStillRunning() {
			m.ledger.CancelStop()
			m.closePrompt()
			m.statusMsg = "Stopped elsewhere"
		}
		m.refreshSnapshot()
		return m, nil

	case tea.KeyMsg:
		if m.state == viewNote {
			return m.updateNote(msg)
		}
		return m.updateDashboard(msg)
	}
	return m, nil
}

func (m Model) updateDashboard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Stop):
		if _, err := m.ledger.RequestStop(); err != nil {
			m.err = ""
			m.statusMsg = "Nothing is being tracked"
			return m, nil
		}
		m.state = viewNote
		m.err = ""
		m.statusMsg = ""
		m.note.Reset()
		return m, m.note.Focus()

	case key.Matches(msg, keys.Layout):
		m.pinned = true
		if m.layoutStyle == layout.LayoutFull {
			m.layoutStyle = layout.LayoutMinimal
		} else {
			m.layoutStyle = layout.LayoutFull
		}
		return m, nil

	case key.Matches(msg, keys.Start):
		n, _ := strconv.Atoi(msg.String())
		m.start(n - 1)
		return m, nil
	}
	return m, nil
}

func (m Model) updateNote(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "ctrl+c":
		m.ledger.CancelStop()
		return m, tea.Quit

	case key.Matches(msg, keys.Save):
		res, err := m.ledger.CommitStop(m.note.Value())
		if err != nil {
			// the stop is still pending; keep the prompt so it can be retried
			m.setError(err)
			return m, nil
		}
		m.finishStop(res)

	case key.Matches(msg, keys.Skip):
		res, err := m.ledger.SkipStop()
		if err != nil {
			m.setError(err)
			return m, nil
		}
		m.finishStop(res)

	case key.Matches(msg, keys.Cancel):
		m.ledger.CancelStop()
		m.err = ""
		m.statusMsg = "Still tracking"

	default:
		var cmd tea.Cmd
		m.note, cmd = m.note.Update(msg)
		return m, cmd
	}
	m.closePrompt()
	m.refreshSnapshot()
	return m, nil
}

// start switches to the idx-th category's default project.
func (m *Model) start(idx int) {
	state := m.ledger.State()
	if idx < 0 || idx >= len(state.Categories) {
		return
	}
	c := state.Categories[idx]
	p, ok := state.DefaultProject(c.ID)
	if !ok {
		m.setError(model.ErrUnknownProject.New("%s has no projects", c.Name))
		return
	}
	res, err := m.ledger.Do(ledger.Start{CategoryID: c.ID, ProjectID: p.ID})
	if err != nil {
		m.setError(err)
		return
	}
	logDiscarded(res)
	m.err = ""
	m.statusMsg = "Tracking " + report.Label(state, c.ID, p.ID)
	util.LogInfo("Tracking started", util.F("category", c.ID), util.F("project", p.ID))
	m.refreshSnapshot()
}

func (m *Model) finishStop(res ledger.Result) {
	logDiscarded(res)
	m.err = ""
	if f := res.Closed; f != nil {
		m.statusMsg = fmt.Sprintf("Stopped %s after %s",
			report.Label(m.snap.State, f.CategoryID, f.ProjectID), util.FormatHMS(f.Duration()))
		util.LogInfo("Tracking stopped", util.F("interval", f.ID), util.F("durationMs", f.Duration()))
		return
	}
	m.statusMsg = "Stopped"
}

func logDiscarded(res ledger.Result) {
	if r := res.Discarded; r != nil {
		util.LogWarn("Discarded empty interval", util.F("interval", r.ID), util.F("start", r.Start))
	}
}

func (m *Model) closePrompt() {
	m.state = viewDashboard
	m.note.Blur()
	m.note.Reset()
}

func (m Model) pendingStillRunning() bool {
	id, ok := m.ledger.PendingStop()
	running := m.ledger.State().Running
	return ok && running != nil && running.ID == id
}

func (m *Model) setError(err error) {
	m.err = err.Error()
	m.statusMsg = ""
	util.LogError("Dashboard command failed", util.F("error", err))
}

func (m *Model) refreshSnapshot() {
	m.snap = m.refresh.Refresh(m.ledger.State(), m.clock.Now())
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Life Tracker"))
	b.WriteString("  ")
	b.WriteString(idleStyle.Render(m.snap.Now.Format("Mon 2006-01-02 15:04:05")))
	b.WriteString("\n")
	b.WriteString(idleStyle.Render(layout.Separator(m.width)))
	b.WriteString("\n")

	nowMs := m.snap.Now.UnixMilli()
	if m.snap.State.Running != nil {
		b.WriteString(runningStyle.Render(formatter.RunningLine(m.snap.State, nowMs)))
	} else {
		b.WriteString(idleStyle.Render(formatter.RunningLine(m.snap.State, nowMs)))
	}
	b.WriteString("\n\n")

	if m.state == viewNote {
		b.WriteString(m.promptView())
		b.WriteString("\n\n")
	}

	b.WriteString(layout.GetLayoutStrategy(m.layoutStyle).Render(m.snap, m.width))
	b.WriteString("\n\n")
	b.WriteString(idleStyle.Render(m.categoryKeys()))
	b.WriteString("\n")

	switch {
	case m.err != "":
		b.WriteString("\n")
		b.WriteString(statusErrorStyle.Render(m.err))
	case m.statusMsg != "":
		b.WriteString("\n")
		b.WriteString(statusOkStyle.Render(m.statusMsg))
	}

	if m.state == viewNote {
		b.WriteString(helpStyle.Render(m.help.View(promptKeys{keys})))
	} else {
		b.WriteString(helpStyle.Render(m.help.View(keys)))
	}
	return appStyle.Render(b.String())
}

func (m Model) promptView() string {
	label := "interval"
	if r := m.snap.State.Running; r != nil {
		label = report.Label(m.snap.State, r.CategoryID, r.ProjectID)
	}
	return promptBorderStyle.Render(fmt.Sprintf("Stop %s\n%s", label, m.note.View()))
}

func (m Model) categoryKeys() string {
	parts := make([]string, 0, len(m.snap.State.Categories))
	for i, c := range m.snap.State.Categories {
		if i >= 8 {
			break
		}
		parts = append(parts, fmt.Sprintf("%d %s", i+1, c.Name))
	}
	return strings.Join(parts, "  ")
}
