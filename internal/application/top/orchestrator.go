package top

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/penwyp/go-life-tracker/internal/core/ledger"
	"github.com/penwyp/go-life-tracker/internal/data/store"
	"github.com/penwyp/go-life-tracker/internal/util"
)

// Orchestrator coordinates all components for the top command
type Orchestrator struct {
	config *TopConfig
	clock  util.Clock

	dataLoader  *DataLoader
	refreshCtrl *RefreshController
	ledger      *ledger.Ledger

	programOpts []tea.ProgramOption
}

// NewOrchestrator creates a new Orchestrator instance. A nil clock uses the global
// time provider.
func NewOrchestrator(config *TopConfig, clock util.Clock, opts ...store.Option) (*Orchestrator, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if clock == nil {
		clock = util.GetTimeProvider()
	}
	dataLoader, err := NewDataLoader(config, append([]store.Option{store.WithClock(clock)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create data loader: %w", err)
	}
	return &Orchestrator{
		config:      config,
		clock:       clock,
		dataLoader:  dataLoader,
		refreshCtrl: NewRefreshController(config.WeekDays, config.StreakDays),
		programOpts: []tea.ProgramOption{tea.WithAltScreen()},
	}, nil
}

// prepare loads the state and builds the initial model.
func (o *Orchestrator) prepare() (Model, error) {
	state, err := o.dataLoader.Preload()
	if err != nil {
		return Model{}, fmt.Errorf("preload failed: %w", err)
	}
	o.ledger = ledger.New(state, o.clock, ledger.WithBackend(o.dataLoader.Store()))

	if o.config.Watch {
		if err := o.dataLoader.Watch(); err != nil {
			util.LogWarn("State watcher unavailable, external changes will not show",
				util.F("error", err))
		}
	}
	return NewModel(o.ledger, o.refreshCtrl, o.clock, o.config.RefreshInterval), nil
}

// Run starts the dashboard and blocks until the user quits or ctx is cancelled.
func (o *Orchestrator) Run(ctx context.Context) error {
	util.LogInfo("Starting life tracker dashboard...")
	defer o.Close()

	m, err := o.prepare()
	if err != nil {
		return err
	}

	opts := append([]tea.ProgramOption{tea.WithContext(ctx)}, o.programOpts...)
	p := tea.NewProgram(m, opts...)

	done := make(chan struct{})
	defer close(done)
	if events := o.dataLoader.Events(); events != nil {
		go o.forwardChanges(p, done)
	}

	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			util.LogInfo("Shutting down life tracker dashboard...")
			return nil
		}
		return fmt.Errorf("dashboard failed: %w", err)
	}
	return nil
}

// forwardChanges reloads the state on every external write and hands it to the program.
func (o *Orchestrator) forwardChanges(p *tea.Program, done <-chan struct{}) {
	events := o.dataLoader.Events()
	for {
		select {
		case <-done:
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			util.LogDebug("State file changed", util.F("op", event.Operation))
			state, err := o.dataLoader.Reload()
			p.Send(stateReloadedMsg{state: state, err: err})
		}
	}
}

// Close releases the watcher.
func (o *Orchestrator) Close() error {
	return o.dataLoader.Close()
}
