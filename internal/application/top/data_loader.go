package top

import (
	"fmt"

	"github.com/penwyp/go-life-tracker/internal/core/model"
	"github.com/penwyp/go-life-tracker/internal/data/store"
	"github.com/penwyp/go-life-tracker/internal/data/watcher"
	"github.com/penwyp/go-life-tracker/internal/util"
)

// DataLoader owns the state file: loading, reloading and change notification.
type DataLoader struct {
	config  *TopConfig
	store   *store.Store
	watcher *watcher.StateWatcher
}

// NewDataLoader creates a new DataLoader instance
func NewDataLoader(config *TopConfig, opts ...store.Option) (*DataLoader, error) {
	path := util.ExpandPath(config.DataFile)
	if path == "" {
		return nil, fmt.Errorf("invalid data file %q", config.DataFile)
	}
	return &DataLoader{
		config: config,
		store:  store.New(path, opts...),
	}, nil
}

// Store is the backend commands are persisted through.
func (dl *DataLoader) Store() *store.Store {
	return dl.store
}

// Preload reads the state once at startup, writing the default document on first run
// so the watcher has a file to follow.
func (dl *DataLoader) Preload() (model.State, error) {
	state, err := dl.store.Load()
	if err != nil {
		return model.State{}, fmt.Errorf("failed to load state: %w", err)
	}
	if err := dl.store.Save(state); err != nil {
		return model.State{}, fmt.Errorf("failed to save state: %w", err)
	}
	util.LogInfo("State loaded",
		util.F("path", dl.store.Path()),
		util.F("intervals", len(state.Intervals)),
		util.F("running", state.Running != nil))
	return state, nil
}

// Reload reads the state after an external change.
func (dl *DataLoader) Reload() (model.State, error) {
	state, err := dl.store.Load()
	if err != nil {
		return model.State{}, fmt.Errorf("failed to reload state: %w", err)
	}
	return state, nil
}

// Watch starts following the state file.
func (dl *DataLoader) Watch() error {
	if dl.watcher != nil {
		return nil
	}
	w, err := watcher.NewStateWatcher(dl.store.Path())
	if err != nil {
		return err
	}
	dl.watcher = w
	return nil
}

// Events is nil until Watch succeeds; a nil channel never fires in a select.
func (dl *DataLoader) Events() <-chan watcher.Event {
	if dl.watcher == nil {
		return nil
	}
	return dl.watcher.Events()
}

func (dl *DataLoader) Close() error {
	if dl.watcher == nil {
		return nil
	}
	return dl.watcher.Close()
}
