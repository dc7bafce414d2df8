package watcher

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/penwyp/go-life-tracker/internal/util"
)

// Event reports a change to the watched state file.
type Event struct {
	Path      string
	Operation string
}

// StateWatcher notifies when the state file is written by another process.
// The parent directory is watched because saves replace the file by rename.
type StateWatcher struct {
	watcher *fsnotify.Watcher
	path    string
	events  chan Event
	done    chan struct{}
	once    sync.Once
}

func NewStateWatcher(path string) (*StateWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	dir := filepath.Dir(abs)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(dir); err != nil {
		w.Close()
		return nil, err
	}

	sw := &StateWatcher{
		watcher: w,
		path:    abs,
		events:  make(chan Event, 1),
		done:    make(chan struct{}),
	}
	go sw.processEvents()
	return sw, nil
}

func (sw *StateWatcher) processEvents() {
	defer close(sw.events)
	for {
		select {
		case event, ok := <-sw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != sw.path {
				continue
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) && !event.Has(fsnotify.Rename) {
				continue
			}
			util.LogDebug("State file changed", util.F("path", event.Name), util.F("op", event.Op.String()))
			// One pending event is enough; the consumer reloads the whole file.
			select {
			case sw.events <- Event{Path: event.Name, Operation: event.Op.String()}:
			default:
			}

		case err, ok := <-sw.watcher.Errors:
			if !ok {
				return
			}
			// Log error but continue running
			util.LogError("File monitoring error", util.F("error", err))

		case <-sw.done:
			return
		}
	}
}

// Events delivers change notifications. It is closed after Close.
func (sw *StateWatcher) Events() <-chan Event {
	return sw.events
}

func (sw *StateWatcher) Close() error {
	var err error
	sw.once.Do(func() {
		close(sw.done)
		err = sw.watcher.Close()
	})
	return err
}
