// Package store persists the tracker state as a single JSON document.
package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/bytedance/sonic"
	"github.com/penwyp/go-life-tracker/internal/core/ledger"
	"github.com/penwyp/go-life-tracker/internal/core/model"
	"github.com/penwyp/go-life-tracker/internal/util"
)

// codec sorts map keys so that saving an unchanged state is byte-stable.
var codec = sonic.Config{
	SortMapKeys:      true,
	ValidateString:   true,
	NoNullSliceOrMap: true,
}.Froze()

// Store reads and writes one state file. Update holds an exclusive lock on a
// sibling .lock file for the whole read-modify-write.
type Store struct {
	path  string
	newID func() string
	clock util.Clock

	mu sync.Mutex
}

// Option configures a Store.
type Option func(*Store)

// WithIDs sets the id generator used when seeding default projects.
func WithIDs(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

// WithClock sets the clock used to name backups of corrupt files.
func WithClock(c util.Clock) Option {
	return func(s *Store) { s.clock = c }
}

// New creates a store for path. Seeded projects get random ids unless WithIDs is given.
func New(path string, opts ...Option) *Store {
	s := &Store{path: path, newID: ledger.NewID, clock: util.GetTimeProvider()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Path() string {
	return s.path
}

func (s *Store) lockPath() string {
	return s.path + ".lock"
}

// Load reads the state. A missing file yields the default state; a malformed one is
// backed up and the default state is written in its place.
func (s *Store) Load() (model.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock := newFileLock(s.lockPath())
	if err := lock.Lock(); err != nil {
		return model.State{}, fmt.Errorf("failed to lock state: %w", err)
	}
	defer lock.Unlock()

	return s.load()
}

func (s *Store) load() (model.State, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		util.LogDebug("No state file, starting from defaults", util.F("path", s.path))
		return model.NewDefaultState(s.newID), nil
	}
	if err != nil {
		return model.State{}, fmt.Errorf("failed to read state: %w", err)
	}

	state, err := s.decode(data)
	if err != nil {
		util.LogWarn("State file is malformed, using defaults", util.F("path", s.path), util.F("error", err))
		return s.replaceCorrupt(), nil
	}
	return state, nil
}

// replaceCorrupt moves the malformed file aside and writes the default state in its
// place, so seeded project ids survive until the next load.
func (s *Store) replaceCorrupt() model.State {
	if backup, err := s.backupCorrupt(); err != nil {
		util.LogError("Failed to back up malformed state", util.F("error", err))
	} else {
		util.LogInfo("Backed up malformed state", util.F("backup", backup))
	}
	state := model.NewDefaultState(s.newID)
	if err := s.save(state); err != nil {
		util.LogError("Failed to write default state", util.F("error", err))
	}
	return state
}

// Decode parses and repairs a state document.
func Decode(data []byte, newID func() string) (model.State, []string, error) {
	if newID == nil {
		newID = ledger.NewID
	}
	var doc document
	if err := codec.Unmarshal(data, &doc); err != nil {
		return model.State{}, nil, model.ErrMalformedState.Wrap(err)
	}
	if doc.Version < 0 {
		return model.State{}, nil, model.ErrMalformedState.New("invalid version %d", doc.Version)
	}
	state, repairs := fromDocument(doc, newID)
	return state, repairs, nil
}

// Encode renders a state document.
func Encode(state model.State) ([]byte, error) {
	return codec.MarshalIndent(toDocument(state), "", "  ")
}

func (s *Store) decode(data []byte) (model.State, error) {
	state, repairs, err := Decode(data, s.newID)
	if err != nil {
		return model.State{}, err
	}
	for _, r := range repairs {
		util.LogWarn("Repaired state on load", util.F("repair", r))
	}
	return state, nil
}

func (s *Store) backupCorrupt() (string, error) {
	backup := s.path + ".corrupt-" + strconv.FormatInt(s.clock.Now().UnixMilli(), 10)
	if err := os.Rename(s.path, backup); err != nil {
		return "", err
	}
	return backup, nil
}

// Save writes the state atomically.
func (s *Store) Save(state model.State) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock := newFileLock(s.lockPath())
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("failed to lock state: %w", err)
	}
	defer lock.Unlock()

	return s.save(state)
}

func (s *Store) save(state model.State) error {
	data, err := Encode(state)
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	// Atomic write: write to temp file first, then rename
	tempPath := s.path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write state: %w", err)
	}
	if err := os.Rename(tempPath, s.path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to save state: %w", err)
	}

	util.LogDebug("Saved state", util.F("path", s.path), util.F("intervals", len(state.Intervals)))
	return nil
}

// Update loads the state, applies fn and saves the result, all under one lock.
// When fn fails nothing is written.
func (s *Store) Update(fn func(model.State) (model.State, error)) (model.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock := newFileLock(s.lockPath())
	if err := lock.Lock(); err != nil {
		return model.State{}, fmt.Errorf("failed to lock state: %w", err)
	}
	defer lock.Unlock()

	current, err := s.load()
	if err != nil {
		return model.State{}, err
	}
	next, err := fn(current)
	if err != nil {
		return model.State{}, err
	}
	if err := s.save(next); err != nil {
		return model.State{}, err
	}
	return next, nil
}
