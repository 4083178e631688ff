// Package settings is the persisted key/value state of the launcher: user-added sources
// and the geometry of the last closed app window. It is stored as one JSON document and
// rewritten atomically on every change.
package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/glorpus-work/launchpad/pkg/errutils"
	"github.com/glorpus-work/launchpad/pkg/fsutil"
)

const (
	// FormatVersion is written into every settings document.
	FormatVersion = "1"

	// DefaultWindowWidth and DefaultWindowHeight size the first app window.
	DefaultWindowWidth  = 1024
	DefaultWindowHeight = 800
)

// WindowState is the remembered geometry of the last closed app window.
// X and Y are nil when no position is remembered.
type WindowState struct {
	X         *int `json:"x,omitempty"`
	Y         *int `json:"y,omitempty"`
	Width     int  `json:"width"`
	Height    int  `json:"height"`
	Maximized bool `json:"maximized"`
}

type document struct {
	FormatVersion   string            `json:"format_version"`
	Sources         map[string]string `json:"sources"`
	LastWindowState WindowState       `json:"lastWindowState"`
}

// Store is a concurrency-safe handle on the settings file.
type Store struct {
	path string
	mu   sync.RWMutex
	doc  document
}

// DefaultWindowState returns the geometry used before any window was closed.
func DefaultWindowState() WindowState {
	return WindowState{Width: DefaultWindowWidth, Height: DefaultWindowHeight}
}

// Open loads the settings at path. A missing file yields empty settings.
func Open(path string) (*Store, error) {
	cleanPath := filepath.Clean(path)
	if !filepath.IsAbs(cleanPath) {
		return nil, fmt.Errorf("settings path must be absolute: %s: %w", path, errutils.ErrInvalidPath)
	}

	s := &Store{
		path: cleanPath,
		doc: document{
			FormatVersion:   FormatVersion,
			Sources:         map[string]string{},
			LastWindowState: DefaultWindowState(),
		},
	}

	data, err := os.ReadFile(cleanPath)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}
	if err := json.Unmarshal(data, &s.doc); err != nil {
		return nil, fmt.Errorf("failed to parse settings %s: %w", cleanPath, err)
	}
	if s.doc.Sources == nil {
		s.doc.Sources = map[string]string{}
	}
	if s.doc.LastWindowState.Width == 0 || s.doc.LastWindowState.Height == 0 {
		s.doc.LastWindowState.Width = DefaultWindowWidth
		s.doc.LastWindowState.Height = DefaultWindowHeight
	}
	return s, nil
}

// Path returns the file backing the store.
func (s *Store) Path() string {
	return s.path
}

// Sources returns a copy of the user-added sources, name to URL.
func (s *Store) Sources() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]string, len(s.doc.Sources))
	for k, v := range s.doc.Sources {
		out[k] = v
	}
	return out
}

// SetSource records a source and persists the change.
func (s *Store) SetSource(name, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.doc.Sources[name] = url
	return s.saveLocked()
}

// DeleteSource removes a source and persists the change. It reports whether the source existed.
func (s *Store) DeleteSource(name string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.doc.Sources[name]; !ok {
		return false, nil
	}
	delete(s.doc.Sources, name)
	return true, s.saveLocked()
}

// LastWindowState returns the remembered app window geometry.
func (s *Store) LastWindowState() WindowState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.LastWindowState
}

// SetLastWindowState persists the geometry of a closing app window.
func (s *Store) SetLastWindowState(state WindowState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.doc.LastWindowState = state
	return s.saveLocked()
}

func (s *Store) saveLocked() error {
	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	if err := fsutil.WriteFileAtomic(s.path, data, fsutil.FileModeSecure); err != nil {
		return errutils.Wrap(err, "failed to save settings")
	}
	return nil
}

// IntPtr is a small helper for building WindowState positions.
func IntPtr(v int) *int {
	return &v
}
