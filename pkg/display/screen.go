package display

import (
	"sync"

	"github.com/glorpus-work/launchpad/pkg/window"
)

// DefaultDisplay is assumed until a display process reports the real layout.
var DefaultDisplay = window.Rect{Width: 1920, Height: 1080}

// Screen is the display layout last reported by a display process.
type Screen struct {
	mu       sync.RWMutex
	displays []window.Rect
}

var _ window.Screen = (*Screen)(nil)

// NewScreen creates a screen with the default display.
func NewScreen() *Screen {
	return &Screen{displays: []window.Rect{DefaultDisplay}}
}

// SetDisplays replaces the known displays. An empty list restores the default.
func (s *Screen) SetDisplays(displays []window.Rect) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(displays) == 0 {
		s.displays = []window.Rect{DefaultDisplay}
		return
	}
	s.displays = append([]window.Rect{}, displays...)
}

// Displays returns the known displays.
func (s *Screen) Displays() []window.Rect {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]window.Rect{}, s.displays...)
}

// DisplayMatching returns the display overlapping r the most, or the first display when
// r overlaps none.
func (s *Screen) DisplayMatching(r window.Rect) window.Rect {
	s.mu.RLock()
	defer s.mu.RUnlock()
	best, bestArea := s.displays[0], 0
	for _, d := range s.displays {
		if a := overlap(r, d); a > bestArea {
			best, bestArea = d, a
		}
	}
	return best
}

func overlap(a, b window.Rect) int {
	w := min(a.X+a.Width, b.X+b.Width) - max(a.X, b.X)
	h := min(a.Y+a.Height, b.Y+b.Height) - max(a.Y, b.Y)
	if w <= 0 || h <= 0 {
		return 0
	}
	return w * h
}
