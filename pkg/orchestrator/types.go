package orchestrator

import (
	"github.com/glorpus-work/launchpad/pkg/config"
	"github.com/glorpus-work/launchpad/pkg/serialport"
	"github.com/glorpus-work/launchpad/pkg/window"
)

// Event represents a simple lifecycle notification.
type Event struct {
	Phase string // starting|refreshing|listening|ready|stopping|error
	Msg   string
}

// Hooks carries callbacks for lifecycle events.
type Hooks struct {
	OnEvent func(Event)
}

func emit(h Hooks, e Event) {
	if h.OnEvent != nil {
		h.OnEvent(e)
	}
}

// Options control orchestrator construction.
type Options struct {
	Config      *config.Config
	CoreVersion string
	// GOOS defaults to the running platform.
	GOOS  string
	Hooks Hooks
	// Factory replaces the display-process window factory.
	Factory window.Factory
	// Opener replaces the real serial device opener.
	Opener serialport.Opener
}
