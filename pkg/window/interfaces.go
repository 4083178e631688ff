package window

import (
	"context"

	"github.com/glorpus-work/launchpad/pkg/model"
	"github.com/glorpus-work/launchpad/pkg/settings"
)

//go:generate mockgen -destination=mocks/window.go -package=mocks . Window,Factory,Screen,Quitter

// Rect is a rectangle in screen coordinates.
type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Kind tells the launcher window and app windows apart.
type Kind string

const (
	KindLauncher Kind = "launcher"
	KindApp      Kind = "app"
)

// Options describe a window to create. X and Y are nil to let the display place it.
type Options struct {
	Kind         Kind     `json:"kind"`
	Title        string   `json:"title"`
	URL          string   `json:"url"`
	IconPath     string   `json:"iconPath,omitempty"`
	X            *int     `json:"x,omitempty"`
	Y            *int     `json:"y,omitempty"`
	Width        int      `json:"width"`
	Height       int      `json:"height"`
	MinWidth     int      `json:"minWidth,omitempty"`
	MinHeight    int      `json:"minHeight,omitempty"`
	Center       bool     `json:"center,omitempty"`
	SplashScreen bool     `json:"splashScreen,omitempty"`
	Args         []string `json:"args,omitempty"`
}

// Window is a display surface hosted by a display process.
type Window interface {
	ID() string
	Show() error
	Hide() error
	IsVisible() bool
	// Close asks the window to close. Events.Closing may prevent it.
	Close() error
	Reload() error
	Bounds() Rect
	IsMaximized() bool
	Maximize() error
}

// Events receives the lifecycle notifications of one window.
type Events interface {
	// Closing is called before a window closes; returning true prevents the close.
	Closing(w Window) bool
	Closed(w Window)
	// Restart is requested by the window content to reload itself.
	Restart(w Window)
	// Loaded is called once the window content finished loading.
	Loaded(w Window)
}

// Factory creates windows.
type Factory interface {
	Create(opts Options, events Events) (Window, error)
}

// Screen knows the layout of the attached displays.
type Screen interface {
	// DisplayMatching returns the bounds of the display that overlaps r the most.
	DisplayMatching(r Rect) Rect
}

// Quitter ends the orchestrator process.
type Quitter interface {
	Quit()
}

// AppResolver finds installed apps.
type AppResolver interface {
	FindLaunchable(ctx context.Context, spec model.Spec) (model.LaunchableApp, error)
}

// StateStore remembers the geometry of the last closed app window.
type StateStore interface {
	LastWindowState() settings.WindowState
	SetLastWindowState(state settings.WindowState) error
}
