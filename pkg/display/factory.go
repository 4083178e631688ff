// Package display hosts windows in external display processes. Each window is one
// process; commands go out as channel events and state comes back as channel requests.
package display

import (
	"os"
	"os/exec"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/glorpus-work/launchpad/internal/logger"
	"github.com/glorpus-work/launchpad/pkg/errutils"
	"github.com/glorpus-work/launchpad/pkg/window"
)

// Events pushed to display processes.
const (
	EventShow     = "window:show"
	EventHide     = "window:hide"
	EventClose    = "window:close"
	EventReload   = "window:reload"
	EventMaximize = "window:maximize"
)

// DefaultCloseGrace is how long a display process gets to exit after a close.
const DefaultCloseGrace = 5 * time.Second

// Pusher delivers events to the display process of a window.
type Pusher interface {
	SendTo(windowID, event string, payload interface{}) error
}

// Config describes how display processes are started.
type Config struct {
	Command    string
	Args       []string
	Env        []string
	ChannelURL string
	CloseGrace time.Duration
}

// Factory starts display processes and tracks their windows.
type Factory struct {
	cfg    Config
	pusher Pusher

	mu      sync.Mutex
	windows map[string]*Window
}

// NewFactory creates a factory pushing commands through pusher.
func NewFactory(cfg Config, pusher Pusher) *Factory {
	if cfg.CloseGrace <= 0 {
		cfg.CloseGrace = DefaultCloseGrace
	}
	return &Factory{cfg: cfg, pusher: pusher, windows: make(map[string]*Window)}
}

// Create starts a display process for a window described by opts.
func (f *Factory) Create(opts window.Options, events window.Events) (window.Window, error) {
	if f.cfg.Command == "" {
		return nil, errutils.Wrap(errutils.ErrWindowFactory, "no display command configured")
	}

	w := &Window{
		id:      uuid.NewString(),
		opts:    opts,
		events:  events,
		factory: f,
		visible: true,
		bounds:  initialBounds(opts),
		exited:  make(chan struct{}),
	}

	cmd := exec.Command(f.cfg.Command, f.args(w.id, opts)...)
	cmd.Env = append(os.Environ(), f.cfg.Env...)
	cmd.Stdout = os.Stderr
	cmd.Stderr = os.Stderr
	if err := cmd.Start(); err != nil {
		return nil, errutils.Wrapf(err, "failed to start display process %s", f.cfg.Command)
	}
	w.cmd = cmd

	f.mu.Lock()
	f.windows[w.id] = w
	f.mu.Unlock()

	logger.Debug("Started display process", logger.Fields{"window": w.id, "pid": cmd.Process.Pid, "kind": string(opts.Kind)})
	go w.wait()
	return w, nil
}

// SetChannelURL sets the URL later display processes connect to.
func (f *Factory) SetChannelURL(url string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cfg.ChannelURL = url
}

// Lookup returns the live window with id.
func (f *Factory) Lookup(id string) (*Window, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	w, ok := f.windows[id]
	return w, ok
}

// Len returns the number of live windows.
func (f *Factory) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.windows)
}

// KillAll terminates every display process.
func (f *Factory) KillAll() {
	f.mu.Lock()
	windows := make([]*Window, 0, len(f.windows))
	for _, w := range f.windows {
		windows = append(windows, w)
	}
	f.mu.Unlock()
	for _, w := range windows {
		w.kill()
	}
}

func (f *Factory) forget(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.windows, id)
}

func (f *Factory) args(id string, opts window.Options) []string {
	f.mu.Lock()
	channelURL := f.cfg.ChannelURL
	f.mu.Unlock()

	args := append([]string{}, f.cfg.Args...)
	args = append(args,
		"--window-id", id,
		"--channel-url", channelURL,
		"--url", opts.URL,
		"--kind", string(opts.Kind),
		"--title", opts.Title,
		"--width", strconv.Itoa(opts.Width),
		"--height", strconv.Itoa(opts.Height),
	)
	if opts.X != nil && opts.Y != nil {
		args = append(args, "--x", strconv.Itoa(*opts.X), "--y", strconv.Itoa(*opts.Y))
	}
	if opts.MinWidth > 0 {
		args = append(args, "--min-width", strconv.Itoa(opts.MinWidth))
	}
	if opts.MinHeight > 0 {
		args = append(args, "--min-height", strconv.Itoa(opts.MinHeight))
	}
	if opts.IconPath != "" {
		args = append(args, "--icon", opts.IconPath)
	}
	if opts.Center {
		args = append(args, "--center")
	}
	if opts.SplashScreen {
		args = append(args, "--splash-screen")
	}
	if len(opts.Args) > 0 {
		args = append(args, "--")
		args = append(args, opts.Args...)
	}
	return args
}

func initialBounds(opts window.Options) window.Rect {
	r := window.Rect{Width: opts.Width, Height: opts.Height}
	if opts.X != nil && opts.Y != nil {
		r.X, r.Y = *opts.X, *opts.Y
	}
	return r
}
