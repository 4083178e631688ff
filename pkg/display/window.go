package display

import (
	"os/exec"
	"sync"
	"time"

	"github.com/glorpus-work/launchpad/internal/logger"
	"github.com/glorpus-work/launchpad/pkg/window"
)

// State is what a display process reports about its window.
type State struct {
	Visible   bool        `json:"visible"`
	Bounds    window.Rect `json:"bounds"`
	Maximized bool        `json:"maximized"`
}

// Window is a window hosted by a display process.
type Window struct {
	id      string
	opts    window.Options
	events  window.Events
	factory *Factory
	cmd     *exec.Cmd

	mu        sync.Mutex
	visible   bool
	bounds    window.Rect
	maximized bool
	closing   bool

	exited chan struct{}
}

var _ window.Window = (*Window)(nil)

func (w *Window) ID() string { return w.id }

// Options returns the options the window was created with.
func (w *Window) Options() window.Options { return w.opts }

func (w *Window) Show() error {
	w.mu.Lock()
	w.visible = true
	w.mu.Unlock()
	return w.push(EventShow)
}

func (w *Window) Hide() error {
	w.mu.Lock()
	w.visible = false
	w.mu.Unlock()
	return w.push(EventHide)
}

func (w *Window) IsVisible() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.visible
}

func (w *Window) Bounds() window.Rect {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.bounds
}

func (w *Window) IsMaximized() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.maximized
}

func (w *Window) Maximize() error {
	w.mu.Lock()
	w.maximized = true
	w.mu.Unlock()
	return w.push(EventMaximize)
}

func (w *Window) Reload() error {
	return w.push(EventReload)
}

// Close runs the closing hook and, unless it objects, tells the display process to exit.
// The process is killed if it is still running after the close grace period.
func (w *Window) Close() error {
	if !w.RequestClose() {
		return nil
	}
	if err := w.push(EventClose); err != nil {
		logger.Debug("Display process did not receive close", logger.Fields{"window": w.id, "error": err.Error()})
	}
	return nil
}

// RequestClose runs the closing hook and reports whether the window may close. Once it
// returns true the process is terminated after the close grace period.
func (w *Window) RequestClose() bool {
	if w.events.Closing(w) {
		return false
	}
	w.mu.Lock()
	already := w.closing
	w.closing = true
	w.mu.Unlock()
	if !already {
		go w.killAfter(w.factory.cfg.CloseGrace)
	}
	return true
}

// ReportState updates the cached state from the display process.
func (w *Window) ReportState(s State) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.visible = s.Visible
	w.bounds = s.Bounds
	w.maximized = s.Maximized
}

// NotifyLoaded forwards the loaded notification of the display process.
func (w *Window) NotifyLoaded() {
	w.events.Loaded(w)
}

// RequestRestart forwards a restart request of the window content.
func (w *Window) RequestRestart() {
	w.events.Restart(w)
}

// Exited is closed once the display process has ended.
func (w *Window) Exited() <-chan struct{} {
	return w.exited
}

func (w *Window) push(event string) error {
	return w.factory.pusher.SendTo(w.id, event, nil)
}

func (w *Window) killAfter(grace time.Duration) {
	select {
	case <-w.exited:
	case <-time.After(grace):
		logger.Warn("Display process did not exit, killing it", logger.Fields{"window": w.id})
		w.kill()
	}
}

func (w *Window) kill() {
	select {
	case <-w.exited:
		return
	default:
	}
	if err := w.cmd.Process.Kill(); err != nil {
		logger.Debug("Unable to kill display process", logger.Fields{"window": w.id, "error": err.Error()})
	}
}

func (w *Window) wait() {
	err := w.cmd.Wait()
	fields := logger.Fields{"window": w.id}
	if err != nil {
		fields["error"] = err.Error()
	}
	logger.Debug("Display process exited", fields)

	w.mu.Lock()
	w.visible = false
	w.mu.Unlock()
	close(w.exited)
	w.factory.forget(w.id)
	w.events.Closed(w)
}
