// Package serialport shares serial devices between app windows. One handle is opened per
// device path and every window watching the path receives its data and state changes.
package serialport

import (
	"fmt"
	"io"
	"sort"
	"sync"

	"go.bug.st/serial"

	"github.com/glorpus-work/launchpad/internal/logger"
	"github.com/glorpus-work/launchpad/pkg/errutils"
	"github.com/glorpus-work/launchpad/pkg/platform"
)

// Watcher is a window that observes a port.
type Watcher interface {
	ID() string
	Send(event string, args ...interface{}) error
}

// Port is an open serial handle.
type Port interface {
	io.ReadWriteCloser
	SetMode(mode *serial.Mode) error
}

// OpenPort is the registry entry of one device path.
type OpenPort struct {
	Port           Port
	Watchers       []Watcher
	SettingsLocked bool
	// Opening is set while the handle is being opened; concurrent opens of the same path
	// must back off while it is set.
	Opening bool
	Options Options
}

// HasWatcher reports whether w watches the port.
func (p *OpenPort) HasWatcher(w Watcher) bool {
	for _, existing := range p.Watchers {
		if existing.ID() == w.ID() {
			return true
		}
	}
	return false
}

// Registry maps device paths to open ports. Paths are compared case-insensitively on
// platforms whose device names are.
type Registry struct {
	goos  string
	mu    sync.Mutex
	ports map[string]*OpenPort
}

// NewRegistry creates an empty registry for goos. An empty goos means the running platform.
func NewRegistry(goos string) *Registry {
	if goos == "" {
		goos = platform.Current()
	}
	return &Registry{goos: goos, ports: make(map[string]*OpenPort)}
}

func (r *Registry) key(path string) string {
	return platform.NormalizeDevicePath(r.goos, path)
}

// Set stores the entry of path.
func (r *Registry) Set(path string, port *OpenPort) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ports[r.key(path)] = port
}

// Get returns the entry of path.
func (r *Registry) Get(path string) (*OpenPort, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.ports[r.key(path)]
	return p, ok
}

// Has reports whether path has an entry.
func (r *Registry) Has(path string) bool {
	_, ok := r.Get(path)
	return ok
}

// Delete removes the entry of path and reports whether it existed.
func (r *Registry) Delete(path string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := r.key(path)
	_, ok := r.ports[k]
	delete(r.ports, k)
	return ok
}

// Clear removes every entry.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ports = make(map[string]*OpenPort)
}

// Len returns the number of entries.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.ports)
}

// Paths returns the normalized paths of all entries, sorted.
func (r *Registry) Paths() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.ports))
	for k := range r.ports {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Broadcast sends event to every watcher of path. Send failures are logged.
func (r *Registry) Broadcast(path, event string, args ...interface{}) {
	r.mu.Lock()
	p, ok := r.ports[r.key(path)]
	var watchers []Watcher
	if ok {
		watchers = append(watchers, p.Watchers...)
	}
	r.mu.Unlock()

	for _, w := range watchers {
		if err := w.Send(event, args...); err != nil {
			logger.Debug("Unable to notify watcher", logger.Fields{"watcher": w.ID(), "event": event, "error": err.Error()})
		}
	}
}

// update runs fn on the entry of path while holding the registry lock.
func (r *Registry) update(path string, fn func(p *OpenPort) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.ports[r.key(path)]
	if !ok {
		return fmt.Errorf("%w: %s", errutils.ErrPortNotOpen, path)
	}
	return fn(p)
}
