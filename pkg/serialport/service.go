package serialport

import (
	"errors"
	"fmt"
	"slices"

	"go.bug.st/serial"

	"github.com/glorpus-work/launchpad/internal/logger"
	"github.com/glorpus-work/launchpad/pkg/errutils"
	"github.com/glorpus-work/launchpad/pkg/metrics"
)

// Events pushed to watchers.
const (
	EventData   = "serialport:on-data"
	EventClose  = "serialport:on-close"
	EventUpdate = "serialport:on-update"
	EventError  = "serialport:on-error"
)

const readBufferSize = 4096

// Opener opens the device at path with mode.
type Opener func(path string, mode *serial.Mode) (Port, error)

// SerialOpener opens real devices.
func SerialOpener(path string, mode *serial.Mode) (Port, error) {
	return serial.Open(path, mode)
}

// ListPorts returns the serial devices present on the machine.
func ListPorts() ([]string, error) {
	ports, err := serial.GetPortsList()
	if err != nil {
		return nil, errutils.Wrap(err, "failed to list serial ports")
	}
	return ports, nil
}

// Service opens and shares serial ports between watchers.
type Service struct {
	registry *Registry
	open     Opener
	metrics  *metrics.Metrics
}

// NewService creates a service on registry. A nil opener uses SerialOpener.
func NewService(registry *Registry, open Opener, m *metrics.Metrics) *Service {
	if open == nil {
		open = SerialOpener
	}
	return &Service{registry: registry, open: open, metrics: m}
}

// Registry returns the registry backing the service.
func (s *Service) Registry() *Registry {
	return s.registry
}

// Open attaches w to the port at path, opening the device if nobody holds it yet.
// When the port is already open with other options it is reconfigured if overwrite is set
// and its settings are not locked.
func (s *Service) Open(path string, opts Options, w Watcher, overwrite bool) error {
	mode, err := opts.Mode()
	if err != nil {
		return err
	}

	s.registry.mu.Lock()
	key := s.registry.key(path)
	if existing, ok := s.registry.ports[key]; ok {
		defer s.registry.mu.Unlock()
		return s.attach(path, existing, opts, mode, w, overwrite)
	}
	entry := &OpenPort{Opening: true, Options: opts, Watchers: []Watcher{w}}
	s.registry.ports[key] = entry
	s.registry.mu.Unlock()

	port, err := s.open(path, mode)
	if err != nil {
		s.registry.Delete(path)
		return errutils.Wrapf(err, "failed to open serial port %s", path)
	}

	s.registry.mu.Lock()
	if current, ok := s.registry.ports[key]; !ok || current != entry || len(entry.Watchers) == 0 {
		if ok && current == entry {
			delete(s.registry.ports, key)
		}
		s.registry.mu.Unlock()
		s.observe()
		_ = port.Close()
		logger.Info("Serial port released while opening", logger.Fields{"path": path, "watcher": w.ID()})
		return fmt.Errorf("%w: %s was released while opening", errutils.ErrPortNotOpen, path)
	}
	entry.Port = port
	entry.Opening = false
	s.registry.mu.Unlock()
	s.observe()

	logger.Info("Opened serial port", logger.Fields{"path": path, "baudRate": opts.BaudRate, "watcher": w.ID()})
	go s.read(path, entry, port)
	return nil
}

// attach runs with the registry lock held.
func (s *Service) attach(path string, p *OpenPort, opts Options, mode *serial.Mode, w Watcher, overwrite bool) error {
	if p.Opening {
		return fmt.Errorf("%w: %s", errutils.ErrPortBusy, path)
	}
	if !p.Options.Equal(opts) {
		if !overwrite {
			return fmt.Errorf("%w: %s", errutils.ErrPortOptionsMismatch, path)
		}
		if p.SettingsLocked {
			return fmt.Errorf("%w: %s", errutils.ErrPortSettingsLocked, path)
		}
		if err := p.Port.SetMode(mode); err != nil {
			return errutils.Wrapf(err, "failed to update serial port %s", path)
		}
		p.Options = opts
		watchers := slices.Clone(p.Watchers)
		go notify(watchers, EventUpdate, path, opts)
	}
	if !p.HasWatcher(w) {
		p.Watchers = append(p.Watchers, w)
	}
	return nil
}

// Close detaches w from the port at path. The device is closed when its last watcher leaves.
func (s *Service) Close(path string, w Watcher) error {
	s.registry.mu.Lock()
	key := s.registry.key(path)
	p, ok := s.registry.ports[key]
	if !ok || p.Opening {
		s.registry.mu.Unlock()
		return fmt.Errorf("%w: %s", errutils.ErrPortNotOpen, path)
	}
	p.Watchers = slices.DeleteFunc(p.Watchers, func(existing Watcher) bool {
		return existing.ID() == w.ID()
	})
	if len(p.Watchers) > 0 {
		s.registry.mu.Unlock()
		return nil
	}
	delete(s.registry.ports, key)
	s.registry.mu.Unlock()
	s.observe()

	if err := p.Port.Close(); err != nil {
		return errutils.Wrapf(err, "failed to close serial port %s", path)
	}
	logger.Info("Closed serial port", logger.Fields{"path": path})
	return nil
}

// Release detaches w from every port it watches, e.g. when its window goes away. A port
// that is still opening drops w right away and Open closes the handle if nobody is left.
func (s *Service) Release(w Watcher) {
	for _, path := range s.registry.Paths() {
		s.registry.mu.Lock()
		p, ok := s.registry.ports[s.registry.key(path)]
		if !ok || !p.HasWatcher(w) {
			s.registry.mu.Unlock()
			continue
		}
		if p.Opening {
			p.Watchers = slices.DeleteFunc(p.Watchers, func(existing Watcher) bool {
				return existing.ID() == w.ID()
			})
			s.registry.mu.Unlock()
			continue
		}
		s.registry.mu.Unlock()

		if err := s.Close(path, w); err != nil {
			logger.Warn("Unable to release serial port", logger.Fields{"path": path, "watcher": w.ID(), "error": err.Error()})
		}
	}
}

// Write sends data to the port at path.
func (s *Service) Write(path string, data []byte) error {
	port, err := s.port(path)
	if err != nil {
		return err
	}
	if _, err := port.Write(data); err != nil {
		s.registry.Broadcast(path, EventError, path, err.Error())
		return errutils.Wrapf(err, "failed to write to serial port %s", path)
	}
	return nil
}

// Update changes the options of the port at path and notifies its watchers.
func (s *Service) Update(path string, opts Options) error {
	mode, err := opts.Mode()
	if err != nil {
		return err
	}
	err = s.registry.update(path, func(p *OpenPort) error {
		if p.Opening {
			return fmt.Errorf("%w: %s", errutils.ErrPortBusy, path)
		}
		if p.SettingsLocked {
			return fmt.Errorf("%w: %s", errutils.ErrPortSettingsLocked, path)
		}
		if err := p.Port.SetMode(mode); err != nil {
			return errutils.Wrapf(err, "failed to update serial port %s", path)
		}
		p.Options = opts
		return nil
	})
	if err != nil {
		return err
	}
	s.registry.Broadcast(path, EventUpdate, path, opts)
	return nil
}

// SetSettingsLocked locks or unlocks the options of the port at path.
func (s *Service) SetSettingsLocked(path string, locked bool) error {
	return s.registry.update(path, func(p *OpenPort) error {
		p.SettingsLocked = locked
		return nil
	})
}

// IsOpen reports whether the port at path is open.
func (s *Service) IsOpen(path string) bool {
	p, ok := s.registry.Get(path)
	if !ok {
		return false
	}
	s.registry.mu.Lock()
	defer s.registry.mu.Unlock()
	return !p.Opening
}

// GetOptions returns the options the port at path is open with.
func (s *Service) GetOptions(path string) (Options, bool) {
	p, ok := s.registry.Get(path)
	if !ok {
		return Options{}, false
	}
	s.registry.mu.Lock()
	defer s.registry.mu.Unlock()
	return p.Options, true
}

// CloseAll closes every open port.
func (s *Service) CloseAll() {
	s.registry.mu.Lock()
	ports := s.registry.ports
	s.registry.ports = make(map[string]*OpenPort)
	s.registry.mu.Unlock()
	s.observe()

	for path, p := range ports {
		if p.Port == nil {
			continue
		}
		if err := p.Port.Close(); err != nil {
			logger.Warn("Unable to close serial port", logger.Fields{"path": path, "error": err.Error()})
		}
	}
}

func (s *Service) port(path string) (Port, error) {
	s.registry.mu.Lock()
	defer s.registry.mu.Unlock()
	p, ok := s.registry.ports[s.registry.key(path)]
	if !ok || p.Opening {
		return nil, fmt.Errorf("%w: %s", errutils.ErrPortNotOpen, path)
	}
	return p.Port, nil
}

// read forwards incoming bytes until the handle fails. A failure on a port that is still
// registered means the device went away, so the entry is dropped and watchers are told.
func (s *Service) read(path string, entry *OpenPort, port Port) {
	buf := make([]byte, readBufferSize)
	for {
		n, err := port.Read(buf)
		if n > 0 {
			s.registry.Broadcast(path, EventData, path, slices.Clone(buf[:n]))
		}
		if err != nil {
			s.lost(path, entry, err)
			return
		}
	}
}

func (s *Service) lost(path string, entry *OpenPort, err error) {
	s.registry.mu.Lock()
	key := s.registry.key(path)
	current, ok := s.registry.ports[key]
	if !ok || current != entry {
		s.registry.mu.Unlock()
		return
	}
	delete(s.registry.ports, key)
	watchers := slices.Clone(entry.Watchers)
	s.registry.mu.Unlock()
	s.observe()

	var portErr *serial.PortError
	if !errors.As(err, &portErr) || portErr.Code() != serial.PortClosed {
		logger.Warn("Serial port lost", logger.Fields{"path": path, "error": err.Error()})
		notify(watchers, EventError, path, err.Error())
	}
	_ = entry.Port.Close()
	notify(watchers, EventClose, path)
}

func (s *Service) observe() {
	s.metrics.SetOpenPorts(s.registry.Len())
}

func notify(watchers []Watcher, event string, args ...interface{}) {
	for _, w := range watchers {
		if err := w.Send(event, args...); err != nil {
			logger.Debug("Unable to notify watcher", logger.Fields{"watcher": w.ID(), "event": event, "error": err.Error()})
		}
	}
}
