package serialport

import (
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.bug.st/serial"

	"github.com/glorpus-work/launchpad/pkg/errutils"
	"github.com/glorpus-work/launchpad/pkg/platform"
)

type fakePort struct {
	incoming chan []byte
	closed   chan struct{}
	once     sync.Once

	mu      sync.Mutex
	written []byte
	modes   []*serial.Mode
}

func newFakePort() *fakePort {
	return &fakePort{incoming: make(chan []byte, 8), closed: make(chan struct{})}
}

func (p *fakePort) Read(buf []byte) (int, error) {
	select {
	case data := <-p.incoming:
		return copy(buf, data), nil
	case <-p.closed:
		return 0, io.EOF
	}
}

func (p *fakePort) Write(data []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.written = append(p.written, data...)
	return len(data), nil
}

func (p *fakePort) Close() error {
	p.once.Do(func() { close(p.closed) })
	return nil
}

func (p *fakePort) SetMode(mode *serial.Mode) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.modes = append(p.modes, mode)
	return nil
}

// unplug makes the next read fail like a removed device.
func (p *fakePort) unplug() {
	p.once.Do(func() { close(p.closed) })
}

func (p *fakePort) isClosed() bool {
	select {
	case <-p.closed:
		return true
	default:
		return false
	}
}

type event struct {
	name string
	args []interface{}
}

type recorder struct {
	id     string
	mu     sync.Mutex
	events []event
}

func (r *recorder) ID() string { return r.id }

func (r *recorder) Send(name string, args ...interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event{name: name, args: args})
	return nil
}

func (r *recorder) received(name string) []event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []event
	for _, e := range r.events {
		if e.name == name {
			out = append(out, e)
		}
	}
	return out
}

type fixture struct {
	service *Service
	ports   map[string]*fakePort
	opens   int
	mu      sync.Mutex
}

func newFixture(t *testing.T, goos string) *fixture {
	t.Helper()
	f := &fixture{ports: make(map[string]*fakePort)}
	f.service = NewService(NewRegistry(goos), func(path string, _ *serial.Mode) (Port, error) {
		f.mu.Lock()
		defer f.mu.Unlock()
		if path == "/dev/missing" {
			return nil, errors.New("no such device")
		}
		f.opens++
		p := newFakePort()
		f.ports[path] = p
		return p, nil
	}, nil)
	t.Cleanup(f.service.CloseAll)
	return f
}

func (f *fixture) port(path string) *fakePort {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ports[path]
}

var defaultOpts = Options{BaudRate: 115200}

func TestOpen_SharesHandle(t *testing.T) {
	f := newFixture(t, platform.OSLinux)
	a, b := &recorder{id: "a"}, &recorder{id: "b"}

	require.NoError(t, f.service.Open("/dev/ttyACM0", defaultOpts, a, false))
	require.NoError(t, f.service.Open("/dev/ttyACM0", Options{BaudRate: 115200, DataBits: 8, Parity: "none"}, b, false))
	require.NoError(t, f.service.Open("/dev/ttyACM0", defaultOpts, a, false))

	assert.Equal(t, 1, f.opens)
	p, ok := f.service.Registry().Get("/dev/ttyACM0")
	require.True(t, ok)
	assert.Len(t, p.Watchers, 2)
	assert.True(t, f.service.IsOpen("/dev/ttyACM0"))
}

func TestOpen_WindowsPathsIgnoreCase(t *testing.T) {
	f := newFixture(t, platform.OSWindows)
	a, b := &recorder{id: "a"}, &recorder{id: "b"}

	require.NoError(t, f.service.Open("COM3", defaultOpts, a, false))
	require.NoError(t, f.service.Open("com3", defaultOpts, b, false))

	assert.Equal(t, 1, f.opens)
	assert.True(t, f.service.IsOpen("Com3"))
	assert.Equal(t, []string{"com3"}, f.service.Registry().Paths())
}

func TestOpen_DifferentOptions(t *testing.T) {
	tests := []struct {
		name      string
		overwrite bool
		locked    bool
		expectErr error
	}{
		{name: "rejected without overwrite", expectErr: errutils.ErrPortOptionsMismatch},
		{name: "rejected when locked", overwrite: true, locked: true, expectErr: errutils.ErrPortSettingsLocked},
		{name: "overwritten", overwrite: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, platform.OSLinux)
			a, b := &recorder{id: "a"}, &recorder{id: "b"}
			require.NoError(t, f.service.Open("/dev/ttyACM0", defaultOpts, a, false))
			require.NoError(t, f.service.SetSettingsLocked("/dev/ttyACM0", tt.locked))

			err := f.service.Open("/dev/ttyACM0", Options{BaudRate: 9600}, b, tt.overwrite)

			opts, ok := f.service.GetOptions("/dev/ttyACM0")
			require.True(t, ok)
			if tt.expectErr != nil {
				assert.ErrorIs(t, err, tt.expectErr)
				assert.Equal(t, defaultOpts, opts)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 9600, opts.BaudRate)
			assert.Eventually(t, func() bool { return len(a.received(EventUpdate)) == 1 }, time.Second, 10*time.Millisecond)
		})
	}
}

func TestOpen_BusyWhileOpening(t *testing.T) {
	f := newFixture(t, platform.OSLinux)
	f.service.Registry().Set("/dev/ttyACM0", &OpenPort{Opening: true, Options: defaultOpts})

	err := f.service.Open("/dev/ttyACM0", defaultOpts, &recorder{id: "a"}, false)

	assert.ErrorIs(t, err, errutils.ErrPortBusy)
	assert.False(t, f.service.IsOpen("/dev/ttyACM0"))
}

func TestOpen_Failures(t *testing.T) {
	f := newFixture(t, platform.OSLinux)

	err := f.service.Open("/dev/missing", defaultOpts, &recorder{id: "a"}, false)
	assert.Error(t, err)
	assert.False(t, f.service.Registry().Has("/dev/missing"))

	err = f.service.Open("/dev/ttyACM0", Options{}, &recorder{id: "a"}, false)
	assert.ErrorIs(t, err, errutils.ErrValidation)
}

func TestData_BroadcastToWatchers(t *testing.T) {
	f := newFixture(t, platform.OSLinux)
	a, b := &recorder{id: "a"}, &recorder{id: "b"}
	require.NoError(t, f.service.Open("/dev/ttyACM0", defaultOpts, a, false))
	require.NoError(t, f.service.Open("/dev/ttyACM0", defaultOpts, b, false))

	f.port("/dev/ttyACM0").incoming <- []byte("hello")

	for _, r := range []*recorder{a, b} {
		assert.Eventually(t, func() bool { return len(r.received(EventData)) == 1 }, time.Second, 10*time.Millisecond)
		e := r.received(EventData)[0]
		assert.Equal(t, []interface{}{"/dev/ttyACM0", []byte("hello")}, e.args)
	}
}

func TestWrite(t *testing.T) {
	f := newFixture(t, platform.OSLinux)
	require.NoError(t, f.service.Open("/dev/ttyACM0", defaultOpts, &recorder{id: "a"}, false))

	require.NoError(t, f.service.Write("/dev/ttyACM0", []byte("ping")))
	assert.Equal(t, []byte("ping"), f.port("/dev/ttyACM0").written)

	assert.ErrorIs(t, f.service.Write("/dev/ttyUSB9", []byte("x")), errutils.ErrPortNotOpen)
}

func TestUpdate(t *testing.T) {
	f := newFixture(t, platform.OSLinux)
	a := &recorder{id: "a"}
	require.NoError(t, f.service.Open("/dev/ttyACM0", defaultOpts, a, false))

	require.NoError(t, f.service.Update("/dev/ttyACM0", Options{BaudRate: 9600, StopBits: 2}))
	opts, _ := f.service.GetOptions("/dev/ttyACM0")
	assert.Equal(t, 9600, opts.BaudRate)
	require.Len(t, f.port("/dev/ttyACM0").modes, 1)
	assert.Equal(t, serial.TwoStopBits, f.port("/dev/ttyACM0").modes[0].StopBits)
	assert.Len(t, a.received(EventUpdate), 1)

	require.NoError(t, f.service.SetSettingsLocked("/dev/ttyACM0", true))
	assert.ErrorIs(t, f.service.Update("/dev/ttyACM0", defaultOpts), errutils.ErrPortSettingsLocked)

	assert.ErrorIs(t, f.service.Update("/dev/ttyUSB9", defaultOpts), errutils.ErrPortNotOpen)
	assert.ErrorIs(t, f.service.SetSettingsLocked("/dev/ttyUSB9", true), errutils.ErrPortNotOpen)
}

func TestClose_LastWatcherClosesHandle(t *testing.T) {
	f := newFixture(t, platform.OSLinux)
	a, b := &recorder{id: "a"}, &recorder{id: "b"}
	require.NoError(t, f.service.Open("/dev/ttyACM0", defaultOpts, a, false))
	require.NoError(t, f.service.Open("/dev/ttyACM0", defaultOpts, b, false))
	port := f.port("/dev/ttyACM0")

	require.NoError(t, f.service.Close("/dev/ttyACM0", a))
	assert.False(t, port.isClosed())
	assert.True(t, f.service.IsOpen("/dev/ttyACM0"))

	require.NoError(t, f.service.Close("/dev/ttyACM0", b))
	assert.True(t, port.isClosed())
	assert.False(t, f.service.IsOpen("/dev/ttyACM0"))
	assert.Empty(t, b.received(EventClose))

	assert.ErrorIs(t, f.service.Close("/dev/ttyACM0", b), errutils.ErrPortNotOpen)
}

func TestRelease(t *testing.T) {
	f := newFixture(t, platform.OSLinux)
	a, b := &recorder{id: "a"}, &recorder{id: "b"}
	require.NoError(t, f.service.Open("/dev/ttyACM0", defaultOpts, a, false))
	require.NoError(t, f.service.Open("/dev/ttyACM1", defaultOpts, a, false))
	require.NoError(t, f.service.Open("/dev/ttyACM1", defaultOpts, b, false))

	f.service.Release(a)

	assert.False(t, f.service.IsOpen("/dev/ttyACM0"))
	assert.True(t, f.service.IsOpen("/dev/ttyACM1"))
	p, _ := f.service.Registry().Get("/dev/ttyACM1")
	assert.False(t, p.HasWatcher(a))
}

func TestOpen_WatcherGoneWhileOpening(t *testing.T) {
	tests := []struct {
		name  string
		leave func(s *Service, w Watcher)
	}{
		{name: "watcher released", leave: func(s *Service, w Watcher) { s.Release(w) }},
		{name: "all ports closed", leave: func(s *Service, _ Watcher) { s.CloseAll() }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			started := make(chan struct{})
			proceed := make(chan struct{})
			port := newFakePort()
			service := NewService(NewRegistry(platform.OSLinux), func(string, *serial.Mode) (Port, error) {
				close(started)
				<-proceed
				return port, nil
			}, nil)
			a := &recorder{id: "a"}

			done := make(chan error, 1)
			go func() { done <- service.Open("/dev/ttyACM0", defaultOpts, a, false) }()
			<-started

			tt.leave(service, a)
			close(proceed)

			select {
			case err := <-done:
				assert.ErrorIs(t, err, errutils.ErrPortNotOpen)
			case <-time.After(time.Second):
				t.Fatal("open did not return")
			}
			assert.True(t, port.isClosed())
			assert.False(t, service.Registry().Has("/dev/ttyACM0"))
			assert.Zero(t, service.Registry().Len())
		})
	}
}

func TestDeviceLost(t *testing.T) {
	f := newFixture(t, platform.OSLinux)
	a := &recorder{id: "a"}
	require.NoError(t, f.service.Open("/dev/ttyACM0", defaultOpts, a, false))

	f.port("/dev/ttyACM0").unplug()

	assert.Eventually(t, func() bool { return len(a.received(EventClose)) == 1 }, time.Second, 10*time.Millisecond)
	assert.False(t, f.service.Registry().Has("/dev/ttyACM0"))
}

func TestRegistry(t *testing.T) {
	r := NewRegistry(platform.OSWindows)
	a := &recorder{id: "a"}
	r.Set("COM1", &OpenPort{Watchers: []Watcher{a}})
	r.Set("COM2", &OpenPort{})

	assert.True(t, r.Has("com1"))
	assert.Equal(t, 2, r.Len())

	r.Broadcast("com1", "custom", 1)
	r.Broadcast("COM9", "custom", 2)
	assert.Equal(t, []event{{name: "custom", args: []interface{}{1}}}, a.received("custom"))

	assert.True(t, r.Delete("Com2"))
	assert.False(t, r.Delete("COM2"))
	r.Clear()
	assert.Zero(t, r.Len())
}

func TestOptions_Mode(t *testing.T) {
	tests := []struct {
		name      string
		opts      Options
		expected  *serial.Mode
		expectErr bool
	}{
		{
			name:     "defaults",
			opts:     Options{BaudRate: 115200},
			expected: &serial.Mode{BaudRate: 115200, DataBits: 8, Parity: serial.NoParity, StopBits: serial.OneStopBit},
		},
		{
			name:     "explicit",
			opts:     Options{BaudRate: 9600, DataBits: 7, Parity: "even", StopBits: 1.5},
			expected: &serial.Mode{BaudRate: 9600, DataBits: 7, Parity: serial.EvenParity, StopBits: serial.OnePointFiveStopBits},
		},
		{name: "no baud rate", opts: Options{}, expectErr: true},
		{name: "bad parity", opts: Options{BaudRate: 9600, Parity: "sometimes"}, expectErr: true},
		{name: "bad data bits", opts: Options{BaudRate: 9600, DataBits: 9}, expectErr: true},
		{name: "bad stop bits", opts: Options{BaudRate: 9600, StopBits: 3}, expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mode, err := tt.opts.Mode()
			if tt.expectErr {
				assert.ErrorIs(t, err, errutils.ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, mode)
		})
	}
}
