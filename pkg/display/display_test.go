package display

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glorpus-work/launchpad/pkg/errutils"
	"github.com/glorpus-work/launchpad/pkg/window"
)

// TestHelperProcess stands in for a display process.
func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}
	if os.Getenv("HELPER_EXIT_NOW") == "1" {
		os.Exit(0)
	}
	time.Sleep(time.Minute)
	os.Exit(0)
}

type recordingPusher struct {
	mu     sync.Mutex
	events []string
	err    error
}

func (p *recordingPusher) SendTo(windowID, event string, _ interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

func (p *recordingPusher) sent() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string{}, p.events...)
}

type recordingEvents struct {
	prevent bool
	closed  chan window.Window
	mu      sync.Mutex
	calls   []string
}

func newRecordingEvents() *recordingEvents {
	return &recordingEvents{closed: make(chan window.Window, 1)}
}

func (e *recordingEvents) record(call string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.calls = append(e.calls, call)
}

func (e *recordingEvents) Closing(window.Window) bool {
	e.record("closing")
	return e.prevent
}

func (e *recordingEvents) Closed(w window.Window) {
	e.record("closed")
	e.closed <- w
}

func (e *recordingEvents) Restart(window.Window) { e.record("restart") }
func (e *recordingEvents) Loaded(window.Window)  { e.record("loaded") }

func helperFactory(t *testing.T, pusher Pusher, env ...string) *Factory {
	t.Helper()
	f := NewFactory(Config{
		Command:    os.Args[0],
		Args:       []string{"-test.run=TestHelperProcess", "--"},
		Env:        append([]string{"GO_WANT_HELPER_PROCESS=1"}, env...),
		ChannelURL: "ws://127.0.0.1:1/ws",
		CloseGrace: 100 * time.Millisecond,
	}, pusher)
	t.Cleanup(f.KillAll)
	return f
}

func waitClosed(t *testing.T, events *recordingEvents) window.Window {
	t.Helper()
	select {
	case w := <-events.closed:
		return w
	case <-time.After(10 * time.Second):
		t.Fatal("window was not closed")
		return nil
	}
}

func TestCreate_PushesCommands(t *testing.T) {
	pusher := &recordingPusher{}
	f := helperFactory(t, pusher)
	events := newRecordingEvents()

	w, err := f.Create(window.Options{Kind: window.KindApp, URL: "app://index.html", Width: 800, Height: 600}, events)
	require.NoError(t, err)

	assert.True(t, w.IsVisible())
	assert.Equal(t, window.Rect{Width: 800, Height: 600}, w.Bounds())
	require.NoError(t, w.Hide())
	assert.False(t, w.IsVisible())
	require.NoError(t, w.Show())
	require.NoError(t, w.Maximize())
	require.NoError(t, w.Reload())
	assert.True(t, w.IsMaximized())
	assert.Equal(t, []string{EventHide, EventShow, EventMaximize, EventReload}, pusher.sent())

	found, ok := f.Lookup(w.ID())
	require.True(t, ok)
	found.ReportState(State{Visible: false, Bounds: window.Rect{X: 10, Y: 20, Width: 300, Height: 200}})
	assert.False(t, w.IsVisible())
	assert.Equal(t, window.Rect{X: 10, Y: 20, Width: 300, Height: 200}, w.Bounds())
	assert.False(t, w.IsMaximized())

	found.NotifyLoaded()
	found.RequestRestart()
	assert.Equal(t, []string{"loaded", "restart"}, events.calls)
}

func TestClose_KillsAfterGrace(t *testing.T) {
	pusher := &recordingPusher{err: errors.New("not connected")}
	f := helperFactory(t, pusher)
	events := newRecordingEvents()

	w, err := f.Create(window.Options{Kind: window.KindApp, Width: 800, Height: 600}, events)
	require.NoError(t, err)
	require.Equal(t, 1, f.Len())

	require.NoError(t, w.Close())

	assert.Equal(t, w, waitClosed(t, events))
	assert.Contains(t, pusher.sent(), EventClose)
	assert.False(t, w.IsVisible())
	assert.Zero(t, f.Len())
}

func TestClose_Prevented(t *testing.T) {
	pusher := &recordingPusher{}
	f := helperFactory(t, pusher)
	events := newRecordingEvents()
	events.prevent = true

	w, err := f.Create(window.Options{Kind: window.KindLauncher, Width: 760, Height: 600}, events)
	require.NoError(t, err)

	require.NoError(t, w.Close())
	assert.NotContains(t, pusher.sent(), EventClose)

	select {
	case <-w.(*Window).Exited():
		t.Fatal("display process ended although the close was prevented")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestProcessExit_ClosesWindow(t *testing.T) {
	f := helperFactory(t, &recordingPusher{}, "HELPER_EXIT_NOW=1")
	events := newRecordingEvents()

	w, err := f.Create(window.Options{Kind: window.KindApp}, events)
	require.NoError(t, err)

	assert.Equal(t, w, waitClosed(t, events))
	_, ok := f.Lookup(w.ID())
	assert.False(t, ok)
}

func TestCreate_NoCommand(t *testing.T) {
	f := NewFactory(Config{}, &recordingPusher{})
	_, err := f.Create(window.Options{}, newRecordingEvents())
	assert.ErrorIs(t, err, errutils.ErrWindowFactory)
}

func TestArgs(t *testing.T) {
	f := NewFactory(Config{Args: []string{"--dev"}, ChannelURL: "ws://127.0.0.1:9/ws"}, nil)
	x, y := 10, 20

	args := f.args("w1", window.Options{
		Kind:         window.KindApp,
		Title:        "Blinky v1.0.0",
		URL:          "app://index.html",
		IconPath:     "/icons/blinky.png",
		X:            &x,
		Y:            &y,
		Width:        1024,
		Height:       800,
		MinWidth:     760,
		MinHeight:    500,
		SplashScreen: true,
		Args:         []string{"--deviceSerial", "000683"},
	})

	joined := strings.Join(args, " ")
	assert.True(t, strings.HasPrefix(joined, "--dev --window-id w1 --channel-url ws://127.0.0.1:9/ws --url app://index.html"))
	for _, part := range []string{"--x 10 --y 20", "--min-width 760", "--min-height 500", "--icon /icons/blinky.png", "--splash-screen", "-- --deviceSerial 000683"} {
		assert.Contains(t, joined, part, fmt.Sprintf("missing %q", part))
	}
	assert.NotContains(t, joined, "--center")
}

func TestScreen_DisplayMatching(t *testing.T) {
	s := NewScreen()
	left := window.Rect{X: 0, Y: 0, Width: 1920, Height: 1080}
	right := window.Rect{X: 1920, Y: 0, Width: 2560, Height: 1440}
	s.SetDisplays([]window.Rect{left, right})

	tests := []struct {
		name     string
		r        window.Rect
		expected window.Rect
	}{
		{name: "inside left", r: window.Rect{X: 100, Y: 100, Width: 800, Height: 600}, expected: left},
		{name: "mostly right", r: window.Rect{X: 1800, Y: 100, Width: 800, Height: 600}, expected: right},
		{name: "off screen", r: window.Rect{X: -5000, Y: -5000, Width: 10, Height: 10}, expected: left},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, s.DisplayMatching(tt.r))
		})
	}

	s.SetDisplays(nil)
	assert.Equal(t, []window.Rect{DefaultDisplay}, s.Displays())
}
