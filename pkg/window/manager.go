// Package window owns the launcher window and the app windows. It decides where app windows
// open, remembers their geometry, restarts them on request and ends the process once the
// last visible window is gone.
package window

import (
	"context"
	"fmt"
	"net/url"
	"path/filepath"
	"sync"

	"github.com/glorpus-work/launchpad/internal/logger"
	"github.com/glorpus-work/launchpad/pkg/errutils"
	"github.com/glorpus-work/launchpad/pkg/metrics"
	"github.com/glorpus-work/launchpad/pkg/model"
	"github.com/glorpus-work/launchpad/pkg/platform"
	"github.com/glorpus-work/launchpad/pkg/settings"
)

const (
	launcherWidth  = 760
	launcherHeight = 600
	appMinWidth    = 760
	appMinHeight   = 500
)

// Config carries the static facts the manager passes to windows.
type Config struct {
	CoreVersion      string
	CorePath         string
	HomeDir          string
	TmpDir           string
	ResourcesDir     string
	LauncherURL      string
	AppURL           string
	SkipSplashScreen bool
	GOOS             string
	Metrics          *metrics.Metrics
}

// Device is the hardware an app window is opened for.
type Device struct {
	SerialNumber   string  `json:"serialNumber"`
	SerialPortPath *string `json:"serialPortPath,omitempty"`
}

// OpenAppOptions are the options of OpenApp.
type OpenAppOptions struct {
	Device *Device `json:"device,omitempty"`
}

type appWindow struct {
	window     Window
	app        model.LaunchableApp
	maximize   bool
	restarting bool
}

// Manager is the window table. All methods are safe for concurrent use.
type Manager struct {
	factory Factory
	screen  Screen
	quitter Quitter
	apps    AppResolver
	state   StateStore
	cfg     Config

	mu         sync.Mutex
	launcher   Window
	appWindows []*appWindow
	restarting int
	quitOnce   sync.Once
}

// NewManager creates a window manager.
func NewManager(factory Factory, screen Screen, quitter Quitter, apps AppResolver, state StateStore, cfg Config) *Manager {
	if cfg.GOOS == "" {
		cfg.GOOS = platform.Current()
	}
	return &Manager{
		factory: factory,
		screen:  screen,
		quitter: quitter,
		apps:    apps,
		state:   state,
		cfg:     cfg,
	}
}

func (m *Manager) defaultIconPath() string {
	if m.cfg.ResourcesDir == "" {
		return ""
	}
	return filepath.Join(m.cfg.ResourcesDir, platform.DefaultIconName(m.cfg.GOOS))
}

// OpenLauncherWindow shows the launcher, creating it on first use.
func (m *Manager) OpenLauncherWindow() error {
	m.mu.Lock()
	launcher := m.launcher
	m.mu.Unlock()

	if launcher != nil {
		return launcher.Show()
	}

	w, err := m.factory.Create(Options{
		Kind:         KindLauncher,
		Title:        "Launchpad v" + m.cfg.CoreVersion,
		URL:          m.cfg.LauncherURL,
		IconPath:     m.defaultIconPath(),
		Width:        launcherWidth,
		Height:       launcherHeight,
		Center:       true,
		SplashScreen: !m.cfg.SkipSplashScreen,
	}, launcherEvents{m})
	if err != nil {
		return errutils.Wrap(err, "failed to create launcher window")
	}

	m.mu.Lock()
	m.launcher = w
	m.mu.Unlock()
	logger.Debug("Launcher window created", logger.Fields{"window": w.ID()})
	return nil
}

// HideLauncherWindow hides the launcher if it exists.
func (m *Manager) HideLauncherWindow() error {
	m.mu.Lock()
	launcher := m.launcher
	m.mu.Unlock()

	if launcher == nil {
		return nil
	}
	return launcher.Hide()
}

// OpenApp opens a window for the installed app spec.
func (m *Manager) OpenApp(ctx context.Context, spec model.Spec, opts OpenAppOptions) (Window, error) {
	app, err := m.apps.FindLaunchable(ctx, spec)
	if err != nil {
		return nil, err
	}
	return m.openAppWindow(app, opts)
}

func (m *Manager) openAppWindow(app model.LaunchableApp, opts OpenAppOptions) (Window, error) {
	state := m.state.LastWindowState()
	x, y := m.placement(state)

	base := app.Base()
	inst := app.Installation()
	title := base.DisplayName
	if title == "" {
		title = base.Name
	}
	icon := base.IconPath
	if icon == "" {
		icon = m.defaultIconPath()
	}

	rec := &appWindow{app: app, maximize: state.Maximized}
	w, err := m.factory.Create(Options{
		Kind:      KindApp,
		Title:     fmt.Sprintf("%s v%s", title, inst.CurrentVersion),
		URL:       m.appURL(inst.Path),
		IconPath:  icon,
		X:         x,
		Y:         y,
		Width:     state.Width,
		Height:    state.Height,
		MinWidth:  appMinWidth,
		MinHeight: appMinHeight,
		Args:      DeviceArgs(opts.Device),
	}, appEvents{m: m, rec: rec})
	if err != nil {
		return nil, errutils.Wrapf(err, "failed to open window for %s", app.AppSpec())
	}

	m.mu.Lock()
	rec.window = w
	m.appWindows = append(m.appWindows, rec)
	count := len(m.appWindows)
	m.mu.Unlock()

	m.cfg.Metrics.SetAppWindows(count)
	logger.Info("App window opened", logger.Fields{"app": app.AppSpec().String(), "window": w.ID()})
	return w, nil
}

func (m *Manager) appURL(appPath string) string {
	return m.cfg.AppURL + "?appPath=" + url.QueryEscape(appPath)
}

// placement returns the remembered position, or nil when there is none or the window
// would end up off the display matching the remembered bounds.
func (m *Manager) placement(state settings.WindowState) (*int, *int) {
	if state.X == nil || state.Y == nil {
		return nil, nil
	}
	rect := Rect{X: *state.X, Y: *state.Y, Width: state.Width, Height: state.Height}
	if !Visible(rect, m.screen.DisplayMatching(rect)) {
		return nil, nil
	}
	return settings.IntPtr(*state.X), settings.IntPtr(*state.Y)
}

// Visible reports whether r intersects the display bounds.
func Visible(r, display Rect) bool {
	left := max(r.X, display.X)
	top := max(r.Y, display.Y)
	right := min(r.X+r.Width, display.X+display.Width)
	bottom := min(r.Y+r.Height, display.Y+display.Height)
	return left <= right && top <= bottom
}

// DeviceArgs returns the command line arguments that hand a device to an app window.
func DeviceArgs(device *Device) []string {
	if device == nil {
		return nil
	}
	args := []string{"--deviceSerial", device.SerialNumber}
	if device.SerialPortPath != nil {
		args = append(args, "--comPort", *device.SerialPortPath)
	}
	return args
}

// AppWindowCount returns the number of open app windows.
func (m *Manager) AppWindowCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.appWindows)
}

// RestartWindow closes the app window windowID and reopens its app. Restarting the launcher
// reloads it.
func (m *Manager) RestartWindow(windowID string) error {
	m.mu.Lock()
	launcher := m.launcher
	rec := m.findLocked(windowID)
	m.mu.Unlock()

	if rec != nil {
		appEvents{m: m, rec: rec}.Restart(rec.window)
		return nil
	}
	if launcher != nil && launcher.ID() == windowID {
		return launcher.Reload()
	}
	return fmt.Errorf("window %s: %w", windowID, errutils.ErrNoAppWindow)
}

func (m *Manager) findLocked(windowID string) *appWindow {
	for _, rec := range m.appWindows {
		if rec.window != nil && rec.window.ID() == windowID {
			return rec
		}
	}
	return nil
}

func (m *Manager) removeLocked(rec *appWindow) {
	for i, r := range m.appWindows {
		if r == rec {
			m.appWindows = append(m.appWindows[:i], m.appWindows[i+1:]...)
			return
		}
	}
}

// maybeQuit applies the exit rule: no app windows, no visible launcher and no restart in
// flight. The quitter is called at most once.
func (m *Manager) maybeQuit() {
	m.mu.Lock()
	shouldQuit := len(m.appWindows) == 0 &&
		m.restarting == 0 &&
		(m.launcher == nil || !m.launcher.IsVisible())
	m.mu.Unlock()

	if !shouldQuit {
		return
	}
	m.quitOnce.Do(func() {
		logger.Info("Last window closed, quitting")
		m.quitter.Quit()
	})
}

type launcherEvents struct {
	m *Manager
}

func (e launcherEvents) Closing(w Window) bool {
	if e.m.AppWindowCount() == 0 {
		return false
	}
	if err := w.Hide(); err != nil {
		logger.Warn("Unable to hide launcher window", logger.Fields{"error": err.Error()})
	}
	return true
}

func (e launcherEvents) Closed(w Window) {
	e.m.mu.Lock()
	if e.m.launcher == w {
		e.m.launcher = nil
	}
	e.m.mu.Unlock()
	e.m.maybeQuit()
}

func (e launcherEvents) Restart(w Window) {
	if err := w.Reload(); err != nil {
		logger.Warn("Unable to reload launcher window", logger.Fields{"error": err.Error()})
	}
}

func (launcherEvents) Loaded(Window) {}

type appEvents struct {
	m   *Manager
	rec *appWindow
}

func (e appEvents) Closing(w Window) bool {
	b := w.Bounds()
	err := e.m.state.SetLastWindowState(settings.WindowState{
		X:         settings.IntPtr(b.X),
		Y:         settings.IntPtr(b.Y),
		Width:     b.Width,
		Height:    b.Height,
		Maximized: w.IsMaximized(),
	})
	if err != nil {
		logger.Warn("Unable to remember window state", logger.Fields{"error": err.Error()})
	}
	return false
}

func (e appEvents) Closed(_ Window) {
	m := e.m
	m.mu.Lock()
	m.removeLocked(e.rec)
	restarting := e.rec.restarting
	count := len(m.appWindows)
	m.mu.Unlock()
	m.cfg.Metrics.SetAppWindows(count)

	if !restarting {
		m.maybeQuit()
		return
	}

	_, err := m.openAppWindow(e.rec.app, OpenAppOptions{})
	m.mu.Lock()
	m.restarting--
	m.mu.Unlock()
	if err != nil {
		logger.Error("Unable to reopen app window", logger.Fields{"app": e.rec.app.AppSpec().String(), "error": err.Error()})
		m.maybeQuit()
	}
}

// Restart marks the window as restarting and closes it; Closed reopens the app.
func (e appEvents) Restart(w Window) {
	m := e.m
	m.mu.Lock()
	if e.rec.restarting {
		m.mu.Unlock()
		return
	}
	e.rec.restarting = true
	m.restarting++
	m.mu.Unlock()

	if err := w.Close(); err != nil {
		logger.Warn("Unable to close window for restart", logger.Fields{"window": w.ID(), "error": err.Error()})
		m.mu.Lock()
		e.rec.restarting = false
		m.restarting--
		m.mu.Unlock()
	}
}

func (e appEvents) Loaded(w Window) {
	if !e.rec.maximize {
		return
	}
	if err := w.Maximize(); err != nil {
		logger.Warn("Unable to maximize window", logger.Fields{"window": w.ID(), "error": err.Error()})
	}
}
