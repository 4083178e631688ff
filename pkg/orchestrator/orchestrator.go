// Package orchestrator assembles the launcher: settings, sources, catalog, installer,
// windows, serial ports and the channel server display processes talk to.
package orchestrator

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/glorpus-work/launchpad/internal/logger"
	"github.com/glorpus-work/launchpad/pkg/cache"
	"github.com/glorpus-work/launchpad/pkg/catalog"
	"github.com/glorpus-work/launchpad/pkg/channel"
	"github.com/glorpus-work/launchpad/pkg/config"
	"github.com/glorpus-work/launchpad/pkg/display"
	"github.com/glorpus-work/launchpad/pkg/download"
	"github.com/glorpus-work/launchpad/pkg/errutils"
	lphttp "github.com/glorpus-work/launchpad/pkg/http"
	"github.com/glorpus-work/launchpad/pkg/installer"
	"github.com/glorpus-work/launchpad/pkg/ipc"
	"github.com/glorpus-work/launchpad/pkg/metrics"
	"github.com/glorpus-work/launchpad/pkg/platform"
	"github.com/glorpus-work/launchpad/pkg/serialport"
	"github.com/glorpus-work/launchpad/pkg/settings"
	"github.com/glorpus-work/launchpad/pkg/source"
	"github.com/glorpus-work/launchpad/pkg/window"
)

const shutdownTimeout = 5 * time.Second

// Orchestrator owns every launcher component.
type Orchestrator struct {
	Config    *config.Config
	Metrics   *metrics.Metrics
	Settings  *settings.Store
	Sources   *source.Manager
	Catalog   *catalog.Catalog
	Installer *installer.Installer
	Cache     *cache.Manager
	Windows   *window.Manager
	Ports     *serialport.Service
	Screen    *display.Screen
	Router    *channel.Router
	Hub       *channel.Hub

	opts     Options
	displays *display.Factory

	quit     chan struct{}
	quitOnce sync.Once
}

// New builds the components described by opts.Config. Nothing is started.
func New(opts Options) (*Orchestrator, error) {
	if opts.Config == nil {
		return nil, errutils.ErrConfigValidation
	}
	if opts.GOOS == "" {
		opts.GOOS = platform.Current()
	}
	cfg := opts.Config
	s := cfg.Settings

	appsDir, err := filepath.Abs(s.AppsDir)
	if err != nil {
		return nil, errutils.Wrap(errutils.ErrInvalidPath, err.Error())
	}
	settingsPath, err := filepath.Abs(cfg.SettingsPath())
	if err != nil {
		return nil, errutils.Wrap(errutils.ErrInvalidPath, err.Error())
	}
	downloadDir, err := filepath.Abs(cfg.DownloadDir())
	if err != nil {
		return nil, errutils.Wrap(errutils.ErrInvalidPath, err.Error())
	}

	store, err := settings.Open(settingsPath)
	if err != nil {
		return nil, err
	}

	o := &Orchestrator{
		Config:   cfg,
		Metrics:  metrics.New(),
		Settings: store,
		Screen:   display.NewScreen(),
		Router:   channel.NewRouter(),
		opts:     opts,
		quit:     make(chan struct{}),
	}
	o.Hub = channel.NewHub(o.Router, o.Metrics)

	client := lphttp.NewClient(s.HTTPTimeout, lphttp.DefaultUserAgent)
	registry := source.NewRegistry(store, s.OfficialSourceURL)
	downloader := download.NewManager(client)
	o.Catalog = catalog.New(catalog.Layout{Root: appsDir}, client, registry, catalog.Options{
		CoreVersion: opts.CoreVersion,
		GOOS:        opts.GOOS,
		Downloader:  downloader,
	})
	o.Sources = source.NewManager(registry, o.Catalog)
	o.Installer = installer.New(o.Catalog, downloader, installer.Options{
		DownloadDir: downloadDir,
		Hooks:       ipc.ProgressHooks(o.Hub),
		Metrics:     o.Metrics,
	})
	o.Cache = cache.NewManager(downloadDir, o.Catalog, registry)
	o.Ports = serialport.NewService(serialport.NewRegistry(opts.GOOS), opts.Opener, o.Metrics)

	factory := opts.Factory
	if factory == nil {
		o.displays = display.NewFactory(displayConfig(s.DisplayCommand), o.Hub)
		factory = o.displays
	}
	o.Windows = window.NewManager(factory, o.Screen, o, o.Catalog, store, o.windowConfig())

	services := ipc.Services{
		Sources:   o.Sources,
		Apps:      o.Catalog,
		Installer: o.Installer,
		Windows:   o.Windows,
		Screens:   o.Screen,
		Ports:     o.Ports,
	}
	if o.displays != nil {
		services.Displays = ipc.FactoryDisplays(o.displays)
	}
	ipc.Register(o.Router, services)
	ipc.ReleasePortsOnDisconnect(o.Hub, o.Ports)
	return o, nil
}

func displayConfig(command []string) display.Config {
	var cfg display.Config
	if len(command) > 0 {
		cfg.Command = command[0]
		cfg.Args = command[1:]
	}
	return cfg
}

func (o *Orchestrator) windowConfig() window.Config {
	s := o.Config.Settings
	corePath, _ := os.Executable()
	homeDir, _ := os.UserHomeDir()
	return window.Config{
		CoreVersion:      o.opts.CoreVersion,
		CorePath:         corePath,
		HomeDir:          homeDir,
		TmpDir:           os.TempDir(),
		ResourcesDir:     s.ResourcesDir,
		LauncherURL:      fileURL(filepath.Join(s.ResourcesDir, "launcher.html")),
		AppURL:           fileURL(filepath.Join(s.ResourcesDir, "app.html")),
		SkipSplashScreen: s.SkipSplashScreen,
		GOOS:             o.opts.GOOS,
		Metrics:          o.Metrics,
	}
}

func fileURL(path string) string {
	return "file://" + filepath.ToSlash(path)
}

// Quit asks Run to return. It is safe to call more than once.
func (o *Orchestrator) Quit() {
	o.quitOnce.Do(func() {
		emit(o.opts.Hooks, Event{Phase: "stopping", Msg: "last window closed"})
		close(o.quit)
	})
}

// Refresh re-downloads the manifests of every source.
func (o *Orchestrator) Refresh(ctx context.Context) error {
	emit(o.opts.Hooks, Event{Phase: "refreshing"})
	err := o.Catalog.DownloadAllAppsJSONFiles(ctx)
	o.Metrics.ObserveRefresh(err)
	return err
}

// Run serves the channel server, refreshes the catalog unless disabled and opens the
// launcher window. It returns when ctx is cancelled or the last window is gone.
func (o *Orchestrator) Run(ctx context.Context) error {
	s := o.Config.Settings
	emit(o.opts.Hooks, Event{Phase: "starting"})

	server, err := channel.Listen(s.ListenAddr, channel.NewHandler(o.Hub, o.Metrics))
	if err != nil {
		emit(o.opts.Hooks, Event{Phase: "error", Msg: err.Error()})
		return err
	}
	if o.displays != nil {
		o.displays.SetChannelURL(server.URL())
	}
	serveErr := make(chan error, 1)
	go func() { serveErr <- server.Serve() }()
	emit(o.opts.Hooks, Event{Phase: "listening", Msg: server.URL()})
	logger.Info("Channel server started", logger.Fields{"url": server.URL()})

	defer o.shutdown(server)

	if !s.SkipUpdateApps {
		if err := o.Refresh(ctx); err != nil {
			logger.Warn("Unable to refresh app sources", logger.Fields{"error": err.Error()})
		}
	}

	if o.headless() {
		logger.Warn("No display command configured, running without windows")
	} else if err := o.Windows.OpenLauncherWindow(); err != nil {
		emit(o.opts.Hooks, Event{Phase: "error", Msg: err.Error()})
		return err
	}
	emit(o.opts.Hooks, Event{Phase: "ready"})

	select {
	case <-ctx.Done():
		return nil
	case <-o.quit:
		return nil
	case err := <-serveErr:
		if err != nil {
			return err
		}
		return fmt.Errorf("%w: channel server stopped", errutils.ErrChannelClosed)
	}
}

func (o *Orchestrator) headless() bool {
	return o.opts.Factory == nil && len(o.Config.Settings.DisplayCommand) == 0
}

func (o *Orchestrator) shutdown(server *channel.Server) {
	o.Ports.CloseAll()
	o.Hub.Close()
	if o.displays != nil {
		o.displays.KillAll()
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Warn("Channel server did not stop cleanly", logger.Fields{"error": err.Error()})
	}
	logger.Debug("Orchestrator stopped")
}
