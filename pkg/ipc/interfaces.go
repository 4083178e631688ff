package ipc

import (
	"context"

	"github.com/glorpus-work/launchpad/pkg/display"
	"github.com/glorpus-work/launchpad/pkg/model"
	"github.com/glorpus-work/launchpad/pkg/serialport"
	"github.com/glorpus-work/launchpad/pkg/window"
)

//go:generate mockgen -destination=mocks/ipc.go -package=mocks . Sources,Apps,Installer,Windows

// Sources is the source registry surface.
type Sources interface {
	Get() map[string]string
	Add(ctx context.Context, url string) (string, error)
	Remove(name string) error
}

// Apps is the catalog surface.
type Apps interface {
	GetLocalApps() ([]*model.LocalApp, []model.AppWithError, error)
	GetDownloadableApps(ctx context.Context) (model.DownloadableApps, error)
	DownloadAllAppsJSONFiles(ctx context.Context) error
	DownloadReleaseNotes(ctx context.Context, spec model.Spec) (string, bool)
	DownloadAppIcon(ctx context.Context, spec model.Spec) (string, bool)
}

// Installer is the install engine surface.
type Installer interface {
	InstallDownloadableApp(ctx context.Context, info model.DownloadableAppInfo, version string) (model.DownloadableApp, error)
	InstallLocalApp(ctx context.Context, filePath string) model.InstallResult
	RemoveLocalApp(name string) error
	RemoveDownloadableApp(spec model.Spec) error
}

// Windows is the window manager surface.
type Windows interface {
	OpenLauncherWindow() error
	OpenApp(ctx context.Context, spec model.Spec, opts window.OpenAppOptions) (window.Window, error)
	GetAppDetails(windowID string) (window.AppDetails, error)
}

// Display is a window as seen from its display process.
type Display interface {
	ReportState(s display.State)
	RequestClose() bool
	NotifyLoaded()
	RequestRestart()
}

// Displays finds the window a display process hosts.
type Displays interface {
	Display(windowID string) (Display, bool)
}

// Screens receives the display layout.
type Screens interface {
	SetDisplays(displays []window.Rect)
}

// Ports is the serial port service surface.
type Ports interface {
	Open(path string, opts serialport.Options, w serialport.Watcher, overwrite bool) error
	Close(path string, w serialport.Watcher) error
	Write(path string, data []byte) error
	Update(path string, opts serialport.Options) error
	SetSettingsLocked(path string, locked bool) error
	IsOpen(path string) bool
	GetOptions(path string) (serialport.Options, bool)
	Release(w serialport.Watcher)
}

// FactoryDisplays looks displays up in a display factory.
func FactoryDisplays(f *display.Factory) Displays {
	return factoryDisplays{f}
}

type factoryDisplays struct {
	f *display.Factory
}

func (d factoryDisplays) Display(windowID string) (Display, bool) {
	w, ok := d.f.Lookup(windowID)
	if !ok {
		return nil, false
	}
	return w, true
}
