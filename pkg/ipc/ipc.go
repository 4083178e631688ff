// Package ipc binds the launcher services to the channels display processes call.
package ipc

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/glorpus-work/launchpad/internal/logger"
	"github.com/glorpus-work/launchpad/pkg/channel"
	"github.com/glorpus-work/launchpad/pkg/display"
	"github.com/glorpus-work/launchpad/pkg/errutils"
	"github.com/glorpus-work/launchpad/pkg/installer"
	"github.com/glorpus-work/launchpad/pkg/model"
	"github.com/glorpus-work/launchpad/pkg/serialport"
	"github.com/glorpus-work/launchpad/pkg/window"
)

// EventDownloadProgress carries installer.Progress during downloads.
const EventDownloadProgress = "download-progress"

// Services are the handlers' backends. Channels of nil services are not registered.
type Services struct {
	Sources   Sources
	Apps      Apps
	Installer Installer
	Windows   Windows
	Displays  Displays
	Screens   Screens
	Ports     Ports
}

type none struct{}

// InstallDownloadableRequest is the payload of apps:install-downloadable-app.
type InstallDownloadableRequest struct {
	AppInfo model.DownloadableAppInfo `json:"appInfo"`
	Version string                    `json:"version,omitempty"`
}

// OpenAppRequest is the payload of app:open.
type OpenAppRequest struct {
	App     model.Spec            `json:"app"`
	Options window.OpenAppOptions `json:"options"`
}

// OpenAppResponse is the result of app:open.
type OpenAppResponse struct {
	WindowID string `json:"windowId"`
}

// CloseResponse tells a display process whether it may close its window.
type CloseResponse struct {
	Close bool `json:"close"`
}

// PortRequest addresses a serial port.
type PortRequest struct {
	Path      string             `json:"path"`
	Options   serialport.Options `json:"options,omitempty"`
	Overwrite bool               `json:"overwrite,omitempty"`
	Data      []byte             `json:"data,omitempty"`
	Locked    bool               `json:"locked,omitempty"`
}

// Register adds the channels of s to r.
func Register(r *channel.Router, s Services) {
	if s.Sources != nil {
		registerSources(r, s.Sources)
	}
	if s.Apps != nil {
		registerApps(r, s.Apps)
	}
	if s.Installer != nil {
		registerInstaller(r, s.Installer)
	}
	if s.Windows != nil {
		registerWindows(r, s.Windows)
	}
	if s.Displays != nil {
		registerDisplays(r, s.Displays, s.Screens)
	}
	if s.Ports != nil {
		registerPorts(r, s.Ports)
	}
}

// Broadcaster pushes events to every display process.
type Broadcaster interface {
	Broadcast(event string, payload interface{})
}

// ProgressHooks returns installer hooks that broadcast download progress.
func ProgressHooks(b Broadcaster) installer.Hooks {
	return installer.Hooks{OnProgress: func(p installer.Progress) {
		b.Broadcast(EventDownloadProgress, p)
	}}
}

// ReleasePortsOnDisconnect detaches display processes from their serial ports when they
// disconnect.
func ReleasePortsOnDisconnect(hub *channel.Hub, ports Ports) {
	hub.OnDisconnect(func(p *channel.Peer) {
		ports.Release(p)
	})
}

func registerSources(r *channel.Router, sources Sources) {
	channel.HandleTyped(r, "sources:get", func(context.Context, *channel.Peer, none) (map[string]string, error) {
		return sources.Get(), nil
	})
	channel.HandleTyped(r, "sources:add", func(ctx context.Context, _ *channel.Peer, url string) (string, error) {
		return sources.Add(ctx, url)
	})
	channel.HandleTyped(r, "sources:remove", func(_ context.Context, _ *channel.Peer, name string) (*none, error) {
		return nil, sources.Remove(name)
	})
}

func registerApps(r *channel.Router, apps Apps) {
	channel.HandleTyped(r, "apps:get-local-apps", func(context.Context, *channel.Peer, none) ([]*model.LocalApp, error) {
		local, broken, err := apps.GetLocalApps()
		if err != nil {
			return nil, err
		}
		for _, b := range broken {
			logger.Warn("Skipping broken local app", logger.Fields{"path": b.Path, "reason": b.Reason})
		}
		if local == nil {
			local = []*model.LocalApp{}
		}
		return local, nil
	})
	channel.HandleTyped(r, "apps:get-downloadable-apps", func(ctx context.Context, _ *channel.Peer, _ none) (model.DownloadableApps, error) {
		return apps.GetDownloadableApps(ctx)
	})
	channel.HandleTyped(r, "apps:download-all-apps-json-files", func(ctx context.Context, _ *channel.Peer, _ none) (*none, error) {
		return nil, apps.DownloadAllAppsJSONFiles(ctx)
	})
	channel.HandleTyped(r, "apps:download-release-notes", func(ctx context.Context, _ *channel.Peer, raw json.RawMessage) (*string, error) {
		spec, err := decodeSpec(raw)
		if err != nil {
			return nil, err
		}
		return optional(apps.DownloadReleaseNotes(ctx, spec)), nil
	})
	channel.HandleTyped(r, "apps:download-app-icon", func(ctx context.Context, _ *channel.Peer, raw json.RawMessage) (*string, error) {
		spec, err := decodeSpec(raw)
		if err != nil {
			return nil, err
		}
		return optional(apps.DownloadAppIcon(ctx, spec)), nil
	})
}

func registerInstaller(r *channel.Router, inst Installer) {
	channel.HandleTyped(r, "apps:install-downloadable-app", func(ctx context.Context, _ *channel.Peer, in InstallDownloadableRequest) (model.DownloadableApp, error) {
		return inst.InstallDownloadableApp(ctx, in.AppInfo, in.Version)
	})
	channel.HandleTyped(r, "apps:install-local-app", func(ctx context.Context, _ *channel.Peer, filePath string) (model.InstallResult, error) {
		return inst.InstallLocalApp(ctx, filePath), nil
	})
	channel.HandleTyped(r, "apps:remove-local-app", func(_ context.Context, _ *channel.Peer, name string) (*none, error) {
		return nil, inst.RemoveLocalApp(name)
	})
	channel.HandleTyped(r, "apps:remove-downloadable-app", func(_ context.Context, _ *channel.Peer, spec model.Spec) (*none, error) {
		return nil, inst.RemoveDownloadableApp(spec)
	})
}

func registerWindows(r *channel.Router, windows Windows) {
	channel.HandleTyped(r, "app:open", func(ctx context.Context, _ *channel.Peer, in OpenAppRequest) (OpenAppResponse, error) {
		w, err := windows.OpenApp(ctx, in.App, in.Options)
		if err != nil {
			return OpenAppResponse{}, err
		}
		return OpenAppResponse{WindowID: w.ID()}, nil
	})
	channel.HandleTyped(r, "app:details", func(_ context.Context, peer *channel.Peer, _ none) (window.AppDetails, error) {
		return windows.GetAppDetails(peer.ID())
	})
	channel.HandleTyped(r, "launcher:open", func(context.Context, *channel.Peer, none) (*none, error) {
		return nil, windows.OpenLauncherWindow()
	})
}

func registerDisplays(r *channel.Router, displays Displays, screens Screens) {
	lookup := func(peer *channel.Peer) (Display, error) {
		d, ok := displays.Display(peer.ID())
		if !ok {
			return nil, fmt.Errorf("%w: %s", errutils.ErrNoAppWindow, peer.ID())
		}
		return d, nil
	}

	channel.HandleTyped(r, "window:state", func(_ context.Context, peer *channel.Peer, s display.State) (*none, error) {
		d, err := lookup(peer)
		if err != nil {
			return nil, err
		}
		d.ReportState(s)
		return nil, nil
	})
	channel.HandleTyped(r, "window:close", func(_ context.Context, peer *channel.Peer, _ none) (CloseResponse, error) {
		d, err := lookup(peer)
		if err != nil {
			return CloseResponse{}, err
		}
		return CloseResponse{Close: d.RequestClose()}, nil
	})
	channel.HandleTyped(r, "window:loaded", func(_ context.Context, peer *channel.Peer, _ none) (*none, error) {
		d, err := lookup(peer)
		if err != nil {
			return nil, err
		}
		d.NotifyLoaded()
		return nil, nil
	})
	channel.HandleTyped(r, "window:restart", func(_ context.Context, peer *channel.Peer, _ none) (*none, error) {
		d, err := lookup(peer)
		if err != nil {
			return nil, err
		}
		d.RequestRestart()
		return nil, nil
	})
	if screens != nil {
		channel.HandleTyped(r, "window:displays", func(_ context.Context, _ *channel.Peer, displays []window.Rect) (*none, error) {
			screens.SetDisplays(displays)
			return nil, nil
		})
	}
}

func registerPorts(r *channel.Router, ports Ports) {
	channel.HandleTyped(r, "serialport:open", func(_ context.Context, peer *channel.Peer, in PortRequest) (*none, error) {
		return nil, ports.Open(in.Path, in.Options, peer, in.Overwrite)
	})
	channel.HandleTyped(r, "serialport:close", func(_ context.Context, peer *channel.Peer, in PortRequest) (*none, error) {
		return nil, ports.Close(in.Path, peer)
	})
	channel.HandleTyped(r, "serialport:write", func(_ context.Context, _ *channel.Peer, in PortRequest) (*none, error) {
		return nil, ports.Write(in.Path, in.Data)
	})
	channel.HandleTyped(r, "serialport:update", func(_ context.Context, _ *channel.Peer, in PortRequest) (*none, error) {
		return nil, ports.Update(in.Path, in.Options)
	})
	channel.HandleTyped(r, "serialport:set-settings-locked", func(_ context.Context, _ *channel.Peer, in PortRequest) (*none, error) {
		return nil, ports.SetSettingsLocked(in.Path, in.Locked)
	})
	channel.HandleTyped(r, "serialport:is-open", func(_ context.Context, _ *channel.Peer, in PortRequest) (bool, error) {
		return ports.IsOpen(in.Path), nil
	})
	channel.HandleTyped(r, "serialport:get-options", func(_ context.Context, _ *channel.Peer, in PortRequest) (*serialport.Options, error) {
		opts, ok := ports.GetOptions(in.Path)
		if !ok {
			return nil, nil
		}
		return &opts, nil
	})
	channel.HandleTyped(r, "serialport:list", func(context.Context, *channel.Peer, none) ([]string, error) {
		return serialport.ListPorts()
	})
}

func decodeSpec(raw json.RawMessage) (model.Spec, error) {
	app, err := model.DecodeApp(raw)
	if err != nil {
		return model.Spec{}, fmt.Errorf("invalid app: %v: %w", err, errutils.ErrValidation)
	}
	return app.AppSpec(), nil
}

func optional(value string, ok bool) *string {
	if !ok {
		return nil
	}
	return &value
}
