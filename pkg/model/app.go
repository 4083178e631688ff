// Package model provides the data structures shared by the catalog, the installer and the
// channel layer: app identities, the closed set of app variants, the manifests read from
// sources and app directories, and the tagged result of a local install.
package model

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/glorpus-work/launchpad/pkg/errutils"
)

const (
	// LocalSource is the reserved source of apps installed from a file on disk.
	LocalSource = "local"
	// OfficialSource is the reserved source configured by the launcher itself.
	OfficialSource = "official"
)

// Spec identifies an app within the catalog. (Name, Source) pairs are unique.
type Spec struct {
	Name   string `json:"name"`
	Source string `json:"source"`
}

func (s Spec) String() string {
	return s.Source + "/" + s.Name
}

// Validate checks that both parts of s can be used as a single path element.
func (s Spec) Validate() error {
	if err := ValidateName(s.Source); err != nil {
		return fmt.Errorf("source: %w", err)
	}
	return ValidateName(s.Name)
}

// rootFiles live directly in the apps directory next to the source directories.
var rootFiles = map[string]struct{}{
	"apps.json":      {},
	"installed.json": {},
}

// ValidateName checks an app or source name. Names become directory and file names below
// the apps directory, so they must be a single path element.
func ValidateName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: empty name", errutils.ErrValidation)
	case name == "." || name == "..":
		return fmt.Errorf("%w: invalid name %q", errutils.ErrValidation, name)
	case strings.ContainsAny(name, "/\\\x00"):
		return fmt.Errorf("%w: name %q contains a path separator", errutils.ErrValidation, name)
	}
	if _, ok := rootFiles[strings.ToLower(name)]; ok {
		return fmt.Errorf("%w: name %q is reserved", errutils.ErrValidation, name)
	}
	return nil
}

// AppKind discriminates the app variants on the wire.
type AppKind string

const (
	AppKindLocal       AppKind = "local"
	AppKindInstalled   AppKind = "installed"
	AppKindUninstalled AppKind = "uninstalled"
	AppKindWithdrawn   AppKind = "withdrawn"
)

// BaseApp holds the attributes every variant carries.
type BaseApp struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	Description string `json:"description"`
	IconPath    string `json:"iconPath,omitempty"`
}

// InstalledInfo holds the attributes of an app present on disk.
type InstalledInfo struct {
	CurrentVersion   string `json:"currentVersion"`
	Path             string `json:"path"`
	ShortcutIconPath string `json:"shortcutIconPath"`
	EngineVersion    string `json:"engineVersion,omitempty"`
	RepositoryURL    string `json:"repositoryUrl,omitempty"`
	IsSupported      bool   `json:"isSupported"`
}

// DownloadableInfo holds the registry attributes of an app offered by a source.
// URL points at the app info document and is empty for withdrawn apps.
type DownloadableInfo struct {
	Source   string `json:"source"`
	URL      string `json:"url"`
	Homepage string `json:"homepage,omitempty"`
}

// App is the closed set of app variants: *LocalApp, *InstalledDownloadableApp,
// *UninstalledDownloadableApp and *WithdrawnApp.
type App interface {
	AppSpec() Spec
	Kind() AppKind
	Base() BaseApp
	isApp()
}

// LaunchableApp is an app with files on disk that a window can be opened for.
type LaunchableApp interface {
	App
	Installation() InstalledInfo
}

// DownloadableApp is an app that belongs to a remote source.
type DownloadableApp interface {
	App
	Downloadable() DownloadableInfo
}

// LocalApp was installed from a file and has no remote metadata.
type LocalApp struct {
	BaseApp
	InstalledInfo
}

// InstalledDownloadableApp is listed by its source and installed on disk.
type InstalledDownloadableApp struct {
	BaseApp
	InstalledInfo
	DownloadableInfo
	LatestVersion string `json:"latestVersion"`
	ReleaseNote   string `json:"releaseNote,omitempty"`
}

// UninstalledDownloadableApp is listed by its source but not on disk.
type UninstalledDownloadableApp struct {
	BaseApp
	DownloadableInfo
	LatestVersion string `json:"latestVersion"`
	ReleaseNote   string `json:"releaseNote,omitempty"`
}

// WithdrawnApp is installed on disk but no longer listed by its source.
type WithdrawnApp struct {
	BaseApp
	InstalledInfo
	DownloadableInfo
}

func (*LocalApp) isApp()                   {}
func (*InstalledDownloadableApp) isApp()   {}
func (*UninstalledDownloadableApp) isApp() {}
func (*WithdrawnApp) isApp()               {}

func (a *LocalApp) AppSpec() Spec { return Spec{Name: a.Name, Source: LocalSource} }
func (a *InstalledDownloadableApp) AppSpec() Spec {
	return Spec{Name: a.Name, Source: a.Source}
}
func (a *UninstalledDownloadableApp) AppSpec() Spec {
	return Spec{Name: a.Name, Source: a.Source}
}
func (a *WithdrawnApp) AppSpec() Spec { return Spec{Name: a.Name, Source: a.Source} }

func (*LocalApp) Kind() AppKind                   { return AppKindLocal }
func (*InstalledDownloadableApp) Kind() AppKind   { return AppKindInstalled }
func (*UninstalledDownloadableApp) Kind() AppKind { return AppKindUninstalled }
func (*WithdrawnApp) Kind() AppKind               { return AppKindWithdrawn }

func (a *LocalApp) Base() BaseApp                   { return a.BaseApp }
func (a *InstalledDownloadableApp) Base() BaseApp   { return a.BaseApp }
func (a *UninstalledDownloadableApp) Base() BaseApp { return a.BaseApp }
func (a *WithdrawnApp) Base() BaseApp               { return a.BaseApp }

func (a *LocalApp) Installation() InstalledInfo                 { return a.InstalledInfo }
func (a *InstalledDownloadableApp) Installation() InstalledInfo { return a.InstalledInfo }
func (a *WithdrawnApp) Installation() InstalledInfo             { return a.InstalledInfo }

func (a *InstalledDownloadableApp) Downloadable() DownloadableInfo {
	return a.DownloadableInfo
}
func (a *UninstalledDownloadableApp) Downloadable() DownloadableInfo {
	return a.DownloadableInfo
}
func (a *WithdrawnApp) Downloadable() DownloadableInfo { return a.DownloadableInfo }

// IsDownloadable reports whether a belongs to a remote source.
func IsDownloadable(a App) bool {
	return a.AppSpec().Source != LocalSource
}

// IsInstalled reports whether a has a current version on disk.
func IsInstalled(a App) bool {
	_, ok := CurrentVersion(a)
	return ok
}

// IsWithdrawn reports whether a is downloadable but carries no latest version.
func IsWithdrawn(a App) bool {
	_, hasLatest := LatestVersion(a)
	return IsDownloadable(a) && !hasLatest
}

// UpdateAvailable reports whether an installed, listed app differs from the latest version.
// Versions are compared as plain strings; any difference counts.
func UpdateAvailable(a App) bool {
	app, ok := a.(*InstalledDownloadableApp)
	return ok && app.CurrentVersion != app.LatestVersion
}

// CurrentVersion returns the installed version of a, if any.
func CurrentVersion(a App) (string, bool) {
	l, ok := a.(LaunchableApp)
	if !ok {
		return "", false
	}
	return l.Installation().CurrentVersion, true
}

// LatestVersion returns the version the source currently offers, if any.
func LatestVersion(a App) (string, bool) {
	switch app := a.(type) {
	case *InstalledDownloadableApp:
		return app.LatestVersion, true
	case *UninstalledDownloadableApp:
		return app.LatestVersion, true
	default:
		return "", false
	}
}

// AsLaunchable returns a as a LaunchableApp when it is installed.
func AsLaunchable(a App) (LaunchableApp, bool) {
	l, ok := a.(LaunchableApp)
	return l, ok
}

// InfoOf returns the install request payload describing a downloadable app.
func InfoOf(a DownloadableApp) DownloadableAppInfo {
	base := a.Base()
	d := a.Downloadable()
	return DownloadableAppInfo{
		Name:        base.Name,
		Source:      d.Source,
		DisplayName: base.DisplayName,
		Description: base.Description,
		URL:         d.URL,
		Homepage:    d.Homepage,
	}
}

// DownloadableAppInfo is what the installer needs to fetch an app from its source.
type DownloadableAppInfo struct {
	Name        string `json:"name"`
	Source      string `json:"source"`
	DisplayName string `json:"displayName"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Homepage    string `json:"homepage,omitempty"`
}

// AppSpec returns the identity of the described app.
func (i DownloadableAppInfo) AppSpec() Spec {
	return Spec{Name: i.Name, Source: i.Source}
}

// AppWithError reports an app that could not be loaded.
type AppWithError struct {
	Name   string `json:"name"`
	Source string `json:"source"`
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

// DownloadableApps is the reconciled view of every registered source.
type DownloadableApps struct {
	Apps           []DownloadableApp `json:"apps"`
	AppsWithErrors []AppWithError    `json:"appsWithErrors"`
}

// UnmarshalJSON decodes the apps by their kind discriminator.
func (d *DownloadableApps) UnmarshalJSON(data []byte) error {
	var raw struct {
		Apps           []json.RawMessage `json:"apps"`
		AppsWithErrors []AppWithError    `json:"appsWithErrors"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	d.AppsWithErrors = raw.AppsWithErrors
	d.Apps = make([]DownloadableApp, 0, len(raw.Apps))
	for _, r := range raw.Apps {
		app, err := DecodeApp(r)
		if err != nil {
			return err
		}
		da, ok := app.(DownloadableApp)
		if !ok {
			return fmt.Errorf("app %s is not downloadable", app.AppSpec())
		}
		d.Apps = append(d.Apps, da)
	}
	return nil
}
