package catalog

import (
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"path"
	"path/filepath"
	"strings"

	"github.com/glorpus-work/launchpad/pkg/model"
)

const (
	sourceManifestFile = "source.json"
	appsJSONFile       = "apps.json"
	installedIndexFile = "installed.json"
	installedAppsDir   = "apps"
	releaseNotesSuffix = "-Changelog.md"
	resourcesDir       = "resources"
	iconFile           = "icon.png"
	appInfoDigestLen   = 8
)

// Layout resolves the paths of everything the catalog keeps under the apps directory.
type Layout struct {
	Root string
}

// LocalDir is the directory of the apps installed from files.
func (l Layout) LocalDir() string {
	return filepath.Join(l.Root, model.LocalSource)
}

// LocalApp is the directory of a single local app.
func (l Layout) LocalApp(name string) string {
	return filepath.Join(l.LocalDir(), name)
}

// SourceDir holds the cached documents and the installed apps of source.
func (l Layout) SourceDir(source string) string {
	return filepath.Join(l.Root, source)
}

// SourceManifest is the cached source.json of source.
func (l Layout) SourceManifest(source string) string {
	return filepath.Join(l.SourceDir(source), sourceManifestFile)
}

// AppInfo is the cached app info document downloaded from appURL.
func (l Layout) AppInfo(source, appURL string) string {
	return filepath.Join(l.SourceDir(source), appInfoFileName(appURL))
}

// Icon is the cached icon of spec with the given extension (".png" or ".svg").
func (l Layout) Icon(spec model.Spec, ext string) string {
	return filepath.Join(l.SourceDir(spec.Source), spec.Name+ext)
}

// ReleaseNotes is the cached changelog of spec.
func (l Layout) ReleaseNotes(spec model.Spec) string {
	return filepath.Join(l.SourceDir(spec.Source), spec.Name+releaseNotesSuffix)
}

// InstalledAppsDir holds the installed apps of source.
func (l Layout) InstalledAppsDir(source string) string {
	return filepath.Join(l.SourceDir(source), installedAppsDir)
}

// InstalledApp is the directory of an installed downloadable app.
func (l Layout) InstalledApp(spec model.Spec) string {
	return filepath.Join(l.InstalledAppsDir(spec.Source), spec.Name)
}

// AppsJSON is the aggregated manifest written by a refresh.
func (l Layout) AppsJSON() string {
	return filepath.Join(l.Root, appsJSONFile)
}

// InstalledIndex is the index of installed downloadable apps.
func (l Layout) InstalledIndex() string {
	return filepath.Join(l.Root, installedIndexFile)
}

// appInfoFileName keys the cache file of appURL by a digest of the whole URL, so documents
// sharing a last path element do not overwrite each other. The readable stem is kept in front.
func appInfoFileName(appURL string) string {
	sum := sha256.Sum256([]byte(appURL))
	return appInfoStem(appURL) + "-" + hex.EncodeToString(sum[:appInfoDigestLen]) + ".json"
}

// appInfoStem is the last path element of appURL without the .json extension. It names an
// app whose info document cannot be read.
func appInfoStem(appURL string) string {
	p := appURL
	if u, err := url.Parse(appURL); err == nil && u.Path != "" {
		p = u.Path
	}
	name := strings.TrimSuffix(path.Base(p), ".json")
	if name == "." || name == "/" || name == "" {
		name = "app"
	}
	return name
}
