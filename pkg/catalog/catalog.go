// Package catalog reconciles the apps on disk with the documents published by the
// registered sources. It owns the cache kept under the apps directory and memoizes the
// reconciled lists until an install, a removal or a refresh invalidates them.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/glorpus-work/launchpad/internal/logger"
	"github.com/glorpus-work/launchpad/pkg/download"
	"github.com/glorpus-work/launchpad/pkg/errutils"
	"github.com/glorpus-work/launchpad/pkg/fsutil"
	lphttp "github.com/glorpus-work/launchpad/pkg/http"
	"github.com/glorpus-work/launchpad/pkg/installed"
	"github.com/glorpus-work/launchpad/pkg/model"
	"github.com/glorpus-work/launchpad/pkg/platform"
)

// SourceLister returns the registered sources as name to URL.
type SourceLister interface {
	Get() map[string]string
}

// Options configures a Catalog.
type Options struct {
	// CoreVersion is checked against the engine range apps declare.
	CoreVersion string
	// GOOS selects the shortcut icon flavour. Defaults to the running platform.
	GOOS string
	// Downloader fetches the app info documents of a source during a refresh. Defaults to a
	// download manager on the catalog's client.
	Downloader download.Manager
	// RefreshConcurrency bounds the parallel app info downloads per source.
	RefreshConcurrency int
}

// Catalog is the app catalog.
type Catalog struct {
	layout  Layout
	client  lphttp.Client
	sources SourceLister
	opts    Options

	mu           sync.Mutex
	local        *localApps
	downloadable *model.DownloadableApps
}

type localApps struct {
	apps   []*model.LocalApp
	errors []model.AppWithError
}

// New creates a catalog rooted at layout.Root.
func New(layout Layout, client lphttp.Client, sources SourceLister, opts Options) *Catalog {
	if opts.GOOS == "" {
		opts.GOOS = platform.Current()
	}
	if opts.Downloader == nil {
		opts.Downloader = download.NewManager(client)
	}
	return &Catalog{
		layout:  layout,
		client:  client,
		sources: sources,
		opts:    opts,
	}
}

// Layout returns the disk layout of the catalog.
func (c *Catalog) Layout() Layout {
	return c.layout
}

// Invalidate drops the memoized lists. The next read rescans the disk.
func (c *Catalog) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.local = nil
	c.downloadable = nil
	logger.Debug("Catalog invalidated")
}

// FindLaunchable returns the installed app identified by spec.
func (c *Catalog) FindLaunchable(ctx context.Context, spec model.Spec) (model.LaunchableApp, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	if spec.Source == model.LocalSource {
		apps, _, err := c.GetLocalApps()
		if err != nil {
			return nil, err
		}
		for _, app := range apps {
			if app.Name == spec.Name {
				return app, nil
			}
		}
		return nil, errutils.ErrAppNotInstalledWithSpec(spec.Name, spec.Source)
	}

	result, err := c.GetDownloadableApps(ctx)
	if err != nil {
		return nil, err
	}
	for _, app := range result.Apps {
		if app.AppSpec() != spec {
			continue
		}
		if launchable, ok := model.AsLaunchable(app); ok {
			return launchable, nil
		}
		break
	}
	return nil, errutils.ErrAppNotInstalledWithSpec(spec.Name, spec.Source)
}

// AppInfo returns the cached app info of spec, fetching the source documents when they
// are not cached yet. The URL the info was published at is returned with it.
func (c *Catalog) AppInfo(ctx context.Context, spec model.Spec) (*model.AppInfo, string, error) {
	if err := spec.Validate(); err != nil {
		return nil, "", err
	}
	sourceURL, ok := c.sources.Get()[spec.Source]
	if !ok {
		return nil, "", errutils.ErrSourceNotFoundWithName(spec.Source)
	}
	manifest, err := c.sourceManifest(ctx, spec.Source, sourceURL)
	if err != nil {
		return nil, "", err
	}
	for _, appURL := range manifest.Apps {
		info, err := c.appInfo(ctx, spec.Source, appURL)
		if err != nil {
			continue
		}
		if info.Name == spec.Name {
			return info, appURL, nil
		}
	}
	return nil, "", fmt.Errorf("%s: %w", spec, errutils.ErrAppNotFound)
}

// InstalledIndex loads the index of installed downloadable apps.
func (c *Catalog) InstalledIndex() (*installed.Index, error) {
	return installed.Load(c.layout.InstalledIndex())
}

// WriteSourceManifest stores manifest as the cached source.json of source.
func (c *Catalog) WriteSourceManifest(source string, manifest *model.SourceManifest) error {
	if err := model.ValidateName(source); err != nil {
		return err
	}
	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return errutils.Wrap(err, "failed to encode source manifest")
	}
	if err := writeCacheFile(c.layout.SourceManifest(source), data); err != nil {
		return err
	}
	c.Invalidate()
	return nil
}

// PruneSource deletes everything cached or installed for source.
func (c *Catalog) PruneSource(source string) error {
	if err := model.ValidateName(source); err != nil {
		return err
	}
	if err := os.RemoveAll(c.layout.SourceDir(source)); err != nil {
		return errutils.Wrapf(err, "failed to remove cache of source %s", source)
	}
	idx, err := c.InstalledIndex()
	if err != nil {
		return err
	}
	if idx.RemoveSource(source) > 0 {
		if err := idx.Save(); err != nil {
			return err
		}
	}
	c.Invalidate()
	return nil
}

// FetchSourceManifest downloads and validates the source.json published at sourceURL.
func (c *Catalog) FetchSourceManifest(ctx context.Context, sourceURL string) (*model.SourceManifest, error) {
	var manifest model.SourceManifest
	if err := c.client.GetJSON(ctx, sourceURL, &manifest); err != nil {
		if errors.Is(err, errutils.ErrInvalidResponse) {
			return nil, fmt.Errorf("%w: %w", errutils.ErrSourceManifestInvalid, err)
		}
		return nil, err
	}
	if err := manifest.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", errutils.ErrSourceManifestInvalid, err)
	}
	return &manifest, nil
}

func parseSourceManifest(data []byte) (*model.SourceManifest, error) {
	var manifest model.SourceManifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("%w: %v", errutils.ErrSourceManifestInvalid, err)
	}
	if err := manifest.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", errutils.ErrSourceManifestInvalid, err)
	}
	return &manifest, nil
}

func parseAppInfo(data []byte) (*model.AppInfo, error) {
	var info model.AppInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, fmt.Errorf("%w: %v", errutils.ErrAppManifestInvalid, err)
	}
	if err := info.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", errutils.ErrAppManifestInvalid, err)
	}
	return &info, nil
}

func writeCacheFile(path string, data []byte) error {
	return fsutil.WriteFileAtomic(path, data, fsutil.FileModeDefault)
}
