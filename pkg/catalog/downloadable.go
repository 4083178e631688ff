package catalog

import (
	"context"
	"os"
	"sort"

	"github.com/glorpus-work/launchpad/internal/logger"
	"github.com/glorpus-work/launchpad/pkg/errutils"
	"github.com/glorpus-work/launchpad/pkg/fsutil"
	"github.com/glorpus-work/launchpad/pkg/installed"
	"github.com/glorpus-work/launchpad/pkg/model"
)

// GetDownloadableApps reconciles the cached documents of every registered source with the
// installed downloadable apps:
//
//   - listed and not installed: UninstalledDownloadableApp
//   - listed and installed: InstalledDownloadableApp
//   - installed and no longer listed: WithdrawnApp with an empty URL
//
// Missing icons or release notes leave the optional fields empty. Documents or installed
// folders that cannot be read are reported as AppWithError. The result is sorted by source
// and name and memoized until Invalidate is called.
func (c *Catalog) GetDownloadableApps(ctx context.Context) (model.DownloadableApps, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.downloadable == nil {
		result, err := c.reconcile(ctx)
		if err != nil {
			return model.DownloadableApps{}, err
		}
		c.downloadable = result
	}
	return model.DownloadableApps{
		Apps:           append([]model.DownloadableApp(nil), c.downloadable.Apps...),
		AppsWithErrors: append([]model.AppWithError(nil), c.downloadable.AppsWithErrors...),
	}, nil
}

func (c *Catalog) reconcile(ctx context.Context) (*model.DownloadableApps, error) {
	idx, err := c.InstalledIndex()
	if err != nil {
		return nil, err
	}

	sources := c.sources.Get()
	names := make([]string, 0, len(sources))
	for name := range sources {
		names = append(names, name)
	}
	sort.Strings(names)

	result := &model.DownloadableApps{
		Apps:           []model.DownloadableApp{},
		AppsWithErrors: []model.AppWithError{},
	}
	for _, source := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		apps, appErrs, err := c.reconcileSource(ctx, source, sources[source], idx)
		if err != nil {
			return nil, err
		}
		result.Apps = append(result.Apps, apps...)
		result.AppsWithErrors = append(result.AppsWithErrors, appErrs...)
	}

	sort.SliceStable(result.Apps, func(i, j int) bool {
		return lessSpec(result.Apps[i].AppSpec(), result.Apps[j].AppSpec())
	})
	sort.SliceStable(result.AppsWithErrors, func(i, j int) bool {
		a, b := result.AppsWithErrors[i], result.AppsWithErrors[j]
		return lessSpec(model.Spec{Name: a.Name, Source: a.Source}, model.Spec{Name: b.Name, Source: b.Source})
	})

	logger.Debug("Reconciled downloadable apps", logger.Fields{
		"apps":   len(result.Apps),
		"errors": len(result.AppsWithErrors),
	})
	return result, nil
}

type listedApp struct {
	info *model.AppInfo
	url  string
}

func (c *Catalog) reconcileSource(ctx context.Context, source, sourceURL string, idx *installed.Index) ([]model.DownloadableApp, []model.AppWithError, error) {
	var apps []model.DownloadableApp
	var appErrs []model.AppWithError

	manifest, err := c.sourceManifest(ctx, source, sourceURL)
	if err != nil {
		logger.Warn("Unable to read source manifest", logger.Fields{"source": source, "error": err.Error()})
		return nil, []model.AppWithError{{
			Source: source,
			Path:   c.layout.SourceManifest(source),
			Reason: err.Error(),
		}}, nil
	}

	listed := make(map[string]listedApp, len(manifest.Apps))
	// Entries whose document failed are still listed by the source. Their installed apps
	// are matched by the recorded app URL or by the document name and never reported as
	// withdrawn.
	unreadable := make(map[string]struct{})
	for _, appURL := range manifest.Apps {
		info, err := c.appInfo(ctx, source, appURL)
		if err != nil {
			name := appInfoStem(appURL)
			unreadable[name] = struct{}{}
			unreadable[appURL] = struct{}{}
			appErrs = append(appErrs, model.AppWithError{
				Name:   name,
				Source: source,
				Path:   c.layout.AppInfo(source, appURL),
				Reason: err.Error(),
			})
			continue
		}
		listed[info.Name] = listedApp{info: info, url: appURL}
	}

	installedNames, err := c.installedNames(source, idx)
	if err != nil {
		return nil, nil, err
	}

	for name := range installedNames {
		spec := model.Spec{Name: name, Source: source}
		appDir := c.layout.InstalledApp(spec)
		pkg, err := readPackageJSON(appDir)
		if err != nil {
			appErrs = append(appErrs, model.AppWithError{
				Name:   name,
				Source: source,
				Path:   appDir,
				Reason: err.Error(),
			})
			delete(listed, name)
			continue
		}
		base, inst := c.installedAttributes(name, appDir, pkg)

		entry, ok := listed[name]
		if !ok {
			if isUnreadable(unreadable, name, idx.Find(spec)) {
				continue
			}
			if base.IconPath == "" {
				base.IconPath = c.cachedIcon(spec)
			}
			apps = append(apps, &model.WithdrawnApp{
				BaseApp:          base,
				InstalledInfo:    inst,
				DownloadableInfo: model.DownloadableInfo{Source: source},
			})
			continue
		}
		delete(listed, name)

		base.DisplayName = firstNonEmpty(entry.info.DisplayName, base.DisplayName)
		base.Description = firstNonEmpty(entry.info.Description, base.Description)
		if base.IconPath == "" {
			base.IconPath = c.cachedIcon(spec)
		}
		apps = append(apps, &model.InstalledDownloadableApp{
			BaseApp:       base,
			InstalledInfo: inst,
			DownloadableInfo: model.DownloadableInfo{
				Source:   source,
				URL:      entry.url,
				Homepage: entry.info.Homepage,
			},
			LatestVersion: entry.info.LatestVersion,
			ReleaseNote:   c.cachedReleaseNotes(spec),
		})
	}

	for name, entry := range listed {
		spec := model.Spec{Name: name, Source: source}
		apps = append(apps, &model.UninstalledDownloadableApp{
			BaseApp: model.BaseApp{
				Name:        name,
				DisplayName: firstNonEmpty(entry.info.DisplayName, name),
				Description: entry.info.Description,
				IconPath:    c.cachedIcon(spec),
			},
			DownloadableInfo: model.DownloadableInfo{
				Source:   source,
				URL:      entry.url,
				Homepage: entry.info.Homepage,
			},
			LatestVersion: entry.info.LatestVersion,
			ReleaseNote:   c.cachedReleaseNotes(spec),
		})
	}
	return apps, appErrs, nil
}

func isUnreadable(unreadable map[string]struct{}, name string, r *installed.Record) bool {
	if _, ok := unreadable[name]; ok {
		return true
	}
	if r == nil || r.AppURL == "" {
		return false
	}
	_, ok := unreadable[r.AppURL]
	return ok
}

// installedNames merges the installed index with the folders found on disk, so apps
// installed before the index existed are still listed.
func (c *Catalog) installedNames(source string, idx *installed.Index) (map[string]struct{}, error) {
	names := make(map[string]struct{})
	for _, r := range idx.BySource(source) {
		names[r.Name] = struct{}{}
	}
	dirs, err := fsutil.ListDirs(c.layout.InstalledAppsDir(source))
	if err != nil {
		return nil, errutils.Wrapf(err, "failed to read installed apps of source %s", source)
	}
	for _, d := range dirs {
		names[d] = struct{}{}
	}
	return names, nil
}

// sourceManifest reads the cached source.json of source and fetches it when it is missing.
func (c *Catalog) sourceManifest(ctx context.Context, source, sourceURL string) (*model.SourceManifest, error) {
	path := c.layout.SourceManifest(source)
	data, err := os.ReadFile(path)
	if err == nil {
		return parseSourceManifest(data)
	}
	if !os.IsNotExist(err) {
		return nil, err
	}

	data, err = c.client.GetBytes(ctx, sourceURL)
	if err != nil {
		return nil, err
	}
	manifest, err := parseSourceManifest(data)
	if err != nil {
		return nil, err
	}
	if err := writeCacheFile(path, data); err != nil {
		return nil, err
	}
	return manifest, nil
}

// appInfo reads a cached app info document and fetches it when it is missing.
func (c *Catalog) appInfo(ctx context.Context, source, appURL string) (*model.AppInfo, error) {
	path := c.layout.AppInfo(source, appURL)
	data, err := os.ReadFile(path)
	if err == nil {
		return parseAppInfo(data)
	}
	if !os.IsNotExist(err) {
		return nil, err
	}

	data, err = c.client.GetBytes(ctx, appURL)
	if err != nil {
		return nil, err
	}
	info, err := parseAppInfo(data)
	if err != nil {
		return nil, err
	}
	if err := writeCacheFile(path, data); err != nil {
		return nil, err
	}
	return info, nil
}

func (c *Catalog) cachedIcon(spec model.Spec) string {
	for _, ext := range []string{".png", ".svg"} {
		if p := ifExists(c.layout.Icon(spec, ext)); p != "" {
			return p
		}
	}
	return ""
}

func (c *Catalog) cachedReleaseNotes(spec model.Spec) string {
	data, err := os.ReadFile(c.layout.ReleaseNotes(spec))
	if err != nil {
		return ""
	}
	return string(data)
}

func lessSpec(a, b model.Spec) bool {
	if a.Source != b.Source {
		return a.Source < b.Source
	}
	return a.Name < b.Name
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
