package installer

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/glorpus-work/launchpad/internal/logger"
	"github.com/glorpus-work/launchpad/pkg/download"
	"github.com/glorpus-work/launchpad/pkg/errutils"
	"github.com/glorpus-work/launchpad/pkg/fsutil"
	"github.com/glorpus-work/launchpad/pkg/installed"
	"github.com/glorpus-work/launchpad/pkg/model"
)

// InstallDownloadableApp downloads version of the app described by info and installs it,
// replacing a previous install of the same app. An empty version installs the latest one.
// Progress is reported through Hooks.OnProgress; the reconciled app is returned.
func (i *Installer) InstallDownloadableApp(ctx context.Context, info model.DownloadableAppInfo, version string) (model.DownloadableApp, error) {
	spec := info.AppSpec()
	if spec.Source == model.LocalSource {
		return nil, fmt.Errorf("%s: %w", spec, errutils.ErrValidation)
	}

	unlock := i.locks.lock(spec)
	defer unlock()

	app, err := i.installDownloadableApp(ctx, spec, version)
	i.opts.Metrics.ObserveInstall(spec.Source, err)
	if err != nil {
		logger.Error("Install failed", logger.Fields{"app": spec.String(), "error": err.Error()})
		return nil, err
	}
	return app, nil
}

func (i *Installer) installDownloadableApp(ctx context.Context, spec model.Spec, version string) (model.DownloadableApp, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	appInfo, appURL, err := i.catalog.AppInfo(ctx, spec)
	if err != nil {
		return nil, err
	}
	if version == "" {
		version = appInfo.LatestVersion
	}
	pkgInfo, ok := appInfo.Version(version)
	if !ok {
		return nil, fmt.Errorf("%s@%s: %w", spec, version, errutils.ErrVersionNotFound)
	}
	tarballURL, err := url.Parse(pkgInfo.TarballURL)
	if err != nil || tarballURL.Scheme == "" {
		return nil, fmt.Errorf("invalid tarball URL %q for %s@%s: %w", pkgInfo.TarballURL, spec, version, errutils.ErrValidation)
	}

	logger.Info("Downloading app", logger.Fields{"app": spec.String(), "version": version})
	emit(i.opts.Hooks, Progress{Name: spec.Name, Source: spec.Source})
	var downloaded int64
	item := download.Item{
		ID:       spec.String(),
		URL:      tarballURL,
		Checksum: pkgInfo.Shasum,
		Filename: fmt.Sprintf("%s-%s-%s.tgz", spec.Source, spec.Name, version),
	}
	archivePath, err := i.downloads.Fetch(ctx, item, download.Options{
		Dir: i.opts.DownloadDir,
		OnProgress: func(_ download.Item, written, total int64) {
			downloaded = written
			if total > 0 {
				emit(i.opts.Hooks, Progress{
					Name:             spec.Name,
					Source:           spec.Source,
					ProgressFraction: float64(written) / float64(total),
				})
			}
		},
	})
	if err != nil {
		return nil, err
	}
	i.opts.Metrics.AddDownloadedBytes(downloaded)

	manifestName, pkg, err := i.readManifest(ctx, archivePath)
	if err != nil {
		return nil, err
	}
	if pkg.Name != spec.Name {
		return nil, fmt.Errorf("package %s does not match app %s: %w", pkg.Name, spec, errutils.ErrAppManifestInvalid)
	}

	err = i.unpack(ctx, archivePath, manifestName, i.catalog.Layout().InstalledApp(spec))
	if err == nil {
		err = i.record(&installed.Record{
			Name:        spec.Name,
			Source:      spec.Source,
			Version:     pkg.Version,
			AppURL:      appURL,
			TarballURL:  pkgInfo.TarballURL,
			Shasum:      pkgInfo.Shasum,
			InstalledAt: time.Now(),
		})
	}
	i.catalog.Invalidate()
	if err != nil {
		return nil, err
	}
	emit(i.opts.Hooks, Progress{Name: spec.Name, Source: spec.Source, ProgressFraction: 1})

	app, err := i.findDownloadable(ctx, spec)
	if err != nil {
		return nil, err
	}
	logger.Success("App installed", logger.Fields{"app": spec.String(), "version": pkg.Version})
	return app, nil
}

// RemoveDownloadableApp deletes an installed downloadable app and its index entry.
func (i *Installer) RemoveDownloadableApp(spec model.Spec) error {
	if spec.Source == model.LocalSource {
		return i.RemoveLocalApp(spec.Name)
	}

	unlock := i.locks.lock(spec)
	defer unlock()

	err := i.removeDownloadableApp(spec)
	i.opts.Metrics.ObserveRemoval(spec.Source, err)
	return err
}

func (i *Installer) removeDownloadableApp(spec model.Spec) error {
	if err := spec.Validate(); err != nil {
		return err
	}

	i.indexMu.Lock()
	defer i.indexMu.Unlock()

	idx, err := i.catalog.InstalledIndex()
	if err != nil {
		return err
	}
	target := i.catalog.Layout().InstalledApp(spec)
	onDisk := fsutil.Exists(target)
	if !onDisk && idx.Find(spec) == nil {
		return errutils.ErrAppNotInstalledWithSpec(spec.Name, spec.Source)
	}

	if onDisk {
		if err := os.RemoveAll(target); err != nil {
			return errutils.Wrapf(err, "failed to remove %s", target)
		}
	}
	if idx.Remove(spec) {
		if err := idx.Save(); err != nil {
			return err
		}
	}
	i.catalog.Invalidate()
	logger.Info("App removed", logger.Fields{"app": spec.String()})
	return nil
}

func (i *Installer) record(r *installed.Record) error {
	i.indexMu.Lock()
	defer i.indexMu.Unlock()

	idx, err := i.catalog.InstalledIndex()
	if err != nil {
		return err
	}
	idx.Put(r)
	return idx.Save()
}

func (i *Installer) findDownloadable(ctx context.Context, spec model.Spec) (model.DownloadableApp, error) {
	result, err := i.catalog.GetDownloadableApps(ctx)
	if err != nil {
		return nil, err
	}
	for _, app := range result.Apps {
		if app.AppSpec() == spec {
			return app, nil
		}
	}
	return nil, errutils.ErrAppNotInstalledWithSpec(spec.Name, spec.Source)
}
