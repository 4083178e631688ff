package installer

import (
	"context"
	"os"

	"github.com/glorpus-work/launchpad/internal/logger"
	"github.com/glorpus-work/launchpad/pkg/errutils"
	"github.com/glorpus-work/launchpad/pkg/fsutil"
	"github.com/glorpus-work/launchpad/pkg/model"
)

// InstallLocalApp installs the app archive at filePath as a local app named after its
// manifest. Failures are returned as data: an unreadable archive yields ErrorReadingFile
// and an existing local app with the same name yields ErrorAppExists.
func (i *Installer) InstallLocalApp(ctx context.Context, filePath string) model.InstallResult {
	result := i.installLocalApp(ctx, filePath)
	var err error
	if !result.Succeeded() {
		err = errutils.ErrValidation
	}
	i.opts.Metrics.ObserveInstall(model.LocalSource, err)
	return result
}

func (i *Installer) installLocalApp(ctx context.Context, filePath string) model.InstallResult {
	manifestName, pkg, err := i.readManifest(ctx, filePath)
	if err != nil {
		logger.Warn("Unable to read app archive", logger.Fields{"file": filePath, "error": err.Error()})
		return model.FailureReadingFile(err.Error())
	}

	spec := model.Spec{Name: pkg.Name, Source: model.LocalSource}
	unlock := i.locks.lock(spec)
	defer unlock()

	target := i.catalog.Layout().LocalApp(pkg.Name)
	if fsutil.Exists(target) {
		logger.Info("Local app already exists", logger.Fields{"app": pkg.Name, "path": target})
		return model.AppExists(pkg.Name, target)
	}

	err = i.unpack(ctx, filePath, manifestName, target)
	i.catalog.Invalidate()
	if err != nil {
		return model.FailureReadingFile(err.Error())
	}

	apps, _, err := i.catalog.GetLocalApps()
	if err != nil {
		return model.FailureReadingFile(err.Error())
	}
	for _, app := range apps {
		if app.Name == pkg.Name {
			logger.Success("Local app installed", logger.Fields{"app": app.Name, "version": app.CurrentVersion})
			return model.SuccessfulInstall(app)
		}
	}
	return model.FailureReadingFile(errutils.ErrAppManifestInvalid.Error())
}

// RemoveLocalApp deletes the local app name.
func (i *Installer) RemoveLocalApp(name string) error {
	spec := model.Spec{Name: name, Source: model.LocalSource}
	unlock := i.locks.lock(spec)
	defer unlock()

	err := i.removeLocalApp(spec)
	i.opts.Metrics.ObserveRemoval(model.LocalSource, err)
	return err
}

func (i *Installer) removeLocalApp(spec model.Spec) error {
	if err := model.ValidateName(spec.Name); err != nil {
		return err
	}
	target := i.catalog.Layout().LocalApp(spec.Name)
	if !fsutil.Exists(target) {
		return errutils.ErrAppNotInstalledWithSpec(spec.Name, spec.Source)
	}
	if err := os.RemoveAll(target); err != nil {
		return errutils.Wrapf(err, "failed to remove %s", target)
	}
	i.catalog.Invalidate()
	logger.Info("Local app removed", logger.Fields{"app": spec.Name})
	return nil
}
