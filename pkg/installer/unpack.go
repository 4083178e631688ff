package installer

import (
	"context"
	"os"
	"path"
	"path/filepath"

	"github.com/glorpus-work/launchpad/pkg/errutils"
	"github.com/glorpus-work/launchpad/pkg/fsutil"
	"github.com/glorpus-work/launchpad/pkg/model"
)

// readManifest locates and parses the package.json of the archive at archivePath. It returns the
// manifest's location inside the archive.
func (i *Installer) readManifest(ctx context.Context, archivePath string) (string, *model.PackageJSON, error) {
	name, err := i.archives.FindFile(ctx, archivePath, model.ManifestFile)
	if err != nil {
		return "", nil, errutils.Wrapf(err, "no %s in %s", model.ManifestFile, archivePath)
	}
	data, err := i.archives.ReadFile(ctx, archivePath, name)
	if err != nil {
		return "", nil, err
	}
	pkg, err := model.ParsePackageJSON(data)
	if err != nil {
		return "", nil, errutils.Wrap(errutils.ErrAppManifestInvalid, err.Error())
	}
	return name, pkg, nil
}

// unpack extracts the archive at archivePath into a temporary directory and moves the directory
// holding the manifest to target, replacing whatever was there.
func (i *Installer) unpack(ctx context.Context, archivePath, manifestName, target string) error {
	tmp, err := os.MkdirTemp("", "launchpad-install-*")
	if err != nil {
		return errutils.Wrap(err, "failed to create extraction directory")
	}
	defer func() { _ = os.RemoveAll(tmp) }()

	if err := i.archives.ExtractAll(ctx, archivePath, tmp); err != nil {
		return err
	}
	appRoot := filepath.Join(tmp, filepath.FromSlash(path.Dir(manifestName)))

	if err := os.RemoveAll(target); err != nil {
		return errutils.Wrapf(err, "failed to remove previous install at %s", target)
	}
	if err := fsutil.EnsureFileDir(target); err != nil {
		return err
	}
	if err := fsutil.Move(appRoot, target); err != nil {
		return errutils.Wrapf(err, "failed to move app into %s", target)
	}
	return nil
}
