package catalog

import (
	"os"
	"path/filepath"

	"github.com/glorpus-work/launchpad/internal/logger"
	"github.com/glorpus-work/launchpad/pkg/errutils"
	"github.com/glorpus-work/launchpad/pkg/fsutil"
	"github.com/glorpus-work/launchpad/pkg/model"
	"github.com/glorpus-work/launchpad/pkg/platform"
)

// GetLocalApps lists the apps installed from files. Folders without a readable manifest
// are reported in the second list instead of failing the call.
func (c *Catalog) GetLocalApps() ([]*model.LocalApp, []model.AppWithError, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.local == nil {
		local, err := c.scanLocal()
		if err != nil {
			return nil, nil, err
		}
		c.local = local
	}
	return append([]*model.LocalApp(nil), c.local.apps...),
		append([]model.AppWithError(nil), c.local.errors...), nil
}

func (c *Catalog) scanLocal() (*localApps, error) {
	dir := c.layout.LocalDir()
	names, err := fsutil.ListDirs(dir)
	if err != nil {
		return nil, errutils.Wrapf(err, "failed to read local apps directory %s", dir)
	}

	result := &localApps{apps: []*model.LocalApp{}, errors: []model.AppWithError{}}
	for _, name := range names {
		appDir := c.layout.LocalApp(name)
		pkg, err := readPackageJSON(appDir)
		if err != nil {
			logger.Warn("Skipping local app", logger.Fields{"path": appDir, "error": err.Error()})
			result.errors = append(result.errors, model.AppWithError{
				Name:   name,
				Source: model.LocalSource,
				Path:   appDir,
				Reason: err.Error(),
			})
			continue
		}
		base, inst := c.installedAttributes(name, appDir, pkg)
		result.apps = append(result.apps, &model.LocalApp{BaseApp: base, InstalledInfo: inst})
	}
	return result, nil
}

// installedAttributes derives the attributes every app on disk shares from its directory
// and manifest. The directory name is the identity of the app.
func (c *Catalog) installedAttributes(name, appDir string, pkg *model.PackageJSON) (model.BaseApp, model.InstalledInfo) {
	base := model.BaseApp{
		Name:        name,
		DisplayName: pkg.Title(),
		Description: pkg.Description,
		IconPath:    ifExists(filepath.Join(appDir, resourcesDir, iconFile)),
	}
	shortcut := ifExists(filepath.Join(appDir, resourcesDir, platform.DefaultIconName(c.opts.GOOS)))
	if shortcut == "" {
		shortcut = base.IconPath
	}
	inst := model.InstalledInfo{
		CurrentVersion:   pkg.Version,
		Path:             appDir,
		ShortcutIconPath: shortcut,
		EngineVersion:    pkg.Engines.Launchpad,
		RepositoryURL:    pkg.RepositoryURL(),
		IsSupported:      pkg.IsSupported(c.opts.CoreVersion),
	}
	return base, inst
}

func readPackageJSON(appDir string) (*model.PackageJSON, error) {
	data, err := os.ReadFile(filepath.Join(appDir, model.ManifestFile))
	if err != nil {
		return nil, err
	}
	return model.ParsePackageJSON(data)
}

func ifExists(path string) string {
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}
