// Package cache reports and cleans what the launcher keeps only to save network round trips:
// partially or fully downloaded app tarballs and the documents cached per source (source
// manifests, app info, icons and release notes). Installed apps are never touched.
package cache

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/glorpus-work/launchpad/internal/logger"
	"github.com/glorpus-work/launchpad/pkg/errutils"
	"github.com/glorpus-work/launchpad/pkg/fsutil"
	"github.com/glorpus-work/launchpad/pkg/model"
)

// Manager cleans and measures the launcher caches.
type Manager struct {
	downloadDir string
	catalog     Catalog
	sources     SourceLister
}

// NewManager creates a cache manager. downloadDir is the installer's download directory.
func NewManager(downloadDir string, cat Catalog, sources SourceLister) *Manager {
	return &Manager{
		downloadDir: downloadDir,
		catalog:     cat,
		sources:     sources,
	}
}

// Clean removes cached files according to the specified options.
func (m *Manager) Clean(options CleanOptions) (*CleanResult, error) {
	if !options.Downloads && !options.Metadata {
		options.Downloads = true
		options.Metadata = true
	}
	result := &CleanResult{}

	if options.Downloads {
		size, err := cleanDirectory(m.downloadDir)
		if err != nil {
			return nil, errutils.Wrap(err, "failed to clean download cache")
		}
		result.DownloadsFreed = size
		result.TotalFreed += size
	}

	if options.Metadata {
		var freed int64
		for _, path := range m.metadataFiles() {
			info, err := os.Stat(path)
			if err != nil {
				continue
			}
			if err := os.Remove(path); err != nil {
				return nil, errutils.Wrapf(err, "failed to remove %s", path)
			}
			freed += info.Size()
		}
		m.catalog.Invalidate()
		result.MetadataFreed = freed
		result.TotalFreed += freed
	}

	logger.Debug("Cache cleaned", logger.Fields{
		"downloads": result.DownloadsFreed,
		"metadata":  result.MetadataFreed,
	})
	return result, nil
}

// GetInfo returns the size of each cache area.
func (m *Manager) GetInfo() (*Info, error) {
	info := &Info{DownloadDir: m.downloadDir}

	size, files, err := getDirSizeAndFiles(m.downloadDir)
	if err != nil {
		return nil, errutils.Wrap(err, "failed to get download cache info")
	}
	info.DownloadSize = size
	info.DownloadFiles = files

	for _, path := range m.metadataFiles() {
		fi, err := os.Stat(path)
		if err != nil {
			continue
		}
		info.MetadataSize += fi.Size()
		info.MetadataFiles++
	}

	info.TotalSize = info.DownloadSize + info.MetadataSize
	return info, nil
}

// metadataFiles lists the aggregated apps.json and the regular files directly inside each
// registered source directory. Subdirectories hold installed apps and are skipped.
func (m *Manager) metadataFiles() []string {
	layout := m.catalog.Layout()
	files := []string{}
	if fsutil.Exists(layout.AppsJSON()) {
		files = append(files, layout.AppsJSON())
	}

	names := make([]string, 0)
	for name := range m.sources.Get() {
		if name != model.LocalSource {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	for _, name := range names {
		dir := layout.SourceDir(name)
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, e := range entries {
			if e.Type().IsRegular() {
				files = append(files, filepath.Join(dir, e.Name()))
			}
		}
	}
	return files
}

// cleanDirectory empties dir and returns the bytes freed.
func cleanDirectory(dir string) (int64, error) {
	if !fsutil.Exists(dir) {
		return 0, nil
	}

	totalSize, _, err := getDirSizeAndFiles(dir)
	if err != nil {
		return 0, err
	}

	if err := os.RemoveAll(dir); err != nil {
		return 0, errutils.Wrapf(err, "failed to remove directory %s", dir)
	}
	if err := os.MkdirAll(dir, fsutil.DirModeDefault); err != nil {
		return totalSize, errutils.Wrapf(err, "failed to recreate directory %s", dir)
	}

	return totalSize, nil
}

// getDirSizeAndFiles returns the total size and count of the regular files below dir.
// A missing dir is empty.
func getDirSizeAndFiles(dir string) (size int64, count int, err error) {
	if !fsutil.Exists(dir) {
		return 0, 0, nil
	}

	err = filepath.Walk(dir, func(_ string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if !info.IsDir() {
			size += info.Size()
			count++
		}
		return nil
	})
	if err != nil {
		err = errutils.Wrapf(err, "error walking directory %s", dir)
	}
	return size, count, err
}
