// Package installer installs and removes apps. Local apps come from archive files; downloadable
// apps are fetched from their source, verified and unpacked into the source's apps directory.
// Every mutation invalidates the catalog so the next listing reflects the disk.
package installer

import (
	"sync"

	"github.com/glorpus-work/launchpad/pkg/archive"
	"github.com/glorpus-work/launchpad/pkg/download"
	"github.com/glorpus-work/launchpad/pkg/metrics"
	"github.com/glorpus-work/launchpad/pkg/model"
)

// Options configures an Installer.
type Options struct {
	// DownloadDir receives the downloaded packages. Must be absolute.
	DownloadDir string
	Hooks       Hooks
	Metrics     *metrics.Metrics
}

// Installer performs the install and remove operations.
type Installer struct {
	catalog   Catalog
	downloads download.Manager
	archives  *archive.Manager
	opts      Options
	locks     keyLock
	// indexMu serializes read-modify-write cycles of the installed index.
	indexMu sync.Mutex
}

// New creates an installer.
func New(cat Catalog, downloads download.Manager, opts Options) *Installer {
	return &Installer{
		catalog:   cat,
		downloads: downloads,
		archives:  archive.NewManager(),
		opts:      opts,
	}
}

// keyLock serializes operations on the same app. Different apps proceed in parallel.
type keyLock struct {
	mu      sync.Mutex
	entries map[model.Spec]*keyEntry
}

type keyEntry struct {
	mu   sync.Mutex
	refs int
}

func (k *keyLock) lock(spec model.Spec) func() {
	k.mu.Lock()
	if k.entries == nil {
		k.entries = make(map[model.Spec]*keyEntry)
	}
	e, ok := k.entries[spec]
	if !ok {
		e = &keyEntry{}
		k.entries[spec] = e
	}
	e.refs++
	k.mu.Unlock()

	e.mu.Lock()
	return func() {
		e.mu.Unlock()
		k.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(k.entries, spec)
		}
		k.mu.Unlock()
	}
}
