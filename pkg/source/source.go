// Package source manages the registered app sources. The official source is configured by
// the launcher, further sources are added by URL and persisted in the settings store.
package source

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/glorpus-work/launchpad/internal/logger"
	"github.com/glorpus-work/launchpad/pkg/errutils"
	"github.com/glorpus-work/launchpad/pkg/model"
)

//go:generate mockgen -destination=mocks/source.go -package=mocks . Store,Cache

// Store persists the user-added sources.
type Store interface {
	Sources() map[string]string
	SetSource(name, url string) error
	DeleteSource(name string) (bool, error)
}

// Cache is the part of the catalog that keeps the documents of a source.
type Cache interface {
	FetchSourceManifest(ctx context.Context, sourceURL string) (*model.SourceManifest, error)
	WriteSourceManifest(source string, manifest *model.SourceManifest) error
	PruneSource(source string) error
}

// Registry lists the registered sources.
type Registry struct {
	store       Store
	officialURL string
}

// NewRegistry creates a registry whose official source points at officialURL.
func NewRegistry(store Store, officialURL string) *Registry {
	return &Registry{store: store, officialURL: officialURL}
}

// Get returns every registered source as name to URL. The official source is always
// present; the local source has no URL and is never listed. Entries whose name cannot be
// used as a directory name are skipped.
func (r *Registry) Get() map[string]string {
	sources := r.store.Sources()
	delete(sources, model.LocalSource)
	for name := range sources {
		if model.ValidateName(name) != nil {
			delete(sources, name)
		}
	}
	sources[model.OfficialSource] = r.officialURL
	return sources
}

// IsReserved reports whether name belongs to a built-in source.
func IsReserved(name string) bool {
	return name == model.OfficialSource || name == model.LocalSource
}

// Manager adds and removes sources.
type Manager struct {
	*Registry
	cache Cache
	mu    sync.Mutex
}

// NewManager creates a manager on top of registry.
func NewManager(registry *Registry, cache Cache) *Manager {
	return &Manager{Registry: registry, cache: cache}
}

// Add downloads the source manifest at url and registers the source under the name it
// declares. It returns that name.
func (m *Manager) Add(ctx context.Context, url string) (string, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return "", errutils.ErrSourceURLEmpty
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	existing := m.Get()
	for name, u := range existing {
		if u == url {
			return "", errutils.Wrapf(errutils.ErrSourceExists, "url %s is already registered as %s", url, name)
		}
	}

	manifest, err := m.cache.FetchSourceManifest(ctx, url)
	if err != nil {
		return "", errutils.Wrapf(err, "unable to add source from %s", url)
	}
	if err := model.ValidateName(manifest.Name); err != nil {
		return "", fmt.Errorf("%w: %w", errutils.ErrSourceManifestInvalid, err)
	}
	if IsReserved(manifest.Name) {
		return "", errutils.Wrapf(errutils.ErrReservedSource, "source %s", manifest.Name)
	}
	if _, ok := existing[manifest.Name]; ok {
		return "", errutils.Wrapf(errutils.ErrSourceExists, "source %s", manifest.Name)
	}

	if err := m.store.SetSource(manifest.Name, url); err != nil {
		return "", err
	}
	if err := m.cache.WriteSourceManifest(manifest.Name, manifest); err != nil {
		return "", err
	}

	logger.Success("Source added", logger.Fields{"source": manifest.Name, "url": url})
	return manifest.Name, nil
}

// Remove unregisters name and deletes its cached documents and installed apps.
func (m *Manager) Remove(name string) error {
	if err := model.ValidateName(name); err != nil {
		return err
	}
	if IsReserved(name) {
		return errutils.Wrapf(errutils.ErrReservedSource, "cannot remove source %s", name)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	removed, err := m.store.DeleteSource(name)
	if err != nil {
		return err
	}
	if !removed {
		return errutils.ErrSourceNotFoundWithName(name)
	}
	if err := m.cache.PruneSource(name); err != nil {
		return err
	}

	logger.Info("Source removed", logger.Fields{"source": name})
	return nil
}
