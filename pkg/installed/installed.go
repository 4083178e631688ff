// Package installed provides a JSON-backed index of the downloadable apps installed on disk.
package installed

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/glorpus-work/launchpad/pkg/errutils"
	"github.com/glorpus-work/launchpad/pkg/fsutil"
	"github.com/glorpus-work/launchpad/pkg/model"
)

// Record describes one installed downloadable app.
type Record struct {
	Name        string    `json:"name"`
	Source      string    `json:"source"`
	Version     string    `json:"version"`
	AppURL      string    `json:"appUrl,omitempty"`
	TarballURL  string    `json:"tarballUrl,omitempty"`
	Shasum      string    `json:"shasum,omitempty"`
	InstalledAt time.Time `json:"installedAt"`
}

// Spec returns the identity of the recorded app.
func (r *Record) Spec() model.Spec {
	return model.Spec{Name: r.Name, Source: r.Source}
}

// Index is the in-memory view of installed.json.
type Index struct {
	FormatVersion string    `json:"format_version"`
	LastUpdate    time.Time `json:"last_update"`
	Records       []*Record `json:"apps"`

	path    string
	rwMutex sync.RWMutex
}

// FormatVersion is written into every index file.
const FormatVersion = "1"

// Load reads the index at path. A missing file yields an empty index.
func Load(path string) (*Index, error) {
	cleanPath := filepath.Clean(path)
	if !filepath.IsAbs(cleanPath) {
		return nil, fmt.Errorf("index path must be absolute: %s: %w", path, errutils.ErrInvalidPath)
	}

	idx := &Index{
		FormatVersion: FormatVersion,
		LastUpdate:    time.Now(),
		Records:       []*Record{},
		path:          cleanPath,
	}

	data, err := os.ReadFile(cleanPath)
	if os.IsNotExist(err) {
		return idx, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open installed index: %w", err)
	}
	if err := json.Unmarshal(data, idx); err != nil {
		return nil, fmt.Errorf("failed to parse installed index: %w", err)
	}
	return idx, nil
}

// Save writes the index atomically.
func (idx *Index) Save() error {
	idx.rwMutex.RLock()
	data, err := json.MarshalIndent(idx, "", "  ")
	idx.rwMutex.RUnlock()
	if err != nil {
		return fmt.Errorf("failed to marshal installed index: %w", err)
	}
	return fsutil.WriteFileAtomic(idx.path, data, fsutil.FileModeDefault)
}

// Find returns the record of spec, or nil.
func (idx *Index) Find(spec model.Spec) *Record {
	idx.rwMutex.RLock()
	defer idx.rwMutex.RUnlock()

	for _, r := range idx.Records {
		if r.Name == spec.Name && r.Source == spec.Source {
			cp := *r
			return &cp
		}
	}
	return nil
}

// Put adds or replaces the record of r's app.
func (idx *Index) Put(r *Record) {
	idx.rwMutex.Lock()
	defer idx.rwMutex.Unlock()

	if r.InstalledAt.IsZero() {
		r.InstalledAt = time.Now()
	}
	idx.LastUpdate = time.Now()
	for i, existing := range idx.Records {
		if existing.Name == r.Name && existing.Source == r.Source {
			idx.Records[i] = r
			return
		}
	}
	idx.Records = append(idx.Records, r)
}

// Remove deletes the record of spec and reports whether it existed.
func (idx *Index) Remove(spec model.Spec) bool {
	idx.rwMutex.Lock()
	defer idx.rwMutex.Unlock()

	for i, r := range idx.Records {
		if r.Name == spec.Name && r.Source == spec.Source {
			idx.Records = append(idx.Records[:i], idx.Records[i+1:]...)
			idx.LastUpdate = time.Now()
			return true
		}
	}
	return false
}

// RemoveSource deletes every record of source and returns how many were removed.
func (idx *Index) RemoveSource(source string) int {
	idx.rwMutex.Lock()
	defer idx.rwMutex.Unlock()

	kept := idx.Records[:0]
	removed := 0
	for _, r := range idx.Records {
		if r.Source == source {
			removed++
			continue
		}
		kept = append(kept, r)
	}
	idx.Records = kept
	if removed > 0 {
		idx.LastUpdate = time.Now()
	}
	return removed
}

// BySource returns copies of the records of source, sorted by name.
func (idx *Index) BySource(source string) []*Record {
	idx.rwMutex.RLock()
	defer idx.rwMutex.RUnlock()

	var out []*Record
	for _, r := range idx.Records {
		if r.Source == source {
			cp := *r
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
