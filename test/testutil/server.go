// Package testutil provides helpers shared by the package tests: an in-memory source
// server and builders for app folders and app archives.
package testutil

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/glorpus-work/launchpad/pkg/archive"
	"github.com/glorpus-work/launchpad/pkg/model"
)

// SourceServer serves source documents, icons and tarballs from memory.
type SourceServer struct {
	*httptest.Server

	mu    sync.Mutex
	files map[string][]byte
	hits  map[string]int
}

// NewSourceServer starts a server that is closed when the test ends.
func NewSourceServer(t *testing.T) *SourceServer {
	t.Helper()
	s := &SourceServer{
		files: make(map[string][]byte),
		hits:  make(map[string]int),
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	t.Cleanup(s.Close)
	return s
}

func (s *SourceServer) serve(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	data, ok := s.files[r.URL.Path]
	s.hits[r.URL.Path]++
	s.mu.Unlock()

	if !ok {
		http.NotFound(w, r)
		return
	}
	_, _ = w.Write(data)
}

// URLFor returns the absolute URL of p.
func (s *SourceServer) URLFor(p string) string {
	return s.URL + "/" + strings.TrimPrefix(p, "/")
}

// Put publishes data at p.
func (s *SourceServer) Put(p string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files["/"+strings.TrimPrefix(p, "/")] = data
}

// PutJSON publishes v encoded as JSON at p.
func (s *SourceServer) PutJSON(t *testing.T, p string, v interface{}) {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	s.Put(p, data)
}

// Delete unpublishes p.
func (s *SourceServer) Delete(p string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.files, "/"+strings.TrimPrefix(p, "/"))
}

// Hits returns how often p was requested.
func (s *SourceServer) Hits(p string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits["/"+strings.TrimPrefix(p, "/")]
}

// PublishSource publishes <name>/source.json listing one <name>/<app>.json per app and
// returns the URL of the source manifest.
func (s *SourceServer) PublishSource(t *testing.T, name string, apps ...*model.AppInfo) string {
	t.Helper()
	manifest := model.SourceManifest{Name: name, Apps: []string{}}
	for _, app := range apps {
		p := name + "/" + app.Name + ".json"
		s.PutJSON(t, p, app)
		manifest.Apps = append(manifest.Apps, s.URLFor(p))
	}
	s.PutJSON(t, name+"/source.json", manifest)
	return s.URLFor(name + "/source.json")
}

// WriteAppDir writes pkg as the manifest of dir, creating it.
func WriteAppDir(t *testing.T, dir string, pkg model.PackageJSON) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	data, err := json.Marshal(pkg)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, model.ManifestFile), data, 0o644))
}

// BuildAppArchive creates a tar.gz app archive for pkg and returns its path. With
// npmLayout the content is nested in a package/ directory like an npm tarball.
func BuildAppArchive(t *testing.T, pkg model.PackageJSON, npmLayout bool) string {
	t.Helper()
	src := t.TempDir()
	root := src
	if npmLayout {
		root = filepath.Join(src, "package")
	}
	WriteAppDir(t, root, pkg)
	require.NoError(t, os.MkdirAll(filepath.Join(root, "dist"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "dist", "bundle.js"), []byte("console.log('"+pkg.Name+"')"), 0o644))

	out := filepath.Join(t.TempDir(), pkg.Name+"-"+pkg.Version+".tgz")
	require.NoError(t, archive.NewManager().Create(context.Background(), src, out))
	return out
}
