package archive

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glorpus-work/launchpad/pkg/errutils"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for path, content := range files {
		full := filepath.Join(root, filepath.FromSlash(path))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
	}
}

func createArchive(t *testing.T, files map[string]string) string {
	t.Helper()
	tempDir := t.TempDir()
	sourceDir := filepath.Join(tempDir, "source")
	writeTree(t, sourceDir, files)

	archivePath := filepath.Join(tempDir, "app.tgz")
	require.NoError(t, NewManager().Create(context.Background(), sourceDir, archivePath))
	return archivePath
}

func TestManager_ExtractAll(t *testing.T) {
	files := map[string]string{
		"package/package.json":         `{"name":"pc-nrfconnect-ppk","version":"4.0.0"}`,
		"package/dist/bundle.js":       "console.log(1)",
		"package/resources/icon.png":   "png",
		"package/resources/nested/a.b": "nested",
	}
	archivePath := createArchive(t, files)

	extractDir := filepath.Join(t.TempDir(), "extracted")
	require.NoError(t, NewManager().ExtractAll(context.Background(), archivePath, extractDir))

	for path, expected := range files {
		content, err := os.ReadFile(filepath.Join(extractDir, filepath.FromSlash(path)))
		require.NoError(t, err, path)
		assert.Equal(t, expected, string(content))
	}
}

func TestManager_ReadFile(t *testing.T) {
	archivePath := createArchive(t, map[string]string{
		"package.json": `{"name":"my-app","version":"1.0.0"}`,
	})

	data, err := NewManager().ReadFile(context.Background(), archivePath, "package.json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"my-app","version":"1.0.0"}`, string(data))

	_, err = NewManager().ReadFile(context.Background(), archivePath, "missing.json")
	assert.Error(t, err)
}

func TestManager_FindFile(t *testing.T) {
	tests := []struct {
		name     string
		files    map[string]string
		expected string
		wantErr  bool
	}{
		{
			name:     "manifest at root",
			files:    map[string]string{"package.json": "{}", "dist/a.js": ""},
			expected: "package.json",
		},
		{
			name:     "manifest in single top-level directory",
			files:    map[string]string{"package/package.json": "{}", "package/dist/a.js": ""},
			expected: "package/package.json",
		},
		{
			name:    "two top-level directories",
			files:   map[string]string{"a/package.json": "{}", "b/package.json": "{}"},
			wantErr: true,
		},
		{
			name:    "no manifest",
			files:   map[string]string{"README.md": "hello"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			archivePath := createArchive(t, tt.files)
			got, err := NewManager().FindFile(context.Background(), archivePath, "package.json")
			if tt.wantErr {
				assert.ErrorIs(t, err, errutils.ErrFileNotFound)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestManager_OpenMissingArchive(t *testing.T) {
	err := NewManager().ExtractAll(context.Background(), filepath.Join(t.TempDir(), "missing.tgz"), t.TempDir())
	assert.Error(t, err)
}

func TestWithin(t *testing.T) {
	root := filepath.Join("tmp", "extract")
	assert.True(t, within(root, filepath.Join(root, "package", "a.js")))
	assert.True(t, within(root, root))
	assert.False(t, within(root, filepath.Join(root, "..", "evil")))
	assert.False(t, within(root, filepath.Join("tmp", "other")))
}
