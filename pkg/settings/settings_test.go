package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glorpus-work/launchpad/pkg/errutils"
)

func TestOpen(t *testing.T) {
	t.Run("missing file yields defaults", func(t *testing.T) {
		s, err := Open(filepath.Join(t.TempDir(), "settings.json"))
		require.NoError(t, err)
		assert.Empty(t, s.Sources())
		assert.Equal(t, DefaultWindowState(), s.LastWindowState())
	})

	t.Run("relative path is rejected", func(t *testing.T) {
		_, err := Open("settings.json")
		assert.ErrorIs(t, err, errutils.ErrInvalidPath)
	})

	t.Run("corrupt file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "settings.json")
		require.NoError(t, os.WriteFile(path, []byte("{"), 0o644))
		_, err := Open(path)
		assert.Error(t, err)
	})
}

func TestSources(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "settings.json")
	s, err := Open(path)
	require.NoError(t, err)

	require.NoError(t, s.SetSource("beta", "https://example.com/beta/source.json"))
	require.NoError(t, s.SetSource("extra", "https://example.com/extra/source.json"))

	existed, err := s.DeleteSource("beta")
	require.NoError(t, err)
	assert.True(t, existed)

	existed, err = s.DeleteSource("beta")
	require.NoError(t, err)
	assert.False(t, existed)

	reopened, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"extra": "https://example.com/extra/source.json"}, reopened.Sources())
}

func TestSourcesReturnsCopy(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "settings.json"))
	require.NoError(t, err)
	require.NoError(t, s.SetSource("extra", "https://example.com"))

	got := s.Sources()
	got["injected"] = "x"
	assert.NotContains(t, s.Sources(), "injected")
}

func TestLastWindowState(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	s, err := Open(path)
	require.NoError(t, err)

	state := WindowState{X: IntPtr(-40), Y: IntPtr(12), Width: 900, Height: 700, Maximized: true}
	require.NoError(t, s.SetLastWindowState(state))

	reopened, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, state, reopened.LastWindowState())
}
