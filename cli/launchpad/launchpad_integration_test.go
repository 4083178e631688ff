//go:build integration

package main

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glorpus-work/launchpad/pkg/config"
	"github.com/glorpus-work/launchpad/pkg/errutils"
	"github.com/glorpus-work/launchpad/pkg/model"
	"github.com/glorpus-work/launchpad/test/testutil"
)

// writeTempConfig writes a config that keeps every directory under root.
func writeTempConfig(t *testing.T, root, officialURL string) string {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Settings.AppsDir = filepath.Join(root, "apps")
	cfg.Settings.StateDir = filepath.Join(root, "state")
	cfg.Settings.CacheDir = filepath.Join(root, "cache")
	cfg.Settings.ResourcesDir = filepath.Join(root, "resources")
	cfg.Settings.OfficialSourceURL = officialURL
	cfg.Settings.ListenAddr = "127.0.0.1:0"
	cfg.Settings.LogLevel = "error"

	path := filepath.Join(root, "config.yaml")
	require.NoError(t, cfg.SaveConfig(path))
	return path
}

// run executes the CLI with args against cfgPath and returns stdout.
func run(t *testing.T, cfgPath string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", cfgPath}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

// publishApp serves a tarball for pkg and records it in info.
func publishApp(t *testing.T, srv *testutil.SourceServer, pkg model.PackageJSON, info *model.AppInfo) {
	t.Helper()
	data, err := os.ReadFile(testutil.BuildAppArchive(t, pkg, true))
	require.NoError(t, err)
	sum := sha256.Sum256(data)

	p := "tarballs/" + pkg.Name + "-" + pkg.Version + ".tgz"
	srv.Put(p, data)
	if info.Versions == nil {
		info.Versions = map[string]model.VersionInfo{}
	}
	info.Versions[pkg.Version] = model.VersionInfo{TarballURL: srv.URLFor(p), Shasum: hex.EncodeToString(sum[:])}
}

func TestVersion(t *testing.T) {
	out, err := run(t, filepath.Join(t.TempDir(), "config.yaml"), "version")
	require.NoError(t, err)
	assert.Contains(t, out, "launchpad version")
}

func TestConfig_InitSetGet(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")

	_, err := run(t, cfgPath, "config", "init")
	require.NoError(t, err)
	assert.FileExists(t, cfgPath)

	_, err = run(t, cfgPath, "config", "init")
	assert.ErrorIs(t, err, errutils.ErrConfigFileExists)

	_, err = run(t, cfgPath, "config", "set", "skip_update_apps", "true")
	require.NoError(t, err)

	out, err := run(t, cfgPath, "config", "get", "skip_update_apps")
	require.NoError(t, err)
	assert.Equal(t, "true\n", out)

	out, err = run(t, cfgPath, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "official_source_url")

	_, err = run(t, cfgPath, "config", "get", "nope")
	assert.ErrorIs(t, err, errutils.ErrUnknownConfigKey)
}

func TestSources_AddListRemove(t *testing.T) {
	srv := testutil.NewSourceServer(t)
	officialURL := srv.PublishSource(t, model.OfficialSource)
	communityURL := srv.PublishSource(t, "community")
	cfgPath := writeTempConfig(t, t.TempDir(), officialURL)

	out, err := run(t, cfgPath, "sources", "add", communityURL)
	require.NoError(t, err)
	assert.Equal(t, "community\n", out)

	_, err = run(t, cfgPath, "sources", "add", communityURL)
	assert.ErrorIs(t, err, errutils.ErrSourceExists)

	out, err = run(t, cfgPath, "sources", "list")
	require.NoError(t, err)
	assert.Contains(t, out, communityURL)
	assert.Contains(t, out, officialURL)

	_, err = run(t, cfgPath, "sources", "remove", "community")
	require.NoError(t, err)
	_, err = run(t, cfgPath, "sources", "remove", "community")
	assert.ErrorIs(t, err, errutils.ErrSourceNotFound)
	_, err = run(t, cfgPath, "sources", "remove", model.OfficialSource)
	assert.ErrorIs(t, err, errutils.ErrReservedSource)
}

func TestApps_Lifecycle(t *testing.T) {
	srv := testutil.NewSourceServer(t)
	info := &model.AppInfo{Name: "blinky", DisplayName: "Blinky", Description: "Blinks a LED", LatestVersion: "1.0.0"}
	publishApp(t, srv, model.PackageJSON{Name: "blinky", Version: "1.0.0"}, info)
	officialURL := srv.PublishSource(t, model.OfficialSource, info)
	cfgPath := writeTempConfig(t, t.TempDir(), officialURL)

	_, err := run(t, cfgPath, "apps", "refresh")
	require.NoError(t, err)

	out, err := run(t, cfgPath, "apps", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "blinky")
	assert.Contains(t, out, "available")

	out, err = run(t, cfgPath, "apps", "install", "blinky")
	require.NoError(t, err)
	assert.Equal(t, "official/blinky 1.0.0\n", out)

	out, err = run(t, cfgPath, "apps", "list", "--installed")
	require.NoError(t, err)
	assert.Contains(t, out, "installed")

	_, err = run(t, cfgPath, "apps", "install", "missing")
	assert.ErrorIs(t, err, errutils.ErrAppNotFound)

	_, err = run(t, cfgPath, "apps", "release-notes", "blinky")
	assert.ErrorIs(t, err, errutils.ErrFileNotFound)

	_, err = run(t, cfgPath, "apps", "remove", "blinky")
	require.NoError(t, err)
	_, err = run(t, cfgPath, "apps", "remove", "blinky")
	assert.ErrorIs(t, err, errutils.ErrAppNotInstalled)
}

func TestApps_InstallLocal(t *testing.T) {
	srv := testutil.NewSourceServer(t)
	cfgPath := writeTempConfig(t, t.TempDir(), srv.PublishSource(t, model.OfficialSource))
	archivePath := testutil.BuildAppArchive(t, model.PackageJSON{Name: "scope", Version: "0.3.0"}, false)

	out, err := run(t, cfgPath, "apps", "install-local", archivePath)
	require.NoError(t, err)
	assert.Equal(t, "scope 0.3.0\n", out)

	_, err = run(t, cfgPath, "apps", "install-local", archivePath)
	assert.ErrorIs(t, err, errutils.ErrAppExists)

	out, err = run(t, cfgPath, "apps", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "local")

	_, err = run(t, cfgPath, "apps", "remove", "scope", "--source", model.LocalSource)
	require.NoError(t, err)
}

func TestCache_InfoClean(t *testing.T) {
	srv := testutil.NewSourceServer(t)
	cfgPath := writeTempConfig(t, t.TempDir(), srv.PublishSource(t, model.OfficialSource))

	_, err := run(t, cfgPath, "apps", "refresh")
	require.NoError(t, err)

	out, err := run(t, cfgPath, "cache", "info")
	require.NoError(t, err)
	assert.Contains(t, out, "metadata")

	out, err = run(t, cfgPath, "cache", "clean", "--metadata")
	require.NoError(t, err)
	assert.Contains(t, out, "Source metadata")
}
