package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glorpus-work/launchpad/pkg/errutils"
	"github.com/glorpus-work/launchpad/pkg/fsutil"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "info", cfg.Settings.LogLevel)
	assert.Equal(t, "text", cfg.Settings.LogFormat)
	assert.Equal(t, DefaultHTTPTimeout, cfg.Settings.HTTPTimeout)
	assert.Equal(t, DefaultListenAddr, cfg.Settings.ListenAddr)
	assert.Equal(t, DefaultOfficialSourceURL, cfg.Settings.OfficialSourceURL)
	assert.NotEmpty(t, cfg.Settings.AppsDir)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "config.yaml")

	configContent := `settings:
  apps_dir: /opt/launchpad/apps
  log_level: debug
  skip_update_apps: true
  http_timeout: 5s
  display_command: ["launchpad-display", "--gpu"]`

	require.NoError(t, os.WriteFile(configPath, []byte(configContent), fsutil.FileModeDefault))

	cfg, err := LoadConfig(configPath)
	require.NoError(t, err)

	assert.Equal(t, "/opt/launchpad/apps", cfg.Settings.AppsDir)
	assert.Equal(t, "debug", cfg.Settings.LogLevel)
	assert.True(t, cfg.Settings.SkipUpdateApps)
	assert.Equal(t, 5*time.Second, cfg.Settings.HTTPTimeout)
	assert.Equal(t, []string{"launchpad-display", "--gpu"}, cfg.Settings.DisplayCommand)
	assert.Equal(t, DefaultOfficialSourceURL, cfg.Settings.OfficialSourceURL, "missing values fall back to defaults")
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Settings.AppsDir, cfg.Settings.AppsDir)
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	_, err := LoadConfig("")
	assert.ErrorIs(t, err, errutils.ErrEmptyConfigPath)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("LAUNCHPAD_APPS_DIR", "/srv/apps")
	t.Setenv("LAUNCHPAD_SKIP_SPLASH_SCREEN", "true")
	t.Setenv("LAUNCHPAD_HTTP_TIMEOUT", "90s")

	cfg, err := LoadConfigFromReader(strings.NewReader("settings:\n  apps_dir: /from/file\n"))
	require.NoError(t, err)

	assert.Equal(t, "/srv/apps", cfg.Settings.AppsDir)
	assert.True(t, cfg.Settings.SkipSplashScreen)
	assert.Equal(t, 90*time.Second, cfg.Settings.HTTPTimeout)
}

func TestLoadConfigFromReader_Invalid(t *testing.T) {
	_, err := LoadConfigFromReader(strings.NewReader("settings: ["))
	assert.ErrorIs(t, err, errutils.ErrConfigParse)

	_, err = LoadConfigFromReader(strings.NewReader("settings:\n  log_level: loud\n"))
	assert.ErrorIs(t, err, errutils.ErrConfigValidation)
}

func TestSaveConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Settings.LogLevel = "debug"
	cfg.Settings.SkipUpdateApps = true

	configPath := filepath.Join(t.TempDir(), "nested", "config.yaml")
	require.NoError(t, cfg.SaveConfig(configPath))

	loaded, err := LoadConfig(configPath)
	require.NoError(t, err)
	assert.Equal(t, "debug", loaded.Settings.LogLevel)
	assert.True(t, loaded.Settings.SkipUpdateApps)
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr error
	}{
		{
			name:   "valid config",
			mutate: func(c *Config) {},
		},
		{
			name:    "negative timeout",
			mutate:  func(c *Config) { c.Settings.HTTPTimeout = -time.Second },
			wantErr: errutils.ErrHTTPTimeoutNegative,
		},
		{
			name:    "invalid log level",
			mutate:  func(c *Config) { c.Settings.LogLevel = "trace" },
			wantErr: errutils.ErrInvalidLogLevel,
		},
		{
			name:    "invalid log format",
			mutate:  func(c *Config) { c.Settings.LogFormat = "xml" },
			wantErr: errutils.ErrInvalidLogFormat,
		},
		{
			name:    "empty apps dir",
			mutate:  func(c *Config) { c.Settings.AppsDir = "" },
			wantErr: errutils.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestSetAndGetValue(t *testing.T) {
	cfg := DefaultConfig()

	require.NoError(t, cfg.SetValue("log_level", "warn"))
	require.NoError(t, cfg.SetValue("skip_update_apps", "true"))
	require.NoError(t, cfg.SetValue("http_timeout", "1m"))

	v, err := cfg.GetValue("log_level")
	require.NoError(t, err)
	assert.Equal(t, "warn", v)

	v, err = cfg.GetValue("skip_update_apps")
	require.NoError(t, err)
	assert.Equal(t, "true", v)

	v, err = cfg.GetValue("http_timeout")
	require.NoError(t, err)
	assert.Equal(t, "1m0s", v)

	assert.ErrorIs(t, cfg.SetValue("skip_update_apps", "maybe"), errutils.ErrInvalidBoolValue)
	assert.ErrorIs(t, cfg.SetValue("color", "on"), errutils.ErrUnknownConfigKey)
	_, err = cfg.GetValue("color")
	assert.ErrorIs(t, err, errutils.ErrUnknownConfigKey)
}
