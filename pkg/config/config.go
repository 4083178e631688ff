// Package config provides configuration management for the launchpad orchestrator.
// It loads the YAML configuration file, fills in platform defaults, applies LAUNCHPAD_*
// environment overrides and validates the result before any component is constructed.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/glorpus-work/launchpad/pkg/errutils"
	"github.com/glorpus-work/launchpad/pkg/fsutil"
)

// Config represents the application configuration.
type Config struct {
	Settings Settings `yaml:"settings"`
}

// Settings represents general application settings.
type Settings struct {
	// Storage locations
	AppsDir  string `yaml:"apps_dir,omitempty" envconfig:"APPS_DIR"`
	StateDir string `yaml:"state_dir,omitempty" envconfig:"STATE_DIR"`
	CacheDir string `yaml:"cache_dir,omitempty" envconfig:"CACHE_DIR"`

	// ResourcesDir holds the launcher page, the app shell page and the launcher icon.
	ResourcesDir string `yaml:"resources_dir,omitempty" envconfig:"RESOURCES_DIR"`

	// Sources
	OfficialSourceURL string `yaml:"official_source_url" envconfig:"OFFICIAL_SOURCE_URL"`

	// Network settings
	HTTPTimeout time.Duration `yaml:"http_timeout" envconfig:"HTTP_TIMEOUT"`

	// Startup behaviour
	SkipUpdateApps   bool `yaml:"skip_update_apps" envconfig:"SKIP_UPDATE_APPS"`
	SkipSplashScreen bool `yaml:"skip_splash_screen" envconfig:"SKIP_SPLASH_SCREEN"`

	// Channel server and display processes
	ListenAddr     string   `yaml:"listen_addr" envconfig:"LISTEN_ADDR"`
	DisplayCommand []string `yaml:"display_command,omitempty" envconfig:"DISPLAY_COMMAND"`

	// Output settings
	LogLevel  string `yaml:"log_level" envconfig:"LOG_LEVEL"`   // error, warn, info, debug
	LogFormat string `yaml:"log_format" envconfig:"LOG_FORMAT"` // text, json
}

// Default configuration values.
const (
	// DefaultHTTPTimeout is the default timeout for manifest and asset requests.
	DefaultHTTPTimeout = 30 * time.Second

	// DefaultListenAddr binds the channel server to a random loopback port.
	DefaultListenAddr = "127.0.0.1:0"

	// DefaultOfficialSourceURL is where the official source manifest is published.
	DefaultOfficialSourceURL = "https://apps.glorpus.work/launchpad/official/source.json"

	// EnvPrefix is the prefix of environment overrides, e.g. LAUNCHPAD_APPS_DIR.
	EnvPrefix = "LAUNCHPAD"

	// YAMLIndent is the number of spaces to use for YAML indentation.
	YAMLIndent = 2
)

// DefaultConfig returns a configuration with platform defaults.
func DefaultConfig() *Config {
	appsDir, err := fsutil.GetAppsDir()
	if err != nil {
		appsDir = filepath.Join(os.TempDir(), fsutil.AppName, "apps")
	}
	stateDir, err := fsutil.GetStateDir()
	if err != nil {
		stateDir = filepath.Join(os.TempDir(), fsutil.AppName, "state")
	}
	cacheDir, err := fsutil.GetCacheDir()
	if err != nil {
		cacheDir = filepath.Join(os.TempDir(), fsutil.AppName, "cache")
	}

	return &Config{
		Settings: Settings{
			AppsDir:           appsDir,
			StateDir:          stateDir,
			CacheDir:          cacheDir,
			ResourcesDir:      defaultResourcesDir(),
			OfficialSourceURL: DefaultOfficialSourceURL,
			HTTPTimeout:       DefaultHTTPTimeout,
			ListenAddr:        DefaultListenAddr,
			LogLevel:          "info",
			LogFormat:         "text",
		},
	}
}

// LoadConfig loads configuration from a file. A missing file yields the defaults.
// Environment overrides are applied in both cases.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, errutils.ErrEmptyConfigPath
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, errutils.Wrap(errutils.ErrInvalidConfigPath, err.Error())
	}

	file, err := os.Open(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := DefaultConfig()
			if err := cfg.ApplyEnv(); err != nil {
				return nil, err
			}
			return cfg, cfg.Validate()
		}
		return nil, errutils.Wrapf(err, "failed to open config file: %s", path)
	}
	defer func() { _ = file.Close() }()

	return LoadConfigFromReader(file)
}

// LoadConfigFromReader loads configuration from an io.Reader.
func LoadConfigFromReader(reader io.Reader) (*Config, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, errutils.Wrap(err, "failed to read config data")
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, errutils.Wrap(errutils.ErrConfigParse, err.Error())
	}

	config.applyDefaults()
	if err := config.ApplyEnv(); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, errutils.Wrap(errutils.ErrConfigValidation, err.Error())
	}

	return &config, nil
}

// ApplyEnv overrides settings from LAUNCHPAD_* environment variables.
// Unset variables leave the current value untouched.
func (c *Config) ApplyEnv() error {
	if err := envconfig.Process(EnvPrefix, &c.Settings); err != nil {
		return errutils.Wrap(errutils.ErrConfigParse, err.Error())
	}
	return nil
}

// SaveConfig saves configuration to a file atomically.
func (c *Config) SaveConfig(path string) error {
	if path == "" {
		return errutils.ErrEmptyConfigPath
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return errutils.Wrap(errutils.ErrInvalidConfigPath, err.Error())
	}

	data, err := c.ToYAML()
	if err != nil {
		return err
	}

	if err := fsutil.WriteFileAtomic(absPath, data, fsutil.FileModeSecure); err != nil {
		return errutils.Wrap(errutils.ErrConfigFileRename, err.Error())
	}
	return nil
}

// ToYAML converts the config to YAML bytes.
func (c *Config) ToYAML() ([]byte, error) {
	var b strings.Builder
	encoder := yaml.NewEncoder(&b)
	encoder.SetIndent(YAMLIndent)
	if err := encoder.Encode(c); err != nil {
		return nil, errutils.Wrap(errutils.ErrConfigMarshal, err.Error())
	}
	if err := encoder.Close(); err != nil {
		return nil, errutils.Wrap(errutils.ErrConfigEncode, err.Error())
	}
	return []byte(b.String()), nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c == nil {
		return errutils.ErrConfigValidation
	}
	s := c.Settings
	if s.HTTPTimeout < 0 {
		return errutils.ErrHTTPTimeoutNegative
	}
	if s.AppsDir == "" {
		return fmt.Errorf("%w: apps_dir cannot be empty", errutils.ErrValidation)
	}
	if s.StateDir == "" {
		return fmt.Errorf("%w: state_dir cannot be empty", errutils.ErrValidation)
	}
	if s.OfficialSourceURL == "" {
		return fmt.Errorf("%w: official_source_url cannot be empty", errutils.ErrValidation)
	}
	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[strings.ToLower(s.LogFormat)] {
		return errutils.ErrInvalidLogFormatWithDetails(s.LogFormat)
	}
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(s.LogLevel)] {
		return errutils.ErrInvalidLogLevelWithDetails(s.LogLevel)
	}
	return nil
}

// GetDefaultConfigPath returns the default configuration file path.
func GetDefaultConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}
	return filepath.Join(configDir, fsutil.AppName, "config.yaml"), nil
}

// SettingsPath returns the path of the persisted launcher settings (sources, window state).
func (c *Config) SettingsPath() string {
	return filepath.Join(c.Settings.StateDir, "settings.json")
}

// defaultResourcesDir is the resources directory next to the executable.
func defaultResourcesDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "resources"
	}
	return filepath.Join(filepath.Dir(exe), "resources")
}

// DownloadDir returns the directory used for in-flight tarball downloads.
func (c *Config) DownloadDir() string {
	return filepath.Join(c.Settings.CacheDir, "downloads")
}

func (c *Config) applyDefaults() {
	defaults := DefaultConfig()

	if c.Settings.AppsDir == "" {
		c.Settings.AppsDir = defaults.Settings.AppsDir
	}
	if c.Settings.StateDir == "" {
		c.Settings.StateDir = defaults.Settings.StateDir
	}
	if c.Settings.CacheDir == "" {
		c.Settings.CacheDir = defaults.Settings.CacheDir
	}
	if c.Settings.ResourcesDir == "" {
		c.Settings.ResourcesDir = defaults.Settings.ResourcesDir
	}
	if c.Settings.OfficialSourceURL == "" {
		c.Settings.OfficialSourceURL = defaults.Settings.OfficialSourceURL
	}
	if c.Settings.HTTPTimeout == 0 {
		c.Settings.HTTPTimeout = defaults.Settings.HTTPTimeout
	}
	if c.Settings.ListenAddr == "" {
		c.Settings.ListenAddr = defaults.Settings.ListenAddr
	}
	if c.Settings.LogLevel == "" {
		c.Settings.LogLevel = defaults.Settings.LogLevel
	}
	if c.Settings.LogFormat == "" {
		c.Settings.LogFormat = defaults.Settings.LogFormat
	}
}
