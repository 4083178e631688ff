package cli

import (
	"fmt"
	"strings"

	"github.com/glorpus-work/launchpad/internal/logger"
	"github.com/glorpus-work/launchpad/pkg/config"
	"github.com/glorpus-work/launchpad/pkg/orchestrator"
)

// These variables will be set by the root command
var (
	ConfigPath   *string
	Verbose      *bool
	OutputFormat *string
)

// loadConfig loads the configuration file named by --config or the default one, and
// applies the logging flags.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(getConfigPath())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	level := cfg.Settings.LogLevel
	if Verbose != nil && *Verbose {
		level = "debug"
	}
	format := cfg.Settings.LogFormat
	if OutputFormat != nil && *OutputFormat != "" {
		format = *OutputFormat
	}
	logger.InitLogger(level, logger.OutputFormat(strings.ToLower(format)))
	return cfg, nil
}

// loadOrchestrator builds the launcher components without starting anything.
func loadOrchestrator(hooks orchestrator.Hooks) (*orchestrator.Orchestrator, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	orch, err := orchestrator.New(orchestrator.Options{Config: cfg, CoreVersion: Version, Hooks: hooks})
	if err != nil {
		return nil, fmt.Errorf("failed to set up launcher: %w", err)
	}
	return orch, nil
}

func getConfigPath() string {
	if ConfigPath != nil && *ConfigPath != "" {
		return *ConfigPath
	}

	defaultPath, err := config.GetDefaultConfigPath()
	if err != nil {
		logger.Warn("Failed to get default config path, using empty path", logger.Fields{"error": err.Error()})
		return ""
	}
	return defaultPath
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
