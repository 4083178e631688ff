package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/glorpus-work/launchpad/internal/logger"
	"github.com/glorpus-work/launchpad/pkg/errutils"
	"github.com/glorpus-work/launchpad/pkg/model"
	"github.com/glorpus-work/launchpad/pkg/orchestrator"
)

// NewAppsCmd creates the apps command with subcommands.
func NewAppsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apps",
		Short: "Manage apps",
		Long:  "List, install and remove apps without opening the launcher",
	}

	cmd.AddCommand(
		newAppsListCmd(),
		newAppsRefreshCmd(),
		newAppsInstallCmd(),
		newAppsInstallLocalCmd(),
		newAppsRemoveCmd(),
		newAppsReleaseNotesCmd(),
	)

	return cmd
}

func newAppsListCmd() *cobra.Command {
	var installedOnly bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List apps",
		Long:  "List local apps and the apps offered by every source, as last refreshed",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAppsList(cmd, installedOnly)
		},
	}

	cmd.Flags().BoolVar(&installedOnly, "installed", false, "Show only installed apps")

	return cmd
}

func newAppsRefreshCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Refresh app metadata from all sources",
		RunE: func(cmd *cobra.Command, _ []string) error {
			orch, err := loadOrchestrator(orchestrator.Hooks{})
			if err != nil {
				return err
			}
			if err := orch.Refresh(cmd.Context()); err != nil {
				return fmt.Errorf("failed to refresh sources: %w", err)
			}
			return nil
		},
	}
}

func newAppsInstallCmd() *cobra.Command {
	var (
		source  string
		version string
	)

	cmd := &cobra.Command{
		Use:   "install NAME",
		Short: "Install or update an app from a source",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAppsInstall(cmd, model.Spec{Name: args[0], Source: source}, version)
		},
	}

	cmd.Flags().StringVarP(&source, "source", "s", model.OfficialSource, "Source the app belongs to")
	cmd.Flags().StringVar(&version, "version", "", "Version to install (default: latest)")

	return cmd
}

func newAppsInstallLocalCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "install-local FILE",
		Short: "Install an app from an archive file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			orch, err := loadOrchestrator(orchestrator.Hooks{})
			if err != nil {
				return err
			}
			result := orch.Installer.InstallLocalApp(cmd.Context(), args[0])
			if result.Type != model.ResultSuccess {
				if result.ErrorType == model.ErrorAppExists {
					return fmt.Errorf("app %s is already installed at %s: %w", result.AppName, result.AppPath, errutils.ErrAppExists)
				}
				return fmt.Errorf("failed to install %s: %s", args[0], result.ErrorMessage)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", result.App.Name, result.App.CurrentVersion)
			return nil
		},
	}
}

func newAppsRemoveCmd() *cobra.Command {
	var source string

	cmd := &cobra.Command{
		Use:   "remove NAME",
		Short: "Remove an installed app",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			orch, err := loadOrchestrator(orchestrator.Hooks{})
			if err != nil {
				return err
			}
			spec := model.Spec{Name: args[0], Source: source}
			if err := orch.Installer.RemoveDownloadableApp(spec); err != nil {
				return fmt.Errorf("failed to remove %s: %w", spec, err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&source, "source", "s", model.OfficialSource, "Source the app belongs to (local for apps installed from a file)")

	return cmd
}

func newAppsReleaseNotesCmd() *cobra.Command {
	var source string

	cmd := &cobra.Command{
		Use:   "release-notes NAME",
		Short: "Print the release notes of an app",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			orch, err := loadOrchestrator(orchestrator.Hooks{})
			if err != nil {
				return err
			}
			spec := model.Spec{Name: args[0], Source: source}
			path, ok := orch.Catalog.DownloadReleaseNotes(cmd.Context(), spec)
			if !ok {
				return fmt.Errorf("no release notes for %s: %w", spec, errutils.ErrFileNotFound)
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&source, "source", "s", model.OfficialSource, "Source the app belongs to")

	return cmd
}

func runAppsList(cmd *cobra.Command, installedOnly bool) error {
	orch, err := loadOrchestrator(orchestrator.Hooks{})
	if err != nil {
		return err
	}

	local, broken, err := orch.Catalog.GetLocalApps()
	if err != nil {
		return fmt.Errorf("failed to read local apps: %w", err)
	}
	downloadable, err := orch.Catalog.GetDownloadableApps(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to read downloadable apps: %w", err)
	}

	apps := make([]model.App, 0, len(local)+len(downloadable.Apps))
	for _, app := range local {
		apps = append(apps, app)
	}
	apps = append(apps, downloadable.Apps...)

	tabWriter := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, TabWidth, ' ', 0)
	_, _ = fmt.Fprintln(tabWriter, "SOURCE\tNAME\tINSTALLED\tLATEST\tSTATUS\tDESCRIPTION")
	for _, app := range apps {
		if installedOnly && !model.IsInstalled(app) {
			continue
		}
		spec := app.AppSpec()
		current, _ := model.CurrentVersion(app)
		latest, _ := model.LatestVersion(app)
		_, _ = fmt.Fprintf(tabWriter, "%s\t%s\t%s\t%s\t%s\t%s\n",
			spec.Source, spec.Name, dash(current), dash(latest), appStatus(app),
			truncate(app.Base().Description, MaxDescriptionLength))
	}
	if err := tabWriter.Flush(); err != nil {
		return err
	}

	for _, b := range append(broken, downloadable.AppsWithErrors...) {
		logger.Warn("Skipped broken app", logger.Fields{"name": b.Name, "source": b.Source, "reason": b.Reason})
	}
	return nil
}

func runAppsInstall(cmd *cobra.Command, spec model.Spec, version string) error {
	orch, err := loadOrchestrator(orchestrator.Hooks{})
	if err != nil {
		return err
	}

	apps, err := orch.Catalog.GetDownloadableApps(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to read downloadable apps: %w", err)
	}
	for _, app := range apps.Apps {
		if app.AppSpec() != spec {
			continue
		}
		installed, err := orch.Installer.InstallDownloadableApp(cmd.Context(), model.InfoOf(app), version)
		if err != nil {
			return fmt.Errorf("failed to install %s: %w", spec, err)
		}
		current, _ := model.CurrentVersion(installed)
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", spec, current)
		return nil
	}
	return fmt.Errorf("%s: %w", spec, errutils.ErrAppNotFound)
}

func appStatus(app model.App) string {
	switch {
	case model.IsWithdrawn(app):
		return "withdrawn"
	case model.UpdateAvailable(app):
		return "update available"
	case model.IsInstalled(app):
		return "installed"
	default:
		return "available"
	}
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
