package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/glorpus-work/launchpad/pkg/cache"
	"github.com/glorpus-work/launchpad/pkg/orchestrator"
)

// NewCacheCmd creates the cache command with subcommands.
func NewCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the download and source metadata cache",
	}

	cmd.AddCommand(
		newCacheInfoCmd(),
		newCacheCleanCmd(),
	)

	return cmd
}

func newCacheInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show cache information",
		RunE: func(cmd *cobra.Command, _ []string) error {
			orch, err := loadOrchestrator(orchestrator.Hooks{})
			if err != nil {
				return err
			}
			info, err := orch.Cache.GetInfo()
			if err != nil {
				return fmt.Errorf("failed to get cache info: %w", err)
			}

			tabWriter := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, TabWidth, ' ', 0)
			_, _ = fmt.Fprintln(tabWriter, "AREA\tSIZE\tFILES")
			_, _ = fmt.Fprintf(tabWriter, "downloads\t%s\t%d\n", cache.FormatBytes(info.DownloadSize), info.DownloadFiles)
			_, _ = fmt.Fprintf(tabWriter, "metadata\t%s\t%d\n", cache.FormatBytes(info.MetadataSize), info.MetadataFiles)
			_, _ = fmt.Fprintf(tabWriter, "total\t%s\t\n", cache.FormatBytes(info.TotalSize))
			return tabWriter.Flush()
		},
	}
}

func newCacheCleanCmd() *cobra.Command {
	var options cache.CleanOptions

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Clean the cache",
		Long: `Remove downloaded app packages and cached source documents.
Installed apps are kept. Cached documents are downloaded again on the next refresh.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			orch, err := loadOrchestrator(orchestrator.Hooks{})
			if err != nil {
				return err
			}
			result, err := orch.Cache.Clean(options)
			if err != nil {
				return fmt.Errorf("failed to clean cache: %w", err)
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), result.Summary())
			return nil
		},
	}

	cmd.Flags().BoolVar(&options.Downloads, "downloads", false, "Clean only downloaded packages")
	cmd.Flags().BoolVar(&options.Metadata, "metadata", false, "Clean only cached source documents")

	return cmd
}
