package cli

import (
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/glorpus-work/launchpad/pkg/orchestrator"
)

// NewSourcesCmd creates the sources command with subcommands.
func NewSourcesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sources",
		Short: "Manage app sources",
		Long:  "List, add and remove the sources apps are installed from",
	}

	cmd.AddCommand(
		newSourcesListCmd(),
		newSourcesAddCmd(),
		newSourcesRemoveCmd(),
	)

	return cmd
}

func newSourcesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered sources",
		RunE:  runSourcesList,
	}
}

func newSourcesAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add URL",
		Short: "Add a source",
		Long:  "Download the source manifest at URL and register the source under its name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			orch, err := loadOrchestrator(orchestrator.Hooks{})
			if err != nil {
				return err
			}
			name, err := orch.Sources.Add(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to add source: %w", err)
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), name)
			return nil
		},
	}
}

func newSourcesRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove NAME",
		Short: "Remove a source",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			orch, err := loadOrchestrator(orchestrator.Hooks{})
			if err != nil {
				return err
			}
			if err := orch.Sources.Remove(args[0]); err != nil {
				return fmt.Errorf("failed to remove source: %w", err)
			}
			return nil
		},
	}
}

func runSourcesList(cmd *cobra.Command, _ []string) error {
	orch, err := loadOrchestrator(orchestrator.Hooks{})
	if err != nil {
		return err
	}

	sources := orch.Sources.Get()
	names := make([]string, 0, len(sources))
	for name := range sources {
		names = append(names, name)
	}
	sort.Strings(names)

	tabWriter := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, TabWidth, ' ', 0)
	_, _ = fmt.Fprintln(tabWriter, "NAME\tURL")
	for _, name := range names {
		_, _ = fmt.Fprintf(tabWriter, "%s\t%s\n", name, sources[name])
	}
	return tabWriter.Flush()
}
