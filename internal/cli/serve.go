package cli

import (
	"github.com/spf13/cobra"

	"github.com/glorpus-work/launchpad/internal/logger"
	"github.com/glorpus-work/launchpad/pkg/orchestrator"
)

// NewServeCmd creates the serve command.
func NewServeCmd() *cobra.Command {
	var skipUpdate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the launcher",
		Long: `Start the channel server, refresh the app sources and open the launcher window.
The command returns when the last window is closed or on interrupt.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			hooks := orchestrator.Hooks{OnEvent: func(e orchestrator.Event) {
				logger.Debug("Launcher "+e.Phase, logger.Fields{"msg": e.Msg})
			}}
			orch, err := loadOrchestrator(hooks)
			if err != nil {
				return err
			}
			if skipUpdate {
				orch.Config.Settings.SkipUpdateApps = true
			}
			return orch.Run(cmd.Context())
		},
	}

	cmd.Flags().BoolVar(&skipUpdate, "skip-update-apps", false, "Do not refresh app sources on startup")

	return cmd
}
