package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"fairsim/internal/logging"
)

var (
	flagDebug     bool
	flagLogLevel  string
	flagLogFormat string

	logger *slog.Logger
)

// NewRootCmd creates the root cobra command for the fairsim CLI.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "fairsim",
		Short: "fairsim - fair-share CPU scheduling simulator",
		Long:  "fairsim replays a workload through a virtual-runtime (CFS-like) scheduler and reports per-task timings.",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if flagDebug {
				flagLogLevel = "debug"
			}
			logger = logging.NewLoggerWithWriter(logging.ParseLevel(flagLogLevel), flagLogFormat, cmd.ErrOrStderr())
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")
	root.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&flagLogFormat, "log-format", "text", "Log format (text, json)")

	root.AddCommand(
		newRunCmd(),
		newGenCmd(),
	)
	return root
}
