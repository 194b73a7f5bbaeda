package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"fairsim/internal/workload"
)

func newGenCmd() *cobra.Command {
	var (
		opts    workload.GenOptions
		outPath string
	)

	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate a synthetic pipe-delimited workload",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.Count <= 0 {
				return fmt.Errorf("--count must be positive, got %d", opts.Count)
			}
			wl := workload.Generate(opts)

			var out io.Writer = cmd.OutOrStdout()
			if outPath != "" && outPath != "-" {
				f, err := os.Create(outPath)
				if err != nil {
					return err
				}
				defer f.Close()
				out = f
			}
			if err := workload.WritePipe(out, wl); err != nil {
				return err
			}
			logger.Debug("workload generated", "tasks", len(wl.Tasks), "seed", opts.Seed)
			return nil
		},
	}

	f := cmd.Flags()
	f.IntVar(&opts.Count, "count", 5, "Number of tasks")
	f.Uint64Var(&opts.Seed, "seed", 1, "Random seed")
	f.Int64Var(&opts.MaxArrival, "max-arrival", 20, "Latest arrival tick")
	f.Int64Var(&opts.MaxDemand, "max-demand", 10, "Largest demand")
	f.Int64Var(&opts.MaxTickets, "max-tickets", 10, "Largest ticket value")
	f.StringVarP(&outPath, "output", "o", "", "Output file (stdout when empty)")
	return cmd
}
