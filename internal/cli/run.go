package cli

import (
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"fairsim/internal/report"
	"fairsim/internal/sched"
	"fairsim/internal/workload"
)

func newRunCmd() *cobra.Command {
	var (
		configPath  string
		csvPath     string
		trace       bool
		tick        int64
		granularity float64
		refWeight   float64
		maxTicks    int64
		paceMS      int
	)

	cmd := &cobra.Command{
		Use:   "run <workload>",
		Short: "Simulate a workload file",
		Long: `Simulate a workload file through the fair-share scheduler.

Pipe-delimited files hold an optional "cfs|<quantum>" header followed by
arrival|id|demand|tickets rows. Files ending in .yml or .yaml are read as YAML.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := sched.Load(configPath)
			if err != nil {
				return err
			}

			wl, err := workload.Load(args[0])
			if err != nil {
				return err
			}
			if err := wl.Validate(); err != nil {
				return err
			}

			// the workload header sets the tick, explicit flags win over both
			if wl.Quantum > 0 {
				cfg.Tick = wl.Quantum
			}
			flags := cmd.Flags()
			if flags.Changed("tick") {
				cfg.Tick = tick
			}
			if flags.Changed("granularity") {
				cfg.Granularity = granularity
			}
			if flags.Changed("reference-weight") {
				cfg.ReferenceWeight = refWeight
			}
			if flags.Changed("max-ticks") {
				cfg.MaxTicks = maxTicks
			}
			if flags.Changed("pace-ms") {
				cfg.PaceMS = paceMS
			}

			s := sched.New(cfg, logger)
			if err := wl.AddTo(s); err != nil {
				return err
			}
			sim := sched.NewSimulator(s, logger)
			out := cmd.OutOrStdout()

			var sink *report.CSVSink
			if csvPath != "" {
				f, err := os.Create(csvPath)
				if err != nil {
					return fmt.Errorf("create csv log: %w", err)
				}
				defer f.Close()
				if sink, err = report.NewCSVSink(f, sim.RunID()); err != nil {
					return err
				}
				sim.Observe(sink)
			}
			if trace {
				sim.Trace(func(snap sched.Snapshot) {
					if err := report.WriteSnapshot(out, snap); err != nil {
						logger.Warn("trace write failed", "err", err)
					}
				})
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			sum, runErr := sim.Run(ctx)
			if sink != nil {
				if err := sink.Flush(); err != nil {
					return fmt.Errorf("write csv log: %w", err)
				}
			}
			if runErr != nil && !errors.Is(runErr, sched.ErrTickLimit) {
				return runErr
			}

			fmt.Fprintf(out, "run %s: %d ticks, %d dispatches, %d preemptions, %d idle\n\n",
				sum.RunID, sum.Ticks, sum.Dispatches, sum.Preemptions, sum.IdleTicks)
			if err := report.WriteTable(out, report.Compute(sum.Results)); err != nil {
				return err
			}
			return runErr
		},
	}

	f := cmd.Flags()
	f.StringVar(&configPath, "config", "", "YAML config file (defaults apply when empty)")
	f.StringVar(&csvPath, "csv", "", "Write every scheduler event to this CSV file")
	f.BoolVar(&trace, "trace", false, "Print the scheduler state after every tick")
	f.Int64Var(&tick, "tick", 1, "Simulated units per tick")
	f.Float64Var(&granularity, "granularity", 1, "Vruntime lead required before preemption")
	f.Float64Var(&refWeight, "reference-weight", 1024, "Weight of a neutral task in the vruntime formula")
	f.Int64Var(&maxTicks, "max-ticks", 100000, "Stop after this many ticks")
	f.IntVar(&paceMS, "pace-ms", 0, "Wall-clock delay per tick in milliseconds")
	return cmd
}
