package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/AntonStoeckl/author-projection-benchmarks-go/benchrunner"
	"github.com/AntonStoeckl/author-projection-benchmarks-go/config"
	"github.com/AntonStoeckl/author-projection-benchmarks-go/shared/shell"
)

const (
	formatTable = "table"
	formatJSON  = "json"

	shutdownTimeout = 5 * time.Second

	logMsgPhaseTotals = "phase totals"
)

func (a *app) newRunCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Benchmark the three top author variants against each other",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if format != formatTable && format != formatJSON {
				return fmt.Errorf("%w: unknown format %q", config.ErrInvalidSettings, format)
			}

			tel := a.newTelemetry()
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()

				if err := tel.shutdown(ctx); err != nil {
					a.logger.Warn("telemetry shutdown failed", "error", err)
				}
			}()

			s, err := a.openSession(cmd.Context(), tel.storeOptions...)
			if err != nil {
				return err
			}
			defer s.Close()

			timing := shell.NewTimingCollector()
			obs := tel.observability
			obs.TimingCollector = timing

			handlers, err := benchrunner.NewHandlers(s.store, obs)
			if err != nil {
				return err
			}

			runner := benchrunner.Runner{
				Warmup:      a.settings.Warmup,
				Iterations:  a.settings.Iterations,
				Parallelism: a.settings.Parallel,
				Logger:      a.logger,
			}

			report, err := runner.Run(cmd.Context(), handlers.Variants()...)
			if err != nil {
				return err
			}

			a.logger.Info(logMsgPhaseTotals,
				"fetch_ms", shell.ToMilliseconds(timing.FetchTime()),
				"shape_ms", shell.ToMilliseconds(timing.ShapeTime()),
			)

			if format == formatJSON {
				return report.WriteJSON(a.stdout)
			}

			return report.WriteTable(a.stdout)
		},
	}

	cmd.Flags().Int("iterations", 100, "measured iterations per variant")
	cmd.Flags().Int("warmup", 10, "warmup iterations per variant")
	cmd.Flags().Int("parallel", 1, "concurrent invocations per iteration")
	cmd.Flags().StringVar(&format, "format", formatTable, "output format: table or json")

	a.bindFlag(cmd, "iterations", config.KeyIterations)
	a.bindFlag(cmd, "warmup", config.KeyWarmup)
	a.bindFlag(cmd, "parallel", config.KeyParallel)

	return cmd
}
