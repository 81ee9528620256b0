package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"tabtime/internal/sampler"
	"tabtime/internal/timelog"
	"tabtime/internal/timer"
)

func trackCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "track",
		Short: "Track time without the dashboard until interrupted",
		Long: `Run the attribution loop headless. Finalized sessions are printed as they
are logged. Ctrl+C closes the open session and saves everything.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			taskName, _ := cmd.Flags().GetString("task")
			interval, _ := cmd.Flags().GetDuration("interval")

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return runTrack(ctx, cmd, opts, sampler.New(), taskName, interval)
		},
	}

	cmd.Flags().StringP("task", "t", "", "Task to track (default: the saved selection)")
	cmd.Flags().Duration("interval", timer.DefaultInterval, "Sampling interval")

	return cmd
}

func runTrack(ctx context.Context, cmd *cobra.Command, opts *options, smp sampler.Sampler, taskName string, interval time.Duration) error {
	logger, err := opts.consoleLogger(cmd.ErrOrStderr(), "info")
	if err != nil {
		return err
	}

	s, err := opts.open(ctx, logger, smp)
	if err != nil {
		return err
	}

	if taskName != "" {
		if err := s.dash.SelectTask(taskName); err != nil {
			s.close()
			return err
		}
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Tracking (work processes: %v). Press Ctrl+C to stop.\n", s.dash.Settings().WorkProcesses)

	ticks := timer.NewSource(interval).Channel(ctx)
	for now := range ticks {
		res := s.dash.Tick(now)
		if res.Entry != nil {
			fmt.Fprintf(out, "logged %s\n", res.Entry)
		}
		if res.Nag != "" {
			fmt.Fprintf(out, "! %s\n", res.Nag)
		}
	}

	if err := s.shutdown(); err != nil {
		return err
	}

	today := s.dash.Totals(time.Now(), time.Now())
	fmt.Fprintf(out, "Total today: %s\n", timelog.FormatClock(today.Total))
	return nil
}
