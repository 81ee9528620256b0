package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"tabtime/internal/timelog"
)

func logCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Manage time log entries",
	}

	cmd.AddCommand(logAddCmd(opts))
	cmd.AddCommand(logListCmd(opts))
	cmd.AddCommand(logDeleteCmd(opts))

	return cmd
}

func logAddCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add TASK",
		Short: "Add a manual entry",
		Long: `Add a manual entry for TASK on --date starting at --start. The end is
either --end (HH:MM) or --duration (minutes or a duration like 1h30m).
An end not after the start is corrected to one hour after it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, _ := cmd.Flags().GetString("date")
			startStr, _ := cmd.Flags().GetString("start")
			endStr, _ := cmd.Flags().GetString("end")
			durStr, _ := cmd.Flags().GetString("duration")

			start, end, err := entryInterval(time.Now(), date, startStr, endStr, durStr)
			if err != nil {
				return err
			}

			s, err := openQuiet(cmd, opts)
			if err != nil {
				return err
			}
			defer s.close()

			e, err := s.dash.AddManualEntry(args[0], start, end)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged %s %s [%s]\n", e, timelog.FormatClock(e.Duration()), e.ID)
			return nil
		},
	}

	cmd.Flags().StringP("date", "d", "today", "Day of the entry: today, yesterday or YYYY-MM-DD")
	cmd.Flags().StringP("start", "s", "", "Start time (HH:MM)")
	cmd.Flags().StringP("end", "e", "", "End time (HH:MM)")
	cmd.Flags().String("duration", "", "Length instead of --end")
	_ = cmd.MarkFlagRequired("start")
	cmd.MarkFlagsMutuallyExclusive("end", "duration")

	return cmd
}

// entryInterval resolves the add flags into a start and end.
func entryInterval(now time.Time, date, startStr, endStr, durStr string) (time.Time, time.Time, error) {
	day, err := timelog.ParseDay(date, now)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	start, err := timelog.ParseClock(day, startStr)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	switch {
	case durStr != "":
		d, err := timelog.ParseDuration(durStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		return start, start.Add(d), nil
	case endStr != "":
		end, err := timelog.ParseClock(day, endStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		return start, end, nil
	}
	return time.Time{}, time.Time{}, errors.New("one of --end or --duration is required")
}

func logListCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List entries for a day with their ids",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			date, _ := cmd.Flags().GetString("date")
			day, err := timelog.ParseDay(date, time.Now())
			if err != nil {
				return err
			}

			s, err := openQuiet(cmd, opts)
			if err != nil {
				return err
			}
			defer s.close()

			out := cmd.OutOrStdout()
			for _, e := range s.dash.EntriesOn(day) {
				fmt.Fprintf(out, "%s  %s  %s\n", e.ID, e, timelog.FormatClock(e.Duration()))
			}
			return nil
		},
	}

	cmd.Flags().StringP("date", "d", "today", "Day to list: today, yesterday or YYYY-MM-DD")

	return cmd
}

func logDeleteCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:     "delete ID...",
		Aliases: []string{"rm"},
		Short:   "Delete entries by id",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openQuiet(cmd, opts)
			if err != nil {
				return err
			}
			defer s.close()

			n, err := s.dash.BulkDelete(args)
			if err != nil {
				return err
			}
			if n == 0 {
				return fmt.Errorf("failed to delete entries: %w", timelog.ErrEntryNotFound)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d entries\n", n)
			return nil
		},
	}
}
