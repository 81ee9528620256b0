package cli

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"tabtime/internal/timelog"
)

var (
	reportTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	reportDimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func reportCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show per-task totals and entries for a day",
		Args:  cobra.NoArgs,
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

			entries := s.dash.EntriesOn(day)
			writeReport(cmd.OutOrStdout(), day, s.dash.Totals(day, time.Now()), entries)
			return nil
		},
	}

	cmd.Flags().StringP("date", "d", "today", "Day to report: today, yesterday or YYYY-MM-DD")

	return cmd
}

func writeReport(w io.Writer, day time.Time, totals timelog.Totals, entries []timelog.Entry) {
	fmt.Fprintln(w, reportTitleStyle.Render("TabTime report for "+day.Format("Monday, Jan 02 2006")))
	fmt.Fprintln(w, strings.Repeat("=", 40))

	if len(entries) == 0 {
		fmt.Fprintln(w, reportDimStyle.Render("No time logged."))
		return
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%-20s | %s\n", "Task", "Time")
	fmt.Fprintln(w, strings.Repeat("-", 40))
	for _, tt := range totals.Sorted() {
		fmt.Fprintf(w, "%-20s | %s\n", tt.Task, timelog.FormatClock(tt.Total))
	}
	fmt.Fprintln(w, strings.Repeat("-", 40))
	fmt.Fprintf(w, "%-20s | %s\n", "Total", timelog.FormatClock(totals.Total))

	slices.SortStableFunc(entries, func(a, b timelog.Entry) int {
		return a.Start.Compare(b.Start)
	})

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%-15s | %-10s | %s\n", "Time Range", "Duration", "Task")
	fmt.Fprintln(w, strings.Repeat("-", 40))
	for _, e := range entries {
		span := fmt.Sprintf("%s-%s", e.Start.Format("15:04"), e.End.Format("15:04"))
		fmt.Fprintf(w, "%-15s | %-10s | %s\n", span, timelog.FormatClock(e.Duration()), e.Task)
	}
}
