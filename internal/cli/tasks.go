package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func tasksCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "List tasks with today's totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openQuiet(cmd, opts)
			if err != nil {
				return err
			}
			defer s.close()

			out := cmd.OutOrStdout()
			now := time.Now()
			tasks := s.dash.Tasks(now)
			if len(tasks) == 0 {
				fmt.Fprintln(out, "No tasks yet. Add one with 'tabtime tasks add NAME'.")
				return nil
			}

			selected := s.dash.Status(now).Selected
			for _, t := range tasks {
				marker := " "
				if t.Name == selected {
					marker = "*"
				}
				fmt.Fprintf(out, "%s %-20s %s\n", marker, t.Name, t.TotalFormatted())
			}
			return nil
		},
	}

	cmd.AddCommand(tasksAddCmd(opts))
	cmd.AddCommand(tasksRemoveCmd(opts))
	cmd.AddCommand(tasksRenameCmd(opts))
	cmd.AddCommand(tasksSelectCmd(opts))

	return cmd
}

func tasksAddCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Add a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openQuiet(cmd, opts)
			if err != nil {
				return err
			}
			defer s.close()

			if err := s.dash.AddTask(args[0]); err != nil {
				return err
			}
			if color, _ := cmd.Flags().GetString("color"); color != "" {
				if err := s.dash.SetTaskColor(args[0], color); err != nil {
					return err
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added task %q\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringP("color", "c", "", "Display color (hex or ANSI number)")

	return cmd
}

func tasksRemoveCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:     "remove NAME",
		Aliases: []string{"rm"},
		Short:   "Remove a task; its logged time is kept",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openQuiet(cmd, opts)
			if err != nil {
				return err
			}
			if err := s.dash.RemoveTask(args[0]); err != nil {
				s.close()
				return err
			}
			// shutdown saves the selection, which may have followed the change
			if err := s.shutdown(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed task %q\n", args[0])
			return nil
		},
	}
}

func tasksRenameCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "rename OLD NEW",
		Short: "Rename a task; past entries keep the old name",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openQuiet(cmd, opts)
			if err != nil {
				return err
			}
			if err := s.dash.RenameTask(args[0], args[1]); err != nil {
				s.close()
				return err
			}
			// shutdown saves the selection, which may have followed the change
			if err := s.shutdown(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Renamed %q to %q\n", args[0], args[1])
			return nil
		},
	}
}

// tasksSelectCmd stores the selection used by the next dashboard or track
// run.
func tasksSelectCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "select NAME",
		Short: "Select the task to track",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openQuiet(cmd, opts)
			if err != nil {
				return err
			}
			if err := s.dash.SelectTask(args[0]); err != nil {
				s.close()
				return err
			}
			if err := s.shutdown(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Selected %q\n", args[0])
			return nil
		},
	}
}

// openQuiet opens the user's data for a one-shot command, logging warnings
// and worse to stderr.
func openQuiet(cmd *cobra.Command, opts *options) (*session, error) {
	logger, err := opts.consoleLogger(cmd.ErrOrStderr(), "warn")
	if err != nil {
		return nil, err
	}
	return opts.open(cmd.Context(), logger, nil)
}
