package cli

import (
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"tabtime/internal/app"
	"tabtime/internal/settings"
	"tabtime/internal/storage"
)

func configCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect TabTime configuration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show effective settings (file, environment and defaults)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := opts.consoleLogger(cmd.ErrOrStderr(), "warn")
			if err != nil {
				return err
			}
			cfg := settings.Load(opts.settingsPath(), logger)

			data, err := yaml.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("failed to marshal settings: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "# %s\n", opts.settingsPath())
			fmt.Fprint(out, string(data))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show data file paths",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			dir := opts.dataDir()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Data dir:  %s\n", dir)
			fmt.Fprintf(out, "Settings:  %s\n", opts.settingsPath())
			fmt.Fprintf(out, "Time logs: %s\n", filepath.Join(dir, storage.TimeLogsFile))
			fmt.Fprintf(out, "Database:  %s\n", filepath.Join(dir, storage.DatabaseFile))
			fmt.Fprintf(out, "Log file:  %s\n", filepath.Join(dir, app.LogFile))
		},
	})

	cmd.AddCommand(configSetCmd(opts))

	return cmd
}

// configSetCmd edits one setting by its settings.json key.
func configSetCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Change one setting, e.g. 'config set grace_timeout_seconds 90'",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr := settings.NewManager(settings.NewFileStore(opts.settingsPath(), zerolog.Nop()), zerolog.Nop())

			if err := mgr.Current().Set(args[0], args[1]); err != nil {
				return err
			}
			if err := mgr.Update(func(s *settings.Settings) { _ = s.Set(args[0], args[1]) }); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Config updated: %s=%s\n", args[0], args[1])
			return nil
		},
	}
}
