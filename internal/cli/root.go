// Package cli wires the tabtime command tree.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"tabtime/internal/app"
	"tabtime/internal/dashboard"
	"tabtime/internal/sampler"
	"tabtime/internal/settings"
	"tabtime/internal/storage"
)

var envReplacer = strings.NewReplacer("-", "_")

// options holds the global flags. Each flag can also be set through a
// TABTIME_* environment variable.
type options struct {
	v *viper.Viper
}

func (o *options) dataDir() string {
	if dir := o.v.GetString("data-dir"); dir != "" {
		return dir
	}
	return app.DefaultDataDir()
}

// logLevel returns the configured level, or fallback when none was given.
func (o *options) logLevel(fallback string) string {
	if lvl := o.v.GetString("log-level"); lvl != "" {
		return lvl
	}
	return fallback
}

func (o *options) settingsPath() string {
	return filepath.Join(o.dataDir(), storage.SettingsFile)
}

// session is everything a command needs to work on the user's data.
type session struct {
	dash     *dashboard.Dashboard
	store    storage.Store
	settings *settings.Manager
	logger   zerolog.Logger
}

func (s *session) close() {
	s.dash.Close()
	if err := s.store.Close(); err != nil {
		s.logger.Error().Err(err).Msg("failed to close store")
	}
}

// shutdown finalizes tracking before closing.
func (s *session) shutdown() error {
	err := s.dash.Shutdown()
	if cerr := s.store.Close(); cerr != nil {
		s.logger.Error().Err(cerr).Msg("failed to close store")
	}
	return err
}

// open loads settings and data from the data directory. The --backend flag
// wins over the backend named in settings.
func (o *options) open(ctx context.Context, logger zerolog.Logger, smp sampler.Sampler) (*session, error) {
	dir := o.dataDir()
	mgr := settings.NewManager(settings.NewFileStore(o.settingsPath(), logger), logger)

	backend := o.v.GetString("backend")
	if backend == "" {
		backend = mgr.Current().Backend
	}
	store, err := storage.Open(backend, dir, logger.With().Str("component", "storage").Logger())
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	if smp == nil {
		smp = &sampler.Static{}
	}
	d := dashboard.New(store, mgr, smp, logger)
	d.Load(ctx)

	return &session{dash: d, store: store, settings: mgr, logger: logger}, nil
}

// consoleLogger writes human readable lines to w.
func (o *options) consoleLogger(w io.Writer, fallback string) (zerolog.Logger, error) {
	return app.NewLogger(w, o.logLevel(fallback), true)
}

// NewRootCmd builds a fresh command tree. Running it without a subcommand
// opens the dashboard.
func NewRootCmd(version string) *cobra.Command {
	opts := &options{v: viper.New()}
	opts.v.SetEnvPrefix(settings.EnvPrefix)
	opts.v.AutomaticEnv()
	opts.v.SetEnvKeyReplacer(envReplacer)

	root := &cobra.Command{
		Use:   "tabtime",
		Short: "TabTime - automatic time tracking from the foreground window",
		Long: `TabTime watches which application is in the foreground and attributes
work time to the selected task. Time spent away from work apps is held in a
grace period before the session is closed and logged.`,
		Version:       version,
		RunE:          func(cmd *cobra.Command, args []string) error { return runDashboard(cmd, opts) },
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.String("data-dir", "", "Directory holding settings and data (default: user config dir)")
	flags.String("log-level", "", "Log level (debug, info, warn, error)")
	flags.String("backend", "", "Storage backend (json, sqlite); overrides settings")
	_ = opts.v.BindPFlags(flags)

	root.AddCommand(trackCmd(opts))
	root.AddCommand(reportCmd(opts))
	root.AddCommand(tasksCmd(opts))
	root.AddCommand(logCmd(opts))
	root.AddCommand(configCmd(opts))

	return root
}

// Execute runs the command tree against os.Args.
func Execute(version string) error {
	if err := NewRootCmd(version).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}
