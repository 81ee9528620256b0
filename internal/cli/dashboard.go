package cli

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"tabtime/internal"
	"tabtime/internal/app"
	"tabtime/internal/sampler"
	"tabtime/internal/timer"
)

// runDashboard owns the terminal, so logs go to tabtime.log in the data
// directory instead.
func runDashboard(cmd *cobra.Command, opts *options) error {
	logFile, err := app.OpenLogFile(opts.dataDir())
	if err != nil {
		return err
	}
	defer logFile.Close()

	logger, err := app.NewLogger(logFile, opts.logLevel("info"), false)
	if err != nil {
		return err
	}

	s, err := opts.open(cmd.Context(), logger, sampler.New())
	if err != nil {
		return err
	}

	m := internal.NewModel(s.dash, time.Now)
	p := tea.NewProgram(m, tea.WithAltScreen())

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	go timer.NewSource(timer.DefaultInterval).Run(ctx, func(now time.Time) {
		p.Send(internal.MsgTick{Time: now})
	})

	_, runErr := p.Run()
	cancel()

	if err := s.shutdown(); err != nil {
		logger.Error().Err(err).Msg("shutdown failed")
	}
	if runErr != nil {
		return fmt.Errorf("error running program: %w", runErr)
	}
	return nil
}
