package app

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// LogFile receives log output while the dashboard owns the terminal.
const LogFile = "tabtime.log"

// NewLogger builds the application logger. console selects a human readable
// writer; otherwise lines are JSON.
func NewLogger(w io.Writer, level string, console bool) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log level %q: %w", level, err)
	}
	if lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	zerolog.TimestampFieldName = "timestamp"

	if console {
		cw := zerolog.NewConsoleWriter()
		cw.TimeFormat = time.DateTime
		cw.Out = w
		w = cw
	}

	return zerolog.New(w).
		Level(lvl).
		With().
		Timestamp().
		Int("pid", os.Getpid()).
		Logger(), nil
}

// OpenLogFile opens (appending) the log file in dir.
func OpenLogFile(dir string) (*os.File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	f, err := os.OpenFile(filepath.Join(dir, LogFile), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}
