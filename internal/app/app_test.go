package app

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewLoggerLevels(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger, err := NewLogger(&buf, "warn", false)
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}

	logger.Info().Msg("hidden")
	logger.Warn().Str("task", "Math").Msg("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("Expected info to be filtered at warn level")
	}
	if !strings.Contains(out, `"task":"Math"`) || !strings.Contains(out, `"timestamp"`) {
		t.Errorf("Expected structured warn line, got %q", out)
	}
}

func TestNewLoggerRejectsBadLevel(t *testing.T) {
	t.Parallel()

	if _, err := NewLogger(&bytes.Buffer{}, "loud", false); err == nil {
		t.Error("Expected error for unknown level")
	}
}

func TestOpenLogFile(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "nested")
	f, err := OpenLogFile(dir)
	if err != nil {
		t.Fatalf("OpenLogFile failed: %v", err)
	}
	defer f.Close()

	if _, err := os.Stat(filepath.Join(dir, LogFile)); err != nil {
		t.Errorf("Expected log file created: %v", err)
	}
}

func TestDefaultDataDirFromEnv(t *testing.T) {
	t.Setenv("TABTIME_DATA_DIR", "/tmp/tabtime-test")

	if got := DefaultDataDir(); got != "/tmp/tabtime-test" {
		t.Errorf("Expected env dir, got %q", got)
	}
}
