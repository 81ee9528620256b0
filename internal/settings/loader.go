package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"tabtime/internal/fsutil"
)

// EnvPrefix namespaces environment overrides, e.g. TABTIME_GRACE_TIMEOUT_SECONDS.
const EnvPrefix = "TABTIME"

// Load reads settings from a JSON file layered over defaults, then applies
// environment overrides. It never fails: a missing or unreadable file yields
// the defaults, and the problem is logged.
func Load(path string, logger zerolog.Logger) *Settings {
	v := newViper()

	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		v.SetConfigType("json")
		if err := v.ReadInConfig(); err != nil {
			logger.Warn().Err(err).Str("path", path).Msg("settings file unreadable, using defaults")
			v = newViper()
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		logger.Warn().Err(err).Str("path", path).Msg("failed to stat settings file")
	}

	cfg := Default()
	if err := v.Unmarshal(cfg); err != nil {
		logger.Warn().Err(err).Msg("failed to decode settings, using defaults")
		return Default()
	}
	return cfg
}

// Save writes settings as indented JSON.
func Save(path string, s *Settings) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	return fsutil.WriteFileAtomic(path, data, 0o644)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	d := Default()
	v.SetDefault("current_task", d.CurrentTask)
	v.SetDefault("theme", d.Theme)
	v.SetDefault("accent_color", d.AccentColor)
	v.SetDefault("grace_timeout_seconds", d.GraceTimeoutSeconds)
	v.SetDefault("idle_detection_enabled", d.IdleDetectionEnabled)
	v.SetDefault("idle_timeout_seconds", d.IdleTimeoutSeconds)
	v.SetDefault("focus_mode_enabled", d.FocusModeEnabled)
	v.SetDefault("focus_mode_nag_message", d.FocusModeNagMessage)
	v.SetDefault("focus_mode_nag_interval_seconds", d.FocusModeNagIntervalSeconds)
	v.SetDefault("work_processes", d.WorkProcesses)
	v.SetDefault("distraction_processes", d.DistractionProcesses)
	v.SetDefault("passive_processes", d.PassiveProcesses)
	v.SetDefault("backend", d.Backend)
	return v
}
