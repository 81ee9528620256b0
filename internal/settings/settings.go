package settings

import (
	"slices"
	"strings"
	"time"
)

const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// NoTask is the placeholder task name when nothing is selected.
const NoTask = "none"

// Settings is the user-editable configuration, persisted as settings.json.
type Settings struct {
	CurrentTask string `json:"current_task" mapstructure:"current_task" yaml:"current_task"`

	Theme       string `json:"theme" mapstructure:"theme" yaml:"theme"`
	AccentColor string `json:"accent_color" mapstructure:"accent_color" yaml:"accent_color"`

	GraceTimeoutSeconds  int  `json:"grace_timeout_seconds" mapstructure:"grace_timeout_seconds" yaml:"grace_timeout_seconds"`
	IdleDetectionEnabled bool `json:"idle_detection_enabled" mapstructure:"idle_detection_enabled" yaml:"idle_detection_enabled"`
	IdleTimeoutSeconds   int  `json:"idle_timeout_seconds" mapstructure:"idle_timeout_seconds" yaml:"idle_timeout_seconds"`

	FocusModeEnabled            bool   `json:"focus_mode_enabled" mapstructure:"focus_mode_enabled" yaml:"focus_mode_enabled"`
	FocusModeNagMessage         string `json:"focus_mode_nag_message" mapstructure:"focus_mode_nag_message" yaml:"focus_mode_nag_message"`
	FocusModeNagIntervalSeconds int    `json:"focus_mode_nag_interval_seconds" mapstructure:"focus_mode_nag_interval_seconds" yaml:"focus_mode_nag_interval_seconds"`

	WorkProcesses        []string `json:"work_processes" mapstructure:"work_processes" yaml:"work_processes"`
	DistractionProcesses []string `json:"distraction_processes" mapstructure:"distraction_processes" yaml:"distraction_processes"`
	PassiveProcesses     []string `json:"passive_processes" mapstructure:"passive_processes" yaml:"passive_processes"`

	Backend string `json:"backend" mapstructure:"backend" yaml:"backend"`
}

// Default returns the settings used when no file exists.
func Default() *Settings {
	return &Settings{
		CurrentTask:                 NoTask,
		Theme:                       "Light",
		AccentColor:                 "#2195F2",
		GraceTimeoutSeconds:         120,
		IdleDetectionEnabled:        true,
		IdleTimeoutSeconds:          300,
		FocusModeEnabled:            false,
		FocusModeNagMessage:         "Focus mode is on!",
		FocusModeNagIntervalSeconds: 60,
		WorkProcesses:               []string{},
		DistractionProcesses:        []string{},
		PassiveProcesses:            []string{},
		Backend:                     BackendJSON,
	}
}

// Clone returns a deep copy.
func (s *Settings) Clone() *Settings {
	c := *s
	c.WorkProcesses = slices.Clone(s.WorkProcesses)
	c.DistractionProcesses = slices.Clone(s.DistractionProcesses)
	c.PassiveProcesses = slices.Clone(s.PassiveProcesses)
	return &c
}

func (s *Settings) GraceTimeout() time.Duration {
	return seconds(s.GraceTimeoutSeconds, 120)
}

func (s *Settings) IdleTimeout() time.Duration {
	return seconds(s.IdleTimeoutSeconds, 300)
}

func (s *Settings) NagInterval() time.Duration {
	return seconds(s.FocusModeNagIntervalSeconds, 60)
}

// IsWorkProcess reports whether process contains any work pattern.
func (s *Settings) IsWorkProcess(process string) bool {
	return matchAny(s.WorkProcesses, process)
}

func (s *Settings) IsDistraction(process string) bool {
	return matchAny(s.DistractionProcesses, process)
}

func (s *Settings) IsPassive(process string) bool {
	return matchAny(s.PassiveProcesses, process)
}

// SelectedTask returns CurrentTask with the placeholder mapped to "".
func (s *Settings) SelectedTask() string {
	if s.CurrentTask == NoTask {
		return ""
	}
	return s.CurrentTask
}

// matchAny is a case-insensitive substring match. Blank patterns never match.
func matchAny(patterns []string, process string) bool {
	process = strings.ToLower(strings.TrimSpace(process))
	if process == "" {
		return false
	}
	for _, p := range patterns {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" && strings.Contains(process, p) {
			return true
		}
	}
	return false
}

func seconds(n, fallback int) time.Duration {
	if n <= 0 {
		n = fallback
	}
	return time.Duration(n) * time.Second
}
