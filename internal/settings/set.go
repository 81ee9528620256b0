package settings

import (
	"fmt"
	"strconv"
	"strings"
)

// Set assigns one setting from its text form. key is the settings.json name;
// list values are comma separated.
func (s *Settings) Set(key, value string) error {
	value = strings.TrimSpace(value)
	switch key {
	case "current_task":
		s.CurrentTask = value
	case "theme":
		s.Theme = value
	case "accent_color":
		s.AccentColor = value
	case "focus_mode_nag_message":
		s.FocusModeNagMessage = value
	case "grace_timeout_seconds":
		return setInt(&s.GraceTimeoutSeconds, key, value)
	case "idle_timeout_seconds":
		return setInt(&s.IdleTimeoutSeconds, key, value)
	case "focus_mode_nag_interval_seconds":
		return setInt(&s.FocusModeNagIntervalSeconds, key, value)
	case "idle_detection_enabled":
		return setBool(&s.IdleDetectionEnabled, key, value)
	case "focus_mode_enabled":
		return setBool(&s.FocusModeEnabled, key, value)
	case "work_processes":
		s.WorkProcesses = splitList(value)
	case "distraction_processes":
		s.DistractionProcesses = splitList(value)
	case "passive_processes":
		s.PassiveProcesses = splitList(value)
	case "backend":
		if value != BackendJSON && value != BackendSQLite {
			return fmt.Errorf("invalid backend %q: want %s or %s", value, BackendJSON, BackendSQLite)
		}
		s.Backend = value
	default:
		return fmt.Errorf("unknown setting %q", key)
	}
	return nil
}

func setInt(dst *int, key, value string) error {
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return fmt.Errorf("invalid value for %s: %q is not a positive number", key, value)
	}
	*dst = n
	return nil
}

func setBool(dst *bool, key, value string) error {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	*dst = b
	return nil
}

func splitList(value string) []string {
	out := []string{}
	for _, p := range strings.Split(value, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
