package timelog

import (
	"fmt"
	"strings"
	"time"
)

// ParseDuration accepts a bare number of minutes or a Go duration string.
func ParseDuration(input string) (time.Duration, error) {
	var n int64
	var rest string
	if c, _ := fmt.Sscanf(input, "%d%s", &n, &rest); c == 1 {
		return time.Duration(n) * time.Minute, nil
	}

	d, err := time.ParseDuration(strings.TrimSpace(input))
	if err == nil {
		return d, nil
	}

	return 0, fmt.Errorf("invalid duration format: %q", input)
}

// ParseDay accepts "today", "yesterday" or YYYY-MM-DD, relative to now.
func ParseDay(input string, now time.Time) (time.Time, error) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "", "today":
		return StartOfDay(now), nil
	case "yesterday":
		return StartOfDay(now).AddDate(0, 0, -1), nil
	}

	d, err := time.ParseInLocation(time.DateOnly, strings.TrimSpace(input), time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD", input)
	}
	return d, nil
}

// ParseClock combines day's date with an HH:MM time of day.
func ParseClock(day time.Time, input string) (time.Time, error) {
	t, err := time.ParseInLocation("15:04", strings.TrimSpace(input), time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q: want HH:MM", input)
	}
	d := StartOfDay(day)
	return time.Date(d.Year(), d.Month(), d.Day(), t.Hour(), t.Minute(), 0, 0, time.Local), nil
}

// FormatClock renders a duration as HH:MM:SS with unbounded hours.
func FormatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Seconds())
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}
