//go:build darwin

package sampler

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

const frontmostScript = `tell application "System Events" to get name of first application process whose frontmost is true`

var hidIdleRe = regexp.MustCompile(`"HIDIdleTime"\s*=\s*(\d+)`)

// Darwin uses osascript for the frontmost process and ioreg for idle time.
type Darwin struct{}

// New returns the sampler for this platform.
func New() Sampler {
	return &Darwin{}
}

func (Darwin) ActiveProcessName() string {
	out, err := run("osascript", "-e", frontmostScript)
	if err != nil {
		return ""
	}
	return out
}

// IdleDuration parses HIDIdleTime (nanoseconds since last input).
func (Darwin) IdleDuration() (time.Duration, error) {
	out, err := run("/usr/sbin/ioreg", "-c", "IOHIDSystem")
	if err != nil {
		return 0, fmt.Errorf("ioreg failed: %w", err)
	}
	return parseHIDIdle(out)
}

func parseHIDIdle(out string) (time.Duration, error) {
	m := hidIdleRe.FindStringSubmatch(out)
	if m == nil {
		return 0, fmt.Errorf("HIDIdleTime not found")
	}
	ns, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0, err
	}
	return time.Duration(ns), nil
}
