//go:build linux

package sampler

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// X11 asks xdotool for the focused window's pid and reads the process name
// from procfs. Idle time comes from xprintidle.
type X11 struct {
	procRoot string
}

// New returns the sampler for this platform.
func New() Sampler {
	return &X11{procRoot: "/proc"}
}

func (x *X11) ActiveProcessName() string {
	out, err := run("xdotool", "getactivewindow", "getwindowpid")
	if err != nil {
		return ""
	}
	pid, err := strconv.Atoi(out)
	if err != nil || pid <= 0 {
		return ""
	}
	return x.processName(pid)
}

func (x *X11) processName(pid int) string {
	data, err := os.ReadFile(fmt.Sprintf("%s/%d/comm", x.procRoot, pid))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func (x *X11) IdleDuration() (time.Duration, error) {
	out, err := run("xprintidle")
	if err != nil {
		return 0, fmt.Errorf("xprintidle failed: %w", err)
	}
	ms, err := strconv.ParseInt(out, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("unexpected xprintidle output %q: %w", out, err)
	}
	return time.Duration(ms) * time.Millisecond, nil
}
