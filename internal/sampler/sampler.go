// Package sampler reports which process owns the foreground window and how
// long the user has been idle. Implementations are best-effort and
// platform-specific.
package sampler

import (
	"context"
	"os/exec"
	"strings"
	"time"
)

// Sampler returns the foreground process name, or "" when it cannot tell.
type Sampler interface {
	ActiveProcessName() string
}

// IdleSampler is implemented by samplers that can report input idle time.
type IdleSampler interface {
	IdleDuration() (time.Duration, error)
}

// commandTimeout bounds each helper invocation so a hung tool cannot stall
// the one-second tick.
const commandTimeout = 500 * time.Millisecond

// Func adapts a plain function to Sampler.
type Func func() string

func (f Func) ActiveProcessName() string {
	return f()
}

// Static always reports the same process and idle time. Handy for tests and
// for the "none" platform.
type Static struct {
	Process string
	Idle    time.Duration
}

func (s *Static) ActiveProcessName() string {
	return s.Process
}

func (s *Static) IdleDuration() (time.Duration, error) {
	return s.Idle, nil
}

// run executes a helper command and returns its trimmed stdout.
func run(name string, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, name, args...).Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}
