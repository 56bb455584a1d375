// Package applescript probes window bounds through osascript and the
// System Events scripting bridge.
package applescript

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/mj1618/window-monitor/internal/model"
	"github.com/mj1618/window-monitor/internal/platform"
)

// DefaultTimeout bounds a single osascript invocation.
const DefaultTimeout = 5 * time.Second

// Runner executes an external command and returns its standard output.
// A non-zero exit status must be reported as an error.
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

// ExecRunner runs the command with os/exec.
func ExecRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// Prober implements platform.BoundsProber using osascript.
type Prober struct {
	run     Runner
	timeout time.Duration
}

// NewProber returns a Prober. A nil runner uses ExecRunner and a
// non-positive timeout uses DefaultTimeout.
func NewProber(run Runner, timeout time.Duration) *Prober {
	if run == nil {
		run = ExecRunner
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Prober{run: run, timeout: timeout}
}

// WindowBounds asks System Events for the bounds of window 1 of process.
func (p *Prober) WindowBounds(ctx context.Context, process string) (model.WindowRect, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	out, err := p.run(ctx, "osascript", "-e", BoundsScript(process))
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return model.WindowRect{}, fmt.Errorf("osascript timed out after %s: %w", p.timeout, ctx.Err())
		}
		return model.WindowRect{}, fmt.Errorf("osascript: %w", err)
	}

	s := strings.TrimSpace(string(out))
	if s == "" {
		return model.WindowRect{}, platform.ErrNoWindow
	}
	return platform.ParseBounds(s)
}

// BoundsScript returns the AppleScript that reads the first window's bounds.
func BoundsScript(process string) string {
	return fmt.Sprintf(`tell application "System Events" to tell process "%s" to get bounds of window 1`, escapeString(process))
}

// escapeString escapes s for use inside an AppleScript string literal.
func escapeString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return s
}
