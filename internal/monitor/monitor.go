// Package monitor polls a window's bounds and reports changes.
package monitor

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/mj1618/window-monitor/internal/model"
	"github.com/mj1618/window-monitor/internal/output"
	"github.com/mj1618/window-monitor/internal/platform"
)

// Config holds configuration for the monitor.
type Config struct {
	Process  string
	Interval time.Duration
	// Duration bounds the session; zero runs until the context is cancelled.
	Duration time.Duration
	Logger   *slog.Logger
	// Now is the wall clock used to timestamp changes.
	Now func() time.Time
}

// Monitor tracks the most recently observed rectangle of one window.
type Monitor struct {
	process  string
	interval time.Duration
	duration time.Duration
	prober   platform.BoundsProber
	reporter output.Reporter
	logger   *slog.Logger
	now      func() time.Time

	last *model.WindowRect
}

// New creates a monitor. A non-positive interval defaults to 100ms.
func New(cfg Config, prober platform.BoundsProber, reporter output.Reporter) *Monitor {
	interval := cfg.Interval
	if interval <= 0 {
		interval = 100 * time.Millisecond
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Monitor{
		process:  cfg.Process,
		interval: interval,
		duration: cfg.Duration,
		prober:   prober,
		reporter: reporter,
		logger:   logger,
		now:      now,
	}
}

// Last returns the most recently reported rectangle, or nil before the first
// successful probe.
func (m *Monitor) Last() *model.WindowRect {
	if m.last == nil {
		return nil
	}
	r := *m.last
	return &r
}

// Poll runs one probe and reports the result if it differs from the last
// observation. Probe failures are treated as no data and leave the last
// observation untouched. It returns whether a change was reported.
func (m *Monitor) Poll(ctx context.Context) (bool, error) {
	rect, err := m.prober.WindowBounds(ctx, m.process)
	if err != nil {
		m.logger.Debug("no window data", "process", m.process, "error", err)
		return false, nil
	}

	change, ok := model.NextChange(m.last, rect, m.now())
	if !ok {
		return false, nil
	}
	if rect.Inverted() {
		m.logger.Debug("inverted window bounds", "process", m.process, "width", rect.Width, "height", rect.Height)
	}
	if err := m.reporter.Report(change); err != nil {
		return false, err
	}
	m.last = &rect
	return true, nil
}

// Run polls until ctx is cancelled or the configured duration elapses, then
// reports the stop notice. Cancellation is a normal exit and returns nil.
func (m *Monitor) Run(ctx context.Context) error {
	if m.duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.duration)
		defer cancel()
	}

	if err := m.reporter.Start(m.process); err != nil {
		return err
	}
	m.logger.Debug("monitor started", "process", m.process, "interval", m.interval)

	err := m.loop(ctx)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		err = nil
	}
	if err != nil {
		return err
	}

	m.logger.Debug("monitor stopped", "process", m.process)
	return m.reporter.Stop()
}

func (m *Monitor) loop(ctx context.Context) error {
	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}

		if _, err := m.Poll(ctx); err != nil {
			return err
		}
		timer.Reset(m.interval)
	}
}
