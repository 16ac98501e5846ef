package schedule

import (
	"context"
	"log/slog"
	"time"
)

// Controller is the start/stop surface a Runner drives. queue.Queue
// satisfies this interface.
type Controller interface {
	StartQ() error
	StopQ()
}

// Window is an activation window: the queue is started at each Open
// occurrence and stopped at each Close occurrence.
type Window struct {
	Open  Schedule
	Close Schedule
}

// transition is the next edge of a window.
type transition struct {
	at    time.Time
	start bool
}

// nextTransition computes the earliest upcoming edge across all windows.
// ok is false when there are no windows.
func nextTransition(windows []Window, from time.Time) (transition, bool) {
	var best transition
	found := false
	for _, w := range windows {
		for _, t := range []transition{
			{at: w.Open.Next(from), start: true},
			{at: w.Close.Next(from), start: false},
		} {
			if t.at.IsZero() {
				continue
			}
			if !found || t.at.Before(best.at) {
				best = t
				found = true
			}
		}
	}
	return best, found
}

// Runner starts and stops a queue at window edges.
type Runner struct {
	ctrl    Controller
	windows []Window
	logger  *slog.Logger
}

// NewRunner creates a runner driving ctrl over the given windows.
func NewRunner(ctrl Controller, windows ...Window) *Runner {
	return &Runner{ctrl: ctrl, windows: windows, logger: slog.Default()}
}

// SetLogger overrides the runner's logger.
func (r *Runner) SetLogger(l *slog.Logger) {
	if l != nil {
		r.logger = l
	}
}

// Start fires StartQ/StopQ at each window edge until the context is
// cancelled. Blocks. Returns immediately when no windows are configured.
func (r *Runner) Start(ctx context.Context) error {
	if len(r.windows) == 0 {
		return nil
	}

	now := time.Now()
	for {
		next, ok := nextTransition(r.windows, now)
		if !ok {
			return nil
		}

		timer := time.NewTimer(time.Until(next.at))
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		if next.start {
			if err := r.ctrl.StartQ(); err != nil {
				r.logger.Error("obsqueue: scheduled start failed", "error", err)
			} else {
				r.logger.Info("obsqueue: window opened, queue started", "at", next.at)
			}
		} else {
			r.ctrl.StopQ()
			r.logger.Info("obsqueue: window closed, queue stopped", "at", next.at)
		}

		// Step past the fired edge so the same occurrence is not re-found.
		now = next.at.Add(time.Second)
	}
}
