package backend

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/obsworks/obsqueue/pkg/core"
	"github.com/obsworks/obsqueue/pkg/entryctx"
	"github.com/obsworks/obsqueue/pkg/history"
)

// Transport hands a prepared entry's artifacts to the external control
// process. Implementations own all file/network I/O; the backend never
// inspects artifact contents.
type Transport interface {
	Send(ctx context.Context, e core.Entry, artifacts []string) error
}

// Reporter receives dispatch outcomes from the poll step. queue.Queue
// satisfies this interface.
type Reporter interface {
	EntryDispatched(ctx context.Context, e core.Entry, index int)
	PrepareFailed(ctx context.Context, e core.Entry, index int, reason *core.FailureReason)
}

// Backend polls an indexed container and dispatches the entry at the cursor.
// It implements core.Backend.
type Backend struct {
	mu       sync.RWMutex
	contents core.ObservableContents

	running atomic.Bool
	config  Config
	logger  *slog.Logger

	transport Transport
	reporter  Reporter
	hist      *history.Store
}

// New creates a backend.
func New(opts ...Option) *Backend {
	b := &Backend{
		config: DefaultConfig(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt.ApplyBackend(b)
	}
	return b
}

// ID returns the backend's identity, recorded on history rows.
func (b *Backend) ID() string {
	return b.config.BackendID
}

// SetContents binds the container this backend polls.
func (b *Backend) SetContents(c core.ObservableContents) {
	b.mu.Lock()
	b.contents = c
	b.mu.Unlock()
}

// Contents returns the bound container, or nil.
func (b *Backend) Contents() core.ObservableContents {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.contents
}

// Running reports the poll flag.
func (b *Backend) Running() bool {
	return b.running.Load()
}

// SetRunning flips the poll flag. Setting it false is the only cancellation
// mechanism; in-flight preparation of a single entry is not preemptible.
func (b *Backend) SetRunning(v bool) {
	b.running.Store(v)
}

// Start polls at the configured interval until the context is cancelled or
// a poll returns a fatal error. Blocks.
func (b *Backend) Start(ctx context.Context) error {
	ticker := time.NewTicker(b.config.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := b.Poll(ctx); err != nil {
				b.logger.Error("obsqueue: fatal poll error", "backend", b.config.BackendID, "error", err)
				return err
			}
		}
	}
}

// Poll performs one iteration: if running, fetch the entry at the cursor,
// prepare it, then dispatch or report. Structured preparation failures stop
// the queue and leave the cursor in place so the operator can edit the entry
// and resume; unclassified errors are returned and must be treated as fatal.
func (b *Backend) Poll(ctx context.Context) error {
	if !b.Running() {
		return nil
	}

	c := b.Contents()
	if c == nil {
		return core.ErrNoContents
	}

	// Atomic against mutations: the container records the dispatch index
	// and returns the entry and its position under one lock acquisition.
	e, index := c.GetForObservation()
	if e == nil {
		return nil
	}

	e.SetStatus(core.StatusPreparing)

	reason, err := e.Prepare(ctx)
	if err != nil {
		e.SetStatus(core.StatusError)
		return fmt.Errorf("obsqueue: prepare %s: %w", e.Label(), err)
	}
	if reason == nil {
		var artifacts []string
		artifacts, err = e.Write(ctx)
		if err != nil {
			e.SetStatus(core.StatusError)
			return fmt.Errorf("obsqueue: write %s: %w", e.Label(), err)
		}
		if len(artifacts) == 0 {
			reason = core.NewFailureReason(core.FailureWriteFailed, map[string]string{
				"entry": e.Label(),
			})
		} else {
			return b.dispatch(ctx, c, e, index, artifacts)
		}
	}

	// Structured failure: halt forward progress without touching the order.
	e.SetStatus(core.StatusError)
	b.SetRunning(false)
	b.logger.Warn("obsqueue: preparation failed, queue stopped",
		"entry", e.Label(), "index", index, "reason", reason.String())

	if b.reporter != nil {
		b.reporter.PrepareFailed(ctx, e, index, reason)
	}
	if b.hist != nil {
		if herr := b.hist.RecordFailure(ctx, b.config.BackendID, e, index, reason); herr != nil {
			b.logger.Error("obsqueue: history record failed", "error", herr)
		}
	}
	return nil
}

func (b *Backend) dispatch(ctx context.Context, c core.ObservableContents, e core.Entry, index int, artifacts []string) error {
	if b.transport != nil {
		sctx := entryctx.With(ctx, e)
		if err := b.transport.Send(sctx, e, artifacts); err != nil {
			// Transport faults are transient: the entry stays at the
			// cursor and is retried on the next tick.
			e.SetStatus(core.StatusQueued)
			b.logger.Warn("obsqueue: transport send failed, will retry",
				"entry", e.Label(), "error", err)
			return nil
		}
	}

	e.SetStatus(core.StatusDispatched)
	// Advance only if e still sits at the cursor. An operator edit during
	// preparation moves the cursor by its own rules; whatever it left there
	// is dispatched on the next tick rather than skipped.
	c.AdvanceFrom(e)
	b.logger.Info("obsqueue: entry dispatched",
		"entry", e.Label(), "index", index, "artifacts", len(artifacts))

	if b.reporter != nil {
		b.reporter.EntryDispatched(ctx, e, index)
	}
	if b.hist != nil {
		if herr := b.hist.RecordDispatch(ctx, b.config.BackendID, e, index); herr != nil {
			b.logger.Error("obsqueue: history record failed", "error", herr)
		}
	}
	return nil
}
