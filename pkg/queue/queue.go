package queue

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/obsworks/obsqueue/pkg/core"
	"github.com/obsworks/obsqueue/pkg/security"
)

// Queue binds one container to one backend and controls dispatch. There is
// exactly one active consumer cursor; starting the queue only flips the
// backend's running flag, it does not spawn workers.
type Queue struct {
	mu         sync.RWMutex
	contents   core.ObservableContents
	backend    core.Backend
	entryClass string
	logger     *slog.Logger

	// Hooks
	onDispatch []func(context.Context, core.Entry)
	onFailure  []func(context.Context, core.Entry, *core.FailureReason)

	// Event stream
	eventSubs []chan core.Event
}

// New creates a Queue.
func New(opts ...Option) *Queue {
	q := &Queue{logger: slog.Default()}
	for _, opt := range opts {
		opt.Apply(q)
	}
	return q
}

// Contents returns the bound container, or nil.
func (q *Queue) Contents() core.ObservableContents {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.contents
}

// SetContents binds the container the backend polls. A nil value is rejected
// with a warning, leaving the prior container in place.
func (q *Queue) SetContents(c core.ObservableContents) bool {
	if c == nil {
		q.logger.Warn("obsqueue: rejecting nil contents, keeping prior container")
		return false
	}
	q.mu.Lock()
	q.contents = c
	b := q.backend
	q.mu.Unlock()

	if b != nil {
		b.SetContents(c)
	}
	return true
}

// Backend returns the bound backend, or nil.
func (q *Queue) Backend() core.Backend {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.backend
}

// SetBackend binds the backend driven by this queue. A nil value is rejected
// with a warning, leaving the prior backend in place. An already-bound
// container is handed to the new backend.
func (q *Queue) SetBackend(b core.Backend) bool {
	if b == nil {
		q.logger.Warn("obsqueue: rejecting nil backend, keeping prior backend")
		return false
	}
	q.mu.Lock()
	q.backend = b
	c := q.contents
	q.mu.Unlock()

	if c != nil {
		b.SetContents(c)
	}
	return true
}

// EntryClass returns the declared entry implementation name.
func (q *Queue) EntryClass() string {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.entryClass
}

// SetEntryClass declares which Entry implementation this queue expects.
// The name is used by external code constructing entries; the core does not
// enforce it.
func (q *Queue) SetEntryClass(name string) error {
	if err := security.ValidateLabel(name); err != nil {
		return err
	}
	q.mu.Lock()
	q.entryClass = name
	q.mu.Unlock()
	return nil
}

// StartQ sets the backend running.
func (q *Queue) StartQ() error {
	b := q.Backend()
	if b == nil {
		return core.ErrNoBackend
	}
	b.SetRunning(true)
	q.logger.Info("obsqueue: queue started")
	q.Emit(&core.QueueStarted{Timestamp: time.Now()})
	return nil
}

// StopQ stops the backend. In-flight preparation of a single entry is not
// preemptible, but no further entries are polled.
func (q *Queue) StopQ() {
	b := q.Backend()
	if b == nil {
		return
	}
	b.SetRunning(false)
	q.logger.Info("obsqueue: queue stopped")
	q.Emit(&core.QueueStopped{Timestamp: time.Now()})
}

// Running reports whether the backend is polling.
func (q *Queue) Running() bool {
	b := q.Backend()
	return b != nil && b.Running()
}

// RemainingTime sums the duration estimates from the cursor to the end of
// the bound container; zero when no container is bound.
func (q *Queue) RemainingTime() time.Duration {
	c := q.Contents()
	if c == nil {
		return 0
	}
	return c.RemainingTime()
}

// OnDispatch registers a callback for when an entry is dispatched.
func (q *Queue) OnDispatch(fn func(context.Context, core.Entry)) {
	q.mu.Lock()
	q.onDispatch = append(q.onDispatch, fn)
	q.mu.Unlock()
}

// OnFailure registers a callback for when preparation of an entry produced
// a FailureReason.
func (q *Queue) OnFailure(fn func(context.Context, core.Entry, *core.FailureReason)) {
	q.mu.Lock()
	q.onFailure = append(q.onFailure, fn)
	q.mu.Unlock()
}

// EntryDispatched reports a successful dispatch: hooks run, then an event is
// emitted. Backends call this from their poll step.
func (q *Queue) EntryDispatched(ctx context.Context, e core.Entry, index int) {
	q.mu.RLock()
	hooks := make([]func(context.Context, core.Entry), len(q.onDispatch))
	copy(hooks, q.onDispatch)
	q.mu.RUnlock()

	for _, fn := range hooks {
		fn(ctx, e)
	}
	q.Emit(&core.EntryDispatched{Label: e.Label(), Index: index, Timestamp: time.Now()})
}

// PrepareFailed reports a structured preparation failure: hooks run, then an
// event is emitted. Backends call this from their poll step.
func (q *Queue) PrepareFailed(ctx context.Context, e core.Entry, index int, reason *core.FailureReason) {
	q.mu.RLock()
	hooks := make([]func(context.Context, core.Entry, *core.FailureReason), len(q.onFailure))
	copy(hooks, q.onFailure)
	q.mu.RUnlock()

	for _, fn := range hooks {
		fn(ctx, e, reason)
	}
	q.Emit(&core.PrepareFailed{Label: e.Label(), Index: index, Reason: reason, Timestamp: time.Now()})
}

// Events returns a channel for receiving queue events.
// The caller must call Unsubscribe when done to prevent resource leaks.
func (q *Queue) Events() <-chan core.Event {
	ch := make(chan core.Event, 100)
	q.mu.Lock()
	q.eventSubs = append(q.eventSubs, ch)
	q.mu.Unlock()
	return ch
}

// Unsubscribe removes a subscriber channel created by Events(). The channel
// is not closed. Emit sends while holding the subscriber lock, so once
// Unsubscribe returns no further events are delivered; events buffered
// before that may still be pending on the channel.
func (q *Queue) Unsubscribe(ch <-chan core.Event) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for i, sub := range q.eventSubs {
		if sub == ch {
			q.eventSubs = append(q.eventSubs[:i], q.eventSubs[i+1:]...)
			return
		}
	}
}

// Emit emits an event to all subscribers. Sends are non-blocking, so holding
// the lock across the loop is safe and makes Unsubscribe a hard cutoff.
func (q *Queue) Emit(e core.Event) {
	q.mu.RLock()
	defer q.mu.RUnlock()

	for _, ch := range q.eventSubs {
		select {
		case ch <- e:
		default:
			// Drop if full - this prevents blocking on slow consumers
		}
	}
}
