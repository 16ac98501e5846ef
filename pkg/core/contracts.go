package core

import (
	"context"
	"time"
)

// ObservableContents is the view of a container a backend polls. The
// GetForObservation call is the sole read path used to fetch the next job;
// it records dispatch history on the container and reports the position the
// entry was fetched from, all under one lock acquisition. AdvanceFrom is the
// matching write path: the cursor moves forward only when the fetched entry
// still sits on it, so a mutation interleaving with preparation can never
// make the backend skip an entry it has not dispatched.
type ObservableContents interface {
	Count() int
	CurIndex() (int, bool)
	GetForObservation() (Entry, int)
	AdvanceFrom(e Entry) bool
	RemainingTime() time.Duration
}

// Backend is the capability the queue drives. A backend polls the bound
// container for the entry at the cursor, invokes its preparation protocol,
// and either dispatches it or surfaces the failure.
type Backend interface {
	// SetContents binds the container this backend polls.
	SetContents(ObservableContents)
	Contents() ObservableContents

	// Running reports the poll flag; SetRunning(false) is the only
	// cancellation mechanism. In-flight preparation of a single entry is
	// not preemptible, but no further entries are polled once stopped.
	Running() bool
	SetRunning(bool)

	// Poll performs one iteration: if running, fetch the entry at the
	// cursor, prepare it, then dispatch or report. A returned error is an
	// unclassified fault and must be treated as fatal by the caller.
	Poll(ctx context.Context) error
}
