// Package core provides the domain models and interfaces for the obsqueue package.
package core

import (
	"context"
	"time"
)

// Status represents the current state of a queue entry.
type Status string

const (
	StatusQueued     Status = "queued"
	StatusPreparing  Status = "preparing"
	StatusDispatched Status = "dispatched"
	StatusError      Status = "error"
	StatusDone       Status = "done"
)

// Entry is the capability an observation job must provide to be held in a
// container and dispatched by a backend. The queue engine treats the payload
// as opaque; only the lifecycle below is consumed.
type Entry interface {
	// Label returns the caller-assigned name. Labels are not required
	// to be unique.
	Label() string

	Status() Status
	SetStatus(Status)

	// Duration returns the estimated execution time. ok is false when
	// no estimate is available.
	Duration() (d time.Duration, ok bool)

	// Group returns the job-group this entry belongs to, or nil when the
	// entry is not part of a group.
	Group() *Group

	// Prepare attempts an in-place normalization of the job and validates it.
	// A recognized, structurally unrecoverable problem is returned as a
	// FailureReason value, not an error. Recoverable problems get exactly one
	// automatic fix-and-reverify cycle before a FailureReason is surfaced.
	// Any other error is returned as err and must be treated as fatal by the
	// caller. On success both results are nil and the materialized artifact
	// references are recorded on the entry.
	Prepare(ctx context.Context) (*FailureReason, error)

	// Write materializes the prepared job and returns the ordered artifact
	// references it produced. An empty sequence signals failure.
	Write(ctx context.Context) ([]string, error)

	// Artifacts lists every artifact reference produced so far. Cleanup is an
	// explicit, caller-invoked operation working from this list; nothing is
	// removed implicitly when an entry is discarded.
	Artifacts() []string
}
