// Package obsqueue provides a single-consumer job queue that feeds discrete
// units of work to an external execution backend, one at a time, in a
// strictly controllable order.
//
// This is the main package users should import. It re-exports all public
// types from the internal pkg/ packages for a clean API surface.
//
// Basic usage:
//
//	// Build a clipboard-backed container and load entries
//	c := obsqueue.NewPasteBuff(entries...)
//
//	// Create a backend dispatching into a hand-off directory
//	be := obsqueue.NewBackend(
//	    obsqueue.WithTransport(obsqueue.NewDirTransport("/ocs/handoff")),
//	)
//
//	// Bind them and start dispatching
//	q := obsqueue.NewQueue(
//	    obsqueue.WithContents(c),
//	    obsqueue.WithQueueBackend(be),
//	)
//	q.StartQ()
//	go be.Start(ctx)
package obsqueue

import (
	"context"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/obsworks/obsqueue/pkg/backend"
	"github.com/obsworks/obsqueue/pkg/config"
	"github.com/obsworks/obsqueue/pkg/contents"
	"github.com/obsworks/obsqueue/pkg/core"
	"github.com/obsworks/obsqueue/pkg/entryctx"
	"github.com/obsworks/obsqueue/pkg/history"
	"github.com/obsworks/obsqueue/pkg/queue"
	"github.com/obsworks/obsqueue/pkg/schedule"
	"github.com/obsworks/obsqueue/pkg/security"
)

// Type aliases for the public surface
type (
	// Entry is the capability an observation job must provide.
	Entry = core.Entry

	// Status represents the current state of a queue entry.
	Status = core.Status

	// Group identifies a set of entries cut as a unit.
	Group = core.Group

	// FailureReason describes why a job could not be prepared for dispatch.
	FailureReason = core.FailureReason

	// FailureKind tags the class of a preparation failure.
	FailureKind = core.FailureKind

	// ObservableContents is the container view a backend polls.
	ObservableContents = core.ObservableContents

	// Event is the interface for all queue events.
	Event = core.Event

	// QueueStarted is emitted when the queue's backend is set running.
	QueueStarted = core.QueueStarted

	// QueueStopped is emitted when the queue's backend is stopped.
	QueueStopped = core.QueueStopped

	// EntryDispatched is emitted when an entry is handed to the control process.
	EntryDispatched = core.EntryDispatched

	// PrepareFailed is emitted when preparation produced a FailureReason.
	PrepareFailed = core.PrepareFailed

	// Contents is the base insertion-ordered container.
	Contents = contents.Contents

	// Indexed is the cursor-bearing container.
	Indexed = contents.Indexed

	// PasteBuff is the clipboard-backed container.
	PasteBuff = contents.PasteBuff

	// Queue binds one container to one backend.
	Queue = queue.Queue

	// QueueOption configures a Queue.
	QueueOption = queue.Option

	// Backend polls a container and dispatches the entry at the cursor.
	Backend = backend.Backend

	// BackendOption configures a Backend.
	BackendOption = backend.Option

	// Transport hands prepared artifacts to the external control process.
	Transport = backend.Transport

	// DirTransport writes hand-off files into a watched directory.
	DirTransport = backend.DirTransport

	// HistoryStore is the gorm-backed dispatch audit log.
	HistoryStore = history.Store

	// DispatchRecord is one row of the dispatch audit log.
	DispatchRecord = history.DispatchRecord

	// Schedule computes the next occurrence of a recurring instant.
	Schedule = schedule.Schedule

	// Window is a queue activation window.
	Window = schedule.Window

	// Runner starts and stops a queue at window edges.
	Runner = schedule.Runner

	// Config holds file-driven queue settings.
	Config = config.Config
)

// Status constants
const (
	StatusQueued     = core.StatusQueued
	StatusPreparing  = core.StatusPreparing
	StatusDispatched = core.StatusDispatched
	StatusError      = core.StatusError
	StatusDone       = core.StatusDone
)

// Failure kinds
const (
	FailurePrecondition  = core.FailurePrecondition
	FailureMissingTarget = core.FailureMissingTarget
	FailureWriteFailed   = core.FailureWriteFailed
)

// Error variables
var (
	ErrOutOfRange   = core.ErrOutOfRange
	ErrBadPosition  = core.ErrBadPosition
	ErrNoContents   = core.ErrNoContents
	ErrNoBackend    = core.ErrNoBackend
	ErrInvalidLabel = core.ErrInvalidLabel
	ErrLabelTooLong = core.ErrLabelTooLong
)

// Security limits
const (
	MaxLabelLength  = security.MaxLabelLength
	MaxDetailLength = security.MaxDetailLength
)

// NewGroup creates a job-group with the given identifier.
func NewGroup(id string) *Group {
	return core.NewGroup(id)
}

// NewFailureReason builds a FailureReason of the given kind.
func NewFailureReason(kind FailureKind, details map[string]string) *FailureReason {
	return core.NewFailureReason(kind, details)
}

// NewContents creates a base container holding the given entries.
func NewContents(entries ...Entry) *Contents {
	return contents.New(entries...)
}

// NewIndexed creates a cursor-bearing container holding the given entries.
func NewIndexed(entries ...Entry) *Indexed {
	return contents.NewIndexed(entries...)
}

// NewPasteBuff creates a clipboard-backed container holding the given
// entries.
func NewPasteBuff(entries ...Entry) *PasteBuff {
	return contents.NewPasteBuff(entries...)
}

// NewQueue creates a Queue.
func NewQueue(opts ...QueueOption) *Queue {
	return queue.New(opts...)
}

// Queue option functions

// WithContents binds the container at construction time.
func WithContents(c ObservableContents) QueueOption {
	return queue.WithContents(c)
}

// WithQueueBackend binds the backend at construction time.
func WithQueueBackend(b core.Backend) QueueOption {
	return queue.WithBackend(b)
}

// WithEntryClass declares the expected Entry implementation name.
func WithEntryClass(name string) QueueOption {
	return queue.WithEntryClass(name)
}

// WithQueueLogger sets the queue's logger.
func WithQueueLogger(l *slog.Logger) QueueOption {
	return queue.WithLogger(l)
}

// NewBackend creates a polling backend.
func NewBackend(opts ...BackendOption) *Backend {
	return backend.New(opts...)
}

// Backend option functions

// WithPollInterval sets the backend poll cadence.
func WithPollInterval(d time.Duration) BackendOption {
	return backend.WithPollInterval(d)
}

// WithTransport sets the control-process hand-off.
func WithTransport(t Transport) BackendOption {
	return backend.WithTransport(t)
}

// WithReporter sets the dispatch-outcome receiver (typically the Queue).
func WithReporter(r backend.Reporter) BackendOption {
	return backend.WithReporter(r)
}

// WithHistory enables audit logging of dispatch outcomes.
func WithHistory(s *HistoryStore) BackendOption {
	return backend.WithHistory(s)
}

// NewDirTransport creates a transport writing hand-off files under dir.
func NewDirTransport(dir string) *DirTransport {
	return backend.NewDirTransport(dir)
}

// NewHistoryStore creates a gorm-backed dispatch audit log.
func NewHistoryStore(db *gorm.DB) *HistoryStore {
	return history.NewStore(db)
}

// EntryFromContext returns the entry being dispatched, or nil outside a
// backend poll step.
func EntryFromContext(ctx context.Context) Entry {
	return entryctx.EntryFromContext(ctx)
}

// Schedule functions

// Every creates a schedule that recurs at fixed intervals.
func Every(d time.Duration) Schedule {
	return schedule.Every(d)
}

// Daily creates a schedule that recurs at a specific time each day.
func Daily(hour, minute int) Schedule {
	return schedule.Daily(hour, minute)
}

// Weekly creates a schedule that recurs at a specific day and time each week.
func Weekly(day time.Weekday, hour, minute int) Schedule {
	return schedule.Weekly(day, hour, minute)
}

// Cron creates a schedule from a cron expression, panicking on a malformed
// expression.
func Cron(expr string) Schedule {
	return schedule.Cron(expr)
}

// ParseCron creates a schedule from a cron expression.
func ParseCron(expr string) (Schedule, error) {
	return schedule.ParseCron(expr)
}

// NewRunner creates a runner driving ctrl over the given windows.
func NewRunner(ctrl schedule.Controller, windows ...Window) *Runner {
	return schedule.NewRunner(ctrl, windows...)
}

// LoadConfig reads and validates a YAML config file.
func LoadConfig(path string) (*Config, error) {
	return config.Load(path)
}

// ValidateLabel validates an entry label or entry-class name.
func ValidateLabel(name string) error {
	return security.ValidateLabel(name)
}

// SanitizeDetail truncates and sanitizes a failure detail for storage.
func SanitizeDetail(msg string) string {
	return security.SanitizeDetail(msg)
}
