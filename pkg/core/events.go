package core

import "time"

// Event is the interface for all queue events.
type Event interface {
	eventMarker()
}

// QueueStarted is emitted when the queue's backend is set running.
type QueueStarted struct {
	Timestamp time.Time
}

func (*QueueStarted) eventMarker() {}

// QueueStopped is emitted when the queue's backend is stopped.
type QueueStopped struct {
	Timestamp time.Time
}

func (*QueueStopped) eventMarker() {}

// EntryDispatched is emitted when an entry is handed to the control process.
type EntryDispatched struct {
	Label     string
	Index     int
	Timestamp time.Time
}

func (*EntryDispatched) eventMarker() {}

// PrepareFailed is emitted when preparation of an entry produced a
// FailureReason. The entry stays at the cursor so the operator can edit it
// in place and resume.
type PrepareFailed struct {
	Label     string
	Index     int
	Reason    *FailureReason
	Timestamp time.Time
}

func (*PrepareFailed) eventMarker() {}
