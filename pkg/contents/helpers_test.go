package contents

import (
	"context"
	"time"

	"github.com/obsworks/obsqueue/pkg/core"
)

// fakeEntry is a minimal Entry for container tests.
type fakeEntry struct {
	label     string
	status    core.Status
	dur       time.Duration
	hasDur    bool
	group     *core.Group
	artifacts []string
}

func newEntry(label string) *fakeEntry {
	return &fakeEntry{label: label, status: core.StatusQueued}
}

func entryWithDur(label string, d time.Duration) *fakeEntry {
	e := newEntry(label)
	e.dur = d
	e.hasDur = true
	return e
}

func entryInGroup(label string, g *core.Group) *fakeEntry {
	e := newEntry(label)
	e.group = g
	return e
}

func (e *fakeEntry) Label() string                   { return e.label }
func (e *fakeEntry) Status() core.Status             { return e.status }
func (e *fakeEntry) SetStatus(s core.Status)         { e.status = s }
func (e *fakeEntry) Duration() (time.Duration, bool) { return e.dur, e.hasDur }
func (e *fakeEntry) Group() *core.Group              { return e.group }
func (e *fakeEntry) Artifacts() []string             { return e.artifacts }

func (e *fakeEntry) Prepare(ctx context.Context) (*core.FailureReason, error) {
	return nil, nil
}

func (e *fakeEntry) Write(ctx context.Context) ([]string, error) {
	return e.artifacts, nil
}

// labels extracts entry labels for order assertions.
func labels(entries []core.Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Label())
	}
	return out
}
