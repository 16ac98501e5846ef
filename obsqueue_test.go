package obsqueue_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obsworks/obsqueue"
)

// scan is a minimal observation job for exercising the public surface.
type scan struct {
	label  string
	status obsqueue.Status
	dur    time.Duration
}

func newScan(label string) *scan {
	return &scan{label: label, status: obsqueue.StatusQueued, dur: time.Minute}
}

func (s *scan) Label() string                   { return s.label }
func (s *scan) Status() obsqueue.Status         { return s.status }
func (s *scan) SetStatus(v obsqueue.Status)     { s.status = v }
func (s *scan) Duration() (time.Duration, bool) { return s.dur, true }
func (s *scan) Group() *obsqueue.Group          { return nil }
func (s *scan) Artifacts() []string             { return []string{s.label + ".xml"} }

func (s *scan) Prepare(ctx context.Context) (*obsqueue.FailureReason, error) {
	return nil, nil
}

func (s *scan) Write(ctx context.Context) ([]string, error) {
	return s.Artifacts(), nil
}

// sink collects dispatched labels without touching the filesystem.
type sink struct {
	labels []string
}

func (s *sink) Send(ctx context.Context, e obsqueue.Entry, artifacts []string) error {
	s.labels = append(s.labels, e.Label())
	return nil
}

func TestQueueDispatchesInCursorOrder(t *testing.T) {
	c := obsqueue.NewPasteBuff(newScan("a"), newScan("b"), newScan("c"))

	tr := &sink{}
	be := obsqueue.NewBackend(obsqueue.WithTransport(tr))

	q := obsqueue.NewQueue(
		obsqueue.WithContents(c),
		obsqueue.WithQueueBackend(be),
	)
	require.NoError(t, q.StartQ())

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		require.NoError(t, be.Poll(ctx))
	}

	assert.Equal(t, []string{"a", "b", "c"}, tr.labels)
	assert.Equal(t, obsqueue.StatusDispatched, c.Entries()[2].Status())
}

func TestOperatorReordersMidRun(t *testing.T) {
	a, b, c, d := newScan("a"), newScan("b"), newScan("c"), newScan("d")
	pb := obsqueue.NewPasteBuff(a, b, c, d)

	tr := &sink{}
	be := obsqueue.NewBackend(obsqueue.WithTransport(tr))
	q := obsqueue.NewQueue(
		obsqueue.WithContents(pb),
		obsqueue.WithQueueBackend(be),
	)
	require.NoError(t, q.StartQ())

	ctx := context.Background()
	require.NoError(t, be.Poll(ctx)) // dispatches a, cursor on b

	// Pull d ahead of b while the queue is live. Pasting before the cursor
	// keeps the cursor on b, so step back onto the pasted entry.
	removed := pb.Cut(3, 1)
	require.Len(t, removed, 1)
	require.NoError(t, pb.Paste(1))
	require.True(t, pb.DecIndex(1))

	require.NoError(t, be.Poll(ctx))
	require.NoError(t, be.Poll(ctx))
	require.NoError(t, be.Poll(ctx))

	assert.Equal(t, []string{"a", "d", "b", "c"}, tr.labels)
}

func TestQueueStopHaltsDispatch(t *testing.T) {
	pb := obsqueue.NewPasteBuff(newScan("a"), newScan("b"))

	tr := &sink{}
	be := obsqueue.NewBackend(obsqueue.WithTransport(tr))
	q := obsqueue.NewQueue(
		obsqueue.WithContents(pb),
		obsqueue.WithQueueBackend(be),
	)
	require.NoError(t, q.StartQ())

	ctx := context.Background()
	require.NoError(t, be.Poll(ctx))
	q.StopQ()
	require.NoError(t, be.Poll(ctx))

	assert.Equal(t, []string{"a"}, tr.labels, "no dispatch after stop")
	assert.False(t, q.Running())
}

func TestRemainingTimeShrinksAsCursorAdvances(t *testing.T) {
	pb := obsqueue.NewPasteBuff(newScan("a"), newScan("b"), newScan("c"))

	be := obsqueue.NewBackend(obsqueue.WithTransport(&sink{}))
	q := obsqueue.NewQueue(
		obsqueue.WithContents(pb),
		obsqueue.WithQueueBackend(be),
	)
	require.NoError(t, q.StartQ())

	assert.Equal(t, 3*time.Minute, q.RemainingTime())
	require.NoError(t, be.Poll(context.Background()))
	assert.Equal(t, 2*time.Minute, q.RemainingTime())
}

func TestFacadeHelpers(t *testing.T) {
	assert.NoError(t, obsqueue.ValidateLabel("ScanEntry"))
	assert.ErrorIs(t, obsqueue.ValidateLabel("bad name"), obsqueue.ErrInvalidLabel)

	r := obsqueue.NewFailureReason(obsqueue.FailureMissingTarget, map[string]string{"band": "w"})
	assert.Equal(t, "w", r.Detail("band"))

	s, err := obsqueue.ParseCron("0 6 * * *")
	require.NoError(t, err)
	from := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, 6, s.Next(from).Hour())
}
