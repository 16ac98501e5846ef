package contents

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obsworks/obsqueue/pkg/core"
)

func TestContents_LoadReplacesWholesale(t *testing.T) {
	c := New(newEntry("a"), newEntry("b"))
	c.Load(newEntry("x"), newEntry("y"), newEntry("z"))

	assert.Equal(t, 3, c.Count())
	assert.Equal(t, []string{"x", "y", "z"}, labels(c.Entries()))
}

func TestContents_Clear(t *testing.T) {
	c := New(newEntry("a"))
	c.Clear()
	assert.Equal(t, 0, c.Count())
}

func TestContents_Get(t *testing.T) {
	c := New(newEntry("a"), newEntry("b"))

	e, err := c.Get(1)
	require.NoError(t, err)
	assert.Equal(t, "b", e.Label())

	_, err = c.Get(2)
	assert.ErrorIs(t, err, core.ErrOutOfRange)

	_, err = c.Get(-1)
	assert.ErrorIs(t, err, core.ErrOutOfRange)
}

func TestContents_AddBackAddFrontOrder(t *testing.T) {
	c := New()
	c.AddBack(newEntry("c"))
	c.AddFront(newEntry("a"), newEntry("b"))
	c.AddBack(newEntry("d"))

	assert.Equal(t, []string{"a", "b", "c", "d"}, labels(c.Entries()))
}

func TestContents_Insert(t *testing.T) {
	c := New(newEntry("a"), newEntry("d"))

	c.Insert(1, newEntry("b"), newEntry("c"))
	assert.Equal(t, []string{"a", "b", "c", "d"}, labels(c.Entries()))

	// pos == Count appends
	c.Insert(c.Count(), newEntry("e"))
	assert.Equal(t, "e", labels(c.Entries())[4])

	// out-of-range positions clamp
	c.Insert(-5, newEntry("front"))
	c.Insert(100, newEntry("back"))
	got := labels(c.Entries())
	assert.Equal(t, "front", got[0])
	assert.Equal(t, "back", got[len(got)-1])
}

func TestContents_CutClampsToAvailableRange(t *testing.T) {
	c := New(newEntry("a"), newEntry("b"), newEntry("c"))

	removed := c.Cut(1, 5)
	assert.Equal(t, []string{"b", "c"}, labels(removed))
	assert.Equal(t, []string{"a"}, labels(c.Entries()))
}

func TestContents_CutRejectsBadArgs(t *testing.T) {
	c := New(newEntry("a"), newEntry("b"))

	assert.Empty(t, c.Cut(5, 1), "start past end")
	assert.Empty(t, c.Cut(-1, 1), "negative start")
	assert.Empty(t, c.Cut(0, 0), "num < 1")
	assert.Equal(t, 2, c.Count())
}

func TestContents_CutGroup(t *testing.T) {
	g := core.NewGroup("block-1")
	c := New(
		newEntry("a"),
		entryInGroup("b", g),
		entryInGroup("c", g),
		newEntry("d"),
	)

	removed := c.CutGroup(1)
	assert.Equal(t, []string{"b", "c"}, labels(removed))
	assert.Equal(t, []string{"a", "d"}, labels(c.Entries()))
}

func TestContents_CutGroupNoGroupIsNoop(t *testing.T) {
	c := New(newEntry("a"), newEntry("b"))

	assert.Empty(t, c.CutGroup(0))
	assert.Equal(t, 2, c.Count())
}

func TestContents_ShiftPop(t *testing.T) {
	c := New(newEntry("a"), newEntry("b"), newEntry("c"))

	assert.Equal(t, "a", c.Shift().Label())
	assert.Equal(t, "c", c.Pop().Label())
	assert.Equal(t, []string{"b"}, labels(c.Entries()))

	c.Clear()
	assert.Nil(t, c.Shift())
	assert.Nil(t, c.Pop())
}

func TestContents_TotalTime(t *testing.T) {
	c := New(
		entryWithDur("a", time.Minute),
		newEntry("no-estimate"),
		entryWithDur("b", 2*time.Minute),
	)
	assert.Equal(t, 3*time.Minute, c.TotalTime())
}
