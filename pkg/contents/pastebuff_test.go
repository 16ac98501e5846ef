package contents

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obsworks/obsqueue/pkg/core"
)

func newPasteBuffABCDE() *PasteBuff {
	return NewPasteBuff(
		newEntry("A"), newEntry("B"), newEntry("C"), newEntry("D"), newEntry("E"),
	)
}

func TestPasteBuff_CutFillsClipboard(t *testing.T) {
	p := newPasteBuffABCDE()

	removed := p.Cut(1, 2)
	assert.Equal(t, []string{"B", "C"}, labels(removed))
	assert.Equal(t, []string{"B", "C"}, labels(p.PasteBuffer().Entries()))
}

func TestPasteBuff_CutOverwritesClipboardWholesale(t *testing.T) {
	p := newPasteBuffABCDE()

	p.Cut(0, 1)
	require.Equal(t, []string{"A"}, labels(p.PasteBuffer().Entries()))

	p.Cut(0, 2)
	assert.Equal(t, []string{"B", "C"}, labels(p.PasteBuffer().Entries()),
		"second cut replaces, not appends")
}

func TestPasteBuff_PasteFromClipboardConsumesIt(t *testing.T) {
	p := newPasteBuffABCDE()
	p.Cut(1, 2)

	require.NoError(t, p.Paste(1))
	assert.Equal(t, []string{"A", "B", "C", "D", "E"}, labels(p.Entries()))
	assert.Equal(t, 0, p.PasteBuffer().Count(), "clipboard emptied")
}

func TestPasteBuff_PasteExplicitEntriesLeavesClipboard(t *testing.T) {
	p := newPasteBuffABCDE()
	p.Cut(0, 1)
	require.Equal(t, 1, p.PasteBuffer().Count())

	require.NoError(t, p.Paste(0, newEntry("X")))
	assert.Equal(t, "X", labels(p.Entries())[0])
	assert.Equal(t, 1, p.PasteBuffer().Count(), "clipboard untouched")
}

func TestPasteBuff_PasteNegativePosition(t *testing.T) {
	p := newPasteBuffABCDE()
	assert.ErrorIs(t, p.Paste(-1), core.ErrBadPosition)
}

func TestPasteBuff_PasteEmptyClipboardIsNoop(t *testing.T) {
	p := newPasteBuffABCDE()
	require.NoError(t, p.Paste(0))
	assert.Equal(t, 5, p.Count())
}

// Cut followed by paste at the same start restores the original sequence;
// the cursor follows the documented adjustment rules in both directions.
func TestPasteBuff_RoundTripRestoresSequence(t *testing.T) {
	// Cursor after the cut range: fully restored.
	p := newPasteBuffABCDE()
	require.True(t, p.SetCurIndex(4))

	p.Cut(1, 2)
	require.NoError(t, p.Paste(1))
	assert.Equal(t, []string{"A", "B", "C", "D", "E"}, labels(p.Entries()))
	i, _ := p.CurIndex()
	assert.Equal(t, 4, i)

	// Cursor before the cut range: unaffected by the pair.
	p = newPasteBuffABCDE()
	require.True(t, p.SetCurIndex(0))

	p.Cut(2, 2)
	require.NoError(t, p.Paste(2))
	assert.Equal(t, []string{"A", "B", "C", "D", "E"}, labels(p.Entries()))
	i, _ = p.CurIndex()
	assert.Equal(t, 0, i)
}

// A cursor inside the cut range lands on the cut start, so after the paste
// it sits just past the re-inserted block.
func TestPasteBuff_RoundTripCursorInsideRange(t *testing.T) {
	p := newPasteBuffABCDE()
	require.True(t, p.SetCurIndex(2))

	p.Cut(1, 2)
	i, _ := p.CurIndex()
	require.Equal(t, 1, i)

	require.NoError(t, p.Paste(1))
	assert.Equal(t, []string{"A", "B", "C", "D", "E"}, labels(p.Entries()))
	i, _ = p.CurIndex()
	assert.Equal(t, 3, i)
}

func TestPasteBuff_SetPasteBufferRejectsNil(t *testing.T) {
	p := newPasteBuffABCDE()
	p.Cut(0, 1)
	prior := p.PasteBuffer()

	assert.False(t, p.SetPasteBuffer(nil))
	assert.Same(t, prior, p.PasteBuffer(), "prior clipboard retained")

	replacement := New()
	assert.True(t, p.SetPasteBuffer(replacement))
	assert.Same(t, replacement, p.PasteBuffer())
}

func TestPasteBuff_ImplementsObservableContents(t *testing.T) {
	var _ core.ObservableContents = NewPasteBuff()
	var _ core.ObservableContents = NewIndexed()
}
