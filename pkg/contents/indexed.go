package contents

import (
	"sync"
	"time"

	"github.com/obsworks/obsqueue/pkg/core"
)

// noIndex marks an undefined cursor or last-dispatched index.
const noIndex = -1

// Indexed is an ordered container carrying the dispatch cursor. Every
// mutating primitive of Contents is reimplemented so that afterwards the
// cursor is inside [0, Count-1], or undefined exactly when the container is
// empty.
//
// The cursor defaults to 0 the first time it is read on a non-empty
// container whose stored value is undefined; the last-dispatched index is
// cleared on that transition since it no longer corresponds to a
// trustworthy position.
type Indexed struct {
	mu   sync.Mutex
	seq  sequence
	cur  int
	last int
}

// NewIndexed creates an indexed container holding the given entries, with
// the cursor on the first entry when any are present.
func NewIndexed(entries ...core.Entry) *Indexed {
	ic := &Indexed{cur: noIndex, last: noIndex}
	ic.seq.load(entries)
	if ic.seq.count() > 0 {
		ic.cur = 0
	}
	return ic
}

// curLocked reads the cursor, applying the default-on-read transition.
func (ic *Indexed) curLocked() int {
	if ic.cur == noIndex && ic.seq.count() > 0 {
		ic.cur = 0
		ic.last = noIndex
	}
	return ic.cur
}

// normalizeLocked restores the cursor invariant after a mutation.
func (ic *Indexed) normalizeLocked() {
	n := ic.seq.count()
	if n == 0 {
		ic.cur = noIndex
		return
	}
	if ic.cur >= n {
		ic.cur = n - 1
	}
}

// CurIndex returns the cursor position; ok is false when the container is
// empty.
func (ic *Indexed) CurIndex() (int, bool) {
	ic.mu.Lock()
	defer ic.mu.Unlock()
	i := ic.curLocked()
	return i, i != noIndex
}

// SetCurIndex moves the cursor to i. An out-of-range value is silently
// rejected: the stored cursor is left unchanged and false is returned.
func (ic *Indexed) SetCurIndex(i int) bool {
	ic.mu.Lock()
	defer ic.mu.Unlock()
	if i < 0 || i >= ic.seq.count() {
		return false
	}
	ic.cur = i
	return true
}

// LastIndex returns the position most recently handed to the backend via
// GetForObservation; ok is false when none has been recorded since the
// cursor was last defaulted.
func (ic *Indexed) LastIndex() (int, bool) {
	ic.mu.Lock()
	defer ic.mu.Unlock()
	return ic.last, ic.last != noIndex
}

// IncIndex moves the cursor forward by n (a positive integer), saturating at
// the maximum index. It returns true when the cursor moved, and false when
// the container is empty, n is not positive, or the cursor was already at
// the maximum. An undefined cursor on a non-empty container is treated as
// position -1, so a first increment lands on 0.
func (ic *Indexed) IncIndex(n int) bool {
	ic.mu.Lock()
	defer ic.mu.Unlock()
	if n < 1 {
		return false
	}
	count := ic.seq.count()
	if count == 0 {
		return false
	}
	max := count - 1
	eff := ic.cur
	if eff == noIndex {
		eff = -1
	}
	if eff >= max {
		return false
	}
	target := eff + n
	if target > max {
		target = max
	}
	if ic.cur == noIndex {
		ic.last = noIndex
	}
	ic.cur = target
	return true
}

// DecIndex moves the cursor back by n (a positive integer), saturating at 0.
// It returns false when the container is empty, n is not positive, the
// cursor is undefined, or the cursor was already at 0.
func (ic *Indexed) DecIndex(n int) bool {
	ic.mu.Lock()
	defer ic.mu.Unlock()
	if n < 1 {
		return false
	}
	if ic.seq.count() == 0 || ic.cur == noIndex || ic.cur == 0 {
		return false
	}
	target := ic.cur - n
	if target < 0 {
		target = 0
	}
	ic.cur = target
	return true
}

// NextIndex returns the position one past the cursor; ok is false when the
// cursor is undefined or the next position is out of range.
func (ic *Indexed) NextIndex() (int, bool) {
	ic.mu.Lock()
	defer ic.mu.Unlock()
	cur := ic.curLocked()
	if cur == noIndex || cur+1 >= ic.seq.count() {
		return 0, false
	}
	return cur + 1, true
}

// PrevIndex returns the position one before the cursor; ok is false when the
// cursor is undefined or already at 0.
func (ic *Indexed) PrevIndex() (int, bool) {
	ic.mu.Lock()
	defer ic.mu.Unlock()
	cur := ic.curLocked()
	if cur == noIndex || cur == 0 {
		return 0, false
	}
	return cur - 1, true
}

// CurEntry returns the entry at the cursor, or nil when the container is
// empty.
func (ic *Indexed) CurEntry() core.Entry {
	ic.mu.Lock()
	defer ic.mu.Unlock()
	return ic.entryAtLocked(ic.curLocked())
}

// NextEntry returns the entry one past the cursor, or nil.
func (ic *Indexed) NextEntry() core.Entry {
	ic.mu.Lock()
	defer ic.mu.Unlock()
	cur := ic.curLocked()
	if cur == noIndex {
		return nil
	}
	return ic.entryAtLocked(cur + 1)
}

// PrevEntry returns the entry one before the cursor, or nil.
func (ic *Indexed) PrevEntry() core.Entry {
	ic.mu.Lock()
	defer ic.mu.Unlock()
	cur := ic.curLocked()
	if cur == noIndex {
		return nil
	}
	return ic.entryAtLocked(cur - 1)
}

func (ic *Indexed) entryAtLocked(i int) core.Entry {
	if i < 0 || i >= ic.seq.count() {
		return nil
	}
	return ic.seq.entries[i]
}

// CmpIndex three-way compares i against the cursor: -1 when i is before the
// cursor, 0 when equal, +1 when after. ok is false when the cursor is
// undefined.
func (ic *Indexed) CmpIndex(i int) (int, bool) {
	ic.mu.Lock()
	defer ic.mu.Unlock()
	cur := ic.curLocked()
	if cur == noIndex {
		return 0, false
	}
	switch {
	case i < cur:
		return -1, true
	case i > cur:
		return 1, true
	default:
		return 0, true
	}
}

// Load atomically replaces all contents and resets the cursor to 0.
func (ic *Indexed) Load(entries ...core.Entry) {
	ic.mu.Lock()
	defer ic.mu.Unlock()
	ic.seq.load(entries)
	ic.cur = 0
	ic.normalizeLocked()
}

// Clear removes every entry and clears the cursor.
func (ic *Indexed) Clear() {
	ic.mu.Lock()
	defer ic.mu.Unlock()
	ic.seq.clear()
	ic.cur = noIndex
}

// Count returns the number of entries.
func (ic *Indexed) Count() int {
	ic.mu.Lock()
	defer ic.mu.Unlock()
	return ic.seq.count()
}

// Get returns the entry at position i, or ErrOutOfRange.
func (ic *Indexed) Get(i int) (core.Entry, error) {
	ic.mu.Lock()
	defer ic.mu.Unlock()
	return ic.seq.get(i)
}

// Entries returns a snapshot of the sequence.
func (ic *Indexed) Entries() []core.Entry {
	ic.mu.Lock()
	defer ic.mu.Unlock()
	return ic.seq.snapshot()
}

// AddBack appends entries. The cursor is placed on 0 only when the container
// was empty before the call; otherwise it is untouched.
func (ic *Indexed) AddBack(entries ...core.Entry) {
	ic.mu.Lock()
	defer ic.mu.Unlock()
	wasEmpty := ic.seq.count() == 0
	ic.seq.addBack(entries)
	if wasEmpty && ic.seq.count() > 0 {
		ic.cur = 0
		ic.last = noIndex
	}
}

// AddFront prepends entries, moving the cursor forward by the number added
// so the same logical entry stays highlighted.
func (ic *Indexed) AddFront(entries ...core.Entry) {
	ic.mu.Lock()
	defer ic.mu.Unlock()
	ic.seq.addFront(entries)
	if ic.cur != noIndex {
		ic.cur += len(entries)
	}
	ic.normalizeLocked()
}

// Insert places entries before pos. A defined cursor at or after pos moves
// forward by the number inserted; a cursor before pos is untouched. On a
// previously empty container the cursor lands on 0.
func (ic *Indexed) Insert(pos int, entries ...core.Entry) {
	ic.mu.Lock()
	defer ic.mu.Unlock()
	if len(entries) == 0 {
		return
	}
	wasEmpty := ic.seq.count() == 0
	pos = ic.seq.insert(pos, entries)
	switch {
	case wasEmpty:
		ic.cur = 0
		ic.last = noIndex
	case ic.cur != noIndex && ic.cur >= pos:
		ic.cur += len(entries)
	}
	ic.normalizeLocked()
}

// Cut removes and returns up to num entries beginning at start. Before the
// cut, the entry at the cursor is registered as the reference entry of every
// job-group touched by the doomed range, so a group straddling the cut
// boundary keeps a stable anchor. Afterwards the cursor is unaffected when it
// was at or before start, set to start when it fell inside the removed range,
// and otherwise pulled back by the number of entries actually removed.
func (ic *Indexed) Cut(start, num int) []core.Entry {
	ic.mu.Lock()
	defer ic.mu.Unlock()
	return ic.cutLocked(start, num)
}

func (ic *Indexed) cutLocked(start, num int) []core.Entry {
	count := ic.seq.count()
	if start >= 0 && start < count && num >= 1 {
		end := start + num
		if end > count {
			end = count
		}
		if anchor := ic.entryAtLocked(ic.curLocked()); anchor != nil {
			seen := make(map[*core.Group]bool)
			for i := start; i < end; i++ {
				g := ic.seq.entries[i].Group()
				if g != nil && !seen[g] {
					seen[g] = true
					g.SetReference(anchor.Label())
				}
			}
		}
	}

	removed := ic.seq.cut(start, num)
	n := len(removed)
	if n > 0 && ic.cur != noIndex {
		switch {
		case ic.cur <= start:
			// before the cut, unaffected
		case ic.cur < start+n:
			ic.cur = start
		default:
			ic.cur -= n
		}
	}
	ic.normalizeLocked()
	return removed
}

// CutGroup removes every entry sharing the job-group of the entry at index,
// adjusting the cursor by the same rules as Cut. It is a no-op returning
// nothing when that entry has no group.
func (ic *Indexed) CutGroup(index int) []core.Entry {
	ic.mu.Lock()
	defer ic.mu.Unlock()
	return ic.cutGroupLocked(index)
}

// CutCurGroup removes the job-group of the entry at the cursor.
func (ic *Indexed) CutCurGroup() []core.Entry {
	ic.mu.Lock()
	defer ic.mu.Unlock()
	return ic.cutGroupLocked(ic.curLocked())
}

func (ic *Indexed) cutGroupLocked(index int) []core.Entry {
	positions := ic.seq.groupPositions(index)
	if len(positions) == 0 {
		return nil
	}

	cur := ic.cur
	removed := ic.seq.cutGroup(index)

	if cur != noIndex {
		before := 0
		hit := false
		for _, p := range positions {
			if p < cur {
				before++
			} else if p == cur {
				hit = true
			}
		}
		if hit {
			ic.cur = positions[0]
		} else {
			ic.cur = cur - before
		}
	}
	ic.normalizeLocked()
	return removed
}

// Shift removes and returns the entry at position 0, pulling the cursor back
// by one with saturation at 0.
func (ic *Indexed) Shift() core.Entry {
	ic.mu.Lock()
	defer ic.mu.Unlock()
	e := ic.seq.shift()
	if e != nil && ic.cur != noIndex && ic.cur > 0 {
		ic.cur--
	}
	ic.normalizeLocked()
	return e
}

// Pop removes and returns the last entry. A cursor that was on the tail
// stays on the (new) tail.
func (ic *Indexed) Pop() core.Entry {
	ic.mu.Lock()
	defer ic.mu.Unlock()
	preCur := ic.cur
	preMax := ic.seq.count() - 1
	e := ic.seq.pop()
	if e != nil && preCur != noIndex && preCur == preMax {
		ic.cur = ic.seq.count() - 1
		if ic.cur < 0 {
			ic.cur = noIndex
		}
	}
	ic.normalizeLocked()
	return e
}

// GetForObservation records the cursor as the last-dispatched index and
// returns the entry there together with its position, or (nil, -1) when the
// container is empty. This is the sole read path a backend uses to fetch the
// next job; entry and position come from one lock acquisition, so they always
// agree even while operators mutate the container.
func (ic *Indexed) GetForObservation() (core.Entry, int) {
	ic.mu.Lock()
	defer ic.mu.Unlock()
	cur := ic.curLocked()
	ic.last = cur
	return ic.entryAtLocked(cur), cur
}

// AdvanceFrom moves the cursor forward by one, but only when e still sits at
// the cursor. A mutation that ran between fetching e and finishing its
// dispatch leaves the cursor wherever the mutation's own rules put it, so the
// entry now under the cursor is dispatched next instead of being skipped.
// Returns false when the cursor did not move, including when e is already the
// last entry.
func (ic *Indexed) AdvanceFrom(e core.Entry) bool {
	ic.mu.Lock()
	defer ic.mu.Unlock()
	cur := ic.curLocked()
	if cur == noIndex || ic.entryAtLocked(cur) != e {
		return false
	}
	if cur >= ic.seq.count()-1 {
		return false
	}
	ic.cur = cur + 1
	return true
}

// RemainingTime sums the duration estimates from the cursor to the end of
// the container. Entries without an estimate contribute zero; an undefined
// cursor yields zero.
func (ic *Indexed) RemainingTime() time.Duration {
	ic.mu.Lock()
	defer ic.mu.Unlock()
	cur := ic.curLocked()
	if cur == noIndex {
		return 0
	}
	var total time.Duration
	for _, e := range ic.seq.entries[cur:] {
		if d, ok := e.Duration(); ok {
			total += d
		}
	}
	return total
}
