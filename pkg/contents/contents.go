package contents

import (
	"sync"
	"time"

	"github.com/obsworks/obsqueue/pkg/core"
)

// Contents is an insertion-ordered, mutable sequence of entries. Order is
// semantically meaningful: it is the dispatch order. All operations are
// atomic with respect to each other; no partially-applied multi-entry
// operation is observable.
type Contents struct {
	mu  sync.RWMutex
	seq sequence
}

// New creates a container holding the given entries.
func New(entries ...core.Entry) *Contents {
	c := &Contents{}
	c.seq.load(entries)
	return c
}

// Load atomically replaces all contents.
func (c *Contents) Load(entries ...core.Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq.load(entries)
}

// Clear removes every entry.
func (c *Contents) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq.clear()
}

// Count returns the number of entries.
func (c *Contents) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.seq.count()
}

// Get returns the entry at position i, or ErrOutOfRange.
func (c *Contents) Get(i int) (core.Entry, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.seq.get(i)
}

// Entries returns a snapshot of the sequence.
func (c *Contents) Entries() []core.Entry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.seq.snapshot()
}

// AddBack appends entries to the end of the sequence.
func (c *Contents) AddBack(entries ...core.Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq.addBack(entries)
}

// AddFront prepends entries to the start of the sequence.
func (c *Contents) AddFront(entries ...core.Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq.addFront(entries)
}

// Insert places entries before pos; pos may equal Count to append.
// Out-of-range positions are clamped.
func (c *Contents) Insert(pos int, entries ...core.Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq.insert(pos, entries)
}

// Cut removes and returns up to num entries beginning at start, clamped to
// the available range. It returns nothing when start is out of range or
// num < 1.
func (c *Contents) Cut(start, num int) []core.Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.seq.cut(start, num)
}

// CutGroup removes every entry sharing the job-group of the entry at index.
// It is a no-op returning nothing when that entry has no group.
func (c *Contents) CutGroup(index int) []core.Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.seq.cutGroup(index)
}

// Shift removes and returns the entry at position 0, or nil when empty.
func (c *Contents) Shift() core.Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.seq.shift()
}

// Pop removes and returns the last entry, or nil when empty.
func (c *Contents) Pop() core.Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.seq.pop()
}

// TotalTime sums the duration estimates of every entry. Entries without an
// estimate contribute zero.
func (c *Contents) TotalTime() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var total time.Duration
	for _, e := range c.seq.entries {
		if d, ok := e.Duration(); ok {
			total += d
		}
	}
	return total
}
