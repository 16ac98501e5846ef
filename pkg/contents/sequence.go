package contents

import (
	"github.com/obsworks/obsqueue/pkg/core"
)

// sequence holds the slice primitives shared by the container types. It does
// no locking; the owning container serializes access.
type sequence struct {
	entries []core.Entry
}

func (s *sequence) load(entries []core.Entry) {
	s.entries = append([]core.Entry(nil), entries...)
}

func (s *sequence) clear() {
	s.entries = nil
}

func (s *sequence) count() int {
	return len(s.entries)
}

func (s *sequence) get(i int) (core.Entry, error) {
	if i < 0 || i >= len(s.entries) {
		return nil, core.ErrOutOfRange
	}
	return s.entries[i], nil
}

func (s *sequence) snapshot() []core.Entry {
	return append([]core.Entry(nil), s.entries...)
}

func (s *sequence) addBack(entries []core.Entry) {
	s.entries = append(s.entries, entries...)
}

func (s *sequence) addFront(entries []core.Entry) {
	s.entries = append(append([]core.Entry(nil), entries...), s.entries...)
}

// insert places entries before pos; pos is clamped into [0, count] so that
// pos == count appends. Returns the clamped position.
func (s *sequence) insert(pos int, entries []core.Entry) int {
	if pos < 0 {
		pos = 0
	}
	if pos > len(s.entries) {
		pos = len(s.entries)
	}
	rest := append([]core.Entry(nil), s.entries[pos:]...)
	s.entries = append(append(s.entries[:pos], entries...), rest...)
	return pos
}

// cut removes and returns up to num entries beginning at start. The range is
// clamped to what is available; an out-of-range start or num < 1 removes
// nothing.
func (s *sequence) cut(start, num int) []core.Entry {
	if start < 0 || start >= len(s.entries) || num < 1 {
		return nil
	}
	end := start + num
	if end > len(s.entries) {
		end = len(s.entries)
	}
	removed := append([]core.Entry(nil), s.entries[start:end]...)
	s.entries = append(s.entries[:start], s.entries[end:]...)
	return removed
}

// cutGroup removes every entry sharing the job-group of the entry at index.
// Entries without a group are never swept up; an index pointing at a
// group-less entry removes nothing.
func (s *sequence) cutGroup(index int) []core.Entry {
	if index < 0 || index >= len(s.entries) {
		return nil
	}
	g := s.entries[index].Group()
	if g == nil {
		return nil
	}

	var removed, kept []core.Entry
	for _, e := range s.entries {
		if e.Group() == g {
			removed = append(removed, e)
		} else {
			kept = append(kept, e)
		}
	}
	s.entries = kept
	return removed
}

// groupPositions returns the positions of every entry sharing the job-group
// of the entry at index, in order. Empty when the entry has no group.
func (s *sequence) groupPositions(index int) []int {
	if index < 0 || index >= len(s.entries) {
		return nil
	}
	g := s.entries[index].Group()
	if g == nil {
		return nil
	}
	var positions []int
	for i, e := range s.entries {
		if e.Group() == g {
			positions = append(positions, i)
		}
	}
	return positions
}

func (s *sequence) shift() core.Entry {
	if len(s.entries) == 0 {
		return nil
	}
	e := s.entries[0]
	s.entries = s.entries[1:]
	return e
}

func (s *sequence) pop() core.Entry {
	if len(s.entries) == 0 {
		return nil
	}
	e := s.entries[len(s.entries)-1]
	s.entries = s.entries[:len(s.entries)-1]
	return e
}
