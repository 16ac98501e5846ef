package contents

import (
	"log/slog"
	"sync"

	"github.com/obsworks/obsqueue/pkg/core"
)

// PasteBuff is an indexed container with a clipboard: Cut routes removed
// entries into an owned Contents instance, and Paste re-inserts them. The
// clipboard has no cursor semantics and is never visible to a polling
// backend; cut entries are owned by it until pasted back or overwritten by
// the next cut.
type PasteBuff struct {
	*Indexed

	mu   sync.Mutex
	clip *Contents
}

// NewPasteBuff creates a clipboard-backed container holding the given
// entries, with a fresh empty clipboard.
func NewPasteBuff(entries ...core.Entry) *PasteBuff {
	return &PasteBuff{
		Indexed: NewIndexed(entries...),
		clip:    New(),
	}
}

// PasteBuffer returns the clipboard.
func (p *PasteBuff) PasteBuffer() *Contents {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.clip
}

// SetPasteBuffer replaces the clipboard. A nil value is rejected with a
// warning, leaving the prior clipboard in place.
func (p *PasteBuff) SetPasteBuffer(c *Contents) bool {
	if c == nil {
		slog.Warn("obsqueue: rejecting nil paste buffer, keeping prior clipboard")
		return false
	}
	p.mu.Lock()
	p.clip = c
	p.mu.Unlock()
	return true
}

// Cut removes entries per the indexed cut rules, then overwrites the
// clipboard wholesale with exactly the entries just removed.
func (p *PasteBuff) Cut(start, num int) []core.Entry {
	removed := p.Indexed.Cut(start, num)
	p.PasteBuffer().Load(removed...)
	return removed
}

// Paste inserts entries before pos. When explicit entries are supplied the
// clipboard is untouched; otherwise the clipboard's full contents are
// consumed, leaving it empty. A negative position is an argument error.
func (p *PasteBuff) Paste(pos int, entries ...core.Entry) error {
	if pos < 0 {
		return core.ErrBadPosition
	}
	if len(entries) > 0 {
		p.Indexed.Insert(pos, entries...)
		return nil
	}

	clip := p.PasteBuffer()
	batch := clip.Entries()
	clip.Clear()
	if len(batch) == 0 {
		return nil
	}
	p.Indexed.Insert(pos, batch...)
	return nil
}
