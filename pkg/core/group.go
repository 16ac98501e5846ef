package core

import "sync"

// Group identifies a set of entries that must be treated as a unit for
// group-level cut operations (a schedulable block). A group never owns its
// entries; it only records a reference label used as a lookup key, so no
// cyclic ownership exists between containers and groups.
type Group struct {
	mu  sync.Mutex
	id  string
	ref string
}

// NewGroup creates a group with the given identifier.
func NewGroup(id string) *Group {
	return &Group{id: id}
}

// ID returns the group identifier.
func (g *Group) ID() string {
	return g.id
}

// SetReference records the label of the entry acting as the group's anchor.
// Containers register the entry at the cursor here before a cut that touches
// the group, so a group straddling the cut boundary keeps a stable anchor.
func (g *Group) SetReference(label string) {
	g.mu.Lock()
	g.ref = label
	g.mu.Unlock()
}

// Reference returns the most recently registered anchor label, or "" when
// none has been registered.
func (g *Group) Reference() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.ref
}
