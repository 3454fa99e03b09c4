// Package data implements ConcurrentScopedData: a thread-safe keyed store
// whose entries are bound to named Lifecycles and automatically reclaimed
// when that lifecycle ends (spec §3). There is no teacher equivalent (the
// Elm-architecture bubbletea core has no scoped DI container); this is
// built directly from spec §3's invariants and §9's "session-scoped table"
// translation note, on stdlib sync primitives only — no pack library
// offers a lifecycle-scoped store.
package data

import "fmt"

// Lifecycle is a named scope in the store's parent/child forest. Stopping a
// lifecycle disposes all of its attached entries (in insertion order) and
// recursively stops its children.
type Lifecycle struct {
	name     string
	parent   *Lifecycle
	children []*Lifecycle
	active   bool
}

// NewLifecycle creates a started child lifecycle of parent (nil for a root
// lifecycle, e.g. Session.Lifecycle).
func NewLifecycle(name string, parent *Lifecycle) *Lifecycle {
	l := &Lifecycle{name: name, parent: parent, active: true}
	if parent != nil {
		parent.children = append(parent.children, l)
	}
	return l
}

// Name returns the lifecycle's name, for diagnostics.
func (l *Lifecycle) Name() string { return l.name }

// IsActive reports whether the lifecycle has not yet been stopped.
func (l *Lifecycle) IsActive() bool { return l != nil && l.active }

// String supports %v / error formatting.
func (l *Lifecycle) String() string {
	if l == nil {
		return "<nil lifecycle>"
	}
	return fmt.Sprintf("Lifecycle(%s)", l.name)
}
