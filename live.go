package kotter

import "sync"

// currentRenderSection tracks which Section's render block is presently
// executing, so LiveVar.Get can capture a back-reference to "whoever is
// reading me right now" without the reader threading a scope through every
// call (spec §9's reactive-variable design note). This assumes at most one
// render pass is in flight per process at a time, which holds for the
// single terminal-owning Session this library is built around (DESIGN.md
// Open Question 4).
var currentRenderSection = struct {
	mu      sync.Mutex
	section *Section
}{}

func setCurrentRenderSection(s *Section) {
	currentRenderSection.mu.Lock()
	currentRenderSection.section = s
	currentRenderSection.mu.Unlock()
}

func getCurrentRenderSection() *Section {
	currentRenderSection.mu.Lock()
	defer currentRenderSection.mu.Unlock()
	return currentRenderSection.section
}

// LiveVar is a reactive value: reading it inside a render block associates
// it with that section (weakly — a plain pointer here, see DESIGN.md Open
// Question 4); writing it requests a rerender of that section iff it is
// still the active one (spec §3's LiveVar).
type LiveVar[T comparable] struct {
	mu    sync.Mutex
	value T
	owner *Section
}

// NewLiveVar creates a LiveVar holding the given initial value.
func NewLiveVar[T comparable](initial T) *LiveVar[T] {
	return &LiveVar[T]{value: initial}
}

// Get reads the current value, associating this LiveVar with whichever
// section is currently rendering, if any.
func (v *LiveVar[T]) Get() T {
	v.mu.Lock()
	defer v.mu.Unlock()
	if s := getCurrentRenderSection(); s != nil {
		v.owner = s
	}
	return v.value
}

// Set writes a new value. If it differs from the previous value, the
// section that last read it (if any, and if still active) is asked to
// rerender — Live primitive writes never fail (spec §7).
func (v *LiveVar[T]) Set(newValue T) {
	v.mu.Lock()
	changed := newValue != v.value
	v.value = newValue
	owner := v.owner
	v.mu.Unlock()
	if changed && owner != nil {
		owner.requestRerenderIfActive()
	}
}

// Update reads, transforms, and writes back atomically with respect to
// other LiveVar operations on this instance.
func (v *LiveVar[T]) Update(fn func(T) T) {
	v.mu.Lock()
	old := v.value
	newValue := fn(old)
	changed := newValue != old
	v.value = newValue
	owner := v.owner
	v.mu.Unlock()
	if changed && owner != nil {
		owner.requestRerenderIfActive()
	}
}
