package data

import (
	"errors"
	"sync"
)

// ErrLifecycleNotActive is returned by Put/PutIfAbsent when the given
// lifecycle has already been stopped — a programming error per spec §7
// ("The data store throws if a key is inserted for a non-active lifecycle").
var ErrLifecycleNotActive = errors.New("kotter/data: lifecycle is not active")

// Key identifies a typed value in a Store. Two Key[T] values are equal iff
// their names are equal and T is the same concrete type, since Go compares
// both the dynamic type and value when Key[T] is boxed into the store's
// internal map.
type Key[T any] struct {
	name string
}

// NewKey creates a typed key. name only needs to be unique among keys of
// the same T used against the same Store; keys of the same T with equal
// names address the same entry.
func NewKey[T any](name string) Key[T] {
	return Key[T]{name: name}
}

type entry struct {
	value     any
	lifecycle *Lifecycle
	onDispose func(any)
	seq       int
}

// Store is ConcurrentScopedData: a map from Key[T] to (value, lifecycle,
// onDispose), serialized by a single reader/writer lock (spec §3/§5 —
// "All reads and writes are serialized by a single reader/writer lock").
type Store struct {
	mu          sync.RWMutex
	entries     map[any]*entry
	byLifecycle map[*Lifecycle][]any
	seq         int
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		entries:     make(map[any]*entry),
		byLifecycle: make(map[*Lifecycle][]any),
	}
}

// Put inserts value under key, bound to lifecycle, replacing any existing
// entry for key. onDispose (may be nil) runs when lifecycle is stopped.
func Put[T any](s *Store, key Key[T], lifecycle *Lifecycle, value T, onDispose func(T)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !lifecycle.IsActive() {
		return ErrLifecycleNotActive
	}
	s.putLocked(key, lifecycle, value, wrapDispose(onDispose))
	return nil
}

func (s *Store) putLocked(key any, lifecycle *Lifecycle, value any, onDisposeAny func(any)) {
	s.seq++
	s.entries[key] = &entry{value: value, lifecycle: lifecycle, onDispose: onDisposeAny, seq: s.seq}
	s.byLifecycle[lifecycle] = append(s.byLifecycle[lifecycle], key)
}

// wrapDispose adapts a typed onDispose into the store's internal any-typed
// hook; kept as a helper so Put/PutIfAbsent share the same boxing logic.
func wrapDispose[T any](onDispose func(T)) func(any) {
	if onDispose == nil {
		return nil
	}
	return func(v any) { onDispose(v.(T)) }
}

// TryPut is a no-op if key is already present (spec §3).
func TryPut[T any](s *Store, key Key[T], lifecycle *Lifecycle, value T, onDispose func(T)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[key]; ok {
		return nil
	}
	if !lifecycle.IsActive() {
		return ErrLifecycleNotActive
	}
	s.putLocked(key, lifecycle, value, wrapDispose(onDispose))
	return nil
}

// Get returns the value for key, if present.
func Get[T any](s *Store, key Key[T]) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[key]
	if !ok {
		var zero T
		return zero, false
	}
	return e.value.(T), true
}

// PutIfAbsent atomically inserts provide() under key if absent, then runs
// block against the (new-or-existing) value while still holding the
// store's write lock (spec §3).
func PutIfAbsent[T any](s *Store, key Key[T], lifecycle *Lifecycle, provide func() T, onDispose func(T), block func(T)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[key]
	if !ok {
		if !lifecycle.IsActive() {
			return ErrLifecycleNotActive
		}
		value := provide()
		s.putLocked(key, lifecycle, value, wrapDispose(onDispose))
		e = s.entries[key]
	}
	if block != nil {
		block(e.value.(T))
	}
	return nil
}

// StopLifecycle removes every entry attached to l and marks l inactive,
// then calls each removed entry's onDispose (in insertion order), then
// recursively stops l's children.
func (s *Store) StopLifecycle(l *Lifecycle) {
	s.mu.Lock()
	keys := s.byLifecycle[l]
	delete(s.byLifecycle, l)
	var toDispose []*entry
	for _, k := range keys {
		if e, ok := s.entries[k]; ok && e.lifecycle == l {
			toDispose = append(toDispose, e)
			delete(s.entries, k)
		}
	}
	children := append([]*Lifecycle(nil), l.children...)
	l.active = false
	s.mu.Unlock()

	for _, e := range toDispose {
		if e.onDispose != nil {
			e.onDispose(e.value)
		}
	}
	for _, c := range children {
		s.StopLifecycle(c)
	}
}
