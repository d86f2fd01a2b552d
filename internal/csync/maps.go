// Package csync holds the concurrency-safe containers shared by editors,
// toolbars and the playground.
package csync

import (
	"cmp"
	"iter"
	"maps"
	"slices"
	"sync"
)

// Map is a map guarded by a RWMutex.
type Map[K comparable, V any] struct {
	inner map[K]V
	mu    sync.RWMutex
}

func NewMap[K comparable, V any]() *Map[K, V] {
	return &Map[K, V]{
		inner: make(map[K]V),
	}
}

// Set stores value under key, replacing any previous value.
func (m *Map[K, V]) Set(key K, value V) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.inner[key] = value
}

// SetIfAbsent stores value only when key is unused and reports whether it
// did.
func (m *Map[K, V]) SetIfAbsent(key K, value V) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.inner[key]; ok {
		return false
	}
	m.inner[key] = value
	return true
}

func (m *Map[K, V]) Del(key K) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.inner, key)
}

func (m *Map[K, V]) Get(key K) (V, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.inner[key]
	return v, ok
}

func (m *Map[K, V]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.inner)
}

// Seq2 iterates over a snapshot, so the callback may modify the map.
func (m *Map[K, V]) Seq2() iter.Seq2[K, V] {
	m.mu.RLock()
	snapshot := maps.Clone(m.inner)
	m.mu.RUnlock()
	return func(yield func(K, V) bool) {
		for k, v := range snapshot {
			if !yield(k, v) {
				return
			}
		}
	}
}

// SortedKeys returns the keys of m in ascending order.
func SortedKeys[K cmp.Ordered, V any](m *Map[K, V]) []K {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Sorted(maps.Keys(m.inner))
}
