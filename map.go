// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package sparsemap

import (
	"github.com/gaissmai/sparsemap/internal/value"
)

// Map is a persistent hash map from keys K to values V.
//
// Keys are hashed to a uint64 index into an [Array], collisions are
// resolved by linear probing. The Array spans the whole 64-bit index
// space and costs memory only for populated slots, so the Map never
// resizes or rehashes, collisions only lengthen the probe chain.
//
// The zero value is ready to use with a randomly seeded [MaphashHasher].
// As with [Array], use [Map.Clone] instead of copying a Map by value.
//
// Concurrency follows [Array]: Insert must not run concurrently with any
// other method on the same handle. Get, Contains, Len, Stats, Clone and
// InsertPersist may be called concurrently on a handle nobody inserts into.
//
// There is no removal, the probe chains have no tombstones.
type Map[K comparable, V any] struct {
	table  Array[entry[K, V]]
	hasher Hasher[K]
}

// entry is the payload of a table slot.
type entry[K comparable, V any] struct {
	key K
	val V
}

// Clone implements Cloner, the key is copied, the value
// is cloned if it implements Cloner itself.
func (e entry[K, V]) Clone() entry[K, V] {
	return entry[K, V]{key: e.key, val: value.CloneVal(e.val)}
}

// New returns an empty Map with the default hash strategy,
// a [MaphashHasher] with a random seed.
func New[K comparable, V any]() *Map[K, V] {
	return &Map[K, V]{hasher: NewMaphashHasher[K]()}
}

// NewWithHasher returns an empty Map with the hash strategy h.
func NewWithHasher[K comparable, V any](h Hasher[K]) *Map[K, V] {
	if h == nil {
		panic("NewWithHasher with nil Hasher")
	}
	return &Map[K, V]{hasher: h}
}

// probe runs the probe sequence for key, starting at its hash.
// It stops at the first slot that is either empty or holds key
// and returns that slot index and whether the key was found.
func (m *Map[K, V]) probe(key K) (index uint64, e entry[K, V], found bool) {
	hash := m.hasher.Hash(key)

	for index = hash; ; {
		var ok bool
		if e, ok = m.table.Get(index); !ok {
			return index, e, false
		}

		if e.key == key {
			return index, e, true
		}

		// collision, try next slot, wraps around at 2^64
		index++

		if index == hash {
			panic("logic error, probe sequence wrapped around the index space")
		}
	}
}

// Get returns the value for key and true, or the zero value
// and false if the key is not in the Map.
func (m *Map[K, V]) Get(key K) (val V, ok bool) {
	// no hasher, never inserted
	if m == nil || m.hasher == nil {
		return
	}

	_, e, ok := m.probe(key)
	return e.val, ok
}

// Contains reports whether the key is in the Map.
func (m *Map[K, V]) Contains(key K) bool {
	_, ok := m.Get(key)
	return ok
}

// Insert key and val. If the key is already present its value is
// replaced, the previous value is returned and existed is true.
func (m *Map[K, V]) Insert(key K, val V) (prev V, existed bool) {
	if m == nil {
		panic("Insert on nil Map")
	}

	if m.hasher == nil {
		m.hasher = NewMaphashHasher[K]()
	}

	index, _, _ := m.probe(key)

	old, existed := m.table.Set(index, entry[K, V]{key: key, val: val})
	return old.val, existed
}

// InsertPersist is similar to Insert but the receiver isn't modified.
//
// The returned Map shares the hash strategy and all untouched nodes
// with the receiver.
func (m *Map[K, V]) InsertPersist(key K, val V) *Map[K, V] {
	pm := m.Clone()
	if pm == nil {
		pm = new(Map[K, V])
	}
	pm.Insert(key, val)

	return pm
}

// Clone returns a new handle to the same content in O(1).
// The clone uses the same hasher, so the seed carries over.
// A zero value Map has no hasher and no keys yet, its clone
// creates its own hasher on first insert.
func (m *Map[K, V]) Clone() *Map[K, V] {
	if m == nil {
		return nil
	}

	pm := &Map[K, V]{hasher: m.hasher}
	m.table.cloneTo(&pm.table)

	return pm
}

// Len returns the number of keys in the Map.
func (m *Map[K, V]) Len() int {
	if m == nil {
		return 0
	}
	return m.table.Len()
}

// Stats returns the shape of the underlying trie.
func (m *Map[K, V]) Stats() Stats {
	if m == nil {
		return Stats{}
	}
	return m.table.Stats()
}
