// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package sparsemap

import (
	"sync/atomic"

	"github.com/gaissmai/sparsemap/internal/value"
)

// Array is a persistent sparse array from uint64 indices to values of type V.
//
// It is implemented as a bitmap-indexed trie, each level discriminates
// the next log2(W) bits of the index, W being the machine word size.
// Absent indices cost nothing and there is no capacity or resize step.
//
// The zero value is ready to use. An Array must not be copied by value
// after first use, use [Array.Clone] to get an independent handle.
// Clones share all nodes until one of them writes, then only the path
// from the root to the modified leaf is copied.
//
// Concurrency: Set must not run concurrently with any other method on
// the same handle. Get, Len, Stats, Clone and SetPersist may be called
// concurrently from many goroutines on a handle nobody calls Set on,
// e.g. a version published through an atomic pointer.
type Array[V any] struct {
	root any // *leaf[V] or *branch[V], nil if empty
	size int

	// owner of the nodes modifiable in place, nil after Clone.
	// Atomic, Clone drops it on a possibly shared receiver.
	owner atomic.Pointer[owner]
}

// Get returns the value at index and true, or the zero value
// and false if the index was never set.
func (a *Array[V]) Get(index uint64) (val V, ok bool) {
	if a == nil {
		return
	}
	return lookup[V](a.root, index)
}

// Set the value at index. If the index was already set, the previous
// value is returned and existed is true.
//
// Nodes shared with other handles are copied before the write,
// nodes owned by this handle are modified in place.
//
// If the payload type V contains pointers or needs deep copying, it
// should implement the [Cloner] interface. A previous value coming from
// a shared node is then returned as a deep clone.
func (a *Array[V]) Set(index uint64, val V) (prev V, existed bool) {
	if a == nil {
		panic("Set on nil Array")
	}

	o := a.owner.Load()
	if o == nil {
		o = new(owner)
		a.owner.Store(o)
	}

	cloneFn := value.CloneFnFactory[V]()
	if cloneFn == nil {
		cloneFn = value.CopyVal[V]
	}

	a.root, prev, existed = setRec(o, cloneFn, a.root, 0, index, val)
	if !existed {
		a.size++
	}

	return prev, existed
}

// SetPersist is similar to Set but the content of the receiver isn't
// modified, the receiver only gives up the in-place ownership of its nodes.
//
// All nodes touched during the set are copied and a new Array is returned.
// This is not a full deep copy, all untouched nodes are still referenced
// from both Arrays.
func (a *Array[V]) SetPersist(index uint64, val V) *Array[V] {
	pa := a.Clone()
	if pa == nil {
		pa = new(Array[V])
	}
	pa.Set(index, val)

	return pa
}

// Clone returns a new handle to the same content in O(1).
//
// The receiver and the clone share the trie, both lose the exclusive
// ownership of all existing nodes, so the next write on either side
// copies the path it touches.
func (a *Array[V]) Clone() *Array[V] {
	if a == nil {
		return nil
	}

	c := new(Array[V])
	a.cloneTo(c)

	return c
}

// cloneTo makes c a handle to the content of a, c must be empty.
// A fresh owner is allocated on the next Set of each side.
func (a *Array[V]) cloneTo(c *Array[V]) {
	a.owner.Store(nil)

	c.root = a.root
	c.size = a.size
}

// Len returns the number of populated indices.
func (a *Array[V]) Len() int {
	if a == nil {
		return 0
	}
	return a.size
}

// Stats returns the shape of the trie.
func (a *Array[V]) Stats() Stats {
	var s Stats
	if a == nil {
		return s
	}
	statsRec[V](a.root, 1, &s)
	return s
}
