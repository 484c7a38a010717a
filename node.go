// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package sparsemap

import (
	"github.com/gaissmai/sparsemap/internal/bitset"
	"github.com/gaissmai/sparsemap/internal/sparse"
	"github.com/gaissmai/sparsemap/internal/value"
)

const (
	strideLen = bitset.Log2Size // bits of the index consumed per trie level
	maxDepth  = (64 + strideLen - 1) / strideLen
)

// owner is the identity of the Array allowed to modify a node in place.
// It must not be a zero-sized type, ZSTs share one address.
type owner struct{ _ byte }

// leaf is a terminal node, one index/value pair.
type leaf[V any] struct {
	owner *owner
	index uint64
	value V
}

// branch is an inner node, the children are popcount compressed,
// with the presence bitmap over the W possible child slots.
// A branch has at least one child, empty branches are never built.
type branch[V any] struct {
	owner    *owner
	children sparse.Array[any] // *leaf[V] or *branch[V]
}

// childBit extracts the stride of index discriminated at depth.
func childBit(depth uint, index uint64) uint {
	return uint(index>>depth) & (bitset.Size - 1)
}

// lookup walks down from n in a loop, no allocations.
func lookup[V any](n any, index uint64) (val V, ok bool) {
	for depth := uint(0); ; depth += strideLen {
		switch kid := n.(type) {
		case *branch[V]:
			var found bool
			if n, found = kid.children.Get(childBit(depth, index)); !found {
				return val, false
			}

		case *leaf[V]:
			if kid.index == index {
				return kid.value, true
			}
			return val, false

		case nil:
			return val, false

		default:
			panic("logic error, wrong node type")
		}
	}
}

// setRec sets val at index in the subtrie n at depth and returns the
// node that replaces n in its parent. Nodes not owned by o are copied
// before modification, all untouched siblings stay shared.
func setRec[V any](o *owner, cloneFn value.CloneFunc[V], n any, depth uint, index uint64, val V) (_ any, prev V, existed bool) {
	switch kid := n.(type) {
	case nil:
		return &leaf[V]{owner: o, index: index, value: val}, prev, false

	case *leaf[V]:
		if kid.index == index {
			if kid.owner == o {
				prev, kid.value = kid.value, val
				return kid, prev, true
			}

			// shared leaf, the old value stays visible through other handles
			return &leaf[V]{owner: o, index: index, value: val}, cloneFn(kid.value), true
		}

		// collision at this depth, demote the leaf into a new branch
		// and insert the new index there, maybe further down.
		b := &branch[V]{owner: o}
		b.children.InsertAt(childBit(depth, kid.index), kid)

		if _, existed = b.setChild(o, cloneFn, depth, index, val); existed {
			panic("logic error, leaf split found an existing index")
		}
		return b, prev, false

	case *branch[V]:
		if kid.owner != o {
			kid = kid.copyFlat(o)
		}
		prev, existed = kid.setChild(o, cloneFn, depth, index, val)
		return kid, prev, existed

	default:
		panic("logic error, wrong node type")
	}
}

// setChild sets val at index below the owned branch b.
func (b *branch[V]) setChild(o *owner, cloneFn value.CloneFunc[V], depth uint, index uint64, val V) (prev V, existed bool) {
	bit := childBit(depth, index)

	if b.children.Test(bit) {
		var child any
		child, prev, existed = setRec(o, cloneFn, b.children.MustGet(bit), depth+strideLen, index, val)
		b.children.InsertAt(bit, child)
		return prev, existed
	}

	// empty slot, no recursion needed
	b.children.InsertAt(bit, &leaf[V]{owner: o, index: index, value: val})
	return prev, false
}

// copyFlat returns a shallow copy of the branch owned by o,
// the children are shared, not cloned.
func (b *branch[V]) copyFlat(o *owner) *branch[V] {
	return &branch[V]{
		owner:    o,
		children: *b.children.Copy(),
	}
}

// Stats of a trie.
type Stats struct {
	Leaves   int // number of index/value pairs
	Branches int // number of inner nodes
	MaxDepth int // levels on the longest path, the root level is 1
}

// statsRec, rec-descent the trie.
func statsRec[V any](n any, level int, s *Stats) {
	switch kid := n.(type) {
	case nil:
		return
	case *leaf[V]:
		s.Leaves++
	case *branch[V]:
		if kid.children.IsEmpty() {
			panic("logic error, empty branch")
		}
		s.Branches++
		for bit := range kid.children.All() {
			statsRec[V](kid.children.MustGet(bit), level+1, s)
		}
	default:
		panic("logic error, wrong node type")
	}
	s.MaxDepth = max(s.MaxDepth, level)
}
