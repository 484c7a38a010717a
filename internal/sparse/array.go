// Copyright (c) 2024 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Package sparse implements a generic sparse array
// with popcount compression for max. one machine word of items.
package sparse

import (
	"github.com/gaissmai/sparsemap/internal/bitset"
)

// Array is a generic implementation of a sparse array
// with popcount compression and payload T.
//
// The bitset is the presence bitmap, Items holds only the
// present elements, ordered by bit position.
type Array[T any] struct {
	bitset.BitSet
	Items []T
}

// MustSet of the underlying bitset is forbidden. The bitset and the items are coupled.
// An unsynchronized Set() disturbs the coupling between bitset and Items[].
func (a *Array[T]) MustSet(uint) {
	panic("forbidden, use InsertAt")
}

// Len returns the number of items in sparse array.
func (a *Array[T]) Len() int {
	return len(a.Items)
}

// Get the value at i from sparse array.
//
// example: a.Get(5) -> a.Items[1]
//
//	                        ⬇
//	BitSet:      [0|0|1|0|0|1|0|...|1] <- 3 bits set
//	Items:       [*|*|*]               <- len(Items) = 3
//	                ⬆
//
//	BitSet.Test(5):     true
//	BitSet.Rank0(5):    1, popcount of [0,5] minus one
func (a *Array[T]) Get(i uint) (value T, ok bool) {
	if a.Test(i) {
		return a.Items[a.Rank0(i)], true
	}
	return
}

// MustGet, use it only after a successful test
// or the behavior is undefined, maybe it panics.
func (a *Array[T]) MustGet(i uint) T {
	return a.Items[a.Rank0(i)]
}

// InsertAt a value at i into the sparse array.
// If the value already exists, overwrite it with val and return true.
func (a *Array[T]) InsertAt(i uint, value T) (exists bool) {
	// slot exists, overwrite value
	if a.Test(i) {
		a.Items[a.Rank0(i)] = value
		return true
	}

	// new, insert into bitset ...
	a.BitSet.MustSet(i)

	// ... and slice
	a.insertItem(a.Rank0(i), value)

	return false
}

// Copy returns a shallow copy of the Array.
// The elements are copied using assignment, this is no deep clone.
func (a *Array[T]) Copy() *Array[T] {
	if a == nil {
		return nil
	}

	return &Array[T]{
		BitSet: a.BitSet,
		Items:  append(a.Items[:0:0], a.Items...),
	}
}

// insertItem inserts the item at index i, shift the rest one pos right
//
// It panics if i is out of range.
func (a *Array[T]) insertItem(i int, item T) {
	if len(a.Items) < cap(a.Items) {
		a.Items = a.Items[:len(a.Items)+1] // fast resize, no alloc
	} else {
		var zero T
		a.Items = append(a.Items, zero) // append one item, mostly enlarge cap by more than one item
	}

	_ = a.Items[i]                   // BCE
	copy(a.Items[i+1:], a.Items[i:]) // shift one slot right, starting at [i]
	a.Items[i] = item                // insert new item at [i]
}
