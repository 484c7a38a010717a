// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Package bitset implements a presence bitmap of exactly
// one machine word, a mapping between the bits [0..W) and
// boolean values, where W is the word size of the platform.
//
// Studied [github.com/bits-and-blooms/bitset] inside out
// and rewrote the needed parts from scratch for this project.
//
// This implementation is heavily optimized for this internal use case.
package bitset

//  can inline BitSet.Test
//  can inline (*BitSet).MustSet
//  can inline BitSet.Rank0
//  can inline BitSet.IsEmpty

import (
	"fmt"
	"math/bits"
)

const (
	// Size is the number of bits in a BitSet, the native word size.
	Size = bits.UintSize

	// Log2Size is lg(Size), 6 on 64-bit and 5 on 32-bit platforms.
	Log2Size = 5 + bits.UintSize>>6
)

// BitSet represents a fixed size bitset from [0..Size-1],
// stored in a single machine word.
type BitSet uint

func (b BitSet) String() string {
	return fmt.Sprint(b.AsSlice(make([]uint, 0, Size)))
}

// MustSet sets the bit, a bit >= Size is silently a no-op,
// the shift overflows to zero.
func (b *BitSet) MustSet(bit uint) {
	*b |= 1 << bit
}

// Test if the bit is set.
func (b BitSet) Test(bit uint) bool {
	return b&(1<<bit) != 0
}

// AsSlice returns all set bits as slice of uint without
// heap allocations.
//
// This is faster than All, but also more dangerous,
// it panics if the capacity of buf is < the number of set bits
func (b BitSet) AsSlice(buf []uint) []uint {
	buf = buf[:cap(buf)] // use cap as max len

	size := 0
	for word := uint(b); word != 0; size++ {
		// panics if capacity of buf is exceeded.
		buf[size] = uint(bits.TrailingZeros(word))

		// clear the rightmost set bit
		word &= word - 1
	}

	return buf[:size]
}

// IsEmpty returns true if no bit is set.
func (b BitSet) IsEmpty() bool {
	return b == 0
}

// Rank0 is equal to Rank(bit)-1, the number of set bits in [0..bit] minus one.
//
// For a set bit this is the number of set bits below it,
// the slice index of the item in a popcount compressed sparse array.
func (b BitSet) Rank0(bit uint) int {
	// keep only the bits [0..bit], shift out the rest
	return bits.OnesCount(uint(b)<<(Size-1-bit&(Size-1))) - 1
}
