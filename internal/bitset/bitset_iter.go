// Copyright (c) 2024 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package bitset

import (
	"iter"
	"math/bits"
)

// All iterates over all the set bits in ascending order.
func (b BitSet) All() iter.Seq[uint] {
	return func(yield func(u uint) bool) {
		for word := uint(b); word != 0; {
			if !yield(uint(bits.TrailingZeros(word))) {
				return
			}

			// clear the rightmost set bit
			word &= word - 1
		}
	}
}
