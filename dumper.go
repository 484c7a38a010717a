// Copyright (c) 2024 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package sparsemap

import (
	"fmt"
	"io"
	"strings"
)

// ##################################################
//  useful during development, debugging and testing
// ##################################################

// dumpString is just a wrapper for dump.
func (a *Array[V]) dumpString() string {
	w := new(strings.Builder)
	a.dump(w)

	return w.String()
}

// dump the array structure and all the nodes to w.
func (a *Array[V]) dump(w io.Writer) {
	if a == nil || a.root == nil {
		return
	}

	s := a.Stats()
	fmt.Fprintf(w, "### size(%d), branches(%d), depth(%d)\n", a.size, s.Branches, s.MaxDepth)
	dumpRec[V](w, a.root, 0)
}

// dumpRec, rec-descent the trie.
func dumpRec[V any](w io.Writer, n any, level int) {
	indent := strings.Repeat(".", level)
	depth := uint(level) * strideLen

	switch kid := n.(type) {
	case *leaf[V]:
		fmt.Fprintf(w, "%s[LEAF] depth: %d index: %#016x value: %v\n", indent, depth, kid.index, kid.value)

	case *branch[V]:
		fmt.Fprintf(w, "%s[BRANCH] depth: %d childs(#%d): %v\n", indent, depth, kid.children.Len(), kid.children.BitSet)
		for bit := range kid.children.All() {
			dumpRec[V](w, kid.children.MustGet(bit), level+1)
		}

	default:
		panic("logic error, wrong node type")
	}
}
