// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Package sparsemap provides a persistent sparse array and
// a hash map layered on top of it.
//
//   - Array: maps sparse uint64 indices to values with a bitmap-indexed
//     trie, popcount compressed, no cost for absent indices.
//   - Map: hashes keys into the full 64-bit index space of an Array and
//     resolves collisions by linear probing. No resize, no rehash.
//
// Both support copy-on-write persistence. Clone is O(1), clones share
// all nodes and each write copies only the path from the root to the
// modified leaf, at most a handful of nodes since the trie depth is
// bounded by 64/log2(W) levels.
//
// The hash strategy of a Map is pluggable, see [Hasher]. The default
// is [MaphashHasher] with a random seed per Map.
//
// Removal and iteration are not supported.
package sparsemap
