// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Package golden provides simple and slow reference models
// for the sparse array and the hash map, used as golden
// references in tests.
package golden

import (
	"fmt"
	"maps"
	"slices"
)

// GoldArray is a sparse array implemented with a builtin map.
type GoldArray[V any] map[uint64]V

// Get returns the value at index.
func (g GoldArray[V]) Get(index uint64) (val V, ok bool) {
	val, ok = g[index]
	return
}

// Set the value at index, returns the previous value.
func (g GoldArray[V]) Set(index uint64, val V) (prev V, existed bool) {
	prev, existed = g[index]
	g[index] = val
	return
}

// Indices returns all populated indices, sorted.
func (g GoldArray[V]) Indices() []uint64 {
	return slices.Sorted(maps.Keys(g))
}

// GoldMapItem is a key/value pair stored in a probe slot.
type GoldMapItem[K comparable, V any] struct {
	Key K
	Val V
}

func (g GoldMapItem[K, V]) String() string {
	return fmt.Sprintf("(%v, %v)", g.Key, g.Val)
}

// GoldMap is a linear probing hash table over a builtin map
// as slot space. It shares the probing rule with sparsemap.Map,
// so the slot of every key must be the same in both.
type GoldMap[K comparable, V any] struct {
	Hash  func(K) uint64
	Slots map[uint64]GoldMapItem[K, V]
}

// NewGoldMap returns an empty GoldMap with the hash func.
func NewGoldMap[K comparable, V any](hash func(K) uint64) *GoldMap[K, V] {
	return &GoldMap[K, V]{
		Hash:  hash,
		Slots: make(map[uint64]GoldMapItem[K, V]),
	}
}

// Slot returns the probe slot of key and if the key is present.
func (g *GoldMap[K, V]) Slot(key K) (index uint64, found bool) {
	index = g.Hash(key)
	for {
		item, ok := g.Slots[index]
		if !ok {
			return index, false
		}
		if item.Key == key {
			return index, true
		}
		index++
	}
}

// Get returns the value for key.
func (g *GoldMap[K, V]) Get(key K) (val V, ok bool) {
	index, found := g.Slot(key)
	if !found {
		return
	}
	return g.Slots[index].Val, true
}

// Insert key and val, returns the previous value.
func (g *GoldMap[K, V]) Insert(key K, val V) (prev V, existed bool) {
	index, found := g.Slot(key)
	if found {
		prev, existed = g.Slots[index].Val, true
	}
	g.Slots[index] = GoldMapItem[K, V]{Key: key, Val: val}
	return
}
