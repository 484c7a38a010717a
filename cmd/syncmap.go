// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package main

import (
	"sync"
	"sync/atomic"

	"github.com/gaissmai/sparsemap"
)

// SyncMap publishes persistent map versions for lock-free readers,
// writers are serialized by the mutex.
type SyncMap[V any] struct {
	atomic.Pointer[sparsemap.Map[string, V]]
	sync.Mutex
}

// NewSyncMap returns a SyncMap with an empty map using hasher h.
func NewSyncMap[V any](h sparsemap.Hasher[string]) *SyncMap[V] {
	sm := new(SyncMap[V])
	sm.Store(sparsemap.NewWithHasher[string, V](h))
	return sm
}

// Get is lock-free, it reads the current version.
func (sm *SyncMap[V]) Get(key string) (V, bool) {
	return sm.Load().Get(key)
}

// Insert creates and publishes a new version.
func (sm *SyncMap[V]) Insert(key string, val V) {
	sm.Lock() // acquire writer lock to exclude other writers
	defer sm.Unlock()

	oldPtr := sm.Load()                      // get current map version
	newPtr := oldPtr.InsertPersist(key, val) // create new persistent map version

	sm.Store(newPtr) // atomically publish new version for readers
}
