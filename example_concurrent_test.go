package sparsemap_test

import (
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/gaissmai/sparsemap"
)

// SyncMap demonstrates how to wrap a [sparsemap.Map] for safe concurrent access in Go.
//
// This example struct allows multiple goroutines to perform lock-free, concurrent reads
// via an atomic pointer, while synchronizing writers with a mutex to ensure exclusive access.
// This concurrency pattern is useful when reads are frequent and writes are rare.
type SyncMap[K comparable, V any] struct {
	// Atomic pointer to the current map version.
	// Enables lock-free, concurrent reads by multiple goroutines.
	atomicPtr atomic.Pointer[sparsemap.Map[K, V]]

	// Mutex for synchronizing concurrent writers.
	// Only one writer at a time is allowed.
	mutex sync.Mutex
}

// NewSyncMap creates and initializes a new SyncMap.
func NewSyncMap[K comparable, V any]() *SyncMap[K, V] {
	sm := new(SyncMap[K, V])
	sm.atomicPtr.Store(sparsemap.New[K, V]())
	return sm
}

// Get is a sync adapter for [sparsemap.Map.Get].
func (sm *SyncMap[K, V]) Get(key K) (val V, ok bool) {
	m := sm.atomicPtr.Load() // lock-free read of the current map version
	return m.Get(key)
}

// Insert is a sync adapter for [sparsemap.Map.Insert].
// It creates a new persistent map version and atomically updates the pointer.
// Concurrent readers remain lock-free and always see a consistent map.
func (sm *SyncMap[K, V]) Insert(key K, val V) {
	sm.mutex.Lock() // acquire writer lock to exclude other writers
	defer sm.mutex.Unlock()

	oldPtr := sm.atomicPtr.Load()            // get current map version
	newPtr := oldPtr.InsertPersist(key, val) // create new persistent map version

	sm.atomicPtr.Store(newPtr) // atomically publish new version for readers
}

func ExampleMap_InsertPersist_concurrent() {
	sm := NewSyncMap[string, int]()

	var wg sync.WaitGroup
	for w := range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 100 {
				sm.Insert(strconv.Itoa(w*100+i), i)
			}
		}()
	}

	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 400 {
				_, _ = sm.Get(strconv.Itoa(i))
			}
		}()
	}

	wg.Wait()

	fmt.Println("len:", sm.atomicPtr.Load().Len())

	// Output:
	// len: 400
}
