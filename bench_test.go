package sparsemap

import (
	"fmt"
	"math"
	"math/rand/v2"
	"runtime"
	"testing"
)

// roundFloat64 to 2 decimal places
func roundFloat64(f float64) float64 { return math.Round(f*100) / 100 }

var benchSizes = []int{1_000, 100_000, 1_000_000}

func BenchmarkArraySet(b *testing.B) {
	prng := rand.New(rand.NewPCG(42, 42))

	for _, n := range benchSizes {
		idxs := randomIndices(prng, n)

		b.Run(fmt.Sprintf("Set: %d", n), func(b *testing.B) {
			a := new(Array[int])
			for _, idx := range idxs {
				a.Set(idx, 1)
			}

			var i int
			for b.Loop() {
				a.Set(idxs[i%n], i)
				i++
			}
		})

		b.Run(fmt.Sprintf("SetPersist: %d", n), func(b *testing.B) {
			a := new(Array[int])
			for _, idx := range idxs {
				a.Set(idx, 1)
			}

			var i int
			for b.Loop() {
				a.SetPersist(idxs[i%n], i)
				i++
			}
		})
	}
}

func BenchmarkArrayGet(b *testing.B) {
	prng := rand.New(rand.NewPCG(42, 42))

	for _, n := range benchSizes {
		idxs := randomIndices(prng, n)

		a := new(Array[int])
		for _, idx := range idxs {
			a.Set(idx, 1)
		}

		b.Run(fmt.Sprintf("Get: %d", n), func(b *testing.B) {
			var i int
			for b.Loop() {
				a.Get(idxs[i%n])
				i++
			}
		})
	}
}

func BenchmarkMapHashers(b *testing.B) {
	prng := rand.New(rand.NewPCG(42, 42))
	keys := randomKeys(prng, 100_000)

	hashers := []struct {
		name string
		h    Hasher[string]
	}{
		{"maphash", NewMaphashHasher[string]()},
		{"xxhash", NewXXHasher[string](42)},
		{"murmur3", NewMurmur3Hasher[string](42)},
		{"fnv", NewFNVHasher[string](42)},
	}

	for _, tt := range hashers {
		m := NewWithHasher[string, int](tt.h)
		for i, k := range keys {
			m.Insert(k, i)
		}

		b.Run(tt.name+"/Hash", func(b *testing.B) {
			var i int
			for b.Loop() {
				tt.h.Hash(keys[i%len(keys)])
				i++
			}
		})

		b.Run(tt.name+"/Insert", func(b *testing.B) {
			var i int
			for b.Loop() {
				m.Insert(keys[i%len(keys)], i)
				i++
			}
		})

		b.Run(tt.name+"/Get", func(b *testing.B) {
			var i int
			for b.Loop() {
				m.Get(keys[i%len(keys)])
				i++
			}
		})

		b.Run(tt.name+"/InsertPersist", func(b *testing.B) {
			var i int
			for b.Loop() {
				m.InsertPersist(keys[i%len(keys)], i)
				i++
			}
		})
	}
}

func BenchmarkMapMemory(b *testing.B) {
	prng := rand.New(rand.NewPCG(42, 42))

	for _, n := range benchSizes {
		keys := randomKeys(prng, n)

		var startMem, endMem runtime.MemStats

		m := New[string, struct{}]()
		runtime.GC()
		runtime.ReadMemStats(&startMem)

		b.Run(fmt.Sprintf("Map: %d", n), func(b *testing.B) {
			for _, k := range keys {
				m.Insert(k, struct{}{})
			}

			runtime.GC()
			runtime.ReadMemStats(&endMem)

			stats := m.Stats()
			if stats.Leaves == 0 {
				b.Skip("No keys inserted")
			}

			bytes := float64(endMem.HeapAlloc - startMem.HeapAlloc)
			b.ReportMetric(roundFloat64(bytes/float64(m.Len())), "bytes/key")

			b.ReportMetric(float64(stats.Leaves), "leaves")
			b.ReportMetric(float64(stats.Branches), "branches")
			b.ReportMetric(float64(stats.MaxDepth), "depth")
			b.ReportMetric(0, "ns/op")
		})
	}
}
