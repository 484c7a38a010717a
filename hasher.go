// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package sparsemap

import (
	"crypto/rand"
	"encoding/binary"
	"hash/maphash"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/spaolacci/murmur3"
)

// Hasher is the hash strategy of a [Map].
//
// Hash must be deterministic for the lifetime of the Hasher, equal keys
// must hash to equal values. Every call is a fresh hash computation with
// the seed chosen at construction, implementations carry no state between
// calls and are safe for concurrent use.
type Hasher[K any] interface {
	Hash(key K) uint64
}

// HasherFunc adapts an ordinary function to the [Hasher] interface.
type HasherFunc[K any] func(key K) uint64

// Hash calls f(key).
func (f HasherFunc[K]) Hash(key K) uint64 {
	return f(key)
}

// MaphashHasher hashes any comparable key with [maphash.Comparable].
// It is the default hash strategy of a [Map].
//
// The zero value is not usable, use [NewMaphashHasher].
type MaphashHasher[K comparable] struct {
	seed maphash.Seed
}

// NewMaphashHasher returns a hasher with a random seed,
// every instance hashes differently.
func NewMaphashHasher[K comparable]() MaphashHasher[K] {
	return MaphashHasher[K]{seed: maphash.MakeSeed()}
}

// Hash implements [Hasher].
func (h MaphashHasher[K]) Hash(key K) uint64 {
	return maphash.Comparable(h.seed, key)
}

// XXHasher hashes string keys with the seeded xxHash64 algorithm.
type XXHasher[K ~string] struct {
	seed uint64
}

// NewXXHasher returns a xxHash64 hasher for seed.
func NewXXHasher[K ~string](seed uint64) XXHasher[K] {
	return XXHasher[K]{seed: seed}
}

// Hash implements [Hasher].
func (h XXHasher[K]) Hash(key K) uint64 {
	d := xxhash.NewWithSeed(h.seed)
	_, _ = d.WriteString(string(key))
	return d.Sum64()
}

// Murmur3Hasher hashes string keys with the seeded 64-bit murmur3 algorithm.
type Murmur3Hasher[K ~string] struct {
	seed uint32
}

// NewMurmur3Hasher returns a murmur3 hasher for seed.
func NewMurmur3Hasher[K ~string](seed uint32) Murmur3Hasher[K] {
	return Murmur3Hasher[K]{seed: seed}
}

// Hash implements [Hasher].
func (h Murmur3Hasher[K]) Hash(key K) uint64 {
	return murmur3.Sum64WithSeed([]byte(key), h.seed)
}

// FNVHasher hashes string keys with FNV-1a, the seed is mixed
// into the offset basis.
//
// FNV is fast for short keys but weak against chosen keys,
// prefer the default hasher for untrusted input.
type FNVHasher[K ~string] struct {
	seed uint64
}

// NewFNVHasher returns a FNV-1a hasher for seed.
func NewFNVHasher[K ~string](seed uint64) FNVHasher[K] {
	return FNVHasher[K]{seed: seed}
}

// Hash implements [Hasher].
func (h FNVHasher[K]) Hash(key K) uint64 {
	const (
		offset64 = 14695981039346656037
		prime64  = 1099511628211
	)

	hash := uint64(offset64) ^ h.seed
	for i := 0; i < len(key); i++ {
		hash ^= uint64(key[i])
		hash *= prime64
	}

	return hash
}

// RandomSeed returns a random seed for the seeded hashers.
func RandomSeed() uint64 {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		// crypto/rand failing is next to impossible
		return uint64(time.Now().UnixNano())
	}
	return binary.LittleEndian.Uint64(b[:])
}
