// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gaissmai/sparsemap"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var perfCmd = &cobra.Command{
	Use:     "perf",
	Short:   "insert random keys and measure lookups",
	RunE:    runPerf,
	PreRunE: processPerfConfig,
}

// perfConfig, flags and SPARSEMAP_* environment.
type perfConfig struct {
	keys    int
	lookups int
	readers int
	hasher  string
	seed    uint64
	persist bool
}

var perfCfg perfConfig

func init() {
	key := "keys"
	perfCmd.Flags().Int(key, 1_000_000, "number of random keys to insert")
	key = "lookups"
	perfCmd.Flags().Int(key, 10_000_000, "number of lookups after the inserts")
	key = "readers"
	perfCmd.Flags().Int(key, 4, "concurrent readers in persist mode")
	key = "hasher"
	perfCmd.Flags().String(key, "maphash", "hash strategy (maphash, xxhash, murmur3, fnv)")
	key = "seed"
	perfCmd.Flags().Uint64(key, 0, "seed for the key generator and the seeded hashers, 0 is random")
	key = "persist"
	perfCmd.Flags().Bool(key, false, "insert with InsertPersist and read lock-free concurrently")
}

func processPerfConfig(cmd *cobra.Command, _ []string) error {
	v := viper.New()
	v.SetEnvPrefix("SPARSEMAP")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("binding flags: %w", err)
	}

	perfCfg = perfConfig{
		keys:    v.GetInt("keys"),
		lookups: v.GetInt("lookups"),
		readers: v.GetInt("readers"),
		hasher:  v.GetString("hasher"),
		seed:    v.GetUint64("seed"),
		persist: v.GetBool("persist"),
	}

	if perfCfg.keys <= 0 {
		return fmt.Errorf("keys must be positive, got %d", perfCfg.keys)
	}
	if perfCfg.lookups < 0 {
		return fmt.Errorf("lookups must not be negative, got %d", perfCfg.lookups)
	}
	if perfCfg.persist && perfCfg.readers <= 0 {
		return fmt.Errorf("readers must be positive in persist mode, got %d", perfCfg.readers)
	}
	if perfCfg.seed == 0 {
		perfCfg.seed = sparsemap.RandomSeed()
	}

	return nil
}

// newHasher returns the hash strategy by name.
func newHasher(name string, seed uint64) (sparsemap.Hasher[string], error) {
	switch name {
	case "maphash":
		return sparsemap.NewMaphashHasher[string](), nil
	case "xxhash":
		return sparsemap.NewXXHasher[string](seed), nil
	case "murmur3":
		return sparsemap.NewMurmur3Hasher[string](uint32(seed)), nil
	case "fnv":
		return sparsemap.NewFNVHasher[string](seed), nil
	default:
		return nil, fmt.Errorf("unknown hasher %q", name)
	}
}

// randomKeys returns n random string keys, duplicates are possible.
func randomKeys(prng *rand.Rand, n int) []string {
	keys := make([]string, n)
	for i := range keys {
		keys[i] = strconv.FormatUint(prng.Uint64(), 36)
	}
	return keys
}

func runPerf(_ *cobra.Command, _ []string) error {
	h, err := newHasher(perfCfg.hasher, perfCfg.seed)
	if err != nil {
		return err
	}

	prng := rand.New(rand.NewPCG(perfCfg.seed, 42))
	keys := randomKeys(prng, perfCfg.keys)

	log := logger.WithFields(logrus.Fields{
		"hasher":  perfCfg.hasher,
		"keys":    perfCfg.keys,
		"persist": perfCfg.persist,
	})

	if perfCfg.persist {
		return runPersist(log, h, keys)
	}

	m := sparsemap.NewWithHasher[string, int](h)

	start := time.Now()
	for i, k := range keys {
		m.Insert(k, i)
	}
	elapsed := time.Since(start)

	log.WithFields(logrus.Fields{
		"elapsed": elapsed,
		"ns/op":   elapsed.Nanoseconds() / int64(len(keys)),
		"len":     m.Len(),
	}).Info("inserts done")

	var hits int
	start = time.Now()
	for i := range perfCfg.lookups {
		if _, ok := m.Get(keys[i%len(keys)]); ok {
			hits++
		}
	}
	elapsed = time.Since(start)

	stats := m.Stats()
	log.WithFields(logrus.Fields{
		"elapsed":  elapsed,
		"ns/op":    elapsed.Nanoseconds() / int64(max(perfCfg.lookups, 1)),
		"hits":     hits,
		"branches": stats.Branches,
		"depth":    stats.MaxDepth,
	}).Info("lookups done")

	if hits != perfCfg.lookups {
		return fmt.Errorf("lost keys, %d hits for %d lookups", hits, perfCfg.lookups)
	}

	return nil
}

// runPersist inserts with a single writer while readers
// query the published versions lock-free.
func runPersist(log logrus.FieldLogger, h sparsemap.Hasher[string], keys []string) error {
	sm := NewSyncMap[int](h)

	var wg sync.WaitGroup
	done := make(chan struct{})
	lookups := make([]int, perfCfg.readers)

	for r := range perfCfg.readers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; ; i++ {
				select {
				case <-done:
					return
				default:
				}
				sm.Get(keys[i%len(keys)])
				lookups[r]++
			}
		}()
	}

	start := time.Now()
	for i, k := range keys {
		sm.Insert(k, i)
	}
	elapsed := time.Since(start)

	close(done)
	wg.Wait()

	var total int
	for _, n := range lookups {
		total += n
	}

	log.WithFields(logrus.Fields{
		"elapsed":  elapsed,
		"ns/op":    elapsed.Nanoseconds() / int64(len(keys)),
		"len":      sm.Load().Len(),
		"lookups":  total,
		"readers":  perfCfg.readers,
		"branches": sm.Load().Stats().Branches,
	}).Info("persistent inserts done")

	for _, k := range keys {
		if _, ok := sm.Get(k); !ok {
			return fmt.Errorf("lost key %q", k)
		}
	}

	return nil
}
