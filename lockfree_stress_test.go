// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build !race

package perfmon

import (
	"runtime"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestWatcherRegistryConcurrentStartStop hammers a single slot's
// start/stop from many goroutines at once and a producer loop that reads
// anyoneWatching concurrently, checking only that nothing panics or
// deadlocks and that the registry settles into a consistent state.
func TestWatcherRegistryConcurrentStartStop(t *testing.T) {
	s := allocateStore(8, 4)
	w := newWatcherRegistry(s)

	const goroutines = 16
	const iterations = 500

	var wg sync.WaitGroup
	wg.Add(goroutines)
	for g := 0; g < goroutines; g++ {
		go func() {
			defer wg.Done()
			for i := 0; i < iterations; i++ {
				w.start(1)
				_ = w.anyoneWatching()
				w.stop(1)
			}
		}()
	}
	wg.Wait()

	assert.False(t, w.watching(1))
}

// TestWatcherRegistryStartNeverClearsOnceWatchIsVisible pits many
// concurrent start() callers against a writer that begins as soon as it
// observes the slot watching. Once flags[slot] is visibly watchOn, only
// the goroutine that claimed the slot (watchOff->watchStarting) may have
// cleared the arena, and it did so before publishing watchOn — so every
// write issued after watching() turns true must survive untouched,
// regardless of how many other start() calls are still spinning.
func TestWatcherRegistryStartNeverClearsOnceWatchIsVisible(t *testing.T) {
	s := allocateStore(4, 1)
	w := newWatcherRegistry(s)

	const starters = 32
	const writes = 2000

	var wg sync.WaitGroup
	wg.Add(starters)
	for g := 0; g < starters; g++ {
		go func() {
			defer wg.Done()
			w.start(1)
		}()
	}

	for !w.watching(1) {
		runtime.Gosched()
	}
	for i := 0; i < writes; i++ {
		s.tran[1][0].AddAcqRel(1)
	}

	wg.Wait()
	assert.Equal(t, uint64(writes), s.tran[1][0].LoadRelaxed())
}

func TestProducerConcurrentAddsUnderWatch(t *testing.T) {
	e, err := NewEngine(WithNumTrans(4))
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	defer e.Finalize()

	thread := NewThreadEntry(1)
	if err := e.WatchStart(thread); err != nil {
		t.Fatalf("WatchStart: %v", err)
	}
	defer e.WatchStop(thread)

	const goroutines = 8
	const perGoroutine = 1000

	var wg sync.WaitGroup
	wg.Add(goroutines)
	for g := 0; g < goroutines; g++ {
		go func() {
			defer wg.Done()
			for i := 0; i < perGoroutine; i++ {
				e.AddOne(thread, PBNumFetches)
			}
		}()
	}
	wg.Wait()

	snap := e.AllocValues()
	if err := e.CopyTranSnapshot(thread, snap); err != nil {
		t.Fatalf("CopyTranSnapshot: %v", err)
	}
	assert.Equal(t, uint64(goroutines*perGoroutine), snap[e.catalog[PBNumFetches].StartOffset])
}
