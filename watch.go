// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package perfmon

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
)

// watcherRegistry tracks which per-transaction slots currently have a
// watcher attached. Every operation is lock-free: start/stop drive a
// CAS retry loop over a per-slot flag rather than a mutex, since
// producers read the watcher count on their hot path and the registry
// must never make a producer block behind a watcher transition.
type watcherRegistry struct {
	store *valueStore
	flags []atomix.Uint64 // watchOff/watchOn/watchStarting, length numTrans+1, index 0 reserved
	count atomix.Int64
}

// Per-slot flag states. watchStarting marks a slot claimed by one start
// call that is still zeroing its arena; it reads as not watching.
const (
	watchOff      = 0
	watchOn       = 1
	watchStarting = 2
)

// newWatcherRegistry builds a registry sized to match store's
// per-transaction arenas.
func newWatcherRegistry(store *valueStore) *watcherRegistry {
	return &watcherRegistry{
		store: store,
		flags: make([]atomix.Uint64, len(store.tran)),
	}
}

// start begins watching slot, zeroing its arena first so the watch
// period only accumulates updates made after the call returns. start is
// idempotent: calling it twice on an already-watched slot is a no-op.
func (w *watcherRegistry) start(slot int) {
	sw := spin.Wait{}
	for {
		if w.flags[slot].LoadAcquire() == watchOn {
			return
		}
		if w.flags[slot].CompareAndSwapAcqRel(watchOff, watchStarting) {
			w.store.clearSlot(slot)
			w.count.AddAcqRel(1)
			// Only this call moves the slot out of watchStarting, so the
			// CAS always succeeds; it publishes watchOn after the clear.
			w.flags[slot].CompareAndSwapAcqRel(watchStarting, watchOn)
			return
		}
		sw.Wait()
	}
}

// stop ends watching slot. Idempotent like start.
func (w *watcherRegistry) stop(slot int) {
	sw := spin.Wait{}
	for {
		if w.flags[slot].LoadAcquire() == watchOff {
			return
		}
		if w.flags[slot].CompareAndSwapAcqRel(watchOn, watchOff) {
			w.count.AddAcqRel(-1)
			return
		}
		sw.Wait()
	}
}

// watching reports whether slot currently has a watcher attached.
// Lock-free: safe to call from a producer's hot path.
func (w *watcherRegistry) watching(slot int) bool {
	return w.flags[slot].LoadAcquire() == watchOn
}

// anyoneWatching reports whether any slot is currently watched. An
// outdated read causes at most one spurious skip or extra write to a
// stopped slot's arena, never corrupted state.
func (w *watcherRegistry) anyoneWatching() bool {
	return w.count.LoadRelaxed() > 0
}

// enableAlwaysCollect permanently bumps the watcher count without
// attaching it to any slot, forcing producers to run even with no
// client ever calling start. It is set once at [Engine.Initialize] and
// has no matching stop.
func (w *watcherRegistry) enableAlwaysCollect() {
	w.count.AddAcqRel(1)
}
