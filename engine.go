// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package perfmon

// Engine is the process-wide performance telemetry object, encapsulated
// in an engine-owned value created at init rather than package-level
// globals. There is no package-level mutable state; every statistic, arena and watcher lives
// on an *Engine, which a process typically constructs exactly once and
// threads through every call site that needs to observe or record
// activity.
type Engine struct {
	cfg         engineConfig
	catalog     [statCount]CatalogEntry
	totalSlots  int
	store       *valueStore
	watchers    *watcherRegistry
	peeks       []peekRegistration
	initialized bool
}

// NewEngine constructs an Engine and calls [Engine.Initialize] on it.
func NewEngine(opts ...Option) (*Engine, error) {
	e := &Engine{cfg: defaultEngineConfig()}
	for _, opt := range opts {
		opt(&e.cfg)
	}
	if err := e.Initialize(e.cfg.numTrans); err != nil {
		return nil, err
	}
	return e, nil
}

// Initialize computes catalog offsets, allocates the value arenas and
// watch-flag array, and marks the engine ready. It is a single-threaded
// boot step; calling it twice on the same Engine without
// an intervening [Engine.Finalize] is a programmer error.
func (e *Engine) Initialize(numTrans int) error {
	cat, total, err := newCatalog()
	if err != nil {
		return err
	}
	e.catalog = cat
	e.totalSlots = total
	e.store = allocateStore(total, numTrans)
	e.watchers = newWatcherRegistry(e.store)
	if e.cfg.alwaysCollect {
		e.watchers.enableAlwaysCollect()
	}
	e.initialized = true
	return nil
}

// Finalize releases the arenas and flags and clears the initialized
// flag.
func (e *Engine) Finalize() {
	if e.store != nil {
		e.store.free()
	}
	e.store = nil
	e.watchers = nil
	e.peeks = nil
	e.initialized = false
}

// checkInitialized returns [ErrNotInitialized] when called before
// [Engine.Initialize] or after [Engine.Finalize]. StatsCount, WatchStart,
// WatchStop and the two snapshot copies start with this check;
// GetNamedValueAndClear, Diff, the dumpers, Copy, AllocValues and the
// producer calls do not.
func (e *Engine) checkInitialized() error {
	if !e.initialized {
		return ErrNotInitialized
	}
	return nil
}

// StatsCount returns the total number of 64-bit counters a snapshot
// holds — not the number of catalog entries, which is [StatCount].
func (e *Engine) StatsCount() (int, error) {
	if err := e.checkInitialized(); err != nil {
		return 0, err
	}
	return e.totalSlots, nil
}

// WatchStart begins watching t's transaction slot.
func (e *Engine) WatchStart(t *ThreadEntry) error {
	if err := e.checkInitialized(); err != nil {
		return err
	}
	e.watchers.start(t.tranIndex())
	return nil
}

// WatchStop ends watching t's transaction slot.
func (e *Engine) WatchStop(t *ThreadEntry) error {
	if err := e.checkInitialized(); err != nil {
		return err
	}
	e.watchers.stop(t.tranIndex())
	return nil
}

// CopyTranSnapshot peeks every registered peer into t's per-transaction
// slot, copies it into out, and derives.
func (e *Engine) CopyTranSnapshot(t *ThreadEntry, out []uint64) error {
	if err := e.checkInitialized(); err != nil {
		return err
	}
	slot := e.store.tran[t.tranIndex()]
	src := slot.Snapshot()
	e.runPeeks(src)
	slot.loadFrom(src)
	CopySnapshot(out, src)
	e.derive(out)
	return nil
}

// CopyGlobalSnapshot is [Engine.CopyTranSnapshot] against the global
// arena instead of a per-transaction slot.
func (e *Engine) CopyGlobalSnapshot(out []uint64) error {
	if err := e.checkInitialized(); err != nil {
		return err
	}
	global := e.store.global
	src := global.Snapshot()
	e.runPeeks(src)
	global.loadFrom(src)
	CopySnapshot(out, src)
	e.derive(out)
	return nil
}

// GetNamedValueAndClear reads the named statistic's current value out
// of t's per-transaction slot and zeroes it in place, returning 0 for an
// unknown name. For CounterTimer the returned value is the total, and
// all four sub-fields are cleared. Complex statistics cannot be read by
// name this way and always return 0.
func (e *Engine) GetNamedValueAndClear(t *ThreadEntry, name string) uint64 {
	entry, err := findByName(&e.catalog, name)
	if err != nil {
		return 0
	}
	slot := e.store.tran[t.tranIndex()]
	base := entry.StartOffset
	switch entry.Kind {
	case AccumulateSingle, PeekSingle, ComputedRatio:
		v := slot[base].LoadRelaxed()
		slot[base].StoreRelaxed(0)
		return v
	case CounterTimer:
		v := slot[base+ctTotal].LoadRelaxed()
		slot[base+ctCount].StoreRelaxed(0)
		slot[base+ctTotal].StoreRelaxed(0)
		slot[base+ctMax].StoreRelaxed(0)
		slot[base+ctAvg].StoreRelaxed(0)
		return v
	default:
		return 0
	}
}

// Copy copies a full snapshot from src into dst.
func (e *Engine) Copy(dst, src []uint64) {
	CopySnapshot(dst, src)
}
