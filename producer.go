// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package perfmon

import "code.hybscloud.com/atomix"

// addAtOffset is the producer fast path: one watcher-count load, one
// compare, and at most three atomic updates to each of the two arenas
// (per-transaction and global). Every specialized wrapper below funnels
// through it except SetThreadStat and SetDaemonStat, which store.
func (e *Engine) addAtOffset(t *ThreadEntry, id StatID, extraOffset int, amount uint64) {
	if !e.watchers.anyoneWatching() {
		return
	}
	entry := &e.catalog[id]
	base := entry.StartOffset + extraOffset

	slot := t.tranIndex()
	switch entry.Kind {
	case AccumulateSingle, Complex:
		e.store.tran[slot][base].AddAcqRel(amount)
		e.store.global[base].AddAcqRel(amount)
	case CounterTimer:
		e.store.tran[slot][base+ctCount].AddAcqRel(1)
		e.store.tran[slot][base+ctTotal].AddAcqRel(amount)
		bumpMax(&e.store.tran[slot][base+ctMax], amount)

		e.store.global[base+ctCount].AddAcqRel(1)
		e.store.global[base+ctTotal].AddAcqRel(amount)
		bumpMax(&e.store.global[base+ctMax], amount)
	case PeekSingle, ComputedRatio:
		// Producers never write these; callers that reach here did
		// something wrong upstream. Silently ignored rather than adding
		// a panic to the hot path.
	}
}

// bumpMax performs slot = max(slot, amount) with a CAS retry loop,
// since a plain compare-then-store would race against a concurrent
// bumpMax on the same slot.
func bumpMax(slot *atomix.Uint64, amount uint64) {
	for {
		cur := slot.LoadRelaxed()
		if amount <= cur {
			return
		}
		if slot.CompareAndSwapAcqRel(cur, amount) {
			return
		}
	}
}

// Add increments a simple AccumulateSingle statistic by amount.
func (e *Engine) Add(t *ThreadEntry, id StatID, amount uint64) {
	e.addAtOffset(t, id, 0, amount)
}

// AddOne increments a simple AccumulateSingle statistic by one.
func (e *Engine) AddOne(t *ThreadEntry, id StatID) {
	e.addAtOffset(t, id, 0, 1)
}

// Time records one CounterTimer observation of the given duration, in
// whatever unit the statistic's name promises (usually microseconds).
func (e *Engine) Time(t *ThreadEntry, id StatID, amount uint64) {
	e.addAtOffset(t, id, 0, amount)
}

// AddFix records a page-fix event in the PBXFixCounters family.
func (e *Engine) AddFix(t *ThreadEntry, module Module, pt PageType, mode FoundMode, latch Latch, cond CondType) {
	e.addAtOffset(t, PBXFixCounters, fixOffset(module, pt, mode, latch, cond), 1)
}

// AddFixTime records the microseconds spent satisfying a page-fix
// request in the PBXFixTimeCounters family.
func (e *Engine) AddFixTime(t *ThreadEntry, module Module, pt PageType, mode FoundMode, latch Latch, cond CondType, usec uint64) {
	e.addAtOffset(t, PBXFixTimeCounters, fixOffset(module, pt, mode, latch, cond), usec)
}

// AddLockTime records the microseconds spent waiting for a page latch
// in the PBXLockTimeCounters family, which shares the fix shape.
func (e *Engine) AddLockTime(t *ThreadEntry, module Module, pt PageType, mode FoundMode, latch Latch, cond CondType, usec uint64) {
	e.addAtOffset(t, PBXLockTimeCounters, fixOffset(module, pt, mode, latch, cond), usec)
}

// AddPromote records a latch-promotion attempt in the
// PBXPromoteCounters family.
func (e *Engine) AddPromote(t *ThreadEntry, module Module, pt PageType, cond PromoteCond, latch Latch, success bool) {
	e.addAtOffset(t, PBXPromoteCounters, promoteOffset(module, pt, cond, latch, success), 1)
}

// AddPromoteTime records the microseconds spent on a latch-promotion
// attempt in the PBXPromoteTimeCounters family.
func (e *Engine) AddPromoteTime(t *ThreadEntry, module Module, pt PageType, cond PromoteCond, latch Latch, success bool, usec uint64) {
	e.addAtOffset(t, PBXPromoteTimeCounters, promoteOffset(module, pt, cond, latch, success), usec)
}

// AddUnfix records a page-unfix event in the PBXUnfixCounters family.
func (e *Engine) AddUnfix(t *ThreadEntry, module Module, pt PageType, bufDirty, holderDirty bool, latch Latch) {
	e.addAtOffset(t, PBXUnfixCounters, unfixOffset(module, pt, bufDirty, holderDirty, latch), 1)
}

// AddHoldTime records the microseconds a page was held between fix and
// unfix in the PBXHoldTimeCounters family.
func (e *Engine) AddHoldTime(t *ThreadEntry, module Module, pt PageType, mode FoundMode, latch Latch, usec uint64) {
	e.addAtOffset(t, PBXHoldTimeCounters, holdTimeOffset(module, pt, mode, latch), usec)
}

// AddMVCCSnapshot records one MVCC visibility check in the
// MVCCSnapshotCounters family.
func (e *Engine) AddMVCCSnapshot(t *ThreadEntry, kind SnapshotKind, rt RecordType, vis Visibility) {
	e.addAtOffset(t, MVCCSnapshotCounters, mvccOffset(kind, rt, vis), 1)
}

// AddObjLockTime records microseconds spent acquiring an object lock of
// the given mode in the ObjLockTimeCounters family.
func (e *Engine) AddObjLockTime(t *ThreadEntry, mode LockMode, usec uint64) {
	e.addAtOffset(t, ObjLockTimeCounters, objLockOffset(mode), usec)
}

// AddFlushedVolume records one DWB flush event against numVolumes
// volumes in the DWBFlushedBlockVolumes histogram, clamping counts past
// the last bucket into it and negative counts into bucket 0.
func (e *Engine) AddFlushedVolume(t *ThreadEntry, numVolumes int) {
	e.addAtOffset(t, DWBFlushedBlockVolumes, flushedVolumeOffset(numVolumes), 1)
}

// SetThreadStat overwrites the given field of the thread-pool block
// statistic; an out-of-range field is ignored.
// Block statistics are gauges pushed wholesale rather than accumulated,
// so this stores rather than adds.
func (e *Engine) SetThreadStat(t *ThreadEntry, field int, value uint64) {
	if field < 0 || field >= threadStatFieldCount {
		return
	}
	if !e.watchers.anyoneWatching() {
		return
	}
	base := e.catalog[ThreadStats].StartOffset + field
	slot := t.tranIndex()
	e.store.tran[slot][base].StoreRelaxed(value)
	e.store.global[base].StoreRelaxed(value)
}

// SetDaemonStat overwrites one field of one daemon's block in the
// ThreadDaemonStats family.
func (e *Engine) SetDaemonStat(t *ThreadEntry, daemon int, field int, value uint64) {
	if daemon < 0 || daemon >= daemonCount || field < 0 || field >= perDaemonFieldCount {
		return
	}
	if !e.watchers.anyoneWatching() {
		return
	}
	base := e.catalog[ThreadDaemonStats].StartOffset + daemon*perDaemonFieldCount + field
	slot := t.tranIndex()
	e.store.tran[slot][base].StoreRelaxed(value)
	e.store.global[base].StoreRelaxed(value)
}
