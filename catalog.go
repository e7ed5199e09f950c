// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package perfmon

import "strings"

// Kind is the closed set of value shapes a statistic can have. The
// source language's function-pointer metadata collapses here into a
// tagged enum plus, for Complex, a family descriptor — preferred over a
// virtual call because the kind set never grows at runtime.
type Kind uint8

const (
	// AccumulateSingle is monotonically added to by producers.
	AccumulateSingle Kind = iota
	// PeekSingle is produced only by pull-sampling at snapshot time.
	PeekSingle
	// ComputedRatio is derived from other values during post-processing.
	ComputedRatio
	// CounterTimer holds (count, total_time, max_time, avg_time).
	CounterTimer
	// Complex is a multi-dimensional array addressed by a family-specific
	// offset function.
	Complex
)

func (k Kind) String() string {
	switch k {
	case AccumulateSingle:
		return "accumulate_single"
	case PeekSingle:
		return "peek_single"
	case ComputedRatio:
		return "computed_ratio"
	case CounterTimer:
		return "counter_timer"
	case Complex:
		return "complex"
	default:
		return "unknown"
	}
}

// CounterTimer sub-offsets, relative to the entry's start offset.
const (
	ctCount = 0
	ctTotal = 1
	ctMax   = 2
	ctAvg   = 3
	ctSlots = 4
)

// StatID is the stable numeric identifier of a statistic. Entry i in the
// catalog always satisfies StatID(i) == i.
type StatID int

const (
	FileNumCreates StatID = iota
	FileNumRemoves
	FileNumIOReads
	FileNumIOWrites
	FileNumIOSynches
	FileIOSyncAll
	FileNumPageAllocs
	FileNumPageDeallocs

	PBNumFetches
	PBNumDirties
	PBNumIOReads
	PBNumIOWrites
	PBNumFlushed
	PBPrivateQuota
	PBPrivateCount
	PBFixedCnt
	PBDirtyCnt
	PBLRU1Cnt
	PBLRU2Cnt
	PBLRU3Cnt
	PBVictCand
	PBAvoidVictimCnt

	LogNumFetches
	LogNumIOReads
	LogNumIOWrites
	LogNumAppendRecords

	LKNumAcquiredOnPages
	LKNumAcquiredOnObjects
	LKNumWaitedOnObjects
	LKNumWaitedTimeOnObjects

	TranNumCommits
	TranNumRollbacks
	TranNumSavepoints

	BTNumInserts
	BTNumDeletes
	BTNumUpdates

	HeapInsertExecute

	PCNumCacheEntries
	HFNumStatsEntries
	QMNumHoldableCursors
	HARelDelay

	PBVacuumEfficiency
	PBVacuumFetchRatio
	VacuumDataHitRatio
	PBHitRatio
	LogHitRatio
	PBPageLockTime10usec
	PBPageHoldTime10usec
	PBPageFixTime10usec
	PBPageAllocateTimeRatio
	PBPagePromoteSuccess
	PBPagePromoteFailed
	PBPagePromoteTotalTime10usec

	PBXFixCounters
	PBXPromoteCounters
	PBXPromoteTimeCounters
	PBXUnfixCounters
	PBXLockTimeCounters
	PBXHoldTimeCounters
	PBXFixTimeCounters
	MVCCSnapshotCounters
	ObjLockTimeCounters
	DWBFlushedBlockVolumes
	ThreadStats
	ThreadDaemonStats

	statCount
)

// StatCount is the number of catalog entries (distinct statistic ids).
// It is not the number of 64-bit values — see [Engine.StatsCount] for
// that, which sums complex slot counts too.
const StatCount = int(statCount)

// complexFamily bundles the two behaviors a Complex statistic needs:
// how many flat slots it occupies, and how to render a non-zero entry
// into human-readable lines. A single render function serves both the
// file and buffer dumpers, since dump-to-file and dump-to-buffer share
// identical formatting logic here — only the sink differs.
type complexFamily struct {
	loadSize func() int
	render   func(slice []uint64) []string
}

// CatalogEntry describes one statistic. Name, Kind and the complex
// family are fixed at compile time; StartOffset and SlotCount are
// computed once per [Engine] during [Engine.Initialize] and are
// immutable for the life of that engine afterward.
type CatalogEntry struct {
	ID   StatID
	Name string
	Kind Kind

	// DiffAsAccumulator overrides diff semantics for a PeekSingle entry
	// that should be differenced like an accumulator instead of passed
	// through unchanged. The only known instance is PBAvoidVictimCnt; the
	// flag exists so that isn't a hardcoded branch.
	DiffAsAccumulator bool

	family *complexFamily

	StartOffset int
	SlotCount   int
}

// catalogTemplate is the compile-time metadata table: id, name, kind and
// (for Complex) family. It never changes after package init; per-engine
// offsets are computed from it in [newCatalog].
var catalogTemplate = buildCatalogTemplate()

func buildCatalogTemplate() [statCount]CatalogEntry {
	var t [statCount]CatalogEntry
	acc := func(id StatID, name string) {
		t[id] = CatalogEntry{ID: id, Name: name, Kind: AccumulateSingle}
	}
	peek := func(id StatID, name string) {
		t[id] = CatalogEntry{ID: id, Name: name, Kind: PeekSingle}
	}
	ratio := func(id StatID, name string) {
		t[id] = CatalogEntry{ID: id, Name: name, Kind: ComputedRatio}
	}
	timer := func(id StatID, name string) {
		t[id] = CatalogEntry{ID: id, Name: name, Kind: CounterTimer}
	}
	complex_ := func(id StatID, name string, fam *complexFamily) {
		t[id] = CatalogEntry{ID: id, Name: name, Kind: Complex, family: fam}
	}

	acc(FileNumCreates, "Num_file_creates")
	acc(FileNumRemoves, "Num_file_removes")
	acc(FileNumIOReads, "Num_file_ioreads")
	acc(FileNumIOWrites, "Num_file_iowrites")
	acc(FileNumIOSynches, "Num_file_iosynches")
	timer(FileIOSyncAll, "file_iosync_all")
	acc(FileNumPageAllocs, "Num_file_page_allocs")
	acc(FileNumPageDeallocs, "Num_file_page_deallocs")

	acc(PBNumFetches, "Num_data_page_fetches")
	acc(PBNumDirties, "Num_data_page_dirties")
	acc(PBNumIOReads, "Num_data_page_ioreads")
	acc(PBNumIOWrites, "Num_data_page_iowrites")
	acc(PBNumFlushed, "Num_data_page_flushed")
	peek(PBPrivateQuota, "Num_data_page_private_quota")
	peek(PBPrivateCount, "Num_data_page_private_count")
	peek(PBFixedCnt, "Num_data_page_fixed")
	peek(PBDirtyCnt, "Num_data_page_dirty")
	peek(PBLRU1Cnt, "Num_data_page_lru1")
	peek(PBLRU2Cnt, "Num_data_page_lru2")
	peek(PBLRU3Cnt, "Num_data_page_lru3")
	peek(PBVictCand, "Num_data_page_victim_candidate")
	t[PBAvoidVictimCnt] = CatalogEntry{ID: PBAvoidVictimCnt, Name: "Num_data_page_avoid_victim", Kind: PeekSingle, DiffAsAccumulator: true}

	acc(LogNumFetches, "Num_log_page_fetches")
	acc(LogNumIOReads, "Num_log_page_ioreads")
	acc(LogNumIOWrites, "Num_log_page_iowrites")
	acc(LogNumAppendRecords, "Num_log_append_records")

	acc(LKNumAcquiredOnPages, "Num_page_locks_acquired")
	acc(LKNumAcquiredOnObjects, "Num_object_locks_acquired")
	acc(LKNumWaitedOnObjects, "Num_object_locks_waits")
	acc(LKNumWaitedTimeOnObjects, "Num_object_locks_time_waited_usec")

	acc(TranNumCommits, "Num_tran_commits")
	acc(TranNumRollbacks, "Num_tran_rollbacks")
	acc(TranNumSavepoints, "Num_tran_savepoints")

	acc(BTNumInserts, "Num_btree_inserts")
	acc(BTNumDeletes, "Num_btree_deletes")
	acc(BTNumUpdates, "Num_btree_updates")

	timer(HeapInsertExecute, "heap_insert_execute")

	peek(PCNumCacheEntries, "Num_plan_cache_entries")
	peek(HFNumStatsEntries, "Num_heap_stats_entries")
	peek(QMNumHoldableCursors, "Num_query_holdable_cursors")
	peek(HARelDelay, "Time_ha_replication_delay")

	ratio(PBVacuumEfficiency, "Num_data_page_vacuum_efficiency")
	ratio(PBVacuumFetchRatio, "Num_data_page_vacuum_fetch_ratio")
	ratio(VacuumDataHitRatio, "Num_data_page_vacuum_data_hit_ratio")
	ratio(PBHitRatio, "Num_data_page_hit_ratio")
	ratio(LogHitRatio, "Num_log_hit_ratio")
	ratio(PBPageLockTime10usec, "Time_data_page_lock_acquire_time_10usec")
	ratio(PBPageHoldTime10usec, "Time_data_page_hold_acquire_time_10usec")
	ratio(PBPageFixTime10usec, "Time_data_page_fix_acquire_time_10usec")
	ratio(PBPageAllocateTimeRatio, "Time_data_page_allocate_time_ratio")
	ratio(PBPagePromoteSuccess, "Num_data_page_promote_success")
	ratio(PBPagePromoteFailed, "Num_data_page_promote_failed")
	ratio(PBPagePromoteTotalTime10usec, "Time_data_page_promote_total_time_10usec")

	complex_(PBXFixCounters, "Num_data_page_fix_ext", &complexFamily{loadSize: fixCounters, render: renderFixCounters})
	complex_(PBXPromoteCounters, "Num_data_page_promote_ext", &complexFamily{loadSize: promoteCounters, render: renderPromoteCounters})
	complex_(PBXPromoteTimeCounters, "Time_data_page_promote_ext", &complexFamily{loadSize: promoteCounters, render: renderPromoteTimeCounters})
	complex_(PBXUnfixCounters, "Num_data_page_unfix_ext", &complexFamily{loadSize: unfixCounters, render: renderUnfixCounters})
	complex_(PBXLockTimeCounters, "Time_data_page_lock_acquire_time_ext", &complexFamily{loadSize: fixCounters, render: renderLockTimeCounters})
	complex_(PBXHoldTimeCounters, "Time_data_page_hold_acquire_time_ext", &complexFamily{loadSize: holdTimeCounters, render: renderHoldTimeCounters})
	complex_(PBXFixTimeCounters, "Time_data_page_fix_acquire_time_ext", &complexFamily{loadSize: fixCounters, render: renderFixTimeCounters})
	complex_(MVCCSnapshotCounters, "Num_mvcc_snapshot_ext", &complexFamily{loadSize: mvccCounters, render: renderMVCCCounters})
	complex_(ObjLockTimeCounters, "Time_obj_lock_acquire_time_ext", &complexFamily{loadSize: objLockCounters, render: renderObjLockCounters})
	complex_(DWBFlushedBlockVolumes, "Num_dwb_flushed_block_volumes", &complexFamily{loadSize: flushedVolumeCounters, render: renderFlushedVolumeCounters})
	complex_(ThreadStats, "thread_stats", &complexFamily{loadSize: func() int { return threadStatFieldCount }, render: renderThreadStats})
	complex_(ThreadDaemonStats, "thread_daemon_stats", &complexFamily{loadSize: func() int { return threadDaemonStatCount }, render: renderThreadDaemonStats})

	return t
}

// newCatalog computes start offsets and slot counts for a fresh engine
// by iterating the template in id order: simple kinds contribute 1 (4
// for CounterTimer), complex kinds contribute family.loadSize(). Returns
// the populated catalog and the total slot count, or a *ConfigError if
// any loadSize() is negative.
func newCatalog() ([statCount]CatalogEntry, int, error) {
	cat := catalogTemplate
	total := 0
	for i := range cat {
		if StatID(i) != cat[i].ID {
			return cat, 0, &ConfigError{Stat: cat[i].Name, Reason: "catalog id does not match index"}
		}
		cat[i].StartOffset = total
		switch cat[i].Kind {
		case AccumulateSingle, PeekSingle, ComputedRatio:
			cat[i].SlotCount = 1
		case CounterTimer:
			cat[i].SlotCount = ctSlots
		case Complex:
			if cat[i].family == nil {
				return cat, 0, &ConfigError{Stat: cat[i].Name, Reason: "complex statistic missing family"}
			}
			n := cat[i].family.loadSize()
			if n < 0 {
				return cat, 0, &ConfigError{Stat: cat[i].Name, Reason: "load_size returned negative slot count"}
			}
			cat[i].SlotCount = n
		}
		total += cat[i].SlotCount
	}
	return cat, total, nil
}

// findByName returns the catalog entry whose name matches exactly, or
// ErrInvalidArg if no statistic has that name.
func findByName(cat *[statCount]CatalogEntry, name string) (*CatalogEntry, error) {
	for i := range cat {
		if cat[i].Name == name {
			return &cat[i], nil
		}
	}
	return nil, ErrInvalidArg
}

// OffsetOf returns the index of statistic id's first 64-bit counter in a
// snapshot array. Only while id precedes the first CounterTimer entry
// does it equal int(id).
func (e *Engine) OffsetOf(id StatID) int {
	return e.catalog[id].StartOffset
}

// matchesSubstr reports whether a statistic's name should be included
// under a dump substring filter. An empty filter matches everything.
func matchesSubstr(name, substr string) bool {
	return substr == "" || strings.Contains(name, substr)
}
