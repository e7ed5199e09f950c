// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package perfmon

// Complex statistics are multi-dimensional arrays of accumulators
// addressed by a per-family offset function. This file defines the
// domain sizes (cardinalities) of every axis and the row-major
// linearization for each family.
//
// The offset functions do not range-check their arguments; only
// flushedVolumeOffset clamps. An index outside its axis yields an offset
// outside its row, and the producer wrappers in producer.go add at that
// offset without a bounds check.

// PageType classifies the kind of page a fix/unfix/lock/hold/time
// statistic applies to. PageLog is excluded from the hold/fix/lock time
// totals during derivation.
type PageType int

const (
	PageUnknown PageType = iota
	PageHeap
	PageVolHeader
	PageVolBitmap
	PageBtree
	PageBtreeRoot
	PageCatalog
	PageOverflow
	PageLog
	pageTypeCount
)

func (p PageType) String() string {
	switch p {
	case PageUnknown:
		return "unknown"
	case PageHeap:
		return "heap"
	case PageVolHeader:
		return "vol_header"
	case PageVolBitmap:
		return "vol_bitmap"
	case PageBtree:
		return "btree"
	case PageBtreeRoot:
		return "btree_root"
	case PageCatalog:
		return "catalog"
	case PageOverflow:
		return "overflow"
	case PageLog:
		return "log"
	default:
		return "unknown"
	}
}

// FoundMode describes how a page-fix request was satisfied.
type FoundMode int

const (
	ModeOldLockWait FoundMode = iota
	ModeOldNoWait
	ModeNewLockWait
	ModeNewNoWait
	ModeOldInBuffer
	foundModeCount
)

func (m FoundMode) String() string {
	switch m {
	case ModeOldLockWait:
		return "old_lock_wait"
	case ModeOldNoWait:
		return "old_no_wait"
	case ModeNewLockWait:
		return "new_lock_wait"
	case ModeNewNoWait:
		return "new_no_wait"
	case ModeOldInBuffer:
		return "old_in_buffer"
	default:
		return "unknown"
	}
}

// Latch is the mode under which the page was held.
type Latch int

const (
	LatchRead Latch = iota
	LatchWrite
	latchCount
)

func (l Latch) String() string {
	if l == LatchRead {
		return "read"
	}
	return "write"
}

// CondType records whether a fix was attempted conditionally.
type CondType int

const (
	CondUnconditional CondType = iota
	CondConditional
	condTypeCount
)

func (c CondType) String() string {
	if c == CondConditional {
		return "conditional"
	}
	return "unconditional"
}

// PromoteCond is the class of latch-promotion attempted.
type PromoteCond int

const (
	PromoteOnlyReader PromoteCond = iota
	PromoteSharedReader
	PromoteSharedWriter
	promoteCondCount
)

func (p PromoteCond) String() string {
	switch p {
	case PromoteOnlyReader:
		return "only_reader"
	case PromoteSharedReader:
		return "shared_reader"
	case PromoteSharedWriter:
		return "shared_writer"
	default:
		return "unknown"
	}
}

// SnapshotKind identifies the MVCC snapshot visibility check performed.
type SnapshotKind int

const (
	SnapshotDirty SnapshotKind = iota
	SnapshotVisible
	SnapshotLatest
	snapshotKindCount
)

func (s SnapshotKind) String() string {
	switch s {
	case SnapshotDirty:
		return "dirty"
	case SnapshotVisible:
		return "visible"
	case SnapshotLatest:
		return "latest"
	default:
		return "unknown"
	}
}

// RecordType distinguishes the record layout visited during a snapshot.
type RecordType int

const (
	RecordHeap RecordType = iota
	RecordHeapReuse
	RecordIndex
	RecordVacuum
	recordTypeCount
)

func (r RecordType) String() string {
	switch r {
	case RecordHeap:
		return "heap"
	case RecordHeapReuse:
		return "heap_reuse"
	case RecordIndex:
		return "index"
	case RecordVacuum:
		return "vacuum"
	default:
		return "unknown"
	}
}

// Visibility is the outcome of a snapshot visibility check.
type Visibility int

const (
	VisibilityVisible Visibility = iota
	VisibilityInvisible
	VisibilityUnknown
	visibilityCount
)

func (v Visibility) String() string {
	switch v {
	case VisibilityVisible:
		return "visible"
	case VisibilityInvisible:
		return "invisible"
	default:
		return "unknown"
	}
}

// LockMode is an object-lock strength, ordered NA_LOCK .. SCH_M_LOCK.
type LockMode int

const (
	LockNA LockMode = iota
	LockS
	LockX
	LockIS
	LockIX
	LockSIX
	LockU
	LockSchM
	lockModeCount
)

func (l LockMode) String() string {
	switch l {
	case LockNA:
		return "NA_LOCK"
	case LockS:
		return "S_LOCK"
	case LockX:
		return "X_LOCK"
	case LockIS:
		return "IS_LOCK"
	case LockIX:
		return "IX_LOCK"
	case LockSIX:
		return "SIX_LOCK"
	case LockU:
		return "U_LOCK"
	case LockSchM:
		return "SCH_M_LOCK"
	default:
		return "UNKNOWN_LOCK"
	}
}

// maxFlushedVolumeBuckets bounds the DWB flushed-block-volumes histogram;
// counts at or above this are clamped into the last bucket.
const maxFlushedVolumeBuckets = 32

// Fixed field counts for the block statistics pushed wholesale by the
// thread pool and thread daemon producers (§3.4, "supplied as blocks by
// producers with a known stable ordering of fields").
const (
	threadStatFieldCount  = 8
	daemonCount           = 5
	perDaemonFieldCount   = 3
	threadDaemonStatCount = daemonCount * perDaemonFieldCount
)

var threadStatFieldNames = [threadStatFieldCount]string{
	"num_worker_threads",
	"num_active_workers",
	"num_task_tokens",
	"num_core_workers",
	"num_task_queued",
	"num_worker_thread_starvation",
	"num_task_executed",
	"num_task_retired",
}

var daemonNames = [daemonCount]string{
	"page_flush", "log_flush", "deadlock_detect", "auto_vacuum", "checkpoint",
}

var perDaemonFieldNames = [perDaemonFieldCount]string{
	"num_exec", "num_periods", "num_exec_full_period",
}

func fixOffset(module Module, pt PageType, mode FoundMode, latch Latch, cond CondType) int {
	return (((int(module)*int(pageTypeCount)+int(pt))*int(foundModeCount)+int(mode))*int(latchCount)+int(latch))*int(condTypeCount) + int(cond)
}

func fixCounters() int {
	return int(moduleCount) * int(pageTypeCount) * int(foundModeCount) * int(latchCount) * int(condTypeCount)
}

func promoteOffset(module Module, pt PageType, cond PromoteCond, latch Latch, success bool) int {
	s := 0
	if success {
		s = 1
	}
	return (((int(module)*int(pageTypeCount)+int(pt))*int(promoteCondCount)+int(cond))*int(latchCount)+int(latch))*2 + s
}

func promoteCounters() int {
	return int(moduleCount) * int(pageTypeCount) * int(promoteCondCount) * int(latchCount) * 2
}

func unfixOffset(module Module, pt PageType, bufDirty, holderDirty bool, latch Latch) int {
	bd, hd := 0, 0
	if bufDirty {
		bd = 1
	}
	if holderDirty {
		hd = 1
	}
	return (((int(module)*int(pageTypeCount)+int(pt))*2+bd)*2+hd)*int(latchCount) + int(latch)
}

func unfixCounters() int {
	return int(moduleCount) * int(pageTypeCount) * 2 * 2 * int(latchCount)
}

// holdTimeOffset shares the fix-time/lock-time shape minus the cond axis.
func holdTimeOffset(module Module, pt PageType, mode FoundMode, latch Latch) int {
	return ((int(module)*int(pageTypeCount)+int(pt))*int(foundModeCount)+int(mode))*int(latchCount) + int(latch)
}

func holdTimeCounters() int {
	return int(moduleCount) * int(pageTypeCount) * int(foundModeCount) * int(latchCount)
}

func mvccOffset(kind SnapshotKind, rt RecordType, vis Visibility) int {
	return (int(kind)*int(recordTypeCount)+int(rt))*int(visibilityCount) + int(vis)
}

func mvccCounters() int {
	return int(snapshotKindCount) * int(recordTypeCount) * int(visibilityCount)
}

func objLockOffset(mode LockMode) int {
	return int(mode)
}

func objLockCounters() int {
	return int(lockModeCount)
}

func flushedVolumeOffset(numVolumes int) int {
	if numVolumes >= maxFlushedVolumeBuckets {
		return maxFlushedVolumeBuckets - 1
	}
	if numVolumes < 0 {
		return 0
	}
	return numVolumes
}

func flushedVolumeCounters() int {
	return maxFlushedVolumeBuckets
}
