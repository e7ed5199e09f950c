// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package perfmon implements a low-overhead performance telemetry
// engine for a multi-threaded database server: a fixed catalog of
// statistics, one global counter arena and one arena per transaction
// slot, a watcher registry that lets producers skip work when nobody is
// collecting, and the snapshot/diff/derivation/serialization passes a
// client session needs to report on server activity.
//
// # Quick Start
//
//	eng, err := perfmon.NewEngine(perfmon.WithNumTrans(64))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer eng.Finalize()
//
//	t := perfmon.NewThreadEntry(tranIndex)
//	eng.Add(t, perfmon.PBNumFetches, 1)
//
// # Producer Fast Path
//
// Every producer call is inlineable, allocation-free, and gated by a
// single atomic read: with nobody watching, [Engine.Add] and its
// specialized wrappers return immediately without touching a value
// array.
//
//	eng.AddFix(t, perfmon.ModuleWorker, perfmon.PageHeap, perfmon.ModeOldNoWait, perfmon.LatchRead, perfmon.CondUnconditional)
//	eng.AddHoldTime(t, perfmon.ModuleWorker, perfmon.PageHeap, perfmon.ModeOldNoWait, perfmon.LatchRead, elapsedUsec)
//
// # Watching and Snapshots
//
// A caller that wants to observe activity attaches with
// [Engine.WatchStart], reads with [Engine.CopyTranSnapshot] or
// [Engine.CopyGlobalSnapshot], and detaches with [Engine.WatchStop]:
//
//	eng.WatchStart(t)
//	defer eng.WatchStop(t)
//
//	snap := eng.AllocValues()
//	if err := eng.CopyTranSnapshot(t, snap); err != nil {
//	    return err
//	}
//
// [Engine.Diff] computes new-minus-old per statistic and re-derives the
// result, so computed ratios reflect the delta rather than stale
// absolute values:
//
//	delta := eng.AllocValues()
//	eng.Diff(delta, current, baseline)
//
// # Peek Peers
//
// Subsystems that hold their own current state (buffer pool occupancy,
// plan cache size, replication delay) register a [Peeker] once at
// startup; the engine samples every registered peer exactly once per
// snapshot, in registration order, immediately before deriving:
//
//	eng.RegisterPeekFunc(perfmon.PBFixedCnt, func(into []uint64) error {
//	    into[0] = uint64(bufferPool.FixedCount())
//	    return nil
//	})
//
// A peer that would otherwise block returns [ErrWouldBlock]; the engine
// leaves that statistic's sub-range unchanged and moves on.
//
// # Serialization
//
// [Pack] and [Unpack] exchange a snapshot as a tight big-endian byte
// array with no framing. [Engine.DumpToStream] and [Engine.DumpToBuffer]
// render the same snapshot as human-readable text, gated per family by
// [DumpFlags] so expensive dumps can be disabled in production.
//
// # Client Session
//
// The [perfmon/session] package wraps an [Engine] with a start/get/diff/
// reset/stop lifecycle for out-of-process clients that want a baseline
// and a running delta without managing arenas themselves.
//
// # Dependencies
//
// This package uses [code.hybscloud.com/atomix] for the value arenas'
// atomic primitives with explicit memory ordering, [code.hybscloud.com/iox]
// for semantic errors shared with [Peeker] implementations, and
// [code.hybscloud.com/spin] for the watcher registry's CAS retry backoff.
package perfmon
