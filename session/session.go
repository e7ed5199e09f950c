// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package session wraps a [perfmon.Engine] with the out-of-process
// client lifecycle: start, get, diff_print, reset, stop. It never
// touches an Engine's arenas directly — only the
// controller-facing methods — so a session can run in a different
// goroutine from the producers it observes.
package session

import (
	"fmt"
	"io"
	"time"

	"github.com/nimbusdb/perfmon"
)

// Session is a client-side handle on one Engine's statistics, tracking
// a baseline snapshot and elapsed time since [New] or the last [Session.Reset].
type Session struct {
	eng        *perfmon.Engine
	thread     *perfmon.ThreadEntry
	forAllTran bool

	baseline []uint64
	current  []uint64

	startWall    time.Time
	startUserCPU float64
	startSysCPU  float64
}

// New starts a session against eng. When forAllTrans is true, the
// session reads [perfmon.Engine.CopyGlobalSnapshot] and starts no watch
// of its own, so it sees activity only while some other watcher (or
// always-collect mode) is active; otherwise it watches thread's
// transaction slot. Start failures (such as an uninitialized engine)
// propagate; [Session.Stop] is always safe to call afterward regardless.
func New(eng *perfmon.Engine, thread *perfmon.ThreadEntry, forAllTrans bool) (*Session, error) {
	s := &Session{eng: eng, thread: thread, forAllTran: forAllTrans}

	if forAllTrans {
		// Global collection has no per-slot watch to start; the engine's
		// global arena accumulates only while at least one watcher exists.
	} else if err := eng.WatchStart(thread); err != nil {
		return nil, err
	}

	s.baseline = eng.AllocValues()
	s.current = eng.AllocValues()
	if err := s.refresh(s.baseline); err != nil {
		return nil, err
	}
	copy(s.current, s.baseline)

	s.startWall = time.Now()
	s.startUserCPU, s.startSysCPU = cpuTimes()
	return s, nil
}

func (s *Session) refresh(into []uint64) error {
	if s.forAllTran {
		return s.eng.CopyGlobalSnapshot(into)
	}
	return s.eng.CopyTranSnapshot(s.thread, into)
}

// Get asks the engine to refresh current from the live arenas.
func (s *Session) Get() error {
	return s.refresh(s.current)
}

// DiffPrint computes current - baseline and writes a human-readable
// dump to w, preceded by elapsed user-CPU, system-CPU, and wall time
// since start or the last [Session.Reset]. An empty substr matches
// every statistic; otherwise only names containing substr are printed.
func (s *Session) DiffPrint(w io.Writer, substr string) error {
	if err := s.Get(); err != nil {
		return err
	}
	delta := s.eng.AllocValues()
	s.eng.Diff(delta, s.current, s.baseline)

	userCPU, sysCPU := cpuTimes()
	fmt.Fprintf(w, "\n *** CLIENT EXECUTION STATISTICS ***\n")
	fmt.Fprintf(w, "System CPU (sec)              = %10.3f\n", sysCPU-s.startSysCPU)
	fmt.Fprintf(w, "User CPU (sec)                = %10.3f\n", userCPU-s.startUserCPU)
	fmt.Fprintf(w, "Elapsed (sec)                 = %10.3f\n", time.Since(s.startWall).Seconds())

	return s.eng.DumpToStream(w, delta, substr)
}

// Reset reloads baseline from the current server values and restarts
// the elapsed-time clock, matching perfmon_reset_stats in spirit.
func (s *Session) Reset() error {
	if err := s.Get(); err != nil {
		return err
	}
	copy(s.baseline, s.current)
	s.startWall = time.Now()
	s.startUserCPU, s.startSysCPU = cpuTimes()
	return nil
}

// Stop disables collection on the server (if this session owns a
// per-transaction watch) and frees local arrays. Stop is idempotent and
// always clears local state even if the underlying watch_stop call
// errors.
func (s *Session) Stop() error {
	var err error
	if !s.forAllTran && s.thread != nil {
		err = s.eng.WatchStop(s.thread)
	}
	s.baseline = nil
	s.current = nil
	return err
}
