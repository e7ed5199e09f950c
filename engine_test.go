// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package perfmon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEngineInitializesReady(t *testing.T) {
	e, err := NewEngine()
	require.NoError(t, err)
	defer e.Finalize()

	n, err := e.StatsCount()
	require.NoError(t, err)
	assert.Greater(t, n, 0)
}

func TestControllerCallsFailBeforeInitialize(t *testing.T) {
	var e Engine
	_, err := e.StatsCount()
	assert.ErrorIs(t, err, ErrNotInitialized)

	err = e.WatchStart(NewThreadEntry(1))
	assert.ErrorIs(t, err, ErrNotInitialized)
}

func TestFinalizeThenCallsFailAgain(t *testing.T) {
	e, err := NewEngine()
	require.NoError(t, err)
	e.Finalize()

	_, err = e.StatsCount()
	assert.ErrorIs(t, err, ErrNotInitialized)
}

func TestWatchStartStopRoundTrip(t *testing.T) {
	e := newTestEngine(t)
	th := NewThreadEntry(1)

	require.NoError(t, e.WatchStart(th))
	require.NoError(t, e.WatchStop(th))
}

func TestCopyGlobalSnapshotAggregatesAcrossSlots(t *testing.T) {
	e := newTestEngine(t)
	t1 := NewThreadEntry(1)
	t2 := NewThreadEntry(2)
	require.NoError(t, e.WatchStart(t1))
	require.NoError(t, e.WatchStart(t2))

	e.Add(t1, PBNumFetches, 4)
	e.Add(t2, PBNumFetches, 6)

	global := e.AllocValues()
	require.NoError(t, e.CopyGlobalSnapshot(global))
	assert.Equal(t, uint64(10), global[e.catalog[PBNumFetches].StartOffset])
}

func TestGetNamedValueAndClearAccumulateSingle(t *testing.T) {
	e := newTestEngine(t)
	th := NewThreadEntry(1)
	require.NoError(t, e.WatchStart(th))
	e.Add(th, PBNumFetches, 8)

	v := e.GetNamedValueAndClear(th, "Num_data_page_fetches")
	assert.Equal(t, uint64(8), v)

	snap := e.AllocValues()
	require.NoError(t, e.CopyTranSnapshot(th, snap))
	assert.Equal(t, uint64(0), snap[e.catalog[PBNumFetches].StartOffset])
}

func TestGetNamedValueAndClearCounterTimerReturnsTotal(t *testing.T) {
	e := newTestEngine(t)
	th := NewThreadEntry(1)
	require.NoError(t, e.WatchStart(th))
	e.Time(th, HeapInsertExecute, 10)
	e.Time(th, HeapInsertExecute, 30)

	v := e.GetNamedValueAndClear(th, "heap_insert_execute")
	assert.Equal(t, uint64(40), v)

	base := e.catalog[HeapInsertExecute].StartOffset
	snap := e.AllocValues()
	require.NoError(t, e.CopyTranSnapshot(th, snap))
	assert.Equal(t, uint64(0), snap[base+ctCount])
	assert.Equal(t, uint64(0), snap[base+ctTotal])
	assert.Equal(t, uint64(0), snap[base+ctMax])
}

func TestGetNamedValueAndClearUnknownNameReturnsZero(t *testing.T) {
	e := newTestEngine(t)
	th := NewThreadEntry(1)
	assert.Equal(t, uint64(0), e.GetNamedValueAndClear(th, "not_a_real_stat"))
}

func TestGetNamedValueAndClearComplexAlwaysZero(t *testing.T) {
	e := newTestEngine(t)
	th := NewThreadEntry(1)
	require.NoError(t, e.WatchStart(th))
	e.AddFix(th, ModuleWorker, PageHeap, ModeOldNoWait, LatchRead, CondUnconditional)

	assert.Equal(t, uint64(0), e.GetNamedValueAndClear(th, "Num_data_page_fix_ext"))
}

func TestCopyDelegatesToCopySnapshot(t *testing.T) {
	e := newTestEngine(t)
	src := []uint64{1, 2, 3}
	dst := make([]uint64, 3)
	e.Copy(dst, src)
	assert.Equal(t, src, dst)
}

func TestWithAlwaysCollectRunsProducersWithoutWatch(t *testing.T) {
	e, err := NewEngine(WithAlwaysCollect())
	require.NoError(t, err)
	defer e.Finalize()

	th := NewThreadEntry(1)
	e.AddOne(th, PBNumFetches) // no WatchStart call at all

	snap := e.AllocValues()
	require.NoError(t, e.CopyTranSnapshot(th, snap))
	assert.Equal(t, uint64(1), snap[e.catalog[PBNumFetches].StartOffset])
}
