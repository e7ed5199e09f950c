// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package perfmon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSafeDivZeroDenominator(t *testing.T) {
	assert.Equal(t, uint64(0), safeDiv(10, 0))
	assert.Equal(t, uint64(5), safeDiv(10, 2))
}

func TestSubClampU64ClampsAtZero(t *testing.T) {
	assert.Equal(t, uint64(0), subClampU64(5, 3, 4))
	assert.Equal(t, uint64(3), subClampU64(10, 4, 3))
}

func TestMinU64(t *testing.T) {
	assert.Equal(t, uint64(3), minU64(3, 5))
	assert.Equal(t, uint64(3), minU64(5, 3))
}

func TestDeriveFillsHitRatio(t *testing.T) {
	e := newTestEngine(t)
	th := NewThreadEntry(1)
	require.NoError(t, e.WatchStart(th))

	e.Add(th, PBNumFetches, 100)
	e.Add(th, PBNumIOReads, 25)

	snap := e.AllocValues()
	require.NoError(t, e.CopyTranSnapshot(th, snap))

	// (100 - 25) / 100 * 10000 = 7500
	assert.Equal(t, uint64(7500), snap[e.catalog[PBHitRatio].StartOffset])
}

func TestDeriveComputesCounterTimerAvg(t *testing.T) {
	e := newTestEngine(t)
	th := NewThreadEntry(1)
	require.NoError(t, e.WatchStart(th))

	e.Time(th, FileIOSyncAll, 10)
	e.Time(th, FileIOSyncAll, 30)

	snap := e.AllocValues()
	require.NoError(t, e.CopyTranSnapshot(th, snap))

	base := e.catalog[FileIOSyncAll].StartOffset
	assert.Equal(t, uint64(20), snap[base+ctAvg])
}

func TestDeriveVacuumEfficiency(t *testing.T) {
	e := newTestEngine(t)
	th := NewThreadEntry(1)
	require.NoError(t, e.WatchStart(th))

	e.AddUnfix(th, ModuleVacuum, PageHeap, true, false, LatchWrite)
	e.AddUnfix(th, ModuleVacuum, PageHeap, true, false, LatchWrite)
	e.AddUnfix(th, ModuleVacuum, PageHeap, false, false, LatchWrite)
	e.AddUnfix(th, ModuleVacuum, PageHeap, false, false, LatchWrite)

	snap := e.AllocValues()
	require.NoError(t, e.CopyTranSnapshot(th, snap))

	// 2 dirty out of 4 total vacuum unfixes => 5000 (50.00%)
	assert.Equal(t, uint64(5000), snap[e.catalog[PBVacuumEfficiency].StartOffset])
}

func TestDeriveVacuumDataHitRatioUsesFixFamilyBothSides(t *testing.T) {
	e := newTestEngine(t)
	th := NewThreadEntry(1)
	require.NoError(t, e.WatchStart(th))

	// Numerator: in-buffer vacuum fixes.
	e.AddFix(th, ModuleVacuum, PageHeap, ModeOldInBuffer, LatchRead, CondUnconditional)
	e.AddFix(th, ModuleVacuum, PageHeap, ModeOldInBuffer, LatchRead, CondUnconditional)
	// Denominator: other counted vacuum fixes (excluded new-lock-wait/new-no-wait modes).
	e.AddFix(th, ModuleVacuum, PageHeap, ModeOldNoWait, LatchRead, CondUnconditional)
	e.AddFix(th, ModuleVacuum, PageHeap, ModeOldLockWait, LatchRead, CondUnconditional)
	// Excluded from the denominator entirely: must not dilute the ratio.
	e.AddFix(th, ModuleVacuum, PageHeap, ModeNewNoWait, LatchRead, CondUnconditional)
	e.AddFix(th, ModuleVacuum, PageHeap, ModeNewLockWait, LatchRead, CondUnconditional)

	// Unrelated vacuum unfixes: a much larger, unrelated count. If the
	// denominator were wrongly drawn from the unfix family instead of the
	// fix family, this would change the ratio.
	for i := 0; i < 100; i++ {
		e.AddUnfix(th, ModuleVacuum, PageHeap, true, false, LatchWrite)
	}

	snap := e.AllocValues()
	require.NoError(t, e.CopyTranSnapshot(th, snap))

	// 2 in-buffer hits out of 4 counted vacuum fixes => 5000 (50.00%)
	assert.Equal(t, uint64(5000), snap[e.catalog[VacuumDataHitRatio].StartOffset])
}
