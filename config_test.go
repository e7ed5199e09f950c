// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package perfmon

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDumpFlagsHas(t *testing.T) {
	f := FlagMVCCSnapshot | FlagThread
	assert.True(t, f.Has(FlagMVCCSnapshot))
	assert.True(t, f.Has(FlagThread))
	assert.False(t, f.Has(FlagLockObject))
	assert.True(t, f.Has(FlagMVCCSnapshot|FlagThread))
}

func TestFlagAllCoversEveryGateableFamily(t *testing.T) {
	ids := []StatID{
		MVCCSnapshotCounters, ObjLockTimeCounters, DWBFlushedBlockVolumes,
		ThreadStats, ThreadDaemonStats,
	}
	for _, id := range ids {
		gate, ok := dumpGate(id)
		assert.True(t, ok, id)
		assert.True(t, FlagAll.Has(gate), id)
	}
}

func TestDumpGateUngateableFamilyAlwaysDumps(t *testing.T) {
	_, ok := dumpGate(PBXFixCounters)
	assert.False(t, ok)
}

func TestDefaultEngineConfig(t *testing.T) {
	c := defaultEngineConfig()
	assert.Equal(t, 1, c.numTrans)
	assert.False(t, c.alwaysCollect)
	assert.Equal(t, FlagAll, c.dumpFlags)
}

func TestWithNumTransIgnoresNonPositive(t *testing.T) {
	c := defaultEngineConfig()
	WithNumTrans(0)(&c)
	assert.Equal(t, 1, c.numTrans)
	WithNumTrans(-3)(&c)
	assert.Equal(t, 1, c.numTrans)
	WithNumTrans(16)(&c)
	assert.Equal(t, 16, c.numTrans)
}

func TestWithAlwaysCollectSetsFlag(t *testing.T) {
	c := defaultEngineConfig()
	WithAlwaysCollect()(&c)
	assert.True(t, c.alwaysCollect)
}
