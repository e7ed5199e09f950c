// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package perfmon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValuesSnapshotAndLoadFrom(t *testing.T) {
	v := newValues(4)
	v[0].StoreRelaxed(10)
	v[1].StoreRelaxed(20)

	snap := v.Snapshot()
	assert.Equal(t, []uint64{10, 20, 0, 0}, snap)

	v2 := newValues(4)
	v2.loadFrom(snap)
	assert.Equal(t, snap, v2.Snapshot())
}

func TestValuesClear(t *testing.T) {
	v := newValues(3)
	v[0].StoreRelaxed(1)
	v[1].StoreRelaxed(2)
	v[2].StoreRelaxed(3)
	v.clear()
	assert.Equal(t, []uint64{0, 0, 0}, v.Snapshot())
}

func TestAllocateStoreShapesArenas(t *testing.T) {
	s := allocateStore(5, 3)
	require.Len(t, s.global, 5)
	require.Len(t, s.tran, 4) // numTrans + reserved slot 0
	for _, arena := range s.tran {
		assert.Len(t, arena, 5)
	}
}

func TestValueStoreClearSlot(t *testing.T) {
	s := allocateStore(2, 1)
	s.tran[1][0].StoreRelaxed(42)
	s.clearSlot(1)
	assert.Equal(t, []uint64{0, 0}, s.tran[1].Snapshot())
}

func TestValueStoreFree(t *testing.T) {
	s := allocateStore(2, 1)
	s.free()
	assert.Nil(t, s.global)
	assert.Nil(t, s.tran)
}
