// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package perfmon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogTemplateIDsMatchIndex(t *testing.T) {
	for i, entry := range catalogTemplate {
		assert.Equal(t, StatID(i), entry.ID, "catalogTemplate[%d].ID", i)
	}
}

func TestNewCatalogOffsetsArePackedAndOrdered(t *testing.T) {
	cat, total, err := newCatalog()
	require.NoError(t, err)

	want := 0
	for i := range cat {
		entry := cat[i]
		assert.Equal(t, want, entry.StartOffset, "entry %s start offset", entry.Name)
		assert.Greater(t, entry.SlotCount, 0, "entry %s slot count", entry.Name)
		want += entry.SlotCount
	}
	assert.Equal(t, want, total)
}

func TestNewCatalogSlotCountsByKind(t *testing.T) {
	cat, _, err := newCatalog()
	require.NoError(t, err)

	for i := range cat {
		entry := cat[i]
		switch entry.Kind {
		case AccumulateSingle, PeekSingle, ComputedRatio:
			assert.Equal(t, 1, entry.SlotCount, entry.Name)
		case CounterTimer:
			assert.Equal(t, ctSlots, entry.SlotCount, entry.Name)
		case Complex:
			assert.Greater(t, entry.SlotCount, 1, entry.Name)
		}
	}
}

func TestFindByNameRoundTrips(t *testing.T) {
	cat, _, err := newCatalog()
	require.NoError(t, err)

	for i := range cat {
		entry, err := findByName(&cat, cat[i].Name)
		require.NoError(t, err)
		assert.Equal(t, cat[i].ID, entry.ID)
	}

	_, err = findByName(&cat, "does_not_exist")
	assert.ErrorIs(t, err, ErrInvalidArg)
}

func TestMatchesSubstr(t *testing.T) {
	assert.True(t, matchesSubstr("Num_data_page_fetches", ""))
	assert.True(t, matchesSubstr("Num_data_page_fetches", "page"))
	assert.False(t, matchesSubstr("Num_data_page_fetches", "nope"))
}

func TestPBAvoidVictimCntDiffsAsAccumulator(t *testing.T) {
	cat, _, err := newCatalog()
	require.NoError(t, err)
	assert.True(t, cat[PBAvoidVictimCnt].DiffAsAccumulator)

	for i := range cat {
		if cat[i].ID == PBAvoidVictimCnt {
			continue
		}
		if cat[i].Kind == PeekSingle {
			assert.False(t, cat[i].DiffAsAccumulator, cat[i].Name)
		}
	}
}
