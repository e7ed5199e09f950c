// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package perfmon

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewThreadEntryDefaultsToWorker(t *testing.T) {
	te := NewThreadEntry(5)
	assert.Equal(t, 5, te.tranIndex())
	assert.Equal(t, ModuleWorker, ModuleOf(te))
}

func TestNilThreadEntryIsSystemAtSlotZero(t *testing.T) {
	var te *ThreadEntry
	assert.Equal(t, 0, te.tranIndex())
	assert.Equal(t, ModuleSystem, ModuleOf(te))
}

func TestWithModuleOverridesRole(t *testing.T) {
	te := NewThreadEntry(2).WithModule(ModuleVacuum)
	assert.Equal(t, ModuleVacuum, ModuleOf(te))
	assert.Equal(t, 2, te.tranIndex())
}

func TestWithModuleOnNilReceiver(t *testing.T) {
	var te *ThreadEntry
	te = te.WithModule(ModuleVacuum)
	assert.Equal(t, ModuleVacuum, ModuleOf(te))
	assert.Equal(t, 0, te.tranIndex())
}

func TestZeroValueThreadEntryIsSystem(t *testing.T) {
	te := &ThreadEntry{TranIndex: 3}
	assert.Equal(t, ModuleSystem, ModuleOf(te))
	assert.Equal(t, 3, te.tranIndex())
}
