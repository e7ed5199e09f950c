// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package perfmon

import "code.hybscloud.com/atomix"

// Values is a flat ordered sequence of 64-bit unsigned counters, one per
// catalog slot, in catalog id order. Every arena — the global region and
// every per-transaction slot — shares this exact shape and length.
//
// Values is backed by [atomix.Uint64] rather than plain uint64 so that
// producer fast-path adds are atomic fetch-adds, while readers doing a
// snapshot use relaxed loads: the weak-memory contract here only requires that
// individual 64-bit updates don't tear.
type Values []atomix.Uint64

// newValues allocates a zeroed Values arena of the given length.
func newValues(n int) Values {
	return make(Values, n)
}

// Snapshot copies every slot into a plain []uint64, suitable for
// diffing, deriving, serializing or handing back to a caller.
func (v Values) Snapshot() []uint64 {
	out := make([]uint64, len(v))
	for i := range v {
		out[i] = v[i].LoadRelaxed()
	}
	return out
}

// loadFrom overwrites v's slots from a plain []uint64 snapshot of the
// same length.
func (v Values) loadFrom(src []uint64) {
	for i := range v {
		v[i].StoreRelaxed(src[i])
	}
}

// clear zeroes every slot.
func (v Values) clear() {
	for i := range v {
		v[i].StoreRelaxed(0)
	}
}

// valueStore owns the raw arenas: one global region and num_trans+1
// per-transaction regions. Arenas are allocated once at [Engine.Initialize]
// and never reallocated for the life of the engine — pointers captured
// by producers stay valid until [Engine.Finalize].
type valueStore struct {
	totalSlots int
	global     Values
	tran       []Values // index 0 reserved for off-thread callers
}

// allocateStore builds a valueStore with one global arena and numTrans+1
// per-transaction arenas, all zeroed. There is no partial-failure path
// in Go (allocation either succeeds or make panics from OOM, which is
// not recoverable at this layer), but the two-phase shape lets callers
// that do want to simulate allocation failure in tests wrap this at a
// higher level.
func allocateStore(totalSlots, numTrans int) *valueStore {
	s := &valueStore{
		totalSlots: totalSlots,
		global:     newValues(totalSlots),
		tran:       make([]Values, numTrans+1),
	}
	for i := range s.tran {
		s.tran[i] = newValues(totalSlots)
	}
	return s
}

// clearSlot zeroes the per-transaction arena for the given slot.
func (s *valueStore) clearSlot(slot int) {
	s.tran[slot].clear()
}

// free releases the arenas. In Go this just drops the references so the
// garbage collector can reclaim them; it exists to give [Engine.Finalize]
// a single place to null things out.
func (s *valueStore) free() {
	s.global = nil
	s.tran = nil
}
