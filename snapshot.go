// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package perfmon

// AllocValues returns a zeroed array sized to hold one full snapshot.
func (e *Engine) AllocValues() []uint64 {
	return make([]uint64, e.totalSlots)
}

// CopySnapshot copies every counter from src into dst.
func CopySnapshot(dst, src []uint64) {
	copy(dst, src)
}

// Diff computes out = new - old per statistic kind, then re-runs
// derivation on out so its derived columns reflect the delta rather
// than stale absolute values carried over from new.
func (e *Engine) Diff(out, newer, older []uint64) {
	for i := range e.catalog {
		entry := &e.catalog[i]
		switch {
		case entry.Kind == PeekSingle && !entry.DiffAsAccumulator:
			copy(out[entry.StartOffset:entry.StartOffset+entry.SlotCount], newer[entry.StartOffset:entry.StartOffset+entry.SlotCount])
		default:
			for o := entry.StartOffset; o < entry.StartOffset+entry.SlotCount; o++ {
				if newer[o] >= older[o] {
					out[o] = newer[o] - older[o]
				} else {
					out[o] = 0
				}
			}
		}
	}
	e.derive(out)
}
