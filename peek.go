// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package perfmon

// Peeker is implemented by a peer subsystem that wants its current
// state folded into a snapshot just before export. Sample writes the
// peer's current values into into, which is exactly
// slot_count(ID) wide and already positioned at the statistic's
// sub-range — the peer never sees the rest of the snapshot and must not
// call back into the engine.
//
// Sample must not block on a heavy lock. A peer that would otherwise
// block should return [ErrWouldBlock] instead; the peek pass leaves that
// statistic's sub-range unchanged and moves on.
type Peeker interface {
	Sample(into []uint64) error
}

// peekerFunc adapts a plain function to [Peeker].
type peekerFunc func(into []uint64) error

func (f peekerFunc) Sample(into []uint64) error { return f(into) }

// peekRegistration binds one peer to the statistic it populates.
type peekRegistration struct {
	id     StatID
	peeker Peeker
}

// RegisterPeeker attaches a peer subsystem to a PeekSingle or Complex
// statistic, in registration order. Registration happens once, before
// any snapshot is taken; the engine is not safe for concurrent
// registration and export.
func (e *Engine) RegisterPeeker(id StatID, p Peeker) {
	e.peeks = append(e.peeks, peekRegistration{id: id, peeker: p})
}

// RegisterPeekFunc is the function-literal convenience form of
// [Engine.RegisterPeeker].
func (e *Engine) RegisterPeekFunc(id StatID, fn func(into []uint64) error) {
	e.RegisterPeeker(id, peekerFunc(fn))
}

// SetPeek pushes a single gauge value directly, for peer subsystems that
// prefer to push on their own schedule rather than be pulled at export
// time. It bypasses the watcher gate: a peek value is a current-state
// gauge, not an accumulation, so it is always current regardless of
// whether anyone is watching.
func (e *Engine) SetPeek(id StatID, value uint64) {
	entry := &e.catalog[id]
	e.store.global[entry.StartOffset].StoreRelaxed(value)
}

// runPeeks asks every registered peer to sample into its sub-range of
// target, in registration order, exactly once. A peer's error, whether
// would-block or anything else, is silently ignored, leaving that
// sub-range at its previous value.
func (e *Engine) runPeeks(target []uint64) {
	for _, reg := range e.peeks {
		entry := &e.catalog[reg.id]
		sub := target[entry.StartOffset : entry.StartOffset+entry.SlotCount]
		_ = reg.peeker.Sample(sub)
	}
}
