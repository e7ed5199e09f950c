// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package perfmon

// Module classifies the role of a producing thread. It is the leading
// index of the page-level complex statistic families (page-fix,
// page-unfix, page lock/hold/fix time, page promote); the MVCC,
// object-lock, flushed-volume and thread families are not indexed by
// module. Contention on the same page differs
// sharply between ordinary workers, the system thread, and the vacuum
// workers, so each gets its own row.
type Module int

const (
	ModuleSystem Module = iota
	ModuleWorker
	ModuleVacuum
	moduleCount
)

// String renders the module's human label, used by the dumpers.
func (m Module) String() string {
	switch m {
	case ModuleSystem:
		return "SYSTEM"
	case ModuleWorker:
		return "WORKER"
	case ModuleVacuum:
		return "VACUUM"
	default:
		return "UNKNOWN"
	}
}

// ThreadEntry is the caller handle producers thread through to locate
// their transaction slot and module classification. A nil *ThreadEntry
// represents an off-thread caller: it resolves to tran index 0 (the
// reserved slot) and [ModuleSystem], matching the contract that a
// thread with no role is tagged system.
type ThreadEntry struct {
	// TranIndex identifies which per-transaction slot this thread's
	// updates land in. Index 0 is reserved and always present.
	TranIndex int

	// role is unexported: callers set it via WithModule so that the
	// zero value (unset) falls back to ModuleSystem, matching the "no
	// role" contract for off-thread callers.
	role    Module
	roleSet bool
}

// NewThreadEntry returns a ThreadEntry for the given transaction index,
// classified as ModuleWorker. Use [ThreadEntry.WithModule] to override.
func NewThreadEntry(tranIndex int) *ThreadEntry {
	return &ThreadEntry{TranIndex: tranIndex, role: ModuleWorker, roleSet: true}
}

// WithModule returns a copy of t tagged with the given module.
func (t *ThreadEntry) WithModule(m Module) *ThreadEntry {
	if t == nil {
		t = &ThreadEntry{}
	}
	cp := *t
	cp.role = m
	cp.roleSet = true
	return &cp
}

// tranIndex returns the slot this thread updates, defaulting to the
// reserved index 0 for off-thread callers.
func (t *ThreadEntry) tranIndex() int {
	if t == nil {
		return 0
	}
	return t.TranIndex
}

// ModuleOf classifies a calling thread into {system, worker, vacuum}. A
// nil thread, or one that never had its module set, is system.
func ModuleOf(t *ThreadEntry) Module {
	if t == nil || !t.roleSet {
		return ModuleSystem
	}
	return t.role
}
