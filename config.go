// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package perfmon

// DumpFlags selects which expensive Complex families are actually
// rendered by a dump. Counters in a suppressed family still
// accumulate; only the text output is skipped.
type DumpFlags uint32

const (
	FlagMVCCSnapshot DumpFlags = 1 << iota
	FlagLockObject
	FlagFlushedBlockVolumes
	FlagThread
	FlagDaemons

	// FlagAll enables every Complex family's dump output.
	FlagAll = FlagMVCCSnapshot | FlagLockObject | FlagFlushedBlockVolumes | FlagThread | FlagDaemons
)

// Has reports whether every bit in want is set in f.
func (f DumpFlags) Has(want DumpFlags) bool {
	return f&want == want
}

// dumpGate returns the flag, if any, that guards statistic id's output.
// Families with no corresponding flag (the fix/unfix/promote/lock-time
// counters) are always dumped; only the families with a bit in
// DumpFlags are gateable.
func dumpGate(id StatID) (DumpFlags, bool) {
	switch id {
	case MVCCSnapshotCounters:
		return FlagMVCCSnapshot, true
	case ObjLockTimeCounters:
		return FlagLockObject, true
	case DWBFlushedBlockVolumes:
		return FlagFlushedBlockVolumes, true
	case ThreadStats:
		return FlagThread, true
	case ThreadDaemonStats:
		return FlagDaemons, true
	default:
		return 0, false
	}
}

// Option configures an [Engine] at construction time.
type Option func(*engineConfig)

type engineConfig struct {
	numTrans      int
	alwaysCollect bool
	dumpFlags     DumpFlags
}

func defaultEngineConfig() engineConfig {
	return engineConfig{
		numTrans:  1,
		dumpFlags: FlagAll,
	}
}

// WithNumTrans sets the number of transaction slots the engine allocates
// in addition to the reserved slot 0.
func WithNumTrans(n int) Option {
	return func(c *engineConfig) {
		if n > 0 {
			c.numTrans = n
		}
	}
}

// WithAlwaysCollect forces producers to run even with no watcher
// attached to any slot. There is no corresponding decrement at
// [Engine.Finalize]; the increment is permanent for the life of the
// engine, matching the source's asymmetry.
func WithAlwaysCollect() Option {
	return func(c *engineConfig) {
		c.alwaysCollect = true
	}
}

// WithDumpFlags overrides the default of dumping every Complex family.
func WithDumpFlags(f DumpFlags) Option {
	return func(c *engineConfig) {
		c.dumpFlags = f
	}
}
