// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package perfmon

import (
	"errors"
	"fmt"

	"code.hybscloud.com/iox"
)

// ErrNotInitialized is returned by controller operations invoked before
// [Engine.Initialize] has completed, or after [Engine.Finalize].
//
// The engine never panics on this path — callers check for it the same
// way they check any other error return.
var ErrNotInitialized = errors.New("perfmon: engine not initialized")

// ErrInvalidArg is what the catalog's name lookup reports for an unknown
// statistic name. [Engine.GetNamedValueAndClear] turns it into a zero
// result instead of returning it, and producer calls do not range-check
// their multi-index arguments, so no exported call returns it.
var ErrInvalidArg = errors.New("perfmon: invalid argument")

// ConfigError reports a catalog inconsistency discovered while computing
// offsets during [Engine.Initialize]: an entry whose id does not match its
// index, a complex statistic with no family descriptor, or a negative
// load size. Catalog errors are always fatal
// at init and never occur once an engine is initialized.
type ConfigError struct {
	Stat   string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("perfmon: catalog config error for %q: %s", e.Stat, e.Reason)
}

// OutOfMemoryError reports an allocation failure. No call in this module
// returns it: allocation in [Engine.Initialize] and in session setup has
// no recoverable failure path in Go, so a failed allocation is not
// rolled back or reported as this error.
type OutOfMemoryError struct {
	Bytes int
}

func (e *OutOfMemoryError) Error() string {
	return fmt.Sprintf("perfmon: out of memory allocating %d bytes", e.Bytes)
}

// IsNotInitialized reports whether err is (or wraps) [ErrNotInitialized].
func IsNotInitialized(err error) bool {
	return errors.Is(err, ErrNotInitialized)
}

// IsInvalidArg reports whether err is (or wraps) [ErrInvalidArg].
func IsInvalidArg(err error) bool {
	return errors.Is(err, ErrInvalidArg)
}

// IsConfigError reports whether err is a [*ConfigError].
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}

// IsOutOfMemory reports whether err is a [*OutOfMemoryError].
func IsOutOfMemory(err error) bool {
	var oe *OutOfMemoryError
	return errors.As(err, &oe)
}

// ErrWouldBlock is returned by a [Peeker] that cannot sample without
// blocking on a heavy lock. The peek pass treats it like any other peek
// peer error: the statistic's sub-range is left unchanged from its
// previous value. This is an alias for [iox.ErrWouldBlock] for ecosystem
// consistency with the way peers classify control-flow signals elsewhere.
var ErrWouldBlock = iox.ErrWouldBlock

// IsWouldBlock reports whether err indicates a peek sample would have
// blocked. Delegates to [iox.IsWouldBlock] for wrapped error support.
func IsWouldBlock(err error) bool {
	return iox.IsWouldBlock(err)
}

// IsSemantic reports whether err is a control-flow signal rather than a
// failure. Delegates to [iox.IsSemantic].
func IsSemantic(err error) bool {
	return iox.IsSemantic(err)
}
