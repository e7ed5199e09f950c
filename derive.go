// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package perfmon

// safeDiv returns zero instead of a divide trap when the denominator is
// absent.
func safeDiv(a, b uint64) uint64 {
	if b == 0 {
		return 0
	}
	return a / b
}

// derive runs the post-processing pass over a fully populated snapshot:
// fold the complex counter families into the top-level ratios, then
// fill in every CounterTimer's avg. Each rule is applied exactly once,
// in that order. Every statistic is addressed through its catalog
// StartOffset, not its StatID.
func (e *Engine) derive(v []uint64) {
	var totalUnfix, totalUnfixVacuum, totalUnfixVacuumDirty uint64
	unfixBase := e.catalog[PBXUnfixCounters].StartOffset
	for module := Module(0); module < moduleCount; module++ {
		for pt := PageType(0); pt < pageTypeCount; pt++ {
			for bd := 0; bd < 2; bd++ {
				for hd := 0; hd < 2; hd++ {
					for latch := Latch(0); latch < latchCount; latch++ {
						n := v[unfixBase+unfixOffset(module, pt, bd == 1, hd == 1, latch)]
						totalUnfix += n
						if module == ModuleVacuum {
							totalUnfixVacuum += n
							if bd == 1 {
								totalUnfixVacuumDirty += n
							}
						}
					}
				}
			}
		}
	}

	var holdTimeUsec, fixTimeUsec, lockTimeUsec, vacuumInBufferFetches, totalFixVacuum uint64
	holdBase := e.catalog[PBXHoldTimeCounters].StartOffset
	fixTimeBase := e.catalog[PBXFixTimeCounters].StartOffset
	lockTimeBase := e.catalog[PBXLockTimeCounters].StartOffset
	fixBase := e.catalog[PBXFixCounters].StartOffset
	for module := Module(0); module < moduleCount; module++ {
		for pt := PageType(0); pt < pageTypeCount; pt++ {
			if pt == PageLog {
				continue
			}
			for mode := FoundMode(0); mode < foundModeCount; mode++ {
				for latch := Latch(0); latch < latchCount; latch++ {
					holdTimeUsec += v[holdBase+holdTimeOffset(module, pt, mode, latch)]
					for cond := CondType(0); cond < condTypeCount; cond++ {
						fixTimeUsec += v[fixTimeBase+fixOffset(module, pt, mode, latch, cond)]
						lockTimeUsec += v[lockTimeBase+fixOffset(module, pt, mode, latch, cond)]
						if module == ModuleVacuum && mode == ModeOldInBuffer {
							vacuumInBufferFetches += v[fixBase+fixOffset(module, pt, mode, latch, cond)]
						}
						if module == ModuleVacuum && mode != ModeNewLockWait && mode != ModeNewNoWait {
							totalFixVacuum += v[fixBase+fixOffset(module, pt, mode, latch, cond)]
						}
					}
				}
			}
		}
	}

	off := func(id StatID) int { return e.catalog[id].StartOffset }
	vacuumFetches := totalFixVacuum
	vacuumHits := vacuumInBufferFetches
	fetches := v[off(PBNumFetches)]
	ioreads := v[off(PBNumIOReads)]
	logFetches := v[off(LogNumFetches)]
	logIOReads := v[off(LogNumIOReads)]

	v[off(PBVacuumEfficiency)] = safeDiv(totalUnfixVacuumDirty*10000, totalUnfixVacuum)
	v[off(PBVacuumFetchRatio)] = safeDiv(totalUnfixVacuum*10000, totalUnfix)
	v[off(VacuumDataHitRatio)] = safeDiv(vacuumHits*10000, vacuumFetches)
	v[off(PBHitRatio)] = safeDiv((fetches-minU64(fetches, ioreads))*10000, fetches)
	v[off(LogHitRatio)] = safeDiv((logFetches-minU64(logFetches, logIOReads))*10000, logFetches)
	v[off(PBPageLockTime10usec)] = lockTimeUsec / 10
	v[off(PBPageHoldTime10usec)] = holdTimeUsec / 10
	v[off(PBPageFixTime10usec)] = fixTimeUsec / 10
	v[off(PBPageAllocateTimeRatio)] = safeDiv(subClampU64(fixTimeUsec, holdTimeUsec, lockTimeUsec)*10000, fixTimeUsec)

	var promoteSuccess, promoteFailed, promoteTotalTime uint64
	promoteBase := e.catalog[PBXPromoteCounters].StartOffset
	promoteTimeBase := e.catalog[PBXPromoteTimeCounters].StartOffset
	for module := Module(0); module < moduleCount; module++ {
		for pt := PageType(0); pt < pageTypeCount; pt++ {
			for cond := PromoteCond(0); cond < promoteCondCount; cond++ {
				for latch := Latch(0); latch < latchCount; latch++ {
					promoteSuccess += v[promoteBase+promoteOffset(module, pt, cond, latch, true)]
					promoteFailed += v[promoteBase+promoteOffset(module, pt, cond, latch, false)]
					promoteTotalTime += v[promoteTimeBase+promoteOffset(module, pt, cond, latch, true)]
					promoteTotalTime += v[promoteTimeBase+promoteOffset(module, pt, cond, latch, false)]
				}
			}
		}
	}
	v[off(PBPagePromoteSuccess)] = promoteSuccess * 100
	v[off(PBPagePromoteFailed)] = promoteFailed * 100
	v[off(PBPagePromoteTotalTime10usec)] = promoteTotalTime / 10

	for i := range e.catalog {
		if e.catalog[i].Kind != CounterTimer {
			continue
		}
		base := e.catalog[i].StartOffset
		v[base+ctAvg] = safeDiv(v[base+ctTotal], v[base+ctCount])
	}
}

func minU64(a, b uint64) uint64 {
	if a < b {
		return a
	}
	return b
}

// subClampU64 returns a - (b + c), clamped at zero instead of wrapping,
// for the allocate-time-ratio derivation where hold+lock time can exceed
// fix time under racy reads of the non-atomic cross-family sums.
func subClampU64(a, b, c uint64) uint64 {
	sum := b + c
	if sum >= a {
		return 0
	}
	return a - sum
}
