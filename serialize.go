// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package perfmon

import (
	"encoding/binary"
	"fmt"
	"io"
	"strings"
)

// Pack serializes v into a tight big-endian byte array, 8 bytes per
// counter in catalog id order. There is no framing and no type tags;
// length is implicit.
func Pack(v []uint64) []byte {
	out := make([]byte, len(v)*8)
	for i, x := range v {
		binary.BigEndian.PutUint64(out[i*8:], x)
	}
	return out
}

// Unpack is Pack's exact inverse. b's length must be a multiple of 8;
// any remainder is ignored.
func Unpack(b []byte) []uint64 {
	n := len(b) / 8
	out := make([]uint64, n)
	for i := 0; i < n; i++ {
		out[i] = binary.BigEndian.Uint64(b[i*8:])
	}
	return out
}

// renderSimple formats one non-Complex statistic's human-readable
// line(s), sharing the same logic whether the final destination is a
// stream or a bounded buffer.
func (e *Engine) renderSimple(entry *CatalogEntry, v []uint64) []string {
	base := entry.StartOffset
	switch entry.Kind {
	case ComputedRatio:
		whole, frac := v[base]/100, v[base]%100
		return []string{fmt.Sprintf("%-40s = %d.%02d", entry.Name, whole, frac)}
	case CounterTimer:
		return []string{
			fmt.Sprintf("%-40s = %12d", "Num_"+entry.Name, v[base+ctCount]),
			fmt.Sprintf("%-40s = %12d", "Total_time_"+entry.Name, v[base+ctTotal]),
			fmt.Sprintf("%-40s = %12d", "Max_time_"+entry.Name, v[base+ctMax]),
			fmt.Sprintf("%-40s = %12d", "Avg_time_"+entry.Name, v[base+ctAvg]),
		}
	default:
		return []string{fmt.Sprintf("%-40s = %12d", entry.Name, v[base])}
	}
}

// dumpLines builds every line a dump should emit for v, honoring
// substr filtering and f's Complex-family gates.
func (e *Engine) dumpLines(v []uint64, substr string, f DumpFlags) []string {
	var lines []string
	for i := range e.catalog {
		entry := &e.catalog[i]
		if !matchesSubstr(entry.Name, substr) {
			continue
		}
		if entry.Kind != Complex {
			lines = append(lines, e.renderSimple(entry, v)...)
			continue
		}
		if gate, gateable := dumpGate(entry.ID); gateable && !f.Has(gate) {
			continue
		}
		sub := v[entry.StartOffset : entry.StartOffset+entry.SlotCount]
		entryLines := entry.family.render(sub)
		if len(entryLines) == 0 {
			continue
		}
		lines = append(lines, entry.Name+":")
		for _, l := range entryLines {
			lines = append(lines, "\t"+l)
		}
	}
	return lines
}

// DumpToStream writes v's human-readable dump to w. An empty substr
// matches every statistic.
func (e *Engine) DumpToStream(w io.Writer, v []uint64, substr string) error {
	for _, line := range e.dumpLines(v, substr, e.cfg.dumpFlags) {
		if _, err := io.WriteString(w, line+"\n"); err != nil {
			return err
		}
	}
	return nil
}

// DumpToBuffer renders v's human-readable dump into buf, truncating and
// null-terminating instead of overflowing: an oversized dump never
// surfaces as an error. It returns the number of bytes written,
// including the terminator, which is always <= len(buf).
func (e *Engine) DumpToBuffer(buf []byte, v []uint64, substr string) int {
	if len(buf) == 0 {
		return 0
	}
	text := strings.Join(e.dumpLines(v, substr, e.cfg.dumpFlags), "\n")
	if text != "" {
		text += "\n"
	}
	n := copy(buf[:len(buf)-1], text)
	buf[n] = 0
	return n + 1
}

// --- Complex family renderers, one per family in catalog.go's table ---

func renderFixCounters(v []uint64) []string {
	var out []string
	for module := Module(0); module < moduleCount; module++ {
		for pt := PageType(0); pt < pageTypeCount; pt++ {
			for mode := FoundMode(0); mode < foundModeCount; mode++ {
				for latch := Latch(0); latch < latchCount; latch++ {
					for cond := CondType(0); cond < condTypeCount; cond++ {
						n := v[fixOffset(module, pt, mode, latch, cond)]
						if n == 0 {
							continue
						}
						out = append(out, fmt.Sprintf("%s,%s,%s,%s,%s = %d", module, pt, mode, latch, cond, n))
					}
				}
			}
		}
	}
	return out
}

func renderFixTimeLike(v []uint64) []string {
	var out []string
	for module := Module(0); module < moduleCount; module++ {
		for pt := PageType(0); pt < pageTypeCount; pt++ {
			for mode := FoundMode(0); mode < foundModeCount; mode++ {
				for latch := Latch(0); latch < latchCount; latch++ {
					for cond := CondType(0); cond < condTypeCount; cond++ {
						n := v[fixOffset(module, pt, mode, latch, cond)]
						if n == 0 {
							continue
						}
						out = append(out, fmt.Sprintf("%s,%s,%s,%s,%s = %d usec", module, pt, mode, latch, cond, n))
					}
				}
			}
		}
	}
	return out
}

func renderFixTimeCounters(v []uint64) []string { return renderFixTimeLike(v) }
func renderLockTimeCounters(v []uint64) []string { return renderFixTimeLike(v) }

func renderPromoteCounters(v []uint64) []string {
	var out []string
	for module := Module(0); module < moduleCount; module++ {
		for pt := PageType(0); pt < pageTypeCount; pt++ {
			for cond := PromoteCond(0); cond < promoteCondCount; cond++ {
				for latch := Latch(0); latch < latchCount; latch++ {
					for _, success := range [2]bool{false, true} {
						n := v[promoteOffset(module, pt, cond, latch, success)]
						if n == 0 {
							continue
						}
						out = append(out, fmt.Sprintf("%s,%s,%s,%s,success=%t = %d", module, pt, cond, latch, success, n))
					}
				}
			}
		}
	}
	return out
}

func renderPromoteTimeCounters(v []uint64) []string {
	var out []string
	for module := Module(0); module < moduleCount; module++ {
		for pt := PageType(0); pt < pageTypeCount; pt++ {
			for cond := PromoteCond(0); cond < promoteCondCount; cond++ {
				for latch := Latch(0); latch < latchCount; latch++ {
					for _, success := range [2]bool{false, true} {
						n := v[promoteOffset(module, pt, cond, latch, success)]
						if n == 0 {
							continue
						}
						out = append(out, fmt.Sprintf("%s,%s,%s,%s,success=%t = %d usec", module, pt, cond, latch, success, n))
					}
				}
			}
		}
	}
	return out
}

func renderUnfixCounters(v []uint64) []string {
	var out []string
	for module := Module(0); module < moduleCount; module++ {
		for pt := PageType(0); pt < pageTypeCount; pt++ {
			for _, bufDirty := range [2]bool{false, true} {
				for _, holderDirty := range [2]bool{false, true} {
					for latch := Latch(0); latch < latchCount; latch++ {
						n := v[unfixOffset(module, pt, bufDirty, holderDirty, latch)]
						if n == 0 {
							continue
						}
						out = append(out, fmt.Sprintf("%s,%s,buf_dirty=%t,holder_dirty=%t,%s = %d", module, pt, bufDirty, holderDirty, latch, n))
					}
				}
			}
		}
	}
	return out
}

func renderHoldTimeCounters(v []uint64) []string {
	var out []string
	for module := Module(0); module < moduleCount; module++ {
		for pt := PageType(0); pt < pageTypeCount; pt++ {
			for mode := FoundMode(0); mode < foundModeCount; mode++ {
				for latch := Latch(0); latch < latchCount; latch++ {
					n := v[holdTimeOffset(module, pt, mode, latch)]
					if n == 0 {
						continue
					}
					out = append(out, fmt.Sprintf("%s,%s,%s,%s = %d usec", module, pt, mode, latch, n))
				}
			}
		}
	}
	return out
}

func renderMVCCCounters(v []uint64) []string {
	var out []string
	for kind := SnapshotKind(0); kind < snapshotKindCount; kind++ {
		for rt := RecordType(0); rt < recordTypeCount; rt++ {
			for vis := Visibility(0); vis < visibilityCount; vis++ {
				n := v[mvccOffset(kind, rt, vis)]
				if n == 0 {
					continue
				}
				out = append(out, fmt.Sprintf("%s,%s,%s = %d", kind, rt, vis, n))
			}
		}
	}
	return out
}

func renderObjLockCounters(v []uint64) []string {
	var out []string
	for mode := LockMode(0); mode < lockModeCount; mode++ {
		n := v[objLockOffset(mode)]
		if n == 0 {
			continue
		}
		out = append(out, fmt.Sprintf("%s = %d usec", mode, n))
	}
	return out
}

func renderFlushedVolumeCounters(v []uint64) []string {
	var out []string
	for i := 0; i < maxFlushedVolumeBuckets; i++ {
		if v[i] == 0 {
			continue
		}
		label := fmt.Sprintf("%d_volumes", i)
		if i == maxFlushedVolumeBuckets-1 {
			label = fmt.Sprintf("%d_or_more_volumes", i)
		}
		out = append(out, fmt.Sprintf("%s = %d", label, v[i]))
	}
	return out
}

func renderThreadStats(v []uint64) []string {
	var out []string
	for i, name := range threadStatFieldNames {
		if v[i] == 0 {
			continue
		}
		out = append(out, fmt.Sprintf("%s = %d", name, v[i]))
	}
	return out
}

func renderThreadDaemonStats(v []uint64) []string {
	var out []string
	for d, daemon := range daemonNames {
		for f, field := range perDaemonFieldNames {
			n := v[d*perDaemonFieldCount+f]
			if n == 0 {
				continue
			}
			out = append(out, fmt.Sprintf("%s.%s = %d", daemon, field, n))
		}
	}
	return out
}
