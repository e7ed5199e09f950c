// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build windows

package session

// cpuTimes has no portable rusage equivalent wired up for Windows;
// callers still get accurate wall-clock elapsed time from [Session].
func cpuTimes() (user, sys float64) {
	return 0, 0
}
