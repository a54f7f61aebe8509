// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build race

package xtm

// RaceEnabled is true when the race detector is active. No test in this
// module consults it; the ring's stress test runs under -race as well.
const RaceEnabled = true
