// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package xtm

import "unsafe"

// cell is one ring slot. It overlays the two usage patterns the same way
// the source's union xtm_msg does: Pattern A (function dispatch) stores
// fn and arg; Pattern B (pointer transfer) stores only arg and leaves fn
// nil. A given Queue uses exactly one pattern for its lifetime; mixing
// within one instance is undefined, same as the source.
type cell struct {
	fn  func(unsafe.Pointer)
	arg unsafe.Pointer
}

func funCell(fn func(unsafe.Pointer), arg unsafe.Pointer) cell {
	return cell{fn: fn, arg: arg}
}

func ptrCell(ptr unsafe.Pointer) cell {
	return cell{arg: ptr}
}
