// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package xtm_test

import (
	"fmt"
	"unsafe"

	"github.com/hayabusa-cloud/xtm"
)

// ExampleQueue_PushPtr demonstrates the pointer-transfer pattern on a single
// goroutine: pushes and pops interleave without any wake-channel handling
// because both sides run in the same loop here.
func ExampleQueue_PushPtr() {
	q, err := xtm.New(8)
	if err != nil {
		panic(err)
	}
	defer q.Close(xtm.WithCloseConsumerReadFD())

	msgs := []string{"hello", "cross-thread", "world"}
	ptrs := make([]unsafe.Pointer, len(msgs))
	for i := range msgs {
		ptrs[i] = unsafe.Pointer(&msgs[i])
		if err := q.PushPtr(ptrs[i]); err != nil {
			panic(err)
		}
	}

	buf := make([]unsafe.Pointer, len(msgs))
	n := q.PopPtrs(buf)
	for _, p := range buf[:n] {
		fmt.Println(*(*string)(p))
	}
	// Output:
	// hello
	// cross-thread
	// world
}

// ExampleQueue_PushFun demonstrates the function-dispatch pattern: the
// producer enqueues work, the consumer runs it via InvokeFunsAll.
func ExampleQueue_PushFun() {
	q, err := xtm.New(8)
	if err != nil {
		panic(err)
	}
	defer q.Close(xtm.WithCloseConsumerReadFD())

	total := 0
	accumulate := func(arg unsafe.Pointer) {
		total += *(*int)(arg)
	}

	nums := []int{1, 2, 3, 4}
	for i := range nums {
		if err := q.PushFun(accumulate, unsafe.Pointer(&nums[i])); err != nil {
			panic(err)
		}
	}

	q.InvokeFunsAll()
	fmt.Println(total)
	// Output:
	// 10
}
