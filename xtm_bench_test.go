// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package xtm_test

import (
	"testing"
	"unsafe"

	"github.com/hayabusa-cloud/xtm"
)

func BenchmarkPushPopPtr(b *testing.B) {
	q, err := xtm.New(1024)
	if err != nil {
		b.Fatalf("New: %v", err)
	}
	defer q.Close(xtm.WithCloseConsumerReadFD())

	var x int
	buf := make([]unsafe.Pointer, 1)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := q.PushPtr(unsafe.Pointer(&x)); err != nil {
			b.Fatalf("PushPtr: %v", err)
		}
		if n := q.PopPtrs(buf); n != 1 {
			b.Fatalf("PopPtrs: got %d, want 1", n)
		}
	}
}

// BenchmarkCrossThread pushes and pops across two real goroutines,
// measuring the cost of the handoff itself rather than a single-threaded
// push/pop pair.
func BenchmarkCrossThread(b *testing.B) {
	q, err := xtm.New(4096, xtm.WithProducerNotifications())
	if err != nil {
		b.Fatalf("New: %v", err)
	}
	defer q.Close(xtm.WithCloseConsumerReadFD(), xtm.WithCloseProducerReadFD())

	done := make(chan struct{})
	var x int

	go func() {
		for i := 0; i < b.N; i++ {
			for q.PushPtr(unsafe.Pointer(&x), xtm.WithProducerWakeup()) != nil {
				xtm.Consume(q.ProducerFd())
			}
		}
	}()

	go func() {
		buf := make([]unsafe.Pointer, 64)
		received := 0
		for received < b.N {
			xtm.Consume(q.ConsumerFd())
			received += q.PopPtrs(buf)
		}
		close(done)
	}()

	b.ResetTimer()
	<-done
}
