// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package xtm

import (
	"sync"
	"testing"
	"unsafe"
)

func TestIsPow2(t *testing.T) {
	cases := map[int]bool{
		-1: false, 0: false, 1: false,
		2: true, 3: false, 4: true,
		1023: false, 1024: true,
	}
	for n, want := range cases {
		if got := isPow2(n); got != want {
			t.Errorf("isPow2(%d) = %v, want %v", n, got, want)
		}
	}
}

func TestRingPutFillsThenRefuses(t *testing.T) {
	r := newRing(4) // usable capacity 3
	cells := []cell{ptrCell(nil), ptrCell(nil), ptrCell(nil), ptrCell(nil)}

	n := r.put(cells)
	if n != 3 {
		t.Fatalf("put into empty ring(4): got %d, want 3", n)
	}
	if got := r.freeCount(); got != 0 {
		t.Fatalf("freeCount after fill: got %d, want 0", got)
	}
	if n := r.put(cells); n != 0 {
		t.Fatalf("put into full ring: got %d, want 0", n)
	}
}

func TestRingFIFOOrder(t *testing.T) {
	r := newRing(8)
	var vals [5]int
	cells := make([]cell, len(vals))
	for i := range vals {
		vals[i] = i + 1
		cells[i] = ptrCell(unsafe.Pointer(&vals[i]))
	}
	if n := r.put(cells); n != len(cells) {
		t.Fatalf("put: got %d, want %d", n, len(cells))
	}

	it := r.beginRead()
	got := make([]int, 0, len(vals))
	for {
		c, ok := it.next()
		if !ok {
			break
		}
		got = append(got, *(*int)(c.arg))
	}
	it.end()

	if len(got) != len(vals) {
		t.Fatalf("drained %d cells, want %d", len(got), len(vals))
	}
	for i, v := range got {
		if v != vals[i] {
			t.Fatalf("order mismatch at %d: got %d, want %d", i, v, vals[i])
		}
	}
	if r.count() != 0 {
		t.Fatalf("count after full drain: got %d, want 0", r.count())
	}
}

// TestRingDrainBoundary verifies that a readIter only sees cells published
// before beginRead was called: cells pushed mid-iteration wait for the next
// drain, giving every batch a clean boundary.
func TestRingDrainBoundary(t *testing.T) {
	r := newRing(8)
	r.put([]cell{ptrCell(nil), ptrCell(nil)})

	it := r.beginRead()
	r.put([]cell{ptrCell(nil)}) // published after the snapshot

	n := 0
	for {
		if _, ok := it.next(); !ok {
			break
		}
		n++
	}
	it.end()

	if n != 2 {
		t.Fatalf("drain saw %d cells, want 2 (pre-snapshot only)", n)
	}
	if got := r.count(); got != 1 {
		t.Fatalf("count after drain: got %d, want 1 (the late push)", got)
	}
}

func TestRingAbandonedIterLeavesNoTrace(t *testing.T) {
	r := newRing(8)
	r.put([]cell{ptrCell(nil), ptrCell(nil)})

	it := r.beginRead()
	for i := 0; i < 2; i++ {
		it.next()
	}
	// deliberately not calling it.end()

	if got := r.count(); got != 2 {
		t.Fatalf("count after abandoned iter: got %d, want 2", got)
	}
}

func TestRingConcurrentSPSC(t *testing.T) {
	const n = 1 << 16
	r := newRing(256)
	vals := make([]int, n)
	for i := range vals {
		vals[i] = i
	}

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		i := 0
		for i < n {
			if r.put([]cell{ptrCell(unsafe.Pointer(&vals[i]))}) == 1 {
				i++
			}
		}
	}()

	got := make([]int, 0, n)
	go func() {
		defer wg.Done()
		for len(got) < n {
			it := r.beginRead()
			for {
				c, ok := it.next()
				if !ok {
					break
				}
				got = append(got, *(*int)(c.arg))
			}
			it.end()
		}
	}()

	wg.Wait()
	for i, v := range got {
		if v != i {
			t.Fatalf("order mismatch at %d: got %d, want %d", i, v, i)
		}
	}
}
