// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package xtm

import "sync/atomic"

// pad is cache line padding to prevent false sharing between the
// producer-owned and consumer-owned index fields below.
type pad [64]byte

// ring is a wait-free, bounded, single-producer single-consumer queue of
// cells, based on Lamport's ring buffer with the cached-index optimization
// on the producer side: put caches its last observed view of the
// consumer's index and reloads it only when the ring looks full. The
// consumer loads the producer's index once per read transaction
// (beginRead); cachedTail is not used.
//
// Grounded on the cached-index SPSC algorithm in hayabusa-cloud-lfq's
// spsc.go, generalized from a single-element Enqueue/Dequeue to the
// batch-put, scoped-read-transaction shape tarantool/xtm's
// xtm_scsp_queue.h implements.
//
// One slot is always left empty to disambiguate empty from full, so usable
// capacity is capacity-1. capacity must be a power of two; callers reject
// anything else before calling newRing (see New's validation), matching the
// source's reject-rather-than-round-up behavior.
type ring struct {
	_          pad
	head       atomic.Uint64 // consumer-owned; read by producer to test full
	_          pad
	cachedTail uint64        // unused: beginRead loads tail directly
	_          pad
	tail       atomic.Uint64 // producer-owned; read by consumer to test empty
	_          pad
	cachedHead uint64        // producer's private cache of head
	_          pad
	buffer     []cell
	mask       uint64
}

func newRing(capacity int) *ring {
	return &ring{
		buffer: make([]cell, capacity),
		mask:   uint64(capacity) - 1,
	}
}

func isPow2(n int) bool {
	return n >= 2 && n&(n-1) == 0
}

// put copies up to len(cells) cells starting at the current write position,
// stopping if the next slot would collide with the acquire-loaded read
// position. It never blocks and never fails; it only refuses to write
// beyond capacity. Returns the count actually written.
//
// Go's sync/atomic does not expose separate relaxed/acquire/release
// ordering modes the way code.hybscloud.com/atomix does (see DESIGN.md);
// every Load/Store below is a full sequentially-consistent atomic
// operation, which is strictly stronger than the acquire/release pairing
// the algorithm requires and therefore satisfies it.
func (r *ring) put(cells []cell) int {
	tail := r.tail.Load()
	n := 0
	for n < len(cells) {
		if tail-r.cachedHead >= r.mask {
			r.cachedHead = r.head.Load()
			if tail-r.cachedHead >= r.mask {
				break
			}
		}
		r.buffer[tail&r.mask] = cells[n]
		tail++
		n++
	}
	if n > 0 {
		r.tail.Store(tail)
	}
	return n
}

// count returns an advisory, acquire-loaded snapshot of the number of
// cells currently in the ring.
func (r *ring) count() int {
	tail := r.tail.Load()
	head := r.head.Load()
	return int((tail - head) & r.mask)
}

// freeCount returns an advisory, acquire-loaded snapshot of the number of
// free slots (always capacity-1-count, due to the reserved disambiguation
// slot).
func (r *ring) freeCount() int {
	tail := r.tail.Load()
	head := r.head.Load()
	return int((head - tail - 1) & r.mask)
}

// readIter is a scoped read transaction over the ring: a consumer-only
// cursor that snapshots the currently-visible write position on begin,
// yields cells up to (but not including) that snapshot, and commits the
// advanced read index exactly once on end. Cells the producer publishes
// during iteration are deliberately not picked up; they are drained by the
// next beginRead, giving every drain a clean batch boundary.
//
// Abandoning a readIter without calling end leaves no trace: the ring's
// read index is only ever stored by end.
type readIter struct {
	r         *ring
	read      uint64
	endOfRead uint64
}

// beginRead opens a read transaction, snapshotting the acquire-loaded
// write position as the iteration boundary.
func (r *ring) beginRead() readIter {
	return readIter{r: r, read: r.head.Load(), endOfRead: r.tail.Load()}
}

// next yields the next cell reference, or (nil, false) once the iterator
// reaches end-of-read. It does not advance the ring's published read index;
// that only happens in end.
func (it *readIter) next() (*cell, bool) {
	if it.read == it.endOfRead {
		return nil, false
	}
	c := &it.r.buffer[it.read&it.r.mask]
	it.read++
	return c, true
}

// end commits the advanced read position with a release store, publishing
// the freed slots to the producer.
func (it *readIter) end() {
	it.r.head.Store(it.read)
}
