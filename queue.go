// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package xtm

import (
	"fmt"
	"sync/atomic"
	"unsafe"
)

// Queue is a single-producer, single-consumer bounded queue paired with a
// kernel-backed readiness primitive (a "wake channel") so that one OS
// thread can cheaply wake another sitting inside an arbitrary event loop
// (select, poll, epoll, kqueue, ...).
//
// Two usage patterns share the same Queue: function dispatch
// ([Queue.PushFun] / [Queue.InvokeFunsAll]) and pointer transfer
// ([Queue.PushPtr] / [Queue.PopPtrs]). A given Queue commits to exactly one
// pattern for its lifetime; mixing push/pop kinds on one instance is
// undefined, same as tarantool/xtm, the C library this package takes its
// API shape from.
//
// # Quick start
//
//	q, err := xtm.New(1024, xtm.WithProducerNotifications())
//	if err != nil {
//	    return err
//	}
//	defer q.Close(xtm.WithCloseConsumerReadFD(), xtm.WithCloseProducerReadFD())
//
//	// Producer goroutine (pinned to its own OS thread in the general case):
//	err = q.PushFun(handler, arg, xtm.WithProducerWakeup())
//	if xtm.IsWouldBlock(err) {
//	    // ring was full; a wake-up will arrive on q.ProducerFd() once the
//	    // consumer drains, per the lost-wakeup-avoidance handshake below
//	}
//	q.NotifyConsumer()
//
//	// Consumer goroutine, blocked in its own event loop on q.ConsumerFd():
//	xtm.Consume(q.ConsumerFd())
//	n := q.InvokeFunsAll()
//
// # Batched notification
//
// PushFun/PushPtr never touch the wake channel themselves; NotifyConsumer
// is a separate call so producers can batch many pushes behind one
// notification. The less often you notify, the better the throughput, the
// worse the latency — that tradeoff is the caller's to make.
//
// # No lost wakeups
//
// When a producer is constructed with [WithProducerNotifications] and
// pushes with [WithProducerWakeup], a push that finds the ring full sets
// an atomic "producer wants wakeup" flag *before* retrying the push once
// more. InvokeFunsAll/PopPtrs atomically exchange that flag with false
// after committing their drain and, if the prior value was true, notify
// the producer exactly once. This ordering closes the race where a
// consumer checks the flag, sees false, and skips notifying, while the
// producer concurrently sets the flag and retries: either the retry
// succeeds (the producer doesn't need the wake-up after all) or the flag
// is now true and the next drain will notify it.
//
// Grounded on tarantool/xtm's struct xtm_queue and on the facade shape of
// hayabusa-cloud-lfq's Queue[T] interface (types.go), adapted from an
// in-process generic queue to one backed by OS-level readiness
// descriptors.
type Queue struct {
	r                   *ring
	consumerChan        *wakeChannel
	producerChan        *wakeChannel // nil unless constructed with WithProducerNotifications
	producerWantsWakeup atomic.Bool
}

// New creates a Queue with the given capacity, which must be a power of
// two >= 2 (the reserved empty/full-disambiguation slot means usable
// capacity is capacity-1). Unlike a general-purpose ring buffer that
// rounds an arbitrary capacity up to the next power of two, this follows
// the source's stricter contract (xtm_queue_new/xtm_scsp_queue_init):
// a non-power-of-two capacity is rejected, not silently rounded.
//
// On any construction step's failure, prior steps are undone in reverse
// order (wake channels already opened are closed) before returning the
// error.
func New(capacity int, opts ...Option) (*Queue, error) {
	if !isPow2(capacity) {
		return nil, fmt.Errorf("xtm: capacity %d must be a power of two >= 2: %w", capacity, ErrInvalidArgument)
	}

	var o newOptions
	for _, opt := range opts {
		opt(&o)
	}

	consumerChan, err := newWakeChannel()
	if err != nil {
		return nil, fmt.Errorf("xtm: create consumer wake channel: %w: %w", ErrResourceExhausted, err)
	}

	var producerChan *wakeChannel
	if o.producerNeedsNotifications {
		producerChan, err = newWakeChannel()
		if err != nil {
			_ = consumerChan.close(true)
			return nil, fmt.Errorf("xtm: create producer wake channel: %w: %w", ErrResourceExhausted, err)
		}
	}

	return &Queue{
		r:            newRing(capacity),
		consumerChan: consumerChan,
		producerChan: producerChan,
	}, nil
}

// Close closes the wake-channel descriptors according to opts and frees
// the queue's storage. A distinct write-end fd (pipe backend) is always
// closed; read-end fds are only closed when the matching CloseOption is
// given — otherwise the caller is expected to have already closed them
// (e.g. having handed them to an event-loop library). Closing an fd the
// caller already closed is the caller's responsibility, not double-closed
// here.
func (q *Queue) Close(opts ...CloseOption) error {
	var o closeOptions
	for _, opt := range opts {
		opt(&o)
	}

	var firstErr error
	if err := q.consumerChan.close(o.closeConsumerReadFD); err != nil {
		firstErr = err
	}
	if q.producerChan != nil {
		if err := q.producerChan.close(o.closeProducerReadFD); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// PushFun pushes a (function, argument) cell for Pattern A usage (producer
// thread only). On success the consumer will invoke fn(arg) exactly once
// from [Queue.InvokeFunsAll]. Returns [ErrQueueFull] if the ring has no
// room, after the [WithProducerWakeup] handshake (if requested) has run.
func (q *Queue) PushFun(fn func(unsafe.Pointer), arg unsafe.Pointer, opts ...PushOption) error {
	return q.push(funCell(fn, arg), opts)
}

// PushPtr pushes a single opaque pointer for Pattern B usage (producer
// thread only). On success the consumer will receive ptr from a future
// [Queue.PopPtrs] call. Returns [ErrQueueFull] if the ring has no room.
func (q *Queue) PushPtr(ptr unsafe.Pointer, opts ...PushOption) error {
	return q.push(ptrCell(ptr), opts)
}

func (q *Queue) push(c cell, opts []PushOption) error {
	if q.r.put([]cell{c}) == 1 {
		return nil
	}

	var o pushOptions
	for _, opt := range opts {
		opt(&o)
	}
	if !o.producerNeedsWakeup || q.producerChan == nil {
		return ErrQueueFull
	}

	// Publish the handshake flag before retrying the push; see the
	// Queue doc comment for why this ordering closes the lost-wakeup race.
	q.producerWantsWakeup.Store(true)

	if q.r.put([]cell{c}) == 1 {
		return nil
	}
	return ErrQueueFull
}

// InvokeFunsAll drains every cell currently visible in the ring, calling
// cell.fn(cell.arg) for each, commits the read position exactly once, and
// then — if a producer is waiting — notifies it. Returns the count
// invoked. Only valid on a Queue used with the function-dispatch pattern.
func (q *Queue) InvokeFunsAll() int {
	it := q.r.beginRead()
	n := 0
	for {
		c, ok := it.next()
		if !ok {
			break
		}
		if c.fn != nil {
			c.fn(c.arg)
		}
		n++
	}
	it.end()
	q.maybeNotifyProducer()
	return n
}

// PopPtrs copies up to len(buf) pointers out of the ring into buf, commits
// the read position exactly once, and then — if a producer is waiting —
// notifies it. Returns the count copied. Only valid on a Queue used with
// the pointer-transfer pattern.
func (q *Queue) PopPtrs(buf []unsafe.Pointer) int {
	it := q.r.beginRead()
	n := 0
	for n < len(buf) {
		c, ok := it.next()
		if !ok {
			break
		}
		buf[n] = c.arg
		n++
	}
	it.end()
	q.maybeNotifyProducer()
	return n
}

// maybeNotifyProducer implements the consumer side of the lost-wakeup
// protocol: atomically exchange producerWantsWakeup with false, and
// notify only if the prior value was true. This runs after the drain has
// already committed, which is load-bearing — see the [Queue] doc comment.
//
// A failed notify is swallowed here rather than surfaced: the drain's
// return type stays a plain count (tarantool/xtm's older -(count+1)
// sentinel-return convention is deliberately not carried forward here),
// and a write failure on an edge-triggered, already-non-blocking fd is
// expected to be retried by the caller anyway through the wake-channel
// invariants.
func (q *Queue) maybeNotifyProducer() {
	if q.producerChan == nil {
		return
	}
	if q.producerWantsWakeup.Swap(false) {
		_ = q.producerChan.notify()
	}
}

// NotifyConsumer performs a single non-blocking write to the
// consumer-direction wake channel. Producers call this explicitly
// (separately from PushFun/PushPtr) so that many pushes can be batched
// behind one notification.
func (q *Queue) NotifyConsumer() error {
	return q.consumerChan.notify()
}

// NotifyProducer performs a single non-blocking write to the
// producer-direction wake channel. Ordinarily called only by
// [Queue.InvokeFunsAll]/[Queue.PopPtrs] via the wants-wakeup handshake;
// exposed for callers implementing their own handshake on top of the raw
// fds.
func (q *Queue) NotifyProducer() error {
	if q.producerChan == nil {
		return fmt.Errorf("xtm: queue has no producer wake channel: %w", ErrInvalidArgument)
	}
	return q.producerChan.notify()
}

// Count returns an advisory, racy snapshot of the number of cells
// currently in the ring.
func (q *Queue) Count() int {
	return q.r.count()
}

// Probe reports whether the ring has free space, without pushing
// anything. Returns [ErrQueueFull] if it is full.
func (q *Queue) Probe() error {
	if q.r.freeCount() == 0 {
		return ErrQueueFull
	}
	return nil
}

// ConsumerFd returns the fd the consumer thread's event loop should watch
// for readability. After a readable event, the caller must call
// [Consume] on it to reset the edge-triggered readiness before the next
// wait, and should treat "readable" as advisory: the ring may have gone
// empty again between signal and drain (spurious wake-ups are possible).
func (q *Queue) ConsumerFd() int {
	return q.consumerChan.readFD
}

// ProducerFd returns the fd the producer thread's event loop should watch
// for readability when it was constructed with [WithProducerNotifications].
// Returns -1 otherwise. Same edge-triggered/spurious-wakeup caveats as
// [Queue.ConsumerFd] apply.
func (q *Queue) ProducerFd() int {
	if q.producerChan == nil {
		return -1
	}
	return q.producerChan.readFD
}
