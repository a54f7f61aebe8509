// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package xtm provides a cross-thread messenger: a bounded,
// single-producer single-consumer FIFO queue paired with a kernel-backed
// readiness descriptor, so a producer thread and a consumer thread that
// each run their own independent event loop can hand off work without
// either side ever blocking inside this package.
//
// # Why not a channel
//
// A Go channel already solves in-process handoff between goroutines, but
// it has no file descriptor a foreign event loop (an epoll/kqueue-driven
// network server, a GUI main loop, a CGo callback thread) can multiplex
// alongside its other readiness sources. [Queue] trades the channel's
// generality for exactly that: [Queue.ConsumerFd] and [Queue.ProducerFd]
// return descriptors suitable for select/poll/epoll/kqueue, and every
// queue operation is non-blocking, so the caller stays in full control of
// how and when it waits.
//
// # Two patterns, one ring
//
// A Queue transfers one of two cell shapes, chosen once at the call site
// and never mixed on the same instance:
//
//   - Function dispatch: [Queue.PushFun] enqueues a function and an
//     argument; the consumer calls it via [Queue.InvokeFunsAll].
//   - Pointer transfer: [Queue.PushPtr] enqueues a single pointer; the
//     consumer retrieves it via [Queue.PopPtrs].
//
// # Construction and shutdown
//
//	q, err := xtm.New(1024, xtm.WithProducerNotifications())
//	if err != nil {
//	    return err
//	}
//	defer q.Close(xtm.WithCloseConsumerReadFD(), xtm.WithCloseProducerReadFD())
//
// Capacity must be a power of two no smaller than 2; one slot is always
// reserved to disambiguate empty from full, so usable capacity is
// capacity-1. [WithProducerNotifications] opens a second wake channel so a
// producer that finds the ring full can block on [Queue.ProducerFd]
// instead of spinning; omit it if the producer only ever polls.
//
// # Error handling
//
// Operations that would otherwise need to block instead return
// [ErrQueueFull] immediately; test for it with [IsWouldBlock]. Kernel-level
// failures from the wake channel (an unexpected errno from write/read/close)
// are wrapped in [IOError]; test for them with [IsIOError]. [ErrInvalidArgument]
// and [ErrResourceExhausted] are returned from [New] for a bad capacity or a
// failed wake-channel allocation respectively.
//
// # Thread safety
//
// Exactly one goroutine may call the producer-side methods (PushFun,
// PushPtr, NotifyConsumer) and exactly one goroutine may call the
// consumer-side methods (InvokeFunsAll, PopPtrs, NotifyProducer) over a
// Queue's lifetime. Calling a producer-side method concurrently with
// another producer-side call (or likewise on the consumer side) is
// undefined; this is a strict single-producer single-consumer design, with
// no multi-producer or multi-consumer mode.
package xtm
