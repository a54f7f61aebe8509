// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package xtm

import (
	"errors"
	"fmt"
)

// ErrQueueFull indicates a push could not proceed because the ring is full.
//
// ErrQueueFull is a control flow signal, not a failure: the caller should
// retry (optionally after blocking on [Queue.ProducerFd], or with a
// [Backoff]) rather than treat it as an error.
var ErrQueueFull = errors.New("xtm: queue full")

// ErrInvalidArgument indicates a bad capacity was passed to [New], or that
// [Queue.NotifyProducer] was called on a queue without a producer-direction
// wake channel.
var ErrInvalidArgument = errors.New("xtm: invalid argument")

// ErrResourceExhausted indicates queue construction failed because the
// process is out of memory or out of file descriptors.
var ErrResourceExhausted = errors.New("xtm: resource exhausted")

// ErrUnsupportedPlatform indicates the host OS has no wake-channel backend
// (eventfd or a non-blocking pipe) wired up. Only Linux and the BSD family
// (including Darwin) are supported; see wakechan_windows.go.
var ErrUnsupportedPlatform = errors.New("xtm: unsupported platform")

// IsWouldBlock reports whether err is [ErrQueueFull], possibly wrapped.
// Named to match the ecosystem convention ("would block" = "retry later")
// used by the non-blocking I/O helpers this package's wake channel builds
// on, even though the sentinel itself is spelled ErrQueueFull here.
func IsWouldBlock(err error) bool {
	return errors.Is(err, ErrQueueFull)
}

// IOError wraps a failed non-blocking read, write, or close performed on a
// wake-channel file descriptor. EINTR is always retried internally and
// never surfaces; EAGAIN/EWOULDBLOCK are treated as success and also never
// surface. Only a genuine, non-retryable errno reaches the caller wrapped
// in IOError.
type IOError struct {
	// Op names the failing operation: "create", "write", "read", or "close".
	Op string
	// Err is the underlying errno.
	Err error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("xtm: %s: %v", e.Op, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// IsIOError reports whether err is an [*IOError], possibly wrapped.
func IsIOError(err error) bool {
	var ioErr *IOError
	return errors.As(err, &ioErr)
}
