// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package xtm

// Option configures [New]. Grounded on the functional-configuration shape
// of hayabusa-cloud-lfq's options.go Builder, scoped down to the one flag
// needed at construction time.
type Option func(*newOptions)

type newOptions struct {
	producerNeedsNotifications bool
}

// WithProducerNotifications enables the producer-direction wake channel:
// a second kernel readiness object the consumer signals after draining,
// so a producer that saw the ring full can block on [Queue.ProducerFd]
// instead of spinning. Corresponds to the source's
// XTM_QUEUE_PRODUCER_NEED_NOTIFICATIONS flag.
func WithProducerNotifications() Option {
	return func(o *newOptions) { o.producerNeedsNotifications = true }
}

// CloseOption configures [Queue.Close]. Corresponds to the source's
// XTM_QUEUE_NEED_TO_CLOSE_READFD-family flags: the write end of a
// distinct-fd (pipe) pair is always closed by Close; these options only
// control whether the read ends are closed by the library or are expected
// to have been closed already by the caller.
type CloseOption func(*closeOptions)

type closeOptions struct {
	closeConsumerReadFD bool
	closeProducerReadFD bool
}

// WithCloseConsumerReadFD tells [Queue.Close] to close the consumer-direction
// read fd. Omit this when the caller has already closed it (e.g. because it
// handed the fd to an event-loop library that owns its lifetime).
func WithCloseConsumerReadFD() CloseOption {
	return func(o *closeOptions) { o.closeConsumerReadFD = true }
}

// WithCloseProducerReadFD tells [Queue.Close] to close the producer-direction
// read fd, if a producer-direction channel exists. Has no effect on a queue
// constructed without [WithProducerNotifications].
func WithCloseProducerReadFD() CloseOption {
	return func(o *closeOptions) { o.closeProducerReadFD = true }
}

// PushOption configures [Queue.PushFun] and [Queue.PushPtr].
type PushOption func(*pushOptions)

type pushOptions struct {
	producerNeedsWakeup bool
}

// WithProducerWakeup declares that, if the push fails because the ring is
// full, the producer intends to sleep on [Queue.ProducerFd] and needs the
// consumer to notify it once space frees up. Only meaningful on a queue
// constructed with [WithProducerNotifications]; see the lost-wakeup
// avoidance protocol documented on [Queue].
func WithProducerWakeup() PushOption {
	return func(o *pushOptions) { o.producerNeedsWakeup = true }
}

// Builder provides a fluent alternative to functional options, mirroring
// hayabusa-cloud-lfq's Builder chained-configuration idiom for callers who
// prefer it over New(capacity, opts...).
type Builder struct {
	capacity int
	opts     newOptions
}

// NewBuilder starts a fluent queue configuration for the given capacity.
func NewBuilder(capacity int) *Builder {
	return &Builder{capacity: capacity}
}

// WithProducerNotifications enables the producer-direction wake channel.
func (b *Builder) WithProducerNotifications() *Builder {
	b.opts.producerNeedsNotifications = true
	return b
}

// Build creates the [Queue] with the accumulated configuration.
func (b *Builder) Build() (*Queue, error) {
	var opts []Option
	if b.opts.producerNeedsNotifications {
		opts = append(opts, WithProducerNotifications())
	}
	return New(b.capacity, opts...)
}
