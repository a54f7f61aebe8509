// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package xtm

// wakeChannel is a non-blocking, edge-triggered readiness primitive backed
// by whichever kernel mechanism the host offers: a single-fd event counter
// (eventfd, preferred — see wakechan_linux.go) or a byte pipe (the portable
// fallback — see wakechan_bsd.go). It carries no payload, only a
// boolean-in-time edge: readable means "at least one unconsumed
// notification has been written since the last consume."
//
// Grounded on tarantool/xtm's create_fds/notify_fd: a single fd serves
// both read and write when it's a counter (eventfd), distinct fds when
// it's a pipe.
type wakeChannel struct {
	readFD        int
	writeFD       int
	counterBacked bool // true: eventfd, single fd, 8-byte writes. false: pipe, distinct fds, 1-byte writes.
}

func newWakeChannel() (*wakeChannel, error) {
	readFD, writeFD, counterBacked, err := createWakeFDs()
	if err != nil {
		return nil, &IOError{Op: "create", Err: err}
	}
	return &wakeChannel{readFD: readFD, writeFD: writeFD, counterBacked: counterBacked}, nil
}

// notify performs a single non-blocking write to the channel's write end.
// EAGAIN/EWOULDBLOCK are treated as success (the peer is already pending a
// wake-up, i.e. the notification is effectively coalesced); EINTR is
// retried internally.
func (w *wakeChannel) notify() error {
	if err := writeNotify(w.writeFD, w.counterBacked); err != nil {
		return &IOError{Op: "write", Err: err}
	}
	return nil
}

// consume drains the channel's read end until EAGAIN/EWOULDBLOCK, retrying
// EINTR. Required because the channel is edge-triggered and would
// otherwise stay readable forever after one notification.
func (w *wakeChannel) consume() error {
	return Consume(w.readFD)
}

// Consume drains the readable end of a wake-channel file descriptor,
// resetting its edge-triggered readiness. fd is typically the value
// returned by [Queue.ConsumerFd] or [Queue.ProducerFd].
func Consume(fd int) error {
	if err := readDrain(fd); err != nil {
		return &IOError{Op: "read", Err: err}
	}
	return nil
}

// close closes the channel's descriptors according to closeRead: the
// write end is always closed when it is a distinct descriptor from the
// read end (pipe backend); the read end is closed only when closeRead is
// true, mirroring xtm_queue_delete's close-flag policy.
func (w *wakeChannel) close(closeRead bool) error {
	var err error
	if closeRead {
		if e := closeFD(w.readFD); e != nil {
			err = e
		}
	}
	if w.writeFD != w.readFD {
		if e := closeFD(w.writeFD); e != nil && err == nil {
			err = e
		}
	}
	if err != nil {
		return &IOError{Op: "close", Err: err}
	}
	return nil
}
