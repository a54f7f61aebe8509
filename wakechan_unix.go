// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build !windows

package xtm

import "golang.org/x/sys/unix"

// writeNotify, readDrain, and closeFD are shared by every non-Windows
// backend (eventfd on Linux, pipe elsewhere); only fd creation
// (createWakeFDs) differs per OS — see wakechan_linux.go and
// wakechan_bsd.go.
//
// Mirrors the notify_fd/xtm_queue_consume retry policy of tarantool/xtm's
// C implementation (EINTR retried, EAGAIN/EWOULDBLOCK treated as success),
// realized here with golang.org/x/sys/unix for the raw syscalls.

// counterNotifyValue is written atomically to an eventfd to increment its
// 64-bit counter by one; the kernel requires a full 8-byte write.
var counterNotifyValue = [8]byte{1, 0, 0, 0, 0, 0, 0, 0}

// pipeNotifyValue is the single sentinel byte written to a pipe-backed
// wake channel. Unlike eventfd, a pipe has no atomic counter semantics to
// respect, so one byte per notify avoids burning through the pipe's
// buffer after repeated coalesced notifies.
var pipeNotifyValue = [1]byte{1}

func writeNotify(fd int, counterBacked bool) error {
	buf := pipeNotifyValue[:]
	if counterBacked {
		buf = counterNotifyValue[:]
	}
	for {
		n, err := unix.Write(fd, buf)
		if err == nil && n == len(buf) {
			return nil
		}
		if err == unix.EINTR {
			continue
		}
		if err == unix.EAGAIN || err == unix.EWOULDBLOCK {
			return nil
		}
		return err
	}
}

func readDrain(fd int) error {
	var buf [4096]byte
	for {
		_, err := unix.Read(fd, buf[:])
		if err == nil {
			continue
		}
		if err == unix.EINTR {
			continue
		}
		if err == unix.EAGAIN || err == unix.EWOULDBLOCK {
			return nil
		}
		return err
	}
}

func closeFD(fd int) error {
	return unix.Close(fd)
}
