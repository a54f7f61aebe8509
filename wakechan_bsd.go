// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build darwin || freebsd || netbsd || openbsd || dragonfly

package xtm

import "golang.org/x/sys/unix"

// createWakeFDs creates the portable wake-channel backend on hosts without
// eventfd: a non-blocking pipe, read end and write end distinct, matching
// tarantool/xtm's non-Linux create_fds path.
func createWakeFDs() (readFD, writeFD int, counterBacked bool, err error) {
	var fds [2]int
	if err := unix.Pipe2(fds[:], unix.O_NONBLOCK|unix.O_CLOEXEC); err != nil {
		return -1, -1, false, err
	}
	return fds[0], fds[1], false, nil
}
