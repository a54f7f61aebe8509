// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build linux

package xtm

import "golang.org/x/sys/unix"

// createWakeFDs creates the preferred Linux wake-channel backend: a single
// eventfd serving as both read end and write end, matching tarantool/xtm's
// TARANTOOL_XTM_USE_EVENTFD path. A single-fd counter primitive is always
// preferred over a pipe when the host OS provides one.
func createWakeFDs() (readFD, writeFD int, counterBacked bool, err error) {
	fd, err := unix.Eventfd(0, unix.EFD_NONBLOCK|unix.EFD_CLOEXEC)
	if err != nil {
		return -1, -1, false, err
	}
	return fd, fd, true, nil
}
