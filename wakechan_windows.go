// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build windows

package xtm

// Windows has no wake-channel backend wired up (no eventfd; its named-pipe
// and IOCP primitives don't fit the "non-blocking read/write on a plain
// fd" contract the rest of this package assumes). [New] always fails with
// [ErrUnsupportedPlatform] on this platform.
func createWakeFDs() (readFD, writeFD int, counterBacked bool, err error) {
	return -1, -1, false, ErrUnsupportedPlatform
}

func writeNotify(fd int, counterBacked bool) error {
	return ErrUnsupportedPlatform
}

func readDrain(fd int) error {
	return ErrUnsupportedPlatform
}

func closeFD(fd int) error {
	return ErrUnsupportedPlatform
}
