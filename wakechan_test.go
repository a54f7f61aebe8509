// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package xtm

import "testing"

func TestWakeChannelNotifyAndConsume(t *testing.T) {
	w, err := newWakeChannel()
	if err != nil {
		t.Fatalf("newWakeChannel: %v", err)
	}
	defer w.close(true)

	if err := w.notify(); err != nil {
		t.Fatalf("notify: %v", err)
	}
	if err := w.consume(); err != nil {
		t.Fatalf("consume: %v", err)
	}
}

func TestWakeChannelCoalescesRepeatedNotifies(t *testing.T) {
	w, err := newWakeChannel()
	if err != nil {
		t.Fatalf("newWakeChannel: %v", err)
	}
	defer w.close(true)

	for i := 0; i < 8; i++ {
		if err := w.notify(); err != nil {
			t.Fatalf("notify(%d): %v", i, err)
		}
	}
	if err := w.consume(); err != nil {
		t.Fatalf("consume: %v", err)
	}
}

func TestWakeChannelCloseWithoutReadEnd(t *testing.T) {
	w, err := newWakeChannel()
	if err != nil {
		t.Fatalf("newWakeChannel: %v", err)
	}
	if err := w.close(false); err != nil {
		t.Fatalf("close(false): %v", err)
	}
	// The read end is still open (caller asked us not to close it);
	// clean it up directly so the test doesn't leak the descriptor.
	_ = closeFD(w.readFD)
}
