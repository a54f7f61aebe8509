// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package xtm

import (
	"runtime"
	"time"
)

// Backoff is a spin/yield/sleep escalation helper for callers that poll
// [Queue.PushFun], [Queue.PushPtr], [Queue.InvokeFunsAll], or
// [Queue.PopPtrs] directly instead of (or in addition to) blocking on the
// fd returned by [Queue.ConsumerFd]/[Queue.ProducerFd]. The zero value is
// ready to use.
//
// Grounded on the spin/yield/sleep escalation shape of
// code.hybscloud.com/spin's Wait type as used by hayabusa-cloud-lfq's
// mpsc.go ("sw := spin.Wait{}; ...; sw.Once()") and on the
// code.hybscloud.com/iox.Backoff usage shown in that package's doc.go
// ("backoff := iox.Backoff{}; ...; backoff.Wait(); backoff.Reset()");
// neither package is a fetchable public module (see DESIGN.md), so the
// concern is carried here as a small local type in the same idiom.
type Backoff struct {
	spins uint32
}

const (
	backoffSpinLimit   = 64
	backoffSleepFloor  = time.Microsecond
	backoffSleepCeil   = 2 * time.Millisecond
)

// Wait escalates: a bounded number of calls spin with [runtime.Gosched],
// then subsequent calls sleep for a duration that doubles (capped) each
// time, until [Backoff.Reset] is called.
func (b *Backoff) Wait() {
	b.spins++
	if b.spins <= backoffSpinLimit {
		runtime.Gosched()
		return
	}
	shift := b.spins - backoffSpinLimit
	if shift > 16 {
		shift = 16
	}
	d := backoffSleepFloor << shift
	if d > backoffSleepCeil || d <= 0 {
		d = backoffSleepCeil
	}
	time.Sleep(d)
}

// Reset clears escalation state after a successful operation.
func (b *Backoff) Reset() {
	b.spins = 0
}
