// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Command xtmdemo runs a minimal two-thread producer/consumer handoff over
// an xtm.Queue, each side pinned to its own OS thread and blocking on its
// wake-channel fd via select rather than busy-polling.
package main

import (
	"flag"
	"log"
	"runtime"
	"sync"
	"time"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/hayabusa-cloud/xtm"
)

func main() {
	capacity := flag.Int("capacity", 256, "ring capacity, must be a power of two >= 2")
	count := flag.Int("count", 1_000_000, "number of messages to send")
	flag.Parse()

	q, err := xtm.New(*capacity, xtm.WithProducerNotifications())
	if err != nil {
		log.Fatalf("xtmdemo: xtm.New: %v", err)
	}
	defer q.Close(xtm.WithCloseConsumerReadFD(), xtm.WithCloseProducerReadFD())

	start := time.Now()
	var wg sync.WaitGroup
	wg.Add(2)

	go produce(&wg, q, *count)
	go consume(&wg, q, *count)

	wg.Wait()
	elapsed := time.Since(start)
	log.Printf("xtmdemo: transferred %d messages in %v (%.0f msg/s)",
		*count, elapsed, float64(*count)/elapsed.Seconds())
}

func produce(wg *sync.WaitGroup, q *xtm.Queue, count int) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	defer wg.Done()

	payloads := make([]int, count)
	for i := range payloads {
		payloads[i] = i
	}

	for i := 0; i < count; i++ {
		for {
			err := q.PushPtr(unsafe.Pointer(&payloads[i]), xtm.WithProducerWakeup())
			if err == nil {
				break
			}
			if !xtm.IsWouldBlock(err) {
				log.Fatalf("xtmdemo: producer: PushPtr: %v", err)
			}
			waitReadable(q.ProducerFd())
			xtm.Consume(q.ProducerFd())
		}
		// Notify every so often rather than on every push; the consumer's
		// drain loop picks up everything published since its last wake-up
		// regardless of how many notifications arrived in between.
		if i%64 == 0 {
			if err := q.NotifyConsumer(); err != nil {
				log.Printf("xtmdemo: producer: NotifyConsumer: %v", err)
			}
		}
	}
	if err := q.NotifyConsumer(); err != nil {
		log.Printf("xtmdemo: producer: final NotifyConsumer: %v", err)
	}
}

func consume(wg *sync.WaitGroup, q *xtm.Queue, count int) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	defer wg.Done()

	buf := make([]unsafe.Pointer, 128)
	received := 0
	for received < count {
		waitReadable(q.ConsumerFd())
		if err := xtm.Consume(q.ConsumerFd()); err != nil {
			log.Fatalf("xtmdemo: consumer: Consume: %v", err)
		}
		for {
			n := q.PopPtrs(buf)
			if n == 0 {
				break
			}
			received += n
		}
	}
}

// waitReadable blocks the calling OS thread in its own tiny event loop
// until fd is readable, demonstrating that xtm delegates all blocking to
// the caller: the library itself never calls into select/poll/epoll.
func waitReadable(fd int) {
	var fds unix.FdSet
	fds.Set(fd)
	for {
		n, err := unix.Select(fd+1, &fds, nil, nil, nil)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			log.Fatalf("xtmdemo: select: %v", err)
		}
		if n > 0 {
			return
		}
	}
}
