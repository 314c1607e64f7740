// Copyright (c) 2026 Tanzaku Systems. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Lock-free algorithm tests excluded from race detection.
//
// Go's race detector tracks explicit synchronization primitives (mutex, channels,
// WaitGroup) but cannot observe happens-before relationships established through
// atomic memory orderings (acquire-release semantics). These tests exercise
// queue algorithms that use sequence numbers and cursor ordering to protect
// non-atomic data fields; the race detector reports false positives on them.

package lfq_test

import (
	"sync"
	"testing"
	"time"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/iox"

	"github.com/tanzaku-systems/lfq"
)

// TestMPSCHighContention hammers a small-capacity MPSC queue with many more
// producers than slots to exercise the CAS retry loop under contention.
func TestMPSCHighContention(t *testing.T) {
	if lfq.RaceEnabled {
		t.Skip("skip: lock-free algorithm uses cross-variable memory ordering")
	}

	const (
		numProducers = 32
		perProducer  = 2000
	)
	q := lfq.NewMPSC[int](4)

	var wg sync.WaitGroup
	var produced, consumed atomix.Int64
	done := make(chan struct{})

	wg.Add(1)
	go func() {
		defer wg.Done()
		backoff := iox.Backoff{}
		var v int
		for {
			select {
			case <-done:
				for q.Pop(&v) {
					consumed.Add(1)
				}
				return
			default:
			}
			if q.Pop(&v) {
				consumed.Add(1)
				backoff.Reset()
			} else {
				backoff.Wait()
			}
		}
	}()

	for p := range numProducers {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			backoff := iox.Backoff{}
			for range perProducer {
				for !q.Push(id) {
					backoff.Wait()
				}
				backoff.Reset()
				produced.Add(1)
			}
		}(p)
	}

	// wait for all producers, signalled indirectly via produced count
	deadline := time.Now().Add(10 * time.Second)
	for produced.Load() < int64(numProducers*perProducer) {
		if time.Now().After(deadline) {
			t.Fatalf("producers stalled at %d/%d", produced.Load(), numProducers*perProducer)
		}
		time.Sleep(time.Millisecond)
	}
	close(done)
	wg.Wait()

	if consumed.Load() != int64(numProducers*perProducer) {
		t.Fatalf("consumed %d, want %d", consumed.Load(), numProducers*perProducer)
	}
}

// TestSPMCHighContentionConsumers exercises many consumers against a single
// fast producer on a small ring, verifying every non-overlapped Pop returns a
// monotonically increasing value and overlaps are reported rather than
// silently skipped or duplicated.
func TestSPMCHighContentionConsumers(t *testing.T) {
	if lfq.RaceEnabled {
		t.Skip("skip: lock-free algorithm uses cross-variable memory ordering")
	}

	const (
		numConsumers = 16
		totalPushes  = 50000
	)
	q := lfq.NewSPMC[int](8)
	p := q.Producer()

	consumers := make([]*lfq.SPMCConsumer[int], numConsumers)
	for i := range consumers {
		consumers[i] = q.Consumer()
	}

	var wg sync.WaitGroup
	producerDone := make(chan struct{})
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer close(producerDone)
		for i := range totalPushes {
			p.Push(i)
		}
	}()

	deadline := time.Now().Add(10 * time.Second)
	for _, c := range consumers {
		wg.Add(1)
		go func(c *lfq.SPMCConsumer[int]) {
			defer wg.Done()
			last := -1
			for {
				var v int
				ok, err := c.Pop(&v)
				switch {
				case err != nil:
					c.Respawn()
					last = -1
				case ok:
					if v <= last {
						t.Errorf("consumer saw non-increasing value %d after %d", v, last)
						return
					}
					last = v
				default:
					select {
					case <-producerDone:
						return // producer finished; no more values will ever arrive
					default:
						if time.Now().After(deadline) {
							return
						}
					}
				}
			}
		}(c)
	}

	wg.Wait()
}
