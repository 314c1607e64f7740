// Copyright (c) 2026 Tanzaku Systems. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package lfq provides bounded, lock-free, wait-free ring-buffer queues
// for handing values between concurrent goroutines with predictable,
// sub-microsecond latency.
//
// Three topologies are offered, each tuned to a different producer/
// consumer cardinality:
//
//   - SPSC: one producer, one consumer.
//   - MPSC: many producers, one consumer.
//   - SPMC: one producer, many consumers, each observing the full
//     produced sequence independently — a broadcast ring, not a
//     work-stealing queue.
//
// # Quick Start
//
//	q := lfq.NewSPSC[Event](1024)
//	q := lfq.NewMPSC[Event](4096)
//	q := lfq.NewSPMC[Event](256)
//
// Builder API chooses the topology from producer/consumer cardinality
// instead of naming the algorithm directly:
//
//	q := lfq.BuildSPSC[Event](lfq.New(1024).SingleProducer().SingleConsumer())
//	q := lfq.BuildMPSC[Event](lfq.New(4096).SingleConsumer())
//	q := lfq.BuildSPMC[Event](lfq.New(256).SingleProducer())
//
// # Basic usage (SPSC, MPSC)
//
// SPSC and MPSC expose Push/Pop directly on the queue:
//
//	q := lfq.NewMPSC[int](1024)
//
//	v := 42
//	if !q.Push(v) {
//	    // queue full — backpressure
//	}
//
//	var out int
//	if q.Pop(&out) {
//	    fmt.Println(out)
//	}
//
// Pipeline stage (SPSC):
//
//	q := lfq.NewSPSC[Data](1024)
//
//	go func() { // producer
//	    for data := range input {
//	        for !q.Push(data) {
//	            runtime.Gosched()
//	        }
//	    }
//	}()
//
//	go func() { // consumer
//	    var data Data
//	    for {
//	        if q.Pop(&data) {
//	            process(data)
//	        }
//	    }
//	}()
//
// Event aggregation (MPSC), many independent sources into one processor:
//
//	q := lfq.NewMPSC[Event](4096)
//
//	for _, s := range sensors {
//	    go func(s Sensor) {
//	        for ev := range s.Events() {
//	            for !q.Push(ev) {
//	                runtime.Gosched()
//	            }
//	        }
//	    }(s)
//	}
//
// # Broadcast usage (SPMC)
//
// SPMC is different: push and pop live on handles, not on the queue
// itself, because every consumer needs its own independent read position
// and lap count.
//
//	q := lfq.NewSPMC[Tick](1024)
//	producer := q.Producer()
//
//	go func() {
//	    for tick := range ticks {
//	        producer.Push(tick) // never fails; overwrites the oldest slot
//	    }
//	}()
//
//	// Each consumer sees every tick pushed after its own creation.
//	for range numSubscribers {
//	    go func() {
//	        consumer := q.Consumer()
//	        var tick Tick
//	        for {
//	            ok, err := consumer.Pop(&tick)
//	            switch {
//	            case err != nil:
//	                // lfq.IsOverlapped(err): this consumer fell behind by
//	                // more than the queue's capacity. The producer has
//	                // already overwritten the slot it was about to read.
//	                consumer.Respawn() // resume from "now", dropping the gap
//	            case !ok:
//	                runtime.Gosched() // empty, nothing new yet
//	            default:
//	                handle(tick)
//	            }
//	        }
//	    }()
//	}
//
// A slow consumer never stalls the producer or any other consumer — it
// is solely responsible for detecting, via [OverlapError], that it lost
// track, and for deciding whether to call [SPMCConsumer.Respawn] or treat
// the gap as fatal.
//
// # Capacity
//
// Every constructor requires capacity to already be a power of two and
// at least 2. Unlike some sibling packages in this ecosystem, capacity
// is never silently rounded up: an invalid capacity panics with a
// [*CapacityError] rather than succeeding with a different capacity than
// requested.
//
//	lfq.NewMPSC[int](1024) // ok
//	lfq.NewMPSC[int](1000) // panics: 1000 is not a power of two
//
// SPSC additionally reserves one of its capacity slots to disambiguate
// empty from full, so an SPSC built with capacity N holds at most N-1
// elements at once; see [SPSC.Full].
//
// # Thread safety
//
//   - SPSC: one producer goroutine, one consumer goroutine.
//   - MPSC: any number of producer goroutines, one consumer goroutine.
//   - SPMC: one producer handle in use at a time, any number of
//     independent consumer handles.
//
// Violating these constraints causes data corruption, not a panic: there
// is no runtime check. Each algorithm depends on exactly one writer per
// role having a well-defined CAS/release target; a second concurrent
// writer breaks that invariant silently.
//
// # Error handling
//
// Push/Pop on SPSC and MPSC report full/empty as a plain bool; there is
// nothing else that can go wrong on those paths. [SPMCConsumer.Pop]
// additionally distinguishes "empty" (ok=false, err=nil) from "overlapped"
// (ok=false, err is an [*OverlapError]) because a lapped consumer has
// lost data, not merely found none yet.
//
// [ErrWouldBlock] is exposed, sourced from code.hybscloud.com/iox, for
// callers that want to translate a bool into an error to fit an
// error-returning pipeline stage; none of the queues in this package
// return it themselves.
//
// # Memory ordering
//
// Every cursor, sequence, and version field in this package is a
// [code.hybscloud.com/atomix] atomic accessed with an explicit ordering —
// acquire on a peer's cursor, relaxed on a role's own, release on publish
// — never sequential consistency. The asymmetry between acquire and
// release is what makes the cross-goroutine happens-before edge cheap;
// substituting sequential consistency "to be safe" would defeat the
// design and is never done here.
//
// # Race detection
//
// Go's race detector tracks explicit synchronization (mutex, channel,
// WaitGroup), not the acquire/release orderings these queues rely on, so
// it can report false positives on code that is otherwise correct.
// Concurrency tests that would trigger this skip themselves when
// [RaceEnabled] is true.
package lfq
