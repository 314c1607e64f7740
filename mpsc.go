// Copyright (c) 2026 Tanzaku Systems. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lfq

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
)

// MPSC is a CAS-based multi-producer single-consumer bounded queue.
//
// Vyukov's bounded MPSC ring: each slot carries a sequence number
// initialized to its own index. A producer may claim a slot only when its
// sequence equals the producer's candidate position; the consumer may
// read a slot only when its sequence equals the consumer's position plus
// one. Advancing the sequence by exactly 1 (publish) or by capacity
// (reclaim for the next lap) is what keeps the {free, claimed, full,
// reclaimed} state machine correct without a per-slot lock.
//
// Push is lock-free: a producer retries its CAS under contention but
// never blocks. Pop is wait-free and single-threaded.
type MPSC[T any] struct {
	_        pad
	head     atomix.Uint64 // consumer reads from here
	_        pad
	tail     atomix.Uint64 // producers CAS here to claim a slot
	_        pad
	buffer   []mpscCell[T]
	mask     uint64
	capacity uint64
}

type mpscCell[T any] struct {
	seq  atomix.Uint64
	data T
	_    padShort
}

// NewMPSC creates a new MPSC queue. capacity must be a power of two and
// at least 2; otherwise NewMPSC panics with a [*CapacityError].
func NewMPSC[T any](capacity int) *MPSC[T] {
	n := checkCapacity(capacity)

	q := &MPSC[T]{
		buffer:   make([]mpscCell[T], n),
		mask:     n - 1,
		capacity: n,
	}
	for i := uint64(0); i < n; i++ {
		q.buffer[i].seq.StoreRelaxed(i)
	}
	return q
}

// Push adds an element to the queue. Safe to call concurrently from any
// number of producer goroutines. Returns false if the queue is full.
func (q *MPSC[T]) Push(elem T) bool {
	sw := spin.Wait{}
	for {
		pos := q.tail.LoadRelaxed()
		cell := &q.buffer[pos&q.mask]
		seq := cell.seq.LoadAcquire()
		diff := int64(seq) - int64(pos)

		switch {
		case diff == 0:
			if q.tail.CompareAndSwapAcqRel(pos, pos+1) {
				cell.data = elem
				cell.seq.StoreRelease(pos + 1)
				return true
			}
			// lost the race for this slot; refresh pos and retry
		case diff < 0:
			return false // queue full from this producer's viewpoint
		default:
			// another producer already claimed this cell; refresh and retry
		}
		sw.Once()
	}
}

// Pop removes an element into out. Must be called from a single consumer
// goroutine only. Returns false if the queue is empty.
func (q *MPSC[T]) Pop(out *T) bool {
	pos := q.head.LoadRelaxed()
	cell := &q.buffer[pos&q.mask]
	seq := cell.seq.LoadAcquire()
	diff := int64(seq) - int64(pos+1)
	if diff < 0 {
		return false
	}

	*out = cell.data
	var zero T
	cell.data = zero
	cell.seq.StoreRelease(pos + q.capacity)
	q.head.StoreRelaxed(pos + 1)
	return true
}

// Empty reports whether the queue currently holds no elements. May be
// stale the instant it is observed.
func (q *MPSC[T]) Empty() bool {
	return q.Size() == 0
}

// Full reports whether the queue currently holds capacity elements. May
// be stale the instant it is observed.
func (q *MPSC[T]) Full() bool {
	return q.Size() >= int(q.capacity)
}

// Size returns the number of elements currently queued, computed from the
// consumer and producer cursors. May be stale and, under concurrent
// pushes, may transiently overstate occupancy.
func (q *MPSC[T]) Size() int {
	tail := q.tail.LoadRelaxed()
	head := q.head.LoadRelaxed()
	return int(tail - head)
}

// Cap returns the queue's capacity.
func (q *MPSC[T]) Cap() int {
	return int(q.capacity)
}
