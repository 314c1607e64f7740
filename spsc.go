// Copyright (c) 2026 Tanzaku Systems. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lfq

import "code.hybscloud.com/atomix"

// SPSC is a single-producer single-consumer bounded queue.
//
// Lamport's ring buffer with cached index optimization: the producer
// caches the consumer's read index, and vice versa, so the common path
// touches only its own cursor and a stale-but-usually-sufficient cached
// copy of the peer's, cutting cross-core cache line traffic versus an
// acquire load on every call.
//
// One slot is always reserved: write==read is empty,
// (write+1)&mask==read is full. Both Push and Pop are wait-free.
type SPSC[T any] struct {
	_          pad
	head       atomix.Uint64 // consumer reads from here, publishes here
	_          pad
	cachedTail uint64 // consumer's cached view of tail
	_          pad
	tail       atomix.Uint64 // producer writes here, publishes here
	_          pad
	cachedHead uint64 // producer's cached view of head
	_          pad
	buffer     []T
	mask       uint64
}

// NewSPSC creates a new SPSC queue. capacity must be a power of two and at
// least 2; otherwise NewSPSC panics with a [*CapacityError].
func NewSPSC[T any](capacity int) *SPSC[T] {
	n := checkCapacity(capacity)
	return &SPSC[T]{
		buffer: make([]T, n),
		mask:   n - 1,
	}
}

// Push adds an element to the queue (producer only).
// Returns false if the queue is full.
func (q *SPSC[T]) Push(elem T) bool {
	tail := q.tail.LoadRelaxed()
	if tail-q.cachedHead >= q.mask {
		q.cachedHead = q.head.LoadAcquire()
		if tail-q.cachedHead >= q.mask {
			return false
		}
	}

	q.buffer[tail&q.mask] = elem
	q.tail.StoreRelease(tail + 1)
	return true
}

// Pop removes an element into out (consumer only).
// Returns false if the queue is empty.
func (q *SPSC[T]) Pop(out *T) bool {
	head := q.head.LoadRelaxed()
	if head >= q.cachedTail {
		q.cachedTail = q.tail.LoadAcquire()
		if head >= q.cachedTail {
			return false
		}
	}

	idx := head & q.mask
	*out = q.buffer[idx]
	var zero T
	q.buffer[idx] = zero
	q.head.StoreRelease(head + 1)
	return true
}

// Empty reports whether the queue currently holds no elements. May be
// stale the instant it is observed.
func (q *SPSC[T]) Empty() bool {
	return q.head.LoadRelaxed() == q.tail.LoadRelaxed()
}

// Full reports whether the queue currently holds its maximum of
// capacity-1 elements. May be stale the instant it is observed.
func (q *SPSC[T]) Full() bool {
	tail := q.tail.LoadRelaxed()
	return (tail+1)&q.mask == q.head.LoadRelaxed()&q.mask
}

// Size returns the number of elements currently queued. May be stale the
// instant it is observed.
func (q *SPSC[T]) Size() int {
	tail := q.tail.LoadRelaxed()
	head := q.head.LoadRelaxed()
	return int((tail - head) & q.mask)
}

// Cap returns the capacity the queue was constructed with. Note that one
// of these slots is always reserved (see Full), so at most Cap()-1
// elements are ever queued at once.
func (q *SPSC[T]) Cap() int {
	return int(q.mask + 1)
}
