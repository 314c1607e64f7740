// Copyright (c) 2026 Tanzaku Systems. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lfq

import (
	"math/bits"

	"code.hybscloud.com/atomix"
)

// SPMC is a single-producer, multi-consumer broadcast ring.
//
// Unlike SPSC and MPSC this is not used directly: push and pop live on
// the [SPMCProducer] and [SPMCConsumer] handles obtained from [SPMC.Producer]
// and [SPMC.Consumer], because each consumer needs its own independent read
// position and lap count. This is a broadcast, not a work queue — every
// consumer created on this queue observes every value pushed after its
// creation, not a disjoint share of them.
//
// Each slot stores (value, version), where version is the producer's lap
// count — how many times it has wrapped past slot 0 — at the time the
// slot was written. A consumer that reads a slot whose version does not
// match what it expects has been lapped by the producer: the value it
// was about to read has already been overwritten. That condition is
// reported as [OverlapError] rather than silently returning stale data.
type SPMC[T any] struct {
	_        pad
	write    atomix.Uint64 // producer's published cursor, unbounded, release
	_        pad
	buf      []spmcSlot[T]
	mask     uint64
	shift    uint // log2(capacity); version = cursor >> shift
	capacity uint64
	nextID   atomix.Uint64
}

type spmcSlot[T any] struct {
	data    T
	version uint32
}

// NewSPMC creates a new SPMC queue. capacity must be a power of two and
// at least 2; otherwise NewSPMC panics with a [*CapacityError].
func NewSPMC[T any](capacity int) *SPMC[T] {
	n := checkCapacity(capacity)
	return &SPMC[T]{
		buf:      make([]spmcSlot[T], n),
		mask:     n - 1,
		shift:    uint(bits.TrailingZeros64(n)),
		capacity: n,
	}
}

// Producer returns the single producer handle for this queue. Only one
// goroutine may use it (or any handle obtained from further calls to
// Producer) at a time — SPMC has exactly one writer.
func (q *SPMC[T]) Producer() *SPMCProducer[T] {
	return &SPMCProducer[T]{q: q, write: q.write.LoadRelaxed()}
}

// Consumer returns a new, independent consumer handle positioned at the
// queue's current write cursor. It will observe every value pushed from
// this point onward; values pushed before its creation are not replayed.
// Creating N consumers yields N independent read positions — there is no
// coordination between them, and a slow consumer never stalls the
// producer or any other consumer.
func (q *SPMC[T]) Consumer() *SPMCConsumer[T] {
	id := q.nextID.AddAcqRel(1) - 1
	return &SPMCConsumer[T]{
		q:    q,
		id:   id,
		read: q.write.LoadAcquire(),
	}
}

// Cap returns the queue's capacity.
func (q *SPMC[T]) Cap() int {
	return int(q.capacity)
}

// SPMCProducer is the push-only handle for an [SPMC] queue.
type SPMCProducer[T any] struct {
	_     handlePad
	q     *SPMC[T]
	write uint64 // local cursor, unbounded
}

// Push adds an element to the queue. Always returns true: in this
// broadcast design the producer never blocks on a slow consumer — it
// simply overwrites the oldest slot. A consumer that had not yet read
// that slot will detect the overwrite via [OverlapError] on its next Pop
// rather than the producer being made to wait for it.
//
// The payload is stored before the cursor is published with release, so
// that a consumer which acquires the new cursor is guaranteed to observe
// the payload (see spec Open Question #1: exactly one publish, after the
// store).
func (p *SPMCProducer[T]) Push(elem T) bool {
	idx := p.write & p.q.mask
	version := uint32(p.write >> p.q.shift)

	p.q.buf[idx] = spmcSlot[T]{data: elem, version: version}

	p.write++
	p.q.write.StoreRelease(p.write)
	return true
}

// SPMCConsumer is a pop-only handle for an [SPMC] queue with its own
// independent read position and lap count. Obtained from [SPMC.Consumer];
// never shared between goroutines.
type SPMCConsumer[T any] struct {
	_    handlePad
	q    *SPMC[T]
	id   uint64
	read uint64 // local cursor, unbounded
}

// Pop removes an element into out.
//
// Returns (true, nil) on success, (false, nil) if the queue is empty for
// this consumer, or (false, *OverlapError) if the producer has lapped
// past this consumer's read position — the slot the consumer was about
// to read has already been overwritten. The read cursor is not advanced
// on overlap; call [SPMCConsumer.Respawn] to resynchronize before calling
// Pop again.
//
// This is deliberately not [Consumer.Pop]'s plain bool: collapsing
// overlap and empty into the same false would make a consumer that has
// silently lost data indistinguishable from one that simply has nothing
// new yet. SPMCConsumer does not implement [Consumer] for this reason.
func (c *SPMCConsumer[T]) Pop(out *T) (bool, error) {
	write := c.q.write.LoadAcquire()
	if c.read == write {
		return false, nil
	}

	idx := c.read & c.q.mask
	slot := &c.q.buf[idx]
	expected := uint32(c.read >> c.q.shift)
	if slot.version != expected {
		return false, &OverlapError{ConsumerID: c.id, ReadIndex: c.read}
	}

	*out = slot.data // copy: other consumers still need this slot's value
	c.read++
	return true, nil
}

// Respawn resynchronizes this consumer to the producer's current cursor,
// abandoning every value pushed since the consumer's last successful Pop
// (or creation). This is the only recovery path after [OverlapError]:
// once lapped, the missed values are gone, and the consumer resumes from
// "now". Callers that need an at-most-once or full-history guarantee must
// size capacity to the expected lag instead of relying on Respawn.
func (c *SPMCConsumer[T]) Respawn() {
	c.read = c.q.write.LoadAcquire()
}

// Empty reports whether this consumer has no unread values. May be stale
// the instant it is observed.
func (c *SPMCConsumer[T]) Empty() bool {
	return c.read == c.q.write.LoadAcquire()
}

// Lag returns the number of values pushed since this consumer's read
// cursor — how many values it has yet to observe, including any already
// overwritten. A Lag greater than the queue's capacity means this
// consumer's next Pop is guaranteed to return an [OverlapError].
func (c *SPMCConsumer[T]) Lag() int {
	return int(c.q.write.LoadAcquire() - c.read)
}

// Size returns this consumer's Lag. Provided alongside Lag for parity
// with the Sized observational surface the other queue types expose.
func (c *SPMCConsumer[T]) Size() int {
	return c.Lag()
}

// Full reports whether this consumer has already fallen far enough
// behind that its next Pop is guaranteed to return an [OverlapError].
// A Lag equal to capacity is not yet an overlap: every slot the consumer
// has not read is still the producer's most recent write to that slot.
// Overlap starts only once the producer has written past read+capacity.
func (c *SPMCConsumer[T]) Full() bool {
	return c.Lag() > int(c.q.capacity)
}
