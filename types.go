// Copyright (c) 2026 Tanzaku Systems. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lfq

// Queue is the capability abstraction shared by [SPSC] and [MPSC]. It lets
// generic callers (benchmarks, pipeline plumbing) treat the two uniformly
// without runtime dispatch: the constraint is satisfied structurally, the
// same way the C++ origin of this package enforces "push/pop/full/empty/
// size" via a compile-time concept rather than a vtable.
//
// [SPMC] deliberately does not satisfy Queue: it has no single Push/Pop
// pair (see [SPMCProducer] and [SPMCConsumer]), and its consumer handle's
// Pop cannot be a plain bool without losing overlap detection — see
// [Consumer]'s doc for why.
//
// Length is intentionally not part of the contract: an exact count would
// require cross-core synchronization beyond what any of these algorithms
// perform on the hot path. Size is observational and may be stale the
// instant it is read.
type Queue[T any] interface {
	Producer[T]
	Consumer[T]
	Cap() int
}

// Producer is the push side of a queue. Satisfied by [SPSC], [MPSC], and
// [SPMCProducer].
//
// Push is non-blocking: it returns false instead of waiting when the queue
// is full (SPSC, MPSC) or, for the SPMC producer handle, it never returns
// false at all — see [SPMCProducer.Push].
type Producer[T any] interface {
	// Push adds an element to the queue. Returns false if the element was
	// not enqueued (queue full). Never blocks, never allocates.
	Push(elem T) bool
}

// Consumer is the pop side of a queue. Satisfied by [SPSC] and [MPSC].
//
// [SPMCConsumer] deliberately does NOT satisfy Consumer: its Pop is
// `(bool, error)`, not `bool`, because a lapped consumer has lost data
// (an [*OverlapError]), which is a different condition from the queue
// simply being empty. Collapsing that distinction into a single bool to
// fit this interface would let overlap silently read as "nothing new
// yet" — see [SPMCConsumer.Pop].
//
// Pop is non-blocking: it returns false when the queue is empty. SPSC and
// MPSC move the stored value out since there is only ever one reader; the
// SPMC consumer handle copies instead, because other consumers must still
// be able to read the same slot.
type Consumer[T any] interface {
	// Pop removes and returns an element, writing it into out. Returns
	// false if the queue was empty; out is left untouched in that case.
	Pop(out *T) bool
}

// Sized reports observational, possibly-stale occupancy. Implemented by
// [SPSC], [MPSC], and [SPMCConsumer] (occupancy in a broadcast ring is only
// well-defined per consumer, so [SPMC] itself and [SPMCProducer] do not
// implement it).
type Sized interface {
	Empty() bool
	Full() bool
	Size() int
}
