// Copyright (c) 2026 Tanzaku Systems. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lfq

// Options configures queue construction via [Builder].
type Options struct {
	singleProducer bool
	singleConsumer bool
	capacity       int
}

// Builder provides a fluent, readable way to pick a queue topology from
// its producer/consumer cardinality rather than naming the algorithm
// directly.
//
// Example:
//
//	q := lfq.BuildSPSC[Event](lfq.New(1024).SingleProducer().SingleConsumer())
//	q := lfq.BuildMPSC[Event](lfq.New(4096).SingleConsumer())
//	q := lfq.BuildSPMC[Event](lfq.New(256).SingleProducer())
type Builder struct {
	opts Options
}

// New creates a queue builder with the given capacity. capacity is
// validated at Build time (by the concrete constructor it ends up
// calling), not here — New itself never panics.
func New(capacity int) *Builder {
	return &Builder{opts: Options{capacity: capacity}}
}

// SingleProducer declares that only one goroutine will push.
func (b *Builder) SingleProducer() *Builder {
	b.opts.singleProducer = true
	return b
}

// SingleConsumer declares that only one goroutine will pop.
func (b *Builder) SingleConsumer() *Builder {
	b.opts.singleConsumer = true
	return b
}

// BuildSPSC creates an SPSC queue with compile-time type safety.
// Panics if the builder is not configured with SingleProducer().SingleConsumer().
func BuildSPSC[T any](b *Builder) *SPSC[T] {
	if !b.opts.singleProducer || !b.opts.singleConsumer {
		panic("lfq: BuildSPSC requires SingleProducer().SingleConsumer()")
	}
	return NewSPSC[T](b.opts.capacity)
}

// BuildMPSC creates an MPSC queue with compile-time type safety.
// Panics if the builder declares SingleProducer() (an MPSC has many
// producers by definition) or omits SingleConsumer().
func BuildMPSC[T any](b *Builder) *MPSC[T] {
	if b.opts.singleProducer || !b.opts.singleConsumer {
		panic("lfq: BuildMPSC requires SingleConsumer() without SingleProducer()")
	}
	return NewMPSC[T](b.opts.capacity)
}

// BuildSPMC creates an SPMC queue with compile-time type safety.
// Panics if the builder omits SingleProducer() or declares
// SingleConsumer() (an SPMC broadcasts to many independent consumers by
// definition).
func BuildSPMC[T any](b *Builder) *SPMC[T] {
	if !b.opts.singleProducer || b.opts.singleConsumer {
		panic("lfq: BuildSPMC requires SingleProducer() without SingleConsumer()")
	}
	return NewSPMC[T](b.opts.capacity)
}
