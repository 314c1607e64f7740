// Copyright (c) 2026 Tanzaku Systems. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lfq

import "fmt"

// CapacityError is the construction fault raised when a requested capacity
// does not satisfy capacity >= 2 && popcount(capacity) == 1. Construction
// fails outright on an invalid capacity rather than rounding it up to the
// next power of two.
type CapacityError struct {
	Requested int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("lfq: capacity %d must be a power of two and >= 2", e.Requested)
}

// checkCapacity validates capacity against the one construction invariant
// every queue in this package shares, panicking with a *CapacityError on
// violation. Capacity is never adjusted; callers get exactly what they
// asked for or a fault.
func checkCapacity(capacity int) uint64 {
	if capacity < 2 || capacity&(capacity-1) != 0 {
		panic(&CapacityError{Requested: capacity})
	}
	return uint64(capacity)
}
