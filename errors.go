// Copyright (c) 2026 Tanzaku Systems. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lfq

import (
	"errors"
	"fmt"

	"code.hybscloud.com/iox"
)

// ErrWouldBlock is the transient-backpressure sentinel used throughout the
// hybscloud.com ecosystem. Push/Pop on the queues in this package report
// full/empty directly as a bool and never return it themselves; it is
// exposed so callers that translate a false return into an error (to fit
// an error-returning pipeline stage, for instance) stay consistent with
// [iox.ErrWouldBlock] rather than minting a local sentinel.
//
// This is an alias for [iox.ErrWouldBlock] for ecosystem consistency.
var ErrWouldBlock = iox.ErrWouldBlock

// IsWouldBlock reports whether err indicates the operation would block.
// Delegates to [iox.IsWouldBlock] for wrapped error support.
func IsWouldBlock(err error) bool {
	return iox.IsWouldBlock(err)
}

// OverlapError reports that an [SPMCConsumer] fell behind the producer by
// more than the queue's capacity: the slot it was about to read has
// already been overwritten by a later lap. The value at ReadIndex is lost;
// the consumer must call [SPMCConsumer.Respawn] to resynchronize before
// calling Pop again.
type OverlapError struct {
	// ConsumerID identifies which consumer handle overlapped. Assigned at
	// creation time by [SPMC.Consumer] and stable for the handle's life.
	ConsumerID uint64
	// ReadIndex is the consumer's local read cursor at the moment the
	// overlap was detected.
	ReadIndex uint64
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("lfq: spmc consumer %d overlapped by producer at index %d", e.ConsumerID, e.ReadIndex)
}

// IsOverlapped reports whether err is (or wraps) an [*OverlapError].
func IsOverlapped(err error) bool {
	var oe *OverlapError
	return errors.As(err, &oe)
}

// IsSemantic reports whether err is a control flow signal rather than a
// genuine failure: [ErrWouldBlock] or an [*OverlapError]. Delegates the
// ErrWouldBlock case to [iox.IsSemantic]; overlap is a control flow signal
// by the same reasoning (back-pressure of a different shape, recoverable
// by the caller via Respawn instead of retry).
func IsSemantic(err error) bool {
	return iox.IsSemantic(err) || IsOverlapped(err)
}

// IsNonFailure reports whether err represents a non-failure condition:
// nil, [ErrWouldBlock], or an [*OverlapError]. Delegates to
// [iox.IsNonFailure] for the first two.
func IsNonFailure(err error) bool {
	return err == nil || iox.IsNonFailure(err) || IsOverlapped(err)
}
