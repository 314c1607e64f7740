// Copyright (c) 2026 Tanzaku Systems. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lfq

import "golang.org/x/sys/cpu"

// pad is cache line padding to prevent false sharing between two
// adjacent atomix cursor fields declared inside the same struct.
type pad [64]byte

// padShort pads a ring slot out to a full cache line after an 8-byte
// sequence/version field, so that one producer writing slot i never
// dirties the cache line a consumer is spinning on for slot i+1.
type padShort [64 - 8]byte

// handlePad isolates role-local handle state (an SPMC consumer's read
// cursor and expected version) on its own cache line. Handles are created
// far less often than slots are touched, so this reaches for
// [cpu.CacheLinePad] — sized per architecture by golang.org/x/sys/cpu —
// instead of the hand-rolled 64-byte pad type used between the queue
// cursors above.
type handlePad = cpu.CacheLinePad
