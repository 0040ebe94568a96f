// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bufpool

import (
	"fmt"

	"github.com/valyala/bytebufferpool"
	"go.uber.org/atomic"

	"github.com/bureau-foundation/membuf/lib/secpool"
)

// Handle is a rented byte buffer from either pool. Close returns the
// buffer to its pool; for secure handles the contents are wiped
// first, for default handles they are merely recycled.
type Handle interface {
	// Bytes returns the buffer. Its length is at least the requested
	// size; treat the slice as invalid after Close.
	Bytes() []byte

	// Close returns the buffer to its pool. Repeated closes are
	// no-ops for both pools.
	Close() error
}

// Rent returns a buffer of at least size bytes. When secure is set
// the buffer is pinned, never swapped, and wiped on Close; otherwise
// it comes from the ordinary heap pool. Size must be non-negative
// (the secure pool's -1 page convention is not exposed here).
func Rent(size int, secure bool) (Handle, error) {
	if size < 0 {
		return nil, fmt.Errorf("bufpool: size must be non-negative, got %d", size)
	}
	if secure {
		lease, err := secpool.Shared[byte]().Rent(size)
		if err != nil {
			return nil, err
		}
		return secureHandle{lease: lease, size: size}, nil
	}
	buffer := bytebufferpool.Get()
	if cap(buffer.B) < size {
		buffer.B = make([]byte, size)
	} else {
		buffer.B = buffer.B[:size]
	}
	clear(buffer.B)
	return &plainHandle{buffer: buffer}, nil
}

type secureHandle struct {
	lease *secpool.Lease[byte]
	size  int
}

func (h secureHandle) Bytes() []byte {
	// Page leases have full-page capacity; expose the requested size
	// so both pools present the same shape to callers.
	return h.lease.View()[:h.size]
}

func (h secureHandle) Close() error {
	return h.lease.Close()
}

type plainHandle struct {
	buffer *bytebufferpool.ByteBuffer
	closed atomic.Bool
}

func (h *plainHandle) Bytes() []byte {
	return h.buffer.B
}

// Close returns the buffer to the pool exactly once. A second put
// would let the pool hand the same slice to two renters.
func (h *plainHandle) Close() error {
	if !h.closed.CompareAndSwap(false, true) {
		return nil
	}
	bytebufferpool.Put(h.buffer)
	return nil
}
