// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package pinned

import (
	"fmt"
	"unsafe"

	"go.uber.org/atomic"
	"golang.org/x/sys/unix"

	"github.com/bureau-foundation/membuf/lib/memzero"
)

// Region is a pinned, non-relocatable memory allocation outside the Go
// heap. The backing memory is mmap'd anonymously, locked against swap,
// and excluded from core dumps. A Region must not be copied after
// creation; pass it by pointer.
type Region struct {
	data  []byte
	freed atomic.Bool
}

// Alloc allocates a pinned region of sizeBytes bytes, zero-initialized
// by the kernel. sizeBytes of zero yields a valid empty region with no
// mapping. Negative sizes are rejected.
//
// The caller must call Free when the region is no longer needed; the
// garbage collector cannot reclaim mmap'd memory.
func Alloc(sizeBytes int) (*Region, error) {
	if sizeBytes < 0 {
		return nil, fmt.Errorf("pinned: region size must be non-negative, got %d", sizeBytes)
	}
	if sizeBytes == 0 {
		return &Region{}, nil
	}

	data, err := unix.Mmap(-1, 0, sizeBytes, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANONYMOUS)
	if err != nil {
		return nil, fmt.Errorf("pinned: mmap failed: %w", err)
	}

	// Lock the memory to prevent it from being swapped to disk.
	if err := unix.Mlock(data); err != nil {
		unix.Munmap(data)
		return nil, fmt.Errorf("pinned: mlock failed: %w", err)
	}

	// Exclude from core dumps. MADV_DONTDUMP may be unsupported on
	// older kernels; the region is still protected against swap, but
	// callers storing secrets need the full guarantee, so fail.
	if err := unix.Madvise(data, unix.MADV_DONTDUMP); err != nil {
		unix.Munlock(data)
		unix.Munmap(data)
		return nil, fmt.Errorf("pinned: madvise(MADV_DONTDUMP) failed: %w", err)
	}

	return &Region{data: data}, nil
}

// Bytes returns the region's memory as a byte slice. The slice points
// directly into the mapping; it is invalid after Free. Returns an empty
// slice for the zero-size region or after Free.
func (r *Region) Bytes() []byte {
	if r.freed.Load() {
		return nil
	}
	return r.data
}

// Size returns the region's size in bytes (zero after Free).
func (r *Region) Size() int {
	if r.freed.Load() {
		return 0
	}
	return len(r.data)
}

// Free wipes the region's contents, unlocks the memory, and unmaps it.
// Free is idempotent: exactly one caller performs the teardown, and
// every later call is a no-op returning nil. Freeing the zero-size
// region is a no-op.
func (r *Region) Free() error {
	if !r.freed.CompareAndSwap(false, true) {
		return nil
	}
	if len(r.data) == 0 {
		return nil
	}

	memzero.WipeBytes(r.data)

	// Unlock and unmap. The first error is reported, but teardown
	// continues: the memory is reclaimed at process exit regardless.
	var firstErr error
	if err := unix.Munlock(r.data); err != nil {
		firstErr = fmt.Errorf("pinned: munlock failed: %w", err)
	}
	if err := unix.Munmap(r.data); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("pinned: munmap failed: %w", err)
	}
	r.data = nil
	return firstErr
}

// Width returns the size of E in bytes.
func Width[E memzero.Scalar]() int {
	return int(unsafe.Sizeof(*new(E)))
}

// View aliases the region as a slice of E. The element count is the
// region size divided by the element width; trailing bytes that do not
// fill a whole element are not exposed. The slice is invalid after
// Free. mmap'd memory is page-aligned, so any scalar alignment holds.
func View[E memzero.Scalar](r *Region) []E {
	b := r.Bytes()
	width := int(unsafe.Sizeof(*new(E)))
	n := len(b) / width
	if n == 0 {
		return nil
	}
	return unsafe.Slice((*E)(unsafe.Pointer(&b[0])), n)
}
