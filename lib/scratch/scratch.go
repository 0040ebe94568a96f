// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package scratch

import (
	"fmt"
	"math"

	"github.com/bureau-foundation/membuf/lib/memzero"
	"github.com/bureau-foundation/membuf/lib/pinned"
)

// Buffer is a scope-local guard over a memory region that must not
// outlive its scope with content intact. Create one with New or Wrap
// and defer Close.
type Buffer[E memzero.Scalar] struct {
	view   []E
	region *pinned.Region
}

// New allocates a pinned, zero-initialized buffer of length elements.
// Zero length is valid and produces a buffer with no mapping. The
// caller owns the allocation and must Close the buffer to wipe and
// free it.
func New[E memzero.Scalar](length int) (*Buffer[E], error) {
	if length < 0 {
		return nil, fmt.Errorf("scratch: length must be non-negative, got %d", length)
	}
	width := pinned.Width[E]()
	if length > math.MaxInt/width {
		return nil, fmt.Errorf("scratch: %d elements of width %d overflow", length, width)
	}
	region, err := pinned.Alloc(length * width)
	if err != nil {
		return nil, fmt.Errorf("scratch: %w", err)
	}
	return &Buffer[E]{view: pinned.View[E](region), region: region}, nil
}

// Wrap creates a buffer over a caller-supplied view. The buffer does
// not own the view's backing storage, only the obligation to wipe it
// on Close.
func Wrap[E memzero.Scalar](view []E) *Buffer[E] {
	return &Buffer[E]{view: view}
}

// View returns the writable region. Invalid after Close when the
// buffer owns its allocation.
func (b *Buffer[E]) View() []E {
	return b.view
}

// Len returns the region length in elements.
func (b *Buffer[E]) Len() int {
	return len(b.view)
}

// Close wipes the whole region, and frees the pinned allocation if
// the buffer owns one. Safe to call any number of times: every call
// re-wipes (a no-op on an already-zero region) and never panics.
// Unmap failures are ignored; the memory is reclaimed at process
// exit regardless.
func (b *Buffer[E]) Close() {
	memzero.Wipe(b.view)
	if b.region != nil {
		region := b.region
		b.region = nil
		b.view = nil
		_ = region.Free()
	}
}

// With runs fn with a pinned buffer of length elements and wipes and
// frees it before returning, even when fn panics. This is the
// enforced scope-local form: fn must not retain the slice beyond its
// return.
func With[E memzero.Scalar](length int, fn func(view []E) error) error {
	buf, err := New[E](length)
	if err != nil {
		return err
	}
	defer buf.Close()
	return fn(buf.View())
}
