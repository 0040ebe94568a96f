// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package leased

import (
	"io"

	"go.uber.org/atomic"

	"github.com/bureau-foundation/membuf/lib/secpool"
	"github.com/bureau-foundation/membuf/lib/segment"
)

// View is a read-only byte view paired with the owner to release when
// the view is done. A nil owner means the view is a zero-copy alias
// of memory someone else manages.
type View struct {
	data   []byte
	owner  io.Closer
	closed atomic.Bool
}

// NewView pairs data with its owner. owner may be nil for borrowed,
// zero-copy views.
func NewView(data []byte, owner io.Closer) *View {
	return &View{data: data, owner: owner}
}

// Bytes returns the view's contents. Invalid after Close when the
// view has an owner.
func (v *View) Bytes() []byte {
	return v.data
}

// Len returns the view length in bytes.
func (v *View) Len() int {
	return len(v.data)
}

// Close releases the owner, if any, exactly once; later calls are
// no-ops returning nil. An owner error propagates to the caller
// unwrapped.
func (v *View) Close() error {
	if !v.closed.CompareAndSwap(false, true) {
		return nil
	}
	if v.owner == nil {
		return nil
	}
	return v.owner.Close()
}

// Fold flattens a segment chain into one contiguous view. A
// single-segment chain folds zero-copy, with no owner; a longer chain
// is copied into a buffer rented from pool, and the returned view
// owns the lease. Folding the zero SequenceView fails with
// segment.ErrEmptyView.
func Fold(seq segment.SequenceView, pool *secpool.Pool[byte]) (*View, error) {
	first, err := seq.First()
	if err != nil {
		return nil, err
	}
	if seq.Count() == 1 {
		return NewView(first.Data(), nil), nil
	}

	total := 0
	for s := range seq.All() {
		total += s.Len()
	}
	lease, err := pool.Rent(total)
	if err != nil {
		return nil, err
	}
	buf := lease.View()[:total]
	for s := range seq.All() {
		copy(buf[s.RunningIndex():], s.Data())
	}
	return NewView(buf, lease), nil
}
