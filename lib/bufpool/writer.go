// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bufpool

import (
	"errors"

	"github.com/bureau-foundation/membuf/lib/leased"
	"github.com/bureau-foundation/membuf/lib/secpool"
	"github.com/bureau-foundation/membuf/lib/segment"
)

// ErrDetached is returned by Writer operations after Detach.
var ErrDetached = errors.New("bufpool: writer already detached")

// Writer assembles incremental output in secure pooled memory. It
// rents one page at a time, fills it, and keeps the filled slices as
// a logical sequence; nothing is copied until Detach, and nothing is
// copied at all when the output fits one page.
//
// A Writer is single-goroutine, like any bytes.Buffer-shaped type.
// Close releases every page the writer still owns; after a successful
// Detach ownership has moved to the returned view and Close is a
// no-op.
type Writer struct {
	pool     *secpool.Pool[byte]
	leases   []*secpool.Lease[byte]
	fill     int // bytes written into the last page
	total    int
	detached bool
}

// NewWriter creates a writer over pool, or over the shared secure
// byte pool when pool is nil.
func NewWriter(pool *secpool.Pool[byte]) *Writer {
	if pool == nil {
		pool = secpool.Shared[byte]()
	}
	return &Writer{pool: pool}
}

// Len returns the number of bytes written so far.
func (w *Writer) Len() int {
	return w.total
}

// Write appends p, renting additional pages as needed. Implements
// io.Writer; the only failure mode is the pool refusing a page.
func (w *Writer) Write(p []byte) (int, error) {
	if w.detached {
		return 0, ErrDetached
	}
	written := 0
	for len(p) > 0 {
		if len(w.leases) == 0 || w.fill == w.leases[len(w.leases)-1].Cap() {
			lease, err := w.pool.Rent(-1)
			if err != nil {
				return written, err
			}
			w.leases = append(w.leases, lease)
			w.fill = 0
		}
		page := w.leases[len(w.leases)-1].View()
		n := copy(page[w.fill:], p)
		w.fill += n
		w.total += n
		written += n
		p = p[n:]
	}
	return written, nil
}

// Detach returns everything written as one contiguous leased view
// and transfers buffer ownership out of the writer. One page (or
// none) detaches zero-copy with the page lease as owner; multiple
// pages are folded into a single rented buffer and the source pages
// are released. The writer is unusable afterwards except for Close.
func (w *Writer) Detach() (*leased.View, error) {
	if w.detached {
		return nil, ErrDetached
	}
	w.detached = true

	switch len(w.leases) {
	case 0:
		return leased.NewView(nil, nil), nil
	case 1:
		lease := w.leases[0]
		w.leases = nil
		return leased.NewView(lease.View()[:w.fill], lease), nil
	}

	chain := segment.NewChain(w.leases[0].View())
	tail := chain
	for _, lease := range w.leases[1 : len(w.leases)-1] {
		tail = tail.Append(lease.View())
	}
	tail.Append(w.leases[len(w.leases)-1].View()[:w.fill])

	view, err := leased.Fold(segment.Sequence(chain), w.pool)
	for _, lease := range w.leases {
		lease.Release()
	}
	w.leases = nil
	if err != nil {
		return nil, err
	}
	return view, nil
}

// Close releases every page the writer still owns, wiping their
// contents. Safe after Detach and safe to repeat.
func (w *Writer) Close() error {
	for _, lease := range w.leases {
		lease.Release()
	}
	w.leases = nil
	return nil
}
