// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package secpool

import (
	"reflect"
	"weak"

	"github.com/puzpuzpuz/xsync/v3"
	"go.uber.org/atomic"

	"github.com/bureau-foundation/membuf/lib/memzero"
	"github.com/bureau-foundation/membuf/lib/pinned"
)

// Lease is a rented buffer: a pinned region plus, for page-class
// leases, a weak reference to the pool that issued it. The holder may
// freely write through [Lease.View] until Release.
//
// Release wipes the lease's full capacity regardless of provenance —
// pooled, oversized, or detached leases all self-clean. A lease
// carries only a weak pool reference so an abandoned pool can be
// collected while its leases are still outstanding; such leases are
// freed instead of re-cached.
type Lease[E memzero.Scalar] struct {
	data     []E
	region   *pinned.Region
	origin   weak.Pointer[Pool[E]]
	pooled   bool
	released atomic.Bool
}

// View returns the lease's full writable capacity. For page-class
// leases this is the whole page, which may exceed the size passed to
// Rent. The slice is invalid once the lease is released.
func (l *Lease[E]) View() []E {
	return l.data
}

// Cap returns the lease capacity in elements.
func (l *Lease[E]) Cap() int {
	return len(l.data)
}

// Release wipes the lease contents and returns the backing page to
// the origin pool, or frees it when the lease is oversized, detached,
// or the origin pool is gone or closed. Release is idempotent: a
// one-shot guard makes repeated calls no-ops until the lease is
// rented out again, so double release cannot duplicate a cache entry.
// Releasing the empty lease does nothing.
func (l *Lease[E]) Release() {
	if l == nil || (l.region == nil && l.data == nil) {
		return
	}
	if !l.released.CompareAndSwap(false, true) {
		return
	}

	memzero.Wipe(l.data)

	if l.region == nil {
		// Wrapped view: the lease owns only the wipe obligation.
		return
	}
	if !l.pooled {
		_ = l.region.Free()
		return
	}
	pool := l.origin.Value()
	if pool == nil || !pool.recycle(l) {
		_ = l.region.Free()
	}
}

// Wrap creates a detached lease over a caller-owned view. The lease
// has no pool and does not own the view's backing storage, only the
// wipe obligation: Release zeroes the view and nothing more. Use this
// to give non-pooled working memory the same self-cleaning contract
// as rented buffers.
func Wrap[E memzero.Scalar](view []E) *Lease[E] {
	return &Lease[E]{data: view}
}

// Close releases the lease. It exists so a Lease satisfies io.Closer
// and can act as the owner in a leased view pairing. The error is
// always nil.
func (l *Lease[E]) Close() error {
	l.Release()
	return nil
}

// empties holds the one zero-size lease per element type.
var empties = xsync.NewMapOf[reflect.Type, any]()

// Empty returns the process-wide zero-size lease for E. It has no
// backing region, costs no allocation after the first call, and its
// Release is a no-op. Rent(0) returns it.
func Empty[E memzero.Scalar]() *Lease[E] {
	key := reflect.TypeOf(*new(E))
	if v, ok := empties.Load(key); ok {
		return v.(*Lease[E])
	}
	v, _ := empties.LoadOrStore(key, &Lease[E]{})
	return v.(*Lease[E])
}
