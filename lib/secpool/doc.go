// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package secpool provides a pool of pinned, self-wiping buffers for
// sensitive working memory.
//
// A [Pool] hands out [Lease] values backed by off-heap pinned regions
// (lib/pinned). Releasing a lease always wipes its full capacity, then
// either re-caches the backing page for reuse or frees it. A buffer is
// never reachable by a later renter, and never becomes ordinary
// reclaimable memory, without having been zero-filled first.
//
// The pool has a single size class: every cacheable buffer is exactly
// [PageSize] bytes. Requests that fit a page receive the full page
// (callers must treat the lease capacity, not the requested size, as
// the usable extent). Requests larger than a page receive an exact,
// uncached, detached lease. This one-class design keeps the cache a
// single lock-free queue with O(1) rent and release, at the cost of
// some slack on small requests.
//
// The cache is a bounded MPMC queue (github.com/puzpuzpuz/xsync); rent
// and release need no external locking. Each pool subscribes to
// lib/pressure at construction: once per GC cycle [Pool.Trim] compares
// system memory load against the high-load threshold scaled by the
// pool's pressure ratio (default 0.90) and discards the whole cache
// when the system is under pressure.
//
// [Shared] returns a lazily created process-wide pool per element
// type. [Empty] is the allocation-free zero-size lease; Rent(0)
// always returns it.
package secpool
