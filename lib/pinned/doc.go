// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package pinned provides the off-heap allocation substrate for the
// secure buffer types in this module.
//
// A [Region] is an anonymous mmap(MAP_ANONYMOUS) allocation that is
// locked into physical RAM via mlock (preventing swap) and excluded
// from core dumps via madvise(MADV_DONTDUMP). Because the memory lives
// outside the Go heap, the garbage collector never sees it and cannot
// copy or relocate it — this is what "pinned" means here: the region
// has a stable address for its entire lifetime, as required for
// cryptographic material and interop.
//
// [Free] wipes the region, unlocks it, and unmaps it. Free is
// idempotent; a one-shot atomic guard makes concurrent or repeated
// calls safe. The zero-size region is valid and carries no mapping.
//
// [View] aliases a region as a slice of any fixed-width scalar type.
// mmap returns page-aligned memory, so the alignment requirement of
// every scalar type is always satisfied.
//
// Depends on golang.org/x/sys/unix and lib/memzero.
package pinned
