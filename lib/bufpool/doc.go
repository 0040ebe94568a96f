// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package bufpool is the convenience façade over the module's two
// byte-buffer pools.
//
// [Rent] answers "get me a buffer, sensitive or not" with one call:
// the secure path rents from the shared pinned pool (lib/secpool) and
// wipes on Close; the default path uses valyala/bytebufferpool, the
// ordinary heap pool, with no wipe guarantee. Both come back as a
// [Handle] so call sites choose with a boolean instead of an import.
//
// [Writer] assembles incremental output in secure memory: it rents a
// page per fill, chains the filled slices as a segment chain, and
// [Writer.Detach]es the result as a single contiguous leased view —
// zero-copy when everything fit in one page.
package bufpool
