// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package leased pairs a read-only byte view with whatever object
// must be released when the view is no longer needed.
//
// A [View] is handed to consumers that should see one contiguous
// buffer without caring where it came from. When the bytes already
// live in one place the view is zero-copy and owns nothing; when they
// had to be assembled into rented memory the view carries the lease
// as its owner and [View.Close] releases it. Close releases the owner
// exactly once — repeated closes are no-ops — and propagates the
// owner's error unwrapped.
//
// [Fold] is the standard producer: it flattens a segment chain into a
// single view, zero-copy when the chain has exactly one segment, and
// by copying into a buffer rented from a secure pool otherwise.
package leased
