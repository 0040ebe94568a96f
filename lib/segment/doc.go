// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package segment builds logical contiguous views over physically
// discontiguous memory without copying.
//
// A [Segment] is one node of a singly linked chain: a slice, a running
// index (the cumulative length of everything before it in the chain),
// and a forward link set exactly once by [Segment.Append]. Chains are
// built by a single writer and then treated as frozen; concurrent
// appends, or reads racing a write, are the caller's bug.
//
// [Split] and [SplitByte] cut a contiguous buffer into such a chain
// along a delimiter in one forward pass, allocating only the chain
// nodes — each segment aliases the original buffer. Adjacent and
// boundary delimiters produce empty segments; they are never merged
// or skipped, so joining the segments with the delimiter reproduces
// the input exactly. The substring form takes a [Comparison] mode;
// case-insensitive matching follows bytes.EqualFold semantics and
// affects matching only, never segment content.
//
// The result is a [SequenceView]: the original buffer, the segment
// count, and the first node. The zero SequenceView is empty; its
// First returns [ErrEmptyView] rather than panicking.
package segment
