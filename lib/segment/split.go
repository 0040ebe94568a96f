// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package segment

import (
	"bytes"
	"errors"
	"iter"
)

// ErrEmptyView is returned by First on the zero SequenceView.
var ErrEmptyView = errors.New("segment: sequence view is empty")

// Comparison selects how Split matches the separator against the
// buffer. It governs matching only; segment contents are always taken
// verbatim from the input.
type Comparison int

const (
	// CaseSensitive matches the separator byte-for-byte.
	CaseSensitive Comparison = iota

	// CaseInsensitive matches the separator under simple Unicode case
	// folding (bytes.EqualFold semantics).
	CaseInsensitive
)

// SequenceView is the result of splitting a buffer: the original
// buffer, the number of segments, and the chain's first node. The
// zero value is the empty view with no segments.
type SequenceView struct {
	original []byte
	count    int
	first    *Segment
}

// Original returns the buffer the view was built from.
func (v SequenceView) Original() []byte {
	return v.original
}

// Count returns the number of segments. Any view produced by a split
// has at least one; only the zero view has none.
func (v SequenceView) Count() int {
	return v.count
}

// First returns the chain's first node, or ErrEmptyView on the zero
// view.
func (v SequenceView) First() (*Segment, error) {
	if v.first == nil {
		return nil, ErrEmptyView
	}
	return v.first, nil
}

// All iterates the chain from first to last. Yields nothing on the
// zero view.
func (v SequenceView) All() iter.Seq[*Segment] {
	return func(yield func(*Segment) bool) {
		for s := v.first; s != nil; s = s.next {
			if !yield(s) {
				return
			}
		}
	}
}

// Join concatenates all segments with sep between them. On any
// split-produced view, joining with the separator that was split on
// (case-sensitively) reproduces the original buffer.
func (v SequenceView) Join(sep []byte) []byte {
	total := 0
	for s := v.first; s != nil; s = s.next {
		total += len(s.data)
		if s.next != nil {
			total += len(sep)
		}
	}
	out := make([]byte, 0, total)
	for s := v.first; s != nil; s = s.next {
		out = append(out, s.data...)
		if s.next != nil {
			out = append(out, sep...)
		}
	}
	return out
}

// Sequence builds a view over a chain constructed directly with
// NewChain and Append, counting the reachable nodes. The view has no
// original buffer: chains built this way represent discontiguous
// memory (assembled output, for example) rather than a split.
func Sequence(first *Segment) SequenceView {
	view := SequenceView{first: first}
	for s := first; s != nil; s = s.next {
		view.count++
	}
	return view
}

// SplitByte cuts buf into a segment chain along single-byte
// separators. Always yields at least one segment; an empty buffer
// yields exactly one empty segment.
func SplitByte(buf []byte, sep byte) SequenceView {
	return split(buf, func(tail []byte) (int, int) {
		return bytes.IndexByte(tail, sep), 1
	})
}

// Split cuts buf into a segment chain along occurrences of sep under
// the given comparison mode. An empty or absent separator yields a
// single segment spanning the whole buffer. Never fails.
func Split(buf, sep []byte, cmp Comparison) SequenceView {
	if len(sep) == 0 {
		view := SequenceView{original: buf, count: 1}
		view.first = NewChain(buf)
		return view
	}
	if cmp == CaseInsensitive {
		return split(buf, func(tail []byte) (int, int) {
			return indexFold(tail, sep), len(sep)
		})
	}
	return split(buf, func(tail []byte) (int, int) {
		return bytes.Index(tail, sep), len(sep)
	})
}

// split runs the single forward scan. index reports the next
// separator position within the remaining tail (or -1) and the
// separator length. Each match closes the current segment just before
// the separator and opens the next just after it, so adjacent and
// boundary separators produce empty segments.
func split(buf []byte, index func(tail []byte) (int, int)) SequenceView {
	view := SequenceView{original: buf}

	start := 0
	var tail *Segment
	for {
		pos, sepLen := index(buf[start:])
		if pos < 0 {
			break
		}
		piece := buf[start : start+pos]
		if tail == nil {
			tail = NewChain(piece)
			view.first = tail
		} else {
			tail = tail.Append(piece)
		}
		view.count++
		start += pos + sepLen
	}

	last := buf[start:]
	if tail == nil {
		view.first = NewChain(last)
	} else {
		tail.Append(last)
	}
	view.count++
	return view
}

// indexFold returns the position of the first case-insensitive
// occurrence of sep in tail, or -1. A sliding EqualFold probe: cost
// is proportional to len(tail) times len(sep), acceptable for the
// short separators splitting is used with.
func indexFold(tail, sep []byte) int {
	if len(sep) > len(tail) {
		return -1
	}
	for i := 0; i+len(sep) <= len(tail); i++ {
		if bytes.EqualFold(tail[i:i+len(sep)], sep) {
			return i
		}
	}
	return -1
}
