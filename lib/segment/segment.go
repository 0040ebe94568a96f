// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package segment

// Segment is one node in a singly linked chain of slices forming a
// logical sequence. The running index of a node equals the running
// index of its predecessor plus the predecessor's length; the first
// node's running index is zero.
type Segment struct {
	data         []byte
	runningIndex int
	next         *Segment
}

// NewChain starts a chain with a single node over data, at running
// index zero.
func NewChain(data []byte) *Segment {
	return &Segment{data: data}
}

// Append creates the successor node over data, links it as s's next
// node, and returns it. Append must be called at most once per node,
// by the single writer building the chain.
func (s *Segment) Append(data []byte) *Segment {
	next := &Segment{
		data:         data,
		runningIndex: s.runningIndex + len(s.data),
	}
	s.next = next
	return next
}

// Data returns the node's slice. Segments alias the buffer they were
// built from; they are views, not copies.
func (s *Segment) Data() []byte {
	return s.data
}

// RunningIndex returns the node's offset within the logical sequence
// formed by its chain.
func (s *Segment) RunningIndex() int {
	return s.runningIndex
}

// Len returns the node's slice length.
func (s *Segment) Len() int {
	return len(s.data)
}

// Next returns the successor node, or nil at the end of the chain.
func (s *Segment) Next() *Segment {
	return s.next
}
