// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package memzero

import (
	"crypto/subtle"
	"runtime"

	"golang.org/x/exp/constraints"
)

// Scalar is the set of element types the secure-memory packages operate
// on: fixed-width numeric types with no pointers, safe to alias onto a
// raw byte region and safe to erase with plain stores.
type Scalar interface {
	constraints.Integer | constraints.Float
}

// Wipe overwrites every element of s with the zero value. The
// runtime.KeepAlive fence prevents the compiler from eliminating the
// stores when s is about to become unreachable.
func Wipe[E Scalar](s []E) {
	for i := range s {
		s[i] = 0
	}
	runtime.KeepAlive(s)
}

// WipeBytes overwrites every byte of b with zero. Equivalent to
// Wipe[byte] but avoids instantiating the generic form at call sites
// that only ever handle raw bytes.
func WipeBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
	runtime.KeepAlive(b)
}

// Equal reports whether a and b have identical contents, in time
// dependent only on the slice length. Slices of different lengths
// compare unequal immediately; the length of a secret is not itself
// treated as secret. Restricted to integer element types because the
// accumulator needs bitwise operations; compare float buffers through
// their byte view instead.
func Equal[E constraints.Integer](a, b []E) bool {
	if len(a) != len(b) {
		return false
	}
	var diff E
	for i := range a {
		diff |= a[i] ^ b[i]
	}
	return diff == 0
}

// EqualBytes reports whether a and b have identical contents using
// crypto/subtle's constant-time comparison.
func EqualBytes(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	return subtle.ConstantTimeCompare(a, b) == 1
}
