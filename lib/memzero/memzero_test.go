// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package memzero

import (
	"testing"

	"lukechampine.com/frand"
)

func TestWipeBytes(t *testing.T) {
	for _, size := range []int{0, 1, 17, 100, 4096, 8192} {
		buf := frand.Bytes(size)
		WipeBytes(buf)
		for i, v := range buf {
			if v != 0 {
				t.Fatalf("size %d: byte %d not zeroed: got %d", size, i, v)
			}
		}
	}
}

func TestWipe_MultiByteElements(t *testing.T) {
	buf := make([]uint64, 100)
	for i := range buf {
		buf[i] = frand.Uint64n(1<<63) | 1
	}
	Wipe(buf)
	for i, v := range buf {
		if v != 0 {
			t.Fatalf("element %d not zeroed: got %d", i, v)
		}
	}
}

func TestWipe_Float(t *testing.T) {
	buf := []float64{1.5, -2.25, 3e300}
	Wipe(buf)
	for i, v := range buf {
		if v != 0 {
			t.Fatalf("element %d not zeroed: got %v", i, v)
		}
	}
}

func TestWipe_Empty(t *testing.T) {
	// Must not panic on nil or empty slices.
	Wipe[byte](nil)
	WipeBytes(nil)
	Wipe([]uint32{})
}

func TestEqualBytes(t *testing.T) {
	a := frand.Bytes(64)
	b := make([]byte, 64)
	copy(b, a)

	if !EqualBytes(a, b) {
		t.Error("identical buffers compared unequal")
	}

	b[63] ^= 1
	if EqualBytes(a, b) {
		t.Error("differing buffers compared equal")
	}

	if EqualBytes(a, a[:32]) {
		t.Error("length mismatch compared equal")
	}

	if !EqualBytes(nil, []byte{}) {
		t.Error("nil and empty should compare equal")
	}
}

func TestEqual_MultiByteElements(t *testing.T) {
	a := []uint32{1, 2, 3, 0xFFFFFFFF}
	b := []uint32{1, 2, 3, 0xFFFFFFFF}

	if !Equal(a, b) {
		t.Error("identical buffers compared unequal")
	}

	b[0] = 2
	if Equal(a, b) {
		t.Error("differing buffers compared equal")
	}

	if Equal(a, a[:2]) {
		t.Error("length mismatch compared equal")
	}
}
