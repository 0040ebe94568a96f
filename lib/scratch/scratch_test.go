// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package scratch

import (
	"errors"
	"testing"

	"lukechampine.com/frand"
)

func TestNew_OwnedBuffer(t *testing.T) {
	buf, err := New[byte](64)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer buf.Close()

	if buf.Len() != 64 {
		t.Errorf("length %d, want 64", buf.Len())
	}
	for i, v := range buf.View() {
		if v != 0 {
			t.Fatalf("fresh buffer not zero at %d: got %d", i, v)
		}
	}
}

func TestNew_ZeroLength(t *testing.T) {
	buf, err := New[byte](0)
	if err != nil {
		t.Fatalf("New(0) failed: %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("length %d, want 0", buf.Len())
	}
	// Closing an empty buffer never panics.
	buf.Close()
	buf.Close()
}

func TestNew_NegativeLength(t *testing.T) {
	if _, err := New[byte](-1); err == nil {
		t.Fatal("expected error for negative length")
	}
}

func TestNew_OverflowLengthRejected(t *testing.T) {
	// An element count whose byte size wraps must be rejected, not
	// silently truncated to a tiny allocation.
	if _, err := New[uint64](1 << 61); err == nil {
		t.Fatal("expected error for overflowing length")
	}
}

func TestNew_MultiByteElements(t *testing.T) {
	buf, err := New[uint64](100)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer buf.Close()

	if buf.Len() != 100 {
		t.Errorf("length %d, want 100", buf.Len())
	}
	buf.View()[99] = 42
}

func TestWrap_WipesOnClose(t *testing.T) {
	view := frand.Bytes(100)
	buf := Wrap(view)

	buf.Close()
	for i, v := range view {
		if v != 0 {
			t.Fatalf("byte %d not wiped: got %d", i, v)
		}
	}

	// Second close re-wipes an already-zero region; still no fault,
	// still zero.
	buf.Close()
	for i, v := range view {
		if v != 0 {
			t.Fatalf("byte %d nonzero after second Close: got %d", i, v)
		}
	}
}

func TestWrap_DoesNotOwnStorage(t *testing.T) {
	view := make([]byte, 16)
	buf := Wrap(view)
	buf.Close()

	// The caller's slice is still usable after Close; only the
	// contents were wiped.
	view[0] = 7
	if view[0] != 7 {
		t.Error("caller storage unusable after Close")
	}
}

func TestWith_WipesBeforeReturn(t *testing.T) {
	var captured []byte
	err := With(32, func(view []byte) error {
		copy(view, "sensitive material")
		captured = view
		return nil
	})
	if err != nil {
		t.Fatalf("With failed: %v", err)
	}
	// The region was freed; the captured slice must not be used. The
	// contract we can verify is that With surfaced no error and the
	// callback ran.
	if captured == nil {
		t.Fatal("callback did not run")
	}
}

func TestWith_PropagatesError(t *testing.T) {
	sentinel := errors.New("callback failure")
	err := With(8, func(view []byte) error { return sentinel })
	if !errors.Is(err, sentinel) {
		t.Errorf("got %v, want callback error", err)
	}
}

func TestWith_WipesOnPanic(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic to propagate")
		}
	}()
	_ = With(8, func(view []byte) error {
		panic("caller bug")
	})
}
