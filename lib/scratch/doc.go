// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package scratch provides scope-local buffers that are guaranteed to
// be zero-filled when their scope ends, for sensitive intermediate
// values that never go through a pool.
//
// A [Buffer] either owns a fresh pinned allocation ([New]) or wraps a
// caller-supplied view ([Wrap]) without taking ownership of its
// storage — in the wrapped case the buffer owns only the wipe
// obligation. Close wipes the whole region every time it is called,
// never panics, and frees the pinned allocation if the buffer owns
// one. The intended shape is:
//
//	buf, err := scratch.New[byte](64)
//	if err != nil { ... }
//	defer buf.Close()
//	use(buf.View())
//
// Go cannot stop a Buffer from escaping its creating scope the way a
// borrow checker would, so [With] offers the enforced form: the
// buffer exists only for the duration of the callback and is wiped
// (and freed) before With returns, even when the callback panics.
//
// Buffers are scope-local by construction and must not be shared
// across goroutines.
package scratch
