// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package memzero provides the zero-fill and constant-time comparison
// primitives every other package in this module builds on.
//
// [Wipe] and [WipeBytes] overwrite a slice with zeros in a way the
// compiler cannot eliminate as a dead store (golang/go#33325: a plain
// store loop followed by runtime.KeepAlive). This is the erase
// operation invoked before pooled memory becomes eligible for reuse
// and before scratch buffers leave scope.
//
// [Equal] and [EqualBytes] compare slices in time dependent only on
// the slice length, never on the position of the first difference.
// Length mismatch returns false immediately — length is not treated
// as secret.
//
// All functions in this package are total: they never fail, never
// panic, and never allocate.
package memzero
