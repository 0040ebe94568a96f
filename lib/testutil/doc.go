// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers.
//
// [RequireReceive] encapsulates the timeout safety valve pattern
// (select with time.After fallback) so that individual tests do not
// need direct time.After calls. The pressure tests use it to wait for
// GC-driven notifications, which arrive on the runtime's finalizer
// goroutine at a time the test cannot control.
package testutil
