// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package pressure notifies subscribers once per garbage-collection
// cycle so they can react to memory pressure, and reports system
// memory load for them to react to.
//
// [Subscribe] registers a callback that runs shortly after every GC
// cycle. The mechanism is a sentinel object whose finalizer re-arms
// itself: finalizers run exactly once per collected object, so each
// GC cycle produces one round of notifications. Callbacks run on the
// runtime's finalizer goroutine — they must be fast and must not
// block. A callback that returns false, or panics, is dropped; the
// returned cancel function removes the subscription at any time.
//
// [System] reads current memory load via sysinfo(2): Load is total
// minus free RAM, HighThreshold is total RAM. Consumers (the secure
// pool's Trim) compare Load against HighThreshold scaled by their own
// pressure ratio.
//
// Depends on github.com/puzpuzpuz/xsync/v3 for the subscriber registry
// and golang.org/x/sys/unix for the sysinfo call.
package pressure
