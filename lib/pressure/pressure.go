// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package pressure

import (
	"runtime"

	"github.com/puzpuzpuz/xsync/v3"
	"go.uber.org/atomic"
	"golang.org/x/sys/unix"
)

// Info is a point-in-time memory reading. Load is the number of bytes
// currently in use; HighThreshold is the level at which the system is
// considered under high memory load.
type Info struct {
	Load          uint64
	HighThreshold uint64
}

// ReaderFunc produces a memory reading. The secure pool calls its
// reader from the GC notification path, so implementations must be
// cheap and must not block.
type ReaderFunc func() Info

// System reads current memory load via sysinfo(2). Load is total minus
// free RAM in bytes, HighThreshold is total RAM in bytes. Returns the
// zero Info if the syscall fails, which consumers treat as "no
// pressure".
func System() Info {
	var si unix.Sysinfo_t
	if err := unix.Sysinfo(&si); err != nil {
		return Info{}
	}
	total := uint64(si.Totalram) * uint64(si.Unit)
	free := uint64(si.Freeram) * uint64(si.Unit)
	if total < free {
		return Info{}
	}
	return Info{Load: total - free, HighThreshold: total}
}

var (
	subscribers = xsync.NewMapOf[uint64, func() bool]()
	nextID      atomic.Uint64
	armed       atomic.Bool
)

// Subscribe registers fn to run once per GC cycle. fn runs on the
// runtime's finalizer goroutine: keep it fast, never block. Returning
// false removes the subscription, as does calling the returned cancel
// function (which is safe to call more than once, and concurrently
// with a notification round).
func Subscribe(fn func() bool) (cancel func()) {
	id := nextID.Inc()
	subscribers.Store(id, fn)
	if armed.CompareAndSwap(false, true) {
		arm()
	}
	return func() { subscribers.Delete(id) }
}

// sentinel exists only to carry the re-arming finalizer. A fresh one
// is allocated per GC cycle; it becomes garbage immediately, so its
// finalizer runs after the next collection.
type sentinel struct{ _ byte }

func arm() {
	runtime.SetFinalizer(&sentinel{}, notify)
}

func notify(*sentinel) {
	subscribers.Range(func(id uint64, fn func() bool) bool {
		if !invoke(fn) {
			subscribers.Delete(id)
		}
		return true
	})

	if subscribers.Size() > 0 {
		arm()
		return
	}
	armed.Store(false)
	// A Subscribe may have stored its callback after the size check
	// above but lost the CAS to the still-set armed flag. Re-check so
	// no subscriber is left without an armed sentinel.
	if subscribers.Size() > 0 && armed.CompareAndSwap(false, true) {
		arm()
	}
}

// invoke runs a subscriber callback, converting a panic into removal.
// Notifications run in the runtime's finalizer context; a panicking
// subscriber must not take the process down with it.
func invoke(fn func() bool) (keep bool) {
	defer func() {
		if recover() != nil {
			keep = false
		}
	}()
	return fn()
}
