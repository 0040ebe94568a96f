// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package secpool

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"reflect"
	"weak"

	"github.com/puzpuzpuz/xsync/v3"
	"go.uber.org/atomic"

	"github.com/bureau-foundation/membuf/lib/memzero"
	"github.com/bureau-foundation/membuf/lib/pinned"
	"github.com/bureau-foundation/membuf/lib/pressure"
)

// PageSize is the fixed capacity in bytes of the pool's single cache
// size class. Every cacheable lease is backed by exactly one page.
const PageSize = 4096

var (
	// ErrInvalidSize is returned by Rent for sizes below -1.
	ErrInvalidSize = errors.New("secpool: size must be -1 or greater")

	// ErrClosed is returned by Rent after the pool has been closed.
	ErrClosed = errors.New("secpool: pool is closed")
)

// Config holds the parameters for a Pool. The zero value gives usable
// defaults for every field.
type Config struct {
	// CacheCapacity bounds the number of idle pages the pool retains.
	// A release that finds the cache full frees the page instead of
	// growing the cache. Defaults to 256.
	CacheCapacity int

	// PressureRatio is the fraction of the high-load threshold above
	// which Trim discards the cache. Defaults to 0.90. Adjustable at
	// runtime via SetPressureRatio.
	PressureRatio float64

	// Pressure supplies memory readings for Trim. Defaults to
	// pressure.System. Inject a fake in tests.
	Pressure pressure.ReaderFunc

	// Logger receives operational messages (trim events, page free
	// failures). If nil, a no-op logger is used.
	Logger *slog.Logger
}

// Pool is a cache of pinned page-size buffers for element type E. It
// is safe for concurrent use without external locking: the cache is a
// lock-free MPMC queue and the closed flag transitions atomically.
type Pool[E memzero.Scalar] struct {
	cache     *xsync.MPMCQueueOf[*Lease[E]]
	closed    atomic.Bool
	ratio     atomic.Float64
	reader    pressure.ReaderFunc
	logger    *slog.Logger
	unsubbed  func()
	pageElems int
}

// New creates a pool and subscribes it to GC-driven memory pressure
// notifications. The caller should Close the pool when done with it;
// leases already handed out remain valid after Close and free their
// pages on release.
func New[E memzero.Scalar](cfg Config) *Pool[E] {
	capacity := cfg.CacheCapacity
	if capacity <= 0 {
		capacity = 256
	}
	ratio := cfg.PressureRatio
	if ratio <= 0 || ratio > 1 {
		ratio = 0.90
	}
	reader := cfg.Pressure
	if reader == nil {
		reader = pressure.System
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	p := &Pool[E]{
		cache:     xsync.NewMPMCQueueOf[*Lease[E]](capacity),
		reader:    reader,
		logger:    logger,
		pageElems: PageSize / pinned.Width[E](),
	}
	p.ratio.Store(ratio)

	// The subscription must not keep the pool reachable: holding
	// p.Trim directly would root the pool in the subscriber registry
	// forever. Through a weak pointer, an abandoned pool gets
	// collected and its subscription unregisters itself on the next
	// GC cycle. (Pages cached by an abandoned pool are wiped but
	// their mappings leak; Close the pool to release them promptly.)
	ref := weak.Make(p)
	p.unsubbed = pressure.Subscribe(func() bool {
		pool := ref.Value()
		if pool == nil {
			return false
		}
		return pool.Trim()
	})
	return p
}

// Rent returns a lease of at least size elements:
//
//   - size 0: the shared zero-size lease, allocation free.
//   - size -1, or any size that fits one page: a full-page lease,
//     reused from the cache when possible. The capacity is the whole
//     page regardless of the requested size.
//   - size beyond one page: a freshly pinned, exact-size lease that
//     is never cached.
//
// Sizes below -1 fail with ErrInvalidSize; a closed pool fails with
// ErrClosed.
func (p *Pool[E]) Rent(size int) (*Lease[E], error) {
	if size < -1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSize, size)
	}
	if p.closed.Load() {
		return nil, ErrClosed
	}
	if size == 0 {
		return Empty[E](), nil
	}

	if size > p.pageElems {
		width := pinned.Width[E]()
		if size > math.MaxInt/width {
			// The byte count would wrap and silently allocate a
			// region far smaller than requested.
			return nil, fmt.Errorf("%w: %d elements of width %d overflow", ErrInvalidSize, size, width)
		}
		region, err := pinned.Alloc(size * width)
		if err != nil {
			return nil, fmt.Errorf("secpool: renting %d elements: %w", size, err)
		}
		return &Lease[E]{data: pinned.View[E](region), region: region}, nil
	}

	if lease, ok := p.cache.TryDequeue(); ok {
		lease.released.Store(false)
		return lease, nil
	}
	region, err := pinned.Alloc(PageSize)
	if err != nil {
		return nil, fmt.Errorf("secpool: renting page: %w", err)
	}
	return &Lease[E]{
		data:   pinned.View[E](region),
		region: region,
		origin: weak.Make(p),
		pooled: true,
	}, nil
}

// Release wipes and returns a lease. Equivalent to lease.Release; the
// lease routes itself to its origin pool, so releasing through any
// pool value is safe.
func (p *Pool[E]) Release(lease *Lease[E]) {
	lease.Release()
}

// recycle re-caches a released page lease. Reports false when the
// lease must be freed instead: the pool is closed or the cache is
// full. Racing a concurrent Trim is benign — the page either survives
// in the cache or is freed by the trim, and it is wiped either way.
func (p *Pool[E]) recycle(lease *Lease[E]) bool {
	if p.closed.Load() {
		return false
	}
	return p.cache.TryEnqueue(lease)
}

// Trim is the pool's memory pressure callback, invoked once per GC
// cycle. When the current load reaches the high-load threshold scaled
// by the pressure ratio, the entire cache is discarded. Always
// returns true so the pressure subscription stays active.
func (p *Pool[E]) Trim() bool {
	info := p.reader()
	if info.HighThreshold == 0 {
		return true
	}
	if float64(info.Load) < float64(info.HighThreshold)*p.ratio.Load() {
		return true
	}
	if freed := p.drain(); freed > 0 {
		p.logger.Debug("secpool: cache discarded under memory pressure",
			"pages", freed,
			"load", info.Load,
			"high_threshold", info.HighThreshold)
	}
	return true
}

// SetPressureRatio adjusts the fraction of the high-load threshold at
// which Trim discards the cache. Values outside (0, 1] are ignored.
func (p *Pool[E]) SetPressureRatio(ratio float64) {
	if ratio > 0 && ratio <= 1 {
		p.ratio.Store(ratio)
	}
}

// Close marks the pool closed and discards the cache. The first call
// performs the teardown; later calls are no-ops. Leases already
// rented are unaffected, but releasing them now frees their pages
// rather than re-caching them.
func (p *Pool[E]) Close() error {
	if !p.closed.CompareAndSwap(false, true) {
		return nil
	}
	p.unsubbed()
	freed := p.drain()
	p.logger.Debug("secpool: pool closed", "cached_pages", freed)
	return nil
}

// drain empties the cache, freeing every cached page, and returns the
// number freed. Pages enqueued concurrently with a drain may or may
// not be freed by it; either way they are intact and wiped.
func (p *Pool[E]) drain() int {
	freed := 0
	for {
		lease, ok := p.cache.TryDequeue()
		if !ok {
			return freed
		}
		if err := lease.region.Free(); err != nil {
			p.logger.Warn("secpool: freeing cached page", "error", err)
		}
		freed++
	}
}

// shared holds the process-wide pool per element type.
var shared = xsync.NewMapOf[reflect.Type, any]()

// Shared returns the process-wide pool for element type E, creating
// it with default configuration on first use.
func Shared[E memzero.Scalar]() *Pool[E] {
	key := reflect.TypeOf(*new(E))
	if v, ok := shared.Load(key); ok {
		return v.(*Pool[E])
	}
	pool := New[E](Config{})
	v, loaded := shared.LoadOrStore(key, pool)
	if loaded {
		// Another goroutine won the race; discard the extra pool.
		_ = pool.Close()
	}
	return v.(*Pool[E])
}
