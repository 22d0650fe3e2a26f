package dynarray

import (
	"sync/atomic"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// Tracker counts buffer acquisitions and releases made by the arrays it is
// attached to. It does not allocate anything itself; buffers always come
// from the Go runtime.
type Tracker struct {
	allocs    atomic.Int64
	releases  atomic.Int64
	liveBytes atomic.Int64
	peakBytes atomic.Int64

	limit  int64
	logger log.Logger
}

type TrackerOption func(*Tracker)

// WithLimit refuses any allocation that would push live bytes above limit.
// A limit <= 0 disables the check.
func WithLimit(limit int64) TrackerOption {
	return func(t *Tracker) {
		t.limit = limit
	}
}

// WithLogger logs every acquisition and release at debug level.
func WithLogger(logger log.Logger) TrackerOption {
	return func(t *Tracker) {
		if logger != nil {
			t.logger = logger
		}
	}
}

func NewTracker(opts ...TrackerOption) *Tracker {
	t := &Tracker{logger: log.NewNopLogger()}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Tracker) Allocations() int64 { return t.allocs.Load() }
func (t *Tracker) Releases() int64    { return t.releases.Load() }
func (t *Tracker) LiveBytes() int64   { return t.liveBytes.Load() }
func (t *Tracker) PeakBytes() int64   { return t.peakBytes.Load() }
func (t *Tracker) Limit() int64       { return t.limit }

// Live returns the number of buffers acquired and not yet released.
func (t *Tracker) Live() int64 {
	return t.allocs.Load() - t.releases.Load()
}

// Reset zeroes all counters. The limit is kept.
func (t *Tracker) Reset() {
	t.allocs.Store(0)
	t.releases.Store(0)
	t.liveBytes.Store(0)
	t.peakBytes.Store(0)
}

// reserve claims bytes against the limit before the buffer is made. The
// check and the claim are one CAS, so concurrent reservations never see
// each other's bytes unless both are granted.
func (t *Tracker) reserve(slots int, bytes int64) error {
	if t == nil {
		return nil
	}
	for {
		live := t.liveBytes.Load()
		if t.limit > 0 && live+bytes > t.limit {
			level.Debug(t.logger).Log("msg", "allocation refused", "slots", slots, "bytes", bytes, "live_bytes", live, "limit", t.limit)
			return ErrLimitExceeded
		}
		if t.liveBytes.CompareAndSwap(live, live+bytes) {
			return nil
		}
	}
}

// commit records a reserved buffer that now exists.
func (t *Tracker) commit(slots int, bytes int64) {
	if t == nil {
		return
	}
	t.allocs.Add(1)
	live := t.liveBytes.Load()
	for {
		peak := t.peakBytes.Load()
		if live <= peak || t.peakBytes.CompareAndSwap(peak, live) {
			break
		}
	}
	level.Debug(t.logger).Log("msg", "buffer acquired", "slots", slots, "bytes", bytes, "live_bytes", live)
}

// refund drops a reservation whose buffer never materialized.
func (t *Tracker) refund(bytes int64) {
	if t == nil {
		return
	}
	t.liveBytes.Add(-bytes)
}

func (t *Tracker) release(slots int, bytes int64) {
	if t == nil {
		return
	}
	t.releases.Add(1)
	live := t.liveBytes.Add(-bytes)
	level.Debug(t.logger).Log("msg", "buffer released", "slots", slots, "bytes", bytes, "live_bytes", live)
}
