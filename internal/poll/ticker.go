package poll

import (
	"sync/atomic"
	"time"
	_ "unsafe" // Required for go:linkname
)

// nanotime returns the current monotonic time in nanoseconds without
// building a time.Time.
//
//go:linkname nanotime runtime.nanotime
func nanotime() int64

// Ticker reports when an interval has elapsed. It is polled, never fires on
// its own, and does not touch the runtime timer heap.
type Ticker struct {
	interval int64 // nanoseconds
	every    uint64
	calls    atomic.Uint64
	lastTick atomic.Int64
}

// NewTicker returns a Ticker that reads the clock on every Tick call.
func NewTicker(interval time.Duration) *Ticker {
	return NewBatchTicker(interval, 1)
}

// NewBatchTicker returns a Ticker that reads the clock only on every Nth
// Tick call. A ring loop moving millions of items can afford a tick check
// per item this way.
func NewBatchTicker(interval time.Duration, every int) *Ticker {
	if every < 1 {
		every = 1
	}
	t := &Ticker{
		interval: int64(interval),
		every:    uint64(every),
	}
	t.lastTick.Store(nanotime())
	return t
}

// Tick returns true if the interval has elapsed since the last tick.
//
// The CAS keeps one interval from firing twice when several goroutines poll.
func (t *Ticker) Tick() bool {
	if t.every > 1 && t.calls.Add(1)%t.every != 0 {
		return false
	}

	now := nanotime()
	last := t.lastTick.Load()
	if now-last >= t.interval {
		return t.lastTick.CompareAndSwap(last, now)
	}
	return false
}

// Reset starts a new interval from now.
func (t *Ticker) Reset() {
	t.calls.Store(0)
	t.lastTick.Store(nanotime())
}

// Interval returns the ticker's interval.
func (t *Ticker) Interval() time.Duration {
	return time.Duration(t.interval)
}
