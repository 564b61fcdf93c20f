package poll

import (
	"runtime"
	"time"
)

// Default backoff stages.
const (
	DefaultSpins    = 64
	DefaultYields   = 16
	DefaultMaxSleep = time.Millisecond
	minSleep        = time.Microsecond
)

// Backoff paces a retry loop: the first Spins calls to Pause return
// immediately, the next Yields calls yield the processor, and every later
// call sleeps, doubling from a microsecond up to MaxSleep.
//
// A Backoff belongs to one goroutine. Call Reset after progress.
type Backoff struct {
	Spins    int
	Yields   int
	MaxSleep time.Duration

	n     int
	sleep time.Duration
}

// NewBackoff returns a Backoff with the default stages.
func NewBackoff() *Backoff {
	return &Backoff{
		Spins:    DefaultSpins,
		Yields:   DefaultYields,
		MaxSleep: DefaultMaxSleep,
	}
}

// Pause waits for the current stage and moves to the next.
func (b *Backoff) Pause() {
	b.n++
	switch {
	case b.n <= b.Spins:
		return
	case b.n <= b.Spins+b.Yields:
		runtime.Gosched()
		return
	}

	switch {
	case b.sleep == 0:
		b.sleep = minSleep
	case b.sleep < b.MaxSleep:
		b.sleep = min(2*b.sleep, b.MaxSleep)
	}
	time.Sleep(min(b.sleep, max(b.MaxSleep, minSleep)))
}

// Sleeping reports whether the next Pause will sleep.
func (b *Backoff) Sleeping() bool {
	return b.n >= b.Spins+b.Yields
}

// Reset returns to the spin stage.
func (b *Backoff) Reset() {
	b.n = 0
	b.sleep = 0
}
