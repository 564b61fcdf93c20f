// Package poll provides the waiting side of a poll-only ring.
//
// Rings never block or park. Callers that need to wait for room, for items
// or for the peer to close loop on a condition, and this package keeps
// those loops cheap:
//   - Flag: atomic stop signal checked with one load
//   - Ticker: interval check on the runtime monotonic clock
//   - Backoff: spin, then yield, then sleep with a capped doubling delay
//   - Wait: loop on a condition under a context and a Backoff
package poll

// Stopper signals a polling loop to exit.
//
// Implementations must be safe for concurrent use:
//   - Multiple goroutines may call Done() concurrently
//   - Stop() may be called concurrently with Done()
type Stopper interface {
	// Done returns true once Stop has been called.
	Done() bool

	// Stop triggers the signal. Safe to call multiple times.
	Stop()
}
