// Package ring provides a generic single-producer single-consumer ring buffer
// over a fixed-capacity storage region.
//
// The buffer is split into capabilities:
//   - Observer: capacity, indices, derived length and the slice projection
//   - Producer: writes into the vacant region and advances the write index
//   - Consumer: reads from the occupied region and advances the read index
//   - RingBuffer: all of the above plus the held flags and teardown
//
// Two index strategies are available:
//   - Local (NewLocal): plain fields, no synchronization
//   - Shared (NewShared): cache-line padded atomics, safe across two goroutines
//
// # Index domain
//
// Positions live in [0, 2*capacity). The ring is empty when read == write and
// full when write is exactly capacity positions ahead of read. The slot for
// position p is p % capacity.
//
// # Safety (IMPORTANT)
//
// A ring is SPSC. Exactly ONE goroutine may drive the producer side and
// exactly ONE goroutine may drive the consumer side.
//
// A Local ring must never be driven from two goroutines at the same time,
// not even one per side. Handles split from a Local ring share a guard that
// panics when this happens. Handles split from a Shared ring each carry their
// own guard that panics on concurrent calls to the same side.
//
// The ring never blocks. A full ring rejects pushes and an empty ring yields
// nothing; callers poll and decide whether to retry, back off or give up.
package ring
