// Package queue puts rings and channels behind one item-at-a-time contract.
//
// The benchmarks and commands compare a buffered channel against Local and
// Shared rings through Queue, so the only difference measured is the
// transport.
//
// # RingQueue Safety (IMPORTANT)
//
// RingQueue is Single-Producer Single-Consumer. Exactly one goroutine may call
// Push and exactly one may call Pop; they may be the same goroutine. A Shared
// RingQueue panics with ring.ErrConcurrentUse when two goroutines push (or
// pop) at once. A Local RingQueue must stay on one goroutine.
package queue

// Queue is a non-blocking single-producer single-consumer queue.
type Queue[T any] interface {
	// Push adds an item to the queue.
	// Returns false if the queue is full.
	Push(T) bool

	// Pop removes and returns an item from the queue.
	// Returns false if the queue is empty.
	Pop() (T, bool)

	// Len returns the number of queued items. Another goroutine may change
	// it before the caller acts on it.
	Len() int

	// Cap returns the capacity of the queue.
	Cap() int

	// Close marks the producer side done. Items already queued are still
	// delivered by Pop.
	Close()

	// Drained reports whether Close was called and every item was popped.
	Drained() bool
}
