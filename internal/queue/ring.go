package queue

import (
	"sync/atomic"

	"github.com/randomizedcoder/spscring/internal/ring"
	"github.com/randomizedcoder/spscring/internal/storage"
)

var _ Queue[any] = (*RingQueue[any])(nil)

// RingQueue is a Queue over a split ring.
type RingQueue[T any] struct {
	prod     *ring.Prod[T]
	cons     *ring.Cons[T]
	released atomic.Bool
}

// NewRing creates a RingQueue of exactly size slots with the given strategy.
// Use ring.Shared when Push and Pop run on different goroutines.
func NewRing[T any](size int, strategy ring.Strategy, opts ...ring.Option[T]) *RingQueue[T] {
	s := storage.NewHeap[T](size)

	var r *ring.Ring[T]
	if strategy == ring.Shared {
		r = ring.NewShared[T](s, opts...)
	} else {
		r = ring.NewLocal[T](s, opts...)
	}

	prod, cons := r.Split()
	return &RingQueue[T]{prod: prod, cons: cons}
}

// Push adds an item to the queue. It returns false if the queue is full.
func (q *RingQueue[T]) Push(v T) bool {
	return q.prod.TryPush(v)
}

// Pop removes and returns an item from the queue.
// Returns false if the queue is empty.
func (q *RingQueue[T]) Pop() (T, bool) {
	return q.cons.TryPop()
}

// Len returns the current number of items in the queue, or 0 after Release.
func (q *RingQueue[T]) Len() int {
	if q.released.Load() {
		return 0
	}
	return q.cons.Len()
}

// Cap returns the capacity of the queue, or 0 after Release.
func (q *RingQueue[T]) Cap() int {
	if q.released.Load() {
		return 0
	}
	return q.cons.Capacity()
}

// Close closes the producer handle. Safe to call multiple times.
// Push after Close panics with ring.ErrHandleClosed.
func (q *RingQueue[T]) Close() {
	q.prod.Close()
}

// Drained reports whether the producer closed and every item was popped.
// It is true after Release.
func (q *RingQueue[T]) Drained() bool {
	if q.released.Load() {
		return true
	}
	return q.cons.IsClosed() && q.cons.IsEmpty()
}

// Release closes the consumer handle after the producer, dropping whatever
// is still queued. Afterwards Len and Cap return 0 and Drained returns true;
// Push, Pop and the handles panic with ring.ErrHandleClosed. Calling Release
// again is a no-op.
//
// Release must not run concurrently with any other method.
func (q *RingQueue[T]) Release() {
	if !q.released.CompareAndSwap(false, true) {
		return
	}
	q.prod.Close()
	q.cons.Close()
}

// Producer returns the producer handle for slice and two-phase access.
func (q *RingQueue[T]) Producer() *ring.Prod[T] {
	return q.prod
}

// Consumer returns the consumer handle for slice and two-phase access.
func (q *RingQueue[T]) Consumer() *ring.Cons[T] {
	return q.cons
}
