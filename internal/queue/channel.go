package queue

import "sync/atomic"

var _ Queue[any] = (*ChannelQueue[any])(nil)

// ChannelQueue wraps a buffered channel as a Queue.
//
// Each Push and Pop is a select with a default case.
type ChannelQueue[T any] struct {
	ch     chan T
	closed atomic.Bool
}

// NewChannel creates a ChannelQueue with the specified buffer size.
func NewChannel[T any](size int) *ChannelQueue[T] {
	return &ChannelQueue[T]{
		ch: make(chan T, size),
	}
}

// Push adds an item to the queue. It returns false if the queue is full.
// Push after Close panics, as a send on a closed channel does.
func (q *ChannelQueue[T]) Push(v T) bool {
	select {
	case q.ch <- v:
		return true
	default:
		return false
	}
}

// Pop removes and returns an item from the queue.
// Returns false if the queue is empty.
func (q *ChannelQueue[T]) Pop() (T, bool) {
	select {
	case v, ok := <-q.ch:
		return v, ok
	default:
		var zero T
		return zero, false
	}
}

// Len returns the current number of items in the queue.
func (q *ChannelQueue[T]) Len() int {
	return len(q.ch)
}

// Cap returns the capacity of the queue.
func (q *ChannelQueue[T]) Cap() int {
	return cap(q.ch)
}

// Close closes the channel. Safe to call multiple times.
func (q *ChannelQueue[T]) Close() {
	if q.closed.CompareAndSwap(false, true) {
		close(q.ch)
	}
}

// Drained reports whether the channel is closed and empty.
func (q *ChannelQueue[T]) Drained() bool {
	return q.closed.Load() && len(q.ch) == 0
}
