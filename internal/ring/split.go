package ring

import (
	"fmt"
	"iter"
	"sync/atomic"
)

// Split hands the ring to a producer and a consumer that share ownership of
// it. The ring is released when both have been closed, whichever goes last.
// The caller must not use r directly afterwards.
//
// On a Shared ring the two handles may live on different goroutines.
func (r *Ring[T]) Split() (*Prod[T], *Cons[T]) {
	refs := new(atomic.Int32)
	refs.Store(2)
	return r.split(refs)
}

// SplitRef hands out a producer and a consumer that borrow r. Closing them
// clears the held flags but never releases the ring; the owner calls
// Release when done.
func (r *Ring[T]) SplitRef() (*Prod[T], *Cons[T]) {
	return r.split(nil)
}

func (r *Ring[T]) split(refs *atomic.Int32) (*Prod[T], *Cons[T]) {
	if r.ReadIsHeld() || r.WriteIsHeld() {
		panic(ErrAlreadySplit)
	}

	// A Local ring must not run both sides at once, so the handles share a
	// guard. Shared handles only exclude concurrent use of the same side.
	prodGuard := new(atomic.Uint32)
	consGuard := prodGuard
	if r.strategy == Shared {
		consGuard = new(atomic.Uint32)
	}

	r.HoldWrite(true)
	r.HoldRead(true)
	return &Prod[T]{handle[T]{rb: r, refs: refs, guard: prodGuard, side: "producer"}},
		&Cons[T]{handle[T]{rb: r, refs: refs, guard: consGuard, side: "consumer"}}
}

// handle is the state shared by Prod and Cons.
type handle[T any] struct {
	rb    *Ring[T]
	refs  *atomic.Int32 // nil for SplitRef handles
	guard *atomic.Uint32
	side  string
}

func (h *handle[T]) ring() *Ring[T] {
	if h.rb == nil {
		panic(fmt.Errorf("%w: %s", ErrHandleClosed, h.side))
	}
	return h.rb
}

// enter claims the guard for one call; the result must be passed to exit.
func (h *handle[T]) enter() *Ring[T] {
	rb := h.ring()
	if !h.guard.CompareAndSwap(0, 1) {
		panic(fmt.Errorf("%w: %s", ErrConcurrentUse, h.side))
	}
	return rb
}

func (h *handle[T]) exit() { h.guard.Store(0) }

// release drops this handle's reference and tears the ring down if it was
// the last one.
func (h *handle[T]) release() {
	rb := h.rb
	h.rb = nil
	if h.refs != nil && h.refs.Add(-1) == 0 {
		rb.Release()
	}
}

func (h *handle[T]) Capacity() int                          { return h.ring().Capacity() }
func (h *handle[T]) ReadIndex() int                         { return h.ring().ReadIndex() }
func (h *handle[T]) WriteIndex() int                        { return h.ring().WriteIndex() }
func (h *handle[T]) UnsafeSlices(start, end int) ([]T, []T) { return h.ring().UnsafeSlices(start, end) }
func (h *handle[T]) Len() int                               { return h.ring().Len() }
func (h *handle[T]) Remaining() int                         { return h.ring().Remaining() }
func (h *handle[T]) IsEmpty() bool                          { return h.ring().IsEmpty() }
func (h *handle[T]) IsFull() bool                           { return h.ring().IsFull() }
func (h *handle[T]) ReadIsHeld() bool                       { return h.ring().ReadIsHeld() }
func (h *handle[T]) WriteIsHeld() bool                      { return h.ring().WriteIsHeld() }

// Prod is the producer half of a split ring.
type Prod[T any] struct {
	handle[T]
}

// IsClosed reports whether the consumer has been closed.
func (p *Prod[T]) IsClosed() bool { return !p.ring().ReadIsHeld() }

// Close clears the producer's held flag and drops its reference. The
// consumer observes this through IsClosed. Calling Close again is a no-op.
func (p *Prod[T]) Close() {
	if p.rb == nil {
		return
	}
	p.rb.HoldWrite(false)
	p.release()
}

// VacantSlices returns the vacant slots. See Producer.
func (p *Prod[T]) VacantSlices() ([]T, []T) { return p.ring().VacantSlices() }

// VacantSlicesMut opens a write phase. See Producer.
func (p *Prod[T]) VacantSlicesMut() ([]T, []T) {
	rb := p.enter()
	defer p.exit()
	return rb.VacantSlicesMut()
}

// AdvanceWriteIndex publishes n filled slots. See Producer.
func (p *Prod[T]) AdvanceWriteIndex(n int) {
	rb := p.enter()
	defer p.exit()
	rb.AdvanceWriteIndex(n)
}

// TryPush appends item, or returns false when the ring is full.
func (p *Prod[T]) TryPush(item T) bool {
	rb := p.enter()
	defer p.exit()
	return rb.TryPush(item)
}

// PushIter appends items pulled from next. next must not touch the ring.
func (p *Prod[T]) PushIter(next func() (T, bool)) int {
	rb := p.enter()
	defer p.exit()
	return rb.PushIter(next)
}

// PushSlice copies as many leading items as fit and returns the count.
func (p *Prod[T]) PushSlice(items []T) int {
	rb := p.enter()
	defer p.exit()
	return rb.PushSlice(items)
}

// Cons is the consumer half of a split ring.
type Cons[T any] struct {
	handle[T]
}

// IsClosed reports whether the producer has been closed. Together with
// IsEmpty it means no more items will ever arrive.
func (c *Cons[T]) IsClosed() bool { return !c.ring().WriteIsHeld() }

// Close clears the consumer's held flag and drops its reference. Calling
// Close again is a no-op.
func (c *Cons[T]) Close() {
	if c.rb == nil {
		return
	}
	c.rb.HoldRead(false)
	c.release()
}

// OccupiedSlices returns the occupied slots. See Consumer.
func (c *Cons[T]) OccupiedSlices() ([]T, []T) { return c.ring().OccupiedSlices() }

// OccupiedSlicesMut opens a read phase. See Consumer.
func (c *Cons[T]) OccupiedSlicesMut() ([]T, []T) {
	rb := c.enter()
	defer c.exit()
	return rb.OccupiedSlicesMut()
}

// AdvanceReadIndex releases n consumed slots. See Consumer.
func (c *Cons[T]) AdvanceReadIndex(n int) {
	rb := c.enter()
	defer c.exit()
	rb.AdvanceReadIndex(n)
}

// TryPop removes the oldest item.
func (c *Cons[T]) TryPop() (T, bool) {
	rb := c.enter()
	defer c.exit()
	return rb.TryPop()
}

// PopIter yields and removes items. The guard is not held across the loop
// body; the ring's read phase still rejects nested consumer calls.
func (c *Cons[T]) PopIter() iter.Seq[T] { return c.ring().PopIter() }

// PopSlice moves up to len(dst) items into dst.
func (c *Cons[T]) PopSlice(dst []T) int {
	rb := c.enter()
	defer c.exit()
	return rb.PopSlice(dst)
}

// Peek returns the oldest item without removing it.
func (c *Cons[T]) Peek() (T, bool) { return c.ring().Peek() }

// Iter yields the occupied items without removing them.
func (c *Cons[T]) Iter() iter.Seq[T] { return c.ring().Iter() }

// Skip discards up to n items.
func (c *Cons[T]) Skip(n int) int {
	rb := c.enter()
	defer c.exit()
	return rb.Skip(n)
}

// Clear discards every item.
func (c *Cons[T]) Clear() int {
	rb := c.enter()
	defer c.exit()
	return rb.Clear()
}
