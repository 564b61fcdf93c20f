package ring

import (
	"fmt"
	"iter"
)

// OccupiedSlices returns the occupied slots [read, write), oldest first.
func (r *Ring[T]) OccupiedSlices() ([]T, []T) {
	return r.UnsafeSlices(r.ReadIndex(), r.WriteIndex())
}

// OccupiedSlicesMut opens a read phase. See Consumer.
func (r *Ring[T]) OccupiedSlicesMut() ([]T, []T) {
	r.mustNotRead()
	r.reading = true
	return r.OccupiedSlices()
}

// AdvanceReadIndex releases n consumed slots and closes the read phase.
func (r *Ring[T]) AdvanceReadIndex(n int) {
	if occupied := r.Len(); n < 0 || n > occupied {
		panic(fmt.Errorf("%w: read advance %d, occupied %d", ErrAdvanceOverflow, n, occupied))
	}
	r.commitRead(n)
	r.reading = false
}

// commitRead zeroes the first n occupied slots before handing them back to
// the producer.
func (r *Ring[T]) commitRead(n int) {
	if n == 0 {
		return
	}
	left, right := r.OccupiedSlices()
	k := min(n, len(left))
	clear(left[:k])
	clear(right[:n-k])
	r.idx.setRead((r.ReadIndex() + n) % r.modulus())
}

func (r *Ring[T]) mustNotRead() {
	if r.reading {
		panic(fmt.Errorf("%w: consumer", ErrPhaseOpen))
	}
}

// TryPop removes the oldest item. ok is false when the ring is empty.
func (r *Ring[T]) TryPop() (item T, ok bool) {
	r.mustNotRead()
	left, _ := r.OccupiedSlices()
	if len(left) == 0 {
		return item, false
	}
	item = left[0]
	r.commitRead(1)
	return item, true
}

// PopIter yields and removes items. See Consumer.
//
// The read phase stays open for the whole loop, so the loop body must not
// call other consumer methods on this ring.
func (r *Ring[T]) PopIter() iter.Seq[T] {
	return func(yield func(T) bool) {
		r.mustNotRead()
		r.reading = true

		n := 0
		defer func() {
			r.commitRead(n)
			r.reading = false
		}()

		left, right := r.OccupiedSlices()
		for _, part := range [2][]T{left, right} {
			for _, item := range part {
				n++
				if !yield(item) {
					return
				}
			}
		}
	}
}

// PopSlice moves up to len(dst) items into dst and returns the count.
func (r *Ring[T]) PopSlice(dst []T) int {
	r.mustNotRead()
	left, right := r.OccupiedSlices()
	n := copy(dst, left)
	if n == len(left) {
		n += copy(dst[n:], right)
	}
	r.commitRead(n)
	return n
}

// Peek returns the oldest item without removing it.
func (r *Ring[T]) Peek() (item T, ok bool) {
	left, _ := r.OccupiedSlices()
	if len(left) == 0 {
		return item, false
	}
	return left[0], true
}

// Iter yields the items occupied when iteration starts, without removing them.
func (r *Ring[T]) Iter() iter.Seq[T] {
	return func(yield func(T) bool) {
		left, right := r.OccupiedSlices()
		for _, part := range [2][]T{left, right} {
			for _, item := range part {
				if !yield(item) {
					return
				}
			}
		}
	}
}

// Skip discards up to n items, running the drop function on each.
func (r *Ring[T]) Skip(n int) int {
	r.mustNotRead()
	n = max(0, min(n, r.Len()))
	left, right := r.OccupiedSlices()
	k := min(n, len(left))
	r.dropAll(left[:k])
	r.dropAll(right[:n-k])
	r.commitRead(n)
	return n
}

// Clear discards every item, running the drop function on each.
func (r *Ring[T]) Clear() int {
	return r.Skip(r.Len())
}
