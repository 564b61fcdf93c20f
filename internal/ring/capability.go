package ring

import "iter"

// Observer derives the ring's state from its indices.
type Observer[T any] interface {
	// Capacity returns the number of slots. It is never zero.
	Capacity() int

	// ReadIndex and WriteIndex return raw positions in [0, 2*Capacity()).
	ReadIndex() int
	WriteIndex() int

	// UnsafeSlices projects the position range [start, end) onto storage.
	// The second slice is empty unless the range wraps.
	//
	// The caller decides what the slots mean: they are initialized only
	// inside [ReadIndex(), WriteIndex()).
	UnsafeSlices(start, end int) ([]T, []T)

	Len() int
	Remaining() int
	IsEmpty() bool
	IsFull() bool

	ReadIsHeld() bool
	WriteIsHeld() bool
}

// Producer has the exclusive right to fill vacant slots and advance the write index.
type Producer[T any] interface {
	Observer[T]

	// VacantSlices returns the vacant slots, oldest first. Do not write into them.
	VacantSlices() ([]T, []T)

	// VacantSlicesMut opens a write phase over the vacant slots. Fill the
	// first slice before the second, then call AdvanceWriteIndex with the
	// number of slots filled (0 is allowed). No other mutating producer call
	// is allowed in between.
	VacantSlicesMut() ([]T, []T)

	// AdvanceWriteIndex publishes the first n vacant slots and closes the
	// write phase. It panics if n exceeds Remaining().
	AdvanceWriteIndex(n int)

	// TryPush appends item. It returns false when the ring is full; the item
	// then stays with the caller.
	TryPush(item T) bool

	// PushIter appends items pulled from next until the ring is full or next
	// reports false. next is never called when no slot is vacant, so what
	// it has not yielded stays in the source. Returns the count appended.
	PushIter(next func() (T, bool)) int

	// PushSlice copies the leading items that fit and returns their count.
	PushSlice(items []T) int

	// IsClosed reports whether the consumer is gone.
	IsClosed() bool

	// Close releases the producer side.
	Close()
}

// Consumer has the exclusive right to take occupied slots and advance the read index.
type Consumer[T any] interface {
	Observer[T]

	// OccupiedSlices returns the occupied slots, oldest first. Do not modify them.
	OccupiedSlices() ([]T, []T)

	// OccupiedSlicesMut opens a read phase over the occupied slots; it must
	// be followed by AdvanceReadIndex.
	OccupiedSlicesMut() ([]T, []T)

	// AdvanceReadIndex releases the first n occupied slots and closes the read
	// phase. The drop function is not run; released slots are zeroed.
	// It panics if n exceeds Len().
	AdvanceReadIndex(n int)

	// TryPop removes the oldest item. ok is false when the ring is empty.
	TryPop() (item T, ok bool)

	// PopIter yields and removes items in FIFO order. Items yielded before a
	// break are removed, the rest stay.
	PopIter() iter.Seq[T]

	// PopSlice moves up to len(dst) items into dst and returns the count.
	PopSlice(dst []T) int

	// Peek returns the oldest item without removing it.
	Peek() (item T, ok bool)

	// Iter yields the occupied items without removing them.
	Iter() iter.Seq[T]

	// Skip discards up to n items, running the drop function on each.
	Skip(n int) int

	// Clear discards every item, running the drop function on each.
	Clear() int

	// IsClosed reports whether the producer is gone.
	IsClosed() bool

	// Close releases the consumer side.
	Close()
}

// RingBuffer is the full capability set owned by the buffer itself.
type RingBuffer[T any] interface {
	Observer[T]

	VacantSlices() ([]T, []T)
	VacantSlicesMut() ([]T, []T)
	AdvanceWriteIndex(n int)
	TryPush(item T) bool
	PushIter(next func() (T, bool)) int
	PushSlice(items []T) int

	OccupiedSlices() ([]T, []T)
	OccupiedSlicesMut() ([]T, []T)
	AdvanceReadIndex(n int)
	TryPop() (T, bool)
	PopIter() iter.Seq[T]
	PopSlice(dst []T) int
	Peek() (T, bool)
	Iter() iter.Seq[T]
	Skip(n int) int
	Clear() int

	// HoldRead and HoldWrite toggle the held flags. They are called once when
	// a handle is created and once when it is closed, never from push or pop.
	HoldRead(flag bool)
	HoldWrite(flag bool)

	// Release drops every remaining item and retires the ring.
	Release()
}

// Ensure compile-time interface compliance.
var (
	_ RingBuffer[any] = (*Ring[any])(nil)
	_ Producer[any]   = (*Prod[any])(nil)
	_ Consumer[any]   = (*Cons[any])(nil)
)
