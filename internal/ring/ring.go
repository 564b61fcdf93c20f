package ring

import (
	"fmt"

	"github.com/randomizedcoder/spscring/internal/storage"
)

// Ring is an SPSC ring buffer over a storage region.
//
// A Ring can be driven directly from one goroutine, or split into a Prod and
// a Cons with Split or SplitRef.
type Ring[T any] struct {
	storage  storage.Storage[T]
	idx      indices
	strategy Strategy
	opts     options[T]

	// writing and reading mark an open *SlicesMut phase. Each is touched only
	// by its own side.
	writing bool
	reading bool

	released bool
}

// NewLocal creates an empty ring with the Local strategy.
func NewLocal[T any](s storage.Storage[T], opts ...Option[T]) *Ring[T] {
	return LocalFromRawParts(s, 0, 0, opts...)
}

// NewShared creates an empty ring with the Shared strategy.
func NewShared[T any](s storage.Storage[T], opts ...Option[T]) *Ring[T] {
	return SharedFromRawParts(s, 0, 0, opts...)
}

// LocalFromRawParts creates a Local ring from storage and positions.
//
// The caller asserts that the slots in [read, write) hold live items and
// every other slot holds the zero value. It panics if the positions are
// outside [0, 2*s.Len()) or further apart than s.Len().
func LocalFromRawParts[T any](s storage.Storage[T], read, write int, opts ...Option[T]) *Ring[T] {
	checkRawParts(s, read, write)
	return &Ring[T]{
		storage:  s,
		idx:      newLocalIndices(read, write),
		strategy: Local,
		opts:     applyOptions(opts...),
	}
}

// SharedFromRawParts is LocalFromRawParts for the Shared strategy.
func SharedFromRawParts[T any](s storage.Storage[T], read, write int, opts ...Option[T]) *Ring[T] {
	checkRawParts(s, read, write)
	return &Ring[T]{
		storage:  s,
		idx:      newSharedIndices(read, write),
		strategy: Shared,
		opts:     applyOptions(opts...),
	}
}

func checkRawParts[T any](s storage.Storage[T], read, write int) {
	capacity := s.Len()
	modulus := 2 * capacity
	if read < 0 || read >= modulus || write < 0 || write >= modulus {
		panic(fmt.Errorf("%w: read=%d write=%d capacity=%d", ErrInvalidIndex, read, write, capacity))
	}
	if (write-read+modulus)%modulus > capacity {
		panic(fmt.Errorf("%w: read=%d write=%d exceed capacity=%d", ErrInvalidIndex, read, write, capacity))
	}
}

// IntoRawParts retires the ring and returns its storage and positions.
//
// The live items in [read, write) become the caller's responsibility; the
// drop function is not run. The ring must not be used afterwards.
func (r *Ring[T]) IntoRawParts() (s storage.Storage[T], read, write int) {
	r.released = true
	return r.storage, r.ReadIndex(), r.WriteIndex()
}

// Strategy returns the index strategy the ring was built with.
func (r *Ring[T]) Strategy() Strategy { return r.strategy }

// Name returns the label set with WithName.
func (r *Ring[T]) Name() string { return r.opts.name }

// HoldRead sets the consumer's held flag.
func (r *Ring[T]) HoldRead(flag bool) { r.idx.holdRead(flag) }

// HoldWrite sets the producer's held flag.
func (r *Ring[T]) HoldWrite(flag bool) { r.idx.holdWrite(flag) }

// Release runs the drop function on every remaining item, oldest first, and
// zeroes their slots. Calling it again is a no-op.
//
// Release must not race with either side; after Split it is called by
// whichever handle closes last.
func (r *Ring[T]) Release() {
	if r.released {
		return
	}
	r.released = true

	left, right := r.OccupiedSlices()
	r.dropAll(left)
	r.dropAll(right)
	r.idx.setRead(r.WriteIndex())
}

func (r *Ring[T]) dropAll(items []T) {
	if r.opts.drop != nil {
		for _, item := range items {
			r.opts.drop(item)
		}
	}
	clear(items)
}
