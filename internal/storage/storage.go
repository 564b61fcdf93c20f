// Package storage provides the fixed-capacity slot regions a ring buffer runs over.
//
// Two flavours share the Storage contract:
//   - Heap: allocated here, shared by every handle split from the ring
//   - Static: a caller-provided region (for example a stack array), never allocated
//
// A slot that the ring considers vacant always holds the zero value of T.
// Storage itself has no notion of which slots are occupied; that is tracked
// by the ring's read/write indices.
package storage

// Storage is a linear region of capacity slots.
type Storage[T any] interface {
	// Len returns the number of slots. It never changes and is never zero.
	Len() int

	// Slots returns the whole backing region.
	//
	// Callers must only treat sub-slices as initialized when the ring's
	// indices say so.
	Slots() []T
}

// Heap is a heap-allocated region.
type Heap[T any] struct {
	slots []T
}

// NewHeap allocates a region with the given number of slots.
// It panics if capacity is not positive.
func NewHeap[T any](capacity int) *Heap[T] {
	if capacity <= 0 {
		panic("storage: capacity must be positive")
	}
	return &Heap[T]{slots: make([]T, capacity)}
}

// Len returns the number of slots.
func (h *Heap[T]) Len() int { return len(h.slots) }

// Slots returns the backing region.
func (h *Heap[T]) Slots() []T { return h.slots }

// Static wraps a region owned by the caller.
type Static[T any] struct {
	slots []T
}

// NewStatic uses backing as the slot region without copying it.
//
//	var buf [64]int
//	s := storage.NewStatic(buf[:])
//
// The caller must not touch backing while a ring uses it.
// It panics if backing is empty.
func NewStatic[T any](backing []T) Static[T] {
	if len(backing) == 0 {
		panic("storage: backing region must not be empty")
	}
	return Static[T]{slots: backing}
}

// Len returns the number of slots.
func (s Static[T]) Len() int { return len(s.slots) }

// Slots returns the backing region.
func (s Static[T]) Slots() []T { return s.slots }
