package ring

import "fmt"

// VacantSlices returns the vacant slots [write, read+capacity), oldest first.
func (r *Ring[T]) VacantSlices() ([]T, []T) {
	return r.UnsafeSlices(r.WriteIndex(), r.ReadIndex()+r.Capacity())
}

// VacantSlicesMut opens a write phase. See Producer.
func (r *Ring[T]) VacantSlicesMut() ([]T, []T) {
	r.mustNotWrite()
	r.writing = true
	return r.VacantSlices()
}

// AdvanceWriteIndex publishes n filled slots and closes the write phase.
func (r *Ring[T]) AdvanceWriteIndex(n int) {
	if vacant := r.Remaining(); n < 0 || n > vacant {
		panic(fmt.Errorf("%w: write advance %d, vacant %d", ErrAdvanceOverflow, n, vacant))
	}
	r.commitWrite(n)
	r.writing = false
}

func (r *Ring[T]) commitWrite(n int) {
	if n == 0 {
		return
	}
	r.idx.setWrite((r.WriteIndex() + n) % r.modulus())
}

func (r *Ring[T]) mustNotWrite() {
	if r.writing {
		panic(fmt.Errorf("%w: producer", ErrPhaseOpen))
	}
}

// TryPush appends item, or returns false when the ring is full.
func (r *Ring[T]) TryPush(item T) bool {
	r.mustNotWrite()
	left, _ := r.VacantSlices()
	if len(left) == 0 {
		return false
	}
	left[0] = item
	r.commitWrite(1)
	return true
}

// PushIter appends items pulled from next. See Producer.
func (r *Ring[T]) PushIter(next func() (T, bool)) int {
	r.mustNotWrite()
	left, right := r.VacantSlices()
	n := fill(left, next)
	if n == len(left) {
		n += fill(right, next)
	}
	r.commitWrite(n)
	return n
}

// fill stores values from next into dst until either runs out.
func fill[T any](dst []T, next func() (T, bool)) int {
	for i := range dst {
		v, ok := next()
		if !ok {
			return i
		}
		dst[i] = v
	}
	return len(dst)
}

// PushSlice copies as many leading items as fit and returns the count.
func (r *Ring[T]) PushSlice(items []T) int {
	r.mustNotWrite()
	left, right := r.VacantSlices()
	n := copy(left, items)
	if n == len(left) {
		n += copy(right, items[n:])
	}
	r.commitWrite(n)
	return n
}
