package ring

// span is a half-open range of real slot indices.
type span struct {
	lo, hi int
}

func (s span) len() int { return s.hi - s.lo }

// ranges reduces the position range [start, end) to at most two spans of
// real slots, split where the range wraps past the end of storage.
//
// Positions in the doubled domain carry their lap in start/capacity. When
// start and end sit on laps of equal parity the range does not wrap.
// start and end may exceed the domain (e.g. read+capacity); only the parity
// of the lap matters.
func ranges(capacity, start, end int) (span, span) {
	startLap, startRem := start/capacity, start%capacity
	endLap, endRem := end/capacity, end%capacity

	if (startLap+endLap)%2 == 0 {
		return span{startRem, endRem}, span{}
	}
	return span{startRem, capacity}, span{0, endRem}
}

// Capacity returns the number of slots.
func (r *Ring[T]) Capacity() int { return r.storage.Len() }

func (r *Ring[T]) modulus() int { return 2 * r.storage.Len() }

// ReadIndex returns the consumer position.
func (r *Ring[T]) ReadIndex() int { return r.idx.read() }

// WriteIndex returns the producer position.
func (r *Ring[T]) WriteIndex() int { return r.idx.write() }

// UnsafeSlices projects [start, end) onto storage. See Observer.
func (r *Ring[T]) UnsafeSlices(start, end int) ([]T, []T) {
	first, second := ranges(r.Capacity(), start, end)
	slots := r.storage.Slots()
	return slots[first.lo:first.hi:first.hi], slots[second.lo:second.hi:second.hi]
}

// Len returns the number of occupied slots.
func (r *Ring[T]) Len() int {
	m := r.modulus()
	return (r.WriteIndex() - r.ReadIndex() + m) % m
}

// Remaining returns the number of vacant slots.
func (r *Ring[T]) Remaining() int { return r.Capacity() - r.Len() }

// IsEmpty reports whether no slot is occupied.
func (r *Ring[T]) IsEmpty() bool { return r.ReadIndex() == r.WriteIndex() }

// IsFull reports whether every slot is occupied.
func (r *Ring[T]) IsFull() bool { return r.Len() == r.Capacity() }

// ReadIsHeld reports whether a consumer handle is live.
func (r *Ring[T]) ReadIsHeld() bool { return r.idx.readHeld() }

// WriteIsHeld reports whether a producer handle is live.
func (r *Ring[T]) WriteIsHeld() bool { return r.idx.writeHeld() }
