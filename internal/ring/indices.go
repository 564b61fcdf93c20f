package ring

import (
	"sync/atomic"

	"golang.org/x/sys/cpu"
)

// Strategy selects how the read/write index pair is synchronized.
type Strategy int

const (
	// Local uses plain fields. Producer and consumer must never run concurrently.
	Local Strategy = iota

	// Shared uses padded atomics. Producer and consumer may run on different goroutines.
	Shared
)

// String returns a human-readable representation of the strategy.
func (s Strategy) String() string {
	switch s {
	case Local:
		return "local"
	case Shared:
		return "shared"
	default:
		return "unknown"
	}
}

// indices is the read/write index pair with its held flags.
//
// read is written only by the consumer side and write only by the producer
// side. Each side may read its own field without synchronization; reading
// the peer's field relies on the implementation's ordering.
type indices interface {
	read() int
	write() int
	setRead(v int)
	setWrite(v int)

	readHeld() bool
	writeHeld() bool
	holdRead(flag bool)
	holdWrite(flag bool)
}

type localEnd struct {
	index int
	held  bool
}

// localIndices is valid only while the two sides are serialized.
type localIndices struct {
	r localEnd
	w localEnd
}

func newLocalIndices(read, write int) *localIndices {
	return &localIndices{r: localEnd{index: read}, w: localEnd{index: write}}
}

func (l *localIndices) read() int           { return l.r.index }
func (l *localIndices) write() int          { return l.w.index }
func (l *localIndices) setRead(v int)       { l.r.index = v }
func (l *localIndices) setWrite(v int)      { l.w.index = v }
func (l *localIndices) readHeld() bool      { return l.r.held }
func (l *localIndices) writeHeld() bool     { return l.w.held }
func (l *localIndices) holdRead(flag bool)  { l.r.held = flag }
func (l *localIndices) holdWrite(flag bool) { l.w.held = flag }

type sharedEnd struct {
	index atomic.Uint64
	held  atomic.Bool
}

// sharedIndices keeps each end on its own cache line so the producer's
// hot line and the consumer's hot line never share.
//
// sync/atomic operations are sequentially consistent: the owner's store
// after touching slots is a release, the peer's load before touching slots
// is an acquire.
type sharedIndices struct {
	_ cpu.CacheLinePad
	r sharedEnd // written by consumer, read by producer
	_ cpu.CacheLinePad
	w sharedEnd // written by producer, read by consumer
	_ cpu.CacheLinePad
}

func newSharedIndices(read, write int) *sharedIndices {
	s := &sharedIndices{}
	s.r.index.Store(uint64(read))
	s.w.index.Store(uint64(write))
	return s
}

func (s *sharedIndices) read() int           { return int(s.r.index.Load()) }
func (s *sharedIndices) write() int          { return int(s.w.index.Load()) }
func (s *sharedIndices) setRead(v int)       { s.r.index.Store(uint64(v)) }
func (s *sharedIndices) setWrite(v int)      { s.w.index.Store(uint64(v)) }
func (s *sharedIndices) readHeld() bool      { return s.r.held.Load() }
func (s *sharedIndices) writeHeld() bool     { return s.w.held.Load() }
func (s *sharedIndices) holdRead(flag bool)  { s.r.held.Store(flag) }
func (s *sharedIndices) holdWrite(flag bool) { s.w.held.Store(flag) }
