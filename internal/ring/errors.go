package ring

import "errors"

// Precondition violations. The ring panics with an error wrapping one of
// these; they are programming errors and are not meant to be recovered.
var (
	// ErrAdvanceOverflow indicates an index advance past the available slots
	ErrAdvanceOverflow = errors.New("ring: advance past available slots")

	// ErrPhaseOpen indicates a mutating call while a *SlicesMut view is uncommitted
	ErrPhaseOpen = errors.New("ring: uncommitted slice phase")

	// ErrHandleClosed indicates use of a producer or consumer after Close
	ErrHandleClosed = errors.New("ring: use of closed handle")

	// ErrAlreadySplit indicates a second split while a handle is still held
	ErrAlreadySplit = errors.New("ring: already split")

	// ErrInvalidIndex indicates raw parts outside the index domain
	ErrInvalidIndex = errors.New("ring: index out of domain")

	// ErrConcurrentUse indicates the SPSC contract was violated
	ErrConcurrentUse = errors.New("ring: concurrent use violates SPSC contract")
)
