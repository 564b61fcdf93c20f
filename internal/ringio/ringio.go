// Package ringio adapts byte rings to io.Reader and io.Writer.
//
// The adapters never block. A ring too full for the whole input makes Write
// return the count that fit together with ErrWouldBlock, and an empty ring
// makes Read return ErrWouldBlock until the producer closes, after which Read
// returns io.EOF.
//
// ReadFrom and WriteInto move bytes between a ring and an external stream
// through one contiguous slice at a time, so a failing stream never leaves
// bytes half accounted for.
package ringio

import (
	"errors"
	"fmt"
	"io"

	"github.com/randomizedcoder/spscring/internal/ring"
)

// ErrWouldBlock reports that not every byte could be moved right now.
// The returned count is still valid; retry the rest later.
var ErrWouldBlock = errors.New("ringio: operation would block")

// Ensure compile-time interface compliance.
var (
	_ io.Writer       = (*Writer)(nil)
	_ io.StringWriter = (*Writer)(nil)
	_ io.Reader       = (*Reader)(nil)
)

// Writer pushes bytes into a ring.
type Writer struct {
	p ring.Producer[byte]
}

// NewWriter returns a Writer over p.
func NewWriter(p ring.Producer[byte]) *Writer {
	return &Writer{p: p}
}

// Write pushes as many leading bytes of b as fit. It returns ErrWouldBlock
// whenever fewer than len(b) bytes fit, along with the count that did.
func (w *Writer) Write(b []byte) (int, error) {
	n := w.p.PushSlice(b)
	if n < len(b) {
		return n, ErrWouldBlock
	}
	return n, nil
}

// WriteString is Write for strings.
func (w *Writer) WriteString(s string) (int, error) {
	left, right := w.p.VacantSlicesMut()
	n := copy(left, s)
	if n == len(left) {
		n += copy(right, s[n:])
	}
	w.p.AdvanceWriteIndex(n)
	if n < len(s) {
		return n, ErrWouldBlock
	}
	return n, nil
}

// Flush is a no-op; bytes are visible to the consumer as soon as Write returns.
func (w *Writer) Flush() error { return nil }

// ReadFrom reads at most count bytes from src into the ring; count < 0 means
// as many as fit. Only the first vacant slice is filled, so a short read is
// normal even when more room exists.
//
// n == 0 with a nil error means src returned nothing or the ring is full.
// If src fails, the bytes it reported are still committed and its error is
// returned unchanged.
func ReadFrom(p ring.Producer[byte], src io.Reader, count int) (n int, err error) {
	left, _ := p.VacantSlicesMut()
	// The phase closes even if src panics.
	defer func() { p.AdvanceWriteIndex(n) }()

	if count >= 0 && count < len(left) {
		left = left[:count]
	}
	if len(left) == 0 {
		return 0, nil
	}

	read, err := src.Read(left)
	if read < 0 || read > len(left) {
		return 0, fmt.Errorf("ringio: reader returned invalid count %d for %d bytes", read, len(left))
	}
	return read, err
}

// Reader pops bytes from a ring.
type Reader struct {
	c ring.Consumer[byte]
}

// NewReader returns a Reader over c.
func NewReader(c ring.Consumer[byte]) *Reader {
	return &Reader{c: c}
}

// Read pops up to len(b) bytes. On an empty ring it returns io.EOF when the
// producer has closed and ErrWouldBlock otherwise.
func (r *Reader) Read(b []byte) (int, error) {
	if len(b) == 0 {
		return 0, nil
	}
	// Check closed before empty: a producer may push and close in between.
	closed := r.c.IsClosed()
	n := r.c.PopSlice(b)
	if n > 0 {
		return n, nil
	}
	if closed {
		return 0, io.EOF
	}
	return 0, ErrWouldBlock
}

// WriteInto writes at most count bytes from the ring into dst; count < 0
// means everything in the first occupied slice. Only the bytes dst accepted
// are removed, and a dst error is returned unchanged.
func WriteInto(c ring.Consumer[byte], dst io.Writer, count int) (n int, err error) {
	left, _ := c.OccupiedSlicesMut()
	// The phase closes even if dst panics.
	defer func() { c.AdvanceReadIndex(n) }()

	if count >= 0 && count < len(left) {
		left = left[:count]
	}
	if len(left) == 0 {
		return 0, nil
	}

	written, err := dst.Write(left)
	if written < 0 || written > len(left) {
		return 0, fmt.Errorf("ringio: writer returned invalid count %d for %d bytes", written, len(left))
	}
	return written, err
}
