package ringio_test

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randomizedcoder/spscring/internal/ring"
	"github.com/randomizedcoder/spscring/internal/ringio"
	"github.com/randomizedcoder/spscring/internal/storage"
)

func newByteRing(capacity int) (*ring.Prod[byte], *ring.Cons[byte]) {
	return ring.NewShared[byte](storage.NewHeap[byte](capacity)).Split()
}

func TestWriter_WouldBlock(t *testing.T) {
	prod, cons := newByteRing(4)
	defer cons.Close()
	defer prod.Close()
	w := ringio.NewWriter(prod)

	n, err := w.Write([]byte("abcdef"))
	assert.ErrorIs(t, err, ringio.ErrWouldBlock, "a short write must report an error")
	assert.Equal(t, 4, n)

	n, err = w.Write([]byte("g"))
	assert.Equal(t, 0, n)
	assert.ErrorIs(t, err, ringio.ErrWouldBlock)

	n, err = w.Write(nil)
	assert.Equal(t, 0, n)
	assert.NoError(t, err, "an empty write never blocks")
	assert.NoError(t, w.Flush())
}

func TestWriter_WriteStringWraps(t *testing.T) {
	prod, cons := newByteRing(5)
	defer cons.Close()
	defer prod.Close()
	w := ringio.NewWriter(prod)

	_, err := w.WriteString("xyz")
	require.NoError(t, err)
	require.Equal(t, 3, cons.Skip(3))

	n, err := w.WriteString("hello!")
	assert.ErrorIs(t, err, ringio.ErrWouldBlock)
	assert.Equal(t, 5, n)

	left, right := cons.OccupiedSlices()
	assert.Equal(t, "hello", string(left)+string(right))
	assert.NotEmpty(t, right, "the write must have wrapped")

	_, err = w.WriteString("!")
	assert.ErrorIs(t, err, ringio.ErrWouldBlock)
}

// TestWriter_ShortWriteThroughHelpers checks that generic io helpers see an
// error when the ring cannot take the whole input.
func TestWriter_ShortWriteThroughHelpers(t *testing.T) {
	prod, cons := newByteRing(4)
	defer cons.Close()
	defer prod.Close()
	w := ringio.NewWriter(prod)

	n, err := fmt.Fprintf(w, "hello world")
	assert.Equal(t, 4, n)
	assert.ErrorIs(t, err, ringio.ErrWouldBlock)
	require.Equal(t, 4, cons.Clear())

	n, err = io.WriteString(w, "abcdef")
	assert.Equal(t, 4, n)
	assert.ErrorIs(t, err, ringio.ErrWouldBlock)

	got := make([]byte, 8)
	assert.Equal(t, "abcd", string(got[:cons.PopSlice(got)]))

	n, err = io.WriteString(w, "wxyz")
	assert.Equal(t, 4, n)
	assert.NoError(t, err, "a write that fits exactly is complete")
}

func TestReader_WouldBlockThenEOF(t *testing.T) {
	prod, cons := newByteRing(8)
	defer cons.Close()
	r := ringio.NewReader(cons)
	buf := make([]byte, 8)

	_, err := r.Read(buf)
	assert.ErrorIs(t, err, ringio.ErrWouldBlock)

	prod.PushSlice([]byte("hi"))
	prod.Close()

	n, err := r.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "hi", string(buf[:n]))

	_, err = r.Read(buf)
	assert.ErrorIs(t, err, io.EOF)
}

func TestReader_ReadAllAfterClose(t *testing.T) {
	prod, cons := newByteRing(16)
	defer cons.Close()
	w := ringio.NewWriter(prod)
	_, err := w.WriteString("stream of bytes")
	require.NoError(t, err)
	prod.Close()

	got, err := io.ReadAll(ringio.NewReader(cons))
	require.NoError(t, err)
	assert.Equal(t, "stream of bytes", string(got))
}

func TestReadFrom_FirstSliceOnly(t *testing.T) {
	prod, cons := newByteRing(6)
	defer cons.Close()
	defer prod.Close()
	prod.PushSlice([]byte("....."))
	cons.Skip(5) // write=read=5; vacant is [5,6) then [0,5)

	src := strings.NewReader("abcdefgh")
	n, err := ringio.ReadFrom(prod, src, -1)
	require.NoError(t, err)
	assert.Equal(t, 1, n, "only the first vacant slice is filled")

	n, err = ringio.ReadFrom(prod, src, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	got := make([]byte, 8)
	assert.Equal(t, "abcd", string(got[:cons.PopSlice(got)]))
}

type failingReader struct {
	data string
	err  error
}

func (f *failingReader) Read(b []byte) (int, error) {
	return copy(b, f.data), f.err
}

func TestReadFrom_ErrorKeepsReadBytes(t *testing.T) {
	prod, cons := newByteRing(8)
	defer cons.Close()
	defer prod.Close()
	boom := errors.New("boom")

	n, err := ringio.ReadFrom(prod, &failingReader{data: "ab", err: boom}, -1)
	assert.ErrorIs(t, err, boom, "source errors propagate unchanged")
	assert.Equal(t, 2, n)
	assert.Equal(t, 2, cons.Len(), "bytes the source reported are committed")

	n, err = ringio.ReadFrom(prod, &failingReader{err: boom}, -1)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, n)
	assert.Equal(t, 2, cons.Len())

	// the phase must be closed after an error
	assert.True(t, prod.TryPush('c'))
}

type panicReader struct{}

func (panicReader) Read([]byte) (int, error) { panic("source exploded") }

type panicWriter struct{}

func (panicWriter) Write([]byte) (int, error) { panic("sink exploded") }

// TestStreams_PanicClosesPhase checks that a panicking stream leaves the ring
// usable on both sides.
func TestStreams_PanicClosesPhase(t *testing.T) {
	prod, cons := newByteRing(4)
	defer cons.Close()
	defer prod.Close()

	assert.Panics(t, func() { _, _ = ringio.ReadFrom(prod, panicReader{}, -1) })
	assert.True(t, prod.TryPush('a'), "the write phase must be closed after a panic")
	assert.Equal(t, 1, cons.Len(), "nothing from the panicking read is committed")

	assert.Panics(t, func() { _, _ = ringio.WriteInto(cons, panicWriter{}, -1) })
	v, ok := cons.TryPop()
	require.True(t, ok, "the read phase must be closed after a panic")
	assert.Equal(t, byte('a'), v)
}

type limitedWriter struct {
	buf   bytes.Buffer
	limit int
	err   error
}

func (l *limitedWriter) Write(b []byte) (int, error) {
	if len(b) > l.limit {
		b = b[:l.limit]
	}
	n, _ := l.buf.Write(b)
	return n, l.err
}

func TestWriteInto(t *testing.T) {
	prod, cons := newByteRing(8)
	defer cons.Close()
	defer prod.Close()
	prod.PushSlice([]byte("abcdef"))

	dst := &limitedWriter{limit: 4}
	n, err := ringio.WriteInto(cons, dst, -1)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, 2, cons.Len(), "only accepted bytes leave the ring")

	dst.err = errors.New("sink failed")
	dst.limit = 1
	n, err = ringio.WriteInto(cons, dst, -1)
	assert.ErrorIs(t, err, dst.err)
	assert.Equal(t, 1, n)
	assert.Equal(t, "abcde", dst.buf.String())

	v, ok := cons.TryPop()
	require.True(t, ok)
	assert.Equal(t, byte('f'), v, "bytes the sink did not accept are not lost")
}

func TestWriteInto_Empty(t *testing.T) {
	prod, cons := newByteRing(2)
	defer cons.Close()
	defer prod.Close()

	n, err := ringio.WriteInto(cons, io.Discard, -1)
	assert.NoError(t, err)
	assert.Equal(t, 0, n)
	_, ok := cons.TryPop()
	assert.False(t, ok)
}
