package poll_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randomizedcoder/spscring/internal/poll"
	"github.com/randomizedcoder/spscring/internal/ring"
	"github.com/randomizedcoder/spscring/internal/storage"
)

func TestBackoff_Stages(t *testing.T) {
	b := &poll.Backoff{Spins: 2, Yields: 1, MaxSleep: time.Microsecond}

	assert.False(t, b.Sleeping())
	b.Pause()
	b.Pause()
	assert.False(t, b.Sleeping(), "one yield left")
	b.Pause()
	assert.True(t, b.Sleeping())
	b.Pause()
	assert.True(t, b.Sleeping())

	b.Reset()
	assert.False(t, b.Sleeping())
}

func TestWait_Condition(t *testing.T) {
	calls := 0
	err := poll.Wait(context.Background(), func() bool {
		calls++
		return calls == 100
	}, nil)

	require.NoError(t, err)
	assert.Equal(t, 100, calls)
}

func TestWait_ContextEnds(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	b := poll.NewBackoff()
	err := poll.Wait(ctx, func() bool { return false }, b)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.False(t, b.Sleeping(), "Wait resets the backoff")
}

// TestWait_RingDrain waits for a consumer on another goroutine to see the
// producer close and drain the ring.
func TestWait_RingDrain(t *testing.T) {
	prod, cons := ring.NewShared[int](storage.NewHeap[int](4)).Split()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	got := make(chan []int, 1)
	go func() {
		defer cons.Close()
		var out []int
		b := poll.NewBackoff()
		for {
			if err := poll.Wait(ctx, func() bool { return !cons.IsEmpty() || cons.IsClosed() }, b); err != nil {
				break
			}
			v, ok := cons.TryPop()
			if !ok {
				break // closed and empty
			}
			out = append(out, v)
		}
		got <- out
	}()

	b := poll.NewBackoff()
	for i := 0; i < 10; i++ {
		require.NoError(t, poll.Wait(ctx, func() bool { return !prod.IsFull() }, b))
		require.True(t, prod.TryPush(i))
	}
	prod.Close()

	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, <-got)
}
