package queue_test

import (
	"sync"
	"testing"

	"github.com/randomizedcoder/spscring/internal/queue"
	"github.com/randomizedcoder/spscring/internal/ring"
)

// TestRingQueue_SPSC_ConcurrentPush_Panics verifies that the SPSC guard
// catches concurrent Push() calls.
//
// This test intentionally violates the SPSC contract to verify the guard works.
func TestRingQueue_SPSC_ConcurrentPush_Panics(t *testing.T) {
	q := queue.NewRing[int](1024, ring.Shared)

	panicked := make(chan bool, 1)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					select {
					case panicked <- true:
					default:
					}
				}
			}()
			for j := 0; j < 1000; j++ {
				q.Push(n*1000 + j)
			}
		}(i)
	}

	wg.Wait()

	select {
	case <-panicked:
		t.Log("SPSC guard correctly detected concurrent Push()")
	default:
		// The goroutines may not have overlapped
		t.Log("No panic detected (goroutines may not have overlapped)")
	}
}

// TestRingQueue_SPSC_ConcurrentPop_Panics verifies that the SPSC guard
// catches concurrent Pop() calls.
//
// This test intentionally violates the SPSC contract to verify the guard works.
func TestRingQueue_SPSC_ConcurrentPop_Panics(t *testing.T) {
	q := queue.NewRing[int](1024, ring.Shared)

	for i := 0; i < 1024; i++ {
		q.Push(i)
	}

	panicked := make(chan bool, 1)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					select {
					case panicked <- true:
					default:
					}
				}
			}()
			for j := 0; j < 200; j++ {
				q.Pop()
			}
		}()
	}

	wg.Wait()

	select {
	case <-panicked:
		t.Log("SPSC guard correctly detected concurrent Pop()")
	default:
		t.Log("No panic detected (goroutines may not have overlapped)")
	}
}

// TestQueue_SPSC_Valid runs one producer goroutine and one consumer
// goroutine over each cross-goroutine implementation.
func TestQueue_SPSC_Valid(t *testing.T) {
	testCases := []struct {
		name string
		q    queue.Queue[int]
	}{
		{"Channel", queue.NewChannel[int](64)},
		{"SharedRing", queue.NewRing[int](64, ring.Shared)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			q := tc.q
			count := 10000

			go func() {
				defer q.Close()
				for i := 0; i < count; i++ {
					for !q.Push(i) {
						// Spin until push succeeds
					}
				}
			}()

			expected := 0
			for !q.Drained() {
				if val, ok := q.Pop(); ok {
					if val != expected {
						t.Fatalf("FIFO violation: expected %d, got %d", expected, val)
					}
					expected++
				}
			}

			if expected != count {
				t.Errorf("expected %d items, received %d", count, expected)
			}
		})
	}
}
