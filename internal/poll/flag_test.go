package poll_test

import (
	"context"
	"sync"
	"testing"

	"github.com/randomizedcoder/spscring/internal/poll"
)

func TestFlag(t *testing.T) {
	f := poll.NewFlag()

	if f.Done() {
		t.Error("expected Done() = false before Stop()")
	}

	f.Stop()
	if !f.Done() {
		t.Error("expected Done() = true after Stop()")
	}

	// Verify idempotent
	f.Stop()
	if !f.Done() {
		t.Error("expected Done() = true after second Stop()")
	}

	f.Reset()
	if f.Done() {
		t.Error("expected Done() = false after Reset()")
	}
}

func TestContextStop(t *testing.T) {
	c := poll.NewContextStop(context.Background())

	if c.Done() {
		t.Error("expected Done() = false before Stop()")
	}

	c.Stop()
	if !c.Done() {
		t.Error("expected Done() = true after Stop()")
	}
	if c.Context().Err() == nil {
		t.Error("expected the context to be canceled")
	}
}

func TestContextStop_ParentCancel(t *testing.T) {
	parent, cancel := context.WithCancel(context.Background())
	c := poll.NewContextStop(parent)
	cancel()

	if !c.Done() {
		t.Error("expected Done() = true after parent cancel")
	}
}

// TestStoppers_Race checks concurrent Done and Stop.
// Run with: go test -race ./internal/poll
func TestStoppers_Race(t *testing.T) {
	stoppers := map[string]poll.Stopper{
		"flag":    poll.NewFlag(),
		"context": poll.NewContextStop(context.Background()),
	}

	for name, s := range stoppers {
		t.Run(name, func(t *testing.T) {
			var wg sync.WaitGroup
			for i := 0; i < 10; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					for j := 0; j < 10000; j++ {
						_ = s.Done()
					}
				}()
			}

			wg.Add(1)
			go func() {
				defer wg.Done()
				s.Stop()
			}()

			wg.Wait()

			if !s.Done() {
				t.Error("expected Done() = true after Stop()")
			}
		})
	}
}
