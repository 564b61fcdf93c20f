package poll

import (
	"context"
	"sync/atomic"
)

// Ensure compile-time interface compliance.
var (
	_ Stopper = (*Flag)(nil)
	_ Stopper = (*ContextStop)(nil)
)

// Flag is a Stopper backed by an atomic.Bool.
//
// Done is a single atomic load, so it can be checked on every iteration of
// a push or pop loop.
type Flag struct {
	done atomic.Bool
}

// NewFlag returns a Flag that is not yet stopped.
func NewFlag() *Flag {
	return &Flag{}
}

// Done reports whether Stop has been called.
func (f *Flag) Done() bool {
	return f.done.Load()
}

// Stop sets the flag.
func (f *Flag) Stop() {
	f.done.Store(true)
}

// Reset clears the flag. Not safe to call concurrently with Done or Stop.
func (f *Flag) Reset() {
	f.done.Store(false)
}

// ContextStop is a Stopper over a cancelable context.
type ContextStop struct {
	ctx    context.Context
	cancel context.CancelFunc
}

// NewContextStop derives a cancelable context from parent.
func NewContextStop(parent context.Context) *ContextStop {
	ctx, cancel := context.WithCancel(parent)
	return &ContextStop{
		ctx:    ctx,
		cancel: cancel,
	}
}

// Done performs a non-blocking select on ctx.Done().
func (c *ContextStop) Done() bool {
	select {
	case <-c.ctx.Done():
		return true
	default:
		return false
	}
}

// Stop cancels the context.
func (c *ContextStop) Stop() {
	c.cancel()
}

// Context returns the underlying context.
func (c *ContextStop) Context() context.Context {
	return c.ctx
}
