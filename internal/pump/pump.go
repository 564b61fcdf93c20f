package pump

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/randomizedcoder/spscring/internal/poll"
	"github.com/randomizedcoder/spscring/internal/queue"
	"github.com/randomizedcoder/spscring/internal/ring"
)

// progressCheckEvery is how many consumer iterations pass between clock reads.
const progressCheckEvery = 64

// Stats is a snapshot of a run.
type Stats struct {
	Pushed  uint64
	Popped  uint64
	Elapsed time.Duration
}

// PerSecond returns popped items per second of elapsed time.
func (s Stats) PerSecond() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.Popped) / s.Elapsed.Seconds()
}

// Option configures a Pump.
type Option func(*Pump)

// WithProgress calls fn from the consumer goroutine every Config.Progress.
func WithProgress(fn func(Stats)) Option {
	return func(p *Pump) {
		p.progress = fn
	}
}

// Pump moves Config.Items sequence numbers from a producer goroutine to a
// consumer goroutine.
type Pump struct {
	cfg      Config
	q        queue.Queue[uint64]
	rq       *queue.RingQueue[uint64] // nil for the channel transport
	progress func(Stats)

	ran    atomic.Bool
	start  atomic.Int64 // unix nanoseconds, 0 before Run
	pushed atomic.Uint64
	popped atomic.Uint64
}

// New validates cfg and builds the transport.
func New(cfg Config, opts ...Option) (*Pump, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	p := &Pump{cfg: cfg}
	for _, opt := range opts {
		opt(p)
	}

	switch cfg.Transport {
	case TransportRing:
		p.rq = queue.NewRing[uint64](cfg.Capacity, ring.Shared)
		p.q = p.rq
	case TransportChannel:
		p.q = queue.NewChannel[uint64](cfg.Capacity)
	}
	return p, nil
}

// Ring returns the ring transport, or nil when the pump uses a channel.
func (p *Pump) Ring() *queue.RingQueue[uint64] {
	return p.rq
}

// Stats returns the counters so far. Safe to call from any goroutine.
func (p *Pump) Stats() Stats {
	s := Stats{
		Pushed: p.pushed.Load(),
		Popped: p.popped.Load(),
	}
	if start := p.start.Load(); start != 0 {
		s.Elapsed = time.Since(time.Unix(0, start))
	}
	return s
}

// Run pumps every item and returns when the consumer has seen the last one,
// when an item arrives out of order or when ctx ends. A Pump runs once.
func (p *Pump) Run(ctx context.Context) (Stats, error) {
	if !p.ran.CompareAndSwap(false, true) {
		return p.Stats(), ErrAlreadyRun
	}

	if p.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.cfg.Timeout)
		defer cancel()
	}

	p.start.Store(time.Now().UnixNano())
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return p.produce(gctx) })
	g.Go(func() error { return p.consume(gctx) })
	err := g.Wait()

	s := p.Stats()
	if err != nil {
		return s, fmt.Errorf("pump %s: %w", p.cfg.Name, err)
	}
	return s, nil
}

// Close releases the transport. Items still queued are dropped.
func (p *Pump) Close() {
	if p.rq != nil {
		p.rq.Release()
		return
	}
	p.q.Close()
}

func (p *Pump) produce(ctx context.Context) error {
	defer p.q.Close()

	size := p.cfg.Batch
	var limiter *rate.Limiter
	if p.cfg.Rate > 0 {
		limiter = rate.NewLimiter(rate.Limit(p.cfg.Rate), p.cfg.Burst)
		size = min(size, p.cfg.Burst)
	}

	buf := make([]uint64, size)
	b := poll.NewBackoff()
	total := uint64(p.cfg.Items)

	for next := uint64(0); next < total; {
		n := int(min(uint64(size), total-next))
		if limiter != nil {
			if err := limiter.WaitN(ctx, n); err != nil {
				return err
			}
		}

		pending := buf[:n]
		for i := range pending {
			pending[i] = next + uint64(i)
		}
		for len(pending) > 0 {
			k := p.push(pending)
			if k == 0 {
				if err := ctx.Err(); err != nil {
					return err
				}
				b.Pause()
				continue
			}
			b.Reset()
			pending = pending[k:]
			next += uint64(k)
			p.pushed.Add(uint64(k))
		}
	}
	return nil
}

func (p *Pump) push(items []uint64) int {
	if p.rq != nil {
		return p.rq.Producer().PushSlice(items)
	}
	n := 0
	for _, v := range items {
		if !p.q.Push(v) {
			break
		}
		n++
	}
	return n
}

func (p *Pump) consume(ctx context.Context) error {
	var ticker *poll.Ticker
	if p.progress != nil && p.cfg.Progress > 0 {
		ticker = poll.NewBatchTicker(p.cfg.Progress, progressCheckEvery)
	}

	buf := make([]uint64, p.cfg.Batch)
	b := poll.NewBackoff()
	var expected uint64

	for {
		n := p.pop(buf)
		for _, v := range buf[:n] {
			if v != expected {
				return fmt.Errorf("%w: got %d, want %d", ErrOutOfOrder, v, expected)
			}
			expected++
		}
		if n > 0 {
			p.popped.Add(uint64(n))
			b.Reset()
		}
		if ticker != nil && ticker.Tick() {
			p.progress(p.Stats())
		}
		if n > 0 {
			continue
		}

		if p.q.Drained() {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		b.Pause()
	}
}

func (p *Pump) pop(buf []uint64) int {
	if p.rq != nil {
		return p.rq.Consumer().PopSlice(buf)
	}
	n := 0
	for n < len(buf) {
		v, ok := p.q.Pop()
		if !ok {
			break
		}
		buf[n] = v
		n++
	}
	return n
}
