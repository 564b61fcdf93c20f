// Command ringbench compares a buffered channel with Local and Shared rings
// on a single goroutine, then measures the poll checks a pump loop makes
// per iteration.
//
// Usage:
//
//	go run ./cmd/ringbench -n 10000000 -size 1024 -batch 64
package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/randomizedcoder/spscring/internal/poll"
	"github.com/randomizedcoder/spscring/internal/queue"
	"github.com/randomizedcoder/spscring/internal/ring"
)

type result struct {
	name string
	dur  time.Duration
}

func (r result) perOp(iterations int) float64 {
	return float64(r.dur.Nanoseconds()) / float64(iterations)
}

func main() {
	iterations := flag.Int("n", 10_000_000, "number of iterations")
	size := flag.Int("size", 1024, "queue size")
	batch := flag.Int("batch", 64, "items per PushSlice/PopSlice")
	flag.Parse()

	if *iterations <= 0 || *size <= 0 || *batch <= 0 {
		fmt.Println("ringbench: -n, -size and -batch must be positive")
		return
	}

	fmt.Printf("Benchmarking SPSC transports (%d iterations, size=%d)\n", *iterations, *size)
	fmt.Println("─────────────────────────────────────────────────")

	results := []result{
		{"Channel", pushPop(queue.NewChannel[int](*size), *iterations)},
		{"LocalRing", pushPop(queue.NewRing[int](*size, ring.Local), *iterations)},
		{"SharedRing", pushPop(queue.NewRing[int](*size, ring.Shared), *iterations)},
		{fmt.Sprintf("SharedRing/slice%d", *batch), pushPopSlice(*size, *batch, *iterations)},
	}

	fmt.Printf("\nResults (push + pop per item):\n")
	base := results[0].perOp(*iterations)
	for _, r := range results {
		perOp := r.perOp(*iterations)
		fmt.Printf("  %-20s %v (%.2f ns/op, %.2fx vs Channel, %.2f M ops/sec)\n",
			r.name+":", r.dur, perOp, base/perOp, 1000/perOp)
	}

	loopChecks(*iterations)
}

func pushPop(q queue.Queue[int], iterations int) time.Duration {
	start := time.Now()
	for i := 0; i < iterations; i++ {
		q.Push(i)
		q.Pop()
	}
	return time.Since(start)
}

func pushPopSlice(size, batch, iterations int) time.Duration {
	q := queue.NewRing[int](size, ring.Shared)
	defer q.Release()
	prod, cons := q.Producer(), q.Consumer()
	in := make([]int, min(batch, size))
	out := make([]int, len(in))

	start := time.Now()
	for done := 0; done < iterations; {
		n := prod.PushSlice(in[:min(len(in), iterations-done)])
		done += cons.PopSlice(out[:n])
	}
	return time.Since(start)
}

// loopChecks times the stop and tick checks a polling loop makes between
// ring operations.
func loopChecks(iterations int) {
	interval := time.Hour // Long so we measure check overhead, not actual ticks

	stdStop := poll.NewContextStop(context.Background())
	defer stdStop.Stop()
	last := time.Now()
	start := time.Now()
	for i := 0; i < iterations; i++ {
		_ = stdStop.Done()
		_ = time.Since(last) >= interval
	}
	stdDur := time.Since(start)

	stop := poll.NewFlag()
	ticker := poll.NewTicker(interval)
	start = time.Now()
	for i := 0; i < iterations; i++ {
		_ = stop.Done()
		_ = ticker.Tick()
	}
	optDur := time.Since(start)

	batchTicker := poll.NewBatchTicker(interval, 1000)
	start = time.Now()
	for i := 0; i < iterations; i++ {
		_ = stop.Done()
		_ = batchTicker.Tick()
	}
	batchDur := time.Since(start)

	stdPerOp := float64(stdDur.Nanoseconds()) / float64(iterations)
	optPerOp := float64(optDur.Nanoseconds()) / float64(iterations)
	batchPerOp := float64(batchDur.Nanoseconds()) / float64(iterations)

	fmt.Println()
	fmt.Println("Loop checks (stop + tick per iteration):")
	fmt.Println("─────────────────────────────────────────────────")
	fmt.Printf("  Context + time.Since:   %.2f ns/op\n", stdPerOp)
	fmt.Printf("  Flag + Ticker:          %.2f ns/op (%.2fx)\n", optPerOp, stdPerOp/optPerOp)
	fmt.Printf("  Flag + BatchTicker:     %.2f ns/op (%.2fx)\n", batchPerOp, stdPerOp/batchPerOp)
}
