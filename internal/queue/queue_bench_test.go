package queue_test

import (
	"testing"

	"github.com/randomizedcoder/spscring/internal/queue"
	"github.com/randomizedcoder/spscring/internal/ring"
)

// Sink variables to prevent compiler from eliminating benchmark loops
var sinkInt int
var sinkBool bool

// Direct type benchmarks (true performance floor)

func BenchmarkQueue_Channel_PushPop_Direct(b *testing.B) {
	q := queue.NewChannel[int](1024)
	b.ReportAllocs()
	b.ResetTimer()

	var val int
	var ok bool
	for i := 0; i < b.N; i++ {
		q.Push(i)
		val, ok = q.Pop()
	}
	sinkInt = val
	sinkBool = ok
}

func BenchmarkQueue_LocalRing_PushPop_Direct(b *testing.B) {
	q := queue.NewRing[int](1024, ring.Local)
	b.ReportAllocs()
	b.ResetTimer()

	var val int
	var ok bool
	for i := 0; i < b.N; i++ {
		q.Push(i)
		val, ok = q.Pop()
	}
	sinkInt = val
	sinkBool = ok
}

func BenchmarkQueue_SharedRing_PushPop_Direct(b *testing.B) {
	q := queue.NewRing[int](1024, ring.Shared)
	b.ReportAllocs()
	b.ResetTimer()

	var val int
	var ok bool
	for i := 0; i < b.N; i++ {
		q.Push(i)
		val, ok = q.Pop()
	}
	sinkInt = val
	sinkBool = ok
}

// Interface benchmarks (with dynamic dispatch overhead)

func BenchmarkQueue_PushPop_Interface(b *testing.B) {
	for _, tc := range queues(1024) {
		b.Run(tc.name, func(b *testing.B) {
			q := tc.q
			b.ReportAllocs()
			b.ResetTimer()

			var val int
			var ok bool
			for i := 0; i < b.N; i++ {
				q.Push(i)
				val, ok = q.Pop()
			}
			sinkInt = val
			sinkBool = ok
		})
	}
}

// Batch benchmarks: slice copies against item-at-a-time

func BenchmarkQueue_SharedRing_PushPop_Slice64(b *testing.B) {
	q := queue.NewRing[int](1024, ring.Shared)
	prod, cons := q.Producer(), q.Consumer()
	in := make([]int, 64)
	out := make([]int, 64)
	b.ReportAllocs()
	b.ResetTimer()

	var n int
	for i := 0; i < b.N; i++ {
		prod.PushSlice(in)
		n = cons.PopSlice(out)
	}
	sinkInt = n
}

func BenchmarkQueue_SharedRing_PushPop_Size64(b *testing.B) {
	q := queue.NewRing[int](1024, ring.Shared)
	b.ReportAllocs()
	b.ResetTimer()

	var val int
	var ok bool
	for i := 0; i < b.N; i++ {
		for j := 0; j < 64; j++ {
			q.Push(j)
		}
		for j := 0; j < 64; j++ {
			val, ok = q.Pop()
		}
	}
	sinkInt = val
	sinkBool = ok
}

func BenchmarkQueue_Channel_PushPop_Size64(b *testing.B) {
	q := queue.NewChannel[int](1024)
	b.ReportAllocs()
	b.ResetTimer()

	var val int
	var ok bool
	for i := 0; i < b.N; i++ {
		for j := 0; j < 64; j++ {
			q.Push(j)
		}
		for j := 0; j < 64; j++ {
			val, ok = q.Pop()
		}
	}
	sinkInt = val
	sinkBool = ok
}
