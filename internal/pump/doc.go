// Package pump drives a producer goroutine and a consumer goroutine over a
// queue and checks that every item arrives once and in order.
//
// It exercises the components together: a Queue transport (channel or
// ring), a poll.Backoff on both sides, a poll.Ticker for progress reports
// and an optional rate limit on the producer. Its numbers are more
// representative than isolated micro-benchmarks because they include the
// cost of every piece in the loop.
package pump
