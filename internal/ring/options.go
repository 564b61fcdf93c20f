package ring

// Option configures a ring at construction.
type Option[T any] func(*options[T])

type options[T any] struct {
	// drop runs once for every item the ring discards itself
	// (Skip, Clear, Release). Items handed to the caller are never dropped.
	drop func(T)
	name string
}

// WithDropFunc sets the function run on items discarded by the ring.
// A nil fn is ignored.
func WithDropFunc[T any](fn func(T)) Option[T] {
	return func(o *options[T]) {
		if fn != nil {
			o.drop = fn
		}
	}
}

// WithName labels the ring, e.g. for metrics.
func WithName[T any](name string) Option[T] {
	return func(o *options[T]) {
		o.name = name
	}
}

func applyOptions[T any](opts ...Option[T]) options[T] {
	var o options[T]
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}
