package poll

import "context"

// Wait polls cond until it returns true or ctx is done, pausing with b
// between attempts. A nil b uses NewBackoff. b is reset before returning.
//
// It returns ctx.Err() when the context ends first.
func Wait(ctx context.Context, cond func() bool, b *Backoff) error {
	if b == nil {
		b = NewBackoff()
	}
	defer b.Reset()

	for !cond() {
		if err := ctx.Err(); err != nil {
			return err
		}
		b.Pause()
	}
	return nil
}
