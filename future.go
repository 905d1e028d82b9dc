package requestq

import (
	"context"
	"sync"
)

// Future is the one-shot completion handle returned by Enqueue.
//
// A Future settles exactly once: with the operation's value, with its
// error, with a *TimeoutError, or with ErrQueueCleared. After Done is
// closed the result is immutable.
type Future[T any] struct {
	done chan struct{}
	once sync.Once

	val T
	err error
}

func newFuture[T any]() *Future[T] {
	return &Future[T]{done: make(chan struct{})}
}

// settle records the outcome and releases waiters. Later calls are
// no-ops, which is what makes the timeout a race: whichever side
// settles first wins.
func (f *Future[T]) settle(val T, err error) {
	f.once.Do(func() {
		f.val = val
		f.err = err
		close(f.done)
	})
}

// Done returns a channel closed once the future has settled.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Wait blocks until the future settles or ctx is done.
func (f *Future[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.val, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
