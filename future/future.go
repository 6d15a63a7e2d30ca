package future

import (
	"context"
	"sync/atomic"
)

// Future is a single-fulfillment result slot. The first call to Complete
// binds the value and error; every later call is ignored.
type Future[T any] struct {
	completed atomic.Bool
	done      chan struct{}
	value     T
	err       error
}

// New creates an unresolved future.
func New[T any]() *Future[T] {
	return &Future[T]{done: make(chan struct{})}
}

// Resolved creates a future already completed with the given value.
func Resolved[T any](value T) *Future[T] {
	f := New[T]()
	f.Complete(value, nil)
	return f
}

// Failed creates a future already completed with the given error.
func Failed[T any](err error) *Future[T] {
	f := New[T]()
	var zero T
	f.Complete(zero, err)
	return f
}

// Complete binds the result of the future. It returns false if the
// future was already completed, in which case nothing changes.
func (f *Future[T]) Complete(value T, err error) bool {
	if !f.completed.CompareAndSwap(false, true) {
		return false
	}

	f.value = value
	f.err = err
	close(f.done)
	return true
}

// Done returns a channel that is closed once the future completes.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Completed reports whether a result has been bound.
func (f *Future[T]) Completed() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Result blocks until the future completes.
func (f *Future[T]) Result() (T, error) {
	<-f.done
	return f.value, f.err
}

// Wait is like Result, but gives up when the context is canceled. Giving
// up does not cancel the underlying operation.
func (f *Future[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.value, f.err

	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Then completes the target future with the result of the source once it
// is available. Returns the target for chaining.
func Then[T, U any](source *Future[T], target *Future[U], f func(T, error) (U, error)) *Future[U] {
	go func() {
		target.Complete(f(source.Result()))
	}()

	return target
}
