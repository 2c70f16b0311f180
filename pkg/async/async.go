package async

import (
	"context"
	"fmt"
)

// Future represents the result of an asynchronous computation.
type Future[U any] struct {
	result U
	err    error
	done   chan struct{}
}

// Async executes fn in a new goroutine and returns its Future.
// A context canceled before fn starts completes the future with ctx.Err().
// Panics in fn are recovered and reported as errors.
func Async[T any, U any](ctx context.Context, param T, fn func(context.Context, T) (U, error)) *Future[U] {
	f := &Future[U]{done: make(chan struct{})}

	go func() {
		defer close(f.done)
		defer func() {
			if r := recover(); r != nil {
				var zero U
				f.result, f.err = zero, fmt.Errorf("async: panic: %v", r)
			}
		}()

		if err := ctx.Err(); err != nil {
			f.err = err
			return
		}

		f.result, f.err = fn(ctx, param)
	}()

	return f
}

// Resolved returns a Future that is already complete.
func Resolved[U any](result U, err error) *Future[U] {
	f := &Future[U]{result: result, err: err, done: make(chan struct{})}
	close(f.done)
	return f
}

// Await blocks until the future completes.
func (f *Future[U]) Await() (U, error) {
	<-f.done
	return f.result, f.err
}

// IsComplete reports whether the result is already available.
func (f *Future[U]) IsComplete() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Then calls fn with the result once the future completes, in a new
// goroutine. The returned channel is closed after fn returns.
func (f *Future[U]) Then(fn func(U, error)) <-chan struct{} {
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		<-f.done
		fn(f.result, f.err)
	}()
	return finished
}
