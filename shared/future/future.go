// Package future provides a single-delivery eventual value, the source
// type of effect.FromFuture. Unlike an effect, a future is not a
// blueprint: the underlying work starts at most once and the result is
// memoized, so every observer sees the same outcome.
package future

import (
	"context"
	"fmt"
	"sync"
)

func panicToError(r any) error {
	if err, ok := r.(error); ok {
		return fmt.Errorf("recovered: %w", err)
	}
	return fmt.Errorf("recovered: %v", r)
}

// Result pairs a value with the error that prevented it.
type Result[A any] struct {
	Value A
	Err   error
}

// Future is an eventual Result. It resolves at most once; resolutions
// after the first are no-ops.
type Future[A any] struct {
	done chan struct{}
	res  Result[A]
}

// New returns an unresolved future and its resolver. The resolver may be
// called from any goroutine; only the first call takes effect.
func New[A any]() (*Future[A], func(Result[A])) {
	f := &Future[A]{done: make(chan struct{})}
	var once sync.Once
	resolve := func(r Result[A]) {
		once.Do(func() {
			f.res = r
			close(f.done)
		})
	}
	return f, resolve
}

// Go runs fn on its own goroutine and resolves the returned future with
// its outcome. A panic in fn resolves the future with an error.
func Go[A any](ctx context.Context, fn func(context.Context) (A, error)) *Future[A] {
	f, resolve := New[A]()
	go func() {
		defer func() {
			if r := recover(); r != nil {
				var zero A
				resolve(Result[A]{Value: zero, Err: panicToError(r)})
			}
		}()
		value, err := fn(ctx)
		resolve(Result[A]{Value: value, Err: err})
	}()
	return f
}

// Done is closed once the future resolves.
func (f *Future[A]) Done() <-chan struct{} { return f.done }

// Result returns the resolved outcome; meaningful only after Done.
func (f *Future[A]) Result() Result[A] { return f.res }

// Await blocks until resolution or until ctx ends.
func (f *Future[A]) Await(ctx context.Context) (Result[A], error) {
	select {
	case <-f.done:
		return f.res, nil
	case <-ctx.Done():
		var zero Result[A]
		return zero, ctx.Err()
	}
}
