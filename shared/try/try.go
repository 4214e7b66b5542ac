// Package try provides a fallible result, the source type of
// effect.FromTry. Failures are always plain errors; a Try can carry no
// other error shape.
package try

import "fmt"

// Try holds either a value or the error that prevented it.
type Try[A any] struct {
	value A
	err   error
}

// Succeed wraps a value.
func Succeed[A any](value A) Try[A] {
	return Try[A]{value: value}
}

// Fail wraps an error.
func Fail[A any](err error) Try[A] {
	return Try[A]{err: err}
}

// Of runs fn immediately and captures its outcome, converting a panic
// into an error so no fault escapes.
func Of[A any](fn func() (A, error)) (t Try[A]) {
	defer func() {
		if r := recover(); r != nil {
			t = Fail[A](fmt.Errorf("recovered: %v", r))
		}
	}()
	value, err := fn()
	if err != nil {
		return Fail[A](err)
	}
	return Succeed(value)
}

func (t Try[A]) IsSuccess() bool { return t.err == nil }
func (t Try[A]) IsFailure() bool { return t.err != nil }

// Get returns the value or the error.
func (t Try[A]) Get() (A, error) {
	return t.value, t.err
}
