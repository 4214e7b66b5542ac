package effect

import "fmt"

// PanicError is the typed failure produced when an Attempt-family thunk
// panics instead of returning an error.
type PanicError struct {
	Value any
}

func (p *PanicError) Error() string { return fmt.Sprintf("panic: %v", p.Value) }

func (p *PanicError) Unwrap() error {
	if err, ok := p.Value.(error); ok {
		return err
	}
	return nil
}

// guarded wraps a fallible thunk so that no fault escapes uncaught: a
// returned error and a recovered panic both land on the error channel.
func guarded[A any](thunk func() (A, error)) func() (A, error, bool) {
	return func() (value A, err error, ok bool) {
		defer func() {
			if r := recover(); r != nil {
				err, ok = &PanicError{Value: r}, false
			}
		}()
		value, err = thunk()
		return value, err, err == nil
	}
}

// Attempt wraps an arbitrary side-effecting thunk, the universal on-ramp
// for foreign code. The thunk runs once per run of the effect; a returned
// error becomes a typed failure and a panic is caught onto the same
// channel as a *PanicError. No fault escapes uncaught.
//
// Usage:
//
//	eff := effect.Attempt(func() ([]byte, error) {
//		return os.ReadFile(path)
//	})
func Attempt[A any](thunk func() (A, error)) Effect[any, error, A] {
	return Effect[any, error, A]{tag: tagAttempt, op: "Attempt", attempt: guarded(thunk)}
}

// Total wraps a side-effecting thunk the caller asserts cannot panic. If
// it panics anyway that is a contract violation: the fault becomes a
// defect carrying the construction site and stack, never a typed failure
// and never silently swallowed.
func Total[A any](thunk func() A) Effect[any, Nothing, A] {
	return Effect[any, Nothing, A]{tag: tagTotal, op: "Total", total: thunk}
}
