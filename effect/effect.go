package effect

import "context"

type tag uint8

const (
	// the zero value is deliberately not a valid effect
	tagInvalid tag = iota
	tagSucceed
	tagFail
	tagTotal
	tagAttempt
	tagFunc
	tagAsync
	tagBlocking
	tagRefine
	tagOnBlocking
)

// Resolve delivers the outcome of an asynchronous registration. The first
// invocation per run is authoritative; later invocations are no-ops.
type Resolve[E, A any] func(Exit[E, A])

// Effect is an immutable description of a deferred computation with
// environment type R, failure type E and success type A. Constructing an
// effect never executes it; each run is an independent act and re-invokes
// any deferred thunk it carries. Effects are plain values: they hold no
// mutable state and may be run any number of times, concurrently.
//
// The variant set is closed. Execute dispatches on it; adding a new shape
// means adding a tag and one dispatch case.
type Effect[R, E, A any] struct {
	tag tag
	op  string

	value   A                   // tagSucceed
	failure E                   // tagFail
	total   func() A            // tagTotal
	attempt func() (A, E, bool) // tagAttempt, tagBlocking
	fn      func(R) A           // tagFunc

	register   func(ctx context.Context, resolve Resolve[E, A]) // tagAsync
	cancelHook func()                                           // tagAsync, optional

	cancelThunk func() // tagBlocking, optional

	refined  *Effect[R, error, A]  // tagRefine
	classify func(error) (E, bool) // tagRefine

	inner *Effect[R, E, A] // tagOnBlocking
}

// Op names the constructor that produced this effect.
func (e Effect[R, E, A]) Op() string { return e.op }

// normalizeHook flattens an optional cancellation hook.
//
// Accepts either 0 or 1 hooks. Panics if more than one is passed.
func normalizeHook(hooks []func()) func() {
	switch len(hooks) {
	case 0:
		return nil
	case 1:
		return hooks[0]
	default:
		panic("normalizeHook: only one or zero cancellation hooks allowed")
	}
}
