package effect

import (
	"context"

	"github.com/petomat/zio/shared/either"
	"github.com/petomat/zio/shared/future"
	"github.com/petomat/zio/shared/option"
	"github.com/petomat/zio/shared/try"
)

// Succeed lifts an already-constructed value into an effect that cannot
// fail. Eager: the value exists before the call; running the effect does
// no further work.
func Succeed[A any](value A) Effect[any, Nothing, A] {
	return Effect[any, Nothing, A]{tag: tagSucceed, op: "Succeed", value: value}
}

// SucceedLazy defers construction of a value the caller asserts cannot
// panic. The thunk runs once per run of the effect, never when the effect
// is built, and its result is not memoized across runs. A panicking thunk
// is a contract violation and surfaces as a defect.
func SucceedLazy[A any](thunk func() A) Effect[any, Nothing, A] {
	return Effect[any, Nothing, A]{tag: tagTotal, op: "SucceedLazy", total: thunk}
}

// Fail lifts an already-constructed failure value. Eager, symmetric with
// Succeed. The success type A must be supplied at the call site:
//
//	effect.Fail[int](ErrNotFound)
func Fail[A, E any](failure E) Effect[any, E, A] {
	return Effect[any, E, A]{tag: tagFail, op: "Fail", failure: failure}
}

// FromOption converts an optional value: the present case succeeds with
// the value, the empty case fails with the fixed Absent marker.
func FromOption[A any](o option.Option[A]) Effect[any, Absent, A] {
	if v, ok := o.Get(); ok {
		return Effect[any, Absent, A]{tag: tagSucceed, op: "FromOption", value: v}
	}
	return Effect[any, Absent, A]{tag: tagFail, op: "FromOption", failure: Absent{}}
}

// FromEither converts a two-branch value: the left branch fails with the
// left value, the right branch succeeds with the right value.
func FromEither[L, R any](e either.Either[L, R]) Effect[any, L, R] {
	if r, ok := e.Right(); ok {
		return Effect[any, L, R]{tag: tagSucceed, op: "FromEither", value: r}
	}
	l, _ := e.Left()
	return Effect[any, L, R]{tag: tagFail, op: "FromEither", failure: l}
}

// FromTry converts a fallible result. The failure channel is fixed to the
// catch-all error type; this conversion can produce no other error shape.
func FromTry[A any](t try.Try[A]) Effect[any, error, A] {
	if v, err := t.Get(); err == nil {
		return Effect[any, error, A]{tag: tagSucceed, op: "FromTry", value: v}
	} else {
		return Effect[any, error, A]{tag: tagFail, op: "FromTry", failure: err}
	}
}

// FromFunction lifts a pure function from an environment value. Running
// the effect requires an R and cannot fail; a panicking f is a contract
// violation and surfaces as a defect.
func FromFunction[R, A any](f func(R) A) Effect[R, Nothing, A] {
	return Effect[R, Nothing, A]{tag: tagFunc, op: "FromFunction", fn: f}
}

// FromFuture subscribes to an eventual value. The provider is invoked once
// per run with a context carrying the scheduler handle (see SchedulerFrom)
// so it knows where continuation work may run; the subscription itself
// waits on the blocking pool. There is no cancellation hook, so
// interruption is deferred until the future resolves. The failure channel
// is fixed to the catch-all error type, matching the future's own failure
// model.
func FromFuture[A any](provider func(context.Context) *future.Future[A]) Effect[any, error, A] {
	return Effect[any, error, A]{
		tag: tagAsync,
		op:  "FromFuture",
		register: func(ctx context.Context, resolve Resolve[error, A]) {
			fut := provider(ctx)
			SchedulerFrom(ctx).EnqueueBlocking(func() {
				// keep observing through an interrupt: the run must
				// still resolve once the future completes
				<-fut.Done()
				res := fut.Result()
				if res.Err != nil {
					resolve(ExitFail[error, A](res.Err))
				} else {
					resolve(ExitSucceed[error](res.Value))
				}
			})
		},
	}
}
