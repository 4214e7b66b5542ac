package effect

import "context"

// Scheduler is the execution resource abstraction an interpreter
// supplies: a bounded computation pool for cooperative work and an
// elastic blocking pool for thunks that may hold a thread indefinitely.
// Execute never runs a Blocking node anywhere but EnqueueBlocking.
type Scheduler interface {
	EnqueueCompute(task func())
	EnqueueBlocking(task func())
}

type schedulerKey struct{}

// WithScheduler binds a scheduler handle into the context. Execute does
// this for the context it hands to Async registrations and FromFuture
// providers.
func WithScheduler(ctx context.Context, sched Scheduler) context.Context {
	return context.WithValue(ctx, schedulerKey{}, sched)
}

// SchedulerFrom returns the scheduler bound into ctx. When none is bound
// it falls back to running every task on its own goroutine, so effects
// remain runnable outside an interpreter.
func SchedulerFrom(ctx context.Context) Scheduler {
	if sched, ok := ctx.Value(schedulerKey{}).(Scheduler); ok {
		return sched
	}
	return goroutineScheduler{}
}

type goroutineScheduler struct{}

func (goroutineScheduler) EnqueueCompute(task func())  { go task() }
func (goroutineScheduler) EnqueueBlocking(task func()) { go task() }

// Execute runs one effect node and delivers its outcome to resume exactly
// once. It is the single dispatch point over the closed variant set; the
// out-of-scope combinator algebra and fiber runtime are written against
// this primitive.
//
// Interruption is delivered by cancelling ctx. Deferred thunks observe it
// only immediately before or after they run; Async and cancelable
// Blocking nodes observe it at their suspension point. resume may be
// invoked on the caller's goroutine, a pool worker, or the registrant's
// callback goroutine.
func Execute[R, E, A any](
	ctx context.Context,
	sched Scheduler,
	env R,
	eff Effect[R, E, A],
	resume Resolve[E, A],
) {
	if ctx.Err() != nil {
		resume(ExitInterrupt[E, A]())
		return
	}

	switch eff.tag {
	case tagSucceed:
		resume(ExitSucceed[E](eff.value))

	case tagFail:
		resume(ExitFail[E, A](eff.failure))

	case tagTotal:
		value, defect := runTotal(eff.op, eff.total)
		resume(settle[E](ctx, value, defect))

	case tagFunc:
		value, defect := runTotal(eff.op, func() A { return eff.fn(env) })
		resume(settle[E](ctx, value, defect))

	case tagAttempt:
		value, err, ok := eff.attempt()
		if ctx.Err() != nil {
			resume(ExitInterrupt[E, A]())
		} else if ok {
			resume(ExitSucceed[E](value))
		} else {
			resume(ExitFail[E, A](err))
		}

	case tagAsync:
		runAsync(ctx, sched, eff, resume)

	case tagBlocking:
		runBlocking(ctx, sched, eff, resume)

	case tagRefine:
		Execute(ctx, sched, env, *eff.refined, func(x Exit[error, A]) {
			resume(refineExit(eff.op, eff.classify, x))
		})

	case tagOnBlocking:
		inner := *eff.inner
		sched.EnqueueBlocking(func() {
			Execute(ctx, sched, env, inner, resume)
		})

	default:
		resume(ExitDie[E, A](newDefect("Effect", "effect built outside its constructor set")))
	}
}

// runTotal invokes a thunk whose caller asserted it cannot panic; a panic
// is a contract violation and comes back as a defect.
func runTotal[A any](op string, thunk func() A) (value A, defect *Defect) {
	defer func() {
		if r := recover(); r != nil {
			defect = newDefect(op, r)
		}
	}()
	value = thunk()
	return value, nil
}

func settle[E, A any](ctx context.Context, value A, defect *Defect) Exit[E, A] {
	switch {
	case ctx.Err() != nil:
		return ExitInterrupt[E, A]()
	case defect != nil:
		return ExitDie[E, A](defect)
	default:
		return ExitSucceed[E](value)
	}
}

// runAsync invokes the registration exactly once and arbitrates all
// later resolutions through a per-run guard. While pending, no pool
// thread is occupied: the interruption watch rides on context.AfterFunc.
func runAsync[R, E, A any](
	ctx context.Context,
	sched Scheduler,
	eff Effect[R, E, A],
	resume Resolve[E, A],
) {
	c := newCompletion(resume)
	stop := context.AfterFunc(ctx, func() {
		if eff.cancelHook != nil {
			c.tryInterrupt(eff.cancelHook)
		} else {
			c.deferInterrupt()
		}
	})

	resolve := func(x Exit[E, A]) {
		if c.tryResolve(x) {
			stop()
		}
	}

	func() {
		defer func() {
			if r := recover(); r != nil {
				if c.tryResolve(ExitDie[E, A](newDefect(eff.op, r))) {
					stop()
				}
			}
		}()
		eff.register(WithScheduler(ctx, sched), resolve)
	}()
}

// runBlocking submits the thunk to the blocking pool. With a cancellation
// thunk, interruption runs it exactly once and resolves as interrupted;
// without one, interruption is deferred until the thunk returns. Either
// way the pool thread is released when the thunk returns.
func runBlocking[R, E, A any](
	ctx context.Context,
	sched Scheduler,
	eff Effect[R, E, A],
	resume Resolve[E, A],
) {
	c := newCompletion(resume)
	stop := context.AfterFunc(ctx, func() {
		if eff.cancelThunk != nil {
			c.tryInterrupt(eff.cancelThunk)
		} else {
			c.deferInterrupt()
		}
	})

	sched.EnqueueBlocking(func() {
		value, err, ok := eff.attempt()
		var x Exit[E, A]
		if ok {
			x = ExitSucceed[E](value)
		} else {
			x = ExitFail[E, A](err)
		}
		if c.tryResolve(x) {
			stop()
		}
	})
}

func refineExit[E, A any](op string, classify func(error) (E, bool), x Exit[error, A]) Exit[E, A] {
	cause := x.Cause()
	if cause == nil {
		return ExitSucceed[E](x.Value())
	}
	if cause.Interrupted() {
		return ExitInterrupt[E, A]()
	}
	if defect, ok := cause.Died(); ok {
		return ExitDie[E, A](defect)
	}
	err, _ := cause.Failed()
	if narrowed, ok := classify(err); ok {
		return ExitFail[E, A](narrowed)
	}
	return ExitDie[E, A](newDefect(op, err))
}
