package effect

import (
	"context"
	"sync/atomic"
)

// Async bridges a callback-driven operation into a suspending effect.
//
// register is invoked exactly once per run, synchronously, and must
// arrange for resolve to be called with the outcome. The bridge does not
// trust the external API to be idempotent: each run owns a fresh atomic
// guard, so only the first resolve invocation determines the outcome and
// later ones are no-ops. A panic inside register resolves the run
// immediately as a defect. If resolve is never called the effect never
// completes; it stays interruptible while pending.
//
// An optional cancellation hook makes the pending effect interruptible:
// on interruption the hook runs exactly once, after which any late
// resolve is suppressed. Without a hook, interruption is deferred until
// resolution.
//
// Usage:
//
//	var op *client.Operation
//	eff := effect.Async[error, []byte](func(ctx context.Context, resolve effect.Resolve[error, []byte]) {
//		op = client.Fetch(key, func(b []byte, err error) {
//			if err != nil {
//				resolve(effect.ExitFail[error, []byte](err))
//				return
//			}
//			resolve(effect.ExitSucceed[error](b))
//		})
//	}, func() { op.Cancel() })
func Async[E, A any](
	register func(ctx context.Context, resolve Resolve[E, A]),
	cancelHook ...func(),
) Effect[any, E, A] {
	return Effect[any, E, A]{
		tag:        tagAsync,
		op:         "Async",
		register:   register,
		cancelHook: normalizeHook(cancelHook),
	}
}

// completion is the per-run resolution guard shared by the asynchronous
// bridge and the blocking dispatcher. One instance per run, never shared
// across concurrent runs of the same call site.
type completion[E, A any] struct {
	resolved atomic.Bool
	deferred atomic.Bool
	resume   Resolve[E, A]
}

func newCompletion[E, A any](resume Resolve[E, A]) *completion[E, A] {
	return &completion[E, A]{resume: resume}
}

// tryResolve delivers the outcome if this run is still unresolved.
// A deferred interruption overrides the outcome at this point.
func (c *completion[E, A]) tryResolve(x Exit[E, A]) bool {
	if !c.resolved.CompareAndSwap(false, true) {
		return false
	}
	if c.deferred.Load() {
		c.resume(ExitInterrupt[E, A]())
		return true
	}
	c.resume(x)
	return true
}

// tryInterrupt resolves the run as interrupted, running hook first when
// one is supplied. The guard makes the hook run at most once and makes
// any later resolve invocation unobservable.
func (c *completion[E, A]) tryInterrupt(hook func()) bool {
	if !c.resolved.CompareAndSwap(false, true) {
		return false
	}
	if hook != nil {
		hook()
	}
	c.resume(ExitInterrupt[E, A]())
	return true
}

// deferInterrupt records an interruption that takes effect only once the
// run resolves, for nodes that are uninterruptible while pending.
func (c *completion[E, A]) deferInterrupt() { c.deferred.Store(true) }
