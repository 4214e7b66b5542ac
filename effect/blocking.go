package effect

// AttemptBlocking wraps a thunk that may hold a thread for unbounded
// time. The thunk runs on the blocking pool so it cannot starve the
// computation pool's cooperative scheduling. Faults are caught like
// Attempt's. Interruption is best-effort: without a cancellation thunk
// the run is effectively uninterruptible for the duration of the thunk,
// and an interrupt delivered mid-execution takes effect only when the
// thunk returns.
func AttemptBlocking[A any](thunk func() (A, error)) Effect[any, error, A] {
	return Effect[any, error, A]{tag: tagBlocking, op: "AttemptBlocking", attempt: guarded(thunk)}
}

// AttemptBlockingCancelable is AttemptBlocking with a cancellation thunk
// that is invoked exactly once on interruption and is expected to make
// the blocked thunk return in finite time. This is the only interruption
// mode with a completion guarantee: the dedicated thread is reclaimed
// once the cancellation takes effect and the thunk returns.
func AttemptBlockingCancelable[A any](thunk func() (A, error), cancelThunk func()) Effect[any, error, A] {
	return Effect[any, error, A]{
		tag:         tagBlocking,
		op:          "AttemptBlockingCancelable",
		attempt:     guarded(thunk),
		cancelThunk: cancelThunk,
	}
}

// Blocking relocates an already-constructed effect onto the blocking
// pool, retrofitting isolation without re-deriving the underlying node.
// The wrapped effect's own semantics are unchanged.
func Blocking[R, E, A any](eff Effect[R, E, A]) Effect[R, E, A] {
	return Effect[R, E, A]{tag: tagOnBlocking, op: "Blocking", inner: &eff}
}
