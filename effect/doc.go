// Package effect provides the construction layer of a general-purpose
// effect system for Go.
//
// # What is an effect?
//
// An effect is an immutable description of a computation that has not
// run yet: a plain value, a deferred thunk, a callback-driven operation,
// or a thread-hogging blocking call, all represented by one closed value
// model (Effect). Constructing an effect never executes it; each run is
// an independent act that re-invokes any deferred work the effect
// carries.
//
// # Construction surface
//
// Plain values and standard conversions:
//   - Succeed, SucceedLazy, Fail
//   - FromOption, FromEither, FromTry, FromFunction, FromFuture
//
// Side-effecting thunks:
//   - Attempt (faults caught onto the error channel)
//   - Total (caller asserts no fault; violation becomes a defect)
//
// Asynchronous and blocking work:
//   - Async (exactly-once resolution, interruptible via a cancel hook)
//   - AttemptBlocking, AttemptBlockingCancelable, Blocking
//
// Error narrowing:
//   - RefineToOrDie
//
// # Outcomes
//
// Running a node produces an Exit: a success value or a Cause, which is
// a typed failure, a Defect (contract violation carrying its
// construction site and stack), or interruption. Failures flow as data;
// nothing here unwinds the stack past the construction boundary.
//
// # Execution
//
// This package does not schedule anything. Execute evaluates a single
// node against an abstract Scheduler (computation pool + blocking pool)
// and hands the outcome to a resume callback exactly once. A minimal
// fiber interpreter over this primitive lives in the runtime package;
// richer combinator algebras are expected to be built the same way.
package effect
