package effect

import (
	"fmt"
	"runtime/debug"
)

// Nothing is the error type of effects that cannot fail. It is never
// constructed by this package; it only fixes the failure channel of
// constructors like Succeed and FromFunction.
type Nothing struct{}

func (Nothing) Error() string { return "nothing" }

// Absent is the fixed failure value of FromOption on the empty case.
// It carries no information; callers narrow it explicitly if needed.
type Absent struct{}

func (Absent) Error() string { return "no value" }

// Defect is an unrecoverable fault outside the typed failure channel:
// a contract violation such as a Total thunk panicking, or an error
// RefineToOrDie could not classify. It records the constructor that
// produced the offending node and the stack at the point of capture,
// so an unhandled defect stays diagnosable.
type Defect struct {
	// Op names the constructor whose contract was violated.
	Op string
	// Value is the recovered panic value or the unclassified error.
	Value any
	// Stack is the goroutine stack captured when the defect arose.
	Stack []byte
}

func newDefect(op string, value any) *Defect {
	return &Defect{Op: op, Value: value, Stack: debug.Stack()}
}

func (d *Defect) Error() string {
	return fmt.Sprintf("defect in %s: %v", d.Op, d.Value)
}

// Unwrap exposes the underlying error when the defect wraps one.
func (d *Defect) Unwrap() error {
	if err, ok := d.Value.(error); ok {
		return err
	}
	return nil
}

type causeKind uint8

const (
	causeFail causeKind = iota
	causeDie
	causeInterrupt
)

// Cause describes why an effect did not succeed: a typed failure, a
// defect, or interruption of the owning unit of execution.
type Cause[E any] struct {
	kind    causeKind
	failure E
	defect  *Defect
}

// Failed returns the typed failure value, if any.
func (c *Cause[E]) Failed() (E, bool) {
	return c.failure, c.kind == causeFail
}

// Died returns the defect, if any.
func (c *Cause[E]) Died() (*Defect, bool) {
	if c.kind == causeDie {
		return c.defect, true
	}
	return nil, false
}

// Interrupted reports whether the run was interrupted.
func (c *Cause[E]) Interrupted() bool { return c.kind == causeInterrupt }

func (c *Cause[E]) String() string {
	switch c.kind {
	case causeFail:
		return fmt.Sprintf("fail(%v)", c.failure)
	case causeDie:
		return fmt.Sprintf("die(%v)", c.defect)
	default:
		return "interrupt"
	}
}

// Exit is the outcome of one run of an effect: a success value or a Cause.
type Exit[E, A any] struct {
	value A
	cause *Cause[E]
}

// ExitSucceed builds a successful outcome.
func ExitSucceed[E, A any](value A) Exit[E, A] {
	return Exit[E, A]{value: value}
}

// ExitFail builds an outcome carrying a typed failure.
func ExitFail[E, A any](failure E) Exit[E, A] {
	return Exit[E, A]{cause: &Cause[E]{kind: causeFail, failure: failure}}
}

// ExitDie builds an outcome carrying a defect.
func ExitDie[E, A any](defect *Defect) Exit[E, A] {
	return Exit[E, A]{cause: &Cause[E]{kind: causeDie, defect: defect}}
}

// ExitInterrupt builds an interrupted outcome.
func ExitInterrupt[E, A any]() Exit[E, A] {
	return Exit[E, A]{cause: &Cause[E]{kind: causeInterrupt}}
}

// Succeeded reports whether the run produced a success value.
func (x Exit[E, A]) Succeeded() bool { return x.cause == nil }

// Value returns the success value; meaningful only when Succeeded.
func (x Exit[E, A]) Value() A { return x.value }

// Cause returns the failure cause, or nil on success.
func (x Exit[E, A]) Cause() *Cause[E] { return x.cause }

func (x Exit[E, A]) String() string {
	if x.cause == nil {
		return fmt.Sprintf("succeed(%v)", x.value)
	}
	return x.cause.String()
}
