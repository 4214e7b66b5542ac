package runtime

import (
	"context"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/petomat/zio/effect"
)

// State is a fiber's position in its lifecycle. The three end states are
// terminal; Interrupted is reachable only from Pending or Running.
type State int32

const (
	StatePending State = iota
	StateRunning
	StateCompleted
	StateFailed
	StateInterrupted
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateRunning:
		return "running"
	case StateCompleted:
		return "completed"
	case StateFailed:
		return "failed"
	case StateInterrupted:
		return "interrupted"
	default:
		return "unknown"
	}
}

// Terminal reports whether s is an end state.
func (s State) Terminal() bool { return s >= StateCompleted }

// Fiber is one unit of execution: a single run of a single effect node.
// It owns its run's interruption signal and exposes the outcome once the
// run resolves.
type Fiber[E, A any] struct {
	// ID identifies the fiber in logs and keys its compute queue.
	ID string

	state  atomic.Int32
	done   chan struct{}
	exit   effect.Exit[E, A]
	cancel context.CancelFunc
	logger *zap.Logger
}

// State returns the fiber's current lifecycle state.
func (f *Fiber[E, A]) State() State { return State(f.state.Load()) }

// Interrupt delivers the cooperative cancellation signal. Whether and
// when it takes effect depends on the node being run: see the effect
// package's constructor contracts. Safe to call more than once.
func (f *Fiber[E, A]) Interrupt() { f.cancel() }

// Await blocks until the fiber resolves or ctx ends. A fiber pending on
// an uninterruptible suspension may never resolve; bound the wait with
// ctx.
func (f *Fiber[E, A]) Await(ctx context.Context) (effect.Exit[E, A], error) {
	select {
	case <-f.done:
		return f.exit, nil
	case <-ctx.Done():
		var zero effect.Exit[E, A]
		return zero, ctx.Err()
	}
}

// Done is closed once the fiber resolves.
func (f *Fiber[E, A]) Done() <-chan struct{} { return f.done }

// complete records the outcome and moves to the matching terminal state.
// Execute guarantees it is invoked exactly once per run.
func (f *Fiber[E, A]) complete(x effect.Exit[E, A]) {
	f.exit = x
	f.state.Store(int32(terminalFor(x)))
	f.cancel()
	close(f.done)

	if cause := x.Cause(); cause != nil {
		if defect, ok := cause.Died(); ok {
			f.logger.Error("fiber died",
				zap.String("fiberId", f.ID),
				zap.String("op", defect.Op),
				zap.Any("defect", defect.Value),
				zap.ByteString("defectStack", defect.Stack),
			)
			return
		}
	}
	f.logger.Debug("fiber resolved",
		zap.String("fiberId", f.ID),
		zap.Stringer("state", State(f.state.Load())),
	)
}

func terminalFor[E, A any](x effect.Exit[E, A]) State {
	cause := x.Cause()
	switch {
	case cause == nil:
		return StateCompleted
	case cause.Interrupted():
		return StateInterrupted
	default:
		return StateFailed
	}
}
