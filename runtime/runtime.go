// Package runtime supplies the execution resources the effect
// construction layer is written against: a bounded computation pool, an
// elastic blocking pool, and a minimal fiber interpreter with
// fork/await/interrupt. It is deliberately not a combinator algebra;
// it exists so every constructor contract has a concrete scheduler to
// hold it to.
package runtime

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/petomat/zio/effect"
)

// Runtime is the process-wide execution state: both pools plus the
// logger. Build one at startup, pass it explicitly, and Shutdown it on
// exit; nothing in this module reaches for ambient globals.
type Runtime struct {
	compute  *computePool
	blocking *blockingPool
	logger   *zap.Logger
}

// New builds a runtime from cfg. A nil logger disables logging.
func New(cfg Config, logger *zap.Logger) *Runtime {
	if logger == nil {
		logger = zap.NewNop()
	}
	cfg = cfg.withDefaults()
	rt := &Runtime{
		compute:  newComputePool(cfg.ComputeWorkers, cfg.ComputeQueueSize, logger),
		blocking: newBlockingPool(logger),
		logger:   logger,
	}
	logger.Debug("runtime started",
		zap.Int("computeWorkers", cfg.ComputeWorkers),
		zap.Int("computeQueueSize", cfg.ComputeQueueSize),
	)
	return rt
}

// Shutdown drains both pools, waiting up to ctx for in-flight work.
func (rt *Runtime) Shutdown(ctx context.Context) error {
	err := multierr.Combine(
		rt.compute.shutdown(ctx),
		rt.blocking.shutdown(ctx),
	)
	if err != nil {
		rt.logger.Warn("runtime shutdown incomplete", zap.Error(err))
		return err
	}
	rt.logger.Debug("runtime stopped")
	return nil
}

// BlockingActive is the number of blocking-pool threads currently held.
// Exposed so callers can verify thread reclamation after cancellation.
func (rt *Runtime) BlockingActive() int64 { return rt.blocking.Active() }

// BlockingStarted is the total number of blocking-pool submissions.
func (rt *Runtime) BlockingStarted() int64 { return rt.blocking.Started() }

// fiberScheduler routes one fiber's work: compute steps go to the worker
// queue owned by the fiber id, blocking steps to the elastic pool.
type fiberScheduler struct {
	rt  *Runtime
	key string
}

func (s fiberScheduler) EnqueueCompute(task func())  { s.rt.compute.Submit(s.key, task) }
func (s fiberScheduler) EnqueueBlocking(task func()) { s.rt.blocking.Submit(task) }

// Fork starts one run of eff on the computation pool and returns its
// fiber without waiting. Interruption is delivered through the fiber,
// not through ctx; cancelling ctx does not interrupt a forked fiber.
func Fork[R, E, A any](rt *Runtime, env R, eff effect.Effect[R, E, A]) *Fiber[E, A] {
	runCtx, cancel := context.WithCancel(context.Background())
	f := &Fiber[E, A]{
		ID:     uuid.NewString(),
		done:   make(chan struct{}),
		cancel: cancel,
		logger: rt.logger,
	}
	sched := fiberScheduler{rt: rt, key: f.ID}
	rt.compute.Submit(f.ID, func() {
		f.state.CompareAndSwap(int32(StatePending), int32(StateRunning))
		effect.Execute(runCtx, sched, env, eff, f.complete)
	})
	rt.logger.Debug("fiber forked", zap.String("fiberId", f.ID), zap.String("op", eff.Op()))
	return f
}

// Run is Fork followed by Await: one synchronous run of eff. ctx bounds
// only the wait; to cancel the run itself, use Fork and Interrupt.
func Run[R, E, A any](ctx context.Context, rt *Runtime, env R, eff effect.Effect[R, E, A]) (effect.Exit[E, A], error) {
	return Fork(rt, env, eff).Await(ctx)
}
