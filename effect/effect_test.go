package effect_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/petomat/zio/effect"
)

// recordingScheduler counts which pool each task landed on. Compute runs
// inline, blocking on its own goroutine, mirroring the real pools closely
// enough for routing assertions.
type recordingScheduler struct {
	compute  atomic.Int64
	blocking atomic.Int64
}

func (s *recordingScheduler) EnqueueCompute(task func()) {
	s.compute.Add(1)
	task()
}

func (s *recordingScheduler) EnqueueBlocking(task func()) {
	s.blocking.Add(1)
	go task()
}

func runOn[E, A any](t *testing.T, sched effect.Scheduler, eff effect.Effect[any, E, A]) effect.Exit[E, A] {
	t.Helper()
	ch := make(chan effect.Exit[E, A], 1)
	effect.Execute(context.Background(), sched, nil, eff, func(x effect.Exit[E, A]) {
		ch <- x
	})
	select {
	case x := <-ch:
		return x
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for effect outcome")
		panic("unreachable")
	}
}

func run[E, A any](t *testing.T, eff effect.Effect[any, E, A]) effect.Exit[E, A] {
	t.Helper()
	return runOn(t, &recordingScheduler{}, eff)
}
