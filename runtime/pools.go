package runtime

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"
	"go.uber.org/zap"
)

// ErrDrainTimeout reports that a pool did not drain before its shutdown
// context ended.
var ErrDrainTimeout = errors.New("pool drain timed out")

// computePool is the bounded resource for cooperative work. Each worker
// owns one submission queue; submissions are dispatched by hash of their
// key, so all steps of one fiber land on the same worker in order.
type computePool struct {
	ctx    context.Context
	cancel context.CancelFunc
	mu     sync.RWMutex // closed vs. in-flight Submit
	closed bool
	queues []chan func()
	wg     sync.WaitGroup
	logger *zap.Logger
}

func newComputePool(workers, queueSize int, logger *zap.Logger) *computePool {
	ctx, cancel := context.WithCancel(context.Background())
	p := &computePool{
		ctx:    ctx,
		cancel: cancel,
		queues: make([]chan func(), workers),
		logger: logger,
	}
	ready := sync.WaitGroup{}
	for i := 0; i < workers; i++ {
		ready.Add(1)
		p.wg.Add(1)
		ch := make(chan func(), queueSize)
		go p.worker(ch, &ready)
		p.queues[i] = ch
	}
	ready.Wait()
	return p
}

func (p *computePool) worker(ch chan func(), ready *sync.WaitGroup) {
	defer p.wg.Done()
	ready.Done()
	for {
		select {
		case task := <-ch:
			p.run(task)
		case <-p.ctx.Done():
			// drain what was already queued, then exit
			for {
				select {
				case task := <-ch:
					p.run(task)
				default:
					return
				}
			}
		}
	}
}

func (p *computePool) run(task func()) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("compute task panicked", zap.Any("panic", r), zap.Stack("stack"))
		}
	}()
	task()
}

// Submit enqueues a task on the worker owned by key. Dropped when the
// pool is already shut down.
func (p *computePool) Submit(key string, task func()) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		p.logger.Warn("compute submission after shutdown dropped")
		return
	}
	p.queues[indexByHash(key, len(p.queues))] <- task
}

func (p *computePool) shutdown(ctx context.Context) error {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()
	p.cancel()
	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ErrDrainTimeout
	}
}

func indexByHash(key string, numQueues int) int {
	if numQueues == 1 {
		return 0
	}
	return int(xxhash.Sum64String(key) % uint64(numQueues))
}

// blockingPool is the elastic resource for thunks that may hold a thread
// for unbounded time: one goroutine per submission, with active-thread
// accounting so callers can observe reclamation.
type blockingPool struct {
	mu      sync.RWMutex // closed vs. in-flight Submit
	closed  bool
	wg      sync.WaitGroup
	active  atomic.Int64
	started atomic.Int64
	logger  *zap.Logger
}

func newBlockingPool(logger *zap.Logger) *blockingPool {
	return &blockingPool{logger: logger}
}

// Submit runs the task on a dedicated goroutine. Dropped when the pool
// is already shut down.
func (p *blockingPool) Submit(task func()) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		p.logger.Warn("blocking submission after shutdown dropped")
		return
	}
	p.wg.Add(1)
	p.started.Add(1)
	p.active.Add(1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				p.logger.Error("blocking task panicked", zap.Any("panic", r), zap.Stack("stack"))
			}
			p.active.Add(-1)
			p.wg.Done()
		}()
		task()
	}()
}

// Active is the number of blocking threads currently held.
func (p *blockingPool) Active() int64 { return p.active.Load() }

// Started is the total number of blocking submissions accepted.
func (p *blockingPool) Started() int64 { return p.started.Load() }

func (p *blockingPool) shutdown(ctx context.Context) error {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()
	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ErrDrainTimeout
	}
}
