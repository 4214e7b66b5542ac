package runtime

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestComputePool_PerKeyOrdering(t *testing.T) {
	p := newComputePool(4, 8, zap.NewNop())
	defer p.shutdown(context.Background())

	var mu sync.Mutex
	var order []int
	done := make(chan struct{})

	for i := 0; i < 20; i++ {
		i := i
		last := i == 19
		p.Submit("same-key", func() {
			mu.Lock()
			order = append(order, i)
			mu.Unlock()
			if last {
				close(done)
			}
		})
	}

	select {
	case <-done:
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for submissions")
	}

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, order, 20)
	for i, v := range order {
		assert.Equal(t, i, v, "one key maps to one worker, so order is preserved")
	}
}

func TestComputePool_ShutdownDrainsQueuedWork(t *testing.T) {
	p := newComputePool(1, 16, zap.NewNop())

	var ran atomic.Int64
	for i := 0; i < 10; i++ {
		p.Submit("k", func() { ran.Add(1) })
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, p.shutdown(ctx))
	assert.Equal(t, int64(10), ran.Load())
}

func TestComputePool_SubmitAfterShutdownDropped(t *testing.T) {
	p := newComputePool(1, 1, zap.NewNop())
	require.NoError(t, p.shutdown(context.Background()))

	done := make(chan struct{})
	p.Submit("k", func() { close(done) })
	select {
	case <-done:
		t.Fatal("submission after shutdown must be dropped")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestComputePool_SubmitDuringShutdownNeverStranded(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	p := newComputePool(2, 4, zap.New(core))

	var submitted, ran atomic.Int64
	stop := make(chan struct{})
	var wg sync.WaitGroup
	for g := 0; g < 4; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
					p.Submit("k", func() { ran.Add(1) })
					submitted.Add(1)
				}
			}
		}()
	}

	time.Sleep(10 * time.Millisecond)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, p.shutdown(ctx))
	close(stop)
	wg.Wait()

	// every submission either ran before the drain finished or was
	// dropped with a warning, never silently stranded in a queue
	dropped := int64(logs.FilterMessage("compute submission after shutdown dropped").Len())
	assert.Equal(t, submitted.Load(), ran.Load()+dropped)
}

func TestComputePool_WorkerSurvivesPanickingTask(t *testing.T) {
	p := newComputePool(1, 4, zap.NewNop())
	defer p.shutdown(context.Background())

	p.Submit("k", func() { panic("rogue task") })

	done := make(chan struct{})
	p.Submit("k", func() { close(done) })
	select {
	case <-done:
	case <-time.After(1 * time.Second):
		t.Fatal("worker died with the panicking task")
	}
}

func TestBlockingPool_ActiveCountReturnsToBaseline(t *testing.T) {
	p := newBlockingPool(zap.NewNop())
	release := make(chan struct{})

	for i := 0; i < 3; i++ {
		p.Submit(func() { <-release })
	}
	assert.Eventually(t, func() bool { return p.Active() == 3 },
		time.Second, 5*time.Millisecond)

	close(release)
	assert.Eventually(t, func() bool { return p.Active() == 0 },
		time.Second, 5*time.Millisecond)
	assert.Equal(t, int64(3), p.Started())
}

func TestBlockingPool_ShutdownWaitsForHeldThreads(t *testing.T) {
	p := newBlockingPool(zap.NewNop())
	release := make(chan struct{})
	p.Submit(func() { <-release })

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, p.shutdown(ctx), ErrDrainTimeout)

	close(release)
	require.NoError(t, p.shutdown(context.Background()))
}

func TestIndexByHash_Stable(t *testing.T) {
	idx := indexByHash("fiber-123", 8)
	for i := 0; i < 10; i++ {
		assert.Equal(t, idx, indexByHash("fiber-123", 8))
	}
	assert.Equal(t, 0, indexByHash("anything", 1))
}
