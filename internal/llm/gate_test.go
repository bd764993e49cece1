package llm

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingClient struct {
	inFlight int32
	peak     int32
}

func (c *countingClient) Complete(ctx context.Context, prompt string) (string, error) {
	n := atomic.AddInt32(&c.inFlight, 1)
	for {
		peak := atomic.LoadInt32(&c.peak)
		if n <= peak || atomic.CompareAndSwapInt32(&c.peak, peak, n) {
			break
		}
	}
	time.Sleep(10 * time.Millisecond)
	atomic.AddInt32(&c.inFlight, -1)
	return "ok", nil
}

func TestGate_BoundsConcurrency(t *testing.T) {
	inner := &countingClient{}
	gate := NewGate(inner, 2)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			out, err := gate.Complete(context.Background(), "prompt")
			assert.NoError(t, err)
			assert.Equal(t, "ok", out)
		}()
	}
	wg.Wait()

	assert.LessOrEqual(t, atomic.LoadInt32(&inner.peak), int32(2))
}

func TestGate_CancelledWhileWaiting(t *testing.T) {
	gate := NewGate(&countingClient{}, 1)

	release := make(chan struct{})
	go func() {
		gate.sem <- struct{}{}
		<-release
		<-gate.sem
	}()

	// Give the holder goroutine time to take the only slot.
	require.Eventually(t, func() bool { return len(gate.sem) == 1 }, time.Second, time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := gate.Complete(ctx, "prompt")
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	close(release)
}

func TestNewGate_MinimumOneSlot(t *testing.T) {
	gate := NewGate(&countingClient{}, 0)
	out, err := gate.Complete(context.Background(), "prompt")
	assert.NoError(t, err)
	assert.Equal(t, "ok", out)
}
