package services

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmit_ReturnsResult(t *testing.T) {
	p := NewPool(2)

	got, err := Submit(context.Background(), p, func(context.Context) (int, error) { return 42, nil })
	require.NoError(t, err)
	assert.Equal(t, 42, got)

	boom := errors.New("boom")
	_, err = Submit(context.Background(), p, func(context.Context) (int, error) { return 0, boom })
	assert.ErrorIs(t, err, boom)
}

func TestSubmit_BoundsConcurrency(t *testing.T) {
	p := NewPool(5)

	var inFlight, peak, done int32
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := Submit(context.Background(), p, func(context.Context) (struct{}, error) {
				n := atomic.AddInt32(&inFlight, 1)
				for {
					old := atomic.LoadInt32(&peak)
					if n <= old || atomic.CompareAndSwapInt32(&peak, old, n) {
						break
					}
				}
				time.Sleep(30 * time.Millisecond)
				atomic.AddInt32(&inFlight, -1)
				return struct{}{}, nil
			})
			if err == nil {
				atomic.AddInt32(&done, 1)
			}
		}()
	}
	wg.Wait()

	assert.LessOrEqual(t, atomic.LoadInt32(&peak), int32(5))
	assert.EqualValues(t, 10, atomic.LoadInt32(&done))
}

func TestSubmit_CancelWhileWaitingForSlot(t *testing.T) {
	p := NewPool(1)
	release := make(chan struct{})

	go Submit(context.Background(), p, func(context.Context) (int, error) {
		<-release
		return 0, nil
	})
	// let the first call take the only slot
	time.Sleep(20 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	var ran int32
	_, err := Submit(ctx, p, func(context.Context) (int, error) {
		atomic.StoreInt32(&ran, 1)
		return 0, nil
	})
	close(release)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Zero(t, atomic.LoadInt32(&ran))
}

func TestSubmit_AbandonedCallStillCompletes(t *testing.T) {
	p := NewPool(1)
	ctx, cancel := context.WithCancel(context.Background())

	finished := make(chan struct{})
	started := make(chan struct{})
	go func() {
		<-started
		cancel()
	}()

	_, err := Submit(ctx, p, func(inner context.Context) (int, error) {
		close(started)
		time.Sleep(20 * time.Millisecond)
		assert.NoError(t, inner.Err())
		close(finished)
		return 1, nil
	})
	assert.ErrorIs(t, err, context.Canceled)

	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("abandoned call did not complete")
	}

	// the slot is released once the call returns
	got, err := Submit(context.Background(), p, func(context.Context) (int, error) { return 7, nil })
	require.NoError(t, err)
	assert.Equal(t, 7, got)
}
