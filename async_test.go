package wiredb

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFutureResult(t *testing.T) {
	f := newFuture[int]()
	go f.complete(7, nil)
	v, err := f.Result()
	require.NoError(t, err)
	require.Equal(t, 7, v)
}

func TestFutureError(t *testing.T) {
	boom := errors.New("boom")
	f := newFuture[int]()
	f.complete(0, boom)
	_, err := f.Result()
	require.ErrorIs(t, err, boom)
}

func TestFutureWaitCancellation(t *testing.T) {
	f := newFuture[int]()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := f.Wait(ctx)
	require.ErrorIs(t, err, context.Canceled)

	// The operation still completes; Wait just stopped waiting.
	f.complete(3, nil)
	v, err := f.Wait(context.Background())
	require.NoError(t, err)
	require.Equal(t, 3, v)
}

func TestWorkerPoolBoundsConcurrency(t *testing.T) {
	pool := newWorkerPool(2)

	running := make(chan struct{}, 16)
	release := make(chan struct{})
	done := make(chan struct{}, 8)
	for i := 0; i < 8; i++ {
		pool.submit(func() {
			running <- struct{}{}
			<-release
			done <- struct{}{}
		})
	}

	// Only two tasks may be inside the critical section at once.
	<-running
	<-running
	select {
	case <-running:
		t.Fatal("third task ran concurrently")
	case <-time.After(50 * time.Millisecond):
	}

	close(release)
	for i := 0; i < 8; i++ {
		<-done
	}
}

func TestDispatchRunsOnPool(t *testing.T) {
	db := OpenMemory(Options{Workers: 1})
	defer db.Close()

	f := dispatch(db, func(ctx context.Context) (string, error) {
		return "done", nil
	})
	v, err := f.Result()
	require.NoError(t, err)
	require.Equal(t, "done", v)
}
