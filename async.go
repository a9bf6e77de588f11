package wiredb

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/semaphore"
)

// Future is the asynchronous result of one store operation. Operations are
// dispatched to the owning DB's shared worker pool; callers may issue any
// number of them concurrently and wait on the results later.
type Future[T any] struct {
	done chan struct{}
	val  T
	err  error
}

func newFuture[T any]() *Future[T] {
	return &Future[T]{done: make(chan struct{})}
}

func (f *Future[T]) complete(val T, err error) {
	f.val, f.err = val, err
	close(f.done)
}

// Done is closed once the operation finished.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Result blocks until the operation finished.
func (f *Future[T]) Result() (T, error) {
	<-f.done
	return f.val, f.err
}

// Wait blocks until the operation finished or ctx is cancelled. The
// operation itself keeps running either way; this layer models no
// cancellation.
func (f *Future[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.val, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// workerPool bounds how many store operations run at once. There is no
// queuing per key and no ordering between tasks.
type workerPool struct {
	sem *semaphore.Weighted
}

func newWorkerPool(workers int) *workerPool {
	if workers <= 0 {
		workers = 2 * runtime.GOMAXPROCS(0)
	}
	return &workerPool{sem: semaphore.NewWeighted(int64(workers))}
}

func (p *workerPool) submit(task func()) {
	go func() {
		if err := p.sem.Acquire(context.Background(), 1); err != nil {
			panic(fmt.Errorf("wiredb: acquiring worker slot: %w", err))
		}
		defer p.sem.Release(1)
		task()
	}()
}

// dispatch runs fn on the pool and exposes its outcome as a future.
func dispatch[T any](db *DB, fn func(ctx context.Context) (T, error)) *Future[T] {
	f := newFuture[T]()
	db.pool.submit(func() {
		val, err := fn(context.Background())
		f.complete(val, err)
	})
	return f
}
