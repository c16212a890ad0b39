package services

import (
	"context"

	"golang.org/x/sync/semaphore"
)

// Pool runs blocking calls on a fixed number of slots so that a slow
// outbound call holds a slot, not the caller.
type Pool struct {
	sem  *semaphore.Weighted
	size int
}

func NewPool(size int) *Pool {
	if size < 1 {
		size = 1
	}
	return &Pool{sem: semaphore.NewWeighted(int64(size)), size: size}
}

func (p *Pool) Size() int { return p.size }

type result[T any] struct {
	val T
	err error
}

// Submit waits for a free slot, runs fn on it and waits for the result.
// If ctx ends first the caller gets ctx.Err(); a call that already
// started keeps its slot until it returns and its result is dropped.
func Submit[T any](ctx context.Context, p *Pool, fn func(context.Context) (T, error)) (T, error) {
	var zero T
	if err := p.sem.Acquire(ctx, 1); err != nil {
		return zero, err
	}

	done := make(chan result[T], 1)
	go func() {
		defer p.sem.Release(1)
		v, err := fn(context.WithoutCancel(ctx))
		done <- result[T]{val: v, err: err}
	}()

	select {
	case r := <-done:
		return r.val, r.err
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}
