package pipeline

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// Task is one unit of pipeline work producing a value of type T.
type Task[T any] func(ctx context.Context) (T, error)

type Result[T any] struct {
	Value T
	Err   error
}

// WorkerPool runs submitted tasks on a fixed number of goroutines. Submit
// must not be called after Close.
type WorkerPool[T any] struct {
	workers int
	tasks   chan Task[T]
	wg      sync.WaitGroup
	limiter *rate.Limiter
}

func NewWorkerPool[T any](workers, buffer int) *WorkerPool[T] {
	if workers <= 0 {
		workers = 1
	}
	if buffer < 0 {
		buffer = 0
	}
	return &WorkerPool[T]{
		workers: workers,
		tasks:   make(chan Task[T], buffer),
	}
}

// SetRateLimit caps task starts per second across all workers. Call it
// before Run; rps <= 0 removes the cap.
func (p *WorkerPool[T]) SetRateLimit(rps float64) {
	if rps <= 0 {
		p.limiter = nil
		return
	}
	p.limiter = rate.NewLimiter(rate.Limit(rps), 1)
}

// Submit blocks while the buffer is full. It returns false when ctx ends
// first.
func (p *WorkerPool[T]) Submit(ctx context.Context, t Task[T]) bool {
	if t == nil {
		return true
	}
	select {
	case p.tasks <- t:
		return true
	case <-ctx.Done():
		return false
	}
}

func (p *WorkerPool[T]) Close() {
	close(p.tasks)
}

// Run starts the workers. The returned channel is closed once every worker
// has exited, either because Close was called and the queue drained or
// because ctx ended.
func (p *WorkerPool[T]) Run(ctx context.Context) <-chan Result[T] {
	out := make(chan Result[T], p.workers)

	p.wg.Add(p.workers)
	for i := 0; i < p.workers; i++ {
		go func() {
			defer p.wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case t, ok := <-p.tasks:
					if !ok {
						return
					}
					if p.limiter != nil {
						if err := p.limiter.Wait(ctx); err != nil {
							return
						}
					}
					v, err := t(ctx)
					select {
					case <-ctx.Done():
						return
					case out <- Result[T]{Value: v, Err: err}:
					}
				}
			}
		}()
	}

	go func() {
		p.wg.Wait()
		close(out)
	}()

	return out
}
