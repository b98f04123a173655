// Package worker runs tasks on a fixed number of goroutines.
package worker

import (
	"context"
	"log/slog"
	"sync"
)

// Pool executes tasks with at most size of them in flight at once. Tasks are
// started in submission order; further tasks wait for a free slot.
type Pool struct {
	size   int
	logger *slog.Logger
}

// NewPool returns a Pool running at most size tasks concurrently.
// A size below 1 is treated as 1.
func NewPool(size int, logger *slog.Logger) *Pool {
	if size < 1 {
		size = 1
	}
	return &Pool{size: size, logger: logger}
}

// Size returns the concurrency limit.
func (p *Pool) Size() int { return p.size }

type job[T any] struct {
	index int
	task  T
}

// Run executes fn for every task and returns the outputs in task order.
//
// Run fails fast: the first error cancels the context passed to tasks still
// running, queued tasks are never started, and that error is returned
// without any outputs.
func Run[T, R any](ctx context.Context, p *Pool, tasks []T, fn func(context.Context, T) (R, error)) ([]R, error) {
	results := make([]R, len(tasks))
	if len(tasks) == 0 {
		return results, nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	jobs := make(chan job[T])
	var (
		wg       sync.WaitGroup
		once     sync.Once
		firstErr error
	)

	workers := min(p.size, len(tasks))
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				out, err := fn(ctx, j.task)
				if err != nil {
					once.Do(func() {
						firstErr = err
						cancel()
					})
					continue
				}
				results[j.index] = out
			}
		}()
	}

feed:
	for i, t := range tasks {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- job[T]{index: i, task: t}:
		}
	}
	close(jobs)
	wg.Wait()

	if firstErr != nil {
		p.logger.Debug("pool aborted", "error", firstErr)
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
