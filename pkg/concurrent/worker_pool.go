package concurrent

import (
	"context"
	"sync"
)

type JobFunc[T any, G any] func(job T) G

// Indexed carries the position of a job so results can be put back in submission order.
type Indexed[V any] struct {
	Pos   int
	Value V
}

// WorkerPool runs JobFunc over submitted jobs on a fixed number of goroutines.
// results arrive in completion order, use Map when submission order matters.
type WorkerPool[T any, G any] struct {
	numWorkers int
	jobQueue   chan Indexed[T]
	results    chan Indexed[G]
	wg         sync.WaitGroup
	submitted  int
}

func NewWorkerPool[T any, G any](numWorkers, jobQueueSize int) *WorkerPool[T, G] {
	if numWorkers < 1 {
		numWorkers = 1
	}
	return &WorkerPool[T, G]{
		numWorkers: numWorkers,
		jobQueue:   make(chan Indexed[T], jobQueueSize),
		results:    make(chan Indexed[G], jobQueueSize),
	}
}

func (wp *WorkerPool[T, G]) worker(ctx context.Context, jobFunc JobFunc[T, G]) {
	defer wp.wg.Done()
	for job := range wp.jobQueue {
		if ctx.Err() != nil {
			// drain so producers never block on a cancelled pool
			continue
		}
		wp.results <- Indexed[G]{Pos: job.Pos, Value: jobFunc(job.Value)}
	}
}

func (wp *WorkerPool[T, G]) Start(ctx context.Context, jobFunc JobFunc[T, G]) {
	for i := 0; i < wp.numWorkers; i++ {
		wp.wg.Add(1)
		go wp.worker(ctx, jobFunc)
	}
}

// AddJob must not be called after Close.
func (wp *WorkerPool[T, G]) AddJob(job T) {
	wp.jobQueue <- Indexed[T]{Pos: wp.submitted, Value: job}
	wp.submitted++
}

func (wp *WorkerPool[T, G]) Close() {
	close(wp.jobQueue)
}

func (wp *WorkerPool[T, G]) Wait() {
	wp.wg.Wait()
	close(wp.results)
}

func (wp *WorkerPool[T, G]) CollectResults() <-chan Indexed[G] {
	return wp.results
}

// Map applies fn to every item using numWorkers goroutines and returns the results in item order.
// if ctx is cancelled before every item is processed, Map returns ctx.Err().
func Map[T any, G any](ctx context.Context, numWorkers int, items []T, fn JobFunc[T, G]) ([]G, error) {
	out := make([]G, len(items))
	if len(items) == 0 {
		return out, ctx.Err()
	}

	wp := NewWorkerPool[T, G](min(numWorkers, len(items)), len(items))
	wp.Start(ctx, fn)
	go func() {
		for _, item := range items {
			wp.AddJob(item)
		}
		wp.Close()
		wp.Wait()
	}()

	done := 0
	for res := range wp.CollectResults() {
		out[res.Pos] = res.Value
		done++
	}

	if done != len(items) {
		return nil, ctx.Err()
	}
	return out, nil
}
