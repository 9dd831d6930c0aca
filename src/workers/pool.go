package workers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
)

var (
	ErrPoolNotStarted = errors.New("workers: pool not started")
	ErrPoolStopped    = errors.New("workers: pool stopped")
)

// Task is a unit of blocking work executed by a pool worker.
type Task func(ctx context.Context) error

type job struct {
	ctx  context.Context
	fn   Task
	done chan error
}

// Pool runs blocking provider calls on a fixed number of goroutines.
// Submissions hand off over an unbuffered channel, so callers beyond the
// worker count wait in line without a queue limit.
type Pool struct {
	jobs        chan job
	workerCount int
	wg          sync.WaitGroup
	stopChan    chan struct{}
	started     atomic.Bool
	stopOnce    sync.Once
	active      atomic.Int32
	logger      *slog.Logger
}

// NewPool creates a pool with workerCount workers. Call Start before Do.
func NewPool(workerCount int, logger *slog.Logger) *Pool {
	if workerCount <= 0 {
		workerCount = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Pool{
		jobs:        make(chan job),
		workerCount: workerCount,
		stopChan:    make(chan struct{}),
		logger:      logger,
	}
}

// Start launches the workers. Repeated calls are no-ops.
func (p *Pool) Start() {
	if !p.started.CompareAndSwap(false, true) {
		return
	}
	p.logger.Info("worker pool started", "workers", p.workerCount)
	for i := 0; i < p.workerCount; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}
}

// Stop signals the workers to exit and waits for in-flight tasks to finish.
func (p *Pool) Stop() {
	p.stopOnce.Do(func() {
		close(p.stopChan)
		p.wg.Wait()
		p.logger.Info("worker pool stopped")
	})
}

// Size returns the number of workers.
func (p *Pool) Size() int {
	return p.workerCount
}

// Active returns how many tasks are executing right now.
func (p *Pool) Active() int {
	return int(p.active.Load())
}

// Do runs fn on a worker and blocks until it returns. ctx bounds both the
// wait for a free worker and the wait for the result; fn receives ctx too.
func (p *Pool) Do(ctx context.Context, fn Task) error {
	if !p.started.Load() {
		return ErrPoolNotStarted
	}

	j := job{ctx: ctx, fn: fn, done: make(chan error, 1)}
	select {
	case p.jobs <- j:
	case <-ctx.Done():
		return ctx.Err()
	case <-p.stopChan:
		return ErrPoolStopped
	}

	select {
	case err := <-j.done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Submit runs fn on the pool and returns its value.
func Submit[T any](ctx context.Context, p *Pool, fn func(ctx context.Context) (T, error)) (T, error) {
	var out T
	err := p.Do(ctx, func(ctx context.Context) error {
		v, err := fn(ctx)
		out = v
		return err
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()
	p.logger.Debug("worker ready", "worker", id)
	for {
		select {
		case j := <-p.jobs:
			j.done <- p.run(id, j)
		case <-p.stopChan:
			return
		}
	}
}

func (p *Pool) run(id int, j job) (err error) {
	p.active.Add(1)
	defer p.active.Add(-1)
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("worker task panicked", "worker", id, "panic", r)
			err = fmt.Errorf("workers: task panicked: %v", r)
		}
	}()
	return j.fn(j.ctx)
}
