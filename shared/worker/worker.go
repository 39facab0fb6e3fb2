// Package worker runs fire-and-forget tasks on a fixed set of goroutines fed
// by a bounded queue.
package worker

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"tourbook/config"

	"github.com/rs/zerolog/log"
)

var ErrPoolClosed = errors.New("worker pool is closed")

// Task is a unit of background work. The context carries the per task timeout.
type Task func(ctx context.Context) error

// Submitter is the intake side of a Pool.
type Submitter interface {
	Submit(name string, task Task) bool
}

type job struct {
	name string
	run  Task
}

type Options struct {
	Size        int
	QueueSize   int
	TaskTimeout time.Duration
}

type Pool struct {
	opts  Options
	queue chan job
	wg    sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

// New starts a pool sized from the WORKER_* configuration.
func New(cfg *config.Config) *Pool {
	return NewWithOptions(Options{
		Size:        cfg.Worker.PoolSize,
		QueueSize:   cfg.Worker.QueueSize,
		TaskTimeout: time.Duration(cfg.Worker.TaskTimeoutSeconds) * time.Second,
	})
}

func NewWithOptions(opts Options) *Pool {
	if opts.Size <= 0 {
		opts.Size = 1
	}

	if opts.QueueSize < 0 {
		opts.QueueSize = 0
	}

	pool := &Pool{
		opts:  opts,
		queue: make(chan job, opts.QueueSize),
	}

	pool.wg.Add(opts.Size)

	for id := range opts.Size {
		go pool.loop(id)
	}

	log.Info().
		Int("workers", opts.Size).
		Int("queue", opts.QueueSize).
		Dur("timeout", opts.TaskTimeout).
		Msg("Worker pool started")

	return pool
}

// Submit enqueues a task without blocking. It returns false when the pool is
// closed or the queue is full, in which case the task is dropped.
func (p *Pool) Submit(name string, task Task) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		log.Error().Str("task", name).Err(ErrPoolClosed).Msg("failed to submit task")

		return false
	}

	select {
	case p.queue <- job{name: name, run: task}:
		return true
	default:
		log.Error().Str("task", name).Int("queue", p.opts.QueueSize).Msg("worker queue is full, dropping task")

		return false
	}
}

// Shutdown stops intake and waits for queued tasks to finish or ctx to expire.
func (p *Pool) Shutdown(ctx context.Context) error {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.queue)
	}
	p.mu.Unlock()

	done := make(chan struct{})

	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Info().Msg("Worker pool drained")

		return nil
	case <-ctx.Done():
		return fmt.Errorf("worker pool shutdown: %w", ctx.Err())
	}
}

func (p *Pool) loop(id int) {
	defer p.wg.Done()

	for j := range p.queue {
		p.execute(id, j)
	}
}

func (p *Pool) execute(id int, j job) {
	ctx := context.Background()

	if p.opts.TaskTimeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, p.opts.TaskTimeout)
		defer cancel()
	}

	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			log.Error().
				Int("worker", id).
				Str("task", j.name).
				Interface("panic", r).
				Bytes("stack", debug.Stack()).
				Msg("task panicked")
		}
	}()

	if err := j.run(ctx); err != nil {
		log.Error().
			Err(err).
			Int("worker", id).
			Str("task", j.name).
			Dur("elapsed", time.Since(start)).
			Msg("task failed")

		return
	}

	log.Debug().Int("worker", id).Str("task", j.name).Dur("elapsed", time.Since(start)).Msg("task done")
}
