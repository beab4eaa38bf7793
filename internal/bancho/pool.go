package bancho

import (
	"log/slog"
	"sync"
)

// defaultPoolWorkers bounds the goroutines running threaded event and task
// callbacks.
const defaultPoolWorkers = 10

// WorkerPool runs user callbacks marked "threaded" on a fixed number of
// workers. Panics are logged and never reach the driver loop.
type WorkerPool struct {
	jobs      chan func()
	wg        sync.WaitGroup
	closeOnce sync.Once
	logger    *slog.Logger
}

// NewWorkerPool starts size workers. A size of zero or less falls back to
// the default.
func NewWorkerPool(size int, logger *slog.Logger) *WorkerPool {
	if size <= 0 {
		size = defaultPoolWorkers
	}
	if logger == nil {
		logger = slog.Default()
	}

	p := &WorkerPool{
		jobs:   make(chan func(), size*4),
		logger: logger,
	}
	p.wg.Add(size)
	for i := 0; i < size; i++ {
		go p.worker()
	}
	return p
}

func (p *WorkerPool) worker() {
	defer p.wg.Done()
	for job := range p.jobs {
		p.run(job)
	}
}

func (p *WorkerPool) run(job func()) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("panic in threaded callback", "panic", r)
		}
	}()
	job()
}

// Submit schedules a callback. Blocks while the pool is saturated; callers
// never observe failures.
func (p *WorkerPool) Submit(job func()) {
	defer func() {
		// Submitting after Close loses the job instead of crashing.
		if recover() != nil {
			p.logger.Warn("callback submitted after pool shutdown")
		}
	}()
	p.jobs <- job
}

// Close stops accepting jobs and waits for in-flight callbacks.
func (p *WorkerPool) Close() {
	p.closeOnce.Do(func() {
		close(p.jobs)
	})
	p.wg.Wait()
}
