package runner

import (
	"fmt"
	"sync"

	"github.com/dd0wney/cluso-align/pkg/logging"
)

// workerPool runs batch entries on a fixed set of goroutines.
type workerPool struct {
	workers int
	tasks   chan func()
	wg      sync.WaitGroup
	once    sync.Once
	mu      sync.RWMutex // guards tasks against close during Submit
	closed  bool
	logger  logging.Logger
}

func newWorkerPool(workers int, logger logging.Logger) *workerPool {
	if workers <= 0 {
		workers = 1
	}
	pool := &workerPool{
		workers: workers,
		tasks:   make(chan func(), workers*2),
		logger:  logger,
	}
	for i := 0; i < pool.workers; i++ {
		pool.wg.Add(1)
		go pool.worker()
	}
	return pool
}

func (p *workerPool) worker() {
	defer p.wg.Done()

	for task := range p.tasks {
		func() {
			defer func() {
				if r := recover(); r != nil {
					p.logger.Error("batch worker recovered from panic", logging.String("panic", fmt.Sprint(r)))
				}
			}()
			task()
		}()
	}
}

// Submit queues task. It returns false once the pool is closed.
func (p *workerPool) Submit(task func()) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return false
	}
	p.tasks <- task
	return true
}

// Close stops accepting tasks and waits for queued ones to finish.
func (p *workerPool) Close() {
	p.once.Do(func() {
		p.mu.Lock()
		p.closed = true
		close(p.tasks)
		p.mu.Unlock()
	})
	p.wg.Wait()
}
