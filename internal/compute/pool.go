package compute

import (
	"context"
	"sync"

	"github.com/OluSmartDev/3mtt-module3-miniprojects/internal/config"
	"github.com/OluSmartDev/3mtt-module3-miniprojects/pkg/logger"
	reasoncodes "github.com/OluSmartDev/3mtt-module3-miniprojects/pkg/reason_codes"
)

const poolName = "ComputePool"

type Task func() int64

type job struct {
	task   Task
	result chan<- int64
}

// Pool runs tasks on a fixed set of goroutines fed by a bounded queue.
type Pool struct {
	workers int
	logger  *logger.Logger

	mu      sync.RWMutex
	queue   chan job
	closed  bool
	started bool
	wg      sync.WaitGroup
}

func NewPool(cfg config.ComputeConfig, log *logger.Logger) *Pool {
	return &Pool{
		workers: max(cfg.Workers, 1),
		logger:  log,
		queue:   make(chan job, max(cfg.QueueSize, 0)),
	}
}

func (p *Pool) GetServiceName() string {
	return poolName
}

func (p *Pool) StartService() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.started || p.closed {
		return
	}
	p.started = true

	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.work()
	}
	p.logger.Infof("%s started %d workers", poolName, p.workers)
}

// StopService stops accepting tasks and waits for queued ones to finish.
func (p *Pool) StopService() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.queue)
	p.mu.Unlock()

	p.wg.Wait()
}

// Submit queues task and waits for its result or for ctx to end. A full queue
// or a stopped pool is reported as Unavailable right away.
func (p *Pool) Submit(ctx context.Context, task Task) (int64, error) {
	result := make(chan int64, 1)

	p.mu.RLock()
	if p.closed {
		p.mu.RUnlock()
		return 0, reasoncodes.Unavailable("compute pool is busy", nil)
	}
	select {
	case p.queue <- job{task: task, result: result}:
		p.mu.RUnlock()
	default:
		p.mu.RUnlock()
		return 0, reasoncodes.Unavailable("compute pool is busy", nil)
	}

	select {
	case r := <-result:
		return r, nil
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}

func (p *Pool) work() {
	defer p.wg.Done()
	for j := range p.queue {
		j.result <- j.task()
	}
}
