// Package parallel runs batches of pixel work across a fixed worker pool.
package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Pool distributes independent pixel jobs (tile packing, row remaps) across
// a fixed set of goroutines. Each worker owns a queue and steals from the
// others when its own runs dry, which keeps edge tiles from serializing
// behind full-size ones.
//
// Thread safety: Pool is safe for concurrent use.
type Pool struct {
	workers int
	queues  []chan func()
	done    chan struct{}
	wg      sync.WaitGroup
	running atomic.Bool
}

// NewPool creates a pool with the given number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	queueSize := workers * 4
	if queueSize < 8 {
		queueSize = 8
	}

	p := &Pool{
		workers: workers,
		queues:  make([]chan func(), workers),
		done:    make(chan struct{}),
	}
	for i := range workers {
		p.queues[i] = make(chan func(), queueSize)
	}

	p.running.Store(true)
	p.wg.Add(workers)
	for i := range workers {
		go p.worker(i)
	}
	return p
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()

	queue := p.queues[id]
	for {
		select {
		case <-p.done:
			p.drain(queue)
			return
		case job := <-queue:
			if job != nil {
				job()
			}
		default:
			if stolen := p.steal(id); stolen != nil {
				stolen()
			} else {
				select {
				case <-p.done:
					p.drain(queue)
					return
				case job := <-queue:
					if job != nil {
						job()
					}
				}
			}
		}
	}
}

func (p *Pool) drain(queue chan func()) {
	for {
		select {
		case job := <-queue:
			if job != nil {
				job()
			}
		default:
			return
		}
	}
}

// steal takes a job from another worker's queue, or returns nil.
func (p *Pool) steal(myID int) func() {
	for i := range p.workers {
		if i == myID {
			continue
		}
		select {
		case job := <-p.queues[i]:
			return job
		default:
		}
	}
	return nil
}

// Run executes every job and waits for all of them to finish.
// After Close the jobs run inline on the caller.
func (p *Pool) Run(jobs []func()) {
	if len(jobs) == 0 {
		return
	}
	if !p.running.Load() {
		for _, job := range jobs {
			job()
		}
		return
	}

	var wg sync.WaitGroup
	wg.Add(len(jobs))
	for i, job := range jobs {
		fn := job
		wrapped := func() {
			defer wg.Done()
			fn()
		}
		select {
		case p.queues[i%p.workers] <- wrapped:
		case <-p.done:
			// Pool is closing, run on the caller instead
			fn()
			wg.Done()
		}
	}
	wg.Wait()
}

// ForEach runs fn(0) .. fn(n-1) across the pool and waits for completion.
// The index is the only coordination; fn must not touch shared state without
// its own synchronization.
func (p *Pool) ForEach(n int, fn func(i int)) {
	if n <= 0 {
		return
	}
	jobs := make([]func(), n)
	for i := range n {
		idx := i
		jobs[i] = func() { fn(idx) }
	}
	p.Run(jobs)
}

// Close stops the workers after the queued jobs finish.
// Safe to call multiple times; Run falls back to inline execution afterwards.
func (p *Pool) Close() {
	if !p.running.CompareAndSwap(true, false) {
		return
	}
	close(p.done)
	p.wg.Wait()
}

// Workers returns the number of workers in the pool.
func (p *Pool) Workers() int {
	return p.workers
}

// IsRunning reports whether the pool is accepting work.
func (p *Pool) IsRunning() bool {
	return p.running.Load()
}
