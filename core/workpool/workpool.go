// Package workpool implements a bounded pool of worker goroutines that
// supports enqueuing new work from inside a running task without deadlock.
// The Segmenter's recursive split/extend descent is the pool's main tenant:
// a task splits an interval in two, submits both halves back to the pool,
// and blocks on their completion handles until both return.
package workpool

import "sync"

// Task is a unit of work; workerID identifies the worker goroutine running
// it, or -1 when it runs inline inside a Wait call instead of on its own
// worker goroutine (see Handle.Wait).
type Task func(workerID int)

type queued struct {
	fn     Task
	handle *Handle
}

// Handle is returned by Submit and SubmitFromWorker; Wait blocks until the
// task has run to completion.
type Handle struct {
	pool *Pool
	done bool
}

// Wait blocks until the task behind this handle completes. While waiting it
// helps drain the pool's queue instead of idling, so a worker that is itself
// blocked on the completion of tasks it just enqueued still makes progress:
// the pool cannot deadlock even if every worker is simultaneously waiting on
// its own children, because each Wait call is itself a source of execution
// capacity.
func (h *Handle) Wait() {
	p := h.pool
	p.mu.Lock()
	for !h.done {
		if len(p.queue) == 0 {
			p.cond.Wait()
			continue
		}
		item := p.dequeueLocked()
		p.mu.Unlock()
		item.fn(-1)
		p.mu.Lock()
		p.outstanding--
		if item.handle != nil {
			item.handle.done = true
		}
		p.cond.Broadcast()
	}
	p.mu.Unlock()
}

// Pool is a fixed-size worker pool with a single mutex guarding its task
// queue and outstanding-task counter, matching the locking discipline of a
// single shared queue: no per-worker channel, so submission from any
// goroutine (including a running task) is just an append under the lock.
type Pool struct {
	mu           sync.Mutex
	cond         *sync.Cond
	queue        []queued
	outstanding  int // tasks queued or currently running
	shuttingDown bool
	workers      sync.WaitGroup
}

// New starts n worker goroutines. n < 1 is treated as 1.
func New(n int) *Pool {
	if n < 1 {
		n = 1
	}
	p := &Pool{}
	p.cond = sync.NewCond(&p.mu)
	p.workers.Add(n)
	for id := 0; id < n; id++ {
		go p.runWorker(id)
	}
	return p
}

func (p *Pool) runWorker(id int) {
	defer p.workers.Done()
	for {
		p.mu.Lock()
		for len(p.queue) == 0 && !p.shuttingDown {
			p.cond.Wait()
		}
		if len(p.queue) == 0 {
			p.mu.Unlock()
			return
		}
		item := p.dequeueLocked()
		p.mu.Unlock()

		item.fn(id)

		p.mu.Lock()
		p.outstanding--
		if item.handle != nil {
			item.handle.done = true
		}
		p.cond.Broadcast()
		p.mu.Unlock()
	}
}

func (p *Pool) dequeueLocked() queued {
	item := p.queue[0]
	p.queue = p.queue[1:]
	return item
}

func (p *Pool) enqueue(fn Task) *Handle {
	h := &Handle{pool: p}
	p.mu.Lock()
	p.outstanding++
	p.queue = append(p.queue, queued{fn: fn, handle: h})
	p.cond.Signal()
	p.mu.Unlock()
	return h
}

// Submit enqueues a task from outside the pool (e.g. the per-query caller
// starting the Segmenter's root task) and returns a handle to wait on.
func (p *Pool) Submit(fn Task) *Handle { return p.enqueue(fn) }

// SubmitFromWorker enqueues a task from inside a running task. Semantics
// are identical to Submit: it only takes the mutex long enough to append to
// the queue and signal, so it never blocks on a worker slot and cannot
// deadlock against the caller's own suspension in Handle.Wait.
func (p *Pool) SubmitFromWorker(fn Task) *Handle { return p.enqueue(fn) }

// Shutdown drains queued tasks (waiting for outstanding work to reach zero)
// and then joins all worker goroutines. It does not accept new submissions
// concurrently with a Shutdown call.
func (p *Pool) Shutdown() {
	p.mu.Lock()
	for p.outstanding > 0 {
		p.cond.Wait()
	}
	p.shuttingDown = true
	p.cond.Broadcast()
	p.mu.Unlock()
	p.workers.Wait()
}
