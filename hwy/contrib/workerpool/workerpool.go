// Copyright 2025 go-mdfs Authors. SPDX-License-Identifier: Apache-2.0

// Package workerpool provides a persistent worker pool for fanning trial
// chunks out over goroutines.
//
// Workers are spawned once and reused across calls. Every callback receives
// the index of the worker running it, so callers can keep one scratch
// workspace per worker and reuse it across the items that worker claims:
//
//	pool := workerpool.New(runtime.GOMAXPROCS(0))
//	defer pool.Close()
//
//	scratch := make([]*Workspace, pool.NumWorkers())
//	pool.ParallelForAtomic(chunks, func(worker, chunk int) {
//	    if scratch[worker] == nil {
//	        scratch[worker] = newWorkspace()
//	    }
//	    process(scratch[worker], chunk)
//	})
package workerpool

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
)

// Pool is a persistent worker pool. The zero value is not usable; call New.
type Pool struct {
	numWorkers int
	workC      chan task
	closeOnce  sync.Once
	closed     atomic.Bool
}

type task struct {
	run     func(worker int)
	barrier *sync.WaitGroup
}

// New creates a pool with numWorkers goroutines, or GOMAXPROCS goroutines
// when numWorkers <= 0. Workers persist until Close is called.
func New(numWorkers int) *Pool {
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	p := &Pool{
		numWorkers: numWorkers,
		workC:      make(chan task, numWorkers*2),
	}
	for id := range numWorkers {
		go p.worker(id)
	}
	return p
}

func (p *Pool) worker(id int) {
	for t := range p.workC {
		t.run(id)
		t.barrier.Done()
	}
}

// NumWorkers returns the number of workers in the pool. Worker indices passed
// to callbacks are in [0, NumWorkers()).
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}

// Close shuts the pool down after pending work completes. Calling Close more
// than once is safe. A closed pool runs every call sequentially on worker 0.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		p.closed.Store(true)
		close(p.workC)
	})
}

// dispatch runs body on up to n workers and waits for all of them.
func (p *Pool) dispatch(n int, body func(worker int)) {
	workers := min(p.numWorkers, n)
	if workers <= 1 || p.closed.Load() {
		body(0)
		return
	}

	var wg sync.WaitGroup
	wg.Add(workers)
	for range workers {
		p.workC <- task{run: body, barrier: &wg}
	}
	wg.Wait()
}

// ParallelFor splits [0, n) into one contiguous range per worker and calls
// fn(start, end) for each range. It blocks until every range is done.
func (p *Pool) ParallelFor(n int, fn func(start, end int)) {
	if n <= 0 {
		return
	}

	workers := min(p.numWorkers, n)
	chunkSize := (n + workers - 1) / workers

	var next atomic.Int32
	p.dispatch(workers, func(int) {
		for {
			start := int(next.Add(1)-1) * chunkSize
			if start >= n {
				return
			}
			fn(start, min(start+chunkSize, n))
		}
	})
}

// ParallelForAtomic calls fn(worker, i) for every i in [0, n). Items are
// claimed one at a time from a shared counter, which balances uneven work.
// It blocks until all items are done.
func (p *Pool) ParallelForAtomic(n int, fn func(worker, i int)) {
	if n <= 0 {
		return
	}

	var next atomic.Int32
	p.dispatch(n, func(worker int) {
		for {
			i := int(next.Add(1)) - 1
			if i >= n {
				return
			}
			fn(worker, i)
		}
	})
}

// ParallelForContext is ParallelForAtomic with cancellation. Workers stop
// claiming items once ctx is done or any call to fn returns an error. It
// returns the first error from fn, or ctx.Err() if the context ended first.
func (p *Pool) ParallelForContext(ctx context.Context, n int, fn func(worker, i int) error) error {
	if n <= 0 {
		return ctx.Err()
	}

	var (
		next     atomic.Int32
		stop     atomic.Bool
		errOnce  sync.Once
		firstErr error
	)
	fail := func(err error) {
		errOnce.Do(func() { firstErr = err })
		stop.Store(true)
	}

	p.dispatch(n, func(worker int) {
		for !stop.Load() {
			if err := ctx.Err(); err != nil {
				fail(err)
				return
			}
			i := int(next.Add(1)) - 1
			if i >= n {
				return
			}
			if err := fn(worker, i); err != nil {
				fail(err)
				return
			}
		}
	})
	return firstErr
}
