// Copyright 2025 go-mdfs Authors. SPDX-License-Identifier: Apache-2.0

package workerpool

import (
	"context"
	"errors"
	"runtime"
	"sync/atomic"
	"testing"
)

func TestNew(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	if pool.NumWorkers() != 4 {
		t.Errorf("NumWorkers() = %d, want 4", pool.NumWorkers())
	}
}

func TestNewDefault(t *testing.T) {
	pool := New(0)
	defer pool.Close()

	if pool.NumWorkers() != runtime.GOMAXPROCS(0) {
		t.Errorf("NumWorkers() = %d, want %d", pool.NumWorkers(), runtime.GOMAXPROCS(0))
	}
}

func TestParallelFor(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	n := 101
	results := make([]int, n)

	pool.ParallelFor(n, func(start, end int) {
		for i := start; i < end; i++ {
			results[i] = i * 2
		}
	})

	for i := range n {
		if results[i] != i*2 {
			t.Errorf("results[%d] = %d, want %d", i, results[i], i*2)
		}
	}
}

func TestParallelForAtomic(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	n := 100
	results := make([]int, n)
	var badWorker atomic.Bool

	pool.ParallelForAtomic(n, func(worker, i int) {
		if worker < 0 || worker >= pool.NumWorkers() {
			badWorker.Store(true)
		}
		results[i] = i * 2
	})

	if badWorker.Load() {
		t.Errorf("worker index outside [0, %d)", pool.NumWorkers())
	}
	for i := range n {
		if results[i] != i*2 {
			t.Errorf("results[%d] = %d, want %d", i, results[i], i*2)
		}
	}
}

// Each worker index must be held by at most one goroutine at a time, so
// per-worker scratch needs no locking.
func TestWorkerIndexExclusive(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	busy := make([]atomic.Int32, pool.NumWorkers())
	var overlap atomic.Bool

	pool.ParallelForAtomic(1000, func(worker, i int) {
		if busy[worker].Add(1) != 1 {
			overlap.Store(true)
		}
		runtime.Gosched()
		busy[worker].Add(-1)
	})

	if overlap.Load() {
		t.Error("two goroutines ran with the same worker index")
	}
}

func TestParallelForSmallN(t *testing.T) {
	pool := New(8)
	defer pool.Close()

	var count atomic.Int32
	pool.ParallelForAtomic(3, func(_, _ int) {
		count.Add(1)
	})

	if count.Load() != 3 {
		t.Errorf("count = %d, want 3", count.Load())
	}
}

func TestParallelForZeroN(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	called := false
	pool.ParallelFor(0, func(_, _ int) { called = true })
	pool.ParallelForAtomic(0, func(_, _ int) { called = true })

	if called {
		t.Error("callback called for n=0")
	}
}

func TestParallelForContextError(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	errBoom := errors.New("boom")
	var calls atomic.Int32
	err := pool.ParallelForContext(context.Background(), 1000, func(_, i int) error {
		calls.Add(1)
		if i == 10 {
			return errBoom
		}
		return nil
	})

	if !errors.Is(err, errBoom) {
		t.Fatalf("ParallelForContext() error = %v, want %v", err, errBoom)
	}
	if calls.Load() == 1000 {
		t.Error("workers kept claiming items after an error")
	}
}

func TestParallelForContextCanceled(t *testing.T) {
	pool := New(2)
	defer pool.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var calls atomic.Int32
	err := pool.ParallelForContext(ctx, 100, func(_, _ int) error {
		calls.Add(1)
		return nil
	})

	if !errors.Is(err, context.Canceled) {
		t.Errorf("ParallelForContext() error = %v, want context.Canceled", err)
	}
	if calls.Load() != 0 {
		t.Errorf("calls = %d, want 0", calls.Load())
	}
}

func TestParallelForContextSuccess(t *testing.T) {
	pool := New(3)
	defer pool.Close()

	results := make([]int, 50)
	err := pool.ParallelForContext(context.Background(), len(results), func(_, i int) error {
		results[i] = i + 1
		return nil
	})
	if err != nil {
		t.Fatalf("ParallelForContext() error = %v", err)
	}
	for i, r := range results {
		if r != i+1 {
			t.Errorf("results[%d] = %d, want %d", i, r, i+1)
		}
	}
}

func TestCloseMultipleTimes(t *testing.T) {
	pool := New(4)
	pool.Close()
	pool.Close() // Should not panic
}

func TestClosedPoolFallback(t *testing.T) {
	pool := New(4)
	pool.Close()

	n := 100
	results := make([]int, n)

	pool.ParallelForAtomic(n, func(worker, i int) {
		if worker != 0 {
			t.Errorf("worker = %d, want 0 on a closed pool", worker)
		}
		results[i] = i * 2
	})

	for i := range n {
		if results[i] != i*2 {
			t.Errorf("results[%d] = %d, want %d", i, results[i], i*2)
		}
	}
}

func BenchmarkParallelFor(b *testing.B) {
	pool := New(0)
	defer pool.Close()

	for i := 0; i < b.N; i++ {
		pool.ParallelFor(1000, func(start, end int) {
			for j := start; j < end; j++ {
				_ = j * j
			}
		})
	}
}

func BenchmarkParallelForAtomic(b *testing.B) {
	pool := New(0)
	defer pool.Close()

	for i := 0; i < b.N; i++ {
		pool.ParallelForAtomic(1000, func(_, j int) {
			_ = j * j
		})
	}
}
