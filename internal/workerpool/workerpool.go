// Copyright 2026 sort-research Authors. SPDX-License-Identifier: Apache-2.0

// Package workerpool provides a persistent worker pool for running many
// independent sorts and checks. A Pool is created once per harness run and
// reused by every backend, so checks are not paying for goroutine spawns.
//
// Usage:
//
//	pool := workerpool.New(runtime.GOMAXPROCS(0))
//	defer pool.Close()
//
//	pool.ForEach(len(checks), func(i int) {
//	    results[i] = run(checks[i])
//	})
package workerpool

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
)

// Pool is a persistent worker pool. Workers are spawned once at creation and
// reused.
type Pool struct {
	numWorkers int
	workC      chan workItem
	closeOnce  sync.Once
	closed     atomic.Bool
}

// workItem is one worker's share of a call.
type workItem struct {
	fn      func()
	barrier *sync.WaitGroup
}

// New creates a pool with numWorkers workers. If numWorkers <= 0, uses
// GOMAXPROCS.
func New(numWorkers int) *Pool {
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	p := &Pool{
		numWorkers: numWorkers,
		workC:      make(chan workItem, numWorkers*2),
	}
	for range numWorkers {
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	for item := range p.workC {
		item.fn()
		item.barrier.Done()
	}
}

// Workers returns the number of workers in the pool.
func (p *Pool) Workers() int {
	return p.numWorkers
}

// Close shuts down the pool. Pending work completes. Calling Close multiple
// times is safe; calls made after Close run on the caller's goroutine.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		p.closed.Store(true)
		close(p.workC)
	})
}

// panicBox keeps the first panic raised by any worker of one call.
type panicBox struct {
	once  sync.Once
	value any
	set   atomic.Bool
}

func (b *panicBox) capture() {
	if r := recover(); r != nil {
		b.once.Do(func() {
			b.value = r
			b.set.Store(true)
		})
	}
}

func (b *panicBox) rethrow() {
	if b.set.Load() {
		panic(b.value)
	}
}

// ForEach calls fn for every index in [0, n), handing indices out one at a
// time so that slow items do not hold up a whole chunk. It blocks until all
// calls return. If fn panics, remaining indices are skipped and ForEach
// panics with the first value once every worker has stopped.
func (p *Pool) ForEach(n int, fn func(i int)) {
	if n <= 0 {
		return
	}

	workers := min(p.numWorkers, n)
	if p.closed.Load() || workers == 1 {
		for i := range n {
			fn(i)
		}
		return
	}

	var (
		next atomic.Int64
		box  panicBox
		wg   sync.WaitGroup
	)
	wg.Add(workers)
	for range workers {
		p.workC <- workItem{
			fn: func() {
				defer box.capture()
				for !box.set.Load() {
					idx := int(next.Add(1)) - 1
					if idx >= n {
						return
					}
					fn(idx)
				}
			},
			barrier: &wg,
		}
	}
	wg.Wait()
	box.rethrow()
}

// ForEachContext is ForEach with cancellation: once ctx is done no new
// index is started, and the context error is returned.
func (p *Pool) ForEachContext(ctx context.Context, n int, fn func(ctx context.Context, i int)) error {
	p.ForEach(n, func(i int) {
		if ctx.Err() != nil {
			return
		}
		fn(ctx, i)
	})
	return ctx.Err()
}

// Range splits [0, n) into one contiguous chunk per worker and calls fn with
// each chunk's bounds. It blocks until all chunks are done and propagates
// panics like ForEach.
func (p *Pool) Range(n int, fn func(start, end int)) {
	if n <= 0 {
		return
	}

	workers := min(p.numWorkers, n)
	if p.closed.Load() || workers == 1 {
		fn(0, n)
		return
	}

	chunkSize := (n + workers - 1) / workers

	var (
		box panicBox
		wg  sync.WaitGroup
	)
	wg.Add(workers)
	for i := range workers {
		start := i * chunkSize
		end := min(start+chunkSize, n)
		if start >= n {
			wg.Done()
			continue
		}
		p.workC <- workItem{
			fn: func() {
				defer box.capture()
				fn(start, end)
			},
			barrier: &wg,
		}
	}
	wg.Wait()
	box.rethrow()
}

// Any reports whether pred holds for some index in [0, n). Chunks stop
// early once another chunk has found a match.
func (p *Pool) Any(n int, pred func(i int) bool) bool {
	var found atomic.Bool
	p.Range(n, func(start, end int) {
		for i := start; i < end && !found.Load(); i++ {
			if pred(i) {
				found.Store(true)
				return
			}
		}
	})
	return found.Load()
}
