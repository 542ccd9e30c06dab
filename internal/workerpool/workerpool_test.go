// Copyright 2026 sort-research Authors. SPDX-License-Identifier: Apache-2.0

package workerpool

import (
	"context"
	"errors"
	"runtime"
	"slices"
	"sync/atomic"
	"testing"
)

func TestNew(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	if pool.Workers() != 4 {
		t.Errorf("Workers() = %d, want 4", pool.Workers())
	}
}

func TestNewDefault(t *testing.T) {
	pool := New(0)
	defer pool.Close()

	if pool.Workers() != runtime.GOMAXPROCS(0) {
		t.Errorf("Workers() = %d, want %d", pool.Workers(), runtime.GOMAXPROCS(0))
	}
}

func TestForEach(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	n := 100
	results := make([]int, n)
	pool.ForEach(n, func(i int) {
		results[i] = i * 2
	})

	for i := range n {
		if results[i] != i*2 {
			t.Errorf("results[%d] = %d, want %d", i, results[i], i*2)
		}
	}
}

func TestRange(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	n := 101
	results := make([]int, n)
	pool.Range(n, func(start, end int) {
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

func TestRangeSmallN(t *testing.T) {
	pool := New(8)
	defer pool.Close()

	n := 3
	var count atomic.Int32
	pool.Range(n, func(start, end int) {
		count.Add(int32(end - start))
	})

	if count.Load() != int32(n) {
		t.Errorf("count = %d, want %d", count.Load(), n)
	}
}

func TestZeroN(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	pool.ForEach(0, func(i int) { t.Error("ForEach with n=0 should not call fn") })
	pool.Range(0, func(start, end int) { t.Error("Range with n=0 should not call fn") })
}

func TestForEachPanic(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	defer func() {
		if r := recover(); r != "item 37" {
			t.Errorf("recovered %v, want \"item 37\"", r)
		}
	}()
	pool.ForEach(100, func(i int) {
		if i == 37 {
			panic("item 37")
		}
	})
	t.Fatal("ForEach did not propagate the panic")
}

func TestRangePanic(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	defer func() {
		if r := recover(); r == nil {
			t.Error("Range did not propagate the panic")
		}
	}()
	pool.Range(100, func(start, end int) {
		if start == 0 {
			panic("first chunk")
		}
	})
}

func TestPoolUsableAfterPanic(t *testing.T) {
	pool := New(2)
	defer pool.Close()

	func() {
		defer func() { _ = recover() }()
		pool.ForEach(10, func(i int) { panic(i) })
	}()

	var count atomic.Int32
	pool.ForEach(10, func(i int) { count.Add(1) })
	if count.Load() != 10 {
		t.Errorf("count = %d after a panicking call, want 10", count.Load())
	}
}

func TestForEachContext(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	var count atomic.Int32
	err := pool.ForEachContext(context.Background(), 50, func(ctx context.Context, i int) {
		count.Add(1)
	})
	if err != nil || count.Load() != 50 {
		t.Errorf("ForEachContext = %v with %d calls, want nil with 50", err, count.Load())
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	count.Store(0)
	err = pool.ForEachContext(ctx, 50, func(ctx context.Context, i int) {
		count.Add(1)
	})
	if !errors.Is(err, context.Canceled) || count.Load() != 0 {
		t.Errorf("cancelled ForEachContext = %v with %d calls", err, count.Load())
	}
}

func TestAny(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	data := make([]int, 1000)
	if pool.Any(len(data), func(i int) bool { return data[i] != 0 }) {
		t.Error("Any found a match in zeros")
	}
	data[777] = 1
	if !pool.Any(len(data), func(i int) bool { return data[i] != 0 }) {
		t.Error("Any missed the match")
	}
}

func TestCloseMultipleTimes(t *testing.T) {
	pool := New(4)
	pool.Close()
	pool.Close()
}

func TestClosedPoolFallback(t *testing.T) {
	pool := New(4)
	pool.Close()

	var order []int
	pool.ForEach(5, func(i int) { order = append(order, i) })
	if !slices.Equal(order, []int{0, 1, 2, 3, 4}) {
		t.Errorf("closed pool order = %v, want sequential", order)
	}
}

func BenchmarkForEach(b *testing.B) {
	pool := New(0)
	defer pool.Close()

	for b.Loop() {
		pool.ForEach(1000, func(i int) {
			_ = i * i
		})
	}
}

func BenchmarkRange(b *testing.B) {
	pool := New(0)
	defer pool.Close()

	for b.Loop() {
		pool.Range(1000, func(start, end int) {
			for j := start; j < end; j++ {
				_ = j * j
			}
		})
	}
}
