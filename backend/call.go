// Copyright 2026 sort-research Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package backend

import (
	"cmp"
	"fmt"
	"sync"
	"unsafe"

	"github.com/TruongNhanNguyen/sort-research-rs/stablesort"
)

// Sort sorts v in natural order with b.
func Sort[T cmp.Ordered](b Backend, v []T) error {
	switch s := any(v).(type) {
	case []int32:
		return sortEntry(b, b.I32, s)
	case []uint64:
		return sortEntry(b, b.U64, s)
	}
	if b.Properties.Generic {
		stablesort.Sort(v)
		return nil
	}
	return fmt.Errorf("%w: %T on %s", ErrUnsupportedType, v, b.Name)
}

// SortBy sorts v with b, ordered by cmp. If cmp panics, SortBy panics with
// the same value once the engine has stopped.
func SortBy[T any](b Backend, v []T, cmp func(a, b *T) int) error {
	switch s := any(v).(type) {
	case []int32:
		return sortByEntry(b, b.I32, s, any(cmp).(func(a, b *int32) int))
	case []uint64:
		return sortByEntry(b, b.U64, s, any(cmp).(func(a, b *uint64) int))
	}
	if b.Properties.Generic {
		stablesort.SortRefFunc(v, cmp)
		return nil
	}
	return fmt.Errorf("%w: %T on %s", ErrUnsupportedType, v, b.Name)
}

// Supports reports whether b can sort elements of type T.
func Supports[T any](b Backend) bool {
	var v []T
	switch any(v).(type) {
	case []int32:
		return b.I32.Sort != nil
	case []uint64:
		return b.U64.Sort != nil
	}
	return b.Properties.Generic
}

func sortEntry[T any](b Backend, e Entry[T], v []T) error {
	if e.Sort == nil {
		return fmt.Errorf("%w: %T on %s", ErrUnsupportedType, v, b.Name)
	}
	if len(v) < 2 {
		return nil
	}
	e.Sort(v)
	return nil
}

func sortByEntry[T any](b Backend, e Entry[T], v []T, cmp func(a, b *T) int) error {
	if e.SortBy == nil {
		return fmt.Errorf("%w: %T on %s", ErrUnsupportedType, v, b.Name)
	}
	if len(v) < 2 {
		return nil
	}

	c := &callContext[T]{cmp: cmp, serialize: b.Properties.Parallel}
	status := e.SortBy(v, trampoline[T], unsafe.Pointer(c))

	if panicked, value := c.result(); panicked {
		panic(value)
	}
	if status != StatusOK {
		return fmt.Errorf("%w: %s returned status %d", ErrAborted, b.Name, status)
	}
	return nil
}

// callContext is what the opaque context pointer refers to for one SortBy
// call.
type callContext[T any] struct {
	cmp       func(a, b *T) int
	serialize bool
	callMu    sync.Mutex

	mu       sync.Mutex
	panicked bool
	value    any
}

func (c *callContext[T]) record(value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.panicked {
		c.panicked = true
		c.value = value
	}
}

func (c *callContext[T]) aborted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.panicked
}

func (c *callContext[T]) result() (bool, any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.panicked, c.value
}

// trampoline adapts a Go comparator to CompareFunc. Once a comparator has
// panicked every later call reports Panicked without calling it again.
func trampoline[T any](a, b *T, ctx unsafe.Pointer) (res CompResult) {
	c := (*callContext[T])(ctx)
	if c.aborted() {
		return Panicked
	}
	if c.serialize {
		c.callMu.Lock()
		defer c.callMu.Unlock()
	}
	defer func() {
		if r := recover(); r != nil {
			c.record(r)
			res = Panicked
		}
	}()
	return toCompResult(c.cmp(a, b))
}

func toCompResult(r int) CompResult {
	switch {
	case r < 0:
		return Less
	case r > 0:
		return Greater
	}
	return Equal
}

// abortSignal unwinds an engine after its callback returned Panicked.
type abortSignal struct{}

// callbackCompare calls cmp from inside an engine and converts the result
// to the usual int convention. It unwinds the engine with abortSignal when
// the callback reports a panic.
func callbackCompare[T any](cmp CompareFunc[T], ctx unsafe.Pointer, a, b *T) int {
	r := cmp(a, b, ctx)
	if r == Panicked {
		panic(abortSignal{})
	}
	return int(r)
}

// recoverAbort turns any unwind out of an engine into StatusAborted. Parallel
// engines may rewrap the abort signal on its way back, so the value is not
// inspected. The caller tells a comparator panic from an engine fault by
// whether the context recorded one.
func recoverAbort(status *Status) {
	if r := recover(); r != nil {
		*status = StatusAborted
	}
}
