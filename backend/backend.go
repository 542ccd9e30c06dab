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
	"errors"
	"unsafe"
)

var (
	ErrUnsupportedType = errors.New("backend: element type has no entry point")
	ErrAborted         = errors.New("backend: engine aborted without a comparator panic")
	ErrUnknownBackend  = errors.New("backend: unknown backend")
)

// CompResult is the three-way result a callback hands to an engine.
type CompResult int32

const (
	Less    CompResult = -1
	Equal   CompResult = 0
	Greater CompResult = 1

	// Panicked tells the engine that the caller's comparator panicked and
	// the sort must stop.
	Panicked CompResult = 777
)

// CompareFunc is the callback an engine calls for every comparison. ctx is
// the opaque pointer passed to Entry.SortBy.
type CompareFunc[T any] func(a, b *T, ctx unsafe.Pointer) CompResult

// Status is returned by Entry.SortBy.
type Status uint32

const (
	StatusOK      Status = 0
	StatusAborted Status = 1
)

// Entry is the pair of entry points for one element width. A nil function
// means the width is not supported.
type Entry[T any] struct {
	Sort   func(v []T)
	SortBy func(v []T, cmp CompareFunc[T], ctx unsafe.Pointer) Status
}

// Properties describe what a backend guarantees, so checks that need a
// guarantee can be skipped for backends without it.
type Properties struct {
	// Stable engines keep equal elements in input order.
	Stable bool

	// StrongExceptionSafety engines leave every original element in the
	// slice after a comparator panic. Engines without it only promise not
	// to crash.
	StrongExceptionSafety bool

	// ObservableComparisons engines compare the slots they keep, so
	// mutations made through the comparator's pointers survive the sort.
	ObservableComparisons bool

	// Parallel engines call the comparator from several goroutines.
	// Callbacks are serialized for them.
	Parallel bool

	// Generic engines accept any element type, not only the fixed widths.
	Generic bool
}

// Backend is one registered sorting engine.
type Backend struct {
	Name        string
	Description string
	Properties  Properties

	I32 Entry[int32]
	U64 Entry[uint64]
}

func (b Backend) String() string {
	return b.Name
}
