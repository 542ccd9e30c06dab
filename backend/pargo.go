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
	"sort"
	"unsafe"

	psort "github.com/exascience/pargo/sort"
)

// pargoSlice adapts a slice and a pointer comparator to psort.StableSorter.
type pargoSlice[T any] struct {
	v    []T
	less func(a, b *T) bool
}

// SequentialSort implements the method of the psort.SequentialSorter interface.
func (s pargoSlice[T]) SequentialSort(i, j int) {
	sub := s.v[i:j]
	sort.SliceStable(sub, func(a, b int) bool {
		return s.less(&sub[a], &sub[b])
	})
}

func (s pargoSlice[T]) Len() int {
	return len(s.v)
}

func (s pargoSlice[T]) Less(i, j int) bool {
	return s.less(&s.v[i], &s.v[j])
}

func (s pargoSlice[T]) Swap(i, j int) {
	s.v[i], s.v[j] = s.v[j], s.v[i]
}

// NewTemp implements the method of the psort.StableSorter interface.
func (s pargoSlice[T]) NewTemp() psort.StableSorter {
	return pargoSlice[T]{v: make([]T, len(s.v)), less: s.less}
}

// Assign implements the method of the psort.StableSorter interface.
func (s pargoSlice[T]) Assign(source psort.StableSorter) func(i, j, len int) {
	dst, src := s.v, source.(pargoSlice[T]).v
	return func(i, j, len int) {
		copy(dst[i:i+len], src[j:j+len])
	}
}

func pargoSort[T fixedWidth](v []T) {
	psort.StableSort(pargoSlice[T]{v: v, less: func(a, b *T) bool { return cmp.Less(*a, *b) }})
}

func pargoSortBy[T fixedWidth](v []T, cmp CompareFunc[T], ctx unsafe.Pointer) (status Status) {
	defer recoverAbort(&status)
	psort.StableSort(pargoSlice[T]{v: v, less: func(a, b *T) bool {
		return callbackCompare(cmp, ctx, a, b) < 0
	}})
	return StatusOK
}
