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
	"slices"
	"unsafe"

	xslices "golang.org/x/exp/slices"

	"github.com/TruongNhanNguyen/sort-research-rs/stablesort"
)

// fixedWidth is the set of element types with an entry point.
type fixedWidth interface {
	~int32 | ~uint64
}

// Entry points of the in-module engine. SortBy goes through SortRefFunc, so
// the callback sees the real slots.

func coreSort[T fixedWidth](v []T) {
	stablesort.Sort(v)
}

func coreSortBy[T fixedWidth](v []T, cmp CompareFunc[T], ctx unsafe.Pointer) (status Status) {
	defer recoverAbort(&status)
	stablesort.SortRefFunc(v, func(a, b *T) int {
		return callbackCompare(cmp, ctx, a, b)
	})
	return StatusOK
}

// Entry points of the standard library sorts. The comparator receives
// copies, so mutations through its pointers are lost.

func stdStableSort[T fixedWidth](v []T) {
	slices.SortStableFunc(v, cmp.Compare[T])
}

func stdStableSortBy[T fixedWidth](v []T, cmp CompareFunc[T], ctx unsafe.Pointer) (status Status) {
	defer recoverAbort(&status)
	slices.SortStableFunc(v, func(a, b T) int {
		return callbackCompare(cmp, ctx, &a, &b)
	})
	return StatusOK
}

func stdUnstableSort[T fixedWidth](v []T) {
	slices.Sort(v)
}

func stdUnstableSortBy[T fixedWidth](v []T, cmp CompareFunc[T], ctx unsafe.Pointer) (status Status) {
	defer recoverAbort(&status)
	slices.SortFunc(v, func(a, b T) int {
		return callbackCompare(cmp, ctx, &a, &b)
	})
	return StatusOK
}

// Entry points of the golang.org/x/exp insertion/symmerge stable sort.

func expStableSort[T fixedWidth](v []T) {
	xslices.SortStableFunc(v, cmp.Compare[T])
}

func expStableSortBy[T fixedWidth](v []T, cmp CompareFunc[T], ctx unsafe.Pointer) (status Status) {
	defer recoverAbort(&status)
	xslices.SortStableFunc(v, func(a, b T) int {
		return callbackCompare(cmp, ctx, &a, &b)
	})
	return StatusOK
}

func entry[T fixedWidth](sort func([]T), sortBy func([]T, CompareFunc[T], unsafe.Pointer) Status) Entry[T] {
	return Entry[T]{Sort: sort, SortBy: sortBy}
}
