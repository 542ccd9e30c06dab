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

package stablesort

import (
	"cmp"
	"unsafe"
)

// Thresholds for different sorting strategies.
const (
	// maxInsertion: slices this size or smaller are sorted in place without
	// allocating a scratch buffer.
	maxInsertion = 20

	// minInsertionRun: natural runs shorter than this are extended with
	// insertion sort before they are pushed.
	minInsertionRun = 10

	// maxPreSort16: runs shorter than this may be extended with sort16.
	maxPreSort16 = 8
)

// lessFunc reports whether *a sorts strictly before *b.
type lessFunc[E any] func(a, b *E) bool

// Sort sorts v in ascending order. The sort is stable. Floating-point NaNs
// are ordered before all other values.
func Sort[E cmp.Ordered](v []E) {
	stableSort(v, func(a, b *E) bool { return cmp.Less(*a, *b) }, true)
}

// SortFunc sorts v in ascending order as determined by cmp, which must
// return a negative number when a < b, a positive number when a > b and zero
// when a == b. The sort is stable.
//
// If cmp panics, the panic propagates to the caller and v holds a
// permutation of its original elements.
func SortFunc[E any](v []E, cmp func(a, b E) int) {
	stableSort(v, func(a, b *E) bool { return cmp(*a, *b) < 0 }, true)
}

// SortRefFunc is like SortFunc but passes cmp pointers to the two slots
// being compared. The pointers are never equal. cmp may modify the elements
// through them and every modification is kept: the engine never compares a
// transient copy that it later discards.
func SortRefFunc[E any](v []E, cmp func(a, b *E) int) {
	stableSort(v, func(a, b *E) bool { return cmp(a, b) < 0 }, false)
}

// IsSorted reports whether v is sorted in ascending order.
func IsSorted[E cmp.Ordered](v []E) bool {
	for i := len(v) - 1; i > 0; i-- {
		if cmp.Less(v[i], v[i-1]) {
			return false
		}
	}
	return true
}

// IsSortedFunc reports whether v is sorted in ascending order, with cmp as
// the comparison function as defined by SortFunc.
func IsSortedFunc[E any](v []E, cmp func(a, b E) int) bool {
	for i := len(v) - 1; i > 0; i-- {
		if cmp(v[i], v[i-1]) < 0 {
			return false
		}
	}
	return true
}

// stableSort is the driver shared by all entry points. relocatable reports
// whether less only ever looks at values, in which case elements may be
// duplicated into scratch space for the sorting networks.
func stableSort[E any](v []E, less lessFunc[E], relocatable bool) {
	var zero E
	if unsafe.Sizeof(zero) == 0 {
		// Nothing to reorder.
		return
	}

	n := len(v)
	if n < 2 {
		return
	}

	networks := relocatable && networksEnabled

	if n <= maxInsertion {
		sortSmall(v, less, networks)
		return
	}

	// The shorter of two merged runs never exceeds n/2.
	buf := make([]E, n/2)
	mergeSort(v, buf, less, networks)
}

// sortSmall sorts a short slice without allocating.
func sortSmall[E any](v []E, less lessFunc[E], networks bool) {
	n := len(v)
	if n < 2 {
		return
	}

	if !networks {
		for i := n - 2; i >= 0; i-- {
			insertHead(v[i:], less)
		}
		return
	}

	switch {
	case n == 2:
		sort2(v, less)
	case n == 3:
		sort3(v, less)
	case n < 8:
		sort4(v[:4], less)
		insertionSortShiftLeft(v, 4, less)
	case n < 16:
		sort8(v[:8], less)
		insertionSortShiftLeft(v, 8, less)
	default:
		sort16(v[:16], less)
		insertionSortShiftLeft(v, 16, less)
	}
}
