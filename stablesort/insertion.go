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

// insertionHole holds an element lifted out of v while the elements around
// it are shifted. fill writes it into the slot at dest, which is always the
// one duplicate slot in v, so v holds every element exactly once after fill
// runs, whether the shift finished or a comparison panicked.
type insertionHole[E any] struct {
	v    []E
	tmp  E
	dest int
}

func (h *insertionHole[E]) fill() {
	h.v[h.dest] = h.tmp
}

// insertTail inserts v[len(v)-1] into the sorted v[:len(v)-1].
// Requires len(v) >= 2.
func insertTail[E any](v []E, less lessFunc[E]) {
	i := len(v) - 1

	// Compare in place first. Once the element is lifted, only the lifted
	// copy is compared, because that copy is what gets written back.
	if !less(&v[i], &v[i-1]) {
		return
	}

	hole := insertionHole[E]{v: v, tmp: v[i], dest: i - 1}
	defer hole.fill()

	v[i] = v[i-1]
	for j := i - 2; j >= 0; j-- {
		if !less(&hole.tmp, &v[j]) {
			break
		}
		v[j+1] = v[j]
		hole.dest = j
	}
}

// insertHead inserts v[0] into the sorted v[1:].
// Requires len(v) >= 2.
func insertHead[E any](v []E, less lessFunc[E]) {
	if !less(&v[1], &v[0]) {
		return
	}

	hole := insertionHole[E]{v: v, tmp: v[0], dest: 1}
	defer hole.fill()

	v[0] = v[1]
	for i := 2; i < len(v); i++ {
		if !less(&v[i], &hole.tmp) {
			break
		}
		v[i-1] = v[i]
		hole.dest = i
	}
}

// insertionSortShiftLeft sorts v assuming v[:offset] is already sorted.
func insertionSortShiftLeft[E any](v []E, offset int, less lessFunc[E]) {
	if offset <= 0 || offset > len(v) {
		return
	}
	for i := offset; i < len(v); i++ {
		insertTail(v[:i+1], less)
	}
}
