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

// Sorting networks for 2, 3, 4, 8 and 16 elements.
//
// These duplicate elements into scratch space and compare the copies, so
// they are only valid when the comparator looks at values and cannot observe
// which slot it was handed. SortRefFunc never reaches this file.

// b2i converts a comparison result to 0 or 1. The compiler lowers this to a
// flag set, so swapNextIfLess selects slots without branching. sort4 and the
// early exits of sort8 and sort16 still branch on the data.
func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}

// swapNextIfLess swaps v[i] and v[i+1] if v[i+1] < v[i]. Equal elements are
// never swapped.
func swapNextIfLess[E any](v []E, i int, less lessFunc[E]) {
	s := b2i(less(&v[i+1], &v[i]))
	tmp := v[i+1-s]
	v[i] = v[i+s]
	v[i+1] = tmp
}

// sort2 sorts v[:2].
func sort2[E any](v []E, less lessFunc[E]) {
	swapNextIfLess(v, 0, less)
}

// sort3 sorts v[:3].
func sort3[E any](v []E, less lessFunc[E]) {
	swapNextIfLess(v, 0, less)
	swapNextIfLess(v, 1, less)

	// abc -> ab bc | abc
	// acb -> ac bc | abc
	// bac -> ab bc | abc
	// bca -> bc ac | bac !
	// cab -> ac bc | abc
	// cba -> bc ac | bac !
	swapNextIfLess(v, 0, less)
}

// sort4 sorts v[:4].
func sort4[E any](v []E, less lessFunc[E]) {
	swapNextIfLess(v, 0, less)
	swapNextIfLess(v, 2, less)

	// Both pairs are ordered; only a crossed middle needs more work.
	if less(&v[2], &v[1]) {
		v[1], v[2] = v[2], v[1]

		swapNextIfLess(v, 0, less)
		swapNextIfLess(v, 2, less)
		swapNextIfLess(v, 1, less)
	}
}

// sort8 sorts v[:8].
func sort8[E any](v []E, less lessFunc[E]) {
	sort4(v[:4], less)
	sort4(v[4:8], less)

	if !less(&v[4], &v[3]) {
		return
	}

	var swap [8]E
	copy(swap[:], v[:8])
	mergeFromScratch(v[:8], swap[:], 4, less)
}

// sort16 sorts v[:16].
func sort16[E any](v []E, less lessFunc[E]) {
	sort4(v[0:4], less)
	sort4(v[4:8], less)
	sort4(v[8:12], less)
	sort4(v[12:16], less)

	// All three borders ordered means all 16 are.
	if !less(&v[4], &v[3]) && !less(&v[8], &v[7]) && !less(&v[12], &v[11]) {
		return
	}

	// Merge the quarters pairwise into swap. v is not written here, so a
	// panic or an inconsistent merge leaves it intact.
	var swap [16]E
	if !parityMerge(v[0:8], swap[0:8], less) || !parityMerge(v[8:16], swap[8:16], less) {
		insertionSortShiftLeft(v[:16], 4, less)
		return
	}

	mergeFromScratch(v[:16], swap[:], 8, less)
}

// scratchGuard copies a full scratch copy back over dst unless disarmed.
// The scratch copy is a permutation of dst's original elements, so a
// comparator panic in the middle of a parity merge into dst cannot leave
// dst with duplicates.
type scratchGuard[E any] struct {
	dst, scratch []E
	armed        bool
}

func (g *scratchGuard[E]) restore() {
	if g.armed {
		copy(g.dst, g.scratch)
	}
}

// mergeFromScratch parity-merges the sorted halves of scratch into dst.
// scratch holds a copy of dst and mid is the length of its sorted prefix.
func mergeFromScratch[E any](dst, scratch []E, mid int, less lessFunc[E]) {
	guard := scratchGuard[E]{dst: dst, scratch: scratch, armed: true}
	defer guard.restore()

	if !parityMerge(scratch, dst, less) {
		// The comparator is inconsistent and dst may hold duplicates.
		// Start over from the intact copy on the slower path.
		copy(dst, scratch)
		guard.armed = false
		insertionSortShiftLeft(dst, mid, less)
		return
	}
	guard.armed = false
}

// parityMerge merges the sorted halves src[:n/2] and src[n/2:] into dst,
// where n = len(src) is even and dst does not overlap src. One cursor pair
// walks forward from the front while another walks backward from the back,
// each writing one element per step.
//
// It reports whether the two cursor pairs met exactly. That always holds for
// a consistent comparator; otherwise some source element was written twice
// and another not at all, and dst must be discarded.
func parityMerge[E any](src, dst []E, less lessFunc[E]) bool {
	n := len(src)
	block := n / 2

	left, right, d := 0, block, 0
	tLeft, tRight, tD := block-1, n-1, n-1

	for range block - 1 {
		left, right, d = mergeUp(src, dst, left, right, d, less)
		tLeft, tRight, tD = mergeDown(src, dst, tLeft, tRight, tD, less)
	}

	left, right = finishUp(src, dst, left, right, d, less)
	tLeft, tRight = finishDown(src, dst, tLeft, tRight, tD, less)

	return left == tLeft+1 && right == tRight+1
}

// mergeUp writes the lesser of src[left] and src[right] to dst[d] and the
// other to dst[d+1], where a later step may overwrite it. The comparison
// only selects offsets.
func mergeUp[E any](src, dst []E, left, right, d int, less lessFunc[E]) (int, int, int) {
	x := b2i(!less(&src[right], &src[left]))
	y := 1 - x
	dst[d+x] = src[right]
	dst[d+y] = src[left]
	return left + x, right + y, d + 1
}

// mergeDown writes the greater of src[left] and src[right] to dst[d] and the
// other to dst[d-1].
func mergeDown[E any](src, dst []E, left, right, d int, less lessFunc[E]) (int, int, int) {
	x := b2i(!less(&src[right], &src[left]))
	y := 1 - x
	d--
	dst[d+x] = src[right]
	dst[d+y] = src[left]
	return left - y, right - x, d
}

// finishUp writes the last element of the forward pass.
func finishUp[E any](src, dst []E, left, right, d int, less lessFunc[E]) (int, int) {
	if less(&src[right], &src[left]) {
		dst[d] = src[right]
		return left, right + 1
	}
	dst[d] = src[left]
	return left + 1, right
}

// finishDown writes the last element of the backward pass.
func finishDown[E any](src, dst []E, left, right, d int, less lessFunc[E]) (int, int) {
	if less(&src[right], &src[left]) {
		dst[d] = src[left]
		return left - 1, right
	}
	dst[d] = src[right]
	return left, right - 1
}
