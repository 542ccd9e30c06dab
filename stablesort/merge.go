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

// mergeHole tracks the part of the scratch buffer that has not been merged
// yet, buf[start:end], and the hole in v it belongs to, v[dest:]. The hole
// is always exactly end-start slots long, so fill leaves v holding every
// element once no matter where the merge stopped.
type mergeHole[E any] struct {
	v          []E
	buf        []E
	start, end int
	dest       int
}

func (h *mergeHole[E]) fill() {
	copy(h.v[h.dest:], h.buf[h.start:h.end])
}

// merge merges the non-decreasing runs v[:mid] and v[mid:] into v, using
// buf as temporary storage for the shorter run. Both runs must be non-empty
// and buf must hold at least min(mid, len(v)-mid) elements. At most
// len(v)-1 comparisons are made.
func merge[E any](v []E, mid int, buf []E, less lessFunc[E]) {
	if mid <= len(v)-mid {
		mergeForward(v, mid, buf, less)
	} else {
		mergeBackward(v, mid, buf, less)
	}
}

// mergeForward handles a shorter left run: it is copied to buf, then buf and
// the right run are walked front to back and the lesser head is written
// forward. Ties take the buf side, which came first.
func mergeForward[E any](v []E, mid int, buf []E, less lessFunc[E]) {
	n := len(v)
	copy(buf, v[:mid])

	hole := mergeHole[E]{v: v, buf: buf, start: 0, end: mid, dest: 0}
	defer hole.fill()

	right := mid
	for hole.start < hole.end && right < n {
		if less(&v[right], &buf[hole.start]) {
			v[hole.dest] = v[right]
			right++
		} else {
			v[hole.dest] = buf[hole.start]
			hole.start++
		}
		hole.dest++
	}
	// If the right run ran out first, fill moves the rest of buf into place.
}

// mergeBackward handles a shorter right run: it is copied to buf, then the
// left run and buf are walked back to front and the greater tail is written
// backward. Ties take the buf side, which came last.
func mergeBackward[E any](v []E, mid int, buf []E, less lessFunc[E]) {
	n := len(v)
	copy(buf, v[mid:])

	// Here hole.dest doubles as the left cursor: v[:dest] is the unmerged
	// part of the left run and v[dest:dest+end] is the hole.
	hole := mergeHole[E]{v: v, buf: buf, start: 0, end: n - mid, dest: mid}
	defer hole.fill()

	out := n
	for hole.dest > 0 && hole.end > 0 {
		if less(&buf[hole.end-1], &v[hole.dest-1]) {
			hole.dest--
			out--
			v[out] = v[hole.dest]
		} else {
			hole.end--
			out--
			v[out] = buf[hole.end]
		}
	}
}
