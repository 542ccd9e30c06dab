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

// run is a non-decreasing range v[start:start+len].
type run struct {
	start int
	len   int
}

// mergeSort sorts v using buf, which must hold at least len(v)/2 elements.
// Runs are found walking backwards from the end of v, so the newest run is
// always the leftmost one on the stack.
func mergeSort[E any](v []E, buf []E, less lessFunc[E], networks bool) {
	runs := make([]run, 0, 16)

	end := len(v)
	for end > 0 {
		start := findRun(v, end, less)
		start = extendRun(v, start, end, less, networks)

		runs = append(runs, run{start: start, len: end - start})
		end = start

		for {
			r := collapse(runs)
			if r < 0 {
				break
			}
			left, right := runs[r+1], runs[r]
			merge(v[left.start:right.start+right.len], left.len, buf, less)
			runs[r] = run{start: left.start, len: left.len + right.len}
			runs = append(runs[:r+1], runs[r+2:]...)
		}
	}
}

// findRun returns the start of the longest monotonic run ending at end.
// Strictly descending runs are reversed in place with swaps, so a panic in
// less can never leave an element duplicated.
func findRun[E any](v []E, end int, less lessFunc[E]) int {
	start := end - 1
	if start == 0 {
		return start
	}

	start--
	if less(&v[start+1], &v[start]) {
		for start > 0 && less(&v[start], &v[start-1]) {
			start--
		}
		reverse(v[start:end])
	} else {
		for start > 0 && !less(&v[start], &v[start-1]) {
			start--
		}
	}
	return start
}

func reverse[E any](v []E) {
	for i, j := 0, len(v)-1; i < j; i, j = i+1, j-1 {
		v[i], v[j] = v[j], v[i]
	}
}

// extendRun grows the sorted range v[start:end] backwards when it is too
// short to be worth merging, and returns the new start.
func extendRun[E any](v []E, start, end int, less lessFunc[E], networks bool) int {
	found := start
	runLen := end - found

	switch {
	case networks && runLen < maxPreSort16 && found >= 16:
		start = found - 16
		sort16(v[start:found], less)
		insertionSortShiftLeft(v[start:end], 16, less)
	case runLen < minInsertionRun:
		start = max(0, found-(minInsertionRun-runLen))
		for i := found - 1; i >= start; i-- {
			insertHead(v[i:end], less)
		}
	}
	return start
}

// collapse examines the run stack and returns r such that runs[r] and
// runs[r+1] must be merged next, or -1 if a new run should be found first.
//
// The balance rule must hold for the top four runs: checking only the top
// three lets inputs build a stack whose lower runs violate it, which breaks
// the O(n log n) bound. A run starting at index 0 forces merging until the
// stack is fully collapsed.
func collapse(runs []run) int {
	n := len(runs)
	if n >= 2 &&
		(runs[n-1].start == 0 ||
			runs[n-2].len <= runs[n-1].len ||
			(n >= 3 && runs[n-3].len <= runs[n-2].len+runs[n-1].len) ||
			(n >= 4 && runs[n-4].len <= runs[n-3].len+runs[n-2].len)) {
		if n >= 3 && runs[n-3].len < runs[n-1].len {
			return n - 3
		}
		return n - 2
	}
	return -1
}
