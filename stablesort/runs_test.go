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
	"slices"
	"testing"
)

// TestFindRun tests run detection from the end of the slice
func TestFindRun(t *testing.T) {
	tests := []struct {
		name      string
		in        []int32
		wantStart int
		want      []int32
	}{
		{"single", []int32{5}, 0, []int32{5}},
		{"ascending", []int32{1, 2, 3, 4}, 0, []int32{1, 2, 3, 4}},
		{"ascending_tail", []int32{9, 1, 2, 2, 3}, 1, []int32{9, 1, 2, 2, 3}},
		{"descending", []int32{4, 3, 2, 1}, 0, []int32{1, 2, 3, 4}},
		{"descending_tail", []int32{0, 9, 7, 5}, 1, []int32{0, 5, 7, 9}},
		// Equal neighbours end a strictly descending run.
		{"descending_with_tie", []int32{5, 5, 3, 1}, 1, []int32{5, 1, 3, 5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := slices.Clone(tt.in)
			start := findRun(v, len(v), lessInt32)
			if start != tt.wantStart {
				t.Errorf("findRun(%v) = %d, want %d", tt.in, start, tt.wantStart)
			}
			if !slices.Equal(v, tt.want) {
				t.Errorf("findRun(%v) left %v, want %v", tt.in, v, tt.want)
			}
		})
	}
}

// TestExtendRun tests that short runs grow to minInsertionRun
func TestExtendRun(t *testing.T) {
	r := newRand(4)
	for _, networks := range []bool{false, true} {
		v := randomInt32s(r, 40, 1000)
		end := len(v)
		slices.Sort(v[end-2:])
		start := extendRun(v, end-2, end, lessInt32, networks)

		wantLen := minInsertionRun
		if networks {
			wantLen = 16 + 2
		}
		if end-start != wantLen {
			t.Errorf("networks=%v: extended run length %d, want %d", networks, end-start, wantLen)
		}
		if !IsSorted(v[start:end]) {
			t.Errorf("networks=%v: extended run not sorted: %v", networks, v[start:end])
		}
	}

	// Near the front there is not enough room to extend fully.
	v := []int32{3, 2, 1}
	start := extendRun(v, 2, 3, lessInt32, true)
	if start != 0 || !IsSorted(v) {
		t.Errorf("extendRun near front = %d, %v", start, v)
	}
}

// TestCollapse tests the merge rule on the run stack
func TestCollapse(t *testing.T) {
	tests := []struct {
		name string
		runs []run
		want int
	}{
		{"one", []run{{start: 90, len: 10}}, -1},
		{"balanced", []run{{start: 70, len: 30}, {start: 60, len: 10}}, -1},
		{"front", []run{{start: 70, len: 30}, {start: 0, len: 70}}, 0},
		{"top_not_shorter", []run{{start: 90, len: 10}, {start: 80, len: 10}}, 0},
		{"three", []run{{start: 80, len: 20}, {start: 65, len: 15}, {start: 55, len: 10}}, 1},
		{"third_smaller", []run{{start: 95, len: 5}, {start: 45, len: 50}, {start: 25, len: 20}}, 0},
		{"four", []run{{start: 60, len: 40}, {start: 30, len: 30}, {start: 12, len: 18}, {start: 1, len: 11}}, 2},
	}
	for _, tt := range tests {
		if got := collapse(tt.runs); got != tt.want {
			t.Errorf("collapse(%s) = %d, want %d", tt.name, got, tt.want)
		}
	}
}

// TestMergeSortRunStack tests mergeSort directly with and without networks
func TestMergeSortRunStack(t *testing.T) {
	r := newRand(5)
	for _, networks := range []bool{false, true} {
		for _, n := range []int{21, 64, 333, 1024, 4097} {
			v := randomInt32s(r, n, 0)
			want := slices.Clone(v)
			slices.Sort(want)
			mergeSort(v, make([]int32, n/2), lessInt32, networks)
			if !slices.Equal(v, want) {
				t.Fatalf("mergeSort(n=%d, networks=%v) mismatch", n, networks)
			}
		}
	}
}
