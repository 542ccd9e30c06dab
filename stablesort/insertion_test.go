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

func TestInsertTail(t *testing.T) {
	tests := []struct {
		in, want []int32
	}{
		{[]int32{1, 2}, []int32{1, 2}},
		{[]int32{2, 1}, []int32{1, 2}},
		{[]int32{1, 3, 5, 7, 4}, []int32{1, 3, 4, 5, 7}},
		{[]int32{1, 3, 5, 7, 0}, []int32{0, 1, 3, 5, 7}},
	}
	for _, tt := range tests {
		v := slices.Clone(tt.in)
		insertTail(v, lessInt32)
		if !slices.Equal(v, tt.want) {
			t.Errorf("insertTail(%v) = %v, want %v", tt.in, v, tt.want)
		}
	}
}

func TestInsertHead(t *testing.T) {
	tests := []struct {
		in, want []int32
	}{
		{[]int32{1, 2}, []int32{1, 2}},
		{[]int32{2, 1}, []int32{1, 2}},
		{[]int32{4, 1, 3, 5, 7}, []int32{1, 3, 4, 5, 7}},
		{[]int32{9, 1, 3, 5, 7}, []int32{1, 3, 5, 7, 9}},
	}
	for _, tt := range tests {
		v := slices.Clone(tt.in)
		insertHead(v, lessInt32)
		if !slices.Equal(v, tt.want) {
			t.Errorf("insertHead(%v) = %v, want %v", tt.in, v, tt.want)
		}
	}
}

// TestInsertionPanic tests that the hole is filled when less panics
func TestInsertionPanic(t *testing.T) {
	orig := []int32{2, 4, 6, 8, 10, 12, 1}
	for panicAt := range len(orig) {
		v := slices.Clone(orig)
		func() {
			defer func() { _ = recover() }()
			insertTail(v, panickingLess(panicAt))
		}()
		if !sameElements(v, orig) {
			t.Fatalf("insertTail panicAt=%d: elements changed: %v", panicAt, v)
		}

		head := []int32{13, 2, 4, 6, 8, 10, 12}
		v = slices.Clone(head)
		func() {
			defer func() { _ = recover() }()
			insertHead(v, panickingLess(panicAt))
		}()
		if !sameElements(v, head) {
			t.Fatalf("insertHead panicAt=%d: elements changed: %v", panicAt, v)
		}
	}
}

func TestInsertionSortShiftLeft(t *testing.T) {
	r := newRand(6)
	for _, offset := range []int{1, 4, 8, 16} {
		v := randomInt32s(r, 20, 50)
		slices.Sort(v[:offset])
		insertionSortShiftLeft(v, offset, lessInt32)
		if !IsSorted(v) {
			t.Errorf("insertionSortShiftLeft(offset=%d) = %v", offset, v)
		}
	}

	// Out-of-range offsets are ignored.
	v := []int32{3, 2, 1}
	insertionSortShiftLeft(v, 0, lessInt32)
	insertionSortShiftLeft(v, 4, lessInt32)
	if !slices.Equal(v, []int32{3, 2, 1}) {
		t.Errorf("insertionSortShiftLeft with bad offset modified %v", v)
	}
}
