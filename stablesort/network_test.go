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

// permutations calls fn with every permutation of 0..n-1.
func permutations(n int, fn func([]int32)) {
	p := make([]int32, n)
	for i := range p {
		p[i] = int32(i)
	}
	var rec func(k int)
	rec = func(k int) {
		if k == n {
			fn(slices.Clone(p))
			return
		}
		for i := k; i < n; i++ {
			p[k], p[i] = p[i], p[k]
			rec(k + 1)
			p[k], p[i] = p[i], p[k]
		}
	}
	rec(0)
}

// TestSortNetworksExhaustive tests sort2, sort3 and sort4 on every permutation
func TestSortNetworksExhaustive(t *testing.T) {
	networks := []struct {
		name string
		n    int
		fn   func([]int32, lessFunc[int32])
	}{
		{"sort2", 2, sort2[int32]},
		{"sort3", 3, sort3[int32]},
		{"sort4", 4, sort4[int32]},
	}
	for _, nw := range networks {
		permutations(nw.n, func(p []int32) {
			in := slices.Clone(p)
			nw.fn(p, lessInt32)
			if !IsSorted(p) {
				t.Errorf("%s(%v) = %v, not sorted", nw.name, in, p)
			}
		})
	}
}

// TestSort8 tests sort8 on every permutation of 8 elements
func TestSort8(t *testing.T) {
	permutations(8, func(p []int32) {
		in := slices.Clone(p)
		sort8(p, lessInt32)
		if !IsSorted(p) {
			t.Fatalf("sort8(%v) = %v, not sorted", in, p)
		}
	})
}

// TestSort16 tests sort16 on random and duplicate-heavy inputs
func TestSort16(t *testing.T) {
	r := newRand(16)
	for _, bound := range []int32{0, 2, 3, 8, 100} {
		for range 2000 {
			data := randomInt32s(r, 16, bound)
			want := slices.Clone(data)
			slices.Sort(want)
			sort16(data, lessInt32)
			if !slices.Equal(data, want) {
				t.Fatalf("sort16 = %v, want %v", data, want)
			}
		}
	}
}

// TestNetworksStable tests that the networks never reorder equal keys
func TestNetworksStable(t *testing.T) {
	r := newRand(17)
	less := func(a, b *pair) bool { return a.key < b.key }
	for _, n := range []int{2, 3, 4, 8, 16} {
		for range 1000 {
			data := randomPairs(r, n, 3)
			switch n {
			case 2:
				sort2(data, less)
			case 3:
				sort3(data, less)
			case 4:
				sort4(data, less)
			case 8:
				sort8(data, less)
			case 16:
				sort16(data, less)
			}
			if !isStable(data) {
				t.Fatalf("network for n=%d not stable: %v", n, data)
			}
		}
	}
}

// TestSort16PanicRestores tests that a panic inside sort16 restores the
// input rather than leaving duplicates.
func TestSort16PanicRestores(t *testing.T) {
	r := newRand(18)
	orig := randomInt32s(r, 16, 1000)

	calls := 0
	sort16(slices.Clone(orig), countingLess(&calls))

	for panicAt := range calls {
		data := slices.Clone(orig)
		mustPanic(t, func() { sort16(data, panickingLess(panicAt)) })
		if !sameElements(data, orig) {
			t.Fatalf("panicAt=%d: elements changed: %v", panicAt, data)
		}
	}
}

// TestParityMergeInconsistent tests that a lying comparator is detected
// and the fallback still yields a permutation.
func TestParityMergeInconsistent(t *testing.T) {
	r := newRand(19)
	for range 500 {
		orig := randomInt32s(r, 16, 50)
		data := slices.Clone(orig)
		cr := newRand(uint64(r.Uint32()))
		sort16(data, func(a, b *int32) bool { return cr.IntN(2) == 0 })
		if !sameElements(data, orig) {
			t.Fatalf("elements changed: %v -> %v", orig, data)
		}
	}
}

// TestParityMergeConsistent tests that parityMerge reports success for a
// valid comparator.
func TestParityMergeConsistent(t *testing.T) {
	r := newRand(20)
	for _, n := range []int{2, 4, 8, 16, 32} {
		for range 200 {
			src := randomInt32s(r, n, 10)
			slices.Sort(src[:n/2])
			slices.Sort(src[n/2:])
			dst := make([]int32, n)
			if !parityMerge(src, dst, lessInt32) {
				t.Fatalf("parityMerge(%v) reported inconsistency", src)
			}
			want := slices.Clone(src)
			slices.Sort(want)
			if !slices.Equal(dst, want) {
				t.Fatalf("parityMerge(%v) = %v, want %v", src, dst, want)
			}
		}
	}
}
