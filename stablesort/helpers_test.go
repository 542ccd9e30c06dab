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
	"math/rand/v2"
	"slices"
	"testing"
)

// testSizes covers every small-sort branch, the insertion threshold and
// enough merge levels to exercise the run stack.
var testSizes = []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 15, 16, 17, 20, 21, 24, 30, 32, 33, 35, 50, 100, 200, 500, 1000, 2048, 5000}

// pair is a key plus the index it started at, for stability checks.
type pair struct {
	key int32
	idx int32
}

func comparePairKeys(a, b pair) int {
	return cmp.Compare(a.key, b.key)
}

func lessInt32(a, b *int32) bool {
	return *a < *b
}

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func randomInt32s(r *rand.Rand, n int, bound int32) []int32 {
	data := make([]int32, n)
	for i := range data {
		if bound <= 0 {
			data[i] = int32(r.Uint32())
		} else {
			data[i] = r.Int32N(bound)
		}
	}
	return data
}

func randomPairs(r *rand.Rand, n int, keys int32) []pair {
	data := make([]pair, n)
	for i := range data {
		data[i] = pair{key: r.Int32N(keys), idx: int32(i)}
	}
	return data
}

// isStable reports whether equal keys kept ascending original indices.
func isStable(data []pair) bool {
	for i := 1; i < len(data); i++ {
		if data[i-1].key > data[i].key {
			return false
		}
		if data[i-1].key == data[i].key && data[i-1].idx > data[i].idx {
			return false
		}
	}
	return true
}

// sameElements reports whether got is a permutation of want.
func sameElements(got, want []int32) bool {
	a := slices.Clone(got)
	b := slices.Clone(want)
	slices.Sort(a)
	slices.Sort(b)
	return slices.Equal(a, b)
}

func sum(data []int32) int64 {
	var s int64
	for _, v := range data {
		s += int64(v)
	}
	return s
}

// mustPanic runs fn and returns the value it panicked with.
func mustPanic(t *testing.T, fn func()) (r any) {
	t.Helper()
	defer func() {
		r = recover()
		if r == nil {
			t.Fatalf("expected a panic")
		}
	}()
	fn()
	return nil
}

// countingLess wraps lessInt32 and counts calls.
func countingLess(calls *int) lessFunc[int32] {
	return func(a, b *int32) bool {
		*calls++
		return *a < *b
	}
}

// panickingLess panics on call number panicAt (0-based).
func panickingLess(panicAt int) lessFunc[int32] {
	calls := 0
	return func(a, b *int32) bool {
		if calls == panicAt {
			panic("comparator panic")
		}
		calls++
		return *a < *b
	}
}
