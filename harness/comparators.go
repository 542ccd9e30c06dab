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

package harness

import "github.com/TruongNhanNguyen/sort-research-rs/patterns"

// streakLen is how many consistent answers a streak comparator gives
// before it switches to a constant for as many calls.
const streakLen = 50

// invalidComparator is a comparator that is not a strict total order.
type invalidComparator[T any] struct {
	name    string
	compare func(a, b *T) int
}

// randomBits cycles through a fixed seeded sequence of 0s and 1s.
type randomBits struct {
	vals []int32
	idx  int
}

func (r *randomBits) next() int {
	v := r.vals[r.idx]
	r.idx++
	if r.idx == len(r.vals) {
		r.idx = 0
	}
	return int(v)
}

// invalidComparators returns fresh instances of the ten order-violating
// comparators. They keep state across calls, so a set must not be shared
// between concurrent sorts.
func invalidComparators[T any](src *patterns.Source, et elemType[T]) []invalidComparator[T] {
	orderings := src.RandomUniform(5_000, 0, 2)
	bitsA := &randomBits{vals: orderings}
	bitsB := &randomBits{vals: orderings}
	bitsC := &randomBits{vals: orderings}

	valid := func(a, b *T) int { return et.compare(*a, *b) }

	var (
		lastA, lastB   int32 = -1, -1
		counterB       int
		counterC       int
		streakA        int
		streakB        int
		threeWayResult = [...]int{-1, 0, 1}
	)

	return []invalidComparator[T]{
		{"random", func(a, b *T) int {
			return threeWayResult[bitsA.next()]
		}},
		{"always_less", func(a, b *T) int { return -1 }},
		{"always_equal", func(a, b *T) int { return 0 }},
		{"always_greater", func(a, b *T) int { return 1 }},
		{"equal_is_less", func(a, b *T) int {
			if valid(a, b) == 0 {
				return -1
			}
			return 1
		}},
		{"transitive_breaker", func(a, b *T) int {
			la, lb := lastA, lastB
			av, bv := et.to(*a), et.to(*b)
			lastA, lastB = av, bv
			if av == la && bv != lb {
				return valid(b, a)
			}
			return valid(a, b)
		}},
		{"reverse_1_percent", func(a, b *T) int {
			counterB += bitsB.next()
			if counterB >= 100 {
				counterB = 0
				return valid(b, a)
			}
			return valid(a, b)
		}},
		{"reverse_33_percent", func(a, b *T) int {
			counterC += bitsC.next()
			if counterC >= 3 {
				counterC = 0
				return valid(b, a)
			}
			return valid(a, b)
		}},
		{"streak_less", func(a, b *T) int {
			streakA++
			if streakA <= streakLen {
				return valid(a, b)
			}
			if streakA == streakLen*2 {
				streakA = 0
			}
			return -1
		}},
		{"streak_greater", func(a, b *T) int {
			streakB++
			if streakB <= streakLen {
				return valid(a, b)
			}
			if streakB == streakLen*2 {
				streakB = 0
			}
			return 1
		}},
	}
}
