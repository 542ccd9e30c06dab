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

// Package patterns generates reproducible input sequences for sort testing.
//
// Every generator is a pure function of the Source seed, the generator's
// parameters and the requested length: the same three always give the same
// sequence, regardless of call order or goroutine.
package patterns

import (
	"fmt"
	"math"
	"math/rand/v2"
	"os"
	"slices"
	"strconv"

	"github.com/zeebo/xxh3"
)

// Func generates a sequence of length n.
type Func func(n int) []int32

// Source produces seeded pattern sequences.
type Source struct {
	seed uint64
}

// NewSource returns a Source for seed.
func NewSource(seed uint64) *Source {
	return &Source{seed: seed}
}

// Seed returns the seed the Source was created with.
func (s *Source) Seed() uint64 {
	return s.seed
}

// SeedFromEnv returns the value of SEED if it is set and parses as a
// decimal uint64, and a fresh random seed otherwise.
func SeedFromEnv() uint64 {
	if val := os.Getenv("SEED"); val != "" {
		if seed, err := strconv.ParseUint(val, 10, 64); err == nil {
			return seed
		}
	}
	return rand.Uint64()
}

// rng derives an independent stream from the seed and a key naming the
// generator and its parameters.
func (s *Source) rng(key string, n int) *rand.Rand {
	h := xxh3.HashStringSeed(fmt.Sprintf("%s/%d", key, n), s.seed)
	return rand.New(rand.NewPCG(h, s.seed))
}

// Random returns n values drawn from the full int32 range.
func (s *Source) Random(n int) []int32 {
	r := s.rng("random", n)
	v := make([]int32, n)
	for i := range v {
		v[i] = int32(r.Uint32())
	}
	return v
}

// RandomUniform returns n values drawn uniformly from [lo, hi).
func (s *Source) RandomUniform(n int, lo, hi int32) []int32 {
	if hi <= lo {
		panic(fmt.Sprintf("patterns: empty range [%d, %d)", lo, hi))
	}
	r := s.rng(fmt.Sprintf("uniform/%d/%d", lo, hi), n)
	span := uint64(int64(hi) - int64(lo))
	v := make([]int32, n)
	for i := range v {
		v[i] = int32(int64(lo) + int64(r.Uint64N(span)))
	}
	return v
}

// RandomZipf returns n values in [1, n] following a Zipf distribution with
// the given exponent, so small values repeat heavily.
func (s *Source) RandomZipf(n int, exponent float64) []int32 {
	if n == 0 {
		return []int32{}
	}
	r := s.rng(fmt.Sprintf("zipf/%g", exponent), n)

	// math/rand/v2's Zipf requires an exponent above 1, so sample the
	// cumulative distribution directly.
	cdf := make([]float64, n)
	var total float64
	for k := range n {
		total += 1 / math.Pow(float64(k+1), exponent)
		cdf[k] = total
	}

	v := make([]int32, n)
	for i := range v {
		x := r.Float64() * total
		k, _ := slices.BinarySearch(cdf, x)
		v[i] = int32(min(k, n-1) + 1)
	}
	return v
}

// RandomSorted returns n random values whose first percent% are sorted.
func (s *Source) RandomSorted(n int, percent float64) []int32 {
	v := s.Random(n)
	k := int(math.Ceil(float64(n) * percent / 100))
	slices.Sort(v[:min(k, n)])
	return v
}

// AllEqual returns n copies of the same value.
func (s *Source) AllEqual(n int) []int32 {
	v := make([]int32, n)
	if n == 0 {
		return v
	}
	val := s.Random(1)[0]
	for i := range v {
		v[i] = val
	}
	return v
}

// Ascending returns 0..n-1.
func (s *Source) Ascending(n int) []int32 {
	v := make([]int32, n)
	for i := range v {
		v[i] = int32(i)
	}
	return v
}

// Descending returns n-1..0.
func (s *Source) Descending(n int) []int32 {
	v := s.Ascending(n)
	slices.Reverse(v)
	return v
}

// SawAscending returns random values cut into the given number of teeth,
// each sorted ascending.
func (s *Source) SawAscending(n, teeth int) []int32 {
	v := s.Random(n)
	for _, t := range chunks(n, teeth) {
		slices.Sort(v[t[0]:t[1]])
	}
	return v
}

// SawDescending is SawAscending with every tooth reversed.
func (s *Source) SawDescending(n, teeth int) []int32 {
	v := s.Random(n)
	for _, t := range chunks(n, teeth) {
		slices.Sort(v[t[0]:t[1]])
		slices.Reverse(v[t[0]:t[1]])
	}
	return v
}

// SawMixed returns random values cut into the given number of teeth, each
// sorted ascending or descending at random.
func (s *Source) SawMixed(n, teeth int) []int32 {
	v := s.Random(n)
	r := s.rng(fmt.Sprintf("saw_mixed/%d", teeth), n)
	for _, t := range chunks(n, teeth) {
		sortTooth(v[t[0]:t[1]], r.IntN(2) == 0)
	}
	return v
}

// SawMixedRange is SawMixed with tooth lengths drawn from [lo, hi).
func (s *Source) SawMixedRange(n, lo, hi int) []int32 {
	if lo < 1 || hi <= lo {
		panic(fmt.Sprintf("patterns: bad tooth range [%d, %d)", lo, hi))
	}
	v := s.Random(n)
	r := s.rng(fmt.Sprintf("saw_mixed_range/%d/%d", lo, hi), n)
	for start := 0; start < n; {
		end := min(start+lo+r.IntN(hi-lo), n)
		sortTooth(v[start:end], r.IntN(2) == 0)
		start = end
	}
	return v
}

// PipeOrgan returns random values with the first half sorted ascending and
// the second half descending.
func (s *Source) PipeOrgan(n int) []int32 {
	v := s.Random(n)
	mid := n / 2
	slices.Sort(v[:mid])
	slices.Sort(v[mid:])
	slices.Reverse(v[mid:])
	return v
}

func sortTooth(v []int32, ascending bool) {
	slices.Sort(v)
	if !ascending {
		slices.Reverse(v)
	}
}

// chunks splits [0, n) into at most teeth ranges of near-equal length.
func chunks(n, teeth int) [][2]int {
	if n == 0 {
		return nil
	}
	teeth = max(1, min(teeth, n))
	size := (n + teeth - 1) / teeth
	out := make([][2]int, 0, teeth)
	for start := 0; start < n; start += size {
		out = append(out, [2]int{start, min(start+size, n)})
	}
	return out
}

// Log2Round returns round(log2(n)), the tooth count and narrow-range width
// used for size-dependent patterns. It returns 0 for n < 1.
func Log2Round(n int) int {
	if n < 1 {
		return 0
	}
	return int(math.Round(math.Log2(float64(n))))
}
