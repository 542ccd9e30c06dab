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

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strconv"

	"github.com/samber/lo"

	"github.com/TruongNhanNguyen/sort-research-rs/backend"
	"github.com/TruongNhanNguyen/sort-research-rs/patterns"
)

// Check is a named property verified against one backend.
type Check struct {
	Name        string
	Description string
	Run         func(e *Env) error
}

var checks = []Check{
	{"basic", "fixed small inputs and zero-size elements", checkBasic},
	{"fixed_seed", "the seed is stable for a whole run", checkFixedSeed},
	{"random", "full-range random i32", sizesI32(func(s *patterns.Source, n int) []int32 { return s.Random(n) })},
	{"random_type_u64", "full-range random u64", checkRandomU64},
	{"random_d4", "random values in [0, 4)", randomDistinct(4)},
	{"random_d8", "random values in [0, 8)", randomDistinct(8)},
	{"random_d16", "random values in [0, 16)", randomDistinct(16)},
	{"random_d256", "random values in [0, 256)", randomDistinct(256)},
	{"random_d1024", "random values in [0, 1024)", randomDistinct(1024)},
	{"random_z1", "Zipf distribution, exponent 1", randomZipf(1.0)},
	{"random_z1_03", "Zipf distribution, exponent 1.03", randomZipf(1.03)},
	{"random_z2", "Zipf distribution, exponent 2", randomZipf(2.0)},
	{"random_s50", "random with the first 50% sorted", randomSorted(50)},
	{"random_s95", "random with the first 95% sorted", randomSorted(95)},
	{"random_narrow", "random values in [0, log2(n)*100]", sizesI32(func(s *patterns.Source, n int) []int32 {
		if n <= 3 {
			return []int32{}
		}
		return s.RandomUniform(n, 0, int32(patterns.Log2Round(n))*100+1)
	})},
	{"random_binary", "random zeros and ones", sizesI32(func(s *patterns.Source, n int) []int32 { return s.RandomUniform(n, 0, 2) })},
	{"all_equal", "every element equal", sizesI32(func(s *patterns.Source, n int) []int32 { return s.AllEqual(n) })},
	{"ascending", "already sorted", sizesI32(func(s *patterns.Source, n int) []int32 { return s.Ascending(n) })},
	{"descending", "reverse sorted", sizesI32(func(s *patterns.Source, n int) []int32 { return s.Descending(n) })},
	{"saw_ascending", "log2(n) ascending teeth", sizesI32(func(s *patterns.Source, n int) []int32 {
		return s.SawAscending(n, patterns.Log2Round(n))
	})},
	{"saw_descending", "log2(n) descending teeth", sizesI32(func(s *patterns.Source, n int) []int32 {
		return s.SawDescending(n, patterns.Log2Round(n))
	})},
	{"saw_mixed", "log2(n) teeth of either direction", sizesI32(func(s *patterns.Source, n int) []int32 {
		return s.SawMixed(n, patterns.Log2Round(n))
	})},
	{"saw_mixed_range", "teeth of 20 to 50 elements of either direction", sizesI32(func(s *patterns.Source, n int) []int32 {
		return s.SawMixedRange(n, 20, 50)
	})},
	{"pipe_organ", "ascending then descending", sizesI32(func(s *patterns.Source, n int) []int32 { return s.PipeOrgan(n) })},
	{"random_str", "decimal strings of random values", checkRandomStr},
	{"random_cell", "method-accessed int32 cells", checkRandomCell},
	{"random_large_val", "1 KiB elements", checkRandomLargeVal},
	{"dyn_val", "interface elements of two concrete types", checkDynVal},
	{"stability", "equal keys keep their input order", checkStability},
	{"stability_with_patterns", "stability over the custom pattern set", checkStabilityWithPatterns},
	{"comp_panic", "a panicking comparator over slice elements", checkCompPanic},
	{"observable_is_less", "every comparison is visible on the sorted elements", checkObservableIsLess},
	{"observable_is_less_u64", "comparisons are visible across the fixed-width boundary", checkObservableIsLessU64},
	{"observable_is_less_ptr", "comparisons through shared pointers are visible", checkObservableIsLessPtr},
	{"panic_retain_original_set_i32", "comparator panic keeps every i32", panicRetainOriginalSet(i32Type)},
	{"panic_retain_original_set_string", "comparator panic keeps every string", panicRetainOriginalSet(stringType)},
	{"panic_retain_original_set_cell", "comparator panic keeps every cell", panicRetainOriginalSet(cellType)},
	{"panic_observable_is_less_i32", "comparator panic keeps counted i32 updates", panicObservableIsLess(i32Type)},
	{"panic_observable_is_less_string", "comparator panic keeps counted string updates", panicObservableIsLess(stringType)},
	{"panic_observable_is_less_cell", "comparator panic keeps counted cell updates", panicObservableIsLess(cellType)},
	{"deterministic_i32", "repeated sorts give identical i32 output", deterministic(i32Type)},
	{"deterministic_string", "repeated sorts give identical string output", deterministic(stringType)},
	{"deterministic_cell", "repeated sorts give identical cell output", deterministic(cellType)},
	{"self_cmp_i32", "no i32 element is compared with itself", selfCmp(i32Type)},
	{"self_cmp_string", "no string element is compared with itself", selfCmp(stringType)},
	{"self_cmp_cell", "no cell element is compared with itself", selfCmp(cellType)},
	{"violate_ord_retain_original_set_i32", "invalid orders keep every i32", violateOrdRetainOriginalSet(i32Type)},
	{"violate_ord_retain_original_set_string", "invalid orders keep every string", violateOrdRetainOriginalSet(stringType)},
	{"violate_ord_retain_original_set_cell", "invalid orders keep every cell", violateOrdRetainOriginalSet(cellType)},
	{"sort_vs_sort_by", "Sort and SortBy with the natural order agree", checkSortVsSortBy},
	{"int_edge", "extreme integer values", checkIntEdge},
}

// Checks returns every registered check in run order.
func Checks() []Check {
	return slices.Clone(checks)
}

// CheckNames returns the names of every registered check.
func CheckNames() []string {
	return lo.Map(checks, func(c Check, _ int) string { return c.Name })
}

// LookupCheck returns the check called name.
func LookupCheck(name string) (Check, error) {
	c, ok := lo.Find(checks, func(c Check) bool { return c.Name == name })
	if !ok {
		return Check{}, fmt.Errorf("%w: %q", ErrUnknownCheck, name)
	}
	return c, nil
}

// SelectChecks resolves names, or all checks when empty, and drops the
// ones named in skip. Unknown names in either list are an error.
func SelectChecks(names, skip []string) ([]Check, error) {
	selected := Checks()
	if len(names) > 0 {
		selected = selected[:0:0]
		for _, name := range lo.Uniq(names) {
			c, err := LookupCheck(name)
			if err != nil {
				return nil, err
			}
			selected = append(selected, c)
		}
	}
	for _, name := range skip {
		if _, err := LookupCheck(name); err != nil {
			return nil, err
		}
	}
	return lo.Reject(selected, func(c Check, _ int) bool { return slices.Contains(skip, c.Name) }), nil
}

func sizesI32(gen func(s *patterns.Source, n int) []int32) func(e *Env) error {
	return func(e *Env) error {
		return testImplI32(e, func(n int) []int32 { return gen(e.Source, n) })
	}
}

func randomDistinct(k int32) func(e *Env) error {
	return sizesI32(func(s *patterns.Source, n int) []int32 {
		if n <= 3 {
			return []int32{}
		}
		return s.RandomUniform(n, 0, k)
	})
}

func randomZipf(exponent float64) func(e *Env) error {
	return sizesI32(func(s *patterns.Source, n int) []int32 { return s.RandomZipf(n, exponent) })
}

func randomSorted(percent float64) func(e *Env) error {
	return sizesI32(func(s *patterns.Source, n int) []int32 { return s.RandomSorted(n, percent) })
}

func checkBasic(e *Env) error {
	inputs := [][]int32{
		{},
		{2, 3},
		{2, 3, 6},
		{2, 3, 99, 6},
		{2, 7709, 400, 90932},
		{15, -1, 3, -1, -3, -1, 7},
	}
	for _, v := range inputs {
		if err := sortComp(e, v, cmp.Compare[int32], sortOrdered[int32](e)); err != nil {
			return err
		}
	}

	if !backend.Supports[struct{}](e.Backend) {
		return nil
	}
	for _, n := range []int{0, 1, 2, 3, 100} {
		v := make([]struct{}, n)
		calls := 0
		err := backend.SortBy(e.Backend, v, func(a, b *struct{}) int {
			calls++
			return 0
		})
		if err != nil {
			return fmt.Errorf("zero-size elements, n=%d: %w", n, err)
		}
		if calls > 0 {
			return fmt.Errorf("%w: zero-size elements, n=%d, comparator called %d times", ErrMismatch, n, calls)
		}
	}
	return nil
}

func checkFixedSeed(e *Env) error {
	if e.Source.Seed() != e.Config.Seed {
		return fmt.Errorf("%w: source seed %d, configured %d", ErrNondeterministic, e.Source.Seed(), e.Config.Seed)
	}
	a := digest(patterns.NewSource(e.Config.Seed).Random(100))
	b := digest(e.Source.Random(100))
	if a != b {
		return fmt.Errorf("%w: seed %d generated two different inputs", ErrNondeterministic, e.Config.Seed)
	}
	return nil
}

func checkRandomU64(e *Env) error {
	gen := func(n int) []uint64 {
		return lo.Map(e.Source.Random(n), func(v int32, _ int) uint64 { return widenU64(v) })
	}
	return testImpl(e, gen, cmp.Compare[uint64], sortOrdered[uint64](e))
}

func checkRandomStr(e *Env) error {
	gen := func(n int) []string {
		return lo.Map(e.Source.Random(n), func(v int32, _ int) string { return strconv.Itoa(int(v)) })
	}
	return testImpl(e, gen, cmp.Compare[string], sortOrdered[string](e))
}

func checkRandomCell(e *Env) error {
	gen := func(n int) []cell { return cellType.convert(e.Source.Random(n)) }
	return testImpl(e, gen, cellType.compare, sortWith(e, cellType.compare))
}

func checkRandomLargeVal(e *Env) error {
	largest := 0
	if len(e.Config.Sizes) > 0 {
		largest = slices.Max(e.Config.Sizes)
	}
	gen := func(n int) []kibiVal {
		if n == largest {
			return []kibiVal{}
		}
		return lo.Map(e.Source.Random(n), func(v int32, _ int) kibiVal { return newKibiVal(v) })
	}
	return testImpl(e, gen, compareKibiVal, sortWith(e, compareKibiVal))
}

func checkDynVal(e *Env) error {
	gen := func(n int) []dynVal {
		return lo.Map(e.Source.Random(n), func(v int32, _ int) dynVal { return newDynVal(v) })
	}
	return testImpl(e, gen, compareDynVal, sortWith(e, compareDynVal))
}

// compareKeys orders packed pairs by key only.
func compareKeys(a, b *uint64) int {
	ka, _ := unpackPair(*a)
	kb, _ := unpackPair(*b)
	return cmp.Compare(ka, kb)
}

// checkPairsStable sorts v by key and verifies that equal keys kept their
// ascending occurrence counts.
func checkPairsStable(e *Env, v []uint64) error {
	if err := backend.SortBy(e.Backend, v, compareKeys); err != nil {
		return err
	}
	for i := 1; i < len(v); i++ {
		if comparePairs(v[i-1], v[i]) > 0 {
			k0, c0 := unpackPair(v[i-1])
			k1, c1 := unpackPair(v[i])
			return fmt.Errorf("%w: n=%d, (%d, %d) before (%d, %d) at index %d",
				ErrUnstable, len(v), k0, c0, k1, c1, i)
		}
	}
	return nil
}

func checkStability(e *Env) error {
	if err := e.requireStable(); err != nil {
		return err
	}

	keys := e.Source.RandomUniform(5_000, 0, 10)
	next := 0
	lengths := append(lo.RangeFrom(2, 53), lo.RangeFrom(3_000, 10)...)

	for range 10 {
		for _, n := range lengths {
			var counts [10]int32
			v := make([]uint64, n)
			for i := range v {
				k := keys[next]
				next = (next + 1) % len(keys)
				counts[k]++
				v[i] = packPair(k, counts[k])
			}
			if err := checkPairsStable(e, v); err != nil {
				return err
			}
		}
	}
	return nil
}

func checkStabilityWithPatterns(e *Env) error {
	if err := e.requireStable(); err != nil {
		return err
	}
	return testImplCustom(e, func(n int, p namedPattern) error {
		var counts [128]int32
		v := lo.Map(p.gen(n), func(val int32, _ int) uint64 {
			k := saturatingAbs(val) % 128
			counts[k]++
			return packPair(k, counts[k])
		})
		return checkPairsStable(e, v)
	})
}

func checkCompPanic(e *Env) error {
	strong := e.strongSafety()
	for _, n := range e.Config.Sizes {
		if n < 2 {
			continue
		}
		values := lo.Map(e.Source.Random(n), func(v int32, _ int) []int32 { return []int32{v, v, v} })
		before := multisetOf(lo.Map(values, func(v []int32, _ int) int32 { return v[0] }))
		limit := math.MaxInt32 / int32(min(n, math.MaxInt32))

		panicked, _, err := catchPanic(func() error {
			return backend.SortBy(e.Backend, values, func(a, b *[]int32) int {
				if saturatingAbs((*a)[0]) < limit {
					panic(fmt.Sprintf("explicit panic, seed %d, n %d, a %d, b %d", e.Config.Seed, n, (*a)[0], (*b)[0]))
				}
				return cmp.Compare((*a)[0], (*b)[0])
			})
		})
		if err != nil {
			return err
		}

		for i, v := range values {
			if len(v) != 3 || v[0] != v[1] || v[1] != v[2] {
				return fmt.Errorf("%w: n=%d, torn element %v at index %d", ErrMultisetChanged, n, v, i)
			}
		}
		if !panicked {
			if i := firstUnsorted(e.verify, values, func(a, b []int32) int { return cmp.Compare(a[0], b[0]) }); i >= 0 {
				return fmt.Errorf("%w: n=%d, unsorted at index %d", ErrMismatch, n, i)
			}
		}
		if panicked && strong {
			after := multisetOf(lo.Map(values, func(v []int32, _ int) int32 { return v[0] }))
			if err := checkMultiset(before, after, fmt.Sprintf("n=%d after comparator panic", n)); err != nil {
				return err
			}
		}
	}
	return nil
}

// counted is an element that records how often it took part in a
// comparison.
type counted[T any] struct {
	val   T
	count uint32
}

func countsOf[T any](v []counted[T]) uint64 {
	return lo.SumBy(v, func(c counted[T]) uint64 { return uint64(c.count) })
}

func checkObservableIsLess(e *Env) error {
	if err := e.requireObservable(); err != nil {
		return err
	}
	return testImplCustom(e, func(n int, p namedPattern) error {
		v := lo.Map(p.gen(n), func(val int32, _ int) counted[int32] { return counted[int32]{val: val} })
		var calls uint64
		err := backend.SortBy(e.Backend, v, func(a, b *counted[int32]) int {
			a.count++
			b.count++
			calls++
			return cmp.Compare(a.val, b.val)
		})
		if err != nil {
			return err
		}
		if total := countsOf(v); total != 2*calls {
			return fmt.Errorf("%w: %d comparisons but %d recorded touches", ErrObservability, calls, total)
		}
		return nil
	})
}

func checkObservableIsLessU64(e *Env) error {
	if err := e.requireObservable(); err != nil {
		return err
	}
	return testImplCustom(e, func(n int, p namedPattern) error {
		v := lo.Map(p.gen(n), func(val int32, _ int) uint64 { return packPair(val, 0) })
		var calls uint64
		err := backend.SortBy(e.Backend, v, func(a, b *uint64) int {
			*a += 1 << 32
			*b += 1 << 32
			calls++
			return compareKeys(a, b)
		})
		if err != nil {
			return err
		}
		total := lo.SumBy(v, func(x uint64) uint64 { return x >> 32 })
		if total != 2*calls {
			return fmt.Errorf("%w: %d comparisons but %d recorded touches", ErrObservability, calls, total)
		}
		return nil
	})
}

func checkObservableIsLessPtr(e *Env) error {
	return testImplCustom(e, func(n int, p namedPattern) error {
		v := lo.Map(p.gen(n), func(val int32, _ int) *counted[int32] { return &counted[int32]{val: val} })
		var calls uint64
		err := backend.SortBy(e.Backend, v, func(a, b **counted[int32]) int {
			(*a).count++
			(*b).count++
			calls++
			return cmp.Compare((*a).val, (*b).val)
		})
		if err != nil {
			return err
		}
		total := lo.SumBy(v, func(c *counted[int32]) uint64 { return uint64(c.count) })
		if total != 2*calls {
			return fmt.Errorf("%w: %d comparisons but %d recorded touches", ErrObservability, calls, total)
		}
		return nil
	})
}

func panicRetainOriginalSet[T any](et elemType[T]) func(e *Env) error {
	return func(e *Env) error {
		strong := e.strongSafety()
		return testImplCustom(e, func(n int, p namedPattern) error {
			data := et.convert(p.gen(n))
			before := multisetOf(et.values(data))

			required, err := compsRequired(e, data, et.compare)
			if err != nil {
				return err
			}
			if required == 0 {
				return nil
			}
			threshold := e.panicThreshold(required)

			calls := 0
			panicked, _, err := catchPanic(func() error {
				return backend.SortBy(e.Backend, data, func(a, b *T) int {
					if calls == threshold {
						panic(fmt.Sprintf("explicit panic at comparison %d", calls))
					}
					calls++
					return et.compare(*a, *b)
				})
			})
			if err != nil {
				return err
			}
			if !panicked {
				return fmt.Errorf("%w: threshold %d of %d comparisons", ErrMissingPanic, threshold, required)
			}
			if strong {
				return checkMultiset(before, multisetOf(et.values(data)), et.name+" after comparator panic")
			}
			return nil
		})
	}
}

func panicObservableIsLess[T any](et elemType[T]) func(e *Env) error {
	return func(e *Env) error {
		if err := e.requireObservable(); err != nil {
			return err
		}
		compare := func(a, b counted[T]) int { return et.compare(a.val, b.val) }
		valuesOf := func(v []counted[T]) []int32 {
			return lo.Map(v, func(c counted[T], _ int) int32 { return et.to(c.val) })
		}

		return testImplCustom(e, func(n int, p namedPattern) error {
			data := lo.Map(et.convert(p.gen(n)), func(val T, _ int) counted[T] { return counted[T]{val: val} })
			before := multisetOf(valuesOf(data))

			required, err := compsRequired(e, data, compare)
			if err != nil {
				return err
			}
			if required == 0 {
				return nil
			}
			threshold := e.panicThreshold(required)

			var calls uint64
			panicked, _, err := catchPanic(func() error {
				return backend.SortBy(e.Backend, data, func(a, b *counted[T]) int {
					if calls == uint64(threshold) {
						panic(fmt.Sprintf("explicit panic at comparison %d", calls))
					}
					a.count++
					b.count++
					calls++
					return compare(*a, *b)
				})
			})
			if err != nil {
				return err
			}
			if !panicked {
				return fmt.Errorf("%w: threshold %d of %d comparisons", ErrMissingPanic, threshold, required)
			}
			if total := countsOf(data); total != 2*calls {
				return fmt.Errorf("%w: %d comparisons before the panic but %d recorded touches",
					ErrObservability, calls, total)
			}
			return checkMultiset(before, multisetOf(valuesOf(data)), et.name+" after comparator panic")
		})
	}
}

func deterministic[T any](et elemType[T]) func(e *Env) error {
	return func(e *Env) error {
		compare := func(a, b *T) int {
			return cmp.Compare(et.to(*a)%10_000, et.to(*b)%10_000)
		}
		return testImplCustom(e, func(n int, p namedPattern) error {
			input := et.convert(p.gen(n))
			first := slices.Clone(input)
			second := slices.Clone(input)
			if err := backend.SortBy(e.Backend, first, compare); err != nil {
				return err
			}
			if err := backend.SortBy(e.Backend, second, compare); err != nil {
				return err
			}
			if digest(et.values(first)) != digest(et.values(second)) {
				return fmt.Errorf("%w: two sorts of the same %s input differ", ErrNondeterministic, et.name)
			}
			return nil
		})
	}
}

func selfCmp[T any](et elemType[T]) func(e *Env) error {
	return func(e *Env) error {
		return testImplCustom(e, func(n int, p namedPattern) error {
			data := et.convert(p.gen(n))
			self := 0
			err := backend.SortBy(e.Backend, data, func(a, b *T) int {
				if a == b {
					self++
				}
				return et.compare(*a, *b)
			})
			if err != nil {
				return err
			}
			if self > 0 {
				return fmt.Errorf("%w: %d comparisons of an element with itself", ErrSelfComparison, self)
			}
			if i := firstUnsorted(e.verify, data, et.compare); i >= 0 {
				return fmt.Errorf("%w: unsorted at index %d", ErrMismatch, i)
			}
			return nil
		})
	}
}

func violateOrdRetainOriginalSet[T any](et elemType[T]) func(e *Env) error {
	return func(e *Env) error {
		return testImplCustom(e, func(n int, p namedPattern) error {
			input := p.gen(n)
			before := multisetOf(et.values(et.convert(input)))
			for _, c := range invalidComparators(e.Source, et) {
				data := et.convert(input)
				_, _, err := catchPanic(func() error {
					return backend.SortBy(e.Backend, data, c.compare)
				})
				if err != nil {
					return fmt.Errorf("comparator %s: %w", c.name, err)
				}
				if err := checkMultiset(before, multisetOf(et.values(data)), "comparator "+c.name); err != nil {
					return err
				}
			}
			return nil
		})
	}
}

func checkSortVsSortBy(e *Env) error {
	for _, n := range e.Config.Sizes {
		input := e.Source.Random(n)
		a := slices.Clone(input)
		b := slices.Clone(input)
		if err := backend.Sort(e.Backend, a); err != nil {
			return err
		}
		if err := backend.SortBy(e.Backend, b, func(x, y *int32) int { return cmp.Compare(*x, *y) }); err != nil {
			return err
		}
		for i := range a {
			if a[i] != b[i] {
				return fmt.Errorf("%w: n=%d, Sort and SortBy differ at index %d", ErrMismatch, n, i)
			}
		}
	}
	return nil
}

func checkIntEdge(e *Env) error {
	const (
		maxI, minI = math.MaxInt32, math.MinInt32
	)
	inputs := [][]int32{
		{maxI, minI},
		{minI, maxI},
		{minI, 3},
		{minI, -3},
		{minI, -3, maxI},
		{minI, -3, maxI, minI, 5},
		{maxI, 3, minI, 5, minI, -3, 60, 200, 50, 7, 10},
	}
	if len(e.Config.Sizes) > 0 {
		n := e.Config.Sizes[max(0, len(e.Config.Sizes)-2)]
		large := e.Source.Random(n)
		large = append(large, maxI, minI, maxI)
		inputs = append(inputs, large)
	}
	for _, v := range inputs {
		if err := sortComp(e, v, cmp.Compare[int32], sortOrdered[int32](e)); err != nil {
			return err
		}
	}

	const maxU = math.MaxUint64
	inputsU64 := [][]uint64{
		{maxU, 0},
		{0, maxU},
		{maxU, 3},
		{0, maxU, 1, maxU - 1},
		{maxU, 3, 0, 5, 0, maxU - 3, 60, 200, 50, 7, 10},
	}
	for _, v := range inputsU64 {
		if err := sortComp(e, v, cmp.Compare[uint64], sortOrdered[uint64](e)); err != nil {
			return err
		}
	}
	return nil
}
