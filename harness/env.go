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
	"bytes"
	"cmp"
	"errors"
	"fmt"
	"slices"

	"github.com/TruongNhanNguyen/sort-research-rs/backend"
	"github.com/TruongNhanNguyen/sort-research-rs/internal/workerpool"
	"github.com/TruongNhanNguyen/sort-research-rs/patterns"
)

// Env is what a check runs against. Each check run gets its own Env.
type Env struct {
	Backend  backend.Backend
	Config   Config
	Source   *patterns.Source
	Platform Platform

	check  string
	verify *workerpool.Pool
	out    bytes.Buffer
}

// NewEnv returns an Env for running a single check by hand. verify may be
// nil.
func NewEnv(b backend.Backend, cfg Config, verify *workerpool.Pool) *Env {
	return &Env{
		Backend:  b,
		Config:   cfg,
		Source:   patterns.NewSource(cfg.Seed),
		Platform: DetectPlatform(),
		verify:   verify,
	}
}

// Output returns what the check printed.
func (e *Env) Output() string {
	return e.out.String()
}

func (e *Env) logf(format string, args ...any) {
	fmt.Fprintf(&e.out, format, args...)
	if format == "" || format[len(format)-1] != '\n' {
		e.out.WriteByte('\n')
	}
}

// strongSafety reports whether panic checks must find every original
// element afterwards.
func (e *Env) strongSafety() bool {
	return !e.Config.OnlyCheckBasicExceptionSafety && e.Backend.Properties.StrongExceptionSafety
}

func (e *Env) requireStable() error {
	if !e.Backend.Properties.Stable {
		return fmt.Errorf("%w: %s is not stable", ErrSkipped, e.Backend.Name)
	}
	return nil
}

func (e *Env) requireObservable() error {
	if !e.Backend.Properties.ObservableComparisons {
		return fmt.Errorf("%w: %s compares copies", ErrSkipped, e.Backend.Name)
	}
	return nil
}

// sortOrdered returns a sort function using the backend's natural order.
func sortOrdered[T cmp.Ordered](e *Env) func([]T) error {
	return func(v []T) error {
		return backend.Sort(e.Backend, v)
	}
}

// sortWith returns a sort function using the backend's SortBy with a value
// comparator.
func sortWith[T any](e *Env, compare func(a, b T) int) func([]T) error {
	return func(v []T) error {
		return backend.SortBy(e.Backend, v, func(a, b *T) int { return compare(*a, *b) })
	}
}

// sortComp sorts v with sortFn and compares the result against the
// standard library's stable sort.
func sortComp[T any](e *Env, v []T, compare func(a, b T) int, sortFn func([]T) error) error {
	original := slices.Clone(v)
	expected := slices.Clone(v)
	slices.SortStableFunc(expected, compare)

	if err := sortFn(v); err != nil {
		return err
	}
	for i := range expected {
		if compare(expected[i], v[i]) != 0 {
			return reportMismatch(e, original, expected, v, i)
		}
	}
	return nil
}

// reportMismatch prints small mismatches in full and dumps large ones as
// artifacts when enabled.
func reportMismatch[T any](e *Env, original, expected, got []T, at int) error {
	n := len(original)
	err := fmt.Errorf("%w: n=%d, first difference at index %d", ErrMismatch, n, at)

	if n <= e.Config.SmallTestLimit {
		e.logf("Original: %v", original)
		e.logf("Expected: %v", expected)
		e.logf("Got:      %v", got)
		return err
	}
	if !e.Config.WriteLargeFailure {
		e.logf("Failed comparison, re-run with WRITE_LARGE_FAILURE set to get the data.")
		return err
	}

	a := &Artifact{
		Seed:     e.Config.Seed,
		Backend:  e.Backend.Name,
		Check:    e.check,
		Platform: e.Platform.String(),
	}
	switch o := any(original).(type) {
	case []int32:
		a.Kind = KindI32
		a.Original = widen(o)
		a.Expected = widen(any(expected).([]int32))
		a.Got = widen(any(got).([]int32))
	case []uint64:
		a.Kind = KindU64
		a.Original = o
		a.Expected = any(expected).([]uint64)
		a.Got = any(got).([]uint64)
	default:
		e.logf("Failed comparison on %T, which cannot be written as an artifact.", original)
		return err
	}

	path, werr := WriteArtifact(e.Config.ArtifactDir, a)
	if werr != nil {
		return errors.Join(err, werr)
	}
	e.logf("Failed comparison, see %s", path)
	return err
}

func widen(v []int32) []uint64 {
	out := make([]uint64, len(v))
	for i, x := range v {
		out[i] = uint64(int64(x))
	}
	return out
}

// testImpl runs sortComp for every configured size.
func testImpl[T any](e *Env, gen func(n int) []T, compare func(a, b T) int, sortFn func([]T) error) error {
	for _, n := range e.Config.Sizes {
		if err := sortComp(e, gen(n), compare, sortFn); err != nil {
			return err
		}
	}
	return nil
}

func testImplI32(e *Env, gen patterns.Func) error {
	return testImpl(e, gen, cmp.Compare[int32], sortOrdered[int32](e))
}

// namedPattern is one entry of the custom pattern set.
type namedPattern struct {
	name string
	gen  patterns.Func
}

func (e *Env) customPatterns() []namedPattern {
	s := e.Source
	return []namedPattern{
		{"random", s.Random},
		{"random_log2", func(n int) []int32 { return s.RandomUniform(n, 0, int32(patterns.Log2Round(n))+1) }},
		{"random_binary", func(n int) []int32 { return s.RandomUniform(n, 0, 2) }},
		{"ascending", s.Ascending},
		{"descending", s.Descending},
		{"saw_mixed", func(n int) []int32 { return s.SawMixed(n, patterns.Log2Round(n)) }},
		{"random_zipf", func(n int) []int32 { return s.RandomZipf(n, 1.0) }},
	}
}

// testImplCustom calls fn for every custom pattern and size.
func testImplCustom(e *Env, fn func(n int, p namedPattern) error) error {
	sizes := e.Config.customSizes()
	for _, p := range e.customPatterns() {
		for _, n := range sizes {
			if err := fn(n, p); err != nil {
				return fmt.Errorf("pattern %s, n=%d: %w", p.name, n, err)
			}
		}
	}
	return nil
}

// catchPanic runs fn and reports whether it panicked, with what, and the
// error it returned if it did not.
func catchPanic(fn func() error) (panicked bool, value any, err error) {
	defer func() {
		if r := recover(); r != nil {
			panicked, value = true, r
		}
	}()
	return false, nil, fn()
}

// compsRequired counts the comparisons the backend makes sorting a copy of
// v with compare.
func compsRequired[T any](e *Env, v []T, compare func(a, b T) int) (int, error) {
	count := 0
	err := backend.SortBy(e.Backend, slices.Clone(v), func(a, b *T) int {
		count++
		return compare(*a, *b)
	})
	return count, err
}

// panicThreshold picks the comparison, in [0, required), at which a
// comparator should panic.
func (e *Env) panicThreshold(required int) int {
	return int(e.Source.RandomUniform(1, 1, int32(required)+1)[0]) - 1
}
