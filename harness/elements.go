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
	"strconv"
)

// elemType describes how a check builds elements from int32 pattern
// values and reads the value back. Checks that exist once per element
// type take one of these.
type elemType[T any] struct {
	name    string
	from    func(int32) T
	to      func(T) int32
	compare func(a, b T) int
}

func (e elemType[T]) convert(pattern []int32) []T {
	out := make([]T, len(pattern))
	for i, v := range pattern {
		out[i] = e.from(v)
	}
	return out
}

func (e elemType[T]) values(v []T) []int32 {
	out := make([]int32, len(v))
	for i, x := range v {
		out[i] = e.to(x)
	}
	return out
}

var i32Type = elemType[int32]{
	name:    "i32",
	from:    func(v int32) int32 { return v },
	to:      func(v int32) int32 { return v },
	compare: cmp.Compare[int32],
}

// Strings are zero-padded so lexical order matches numeric order of the
// absolute value.
var stringType = elemType[string]{
	name: "string",
	from: func(v int32) string { return fmt.Sprintf("%010d", saturatingAbs(v)) },
	to: func(s string) int32 {
		v, err := strconv.ParseInt(s, 10, 32)
		if err != nil {
			panic(fmt.Sprintf("harness: corrupted string element %q", s))
		}
		return int32(v)
	},
	compare: cmp.Compare[string],
}

// cell is an int32 that is only accessed through its methods, standing in
// for interior-mutable element types.
type cell struct {
	v int32
}

func (c cell) get() int32   { return c.v }
func (c *cell) set(v int32) { c.v = v }

var cellType = elemType[cell]{
	name:    "cell",
	from:    func(v int32) cell { return cell{v: v} },
	to:      cell.get,
	compare: func(a, b cell) int { return cmp.Compare(a.get(), b.get()) },
}

// kibiVal is a 1 KiB element whose first word is the key.
type kibiVal [128]int64

func newKibiVal(v int32) kibiVal {
	var k kibiVal
	for i := range k {
		k[i] = int64(v) + int64(i)
	}
	return k
}

func compareKibiVal(a, b kibiVal) int {
	return cmp.Compare(a[0], b[0])
}

// dynVal elements are interface values, two words each, backed by two
// different concrete types.
type dynVal interface {
	val() int32
}

type dynValA struct{ value int32 }
type dynValB struct{ value int32 }

func (d dynValA) val() int32  { return d.value }
func (d *dynValB) val() int32 { return d.value }

func newDynVal(v int32) dynVal {
	if v < math.MaxInt32/2 {
		return dynValA{value: v}
	}
	return &dynValB{value: v}
}

func compareDynVal(a, b dynVal) int {
	return cmp.Compare(a.val(), b.val())
}

// widenU64 maps an int32 into the upper u64 range, preserving order.
func widenU64(v int32) uint64 {
	return uint64(int64(v)+math.MaxInt32+1) * math.MaxInt32
}

// packPair stores key in the low and count in the high 32 bits.
func packPair(key, count int32) uint64 {
	return uint64(uint32(key)) | uint64(uint32(count))<<32
}

func unpackPair(v uint64) (key, count int32) {
	return int32(uint32(v)), int32(uint32(v >> 32))
}

func comparePairs(a, b uint64) int {
	ka, ca := unpackPair(a)
	kb, cb := unpackPair(b)
	if c := cmp.Compare(ka, kb); c != 0 {
		return c
	}
	return cmp.Compare(ca, cb)
}

func saturatingAbs(v int32) int32 {
	if v == math.MinInt32 {
		return math.MaxInt32
	}
	if v < 0 {
		return -v
	}
	return v
}
