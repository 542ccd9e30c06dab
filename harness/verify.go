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
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/samber/lo"
	"github.com/spaolacci/murmur3"

	"github.com/TruongNhanNguyen/sort-research-rs/internal/workerpool"
)

// multiset summarises the values of a slice independently of their order.
// Two slices holding the same values always agree; a lost or duplicated
// element changes the sum or the fingerprint.
type multiset struct {
	sum         int64
	fingerprint uint64
	n           int
}

func multisetOf(values []int32) multiset {
	var buf [4]byte
	m := multiset{n: len(values)}
	m.sum = lo.SumBy(values, func(v int32) int64 { return int64(v) })
	for _, v := range values {
		binary.LittleEndian.PutUint32(buf[:], uint32(v))
		m.fingerprint += murmur3.Sum64(buf[:])
	}
	return m
}

// checkMultiset compares the values of a slice before and after a sort.
func checkMultiset(before, after multiset, what string) error {
	if before != after {
		return fmt.Errorf("%w: %s: sum %d -> %d, fingerprint %#x -> %#x",
			ErrMultisetChanged, what, before.sum, after.sum, before.fingerprint, after.fingerprint)
	}
	return nil
}

// digest hashes the values of a slice in order.
func digest(values []int32) uint64 {
	d := xxhash.New()
	var buf [4]byte
	for _, v := range values {
		binary.LittleEndian.PutUint32(buf[:], uint32(v))
		_, _ = d.Write(buf[:])
	}
	return d.Sum64()
}

// parallelVerifyMin is the length from which sortedness is verified on the
// pool rather than inline.
const parallelVerifyMin = 1 << 14

// firstUnsorted returns the first i with v[i] < v[i-1], or -1.
func firstUnsorted[T any](pool *workerpool.Pool, v []T, compare func(a, b T) int) int {
	n := len(v)
	if pool == nil || n < parallelVerifyMin {
		for i := 1; i < n; i++ {
			if compare(v[i], v[i-1]) < 0 {
				return i
			}
		}
		return -1
	}
	if !pool.Any(n-1, func(i int) bool { return compare(v[i+1], v[i]) < 0 }) {
		return -1
	}
	return firstUnsorted(nil, v, compare)
}
