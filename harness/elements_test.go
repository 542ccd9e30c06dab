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
	"math"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
)

var edgeValues = []int32{math.MinInt32, math.MinInt32 + 1, -1_000_000, -7, -1, 0, 1, 7, 1_000_000, math.MaxInt32 - 1, math.MaxInt32}

func TestStringTypeOrder(t *testing.T) {
	for _, a := range edgeValues {
		for _, b := range edgeValues {
			want := stringType.compare(stringType.from(saturatingAbs(a)), stringType.from(saturatingAbs(b)))
			got := i32Type.compare(saturatingAbs(a), saturatingAbs(b))
			require.Equal(t, got, want, "a=%d b=%d", a, b)
		}
	}
	require.Equal(t, int32(7), stringType.to(stringType.from(-7)))
	require.Equal(t, "0000000007", stringType.from(7))
	require.Panics(t, func() { stringType.to("x") })
}

func TestCellType(t *testing.T) {
	c := cellType.from(5)
	require.Equal(t, int32(5), cellType.to(c))
	c.set(-3)
	require.Equal(t, int32(-3), c.get())
	require.Equal(t, []int32{1, 2, 3}, cellType.values(cellType.convert([]int32{1, 2, 3})))
}

func TestWidenU64Order(t *testing.T) {
	for i := 1; i < len(edgeValues); i++ {
		require.Less(t, widenU64(edgeValues[i-1]), widenU64(edgeValues[i]))
	}
}

func TestPackPair(t *testing.T) {
	for _, k := range edgeValues {
		for _, c := range []int32{0, 1, math.MaxInt32} {
			gotK, gotC := unpackPair(packPair(k, c))
			require.Equal(t, k, gotK)
			require.Equal(t, c, gotC)
		}
	}
	require.Negative(t, comparePairs(packPair(-1, 5), packPair(0, 1)))
	require.Negative(t, comparePairs(packPair(3, 1), packPair(3, 2)))
	require.Zero(t, comparePairs(packPair(3, 2), packPair(3, 2)))
}

func TestDynVal(t *testing.T) {
	low, high := newDynVal(1), newDynVal(math.MaxInt32)
	require.IsType(t, dynValA{}, low)
	require.IsType(t, &dynValB{}, high)
	require.Negative(t, compareDynVal(low, high))

	v := []dynVal{high, low, newDynVal(0)}
	slices.SortStableFunc(v, compareDynVal)
	require.Equal(t, []int32{0, 1, math.MaxInt32}, []int32{v[0].val(), v[1].val(), v[2].val()})
}

func TestKibiVal(t *testing.T) {
	k := newKibiVal(-4)
	require.Equal(t, int64(-4), k[0])
	require.Equal(t, int64(123), k[127])
	require.Negative(t, compareKibiVal(k, newKibiVal(-3)))
}

func TestSaturatingAbs(t *testing.T) {
	require.Equal(t, int32(math.MaxInt32), saturatingAbs(math.MinInt32))
	require.Equal(t, int32(5), saturatingAbs(-5))
	require.Equal(t, int32(5), saturatingAbs(5))
}
