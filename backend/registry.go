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

package backend

import (
	"fmt"
	"slices"

	"github.com/samber/lo"
)

// Backend names.
const (
	NameStableSort    = "stablesort"
	NameGoStdStable   = "go_std_stable"
	NameGoStdUnstable = "go_std_unstable"
	NameXExpStable    = "x_exp_stable"
	NamePargoStable   = "pargo_stable"
)

var registry = []Backend{
	{
		Name:        NameStableSort,
		Description: "adaptive stable merge sort with sorting networks (this module)",
		Properties: Properties{
			Stable:                true,
			StrongExceptionSafety: true,
			ObservableComparisons: true,
			Generic:               true,
		},
		I32: entry(coreSort[int32], coreSortBy[int32]),
		U64: entry(coreSort[uint64], coreSortBy[uint64]),
	},
	{
		Name:        NameGoStdStable,
		Description: "standard library slices.SortStableFunc",
		Properties: Properties{
			Stable:                true,
			StrongExceptionSafety: true,
		},
		I32: entry(stdStableSort[int32], stdStableSortBy[int32]),
		U64: entry(stdStableSort[uint64], stdStableSortBy[uint64]),
	},
	{
		Name:        NameGoStdUnstable,
		Description: "standard library slices.SortFunc (pdqsort)",
		Properties: Properties{
			StrongExceptionSafety: true,
		},
		I32: entry(stdUnstableSort[int32], stdUnstableSortBy[int32]),
		U64: entry(stdUnstableSort[uint64], stdUnstableSortBy[uint64]),
	},
	{
		Name:        NameXExpStable,
		Description: "golang.org/x/exp/slices.SortStableFunc",
		Properties: Properties{
			Stable:                true,
			StrongExceptionSafety: true,
		},
		I32: entry(expStableSort[int32], expStableSortBy[int32]),
		U64: entry(expStableSort[uint64], expStableSortBy[uint64]),
	},
	{
		Name:        NamePargoStable,
		Description: "github.com/exascience/pargo/sort.StableSort (parallel cilksort)",
		Properties: Properties{
			Stable:   true,
			Parallel: true,
		},
		I32: entry(pargoSort[int32], pargoSortBy[int32]),
		U64: entry(pargoSort[uint64], pargoSortBy[uint64]),
	},
}

// All returns every registered backend in registration order.
func All() []Backend {
	return slices.Clone(registry)
}

// Names returns the names of all registered backends.
func Names() []string {
	return lo.Map(registry, func(b Backend, _ int) string { return b.Name })
}

// Lookup returns the backend with the given name.
func Lookup(name string) (Backend, error) {
	b, ok := lo.Find(registry, func(b Backend) bool { return b.Name == name })
	if !ok {
		return Backend{}, fmt.Errorf("%w: %q (have %v)", ErrUnknownBackend, name, Names())
	}
	return b, nil
}

// Select resolves a list of names; an empty list selects every backend.
func Select(names []string) ([]Backend, error) {
	if len(names) == 0 {
		return All(), nil
	}
	out := make([]Backend, 0, len(names))
	for _, name := range lo.Uniq(names) {
		b, err := Lookup(name)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}
