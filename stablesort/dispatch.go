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
	"os"
	"strconv"
)

// networksEnabled is set once by init and only read afterwards.
var networksEnabled = !noNetworksEnv()

// NetworksEnabled reports whether the sorting networks may be
// used. Even when enabled they only run for Sort and SortFunc, whose
// comparators cannot observe storage slots.
func NetworksEnabled() bool {
	return networksEnabled
}

// noNetworksEnv checks if the STABLESORT_NO_NETWORKS environment variable is
// set. When set, every call uses the insertion-sort paths, which is useful
// for testing and debugging.
func noNetworksEnv() bool {
	val := os.Getenv("STABLESORT_NO_NETWORKS")
	if val == "" {
		return false
	}
	// Any non-empty value is considered true, but also parse as bool
	if b, err := strconv.ParseBool(val); err == nil {
		return b
	}
	return true
}
