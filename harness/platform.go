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
	"fmt"
	"runtime"
	"strings"

	"github.com/TruongNhanNguyen/sort-research-rs/stablesort"
)

// Platform describes the machine a run happened on. It is printed with
// results and stored in failure artifacts so a report can be matched to
// the hardware that produced it.
type Platform struct {
	GOOS       string
	GOARCH     string
	GoVersion  string
	NumCPU     int
	GOMAXPROCS int

	// Features lists the CPU extensions relevant to branchless code.
	Features []string

	// Networks reports whether the core engine's sorting networks are on.
	Networks bool
}

// DetectPlatform returns the Platform of the running process.
func DetectPlatform() Platform {
	return Platform{
		GOOS:       runtime.GOOS,
		GOARCH:     runtime.GOARCH,
		GoVersion:  runtime.Version(),
		NumCPU:     runtime.NumCPU(),
		GOMAXPROCS: runtime.GOMAXPROCS(0),
		Features:   cpuFeatures(),
		Networks:   stablesort.NetworksEnabled(),
	}
}

func (p Platform) String() string {
	features := "none"
	if len(p.Features) > 0 {
		features = strings.Join(p.Features, ",")
	}
	networks := "on"
	if !p.Networks {
		networks = "off"
	}
	return fmt.Sprintf("%s/%s %s cpus=%d procs=%d features=%s networks=%s",
		p.GOOS, p.GOARCH, p.GoVersion, p.NumCPU, p.GOMAXPROCS, features, networks)
}
