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

// Command sortcheck runs the sort correctness suite against the registered
// sorting backends.
//
// Usage:
//
//	sortcheck run                                   # every check, every backend
//	sortcheck run -b stablesort -c random,stability # a subset
//	SEED=123 sortcheck run                          # reproduce a run
//	sortcheck list                                  # backends and checks
//	sortcheck replay stablesort_random_123.sortchk  # re-run a dumped failure
//
// The seed is printed before testing starts. Set WRITE_LARGE_FAILURE to
// dump mismatches too large to print as .sortchk artifacts.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

// errChecksFailed makes the process exit non-zero after a report has been
// printed.
var errChecksFailed = errors.New("checks failed")

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "sortcheck",
		Short:         "Correctness suite for stable sort implementations",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newRunCmd(), newListCmd(), newPlatformCmd(), newReplayCmd())
	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := newRootCmd().ExecuteContext(ctx)
	if err == nil {
		return
	}
	if !errors.Is(err, errChecksFailed) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	os.Exit(1)
}
