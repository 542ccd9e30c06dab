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

package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/TruongNhanNguyen/sort-research-rs/harness"
)

type runOptions struct {
	configPath string
	verbose    bool

	seed              uint64
	backends          []string
	checks            []string
	skip              []string
	sizes             []int
	onlyBasicSafety   bool
	writeLargeFailure bool
	artifactDir       string
	workers           int
}

func (o *runOptions) addFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.configPath, "config", "", "YAML config file")
	fs.BoolVarP(&o.verbose, "verbose", "v", false, "print skip reasons")
	fs.Uint64Var(&o.seed, "seed", 0, "pattern seed (default: $SEED or random)")
	fs.StringSliceVarP(&o.backends, "backend", "b", nil, "backends to test (default: all)")
	fs.StringSliceVarP(&o.checks, "check", "c", nil, "checks to run (default: all)")
	fs.StringSliceVar(&o.skip, "skip", nil, "checks to leave out")
	fs.IntSliceVar(&o.sizes, "sizes", nil, "input lengths for size-driven checks")
	fs.BoolVar(&o.onlyBasicSafety, "only-check-basic-exception-safety", false,
		"do not require every element to survive a comparator panic")
	fs.BoolVar(&o.writeLargeFailure, "write-large-failure", false, "dump large mismatches as artifacts")
	fs.StringVar(&o.artifactDir, "artifact-dir", "", "directory for failure artifacts")
	fs.IntVarP(&o.workers, "workers", "j", 0, "concurrent checks per run (default: GOMAXPROCS)")
}

// config layers defaults, the config file, the environment and the flags
// that were set, in that order.
func (o *runOptions) config(fs *pflag.FlagSet) (harness.Config, error) {
	cfg := harness.DefaultConfig()
	if o.configPath != "" {
		var err error
		if cfg, err = harness.LoadConfig(o.configPath); err != nil {
			return cfg, err
		}
	}
	if err := cfg.ApplyEnv(); err != nil {
		return cfg, err
	}

	if fs.Changed("seed") {
		cfg.Seed = o.seed
	}
	if fs.Changed("backend") {
		cfg.Backends = o.backends
	}
	if fs.Changed("check") {
		cfg.Checks = o.checks
	}
	if fs.Changed("skip") {
		cfg.Skip = o.skip
	}
	if fs.Changed("sizes") {
		cfg.Sizes = o.sizes
	}
	if fs.Changed("only-check-basic-exception-safety") {
		cfg.OnlyCheckBasicExceptionSafety = o.onlyBasicSafety
	}
	if fs.Changed("write-large-failure") {
		cfg.WriteLargeFailure = o.writeLargeFailure
	}
	if fs.Changed("artifact-dir") {
		cfg.ArtifactDir = o.artifactDir
	}
	if fs.Changed("workers") {
		cfg.Workers = o.workers
	}
	return cfg, cfg.Validate()
}

func newRunCmd() *cobra.Command {
	o := &runOptions{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run checks against backends",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := o.config(cmd.Flags())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			start := time.Now()
			report, err := harness.Execute(cmd.Context(), cfg, out)
			if report != nil {
				report.Write(out, o.verbose)
				writeSummary(out, report, time.Since(start))
			}
			if err != nil {
				return err
			}
			if report.Failed() {
				return errChecksFailed
			}
			return nil
		},
	}
	o.addFlags(cmd.Flags())
	return cmd
}

func writeSummary(w io.Writer, r *harness.Report, elapsed time.Duration) {
	p := message.NewPrinter(language.English)
	fmt.Fprintln(w)
	p.Fprintf(w, "%d results: %d passed, %d failed, %d skipped in %v\n",
		len(r.Results), r.Count(harness.StatusPass), r.Count(harness.StatusFail), r.Count(harness.StatusSkip),
		elapsed.Round(time.Millisecond))
	if r.Failed() {
		p.Fprintf(w, "Reproduce with SEED=%d\n", r.Seed)
	}
}
