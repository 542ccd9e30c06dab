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
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"slices"
	"strings"
	"time"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/TruongNhanNguyen/sort-research-rs/backend"
	"github.com/TruongNhanNguyen/sort-research-rs/internal/workerpool"
	"github.com/TruongNhanNguyen/sort-research-rs/patterns"
)

// Status is the outcome of one check against one backend.
type Status int

const (
	StatusPass Status = iota
	StatusFail
	StatusSkip
)

func (s Status) String() string {
	switch s {
	case StatusPass:
		return "PASS"
	case StatusFail:
		return "FAIL"
	case StatusSkip:
		return "SKIP"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Result is the outcome of one check against one backend.
type Result struct {
	Backend  string
	Check    string
	Status   Status
	Err      error
	Duration time.Duration

	// Output is what the check printed, such as the slices of a small
	// mismatch or the path of a written artifact.
	Output string
}

// Report collects the results of a run in backend, then check, order.
type Report struct {
	Seed     uint64
	Platform Platform
	Results  []Result
}

// Count returns how many results have status s.
func (r *Report) Count(s Status) int {
	return lo.CountBy(r.Results, func(res Result) bool { return res.Status == s })
}

// Failed reports whether any check failed.
func (r *Report) Failed() bool {
	return r.Count(StatusFail) > 0
}

// Failures returns the failed results.
func (r *Report) Failures() []Result {
	return lo.Filter(r.Results, func(res Result, _ int) bool { return res.Status == StatusFail })
}

// Write prints one line per result. Output of failed checks follows their
// line; verbose also prints skip reasons.
func (r *Report) Write(w io.Writer, verbose bool) {
	for _, res := range r.Results {
		fmt.Fprintf(w, "%s  %-16s %-42s %v\n", res.Status, res.Backend, res.Check, res.Duration.Round(time.Millisecond))
		switch {
		case res.Status == StatusFail:
			fmt.Fprintf(w, "      %v\n", res.Err)
			if res.Output != "" {
				for _, line := range strings.Split(strings.TrimRight(res.Output, "\n"), "\n") {
					fmt.Fprintf(w, "      %s\n", line)
				}
			}
		case res.Status == StatusSkip && verbose:
			fmt.Fprintf(w, "      %v\n", res.Err)
		}
	}
}

// Runner runs a set of checks against a set of backends.
type Runner struct {
	cfg      Config
	backends []backend.Backend
	checks   []Check
	out      io.Writer
}

// NewRunner resolves the backends and checks named in cfg. A zero seed is
// replaced by a random one, which the Runner prints before testing.
func NewRunner(cfg Config, out io.Writer) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Seed == 0 {
		cfg.Seed = rand.Uint64()
	}
	if cfg.SmallTestLimit == 0 {
		cfg.SmallTestLimit = DefaultConfig().SmallTestLimit
	}
	if cfg.ArtifactDir == "" {
		cfg.ArtifactDir = DefaultConfig().ArtifactDir
	}
	backends, err := backend.Select(cfg.Backends)
	if err != nil {
		return nil, err
	}
	selected, err := SelectChecks(cfg.Checks, cfg.Skip)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = io.Discard
	}
	return &Runner{cfg: cfg, backends: backends, checks: selected, out: out}, nil
}

// Config returns the resolved configuration.
func (r *Runner) Config() Config {
	return r.cfg
}

// Run executes every check against every backend. Backends run
// concurrently; the checks of a backend share one worker pool. A failing
// check does not stop the run; cancelling ctx does, and unstarted checks
// are reported as skipped.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	platform := DetectPlatform()
	fmt.Fprintf(r.out, "Seed: %d\n", r.cfg.Seed)
	fmt.Fprintf(r.out, "Testing: %s\n", strings.Join(lo.Map(r.backends, func(b backend.Backend, _ int) string { return b.Name }), ", "))
	fmt.Fprintf(r.out, "Platform: %s\n\n", platform)

	pool := workerpool.New(r.cfg.Workers)
	defer pool.Close()
	// Sortedness verification fans out on a separate pool.
	verify := workerpool.New(r.cfg.Workers)
	defer verify.Close()

	results := make([][]Result, len(r.backends))
	g, ctx := errgroup.WithContext(ctx)
	for i, b := range r.backends {
		results[i] = make([]Result, len(r.checks))
		g.Go(func() error {
			return pool.ForEachContext(ctx, len(r.checks), func(ctx context.Context, j int) {
				results[i][j] = r.runOne(b, r.checks[j], platform, verify)
			})
		})
	}
	err := g.Wait()

	report := &Report{Seed: r.cfg.Seed, Platform: platform}
	for i, b := range r.backends {
		for j, c := range r.checks {
			res := results[i][j]
			if res.Check == "" {
				res = Result{Backend: b.Name, Check: c.Name, Status: StatusSkip, Err: fmt.Errorf("%w: not started", context.Cause(ctx))}
			}
			report.Results = append(report.Results, res)
		}
	}
	return report, err
}

// Execute builds a Runner for cfg and runs it, writing the run header to w.
func Execute(ctx context.Context, cfg Config, w io.Writer) (*Report, error) {
	r, err := NewRunner(cfg, w)
	if err != nil {
		return nil, err
	}
	return r.Run(ctx)
}

func (r *Runner) runOne(b backend.Backend, c Check, platform Platform, verify *workerpool.Pool) Result {
	e := &Env{
		Backend:  b,
		Config:   r.cfg,
		Source:   patterns.NewSource(r.cfg.Seed),
		Platform: platform,
		check:    c.Name,
		verify:   verify,
	}
	start := time.Now()
	err := RunCheck(c, e)
	res := Result{
		Backend:  b.Name,
		Check:    c.Name,
		Err:      err,
		Duration: time.Since(start),
		Output:   e.Output(),
	}
	res.Status = classify(err)
	return res
}

// RunCheck runs c in e and turns a panic escaping the check into an error.
func RunCheck(c Check, e *Env) (err error) {
	if e.check == "" {
		e.check = c.Name
	}
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("check %s panicked: %v", c.Name, p)
		}
	}()
	return c.Run(e)
}

func classify(err error) Status {
	switch {
	case err == nil:
		return StatusPass
	case errors.Is(err, ErrSkipped), errors.Is(err, backend.ErrUnsupportedType):
		return StatusSkip
	default:
		return StatusFail
	}
}

// Replay sorts the original input of a with b and compares the result with
// the stored expected output.
func Replay(a *Artifact, b backend.Backend) (got []uint64, err error) {
	switch a.Kind {
	case KindI32:
		v := lo.Map(a.Original, func(x uint64, _ int) int32 { return int32(x) })
		if err := backend.Sort(b, v); err != nil {
			return nil, err
		}
		got = widen(v)
	case KindU64:
		got = slices.Clone(a.Original)
		if err := backend.Sort(b, got); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: element kind %s", ErrArtifactCorrupt, a.Kind)
	}

	if len(got) != len(a.Expected) {
		return got, fmt.Errorf("%w: %d expected values for %d inputs", ErrArtifactCorrupt, len(a.Expected), len(got))
	}
	for i := range got {
		if got[i] != a.Expected[i] {
			return got, fmt.Errorf("%w: replay on %s, first difference at index %d", ErrMismatch, b.Name, i)
		}
	}
	return got, nil
}
