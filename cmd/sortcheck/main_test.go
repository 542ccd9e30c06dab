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
	"bytes"
	"context"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/TruongNhanNguyen/sort-research-rs/harness"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRun(t *testing.T) {
	out, err := execute(t, "run", "-b", "stablesort,go_std_unstable", "-c", "basic,random,stability", "--sizes", "0,5,50,1000", "--seed", "7")
	require.NoError(t, err, out)
	require.Contains(t, out, "Seed: 7\n")
	require.Contains(t, out, "Testing: stablesort, go_std_unstable\n")
	require.Contains(t, out, "6 results: 5 passed, 0 failed, 1 skipped")
}

func TestRunFlagErrors(t *testing.T) {
	_, err := execute(t, "run", "-c", "nope")
	require.ErrorIs(t, err, harness.ErrUnknownCheck)

	_, err = execute(t, "run", "--sizes=-3")
	require.ErrorIs(t, err, harness.ErrInvalidConfig)
}

func TestRunFlagsOverrideEnv(t *testing.T) {
	t.Setenv("SEED", "11")
	o := &runOptions{}
	fs := pflag.NewFlagSet("run", pflag.ContinueOnError)
	o.addFlags(fs)

	cfg, err := o.config(fs)
	require.NoError(t, err)
	require.Equal(t, uint64(11), cfg.Seed)

	require.NoError(t, fs.Set("seed", "12"))
	cfg, err = o.config(fs)
	require.NoError(t, err)
	require.Equal(t, uint64(12), cfg.Seed)
}

func TestList(t *testing.T) {
	out, err := execute(t, "list")
	require.NoError(t, err)
	require.Contains(t, out, "stablesort")
	require.Contains(t, out, "stable,strong,observable,generic")
	require.Contains(t, out, "violate_ord_retain_original_set_cell")
}

func TestPlatform(t *testing.T) {
	out, err := execute(t, "platform")
	require.NoError(t, err)
	require.Contains(t, out, "networks=")
}

func TestReplay(t *testing.T) {
	a := &harness.Artifact{
		Seed:     3,
		Kind:     harness.KindI32,
		Backend:  "stablesort",
		Check:    "random",
		Original: []uint64{3, 1, 2},
		Expected: []uint64{1, 2, 3},
		Got:      []uint64{3, 1, 2},
	}
	path, err := harness.WriteArtifact(t.TempDir(), a)
	require.NoError(t, err)

	out, err := execute(t, "replay", path)
	require.NoError(t, err, out)
	require.Contains(t, out, "Output matches the expected order.")

	out, err = execute(t, "replay", "-b", "pargo_stable", path)
	require.NoError(t, err, out)
	require.Contains(t, out, "Replaying on: pargo_stable")

	_, err = execute(t, "replay", "-b", "nope", path)
	require.Error(t, err)
}
