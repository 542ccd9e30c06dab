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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.Equal(t, DefaultSizes, cfg.Sizes)
	require.Equal(t, 100, cfg.SmallTestLimit)
	require.Equal(t, ".", cfg.ArtifactDir)
	require.NoError(t, cfg.Validate())

	cfg.Sizes[0] = 99
	require.Equal(t, 0, DefaultSizes[0], "DefaultConfig must copy DefaultSizes")
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sortcheck.yaml")
	data := []byte(`
seed: 1234
sizes: [0, 5, 50]
backends: [stablesort]
skip: [stability]
write_large_failure: true
workers: 3
`)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, uint64(1234), cfg.Seed)
	require.Equal(t, []int{0, 5, 50}, cfg.Sizes)
	require.Equal(t, []string{"stablesort"}, cfg.Backends)
	require.Equal(t, []string{"stability"}, cfg.Skip)
	require.True(t, cfg.WriteLargeFailure)
	require.Equal(t, 3, cfg.Workers)
	require.Equal(t, 100, cfg.SmallTestLimit, "unset fields keep their defaults")

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("sizes: [3, -1]\n"), 0o644))
	_, err = LoadConfig(bad)
	require.ErrorIs(t, err, ErrInvalidConfig)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("SEED", "987654321")
	t.Setenv("ONLY_CHECK_BASIC_EXCEPTION_SAFETY", "")
	t.Setenv("WRITE_LARGE_FAILURE", "0")
	t.Setenv("SORTCHECK_ARTIFACT_DIR", "/tmp/artifacts")

	cfg := DefaultConfig()
	require.NoError(t, cfg.ApplyEnv())
	require.Equal(t, uint64(987654321), cfg.Seed)
	require.True(t, cfg.OnlyCheckBasicExceptionSafety, "presence alone enables the flag")
	require.True(t, cfg.WriteLargeFailure, "presence alone enables the flag")
	require.Equal(t, "/tmp/artifacts", cfg.ArtifactDir)

	t.Setenv("SEED", "not-a-number")
	cfg = DefaultConfig()
	require.ErrorIs(t, cfg.ApplyEnv(), ErrInvalidConfig)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		edit func(c *Config)
		ok   bool
	}{
		{"default", func(c *Config) {}, true},
		{"negative_size", func(c *Config) { c.Sizes = []int{1, -2} }, false},
		{"negative_limit", func(c *Config) { c.SmallTestLimit = -1 }, false},
		{"negative_workers", func(c *Config) { c.Workers = -4 }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.edit(&cfg)
			err := cfg.Validate()
			if tt.ok {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, ErrInvalidConfig)
			}
		})
	}
}

func TestCustomSizes(t *testing.T) {
	cfg := Config{Sizes: []int{0, 1, 2, 10, 100, 5_000, 10_000}}
	require.Equal(t, []int{2, 10, 100}, cfg.customSizes())

	cfg.Sizes = []int{3}
	require.Equal(t, []int{3}, cfg.customSizes())

	cfg.Sizes = nil
	require.Empty(t, cfg.customSizes())
}
