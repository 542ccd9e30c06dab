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
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// DefaultSizes are the input lengths every size-driven check sorts.
var DefaultSizes = []int{
	0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 15, 16, 17, 20, 24, 30, 32, 33, 35, 50, 100, 200, 500, 1_000,
	2_048, 5_000, 10_000,
}

// Config controls a harness run.
type Config struct {
	// Seed for every generated pattern. Zero draws a fresh seed, or takes
	// SEED from the environment in ApplyEnv.
	Seed uint64 `yaml:"seed"`

	// Sizes are the input lengths for size-driven checks. Checks built on
	// the custom pattern set use all but the two largest.
	Sizes []int `yaml:"sizes"`

	// Backends to test; empty means all registered backends.
	Backends []string `yaml:"backends"`

	// Checks to run; empty means all. Skip removes checks after selection.
	Checks []string `yaml:"checks"`
	Skip   []string `yaml:"skip"`

	// OnlyCheckBasicExceptionSafety stops panic checks from requiring that
	// every original element survives a comparator panic.
	OnlyCheckBasicExceptionSafety bool `yaml:"only_check_basic_exception_safety"`

	// WriteLargeFailure dumps mismatches above SmallTestLimit as artifacts.
	WriteLargeFailure bool   `yaml:"write_large_failure"`
	ArtifactDir       string `yaml:"artifact_dir"`

	// SmallTestLimit is the largest input whose mismatch is printed in full.
	SmallTestLimit int `yaml:"small_test_limit"`

	// Workers sizes the check pool; zero uses GOMAXPROCS.
	Workers int `yaml:"workers"`
}

// DefaultConfig returns the configuration used when nothing is specified.
func DefaultConfig() Config {
	return Config{
		Sizes:          append([]int(nil), DefaultSizes...),
		ArtifactDir:    ".",
		SmallTestLimit: 100,
	}
}

// LoadConfig reads a YAML file on top of DefaultConfig.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// ApplyEnv overrides fields from the environment. The two boolean
// variables count as set whenever they are present, whatever their value.
func (c *Config) ApplyEnv() error {
	if val, ok := os.LookupEnv("SEED"); ok && val != "" {
		seed, err := strconv.ParseUint(val, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: SEED=%q: %w", ErrInvalidConfig, val, err)
		}
		c.Seed = seed
	}
	if _, ok := os.LookupEnv("ONLY_CHECK_BASIC_EXCEPTION_SAFETY"); ok {
		c.OnlyCheckBasicExceptionSafety = true
	}
	if _, ok := os.LookupEnv("WRITE_LARGE_FAILURE"); ok {
		c.WriteLargeFailure = true
	}
	if dir := os.Getenv("SORTCHECK_ARTIFACT_DIR"); dir != "" {
		c.ArtifactDir = dir
	}
	return nil
}

// Validate reports configuration errors.
func (c *Config) Validate() error {
	for _, n := range c.Sizes {
		if n < 0 {
			return fmt.Errorf("%w: negative size %d", ErrInvalidConfig, n)
		}
	}
	if c.SmallTestLimit < 0 {
		return fmt.Errorf("%w: negative small_test_limit", ErrInvalidConfig)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: negative workers", ErrInvalidConfig)
	}
	return nil
}

// customSizes are the sizes used with the custom pattern set: all but the
// two largest, and at least two elements.
func (c *Config) customSizes() []int {
	sizes := c.Sizes
	if len(sizes) > 2 {
		sizes = sizes[:len(sizes)-2]
	}
	out := make([]int, 0, len(sizes))
	for _, n := range sizes {
		if n >= 2 {
			out = append(out, n)
		}
	}
	return out
}
