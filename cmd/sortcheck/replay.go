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

	"github.com/spf13/cobra"

	"github.com/TruongNhanNguyen/sort-research-rs/backend"
	"github.com/TruongNhanNguyen/sort-research-rs/harness"
)

func newReplayCmd() *cobra.Command {
	var backendName string
	cmd := &cobra.Command{
		Use:   "replay ARTIFACT",
		Short: "Sort the input of a failure artifact again",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := harness.ReadArtifact(args[0])
			if err != nil {
				return err
			}
			name := a.Backend
			if backendName != "" {
				name = backendName
			}
			b, err := backend.Lookup(name)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Artifact: %s, check %s, seed %d, %d %s values\n",
				a.Backend, a.Check, a.Seed, len(a.Original), a.Kind)
			fmt.Fprintf(out, "Recorded on: %s\n", a.Platform)
			fmt.Fprintf(out, "Replaying on: %s (%s)\n", b.Name, harness.DetectPlatform())

			if _, err := harness.Replay(a, b); err != nil {
				return err
			}
			fmt.Fprintln(out, "Output matches the expected order.")
			return nil
		},
	}
	cmd.Flags().StringVarP(&backendName, "backend", "b", "", "backend to replay on (default: the recorded one)")
	return cmd
}
