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
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/TruongNhanNguyen/sort-research-rs/backend"
	"github.com/TruongNhanNguyen/sort-research-rs/harness"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List backends and checks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "BACKEND\tPROPERTIES\tDESCRIPTION")
			for _, b := range backend.All() {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", b.Name, properties(b.Properties), b.Description)
			}
			fmt.Fprintln(tw)
			fmt.Fprintln(tw, "CHECK\tDESCRIPTION")
			for _, c := range harness.Checks() {
				fmt.Fprintf(tw, "%s\t%s\n", c.Name, c.Description)
			}
			return tw.Flush()
		},
	}
}

func properties(p backend.Properties) string {
	var out []string
	for _, prop := range []struct {
		set  bool
		name string
	}{
		{p.Stable, "stable"},
		{p.StrongExceptionSafety, "strong"},
		{p.ObservableComparisons, "observable"},
		{p.Parallel, "parallel"},
		{p.Generic, "generic"},
	} {
		if prop.set {
			out = append(out, prop.name)
		}
	}
	if len(out) == 0 {
		return "-"
	}
	return strings.Join(out, ",")
}
