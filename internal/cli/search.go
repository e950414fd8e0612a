// Copyright 2017 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cli

import (
	"github.com/spf13/cobra"

	"github.com/googlegenomics/samview/region"
)

var searchGene bool

var searchCmd = &cobra.Command{
	Use:   "search QUERY ROW...",
	Short: "Load the given rows restricted to a gene or region",
	Long: `Load one track per sample with every URL restricted to QUERY, then move
the browser there.  QUERY is a region unless --gene is given.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind := region.Coord
		if searchGene {
			kind = region.Gene
		}
		q, err := region.ParseQuery(kind, args[0], padding)
		if err != nil {
			return err
		}
		rows, err := parseRows(args[1:])
		if err != nil {
			return err
		}

		a := newApp(cmd)
		defer a.Close()
		ctx := cmd.Context()
		if _, err := a.loadRows(ctx, rows); err != nil {
			return err
		}
		return a.search(ctx, q)
	},
}

func init() {
	searchCmd.Flags().BoolVar(&searchGene, "gene", false, "treat QUERY as a gene symbol")
}
