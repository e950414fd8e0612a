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
	"fmt"

	"github.com/spf13/cobra"

	"github.com/googlegenomics/samview/region"
)

var parseCmd = &cobra.Command{
	Use:   "parse QUERY...",
	Short: "Resolve region queries without touching the browser",
	Long: `Resolve each query to the range that a coordinate search would show.

Queries may be a position (chr1:12345), a range (chr1:100-200), a variant
(1-12345-A-T) and may carry an explicit padding (chr1:12345^50).`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
		failed := 0
		for _, query := range args {
			r, err := region.Parse(query, padding)
			if err != nil {
				printError(errOut, "%v", err)
				failed++
				continue
			}
			fmt.Fprintf(out, "%s\t%s\n", query, r)
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d queries could not be parsed", failed, len(args))
		}
		return nil
	},
}
