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
)

var loadCmd = &cobra.Command{
	Use:   "load ROW...",
	Short: "Replace the browser's tracks with the given rows",
	Long: `Check that every BAM file and index named by the rows exists, then load
one track per sample.  If any file is missing nothing is loaded.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rows, err := parseRows(args)
		if err != nil {
			return err
		}
		a := newApp(cmd)
		defer a.Close()
		return a.load(cmd.Context(), rows)
	},
}
