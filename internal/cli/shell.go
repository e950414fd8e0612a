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
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/googlegenomics/samview/region"
)

const shellHelp = `Commands:
  load ROW...                 replace the tracks with the given rows
  search [gene|coord] QUERY   restrict the loaded tracks to QUERY
  tracks                      list the loaded tracks
  help                        show this message
  quit                        leave the shell`

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Read load and search commands from standard input",
	Long: `Start an interactive session.  Tracks stay loaded between commands, so a
search restricts the rows of the most recent load.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a := newApp(cmd)
		defer a.Close()

		ctx := cmd.Context()
		scanner := bufio.NewScanner(cmd.InOrStdin())
		for {
			fmt.Fprint(a.out, "samview> ")
			if !scanner.Scan() {
				fmt.Fprintln(a.out)
				return scanner.Err()
			}
			if err := ctx.Err(); err != nil {
				return err
			}

			fields := strings.Fields(scanner.Text())
			if len(fields) == 0 {
				continue
			}
			var err error
			switch command, args := fields[0], fields[1:]; command {
			case "load":
				err = shellLoad(ctx, a, args)
			case "search":
				err = shellSearch(ctx, a, args)
			case "tracks":
				a.printTracks()
			case "help":
				fmt.Fprintln(a.out, shellHelp)
			case "quit", "exit":
				return nil
			default:
				err = fmt.Errorf("unknown command %q, try help", command)
			}
			if err != nil {
				printError(a.errOut, "%v", err)
			}
		}
	},
}

func shellLoad(ctx context.Context, a *app, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: load ROW...")
	}
	rows, err := parseRows(args)
	if err != nil {
		return err
	}
	return a.load(ctx, rows)
}

func shellSearch(ctx context.Context, a *app, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: search [gene|coord] QUERY")
	}
	kind := region.Coord
	if k, err := region.ParseQueryKind(args[0]); err == nil && len(args) > 1 {
		kind, args = k, args[1:]
	}
	q, err := region.ParseQuery(kind, strings.Join(args, " "), padding)
	if err != nil {
		return err
	}
	return a.search(ctx, q)
}
