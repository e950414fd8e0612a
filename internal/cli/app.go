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
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/googlegenomics/samview/browser"
	"github.com/googlegenomics/samview/browser/igv"
	"github.com/googlegenomics/samview/browser/memory"
	"github.com/googlegenomics/samview/probe"
	"github.com/googlegenomics/samview/reconcile"
	"github.com/googlegenomics/samview/region"
	"github.com/googlegenomics/samview/session"
	"github.com/googlegenomics/samview/track"
)

// app ties a session to the command's output streams.
type app struct {
	session *session.Session
	browser browser.Browser
	out     io.Writer
	errOut  io.Writer
	close   func() error
}

func newApp(cmd *cobra.Command) *app {
	a := &app{
		out:    cmd.OutOrStdout(),
		errOut: cmd.ErrOrStderr(),
		close:  func() error { return nil },
	}
	if dryRun {
		a.browser = &memory.Browser{}
	} else {
		client := igv.NewClient(igvAddress)
		a.browser, a.close = client, client.Close
	}
	a.session = session.New(a.browser, probe.NewHTTPChecker(nil), reconcile.NewLimiter(concurrency), host)
	return a
}

func (a *app) Close() error {
	return a.close()
}

// parseRows parses PORT:/DIRECTORY=SAMPLES arguments.  Port and path are
// validated when the rows are expanded.
func parseRows(args []string) ([]track.Row, error) {
	rows := make([]track.Row, 0, len(args))
	for _, arg := range args {
		i := strings.LastIndex(arg, "=")
		if i < 0 {
			return nil, fmt.Errorf("invalid row %q, should be like 2333:/path/to/dir=SAMPLE;SAMPLE", arg)
		}
		rows = append(rows, track.Row{Path: arg[:i], Samples: arg[i+1:]})
	}
	return rows, nil
}

func (a *app) load(ctx context.Context, rows []track.Row) error {
	result, err := a.loadRows(ctx, rows)
	if err != nil {
		return err
	}
	return a.printResult(result)
}

// loadRows loads rows, reporting skipped rows as warnings.
func (a *app) loadRows(ctx context.Context, rows []track.Row) (*reconcile.Result, error) {
	report, err := a.session.Load(ctx, rows)
	if report != nil {
		for _, rowErr := range report.RowErrors {
			printWarning(a.errOut, "%v", rowErr)
		}
	}
	if err != nil {
		return nil, err
	}
	return report.Result, nil
}

func (a *app) search(ctx context.Context, q *region.Query) error {
	result, err := a.session.Search(ctx, q)
	if err != nil {
		if result != nil {
			return fmt.Errorf("moving to %s: %v", q.Locus(), err)
		}
		return err
	}
	if err := a.printResult(result); err != nil {
		return err
	}
	printSuccess(a.out, "showing %s", q.Locus())
	return nil
}

func (a *app) printResult(result *reconcile.Result) error {
	for _, spec := range result.Loaded {
		printSuccess(a.out, "loaded %s (row %d)", spec.Name, spec.Row+1)
		if dryRun {
			printDetail(a.out, "%s", spec.URL)
		}
	}
	for _, loadErr := range result.LoadErrors {
		printError(a.errOut, "%v", loadErr)
	}
	if n := len(result.LoadErrors); n > 0 {
		return fmt.Errorf("%d of %d tracks failed to load", n, n+len(result.Loaded))
	}
	return nil
}

func (a *app) printTracks() {
	tracks := a.session.Tracks()
	if len(tracks) == 0 {
		fmt.Fprintln(a.out, "No tracks loaded.")
		return
	}
	printSection(a.out, "Tracks:")
	for _, spec := range tracks {
		fmt.Fprintf(a.out, "  %-20s row %d\n", spec.Name, spec.Row+1)
		printDetail(a.out, "%s", spec.URL)
	}
	if q := a.session.Query(); q != nil {
		printSection(a.out, "Search:")
		fmt.Fprintf(a.out, "  %s\n", q)
	}
}
