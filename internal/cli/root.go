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

// Package cli implements the samview command line.
package cli

import (
	"context"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/googlegenomics/samview/browser/igv"
	"github.com/googlegenomics/samview/reconcile"
	"github.com/googlegenomics/samview/region"
	"github.com/googlegenomics/samview/track"
)

// Global flags.
var (
	igvAddress  string
	host        string
	concurrency int
	padding     uint64
	dryRun      bool
	profileDir  string
)

var (
	sectionTitleColor = color.New(color.FgBlue, color.Bold)

	profiler interface{ Stop() }
)

var rootCmd = &cobra.Command{
	Use:     "samview",
	Version: "dev",
	Short:   "Show BAM sample tracks in a genome browser",
	Long: `samview loads BAM sample tracks served by sam-server into IGV and
searches them by gene or genomic coordinates.

Track rows have the form PORT:/DIRECTORY=SAMPLE;SAMPLE..., for example
  2333:/data/trio=NA12878;NA12891;NA12892`,
	SilenceUsage:  true,
	SilenceErrors: true,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if profileDir != "" {
			profiler = profile.Start(profile.CPUProfile, profile.ProfilePath(profileDir), profile.Quiet)
		}
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		stopProfile()
	},
}

func stopProfile() {
	if profiler != nil {
		profiler.Stop()
		profiler = nil
	}
}

// SetVersion sets the version reported by --version.
func SetVersion(v string) {
	if v == "" {
		return
	}
	rootCmd.Version = v
	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&igvAddress, "igv", igv.DefaultAddress, "address of the IGV batch port")
	flags.StringVar(&host, "host", track.DefaultHost, "host serving the track rows")
	flags.IntVar(&concurrency, "concurrency", reconcile.DefaultConcurrency, "maximum number of concurrent checks and browser commands")
	flags.Uint64Var(&padding, "padding", region.DefaultSearchPadding, "bases shown on each side of a single position")
	flags.BoolVar(&dryRun, "dry-run", false, "check tracks but load them into an in-memory browser instead of IGV")
	flags.StringVar(&profileDir, "profile", "", "if set, write a CPU profile to this directory")

	rootCmd.AddCommand(parseCmd, loadCmd, searchCmd, shellCmd)
}

// Execute runs the root command.  An interrupt cancels the running command.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	defer stopProfile()
	return rootCmd.ExecuteContext(ctx)
}
