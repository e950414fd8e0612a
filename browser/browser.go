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

// Package browser defines the genome browser that tracks are loaded into.
//
// Implementations live in the memory (in-process, for dry runs and tests) and
// igv (IGV desktop batch port) subpackages.
package browser

import (
	"context"

	"github.com/googlegenomics/samview/track"
)

// Handle is an opaque reference to a loaded track, issued by the browser.
type Handle string

// Browser is a genome browser that can display tracks.
type Browser interface {
	// LoadTrack displays spec and returns a handle identifying it.
	LoadTrack(ctx context.Context, spec track.Spec) (Handle, error)
	// RemoveTrack removes a previously loaded track.
	RemoveTrack(ctx context.Context, handle Handle) error
	// Search navigates to locus, either a gene symbol or "chr:start-end".
	Search(ctx context.Context, locus string) error
}
