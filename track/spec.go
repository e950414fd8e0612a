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

// Package track derives genomic track descriptors from user-entered rows of
// "port:/root" specifiers and sample names.
package track

import (
	"fmt"
	"strings"
)

const (
	// DefaultHost is the host serving /sam resources.
	DefaultHost = "localhost"

	// FormatBAM is the only track format produced by Expand.
	FormatBAM = "bam"

	dataExt  = "bam"
	indexExt = "bam.bai"
)

// Spec describes a single loadable track: a primary data resource and its
// index.  Specs are values; ID identifies them.
type Spec struct {
	ID       string
	Name     string
	URL      string
	IndexURL string
	Format   string

	// Row and SampleIndex locate the spec in the row input it was expanded
	// from (both 0-based).
	Row, SampleIndex int
	Port             int
	Root             string
	Sample           string
}

// Resource is a single remote file implied by a Spec.
type Resource struct {
	// Row is the 0-based input row the resource came from.
	Row int
	// Path identifies the resource to the user as "port:/path".
	Path string
	URL  string
}

// Resources returns the primary and index resources of spec.  URLs carry any
// query filter that was applied to the spec.
func (spec Spec) Resources() []Resource {
	return []Resource{
		{spec.Row, fmt.Sprintf("%d:%s", spec.Port, ResourcePath(spec.Root, spec.Sample, dataExt)), spec.URL},
		{spec.Row, fmt.Sprintf("%d:%s", spec.Port, ResourcePath(spec.Root, spec.Sample, indexExt)), spec.IndexURL},
	}
}

func (spec Spec) String() string {
	return fmt.Sprintf("[track:%s, row:%d, url:%s]", spec.Name, spec.Row+1, spec.URL)
}

// ResourcePath returns the path of a sample's file with extension ext under
// root, following the {root}/{sample}/_sam/{sample}.bqsr.hg38.{ext} layout.
func ResourcePath(root, sample, ext string) string {
	return fmt.Sprintf("%s/%s/_sam/%s.bqsr.hg38.%s", strings.TrimRight(root, "/"), sample, sample, ext)
}

// ResourceURL returns the URL at which host serves path on port.
func ResourceURL(host string, port int, path string) string {
	return fmt.Sprintf("http://%s:%d/sam%s", host, port, path)
}

func newSpec(host string, row, sampleIndex, port int, root, sample string) Spec {
	return Spec{
		ID:          strings.Join([]string{sample, root, fmt.Sprint(port), fmt.Sprint(row), fmt.Sprint(sampleIndex)}, "-"),
		Name:        sample,
		URL:         ResourceURL(host, port, ResourcePath(root, sample, dataExt)),
		IndexURL:    ResourceURL(host, port, ResourcePath(root, sample, indexExt)),
		Format:      FormatBAM,
		Row:         row,
		SampleIndex: sampleIndex,
		Port:        port,
		Root:        root,
		Sample:      sample,
	}
}
