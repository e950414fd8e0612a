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

package track

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpand(t *testing.T) {
	specs, errs := Expand("", []Row{
		{Path: "2333:/data/run1/", Samples: "S1 S2"},
		{Path: "8080:/mnt/x", Samples: "S3"},
	})
	require.Empty(t, errs)
	require.Len(t, specs, 3)

	want := Spec{
		ID:          "S2-/data/run1/-2333-0-1",
		Name:        "S2",
		URL:         "http://localhost:2333/sam/data/run1/S2/_sam/S2.bqsr.hg38.bam",
		IndexURL:    "http://localhost:2333/sam/data/run1/S2/_sam/S2.bqsr.hg38.bam.bai",
		Format:      "bam",
		Row:         0,
		SampleIndex: 1,
		Port:        2333,
		Root:        "/data/run1/",
		Sample:      "S2",
	}
	assert.Equal(t, want, specs[1])
	assert.Equal(t, "S3-/mnt/x-8080-1-0", specs[2].ID)
	assert.Equal(t, 1, specs[2].Row)
}

func TestExpand_Host(t *testing.T) {
	specs, _ := Expand("files.internal", []Row{{Path: "80:/d", Samples: "A"}})
	require.Len(t, specs, 1)
	assert.Equal(t, "http://files.internal:80/sam/d/A/_sam/A.bqsr.hg38.bam", specs[0].URL)
}

func TestExpand_InvalidRowsAreSkipped(t *testing.T) {
	specs, errs := Expand(DefaultHost, []Row{
		{Path: "/no/port", Samples: "A"},
		{Path: "2333:/ok", Samples: "B"},
		{Path: "2333:relative", Samples: "C"},
		{Path: "99999:/bad/port", Samples: "D"},
	})
	require.Len(t, specs, 1)
	assert.Equal(t, "B", specs[0].Name)
	assert.Equal(t, 1, specs[0].Row)

	require.Len(t, errs, 3)
	assert.Equal(t, 0, errs[0].Row)
	assert.Equal(t, 2, errs[1].Row)
	assert.Equal(t, 3, errs[2].Row)
	assert.EqualError(t, errs[0], "Invalid path in row 1: /no/port, should be like 2333:/path/to/dir")
}

func TestExpand_DuplicateSamplesHaveDistinctIDs(t *testing.T) {
	specs, errs := Expand(DefaultHost, []Row{
		{Path: "2333:/data", Samples: "S1;S1"},
		{Path: "2333:/data", Samples: "S1"},
	})
	require.Empty(t, errs)
	require.Len(t, specs, 3)

	seen := make(map[string]bool)
	for _, spec := range specs {
		if seen[spec.ID] {
			t.Errorf("Duplicate ID %q", spec.ID)
		}
		seen[spec.ID] = true
	}
}

func TestSplitSamples(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  []string
	}{
		{"spaces", "a b  c", []string{"a", "b", "c"}},
		{"semicolons", "a;b;;c;", []string{"a", "b", "c"}},
		{"mixed", " a;\tb\nc ", []string{"a", "b", "c"}},
		{"empty", "", []string{}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := SplitSamples(tc.input)
			if len(tc.want) == 0 {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestResources(t *testing.T) {
	specs, _ := Expand(DefaultHost, []Row{{Path: "2333:/data//", Samples: "NA12878"}})
	require.Len(t, specs, 1)

	got := specs[0].Resources()
	want := []Resource{
		{0, "2333:/data/NA12878/_sam/NA12878.bqsr.hg38.bam", "http://localhost:2333/sam/data/NA12878/_sam/NA12878.bqsr.hg38.bam"},
		{0, "2333:/data/NA12878/_sam/NA12878.bqsr.hg38.bam.bai", "http://localhost:2333/sam/data/NA12878/_sam/NA12878.bqsr.hg38.bam.bai"},
	}
	assert.Equal(t, want, got)
}

func TestWithQuery(t *testing.T) {
	specs, _ := Expand(DefaultHost, []Row{{Path: "2333:/d", Samples: "A B"}})
	original := append([]Spec(nil), specs...)

	derived := WithQuery(specs, "region=1:100-200")
	require.Len(t, derived, 2)
	assert.Equal(t, original, specs, "input specs were modified")

	for i, spec := range derived {
		assert.Equal(t, specs[i].ID, spec.ID)
		assert.Equal(t, specs[i].URL+"?region=1:100-200", spec.URL)
		assert.Equal(t, specs[i].IndexURL+"?region=1:100-200", spec.IndexURL)
		for _, resource := range spec.Resources() {
			assert.Contains(t, resource.URL, "?region=1:100-200")
		}
	}

	again := WithQuery(derived, "gene=TP53")
	assert.Equal(t, specs[0].URL+"?region=1:100-200&gene=TP53", again[0].URL)

	assert.Equal(t, specs, WithQuery(specs, ""))
}
