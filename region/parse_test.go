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

package region

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/googlegenomics/samview/genomics"
)

func TestParse_Success(t *testing.T) {
	testCases := []struct {
		name    string
		query   string
		padding uint64
		want    genomics.Range
	}{
		{"explicit range", "chr1:100-200", 0, genomics.Range{Chromosome: "1", Start: 100, End: 200}},
		{"explicit range ignores default padding", "chr1:100-200", 500, genomics.Range{Chromosome: "1", Start: 100, End: 200}},
		{"explicit offset", "1:500^50", 0, genomics.Range{Chromosome: "1", Start: 450, End: 550}},
		{"offset overrides default padding", "1:500^50", 1000, genomics.Range{Chromosome: "1", Start: 450, End: 550}},
		{"offset on range", "2:1000-2000^10", 500, genomics.Range{Chromosome: "2", Start: 990, End: 2010}},
		{"default padding", "chrX:1000", 200, genomics.Range{Chromosome: "X", Start: 800, End: 1200}},
		{"empty offset means zero", "1:500^", 200, genomics.Range{Chromosome: "1", Start: 500, End: 500}},
		{"blank offset means zero", "1:500^ ", 200, genomics.Range{Chromosome: "1", Start: 500, End: 500}},
		{"segments after second caret ignored", "1:100^5^6", 200, genomics.Range{Chromosome: "1", Start: 95, End: 105}},
		{"empty offset before second caret", "1:100^^6", 200, genomics.Range{Chromosome: "1", Start: 100, End: 100}},
		{"commas", "chr7:55,019,017-55,211,628", 0, genomics.Range{Chromosome: "7", Start: 55019017, End: 55211628}},
		{"comma in offset", "7:10,000^1,000", 0, genomics.Range{Chromosome: "7", Start: 9000, End: 11000}},
		{"swapped range", "chr3:200-100", 0, genomics.Range{Chromosome: "3", Start: 100, End: 200}},
		{"swapped range with offset", "chr3:200-100^10", 0, genomics.Range{Chromosome: "3", Start: 90, End: 210}},
		{"start clamps to one", "1:30^50", 0, genomics.Range{Chromosome: "1", Start: 1, End: 80}},
		{"start equal to offset clamps to one", "1:50^50", 0, genomics.Range{Chromosome: "1", Start: 1, End: 100}},
		{"variant form", "chr1-123-A-T", 0, genomics.Range{Chromosome: "1", Start: 123, End: 123}},
		{"variant form with padding", "X-1000-AC-G", 10, genomics.Range{Chromosome: "X", Start: 990, End: 1010}},
		{"variant region", "chr12:25245350-C-T", 0, genomics.Range{Chromosome: "12", Start: 25245350, End: 25245350}},
		{"mitochondrial", "MT:16000", 0, genomics.Range{Chromosome: "MT", Start: 16000, End: 16000}},
		{"M alias", "chrM:1-100", 0, genomics.Range{Chromosome: "M", Start: 1, End: 100}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Parse(tc.query, tc.padding)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParse_Errors(t *testing.T) {
	testCases := []struct {
		name  string
		query string
		want  Kind
	}{
		{"empty", "", MissingChromosome},
		{"no chromosome", ":100-200", MissingChromosome},
		{"no region", "chr1", MissingRegion},
		{"empty region", "chr1:", MissingRegion},
		{"only commas", "chr1:,,", MissingRegion},
		{"offset without region", "chr1^50", MissingRegion},
		{"three positions", "chr1:1-2-3", InvalidRegion},
		{"unknown chromosome", "chrZ:100-200", InvalidChromosome},
		{"chromosome 23", "23:100", InvalidChromosome},
		{"bare prefix", "chr:100", InvalidChromosome},
		{"lowercase x", "chrx:100", InvalidChromosome},
		{"letters in start", "chr1:abc-200", InvalidNumber},
		{"letters in end", "chr1:100-abc", InvalidNumber},
		{"missing end", "chr1:100-", InvalidNumber},
		{"negative offset", "chr1:100^-5", InvalidNumber},
		{"bad offset", "chr1:100^ten", InvalidNumber},
		{"decimal", "chr1:1.5", InvalidNumber},
		{"overflow", "chr1:99999999999", InvalidNumber},
		{"lowercase variant alleles", "chr1-123-a-t", MissingRegion},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(tc.query, 200)
			require.Error(t, err)
			if _, ok := err.(*ParseError); !ok {
				t.Fatalf("Wrong error type: got %T, want *ParseError", err)
			}
			if got := KindOf(err); got != tc.want {
				t.Errorf("Wrong error kind: got %v, want %v (%v)", got, tc.want, err)
			}
		})
	}
}

// Position 0 is not a valid base pair but the parser accepts it; callers may
// depend on that.
func TestParse_ZeroPosition(t *testing.T) {
	got, err := Parse("1:0", 0)
	require.NoError(t, err)
	assert.Equal(t, genomics.Range{Chromosome: "1", Start: 1, End: 1}, got)

	got, err = Parse("1:0-100", 0)
	require.NoError(t, err)
	assert.Equal(t, genomics.Range{Chromosome: "1", Start: 1, End: 100}, got)
}

func TestParse_SinglePositionPadding(t *testing.T) {
	for _, pos := range []uint64{1, 2, 150, 199, 200, 201, 5000, 1 << 31} {
		for _, padding := range []uint64{0, 1, 200, 10000} {
			got, err := Parse("chr5:"+itoa(pos), padding)
			require.NoError(t, err)

			wantStart := uint64(1)
			if pos > padding {
				wantStart = pos - padding
			}
			assert.Equal(t, wantStart, got.Start, "start for pos=%d padding=%d", pos, padding)
			assert.Equal(t, pos+padding, got.End, "end for pos=%d padding=%d", pos, padding)
		}
	}
}

func TestParse_NeverReturnsStartAfterEnd(t *testing.T) {
	for _, a := range []uint64{1, 10, 999, 123456} {
		for _, b := range []uint64{1, 10, 999, 123456} {
			got, err := Parse("chrY:"+itoa(a)+"-"+itoa(b), 0)
			require.NoError(t, err)
			if got.Start > got.End {
				t.Errorf("Parse(%d-%d): start %d > end %d", a, b, got.Start, got.End)
			}
		}
	}
}

func TestParseErrorMessage(t *testing.T) {
	_, err := Parse("chrZ:1-2", 0)
	assert.EqualError(t, err, `InvalidChromosome: invalid chromosome Z in query "chrZ:1-2"`)
}

func itoa(n uint64) string {
	return strconv.FormatUint(n, 10)
}
