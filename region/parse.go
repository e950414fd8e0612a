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

// Package region parses free-form genomic region queries such as
// "chr1:100-200", "X:1,000^50" or "chr1-123-A-T" into normalized coordinate
// ranges.
package region

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/googlegenomics/samview/genomics"
)

var (
	// chr1-123-A-T, with the "chr" prefix already removed.
	variantChromRe = regexp.MustCompile(`^[0-9XY]{1,2}-\d+-[A-Z]+-[A-Z]+$`)
	// 123-A-T
	variantRegionRe = regexp.MustCompile(`^\d+-[A-Z]+-[A-Z]+$`)
)

// Parse resolves query into a coordinate range.
//
// The query has the form "chrom:start[-end][^offset]" or the variant form
// "chrom-pos-ref-alt".  Commas inside numbers are ignored and a "chr" prefix
// on the chromosome is dropped.  When offset is given it pads both sides of
// the range; otherwise defaultPadding is applied, but only to single
// positions.  A start greater than end is swapped rather than rejected.
//
// Any failure is reported as a *ParseError.
func Parse(query string, defaultPadding uint64) (genomics.Range, error) {
	spec, offset, hasOffset := query, "", false
	if parts := strings.Split(query, "^"); len(parts) > 1 {
		// Segments after a second "^" are ignored.
		spec, offset, hasOffset = parts[0], parts[1], true
	}

	chrom, rgn := spec, ""
	if i := strings.Index(spec, ":"); i >= 0 {
		chrom, rgn = spec[:i], strings.Replace(spec[i+1:], ",", "", -1)
	}
	if chrom == "" {
		return genomics.Range{}, newParseError(MissingChromosome, query, "no chromosome provided")
	}
	chrom = strings.TrimPrefix(chrom, "chr")

	if rgn == "" && variantChromRe.MatchString(chrom) {
		tokens := strings.Split(chrom, "-")
		chrom, rgn = tokens[0], tokens[1]
	} else if variantRegionRe.MatchString(rgn) {
		rgn = rgn[:strings.Index(rgn, "-")]
	}
	if rgn == "" {
		return genomics.Range{}, newParseError(MissingRegion, query, "no region provided")
	}

	var start, end string
	switch tokens := strings.Split(rgn, "-"); len(tokens) {
	case 1:
		start, end = tokens[0], tokens[0]
		if !hasOffset {
			offset = strconv.FormatUint(defaultPadding, 10)
		}
	case 2:
		start, end = tokens[0], tokens[1]
	default:
		return genomics.Range{}, newParseError(InvalidRegion, query, "invalid region "+rgn)
	}

	return toRange(query, chrom, start, end, offset)
}

func toRange(query, chrom, rawStart, rawEnd, rawOffset string) (genomics.Range, error) {
	if !genomics.IsChromosome(chrom) {
		return genomics.Range{}, newParseError(InvalidChromosome, query, "invalid chromosome "+chrom)
	}

	start, errStart := parsePosition(rawStart)
	end, errEnd := parsePosition(rawEnd)
	var offset uint64
	var errOffset error
	if strings.TrimSpace(rawOffset) != "" {
		offset, errOffset = parsePosition(strings.TrimSpace(rawOffset))
	}
	if errStart != nil || errEnd != nil || errOffset != nil {
		return genomics.Range{}, newParseError(InvalidNumber, query,
			"must be in format (pos)-(pos)[^offset], got "+rawStart+"-"+rawEnd+"^"+rawOffset)
	}

	if start > end {
		start, end = end, start
	}
	r := genomics.Range{Chromosome: chrom, Start: 1, End: end + offset}
	if start > offset {
		r.Start = start - offset
	}
	// Only reachable with position 0, which is accepted as is.
	if r.End < r.Start {
		r.End = r.Start
	}
	return r, nil
}

// parsePosition parses a base pair position.  Positions are limited to 32 bits,
// the limit imposed by the BAM format.
func parsePosition(s string) (uint64, error) {
	return strconv.ParseUint(strings.Replace(s, ",", "", -1), 10, 32)
}
