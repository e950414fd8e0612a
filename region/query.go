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
	"fmt"
	"net/url"
	"strings"

	"github.com/googlegenomics/samview/genomics"
)

// DefaultSearchPadding is the padding applied to single-position searches.
const DefaultSearchPadding = 200

// QueryKind selects how a search string is interpreted.
type QueryKind string

const (
	// Gene searches pass the symbol through unparsed.
	Gene QueryKind = "gene"
	// Coord searches are parsed with Parse.
	Coord QueryKind = "coord"
)

// ParseQueryKind converts user input into a QueryKind.
func ParseQueryKind(s string) (QueryKind, error) {
	switch kind := QueryKind(strings.ToLower(s)); kind {
	case Gene, Coord:
		return kind, nil
	}
	return "", fmt.Errorf("unknown search type %q (want %q or %q)", s, Gene, Coord)
}

// Query is a resolved search request.
type Query struct {
	Kind QueryKind
	// Text is the search string as entered.
	Text string
	// Range is only set for Coord queries.
	Range genomics.Range
}

// ParseQuery builds a Query of the given kind from text.  Coordinate queries
// are resolved with Parse using padding; an unparsable query returns the
// *ParseError unchanged.
func ParseQuery(kind QueryKind, text string, padding uint64) (*Query, error) {
	text = strings.TrimSpace(text)
	switch kind {
	case Gene:
		if text == "" {
			return nil, fmt.Errorf("empty gene symbol")
		}
		return &Query{Kind: Gene, Text: text}, nil
	case Coord:
		r, err := Parse(text, padding)
		if err != nil {
			return nil, err
		}
		return &Query{Kind: Coord, Text: text, Range: r}, nil
	}
	return nil, fmt.Errorf("unknown search type %q", kind)
}

// Locus returns the string handed to the genome browser's search box: the gene
// symbol, or the resolved range as "chr:start-end".
func (q *Query) Locus() string {
	if q.Kind == Coord {
		return q.Range.String()
	}
	return q.Text
}

// Filter returns the URL query parameter ("gene=<symbol>" or
// "region=<chr>:<start>-<end>") that restricts a track resource to this search.
func (q *Query) Filter() string {
	if q.Kind == Coord {
		return "region=" + q.Range.String()
	}
	return "gene=" + url.QueryEscape(q.Text)
}

func (q *Query) String() string {
	return fmt.Sprintf("%s %s", q.Kind, q.Text)
}
