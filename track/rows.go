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
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

var portPathRe = regexp.MustCompile(`^(\d+):(/.+)$`)

// Row is one line of user input: a "port:/absolute/root" specifier and a list
// of sample names separated by whitespace or ';'.
type Row struct {
	Path    string
	Samples string
}

// RowError reports a row whose path specifier is malformed.
type RowError struct {
	// Row is 0-based.
	Row  int
	Text string
}

func (err *RowError) Error() string {
	return fmt.Sprintf("Invalid path in row %d: %s, should be like 2333:/path/to/dir", err.Row+1, err.Text)
}

// Expand converts rows into one Spec per (row, sample) pair, with resources
// served by host.  Malformed rows are skipped and reported individually; the
// remaining rows are still expanded.
func Expand(host string, rows []Row) ([]Spec, []*RowError) {
	if host == "" {
		host = DefaultHost
	}
	var specs []Spec
	var errs []*RowError
	for i, row := range rows {
		port, root, err := parsePortPath(row.Path)
		if err != nil {
			errs = append(errs, &RowError{Row: i, Text: row.Path})
			continue
		}
		for j, sample := range SplitSamples(row.Samples) {
			specs = append(specs, newSpec(host, i, j, port, root, sample))
		}
	}
	return specs, errs
}

// SplitSamples splits a sample list on whitespace and ';', dropping empty
// names.
func SplitSamples(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ';' || unicode.IsSpace(r)
	})
}

func parsePortPath(s string) (int, string, error) {
	match := portPathRe.FindStringSubmatch(s)
	if match == nil {
		return 0, "", fmt.Errorf("no match")
	}
	port, err := strconv.Atoi(match[1])
	if err != nil || port > 65535 {
		return 0, "", fmt.Errorf("invalid port %q", match[1])
	}
	return port, match[2], nil
}
