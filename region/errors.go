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

import "fmt"

// Kind classifies why a region query could not be parsed.
type Kind int

const (
	// MissingChromosome means the query had nothing before the ':'.
	MissingChromosome Kind = iota + 1
	// MissingRegion means no position followed the chromosome.
	MissingRegion
	// InvalidRegion means the region had more than two '-' separated parts.
	InvalidRegion
	// InvalidChromosome means the chromosome is not a supported reference.
	InvalidChromosome
	// InvalidNumber means a position or offset is not a non-negative integer.
	InvalidNumber
)

var kindNames = map[Kind]string{
	MissingChromosome: "MissingChromosome",
	MissingRegion:     "MissingRegion",
	InvalidRegion:     "InvalidRegion",
	InvalidChromosome: "InvalidChromosome",
	InvalidNumber:     "InvalidNumber",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseError describes a region query that could not be resolved.  It is
// always safe to show the message to the user.
type ParseError struct {
	Kind   Kind
	Query  string
	Detail string
}

func (err *ParseError) Error() string {
	return fmt.Sprintf("%s: %s in query %q", err.Kind, err.Detail, err.Query)
}

func newParseError(kind Kind, query, detail string) error {
	return &ParseError{kind, query, detail}
}

// KindOf returns the Kind of err if it is a *ParseError, and zero otherwise.
func KindOf(err error) Kind {
	if err, ok := err.(*ParseError); ok {
		return err.Kind
	}
	return 0
}
