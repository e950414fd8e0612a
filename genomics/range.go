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

// Package genomics contains definitions related to Genomic data.
package genomics

import (
	"fmt"
	"strconv"
)

// chromosomes lists the reference names accepted in a coordinate range.  Names
// are stored without a "chr" prefix.
var chromosomes = func() map[string]bool {
	names := map[string]bool{"X": true, "Y": true, "MT": true, "M": true}
	for i := 1; i <= 22; i++ {
		names[strconv.Itoa(i)] = true
	}
	return names
}()

// IsChromosome reports whether name is one of the supported human reference
// names (1-22, X, Y, MT or M).  The name must not carry a "chr" prefix.
func IsChromosome(name string) bool {
	return chromosomes[name]
}

// Range defines a closed range of base pairs on a single chromosome.
type Range struct {
	// Chromosome is the reference name without any "chr" prefix.
	Chromosome string
	// Start and End are 1-based, inclusive positions.  Start is never greater
	// than End.
	Start, End uint64
}

// String returns the range in the "chr:start-end" locus form understood by
// genome browsers.
func (r Range) String() string {
	return fmt.Sprintf("%s:%d-%d", r.Chromosome, r.Start, r.End)
}
