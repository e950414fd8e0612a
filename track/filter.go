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

import "strings"

// WithQuery returns copies of specs whose resource URLs carry filter (for
// example "gene=TP53") as a query parameter.  The input is not modified.  An
// empty filter returns the specs unchanged.
func WithQuery(specs []Spec, filter string) []Spec {
	if filter == "" {
		return specs
	}
	derived := make([]Spec, len(specs))
	for i, spec := range specs {
		spec.URL = addFilter(spec.URL, filter)
		spec.IndexURL = addFilter(spec.IndexURL, filter)
		derived[i] = spec
	}
	return derived
}

func addFilter(input, filter string) string {
	if strings.Contains(input, "?") {
		return input + "&" + filter
	}
	return input + "?" + filter
}
