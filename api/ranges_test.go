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

package api

import "testing"

func TestParseRange(t *testing.T) {
	testCases := []struct {
		header string
		size   int64
		want   byteRange
		ok     bool
		err    error
	}{
		{"", 10, byteRange{}, false, nil},
		{"bytes=0-0", 10, byteRange{0, 1}, true, nil},
		{"bytes=2-5", 10, byteRange{2, 4}, true, nil},
		{"bytes= 2 - 5", 10, byteRange{2, 4}, true, nil},
		{"bytes=9-", 10, byteRange{9, 1}, true, nil},
		{"bytes=-20", 10, byteRange{0, 10}, true, nil},
		{"bytes=5-2", 10, byteRange{}, false, nil},
		{"bytes=x-2", 10, byteRange{}, false, nil},
		{"bytes=2", 10, byteRange{}, false, nil},
		{"items=0-1", 10, byteRange{}, false, nil},
		{"bytes=10-", 10, byteRange{}, false, errUnsatisfiableRange},
		{"bytes=-0", 10, byteRange{}, false, errUnsatisfiableRange},
		{"bytes=-5", 0, byteRange{}, false, errUnsatisfiableRange},
	}
	for _, tc := range testCases {
		got, ok, err := parseRange(tc.header, tc.size)
		if got != tc.want || ok != tc.ok || err != tc.err {
			t.Errorf("parseRange(%q, %d): got (%v, %v, %v), want (%v, %v, %v)",
				tc.header, tc.size, got, ok, err, tc.want, tc.ok, tc.err)
		}
	}
}
