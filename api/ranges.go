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

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// byteRange is a satisfiable range of an object.
type byteRange struct {
	start, length int64
}

func (r byteRange) contentRange(size int64) string {
	return fmt.Sprintf("bytes %d-%d/%d", r.start, r.start+r.length-1, size)
}

// parseRange interprets a Range header for an object of the given size.  Only
// a single "bytes=" range is supported; anything else, including a malformed
// header, is ignored and the whole object is served.  An error is returned
// only for a well formed range that cannot be satisfied.
func parseRange(header string, size int64) (byteRange, bool, error) {
	spec := strings.TrimPrefix(header, "bytes=")
	if header == "" || spec == header || strings.Contains(spec, ",") {
		return byteRange{}, false, nil
	}
	i := strings.Index(spec, "-")
	if i < 0 {
		return byteRange{}, false, nil
	}
	first, last := strings.TrimSpace(spec[:i]), strings.TrimSpace(spec[i+1:])

	if first == "" {
		// bytes=-N selects the final N bytes.
		n, err := strconv.ParseInt(last, 10, 64)
		if err != nil {
			return byteRange{}, false, nil
		}
		if n <= 0 || size == 0 {
			return byteRange{}, false, errUnsatisfiableRange
		}
		if n > size {
			n = size
		}
		return byteRange{size - n, n}, true, nil
	}

	start, err := strconv.ParseInt(first, 10, 64)
	if err != nil || start < 0 {
		return byteRange{}, false, nil
	}
	if start >= size {
		return byteRange{}, false, errUnsatisfiableRange
	}
	end := size - 1
	if last != "" {
		if end, err = strconv.ParseInt(last, 10, 64); err != nil || end < start {
			return byteRange{}, false, nil
		}
		if end >= size {
			end = size - 1
		}
	}
	return byteRange{start, end - start + 1}, true, nil
}

var errUnsatisfiableRange = errors.New("range not satisfiable")
