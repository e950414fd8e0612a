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

package reconcile

import (
	"fmt"
	"net/http"

	"github.com/googlegenomics/samview/track"
)

// ExistenceKind classifies a failed existence check.
type ExistenceKind int

const (
	// NotFound means the server answered 404.
	NotFound ExistenceKind = iota + 1
	// CheckFailed covers every other failure, including transport errors.
	CheckFailed
)

func (k ExistenceKind) String() string {
	switch k {
	case NotFound:
		return "NotFound"
	case CheckFailed:
		return "CheckFailed"
	}
	return fmt.Sprintf("ExistenceKind(%d)", int(k))
}

// ExistenceError reports the check that aborted a reconciliation.
type ExistenceError struct {
	Kind ExistenceKind
	// Row is the 0-based input row of the failing resource.
	Row  int
	Path string
	// Status is the HTTP status code, or zero if no response was received.
	Status int
	Err    error
}

func (err *ExistenceError) Error() string {
	switch {
	case err.Kind == NotFound:
		return fmt.Sprintf("File not found: (row %d): %s", err.Row+1, err.Path)
	case err.Status != 0:
		return fmt.Sprintf("%d: (row %d): %s", err.Status, err.Row+1, err.Path)
	}
	return fmt.Sprintf("Error fetching file in row %d (%s): %v", err.Row+1, err.Path, err.Err)
}

// statusCoder is implemented by checker errors that carry an HTTP status.
type statusCoder interface {
	StatusCode() int
}

func newExistenceError(resource track.Resource, err error) *ExistenceError {
	existence := &ExistenceError{Kind: CheckFailed, Row: resource.Row, Path: resource.Path, Err: err}
	if err, ok := err.(statusCoder); ok {
		existence.Status = err.StatusCode()
		if existence.Status == http.StatusNotFound {
			existence.Kind = NotFound
		}
	}
	return existence
}

// LoadError reports a track the browser failed to load.  Load errors do not
// affect other tracks.
type LoadError struct {
	Spec track.Spec
	Err  error
}

func (err *LoadError) Error() string {
	return fmt.Sprintf("loading %s (row %d): %v", err.Spec.Name, err.Spec.Row+1, err.Err)
}
