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

// Package probe checks that track resources can be served before they are
// handed to a genome browser.
package probe

import (
	"context"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"

	"github.com/googlegenomics/samview/track"
)

// StatusError is returned when the server answers a probe with a non-2xx
// status.
type StatusError struct {
	URL    string
	Code   int
	Status string
}

func (err *StatusError) Error() string {
	return fmt.Sprintf("HEAD %s: unexpected response status: %q", err.URL, err.Status)
}

// StatusCode returns the HTTP status of the failed probe.
func (err *StatusError) StatusCode() int {
	return err.Code
}

// HTTPChecker probes resources with HEAD requests.  Any 2xx response means the
// resource exists.
type HTTPChecker struct {
	client *http.Client
}

// NewHTTPChecker returns an HTTPChecker using client, or http.DefaultClient if
// client is nil.
func NewHTTPChecker(client *http.Client) *HTTPChecker {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPChecker{client}
}

// Check issues a HEAD request for resource.URL.  Non-2xx responses are
// reported as a *StatusError; transport failures are returned as is.
func (c *HTTPChecker) Check(ctx context.Context, resource track.Resource) error {
	req, err := http.NewRequest(http.MethodHead, resource.URL, nil)
	if err != nil {
		return fmt.Errorf("creating request: %v", err)
	}

	resp, err := c.client.Do(req.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("fetching %s: %v", resource.URL, err)
	}
	defer resp.Body.Close()
	io.Copy(ioutil.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{resource.URL, resp.StatusCode, resp.Status}
	}
	return nil
}
