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

// Package analytics records anonymous usage of the sam server and uploads it to
// Google Analytics.
package analytics

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"net/url"
	"strconv"
	"sync"

	"github.com/google/uuid"
)

const (
	defaultEndpoint  = "https://www.google-analytics.com"
	defaultBatchSize = 20 // The maximum number supported by batch endpoint.
)

// Hit represents a single analytics event (called a 'hit').
type Hit map[string]string

// Event generates a new event typed hit.  The label may be empty and the
// value may be nil but category and action are required.
func Event(category, action, label string, value *int64) Hit {
	hit := Hit{
		"t":  "event",
		"ec": category,
		"ea": action,
	}
	if label != "" {
		hit["el"] = label
	}
	if value != nil {
		hit["ev"] = strconv.FormatInt(*value, 10)
	}
	return hit
}

// Client uploads hits for one analytics property.  Must be created with
// NewClient.
type Client struct {
	propertyID string
	clientID   string
	endpoint   string
	batchSize  int
	http       *http.Client
}

// NewClient returns a Client that reports hits for propertyID under a random
// anonymous client ID.
func NewClient(propertyID string) *Client {
	return &Client{
		propertyID: propertyID,
		clientID:   uuid.New().String(),
		endpoint:   defaultEndpoint,
		batchSize:  defaultBatchSize,
		http:       http.DefaultClient,
	}
}

// Send uploads hits in batches.  It stops at the first failed batch.
func (c *Client) Send(ctx context.Context, hits []Hit) error {
	for start := 0; start < len(hits); start += c.batchSize {
		end := start + c.batchSize
		if end > len(hits) {
			end = len(hits)
		}
		if err := c.upload(ctx, hits[start:end]); err != nil {
			return fmt.Errorf("uploading hits %d-%d: %v", start, end-1, err)
		}
	}
	return nil
}

func (c *Client) upload(ctx context.Context, hits []Hit) error {
	var body bytes.Buffer
	for _, hit := range hits {
		payload := url.Values{
			"v":   []string{"1"},
			"tid": []string{c.propertyID},
			"cid": []string{c.clientID},
		}
		for key, value := range hit {
			payload.Add(key, value)
		}
		body.WriteString(payload.Encode())
		body.WriteByte('\n')
	}

	req, err := http.NewRequest(http.MethodPost, c.endpoint+"/batch", &body)
	if err != nil {
		return fmt.Errorf("creating request: %v", err)
	}
	resp, err := c.http.Do(req.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("sending request: %v", err)
	}
	defer resp.Body.Close()
	io.Copy(ioutil.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected response status: %v", resp.Status)
	}
	return nil
}

type contextKey int

const hitsKey contextKey = 1

type hitBuffer struct {
	mu   sync.Mutex
	hits []Hit
}

// TrackingHandler returns a new http.Handler which wraps the provided
// handler.  The wrapper prepares the incoming request's context for use with
// the TrackerFromContext function.  When the underlying handler completes,
// the track function is invoked with any hits accumulated during the request.
func TrackingHandler(handler http.Handler, track func([]Hit)) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		buffer := &hitBuffer{}
		ctx := context.WithValue(req.Context(), hitsKey, buffer)
		handler.ServeHTTP(w, req.WithContext(ctx))
		if len(buffer.hits) > 0 {
			track(buffer.hits)
		}
	})
}

// TrackerFromContext returns a function that buffers hits for the track
// function given to TrackingHandler.  Outside a tracked request the returned
// function discards its hits.
func TrackerFromContext(ctx context.Context) func(Hit) {
	if buffer, ok := ctx.Value(hitsKey).(*hitBuffer); ok {
		return func(hit Hit) {
			buffer.mu.Lock()
			buffer.hits = append(buffer.hits, hit)
			buffer.mu.Unlock()
		}
	}
	return func(Hit) {}
}
